package postgresadapter

import (
	"time"

	"electora/contexts/election-core/ballot-catalog/ports"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Clock = SystemClock{}
