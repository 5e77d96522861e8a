package postgresadapter

import (
	"time"

	"electora/contexts/identity-access/identity-service/ports"
)

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Clock = SystemClock{}
