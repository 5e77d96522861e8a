package ports

import (
	"context"
	"time"

	"electora/contexts/identity-access/identity-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user entities.User) error
	GetUserByID(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	UpdateUser(ctx context.Context, user entities.User) error
	DeleteUser(ctx context.Context, userID string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// TokenIssuer mints the bearer token handed out at login. Claims carry the
// user ID and role; everything else is resolved server-side per request.
type TokenIssuer interface {
	Issue(userID string, role string) (string, error)
}

// WelcomeNotifier delivers the post-registration welcome. Failures are
// best-effort by contract: registration never rolls back on notifier errors.
type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, email string, phone string, fullName string) error
}
