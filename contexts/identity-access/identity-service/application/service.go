package application

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"electora/contexts/identity-access/identity-service/domain/entities"
	domainerrors "electora/contexts/identity-access/identity-service/domain/errors"
	"electora/contexts/identity-access/identity-service/ports"
)

type Service struct {
	Repo     ports.UserRepository
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenIssuer
	Notifier ports.WelcomeNotifier
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

type RegisterInput struct {
	Title        string
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	Phone        string
	MembershipID string
	Password     string
}

type UpdateUserInput struct {
	Title      string
	FirstName  string
	MiddleName string
	LastName   string
	Phone      string
	Role       string
}

type LoginResult struct {
	User  entities.User
	Token string
}

// Register creates a member account. The role is always member here; callers
// cannot self-assign admin. The welcome notification runs after the account is
// committed and its failure is logged, not returned.
func (s Service) Register(ctx context.Context, input RegisterInput) (entities.User, error) {
	logger := ResolveLogger(s.Logger)
	user, err := s.buildUser(ctx, input, entities.RoleMember)
	if err != nil {
		return entities.User{}, err
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return entities.User{}, err
	}
	logger.Info("user registered",
		"event", "identity_user_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	if s.Notifier != nil {
		if err := s.Notifier.SendWelcome(ctx, user.Email, user.Phone, user.FullName()); err != nil {
			logger.Warn("welcome notification failed",
				"event", "identity_welcome_notification_failed",
				"module", "identity-access/identity-service",
				"layer", "application",
				"user_id", user.UserID,
				"error", err.Error(),
			)
		}
	}
	return user, nil
}

func (s Service) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, domainerrors.ErrInvalidUserInput
	}
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Unknown email and bad password are indistinguishable to the caller.
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return LoginResult{}, domainerrors.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if err := s.Hasher.Compare(user.PasswordHash, password); err != nil {
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}
	token, err := s.Tokens.Issue(user.UserID, user.Role)
	if err != nil {
		return LoginResult{}, err
	}
	ResolveLogger(s.Logger).Info("user logged in",
		"event", "identity_user_logged_in",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return LoginResult{User: user, Token: token}, nil
}

func (s Service) GetUser(ctx context.Context, userID string) (entities.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}
	return s.Repo.GetUserByID(ctx, userID)
}

func (s Service) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s Service) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (entities.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return entities.User{}, err
	}
	if v := strings.TrimSpace(input.Title); v != "" {
		user.Title = v
	}
	if v := strings.TrimSpace(input.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(input.MiddleName); v != "" {
		user.MiddleName = v
	}
	if v := strings.TrimSpace(input.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(input.Phone); v != "" {
		user.Phone = v
	}
	if v := strings.ToLower(strings.TrimSpace(input.Role)); v != "" {
		if !entities.IsValidRole(v) {
			return entities.User{}, domainerrors.ErrInvalidUserInput
		}
		user.Role = v
	}
	user.UpdatedAt = s.now()
	if err := s.Repo.UpdateUser(ctx, user); err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (s Service) DeleteUser(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domainerrors.ErrInvalidUserInput
	}
	return s.Repo.DeleteUser(ctx, userID)
}

func (s Service) buildUser(ctx context.Context, input RegisterInput, role string) (entities.User, error) {
	email := normalizeEmail(input.Email)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	membershipID := strings.TrimSpace(input.MembershipID)
	if email == "" || firstName == "" || lastName == "" || membershipID == "" {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}
	if len(input.Password) < 8 {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}
	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return entities.User{}, err
	}
	userID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := s.now()
	return entities.User{
		UserID:       userID,
		Title:        strings.TrimSpace(input.Title),
		FirstName:    firstName,
		MiddleName:   strings.TrimSpace(input.MiddleName),
		LastName:     lastName,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		MembershipID: membershipID,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
