package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"electora/contexts/identity-access/identity-service/domain/entities"
	domainerrors "electora/contexts/identity-access/identity-service/domain/errors"
	"electora/contexts/identity-access/identity-service/ports"

	"github.com/google/uuid"
)

// Store keeps user accounts in memory for tests and local wiring. Email and
// membership-ID uniqueness mirror the database unique indexes.
type Store struct {
	mu sync.RWMutex

	users        map[string]entities.User
	byEmail      map[string]string
	byMembership map[string]string
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]entities.User),
		byEmail:      make(map[string]string),
		byMembership: make(map[string]string),
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if _, taken := s.byEmail[email]; taken {
		return domainerrors.ErrEmailTaken
	}
	if _, taken := s.byMembership[user.MembershipID]; taken {
		return domainerrors.ErrMembershipIDTaken
	}
	s.users[user.UserID] = user
	s.byEmail[email] = user.UserID
	s.byMembership[user.MembershipID] = user.UserID
	return nil
}

func (s *Store) GetUserByID(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[strings.TrimSpace(userID)]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return s.users[userID], nil
}

func (s *Store) ListUsers(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		items = append(items, user)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserID < items[j].UserID })
	return items, nil
}

func (s *Store) UpdateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.UserID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	// Email and membership ID are immutable through UpdateUser.
	user.Email = existing.Email
	user.MembershipID = existing.MembershipID
	s.users[user.UserID] = user
	return nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[strings.TrimSpace(userID)]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.byEmail, strings.ToLower(user.Email))
	delete(s.byMembership, user.MembershipID)
	delete(s.users, user.UserID)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.UserRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
