package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"electora/contexts/identity-access/identity-service/adapters/memory"
	"electora/contexts/identity-access/identity-service/domain/entities"
	domainerrors "electora/contexts/identity-access/identity-service/domain/errors"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash string, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID string, role string) (string, error) {
	return "token:" + userID + ":" + role, nil
}

type recordingNotifier struct {
	sent int
	fail bool
}

func (n *recordingNotifier) SendWelcome(_ context.Context, _ string, _ string, _ string) error {
	n.sent++
	if n.fail {
		return errors.New("provider unavailable")
	}
	return nil
}

func newFixture(notifier *recordingNotifier) (*memory.Store, Service) {
	store := memory.NewStore()
	svc := Service{
		Repo:   store,
		Hasher: fakeHasher{},
		Tokens: fakeTokens{},
		Clock:  store,
		IDGen:  store,
	}
	if notifier != nil {
		svc.Notifier = notifier
	}
	return store, svc
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:    "Ada",
		LastName:     "Obi",
		Email:        "ada@example.com",
		MembershipID: "M-001",
		Password:     "correct-horse",
	}
}

func TestRegisterForcesMemberRole(t *testing.T) {
	_, svc := newFixture(nil)
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != entities.RoleMember {
		t.Fatalf("self-registration must produce a member, got %q", user.Role)
	}
	if user.PasswordHash == "correct-horse" {
		t.Fatal("password must not be stored in the clear")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc := newFixture(nil)
	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	input := validRegisterInput()
	input.MembershipID = "M-002"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterDuplicateMembershipID(t *testing.T) {
	_, svc := newFixture(nil)
	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	input := validRegisterInput()
	input.Email = "other@example.com"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domainerrors.ErrMembershipIDTaken) {
		t.Fatalf("expected ErrMembershipIDTaken, got %v", err)
	}
}

func TestRegisterSurvivesNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{fail: true}
	store, svc := newFixture(notifier)
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register must not fail on notifier error: %v", err)
	}
	if notifier.sent != 1 {
		t.Fatalf("expected one notification attempt, got %d", notifier.sent)
	}
	if _, err := store.GetUserByID(context.Background(), user.UserID); err != nil {
		t.Fatalf("account must persist despite notifier failure: %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	_, svc := newFixture(nil)
	for name, mutate := range map[string]func(*RegisterInput){
		"missing email":  func(in *RegisterInput) { in.Email = "" },
		"bad email":      func(in *RegisterInput) { in.Email = "not-an-address" },
		"short password": func(in *RegisterInput) { in.Password = "short" },
		"no membership":  func(in *RegisterInput) { in.MembershipID = "" },
		"no first name":  func(in *RegisterInput) { in.FirstName = " " },
	} {
		input := validRegisterInput()
		mutate(&input)
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidUserInput) {
			t.Fatalf("%s: expected ErrInvalidUserInput, got %v", name, err)
		}
	}
}

func TestLogin(t *testing.T) {
	_, svc := newFixture(nil)
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "Ada@Example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.UserID != user.UserID {
		t.Fatal("login returned the wrong user")
	}
	if !strings.HasPrefix(result.Token, "token:"+user.UserID) {
		t.Fatalf("unexpected token %q", result.Token)
	}

	if _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "correct-horse"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUpdateUserRole(t *testing.T) {
	_, svc := newFixture(nil)
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateUser(context.Background(), user.UserID, UpdateUserInput{Role: "admin"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != entities.RoleAdmin {
		t.Fatalf("expected admin role, got %q", updated.Role)
	}

	if _, err := svc.UpdateUser(context.Background(), user.UserID, UpdateUserInput{Role: "overlord"}); !errors.Is(err, domainerrors.ErrInvalidUserInput) {
		t.Fatalf("expected ErrInvalidUserInput for unknown role, got %v", err)
	}
}
