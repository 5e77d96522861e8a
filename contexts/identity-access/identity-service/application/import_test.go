package application

import (
	"context"
	"strings"
	"testing"

	domainerrors "electora/contexts/identity-access/identity-service/domain/errors"
)

func TestImportUsersCSV(t *testing.T) {
	store, svc := newFixture(nil)

	csvBody := strings.Join([]string{
		"first_name,last_name,email,phone,membership_id,password",
		"Ada,Obi,ada@example.com,+2348010000001,M-001,first-password",
		"Bola,Ade,bola@example.com,+2348010000002,M-002,",
		"Chidi,Eze,not-an-address,+2348010000003,M-003,third-password",
		"Dupe,Obi,ada@example.com,+2348010000004,M-004,fourth-password",
	}, "\n")

	report, err := svc.ImportUsersCSV(context.Background(), strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.Created != 2 {
		t.Fatalf("expected 2 created, got %d", report.Created)
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %v", report.Skipped)
	}
	if report.Skipped[0].Line != 4 || report.Skipped[1].Line != 5 {
		t.Fatalf("skip report lines wrong: %v", report.Skipped)
	}

	users, err := store.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 persisted users, got %d", len(users))
	}
	for _, user := range users {
		if user.Role != "member" {
			t.Fatalf("imported user must be a member, got %q", user.Role)
		}
		if user.PasswordHash == "" {
			t.Fatal("imported user without password must get a generated one")
		}
	}
}

func TestImportUsersCSVRequiresColumns(t *testing.T) {
	_, svc := newFixture(nil)
	csvBody := "first_name,last_name,phone\nAda,Obi,+2348010000001\n"
	if _, err := svc.ImportUsersCSV(context.Background(), strings.NewReader(csvBody)); err != domainerrors.ErrInvalidUserInput {
		t.Fatalf("expected ErrInvalidUserInput for missing columns, got %v", err)
	}
}
