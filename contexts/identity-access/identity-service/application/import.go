package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	domainerrors "electora/contexts/identity-access/identity-service/domain/errors"
)

type ImportReport struct {
	Created int
	Skipped []SkippedRow
}

type SkippedRow struct {
	Line   int
	Reason string
}

var importColumns = map[string]bool{
	"title":         true,
	"first_name":    true,
	"middle_name":   true,
	"last_name":     true,
	"email":         true,
	"phone":         true,
	"membership_id": true,
	"password":      true,
}

// ImportUsersCSV bulk-registers members from a CSV stream. The first record
// is a header naming the columns; rows that fail validation or collide with
// existing accounts are skipped and reported, never aborting the batch.
// Rows without a password column get a generated one, to be reset at first
// login.
func (s Service) ImportUsersCSV(ctx context.Context, r io.Reader) (ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportReport{}, domainerrors.ErrInvalidUserInput
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if importColumns[name] {
			columns[name] = i
		}
	}
	for _, required := range []string{"first_name", "last_name", "email", "membership_id"} {
		if _, ok := columns[required]; !ok {
			return ImportReport{}, domainerrors.ErrInvalidUserInput
		}
	}

	report := ImportReport{Skipped: []SkippedRow{}}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: "malformed row"})
			continue
		}
		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		password := field("password")
		if password == "" {
			generated, err := s.IDGen.NewID(ctx)
			if err != nil {
				return report, err
			}
			password = generated
		}
		_, err = s.Register(ctx, RegisterInput{
			Title:        field("title"),
			FirstName:    field("first_name"),
			MiddleName:   field("middle_name"),
			LastName:     field("last_name"),
			Email:        field("email"),
			Phone:        field("phone"),
			MembershipID: field("membership_id"),
			Password:     password,
		})
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		report.Created++
	}

	ResolveLogger(s.Logger).Info("user import finished",
		"event", "identity_user_import_finished",
		"module", "identity-access/identity-service",
		"layer", "application",
		"created", report.Created,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func (r ImportReport) Summary() string {
	return fmt.Sprintf("%d created, %d skipped", r.Created, len(r.Skipped))
}
