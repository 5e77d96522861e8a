package entities

import (
	"strings"
	"time"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	UserID       string
	Title        string
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	Phone        string
	MembershipID string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	return strings.Join(parts, " ")
}

func IsValidRole(role string) bool {
	switch role {
	case RoleMember, RoleAdmin:
		return true
	}
	return false
}
