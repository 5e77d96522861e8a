// Package identityservice owns member accounts: self-service registration,
// credential login, admin CRUD, and bulk CSV import. Self-registered accounts
// are always plain members; elevated roles are granted by an admin afterwards.
package identityservice
