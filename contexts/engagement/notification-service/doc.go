// Package notificationservice sends transactional email and SMS through
// interchangeable providers. Each channel has a primary provider and ordered
// fallbacks; delivery is best-effort and callers are expected to treat
// failures as non-fatal.
package notificationservice
