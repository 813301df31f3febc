package core

import "context"

type ContactsRepository interface {
	// Save appends a row. Not idempotent: the contact log is an audit trail.
	Save(ctx context.Context, userID, name, phoneNumber string) error
	// Search matches stored names by case-insensitive substring, scoped to
	// userID, newest rows first. Returns an empty slice when nothing matches.
	Search(ctx context.Context, userID, query string) ([]Contact, error)
}
