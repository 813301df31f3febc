package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mostafamoumen/contactchat/internal/core"
	"github.com/mostafamoumen/contactchat/pkg/log"
)

// Contacts is the sqlite-backed contact log. Rows are append-only: saving
// the same contact twice records two rows.
type Contacts struct {
	db *sql.DB
}

func NewContacts(db *sql.DB) *Contacts {
	return &Contacts{db: db}
}

func (c *Contacts) Save(ctx context.Context, userID, name, phoneNumber string) error {
	if userID == "" || name == "" || phoneNumber == "" {
		return fmt.Errorf("%w: refusing to save incomplete contact", core.ErrStorage)
	}

	query := `INSERT INTO contacts (user_id, name, phone_number) VALUES (?, ?, ?)`
	if _, err := c.db.ExecContext(ctx, query, userID, name, phoneNumber); err != nil {
		return fmt.Errorf("%w: insert contact: %v", core.ErrStorage, err)
	}

	log.FromCtx(ctx).Debug().Str("user_id", userID).Str("name", name).Msg("contact saved")
	return nil
}

// Search matches names by case-insensitive substring for one user. Newest
// rows come first so the freshest save wins when callers take the top match.
func (c *Contacts) Search(ctx context.Context, userID, query string) ([]core.Contact, error) {
	const q = `
		SELECT user_id, name, phone_number
		FROM contacts
		WHERE user_id = ? AND LOWER(name) LIKE LOWER(?)
		ORDER BY id DESC`

	rows, err := c.db.QueryContext(ctx, q, userID, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("%w: query contacts: %v", core.ErrStorage, err)
	}
	defer rows.Close()

	contacts := make([]core.Contact, 0)
	for rows.Next() {
		var contact core.Contact
		if err := rows.Scan(&contact.UserID, &contact.Name, &contact.PhoneNumber); err != nil {
			return nil, fmt.Errorf("%w: scan contact: %v", core.ErrStorage, err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStorage, err)
	}

	return contacts, nil
}
