package repositories

import (
	"database/sql"

	"soccermass/internal/models"
)

type ContactRepository interface {
	Create(category, email, comment string) (*models.ContactEntry, error)
}

type contactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{DB: db}
}

func (r *contactRepository) Create(category, email, comment string) (*models.ContactEntry, error) {
	const q = `
		INSERT INTO contact_entries (category, email, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	entry := &models.ContactEntry{Category: category, Email: email, Comment: comment}
	if err := r.DB.QueryRow(q, category, email, comment).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, err
	}
	return entry, nil
}
