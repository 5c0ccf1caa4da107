package repositories

import (
	"database/sql"
	"errors"

	"soccermass/internal/models"
)

type MassRepository interface {
	GetByRef(ref string) (*models.Mass, error)
	// DecrementUnmanaged takes one unmanaged slot off the division and the
	// mass total, conditional on the division counter being positive.
	DecrementUnmanaged(ref string, division int) error
	// AppendNews head-inserts into the mass news feed, truncated to
	// models.FeedCap entries.
	AppendNews(ref string, item models.NewsItem) error
}

type massRepository struct {
	DB *sql.DB
}

func NewMassRepository(db *sql.DB) MassRepository {
	return &massRepository{DB: db}
}

func (r *massRepository) GetByRef(ref string) (*models.Mass, error) {
	const q = `SELECT id, ref, name, unmanaged_total FROM masses WHERE ref = $1`
	m := &models.Mass{}
	err := r.DB.QueryRow(q, ref).Scan(&m.ID, &m.Ref, &m.Name, &m.UnmanagedTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *massRepository) DecrementUnmanaged(ref string, division int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE mass_divisions
		SET unmanaged = unmanaged - 1
		WHERE mass_ref=$1 AND division=$2 AND unmanaged > 0
	`, ref, division)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		if _, err := tx.Exec(`
			UPDATE masses
			SET unmanaged_total = GREATEST(unmanaged_total - 1, 0)
			WHERE ref=$1
		`, ref); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *massRepository) AppendNews(ref string, item models.NewsItem) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO mass_news (mass_ref, title, content, image)
		VALUES ($1, $2, $3, $4)
	`, ref, item.Title, item.Content, item.Image); err != nil {
		return err
	}

	if _, err := tx.Exec(`
		DELETE FROM mass_news
		WHERE id IN (
			SELECT id FROM mass_news
			WHERE mass_ref=$1
			ORDER BY created_at DESC, id DESC
			OFFSET $2
		)
	`, ref, models.FeedCap); err != nil {
		return err
	}

	return tx.Commit()
}
