package repositories

import (
	"database/sql"
	"errors"
	"time"

	"soccermass/internal/models"
)

type ClubRepository interface {
	GetByRef(mass, ref string) (*models.Club, error)
	// AssignManager ties the manager to the club only when the manager slot is
	// still empty (compare-and-swap); returns false when another signup won.
	// On success a management-history entry is recorded in the same tx.
	AssignManager(mass, ref, handle, email string, arrival time.Time) (bool, error)
	AppendEvent(mass, ref, event string) error
	// AppendReport head-inserts into the club report feed and truncates it to
	// models.FeedCap entries.
	AppendReport(mass, ref string, rep models.ClubReport) error
}

type clubRepository struct {
	DB *sql.DB
}

func NewClubRepository(db *sql.DB) ClubRepository {
	return &clubRepository{DB: db}
}

func (r *clubRepository) GetByRef(mass, ref string) (*models.Club, error) {
	const q = `
		SELECT id, mass_ref, ref, title, nickname, manager, manager_email
		FROM clubs
		WHERE mass_ref = $1 AND ref = $2
	`
	c := &models.Club{}
	var manager, managerEmail sql.NullString
	err := r.DB.QueryRow(q, mass, ref).Scan(
		&c.ID, &c.Mass, &c.Ref, &c.Title, &c.Nickname, &manager, &managerEmail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if manager.Valid {
		s := manager.String
		c.Manager = &s
	}
	if managerEmail.Valid {
		s := managerEmail.String
		c.ManagerEmail = &s
	}
	return c, nil
}

func (r *clubRepository) AssignManager(mass, ref, handle, email string, arrival time.Time) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE clubs
		SET manager=$1, manager_email=$2
		WHERE mass_ref=$3 AND ref=$4 AND manager IS NULL
	`, handle, email, mass, ref)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`
		INSERT INTO club_managers (mass_ref, club_ref, manager, arrival, departure)
		VALUES ($1, $2, $3, $4, NULL)
	`, mass, ref, handle, arrival); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *clubRepository) AppendEvent(mass, ref, event string) error {
	_, err := r.DB.Exec(`
		INSERT INTO club_events (mass_ref, club_ref, event)
		VALUES ($1, $2, $3)
	`, mass, ref, event)
	return err
}

func (r *clubRepository) AppendReport(mass, ref string, rep models.ClubReport) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO club_reports (mass_ref, club_ref, title, content, image)
		VALUES ($1, $2, $3, $4, $5)
	`, mass, ref, rep.Title, rep.Content, rep.Image); err != nil {
		return err
	}

	// truncate-on-insert: keep the newest FeedCap entries
	if _, err := tx.Exec(`
		DELETE FROM club_reports
		WHERE id IN (
			SELECT id FROM club_reports
			WHERE mass_ref=$1 AND club_ref=$2
			ORDER BY created_at DESC, id DESC
			OFFSET $3
		)
	`, mass, ref, models.FeedCap); err != nil {
		return err
	}

	return tx.Commit()
}
