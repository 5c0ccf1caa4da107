package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"soccermass/internal/models"
)

// ErrDuplicate maps the store's unique-violation (email/handle) to a typed
// error the services can branch on.
var ErrDuplicate = errors.New("duplicate key")

type ProfileRepository interface {
	Create(p *models.Profile) error
	GetByEmail(email string) (*models.Profile, error)
	GetByEmailHandle(email, handle string) (*models.Profile, error)
	GetBySession(session string) (*models.Profile, error)
	GetByHandleAndCode(handle, code string) (*models.Profile, error)
	EmailTaken(email string) (bool, error)

	// SetVerification installs an outstanding email-verification reference:
	// both the link code and the otp sub-record, so signin's re-issue logic
	// sees purpose and expiry.
	SetVerification(id int64, code string, expires time.Time) error
	// ConsumeVerification marks the email verified and clears the one-time
	// code, conditional on handle+code still matching. Returns false when the
	// predicate no longer matches (replayed or tampered link).
	ConsumeVerification(handle, code string) (bool, error)

	// RecordFailedAttempt atomically increments the counter and stamps the
	// attempt time; when lock is set the lockout timestamp is applied too.
	RecordFailedAttempt(id int64, lock bool) error
	ClearLock(id int64) error

	// SetOTP installs a reset OTP (code, purpose, expiry, pending hash).
	SetOTP(id int64, otp models.OTP) error
	// ApplyPasswordReset rotates the session, installs the pending hash as the
	// active password and clears the whole otp sub-record.
	ApplyPasswordReset(id int64, session, passwordHash string) error

	// MarkDeletion stamps the deletion request once; false when already set.
	MarkDeletion(id int64) (bool, error)
}

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{DB: db}
}

const profileColumns = `
	id, mass_ref, division, club_ref, email, handle, full_name, role, gender,
	dob, status, password_hash, session, email_verified, verify_code,
	failed_counter, last_attempt, locked_at,
	otp_code, otp_purpose, otp_expires, otp_data,
	deletion_at, registered_at
`

func (r *profileRepository) Create(p *models.Profile) error {
	const q = `
		INSERT INTO profiles (
			mass_ref, division, club_ref, email, handle, full_name, role,
			gender, dob, status, password_hash, session, registered_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id
	`
	err := r.DB.QueryRow(q,
		p.Mass, p.Division, p.Club, p.Email, p.Handle, p.FullName, p.Role,
		p.Gender, p.DOB, p.Status, p.PasswordHash, p.Session, p.RegisteredAt,
	).Scan(&p.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *profileRepository) getOne(where string, args ...any) (*models.Profile, error) {
	row := r.DB.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE `+where, args...)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *profileRepository) GetByEmail(email string) (*models.Profile, error) {
	return r.getOne(`email = $1`, email)
}

func (r *profileRepository) GetByEmailHandle(email, handle string) (*models.Profile, error) {
	return r.getOne(`email = $1 AND handle = $2`, email, handle)
}

func (r *profileRepository) GetBySession(session string) (*models.Profile, error) {
	return r.getOne(`session = $1`, session)
}

func (r *profileRepository) GetByHandleAndCode(handle, code string) (*models.Profile, error) {
	return r.getOne(`handle = $1 AND verify_code = $2`, handle, code)
}

func (r *profileRepository) EmailTaken(email string) (bool, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM profiles WHERE email = $1`, email).Scan(&c)
	return c > 0, err
}

func (r *profileRepository) SetVerification(id int64, code string, expires time.Time) error {
	const q = `
		UPDATE profiles
		SET verify_code=$1, otp_code=$1, otp_purpose=$2, otp_expires=$3, otp_data=NULL
		WHERE id=$4
	`
	_, err := r.DB.Exec(q, code, models.OTPPurposeEmailVerification, expires, id)
	return err
}

func (r *profileRepository) ConsumeVerification(handle, code string) (bool, error) {
	const q = `
		UPDATE profiles
		SET email_verified=TRUE, verify_code=NULL,
		    otp_code=NULL, otp_purpose=NULL, otp_expires=NULL, otp_data=NULL
		WHERE handle=$1 AND verify_code=$2
	`
	res, err := r.DB.Exec(q, handle, code)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *profileRepository) RecordFailedAttempt(id int64, lock bool) error {
	const q = `
		UPDATE profiles
		SET failed_counter = failed_counter + 1,
		    last_attempt = NOW(),
		    locked_at = CASE WHEN $2 THEN NOW() ELSE locked_at END
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, id, lock)
	return err
}

func (r *profileRepository) ClearLock(id int64) error {
	const q = `
		UPDATE profiles
		SET locked_at=NULL, failed_counter=0, last_attempt=NULL
		WHERE id=$1
	`
	_, err := r.DB.Exec(q, id)
	return err
}

func (r *profileRepository) SetOTP(id int64, otp models.OTP) error {
	const q = `
		UPDATE profiles
		SET otp_code=$1, otp_purpose=$2, otp_expires=$3, otp_data=$4
		WHERE id=$5
	`
	_, err := r.DB.Exec(q, otp.Code, otp.Purpose, otp.ExpiresAt, otp.Data, id)
	return err
}

func (r *profileRepository) ApplyPasswordReset(id int64, session, passwordHash string) error {
	const q = `
		UPDATE profiles
		SET session=$1, password_hash=$2,
		    otp_code=NULL, otp_purpose=NULL, otp_expires=NULL, otp_data=NULL
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, session, passwordHash, id)
	return err
}

func (r *profileRepository) MarkDeletion(id int64) (bool, error) {
	res, err := r.DB.Exec(`UPDATE profiles SET deletion_at=NOW() WHERE id=$1 AND deletion_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	p := &models.Profile{}
	var (
		verifyCode  sql.NullString
		lastAttempt sql.NullTime
		lockedAt    sql.NullTime
		otpCode     sql.NullString
		otpPurpose  sql.NullString
		otpExpires  sql.NullTime
		otpData     sql.NullString
		deletionAt  sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Mass, &p.Division, &p.Club, &p.Email, &p.Handle, &p.FullName,
		&p.Role, &p.Gender, &p.DOB, &p.Status, &p.PasswordHash, &p.Session,
		&p.EmailVerified, &verifyCode,
		&p.FailedCounter, &lastAttempt, &lockedAt,
		&otpCode, &otpPurpose, &otpExpires, &otpData,
		&deletionAt, &p.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	if verifyCode.Valid {
		s := verifyCode.String
		p.VerifyCode = &s
	}
	if lastAttempt.Valid {
		t := lastAttempt.Time
		p.LastAttempt = &t
	}
	if lockedAt.Valid {
		t := lockedAt.Time
		p.LockedAt = &t
	}
	if otpCode.Valid {
		s := otpCode.String
		p.OTP.Code = &s
	}
	if otpPurpose.Valid {
		p.OTP.Purpose = otpPurpose.String
	}
	if otpExpires.Valid {
		t := otpExpires.Time
		p.OTP.ExpiresAt = &t
	}
	if otpData.Valid {
		s := otpData.String
		p.OTP.Data = &s
	}
	if deletionAt.Valid {
		t := deletionAt.Time
		p.DeletionAt = &t
	}
	return p, nil
}
