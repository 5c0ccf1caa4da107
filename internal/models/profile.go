package models

import "time"

// OTP purposes stored on the auth sub-record.
const (
	OTPPurposeEmailVerification = "email verification"
	OTPPurposePasswordReset     = "password reset"
)

// Account statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type OTP struct {
	Code      *string    `json:"-"`
	Purpose   string     `json:"-"`
	ExpiresAt *time.Time `json:"-"`
	// Data carries a pending payload, e.g. the pre-hashed replacement
	// password during a reset.
	Data *string `json:"-"`
}

type Profile struct {
	ID       int64  `json:"id"`
	Mass     string `json:"mass"`
	Division int    `json:"division"`
	Club     string `json:"club"`
	Email    string `json:"email"`
	Handle   string `json:"handle"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
	Status   string `json:"status"`

	PasswordHash string `json:"-"` // never leaves the server
	Session      string `json:"-"` // rotated on password change/reset

	EmailVerified bool    `json:"-"`
	VerifyCode    *string `json:"-"` // outstanding signup reference, nil once consumed

	FailedCounter int        `json:"-"`
	LastAttempt   *time.Time `json:"-"`
	LockedAt      *time.Time `json:"-"`

	OTP OTP `json:"-"`

	DeletionAt   *time.Time `json:"-"`
	RegisteredAt time.Time  `json:"registered_at"`
}

// Locked reports whether the lockout window is still in effect.
func (p *Profile) Locked(now time.Time) bool {
	return p.LockedAt != nil && now.Sub(*p.LockedAt) < time.Hour
}

// ServerStamp is the tamper-check value embedded in verification links,
// re-derived from the stored registration time.
func (p *Profile) ServerStamp() int64 {
	return p.RegisteredAt.UnixMilli()
}
