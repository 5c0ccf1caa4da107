package services

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"soccermass/internal/models"
	"soccermass/internal/repositories"
	"soccermass/internal/utils"
)

// Closed error set for the account lifecycle. Handlers map these to HTTP
// statuses; anything else is an upstream failure and stays generic.
var (
	ErrInvalidCredentials = errors.New("Invalid Email/Password")
	ErrAccountInactive    = errors.New("Reach out to us for assistance in reactivating your account or to inquire about the cause of deactivation")
	ErrAccountLocked      = errors.New("Account is temporarily locked, Please try again later")
	ErrVerifyEmailSent    = errors.New("Kindly check your email inbox/spam for a verification email we just sent")
	ErrVerifyEmailExists  = errors.New("Kindly check your inbox/spam for our latest verification email from SoccerMASS")
	ErrInvalidMass        = errors.New("invalid mass")
	ErrInvalidClub        = errors.New("invalid club")
	ErrClubManaged        = errors.New("club is already managed")
	ErrEmailTaken         = errors.New("email taken")
	ErrProfileNotFound    = errors.New("profile does not exist")
	ErrInvalidLink        = errors.New("invalid or expired link")
	ErrWrongOTP           = errors.New("wrong otp provided")
	ErrOTPUsed            = errors.New("otp has been used")
	ErrNoPendingPassword  = errors.New("new password not saved")
	ErrOTPExpired         = errors.New("otp has expired")
	ErrDeletionInitiated  = errors.New("Data deletion already initiated")
	ErrSuspiciousToken    = errors.New("suspicious token")
)

// Lockout/retry policy and OTP lifetime.
const (
	warnAttemptFirst = 5
	warnAttemptLast  = 6
	lockAttempt      = 7
	lockWindow       = time.Hour
	otpTTL           = 3 * time.Hour
)

// ReceiptWriter produces the audit artifact for a data-deletion request.
type ReceiptWriter interface {
	DeletionReceipt(handle, email, comment string, at time.Time) (string, error)
}

type SignupInput struct {
	Mass     string
	Division int
	Club     string
	Handle   string
	Password string
	DOB      string
	Email    string
	Gender   string
}

type SigninResult struct {
	Token    string
	Role     string
	FullName string
	Handle   string
}

type LegacySession struct {
	Token    string `json:"token"`
	Handle   string `json:"handle"`
	Division int    `json:"division"`
	Mass     string `json:"mass"`
	Club     string `json:"club"`
}

type AccountService struct {
	profiles repositories.ProfileRepository
	clubs    repositories.ClubRepository
	masses   repositories.MassRepository
	contacts repositories.ContactRepository
	auth     AuthService
	tokens   TokenIssuer
	mailer   Mailer
	alerts   AlertService // nil when disabled
	receipts ReceiptWriter
	apiURL   string

	now func() time.Time
}

func NewAccountService(
	profiles repositories.ProfileRepository,
	clubs repositories.ClubRepository,
	masses repositories.MassRepository,
	contacts repositories.ContactRepository,
	auth AuthService,
	tokens TokenIssuer,
	mailer Mailer,
	alerts AlertService,
	receipts ReceiptWriter,
	apiURL string,
) *AccountService {
	return &AccountService{
		profiles: profiles,
		clubs:    clubs,
		masses:   masses,
		contacts: contacts,
		auth:     auth,
		tokens:   tokens,
		mailer:   mailer,
		alerts:   alerts,
		receipts: receipts,
		apiURL:   apiURL,
		now:      time.Now,
	}
}

func (s *AccountService) hoursSince(t *time.Time) float64 {
	if t == nil {
		return 1 << 20
	}
	return s.now().Sub(*t).Hours()
}

func (s *AccountService) pushMail(m Mail) {
	if err := s.mailer.Send(m); err != nil {
		log.Printf("[mail][%s] send to %s failed: %v", m.Template, m.Address, err)
	}
}

// Signup registers a manager profile and performs the club/mass side effects:
// manager slot CAS, unmanaged counter decrement, news/event/report feed
// entries, then the profile record and its verification mail.
func (s *AccountService) Signup(in SignupInput) error {
	mass, err := s.masses.GetByRef(in.Mass)
	if err != nil {
		return fmt.Errorf("load mass: %w", err)
	}
	if mass == nil {
		return ErrInvalidMass
	}

	club, err := s.clubs.GetByRef(in.Mass, in.Club)
	if err != nil {
		return fmt.Errorf("load club: %w", err)
	}
	if club == nil {
		return ErrInvalidClub
	}
	if club.Manager != nil {
		return ErrClubManaged
	}

	taken, err := s.profiles.EmailTaken(in.Email)
	if err != nil {
		return fmt.Errorf("email lookup: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	registered := s.now()

	// CAS first: a lost race mutates nothing else.
	assigned, err := s.clubs.AssignManager(in.Mass, in.Club, in.Handle, in.Email, registered)
	if err != nil {
		return fmt.Errorf("assign manager: %w", err)
	}
	if !assigned {
		return ErrClubManaged
	}

	if err := s.masses.DecrementUnmanaged(in.Mass, in.Division); err != nil {
		return fmt.Errorf("unmanaged counters: %w", err)
	}
	if err := s.masses.AppendNews(in.Mass, appointmentNews(in)); err != nil {
		return fmt.Errorf("mass news: %w", err)
	}
	if err := s.clubs.AppendEvent(in.Mass, in.Club, appointmentEvent(in)); err != nil {
		return fmt.Errorf("club event: %w", err)
	}
	if err := s.clubs.AppendReport(in.Mass, in.Club, firstTrainingReport(in)); err != nil {
		return fmt.Errorf("club report: %w", err)
	}

	session, err := utils.NewSession()
	if err != nil {
		return err
	}
	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return err
	}

	profile := &models.Profile{
		Mass:         in.Mass,
		Division:     in.Division,
		Club:         in.Club,
		Email:        in.Email,
		Handle:       in.Handle,
		FullName:     in.Handle, // display name until the profile is filled in
		Role:         "manager",
		Gender:       in.Gender,
		DOB:          in.DOB,
		Status:       models.StatusActive,
		PasswordHash: hash,
		Session:      session,
		RegisteredAt: registered,
	}
	if err := s.profiles.Create(profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrEmailTaken
		}
		return fmt.Errorf("profile creation: %w", err)
	}

	code, err := utils.NewReference(profile.ID)
	if err != nil {
		return err
	}
	if err := s.profiles.SetVerification(profile.ID, code, registered.Add(otpTTL)); err != nil {
		return fmt.Errorf("store verification: %w", err)
	}

	s.pushMail(Mail{
		Address:  in.Email,
		Subject:  "SoccerMASS Account Verification",
		Template: "accountVerification",
		Data: map[string]string{
			"handle":         in.Handle,
			"activationLink": s.verificationLink(in.Handle, code, profile.ServerStamp()),
		},
	})
	return nil
}

func (s *AccountService) verificationLink(handle, code string, stamp int64) string {
	return fmt.Sprintf("%s/verify-account?handle=%s&code=%s&stamp=%d",
		s.apiURL, url.QueryEscape(handle), url.QueryEscape(code), stamp)
}

// VerifyAccount consumes a verification link. The stamp must equal the value
// re-derived from the stored registration time; the conditional update makes
// replayed links fail because the code predicate no longer matches.
func (s *AccountService) VerifyAccount(handle, code string, stamp int64) error {
	profile, err := s.profiles.GetByHandleAndCode(handle, code)
	if err != nil {
		return fmt.Errorf("verification lookup: %w", err)
	}
	if profile == nil {
		return ErrInvalidLink
	}
	if profile.ServerStamp() != stamp {
		log.Printf("[accounts][verify] stamp mismatch for handle=%s", handle)
		return ErrInvalidLink
	}
	ok, err := s.profiles.ConsumeVerification(handle, code)
	if err != nil {
		return fmt.Errorf("consume verification: %w", err)
	}
	if !ok {
		return ErrInvalidLink
	}
	return nil
}

// Signin runs the credential check with the lockout/retry policy. Failed
// attempts mutate state and trigger warning mails even though the request
// ultimately fails.
func (s *AccountService) Signin(email, password string) (*SigninResult, error) {
	profile, err := s.profiles.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("profile lookup: %w", err)
	}
	if profile == nil || profile.Session == "" {
		return nil, ErrInvalidCredentials
	}

	if profile.Status != models.StatusActive {
		return nil, ErrAccountInactive
	}

	if !s.auth.ComparePassword(password, profile.PasswordHash) {
		return nil, s.recordFailedAttempt(profile)
	}

	if profile.LockedAt != nil {
		if s.hoursSince(profile.LockedAt) <= 1 {
			return nil, ErrAccountLocked
		}
		if err := s.profiles.ClearLock(profile.ID); err != nil {
			return nil, fmt.Errorf("clear lock: %w", err)
		}
	} else if profile.FailedCounter > 0 {
		if err := s.profiles.ClearLock(profile.ID); err != nil {
			return nil, fmt.Errorf("reset counter: %w", err)
		}
	}

	if !profile.EmailVerified {
		return nil, s.requireVerification(profile)
	}

	token, err := s.tokens.SignSession(profile.Session, profile.FullName, profile.Handle)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.pushMail(Mail{
		Address:  email,
		Subject:  "Successful Login to SoccerMASS",
		Template: "successfulLogin",
		Data:     map[string]string{"fullName": profile.FullName},
	})

	return &SigninResult{
		Token:    token,
		Role:     profile.Role,
		FullName: profile.FullName,
		Handle:   profile.Handle,
	}, nil
}

func (s *AccountService) recordFailedAttempt(profile *models.Profile) error {
	failed := profile.FailedCounter + 1
	elapsed := s.hoursSince(profile.LastAttempt)

	if failed == warnAttemptFirst || failed == warnAttemptLast {
		s.pushMail(Mail{
			Address:  profile.Email,
			Subject:  "Failed Login Attempt - SoccerMASS",
			Template: "failedLogin",
			Data:     map[string]string{"fullName": profile.FullName},
		})
	}
	if failed == lockAttempt {
		s.pushMail(Mail{
			Address:  profile.Email,
			Subject:  "Account Lock Notice - SoccerMASS",
			Template: "lockNotice",
			Data:     map[string]string{"fullName": profile.FullName},
		})
	}

	lock := failed >= lockAttempt && elapsed < lockWindow.Hours()
	if err := s.profiles.RecordFailedAttempt(profile.ID, lock); err != nil {
		return fmt.Errorf("record failed attempt: %w", err)
	}
	if lock && s.alerts != nil {
		s.alerts.AccountLocked(profile.Handle, profile.Email)
	}
	return ErrInvalidCredentials
}

// requireVerification decides whether to re-issue a verification code: only
// when the outstanding OTP is not an email-verification one, or has expired.
func (s *AccountService) requireVerification(profile *models.Profile) error {
	current := profile.OTP.Purpose == models.OTPPurposeEmailVerification &&
		profile.OTP.ExpiresAt != nil && s.now().Before(*profile.OTP.ExpiresAt)
	if current {
		return ErrVerifyEmailExists
	}

	code, err := utils.NewReference(profile.ID)
	if err != nil {
		return err
	}
	if err := s.profiles.SetVerification(profile.ID, code, s.now().Add(otpTTL)); err != nil {
		return fmt.Errorf("reissue verification: %w", err)
	}
	s.pushMail(Mail{
		Address:  profile.Email,
		Subject:  "Verify your email to activate Your SoccerMASS account",
		Template: "accountVerification",
		Data: map[string]string{
			"handle":         profile.Handle,
			"activationLink": s.verificationLink(profile.Handle, code, profile.ServerStamp()),
		},
	})
	return ErrVerifyEmailSent
}

// RequestPasswordReset is phase 1 of the reset: the replacement password is
// hashed now and parked on the otp sub-record until the code is confirmed.
// Returns the obfuscated code, never the raw one.
func (s *AccountService) RequestPasswordReset(handle, email, newPassword string) (string, error) {
	profile, err := s.profiles.GetByEmailHandle(email, handle)
	if err != nil {
		return "", fmt.Errorf("profile lookup: %w", err)
	}
	if profile == nil {
		return "", ErrProfileNotFound
	}

	code, err := utils.NewOTPCode()
	if err != nil {
		return "", err
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return "", err
	}

	expires := s.now().Add(otpTTL)
	otp := models.OTP{
		Code:      &code,
		Purpose:   models.OTPPurposePasswordReset,
		ExpiresAt: &expires,
		Data:      &hash,
	}
	if err := s.profiles.SetOTP(profile.ID, otp); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	s.pushMail(Mail{
		Address:  email,
		Subject:  "SoccerMASS: OTP for Password reset",
		Template: "resetPassword",
		Data:     map[string]string{"handle": handle, "otp": code},
	})

	return utils.Obfuscate(code), nil
}

// ResetPassword is phase 2: each precondition has its own error since the
// caller already proved knowledge of handle+email in phase 1.
func (s *AccountService) ResetPassword(handle, email, otp string) error {
	profile, err := s.profiles.GetByEmailHandle(email, handle)
	if err != nil {
		return fmt.Errorf("profile lookup: %w", err)
	}
	if profile == nil {
		return ErrProfileNotFound
	}

	switch {
	case profile.OTP.Code == nil || profile.OTP.Purpose == "":
		return ErrOTPUsed
	case *profile.OTP.Code != otp:
		return ErrWrongOTP
	case profile.OTP.Data == nil:
		return ErrNoPendingPassword
	case profile.OTP.ExpiresAt == nil || s.now().After(*profile.OTP.ExpiresAt):
		return ErrOTPExpired
	}

	session, err := utils.NewSession()
	if err != nil {
		return err
	}
	if err := s.profiles.ApplyPasswordReset(profile.ID, session, *profile.OTP.Data); err != nil {
		return fmt.Errorf("apply reset: %w", err)
	}

	s.pushMail(Mail{
		Address:  email,
		Subject:  "SoccerMASS: Password reset Successfully",
		Template: "resetPasswordSuccess",
		Data:     map[string]string{"handle": handle},
	})
	return nil
}

// RequestDataDeletion stamps the deletion marker once, records the comment in
// the support ledger and emits the audit artifacts. The caller's session must
// resolve to the same profile the body names.
func (s *AccountService) RequestDataDeletion(session, email, handle, comment, password string) error {
	profile, err := s.profiles.GetBySession(session)
	if err != nil {
		return fmt.Errorf("profile lookup: %w", err)
	}
	if profile == nil || profile.Email != email {
		return ErrInvalidCredentials
	}
	if profile.DeletionAt != nil {
		return ErrDeletionInitiated
	}
	if !s.auth.ComparePassword(password, profile.PasswordHash) {
		return ErrInvalidCredentials
	}
	if handle != profile.Handle {
		return ErrInvalidCredentials
	}

	ok, err := s.profiles.MarkDeletion(profile.ID)
	if err != nil {
		return fmt.Errorf("mark deletion: %w", err)
	}
	if !ok {
		return ErrDeletionInitiated
	}

	if _, err := s.contacts.Create("Data Deletion", email, comment); err != nil {
		return fmt.Errorf("support ledger: %w", err)
	}

	if s.receipts != nil {
		if path, err := s.receipts.DeletionReceipt(handle, email, comment, s.now()); err != nil {
			log.Printf("[accounts][deletion] receipt failed for handle=%s: %v", handle, err)
		} else {
			log.Printf("[accounts][deletion] receipt written: %s", path)
		}
	}

	s.pushMail(Mail{
		Address:  email,
		Subject:  "SoccerMASS - Data Deletion",
		Template: "dataDeletion",
		Data:     map[string]string{"handle": handle},
	})
	if s.alerts != nil {
		s.alerts.DeletionRequested(handle, email)
	}
	return nil
}

// EmailTaken is the availability probe behind POST /email-taken.
func (s *AccountService) EmailTaken(email string) (bool, error) {
	return s.profiles.EmailTaken(email)
}

// PersistSession rehydrates a legacy client session into a fresh 90-day token.
func (s *AccountService) PersistSession(session string) (*LegacySession, error) {
	profile, err := s.profiles.GetBySession(session)
	if err != nil {
		return nil, fmt.Errorf("profile lookup: %w", err)
	}
	if profile == nil {
		return nil, ErrSuspiciousToken
	}
	token, err := s.tokens.SignLegacy(profile.Session, profile.Mass, profile.Club)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LegacySession{
		Token:    token,
		Handle:   profile.Handle,
		Division: profile.Division,
		Mass:     profile.Mass,
		Club:     profile.Club,
	}, nil
}

// ProfileBySession resolves the authenticated caller for protected handlers.
func (s *AccountService) ProfileBySession(session string) (*models.Profile, error) {
	return s.profiles.GetBySession(session)
}

// --- signup feed content -------------------------------------------------

// Club fields are referenced with @(club,<ref>,<field>) placeholders that the
// client resolves against its club store.
func pronouns(gender string) (subject, possessive string) {
	if gender == "male" {
		return "he", "his"
	}
	return "she", "her"
}

func appointmentNews(in SignupInput) models.NewsItem {
	subj, poss := pronouns(in.Gender)
	return models.NewsItem{
		Title: fmt.Sprintf("@(club,%s,title) has a new manager", in.Club),
		Content: fmt.Sprintf(
			"@(club,%s,title) has appointed %s as General Manager and Head Coach, following a convincing and engaging search by @(club,%s,nickname) President and Technical staff, %s will take the hot sit of @(club,%s,title), though inexperienced only time will tell how long %s can keep %s job",
			in.Club, in.Handle, in.Club, in.Handle, in.Club, subj, poss),
		Image: fmt.Sprintf("/club/%s.webp", in.Club),
	}
}

func appointmentEvent(in SignupInput) string {
	return fmt.Sprintf("%s was presented as @(club,%s,title) Head coach and General manager. After an extensive and tiring search", in.Handle, in.Club)
}

func firstTrainingReport(in SignupInput) models.ClubReport {
	_, poss := pronouns(in.Gender)
	return models.ClubReport{
		Title: fmt.Sprintf("First training session with @(club,%s,nickname) first team players", in.Club),
		Content: fmt.Sprintf(
			"Head coach %s, has just completed %s first training session with @(club,%s,title) senior squad, it was an intense exercise as the new manager gets ready to dip %s feet into the sea, %s next meeting will be with %s technical staff and %s assistant, before moving on to youth squad.",
			in.Handle, poss, in.Club, poss, poss, poss, poss),
		Image: fmt.Sprintf("/club/%s.webp", in.Club),
	}
}
