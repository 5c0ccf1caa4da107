package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soccermass/internal/models"
	"soccermass/internal/repositories"
)

// --- in-memory collaborators --------------------------------------------

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeProfiles struct {
	nextID int64
	byID   map[int64]*models.Profile
	now    func() time.Time
}

func newFakeProfiles(now func() time.Time) *fakeProfiles {
	return &fakeProfiles{byID: map[int64]*models.Profile{}, now: now}
}

func cloneProfile(p *models.Profile) *models.Profile {
	cp := *p
	clone := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := *s
		return &v
	}
	cloneT := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		v := *t
		return &v
	}
	cp.VerifyCode = clone(p.VerifyCode)
	cp.LastAttempt = cloneT(p.LastAttempt)
	cp.LockedAt = cloneT(p.LockedAt)
	cp.OTP.Code = clone(p.OTP.Code)
	cp.OTP.ExpiresAt = cloneT(p.OTP.ExpiresAt)
	cp.OTP.Data = clone(p.OTP.Data)
	cp.DeletionAt = cloneT(p.DeletionAt)
	return &cp
}

func (f *fakeProfiles) find(match func(*models.Profile) bool) *models.Profile {
	for _, p := range f.byID {
		if match(p) {
			return cloneProfile(p)
		}
	}
	return nil
}

func (f *fakeProfiles) Create(p *models.Profile) error {
	for _, existing := range f.byID {
		if existing.Email == p.Email || existing.Handle == p.Handle {
			return repositories.ErrDuplicate
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.byID[p.ID] = cloneProfile(p)
	return nil
}

func (f *fakeProfiles) GetByEmail(email string) (*models.Profile, error) {
	return f.find(func(p *models.Profile) bool { return p.Email == email }), nil
}

func (f *fakeProfiles) GetByEmailHandle(email, handle string) (*models.Profile, error) {
	return f.find(func(p *models.Profile) bool { return p.Email == email && p.Handle == handle }), nil
}

func (f *fakeProfiles) GetBySession(session string) (*models.Profile, error) {
	return f.find(func(p *models.Profile) bool { return p.Session == session }), nil
}

func (f *fakeProfiles) GetByHandleAndCode(handle, code string) (*models.Profile, error) {
	return f.find(func(p *models.Profile) bool {
		return p.Handle == handle && p.VerifyCode != nil && *p.VerifyCode == code
	}), nil
}

func (f *fakeProfiles) EmailTaken(email string) (bool, error) {
	p, _ := f.GetByEmail(email)
	return p != nil, nil
}

func (f *fakeProfiles) SetVerification(id int64, code string, expires time.Time) error {
	p := f.byID[id]
	c := code
	e := expires
	p.VerifyCode = &c
	p.OTP = models.OTP{Code: &c, Purpose: models.OTPPurposeEmailVerification, ExpiresAt: &e}
	return nil
}

func (f *fakeProfiles) ConsumeVerification(handle, code string) (bool, error) {
	for _, p := range f.byID {
		if p.Handle == handle && p.VerifyCode != nil && *p.VerifyCode == code {
			p.EmailVerified = true
			p.VerifyCode = nil
			p.OTP = models.OTP{}
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfiles) RecordFailedAttempt(id int64, lock bool) error {
	p := f.byID[id]
	p.FailedCounter++
	now := f.now()
	p.LastAttempt = &now
	if lock {
		locked := now
		p.LockedAt = &locked
	}
	return nil
}

func (f *fakeProfiles) ClearLock(id int64) error {
	p := f.byID[id]
	p.LockedAt = nil
	p.FailedCounter = 0
	p.LastAttempt = nil
	return nil
}

func (f *fakeProfiles) SetOTP(id int64, otp models.OTP) error {
	f.byID[id].OTP = otp
	return nil
}

func (f *fakeProfiles) ApplyPasswordReset(id int64, session, passwordHash string) error {
	p := f.byID[id]
	p.Session = session
	p.PasswordHash = passwordHash
	p.OTP = models.OTP{}
	return nil
}

func (f *fakeProfiles) MarkDeletion(id int64) (bool, error) {
	p := f.byID[id]
	if p.DeletionAt != nil {
		return false, nil
	}
	now := f.now()
	p.DeletionAt = &now
	return true, nil
}

type fakeClub struct {
	club    models.Club
	events  []string
	reports []models.ClubReport
}

type fakeClubs struct {
	byRef map[string]*fakeClub // key mass/ref
}

func (f *fakeClubs) key(mass, ref string) string { return mass + "/" + ref }

func (f *fakeClubs) GetByRef(mass, ref string) (*models.Club, error) {
	c, ok := f.byRef[f.key(mass, ref)]
	if !ok {
		return nil, nil
	}
	cp := c.club
	return &cp, nil
}

func (f *fakeClubs) AssignManager(mass, ref, handle, email string, arrival time.Time) (bool, error) {
	c := f.byRef[f.key(mass, ref)]
	if c.club.Manager != nil {
		return false, nil
	}
	h, e := handle, email
	c.club.Manager = &h
	c.club.ManagerEmail = &e
	return true, nil
}

func (f *fakeClubs) AppendEvent(mass, ref, event string) error {
	c := f.byRef[f.key(mass, ref)]
	c.events = append(c.events, event)
	return nil
}

func (f *fakeClubs) AppendReport(mass, ref string, rep models.ClubReport) error {
	c := f.byRef[f.key(mass, ref)]
	c.reports = append([]models.ClubReport{rep}, c.reports...)
	if len(c.reports) > models.FeedCap {
		c.reports = c.reports[:models.FeedCap]
	}
	return nil
}

type fakeMasses struct {
	unmanaged map[string]map[int]int // mass -> division -> slots
	total     map[string]int
	news      map[string][]models.NewsItem
}

func (f *fakeMasses) GetByRef(ref string) (*models.Mass, error) {
	if _, ok := f.unmanaged[ref]; !ok {
		return nil, nil
	}
	return &models.Mass{Ref: ref, UnmanagedTotal: f.total[ref]}, nil
}

func (f *fakeMasses) DecrementUnmanaged(ref string, division int) error {
	if f.unmanaged[ref][division] > 0 {
		f.unmanaged[ref][division]--
		if f.total[ref] > 0 {
			f.total[ref]--
		}
	}
	return nil
}

func (f *fakeMasses) AppendNews(ref string, item models.NewsItem) error {
	f.news[ref] = append([]models.NewsItem{item}, f.news[ref]...)
	if len(f.news[ref]) > models.FeedCap {
		f.news[ref] = f.news[ref][:models.FeedCap]
	}
	return nil
}

type fakeContacts struct {
	entries []models.ContactEntry
}

func (f *fakeContacts) Create(category, email, comment string) (*models.ContactEntry, error) {
	entry := models.ContactEntry{Category: category, Email: email, Comment: comment}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

type fakeMailer struct {
	sent []Mail
}

func (f *fakeMailer) Send(m Mail) error {
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMailer) byTemplate(name string) []Mail {
	var out []Mail
	for _, m := range f.sent {
		if m.Template == name {
			out = append(out, m)
		}
	}
	return out
}

type fakeAlerts struct {
	locked    int
	deletions int
}

func (f *fakeAlerts) AccountLocked(handle, email string)     { f.locked++ }
func (f *fakeAlerts) DeletionRequested(handle, email string) { f.deletions++ }

// fakeHasher keeps tests deterministic and fast.
type fakeHasher struct{}

func (fakeHasher) HashPassword(plain string) (string, error) { return "h:" + plain, nil }
func (fakeHasher) ComparePassword(plain, hash string) bool   { return hash == "h:"+plain }

type fakeTokens struct {
	signed int
}

func (f *fakeTokens) SignSession(session, fullName, handle string) (string, error) {
	f.signed++
	return "sess:" + session, nil
}

func (f *fakeTokens) SignLegacy(session, mass, club string) (string, error) {
	f.signed++
	return "legacy:" + session, nil
}

// --- fixture --------------------------------------------------------------

type fixture struct {
	svc      *AccountService
	profiles *fakeProfiles
	clubs    *fakeClubs
	masses   *fakeMasses
	contacts *fakeContacts
	mailer   *fakeMailer
	alerts   *fakeAlerts
	tokens   *fakeTokens
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	f := &fixture{
		profiles: newFakeProfiles(clock.Now),
		clubs: &fakeClubs{byRef: map[string]*fakeClub{
			"m1/c1": {club: models.Club{Mass: "m1", Ref: "c1", Title: "City FC", Nickname: "The Citizens"}},
			"m1/c2": {club: models.Club{Mass: "m1", Ref: "c2", Title: "United FC", Nickname: "The Reds"}},
		}},
		masses: &fakeMasses{
			unmanaged: map[string]map[int]int{"m1": {1: 3}},
			total:     map[string]int{"m1": 3},
			news:      map[string][]models.NewsItem{},
		},
		contacts: &fakeContacts{},
		mailer:   &fakeMailer{},
		alerts:   &fakeAlerts{},
		tokens:   &fakeTokens{},
		clock:    clock,
	}
	f.svc = NewAccountService(
		f.profiles, f.clubs, f.masses, f.contacts,
		fakeHasher{}, f.tokens, f.mailer, f.alerts, nil,
		"http://localhost:8080",
	)
	f.svc.now = clock.Now
	return f
}

func validSignup() SignupInput {
	return SignupInput{
		Mass:     "m1",
		Division: 1,
		Club:     "c1",
		Handle:   "alice",
		Password: "Secret123!",
		DOB:      "1990-01-01",
		Email:    "a@x.com",
		Gender:   "female",
	}
}

func (f *fixture) signupVerified(t *testing.T, in SignupInput) *models.Profile {
	t.Helper()
	require.NoError(t, f.svc.Signup(in))
	p, err := f.profiles.GetByEmail(in.Email)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, p.VerifyCode)
	require.NoError(t, f.svc.VerifyAccount(in.Handle, *p.VerifyCode, p.ServerStamp()))
	p, err = f.profiles.GetByEmail(in.Email)
	require.NoError(t, err)
	return p
}

// --- signup ---------------------------------------------------------------

func TestSignupAssignsClubAndDecrementsCounters(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Signup(validSignup()))

	assert.Equal(t, 2, f.masses.unmanaged["m1"][1])
	assert.Equal(t, 2, f.masses.total["m1"])
	require.Len(t, f.masses.news["m1"], 1)
	assert.Contains(t, f.masses.news["m1"][0].Title, "new manager")

	club, _ := f.clubs.GetByRef("m1", "c1")
	require.NotNil(t, club.Manager)
	assert.Equal(t, "alice", *club.Manager)
	assert.Len(t, f.clubs.byRef["m1/c1"].events, 1)
	assert.Len(t, f.clubs.byRef["m1/c1"].reports, 1)

	p, _ := f.profiles.GetByEmail("a@x.com")
	require.NotNil(t, p)
	assert.False(t, p.EmailVerified)
	require.NotNil(t, p.VerifyCode)
	assert.NotEqual(t, "verified", *p.VerifyCode)
	assert.Equal(t, models.OTPPurposeEmailVerification, p.OTP.Purpose)

	mails := f.mailer.byTemplate("accountVerification")
	require.Len(t, mails, 1)
	assert.Equal(t, "a@x.com", mails[0].Address)
	assert.Contains(t, mails[0].Data["activationLink"], *p.VerifyCode)
	assert.Contains(t, mails[0].Data["activationLink"], fmt.Sprintf("stamp=%d", p.ServerStamp()))
}

func TestSignupDuplicateEmailMutatesNothing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Signup(validSignup()))

	dup := validSignup()
	dup.Club = "c2"
	dup.Handle = "bob"

	err := f.svc.Signup(dup)
	require.ErrorIs(t, err, ErrEmailTaken)

	// second club untouched, counters unchanged
	club, _ := f.clubs.GetByRef("m1", "c2")
	assert.Nil(t, club.Manager)
	assert.Equal(t, 2, f.masses.unmanaged["m1"][1])
	assert.Len(t, f.masses.news["m1"], 1)
}

func TestSignupPreconditions(t *testing.T) {
	f := newFixture(t)

	in := validSignup()
	in.Mass = "nope"
	require.ErrorIs(t, f.svc.Signup(in), ErrInvalidMass)

	in = validSignup()
	in.Club = "nope"
	require.ErrorIs(t, f.svc.Signup(in), ErrInvalidClub)

	require.NoError(t, f.svc.Signup(validSignup()))
	in = validSignup()
	in.Handle = "bob"
	in.Email = "b@x.com"
	require.ErrorIs(t, f.svc.Signup(in), ErrClubManaged)
}

// --- verification ---------------------------------------------------------

func TestVerifyAccountConsumesLinkOnce(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Signup(validSignup()))

	p, _ := f.profiles.GetByEmail("a@x.com")
	code, stamp := *p.VerifyCode, p.ServerStamp()

	require.NoError(t, f.svc.VerifyAccount("alice", code, stamp))
	p, _ = f.profiles.GetByEmail("a@x.com")
	assert.True(t, p.EmailVerified)
	assert.Nil(t, p.VerifyCode)

	// replay fails: predicate no longer matches
	require.ErrorIs(t, f.svc.VerifyAccount("alice", code, stamp), ErrInvalidLink)
}

func TestVerifyAccountRejectsTamperedStamp(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Signup(validSignup()))

	p, _ := f.profiles.GetByEmail("a@x.com")
	require.ErrorIs(t, f.svc.VerifyAccount("alice", *p.VerifyCode, p.ServerStamp()+1), ErrInvalidLink)

	// code survives a tampered attempt
	p, _ = f.profiles.GetByEmail("a@x.com")
	assert.NotNil(t, p.VerifyCode)
	assert.False(t, p.EmailVerified)
}

// --- signin ---------------------------------------------------------------

func TestSigninUnknownEmailIsUniform(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Signin("ghost@x.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSigninUnverifiedNeverIssuesToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Signup(validSignup()))

	// fresh verification OTP outstanding: point at the existing mail
	result, err := f.svc.Signin("a@x.com", "Secret123!")
	require.ErrorIs(t, err, ErrVerifyEmailExists)
	assert.Nil(t, result)

	// expired OTP: a new code is issued, signin still fails
	f.clock.Advance(4 * time.Hour)
	result, err = f.svc.Signin("a@x.com", "Secret123!")
	require.ErrorIs(t, err, ErrVerifyEmailSent)
	assert.Nil(t, result)
	assert.Len(t, f.mailer.byTemplate("accountVerification"), 2)

	assert.Zero(t, f.tokens.signed)
}

func TestSigninSuccess(t *testing.T) {
	f := newFixture(t)
	f.signupVerified(t, validSignup())

	result, err := f.svc.Signin("a@x.com", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Handle)
	assert.Equal(t, "manager", result.Role)
	assert.True(t, strings.HasPrefix(result.Token, "sess:"))
	assert.Len(t, f.mailer.byTemplate("successfulLogin"), 1)
}

func TestSigninInactiveAccount(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())
	f.profiles.byID[p.ID].Status = models.StatusSuspended

	_, err := f.svc.Signin("a@x.com", "Secret123!")
	require.ErrorIs(t, err, ErrAccountInactive)
}

func TestSigninLockoutSequence(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())

	for i := 1; i <= 7; i++ {
		f.clock.Advance(time.Minute)
		_, err := f.svc.Signin("a@x.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i)
	}

	// warnings at 5 and 6, lock notice at 7
	assert.Len(t, f.mailer.byTemplate("failedLogin"), 2)
	assert.Len(t, f.mailer.byTemplate("lockNotice"), 1)
	assert.Equal(t, 1, f.alerts.locked)

	stored := f.profiles.byID[p.ID]
	assert.Equal(t, 7, stored.FailedCounter)
	require.NotNil(t, stored.LockedAt)

	// correct password is rejected while the lock window holds
	_, err := f.svc.Signin("a@x.com", "Secret123!")
	require.ErrorIs(t, err, ErrAccountLocked)

	// after the window the correct password succeeds and resets the counter
	f.clock.Advance(61 * time.Minute)
	result, err := f.svc.Signin("a@x.com", "Secret123!")
	require.NoError(t, err)
	assert.NotNil(t, result)

	stored = f.profiles.byID[p.ID]
	assert.Zero(t, stored.FailedCounter)
	assert.Nil(t, stored.LockedAt)
	assert.Nil(t, stored.LastAttempt)
}

func TestSigninNoLockWhenAttemptsAreSpreadOut(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())

	for i := 1; i <= 6; i++ {
		f.clock.Advance(time.Minute)
		_, err := f.svc.Signin("a@x.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// the 7th attempt arrives over an hour after the 6th: no lock
	f.clock.Advance(2 * time.Hour)
	_, err := f.svc.Signin("a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	stored := f.profiles.byID[p.ID]
	assert.Equal(t, 7, stored.FailedCounter)
	assert.Nil(t, stored.LockedAt)
	assert.Len(t, f.mailer.byTemplate("lockNotice"), 1)
}

func TestSigninResetsCounterAfterSuccess(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())

	for i := 0; i < 3; i++ {
		_, err := f.svc.Signin("a@x.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := f.svc.Signin("a@x.com", "Secret123!")
	require.NoError(t, err)
	assert.Zero(t, f.profiles.byID[p.ID].FailedCounter)
}

// --- password reset -------------------------------------------------------

func TestPasswordResetTwoPhase(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())
	oldSession := p.Session

	obfuscated, err := f.svc.RequestPasswordReset("alice", "a@x.com", "NewSecret1!")
	require.NoError(t, err)

	stored := f.profiles.byID[p.ID]
	require.NotNil(t, stored.OTP.Code)
	code := *stored.OTP.Code
	assert.Len(t, code, 7)
	assert.Equal(t, models.OTPPurposePasswordReset, stored.OTP.Purpose)
	require.NotNil(t, stored.OTP.Data)
	assert.Equal(t, "h:NewSecret1!", *stored.OTP.Data)

	// obfuscated form never equals nor leaks the raw code
	assert.NotEqual(t, code, obfuscated)
	assert.Equal(t, code[:1]+"*****"+code[6:], obfuscated)

	mails := f.mailer.byTemplate("resetPassword")
	require.Len(t, mails, 1)
	assert.Equal(t, code, mails[0].Data["otp"])

	require.ErrorIs(t, f.svc.ResetPassword("alice", "a@x.com", "0000000"), ErrWrongOTP)

	require.NoError(t, f.svc.ResetPassword("alice", "a@x.com", code))
	stored = f.profiles.byID[p.ID]
	assert.Equal(t, "h:NewSecret1!", stored.PasswordHash)
	assert.NotEqual(t, oldSession, stored.Session) // token revocation via rotation
	assert.Nil(t, stored.OTP.Code)

	// single-use: replaying the consumed code
	require.ErrorIs(t, f.svc.ResetPassword("alice", "a@x.com", code), ErrOTPUsed)

	// and the new password signs in
	_, err = f.svc.Signin("a@x.com", "NewSecret1!")
	require.NoError(t, err)
}

func TestPasswordResetExpiry(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())

	_, err := f.svc.RequestPasswordReset("alice", "a@x.com", "NewSecret1!")
	require.NoError(t, err)
	code := *f.profiles.byID[p.ID].OTP.Code

	f.clock.Advance(3*time.Hour + time.Minute)
	require.ErrorIs(t, f.svc.ResetPassword("alice", "a@x.com", code), ErrOTPExpired)
}

func TestPasswordResetUnknownProfile(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RequestPasswordReset("ghost", "g@x.com", "NewSecret1!")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

// --- data deletion --------------------------------------------------------

func TestDataDeletionLifecycle(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())

	err := f.svc.RequestDataDeletion(p.Session, "a@x.com", "alice", "please remove me", "Secret123!")
	require.NoError(t, err)

	stored := f.profiles.byID[p.ID]
	require.NotNil(t, stored.DeletionAt)
	require.Len(t, f.contacts.entries, 1)
	assert.Equal(t, "Data Deletion", f.contacts.entries[0].Category)
	assert.Len(t, f.mailer.byTemplate("dataDeletion"), 1)
	assert.Equal(t, 1, f.alerts.deletions)

	// idempotent guard
	err = f.svc.RequestDataDeletion(p.Session, "a@x.com", "alice", "again", "Secret123!")
	require.ErrorIs(t, err, ErrDeletionInitiated)
}

func TestDataDeletionRejectsMismatchedIdentity(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())

	require.ErrorIs(t,
		f.svc.RequestDataDeletion("bogus-session", "a@x.com", "alice", "bye", "Secret123!"),
		ErrInvalidCredentials)
	require.ErrorIs(t,
		f.svc.RequestDataDeletion(p.Session, "other@x.com", "alice", "bye", "Secret123!"),
		ErrInvalidCredentials)
	require.ErrorIs(t,
		f.svc.RequestDataDeletion(p.Session, "a@x.com", "alice", "bye", "wrong"),
		ErrInvalidCredentials)
	require.ErrorIs(t,
		f.svc.RequestDataDeletion(p.Session, "a@x.com", "bob", "bye", "Secret123!"),
		ErrInvalidCredentials)

	assert.Nil(t, f.profiles.byID[p.ID].DeletionAt)
	assert.Empty(t, f.contacts.entries)
}

// --- legacy flows ---------------------------------------------------------

func TestPersistSession(t *testing.T) {
	f := newFixture(t)
	p := f.signupVerified(t, validSignup())

	result, err := f.svc.PersistSession(p.Session)
	require.NoError(t, err)
	assert.Equal(t, "legacy:"+p.Session, result.Token)
	assert.Equal(t, "alice", result.Handle)
	assert.Equal(t, "m1", result.Mass)
	assert.Equal(t, "c1", result.Club)
	assert.Equal(t, 1, result.Division)

	_, err = f.svc.PersistSession("nope")
	require.ErrorIs(t, err, ErrSuspiciousToken)
}

func TestEmailTaken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.Signup(validSignup()))

	taken, err := f.svc.EmailTaken("a@x.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = f.svc.EmailTaken("free@x.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

// guard: every sentinel is distinct so handlers can map them
func TestSentinelErrorsAreDistinct(t *testing.T) {
	set := []error{
		ErrInvalidCredentials, ErrAccountInactive, ErrAccountLocked,
		ErrVerifyEmailSent, ErrVerifyEmailExists, ErrInvalidMass,
		ErrInvalidClub, ErrClubManaged, ErrEmailTaken, ErrProfileNotFound,
		ErrInvalidLink, ErrWrongOTP, ErrOTPUsed, ErrNoPendingPassword,
		ErrOTPExpired, ErrDeletionInitiated, ErrSuspiciousToken,
	}
	for i, a := range set {
		for j, b := range set {
			if i != j {
				assert.False(t, errors.Is(a, b))
			}
		}
	}
}
