package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"soccermass/internal/services"
	"soccermass/internal/utils"
)

type AccountHandler struct {
	accounts  *services.AccountService
	clientURL string
}

func NewAccountHandler(accounts *services.AccountService, clientURL string) *AccountHandler {
	return &AccountHandler{accounts: accounts, clientURL: clientURL}
}

const cookieMaxAge = int(services.SessionTokenTTL / 1e9) // seconds

type signupRequest struct {
	Mass     string `json:"mass" binding:"required"`
	Division int    `json:"division" binding:"required"`
	Club     string `json:"club" binding:"required"`
	Handle   string `json:"handle" binding:"required"`
	Password string `json:"password" binding:"required"`
	DOB      string `json:"dob" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Gender   string `json:"gender" binding:"required,oneof=male female"`
}

// @Summary      Register a manager account
// @Description  Creates the profile, assigns the club manager slot and sends the verification mail
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        signup  body      signupRequest  true  "Signup data"
// @Success      201     {object}  envelope
// @Failure      400     {object}  envelope
// @Failure      409     {object}  envelope
// @Router       /signup [post]
func (h *AccountHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}
	if err := firstErr(
		utils.ValidateEmail(req.Email),
		utils.ValidateHandle(req.Handle),
		utils.ValidatePassword(req.Password),
	); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	if err := h.accounts.Signup(services.SignupInput{
		Mass:     req.Mass,
		Division: req.Division,
		Club:     req.Club,
		Handle:   req.Handle,
		Password: req.Password,
		DOB:      req.DOB,
		Email:    req.Email,
		Gender:   req.Gender,
	}); err != nil {
		// underlying reason is logged, never leaked to the caller
		log.Printf("[accounts][signup] failed for email=%q: %v", req.Email, err)
		status := http.StatusConflict
		if !isDomainError(err) {
			status = http.StatusInternalServerError
		}
		respond(c, status, false, "signup failed", nil)
		return
	}
	respond(c, http.StatusCreated, true, "success", nil)
}

type verifyRequest struct {
	Handle string `json:"handle" binding:"required"`
	Code   string `json:"code" binding:"required"`
	Stamp  int64  `json:"stamp" binding:"required"`
}

// @Summary      Verify account email
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        verify  body      verifyRequest  true  "Verification link payload"
// @Success      200     {object}  envelope
// @Failure      400     {object}  envelope
// @Router       /verify-account [post]
func (h *AccountHandler) VerifyAccount(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	if err := h.accounts.VerifyAccount(req.Handle, req.Code, req.Stamp); err != nil {
		if !errors.Is(err, services.ErrInvalidLink) {
			log.Printf("[accounts][verify] failed for handle=%q: %v", req.Handle, err)
		}
		respond(c, http.StatusBadRequest, false, "invalid or expired link.", nil)
		return
	}
	respond(c, http.StatusOK, true, "verified", nil)
}

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Sign in
// @Description  Authenticates the account and sets the SSID session cookie
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        signin  body      signinRequest  true  "Credentials"
// @Success      200     {object}  envelope
// @Failure      401     {object}  envelope
// @Router       /signin [post]
func (h *AccountHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}
	if err := firstErr(
		utils.ValidateEmail(req.Email),
		utils.ValidatePassword(req.Password),
	); err != nil {
		// malformed credentials can never match: uniform message, no probe
		respond(c, http.StatusUnauthorized, false, services.ErrInvalidCredentials.Error(), nil)
		return
	}

	result, err := h.accounts.Signin(req.Email, req.Password)
	if err != nil {
		if !isDomainError(err) {
			log.Printf("[accounts][signin] failed for email=%q: %v", req.Email, err)
			respond(c, http.StatusInternalServerError, false, "signin failed", nil)
			return
		}
		respond(c, http.StatusUnauthorized, false, err.Error(), nil)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("SSID", result.Token, cookieMaxAge, "/", "", true, true)
	respond(c, http.StatusOK, true, "Email/Password is Valid.", gin.H{
		"role":     result.Role,
		"fullName": result.FullName,
		"handle":   result.Handle,
	})
}

type resetRequestBody struct {
	Handle   string `json:"handle" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Request a password-reset OTP
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        reset  body      resetRequestBody  true  "Handle, email and the replacement password"
// @Success      200    {object}  envelope
// @Failure      400    {object}  envelope
// @Router       /reset-password-otp [post]
func (h *AccountHandler) ResetPasswordOTP(c *gin.Context) {
	var req resetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}
	if err := firstErr(
		utils.ValidateEmail(req.Email),
		utils.ValidateHandle(req.Handle),
		utils.ValidatePassword(req.Password),
	); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	obfuscated, err := h.accounts.RequestPasswordReset(req.Handle, req.Email, req.Password)
	if err != nil {
		if !isDomainError(err) {
			log.Printf("[accounts][reset-otp] failed for handle=%q: %v", req.Handle, err)
			respond(c, http.StatusInternalServerError, false, "Password reset failed", nil)
			return
		}
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}
	respond(c, http.StatusOK, true, "OTP sent", gin.H{"resetToken": obfuscated})
}

type resetConfirmBody struct {
	Handle string `json:"handle" binding:"required"`
	Email  string `json:"email" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

// @Summary      Confirm a password reset
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        confirm  body      resetConfirmBody  true  "Handle, email and the emailed OTP"
// @Success      200      {object}  envelope
// @Failure      400      {object}  envelope
// @Router       /reset-password [post]
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req resetConfirmBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	if err := h.accounts.ResetPassword(req.Handle, req.Email, req.OTP); err != nil {
		if !isDomainError(err) {
			log.Printf("[accounts][reset] failed for handle=%q: %v", req.Handle, err)
			respond(c, http.StatusInternalServerError, false, "Password reset failed", nil)
			return
		}
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}
	respond(c, http.StatusOK, true, "Password reset successful", nil)
}

type deletionRequest struct {
	Email    string `json:"email" binding:"required"`
	Handle   string `json:"handle" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Request data deletion
// @Description  Stamps the deletion marker and records the request in the support ledger
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        deletion  body      deletionRequest  true  "Deletion request"
// @Success      201       {object}  envelope
// @Failure      409       {object}  envelope
// @Router       /data-deletion [post]
func (h *AccountHandler) DataDeletion(c *gin.Context) {
	var req deletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}
	if err := firstErr(
		utils.ValidateEmail(req.Email),
		utils.ValidateHandle(req.Handle),
		utils.ValidateComment(req.Comment),
		utils.ValidatePassword(req.Password),
	); err != nil {
		respond(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	session, ok := getStringFromCtx(c, "session")
	if !ok || session == "" {
		respond(c, http.StatusUnauthorized, false, services.ErrInvalidCredentials.Error(), nil)
		return
	}

	if err := h.accounts.RequestDataDeletion(session, req.Email, req.Handle, req.Comment, req.Password); err != nil {
		if !isDomainError(err) {
			log.Printf("[accounts][deletion] failed for handle=%q: %v", req.Handle, err)
			respond(c, http.StatusInternalServerError, false, "Data deletion failed", nil)
			return
		}
		respond(c, http.StatusConflict, false, err.Error(), nil)
		return
	}
	respond(c, http.StatusCreated, true, "Data deletion initiated", nil)
}

// EmailTaken is a legacy flow: bare string body, no envelope.
//
// @Summary      Check email availability
// @Tags         Accounts
// @Accept       json
// @Produce      plain
// @Success      200  {string}  string
// @Router       /email-taken [post]
func (h *AccountHandler) EmailTaken(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "search failed")
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		c.String(http.StatusBadRequest, "search failed")
		return
	}

	taken, err := h.accounts.EmailTaken(req.Email)
	if err != nil {
		log.Printf("[accounts][email-taken] lookup failed: %v", err)
		c.String(http.StatusInternalServerError, "search failed")
		return
	}
	if taken {
		c.String(http.StatusOK, "email taken")
		return
	}
	c.String(http.StatusOK, "email is available")
}

// PersistUser is a legacy flow: bare object body, 90-day token.
//
// @Summary      Rehydrate a client session
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Success      200  {object}  services.LegacySession
// @Router       /persist-user [post]
func (h *AccountHandler) PersistUser(c *gin.Context) {
	var req struct {
		Session string `json:"session" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrSuspiciousToken.Error()})
		return
	}

	result, err := h.accounts.PersistSession(req.Session)
	if err != nil {
		if !errors.Is(err, services.ErrSuspiciousToken) {
			log.Printf("[accounts][persist-user] failed: %v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrSuspiciousToken.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RedirectToClient sends homepage hits to the web client.
func (h *AccountHandler) RedirectToClient(c *gin.Context) {
	c.Redirect(http.StatusFound, h.clientURL)
}

func (h *AccountHandler) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// isDomainError reports whether err belongs to the account service's closed
// error set, i.e. its message is safe to show the caller.
func isDomainError(err error) bool {
	for _, domain := range []error{
		services.ErrInvalidCredentials,
		services.ErrAccountInactive,
		services.ErrAccountLocked,
		services.ErrVerifyEmailSent,
		services.ErrVerifyEmailExists,
		services.ErrInvalidMass,
		services.ErrInvalidClub,
		services.ErrClubManaged,
		services.ErrEmailTaken,
		services.ErrProfileNotFound,
		services.ErrInvalidLink,
		services.ErrWrongOTP,
		services.ErrOTPUsed,
		services.ErrNoPendingPassword,
		services.ErrOTPExpired,
		services.ErrDeletionInitiated,
	} {
		if errors.Is(err, domain) {
			return true
		}
	}
	return false
}
