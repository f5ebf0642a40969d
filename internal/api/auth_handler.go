package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/service"
)

// AuthHandler serves sign in, sign out and the password reset flow.
type AuthHandler struct {
	authService service.AuthService
	workspaces  *service.Workspaces
	log         *logger.Logger
}

func NewAuthHandler(authService service.AuthService, workspaces *service.Workspaces, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, workspaces: workspaces, log: log}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginResponse struct {
	Token        string          `json:"token"`
	AdminDetails SessionResponse `json:"admin_details"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Login godoc
// @Summary Sign an admin in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} gin.H "Rejected by the remote API"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	token, session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.loginError(c, err)
		return
	}
	if err := h.workspaces.Get(session.ID).LoadAll(c.Request.Context()); err != nil {
		h.log.Warn("initial catalog load failed", "session", session.ID, "error", err)
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		AdminDetails: SessionResponse{
			ID:        session.ID,
			Name:      session.AdminName,
			Email:     session.Email,
			ExpiresAt: session.ExpiresAt,
		},
	})
}

// A remote rejection of credentials is the admin's error, not a gateway failure.
func (h *AuthHandler) loginError(c *gin.Context, err error) {
	var inErr *service.InputError
	if errors.As(err, &inErr) {
		abortWithError(c, http.StatusUnprocessableEntity, inErr.Message)
		return
	}
	if isRemoteRejection(err) {
		abortWithError(c, http.StatusUnauthorized, remoteMessage(err, "Login failed"))
		return
	}
	respondError(c, h.log, err, "Login failed")
}

// Logout godoc
// @Summary Sign the admin out and drop their workspace
// @Tags Auth
// @Security BearerAuth
// @Success 204 "Signed out"
// @Failure 401 {object} gin.H "No session"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, err := getSessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify session from token.")
		return
	}
	h.workspaces.Drop(session.ID)
	if err := h.authService.Logout(c.Request.Context(), session.ID); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
		respondError(c, h.log, err, "Logout failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Show the signed-in admin
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} gin.H "No session"
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := getSessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify session from token.")
		return
	}
	c.JSON(http.StatusOK, SessionResponse{
		ID:        session.ID,
		Name:      session.AdminName,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
}

// ForgotPassword godoc
// @Summary Mail a password reset code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Admin email"
// @Success 200 {object} gin.H "OTP sent"
// @Failure 400 {object} gin.H "Invalid request"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.resetError(c, err, "Something went wrong. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your email."})
}

// VerifyOTP godoc
// @Summary Check a password reset code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Email and four digit code"
// @Success 200 {object} gin.H "OTP verified"
// @Failure 400 {object} gin.H "Invalid or expired code"
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		h.resetError(c, err, "Invalid OTP. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP verified."})
}

// ResetPassword godoc
// @Summary Set a new password after a verified code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email and new password"
// @Success 200 {object} gin.H "Password reset"
// @Failure 400 {object} gin.H "Passwords invalid or rejected"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	err := h.authService.ResetPassword(c.Request.Context(), req.Email, req.Password, req.PasswordConfirmation)
	if err != nil {
		h.resetError(c, err, "Failed to reset password. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully. Please log in."})
}

// resetError reports remote 4xx answers as the admin's input problem.
func (h *AuthHandler) resetError(c *gin.Context, err error, fallback string) {
	if isRemoteRejection(err) {
		abortWithError(c, http.StatusUnprocessableEntity, remoteMessage(err, fallback))
		return
	}
	respondError(c, h.log, err, fallback)
}
