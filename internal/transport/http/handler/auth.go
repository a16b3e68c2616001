package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/pdf-transparency/internal/domain"
	"github.com/ErlanBelekov/pdf-transparency/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 7 * 24 * 60 * 60 // seconds, matches the token expiry

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	RegisterStart(ctx context.Context, name, email, phone string) error
	RegisterVerify(ctx context.Context, name, email, phone, code string) (*domain.User, string, error)
	LoginStart(ctx context.Context, email string) error
	LoginVerify(ctx context.Context, email, code string) (*domain.User, string, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	CheckDuplicates(ctx context.Context, email, phone, name string) (bool, bool, bool, error)
}

type AuthHandler struct {
	auth      authUsecaser
	logger    *slog.Logger
	secureEnv bool
}

// NewAuthHandler builds the auth endpoints. secureEnv controls the Secure
// flag on the session cookie (off for local HTTP development).
func NewAuthHandler(auth authUsecaser, logger *slog.Logger, secureEnv bool) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		logger:    logger.With("component", "auth_handler"),
		secureEnv: secureEnv,
	}
}

type registerStartRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type registerVerifyRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type loginStartRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type loginVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type checkDuplicateRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// POST /api/register/start
func (h *AuthHandler) RegisterStart(c *gin.Context) {
	var req registerStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errMissingFields)
		return
	}

	if err := h.auth.RegisterStart(c.Request.Context(), req.Name, req.Email, req.Phone); err != nil {
		h.writeError(c, err, "register start")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "otp_sent"})
}

// POST /api/register/verify
func (h *AuthHandler) RegisterVerify(c *gin.Context) {
	var req registerVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errMissingFields)
		return
	}

	user, token, err := h.auth.RegisterVerify(c.Request.Context(), req.Name, req.Email, req.Phone, req.OTP)
	if err != nil {
		h.writeError(c, err, "register verify")
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": userResponse{ID: user.ID, Name: user.Name, Email: user.Email}})
}

// POST /api/login/start
func (h *AuthHandler) LoginStart(c *gin.Context) {
	var req loginStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errMissingEmail)
		return
	}

	if err := h.auth.LoginStart(c.Request.Context(), req.Email); err != nil {
		h.writeError(c, err, "login start")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "otp_sent"})
}

// POST /api/login/verify
func (h *AuthHandler) LoginVerify(c *gin.Context) {
	var req loginVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errMissingFields)
		return
	}

	user, token, err := h.auth.LoginVerify(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.writeError(c, err, "login verify")
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": userResponse{ID: user.ID, Name: user.Name, Email: user.Email}})
}

// POST /api/logout
// Clears the cookie only. Issued tokens stay valid until expiry; there is
// no server-side revocation list.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureEnv, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.writeError(c, err, "me")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"phone":    user.Phone,
		"verified": user.Verified,
	}})
}

// POST /api/check-duplicate
func (h *AuthHandler) CheckDuplicate(c *gin.Context) {
	var req checkDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errMissingFields)
		return
	}

	emailExists, phoneExists, nameExists, err := h.auth.CheckDuplicates(c.Request.Context(), req.Email, req.Phone, req.Name)
	if err != nil {
		h.writeError(c, err, "check duplicate")
		return
	}

	resp := gin.H{"ok": true}
	if req.Email != "" {
		resp["emailExists"] = emailExists
	}
	if req.Phone != "" {
		resp["phoneExists"] = phoneExists
	}
	if req.Name != "" {
		resp["nameExists"] = nameExists
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", h.secureEnv, true)
}

func (h *AuthHandler) writeError(c *gin.Context, err error, op string) {
	if status, code, ok := domainStatus(err); ok {
		fail(c, status, code)
		return
	}
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	fail(c, http.StatusInternalServerError, errServer)
}
