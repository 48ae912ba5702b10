package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coderanges/swiftcrm/internal/adapter/http/middleware"
	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/logging"
	"github.com/coderanges/swiftcrm/internal/security"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type AuthHandler struct {
	users        usecase.UserRepo
	sessions     *security.Sessions
	cookieName   string
	cookieSecure bool
	cookieTTL    time.Duration
}

func NewAuthHandler(users usecase.UserRepo, sessions *security.Sessions, cookieName string, cookieSecure bool, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:        users,
		sessions:     sessions,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		cookieTTL:    cookieTTL,
	}
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type userResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		writeErr(c, err)
		return
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	if err := h.users.Create(ctx, u); err != nil {
		writeErr(c, err)
		return
	}

	h.setSessionCookie(c, u.ID)
	c.JSON(http.StatusCreated, userResp{ID: u.ID, Name: u.Name, Email: u.Email})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	u, err := h.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !security.CheckPassword(u.PasswordHash, req.Password) {
		// same answer for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	h.setSessionCookie(c, u.ID)
	logging.From(c).Info("login", "user_id", u.ID)
	c.JSON(http.StatusOK, userResp{ID: u.ID, Name: u.Name, Email: u.Email})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()

	u, err := h.users.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, userResp{ID: u.ID, Name: u.Name, Email: u.Email})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, userID string) {
	tok, err := h.sessions.Mint(userID, time.Now())
	if err != nil {
		logging.From(c).Error("mint session", "error", err)
		return
	}
	c.SetCookie(h.cookieName, tok, int(h.cookieTTL.Seconds()), "/", "", h.cookieSecure, true)
}
