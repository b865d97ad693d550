package controllers

import (
	"crypto/subtle"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quinbingo/quinbingo-backend/utils/logger"
)

const sessionCookie = "quinbingo_session"

// Auth implements the shared-password admin login. A successful login
// mints a uuid session token kept in memory; restarting the process
// logs every admin out, which is fine for a single-operator game.
type Auth struct {
	password string

	mu     sync.RWMutex
	tokens map[string]bool
}

func NewAuth(password string) *Auth {
	return &Auth{password: password, tokens: make(map[string]bool)}
}

func (a *Auth) login(password string) (string, bool) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return "", false
	}
	token := uuid.NewString()
	a.mu.Lock()
	a.tokens[token] = true
	a.mu.Unlock()
	return token, true
}

func (a *Auth) valid(token string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tokens[token]
}

func (a *Auth) logout(token string) {
	a.mu.Lock()
	delete(a.tokens, token)
	a.mu.Unlock()
}

// Login handles POST /api/admin/login.
func (api *API) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	token, ok := api.Auth.login(req.Password)
	if !ok {
		logger.Warnf("failed admin login attempt from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	c.SetCookie(sessionCookie, token, 12*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged in"})
}

// Logout handles POST /api/admin/logout.
func (api *API) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		api.Auth.logout(token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RequireAdmin guards the admin-only routes.
func (api *API) RequireAdmin(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || !api.Auth.valid(token) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
		return
	}
	c.Next()
}
