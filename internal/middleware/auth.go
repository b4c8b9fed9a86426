package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blogicum/core/internal/models"
	"github.com/blogicum/core/internal/pkg/jwt"
	"github.com/blogicum/core/internal/pkg/response"
	sessionpkg "github.com/blogicum/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeySID    = "session_id"
	// SessionCookie holds the signed session token.
	SessionCookie = "blogicum_session"
	// LoginPath is where anonymous visitors are sent for pages that need a user.
	LoginPath = "/auth/login/"
)

var errNoSession = errors.New("session expired or revoked")

// Authenticate resolves the session cookie into the current user. Requests
// without a valid session continue anonymously.
func Authenticate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		if claims, err := ValidateToken(db, token); err == nil {
			var u models.UserModel
			if err := db.First(&u, claims.UserID).Error; err == nil {
				c.Set(ContextKeyUserID, u.ID)
				c.Set(ContextKeySID, claims.SessionID)
				c.Set(response.ContextKeyViewer, &u)
				sessionpkg.Touch(db, u.ID, claims.SessionID)
			}
		}
		c.Next()
	}
}

// RequireAuth sends anonymous visitors to the login page, remembering where
// they wanted to go.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			response.Redirect(c, LoginURL(c.Request.URL.RequestURI()))
			return
		}
		c.Next()
	}
}

// RequireAuthOr sends anonymous visitors to the location built by fallback.
func RequireAuthOr(fallback func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAuthenticated(c) {
			response.Redirect(c, fallback(c))
			return
		}
		c.Next()
	}
}

// LoginURL builds the login page address with a next parameter.
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{"next": {next}}.Encode()
}

// ValidateToken parses a session token and checks that its session is live.
func ValidateToken(db *gorm.DB, rawToken string) (*jwt.Claims, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	active, err := sessionpkg.IsActive(db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errNoSession
	}
	return claims, nil
}

// CurrentUserID returns the signed-in user's id, or 0 for anonymous requests.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(uint)
	return id
}

// CurrentUser returns the signed-in user, or nil.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(response.ContextKeyViewer)
	u, _ := v.(*models.UserModel)
	return u
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request carries a live session.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != 0
}

// SetSessionCookie stores token in an HTTP-only, same-site cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie from the browser.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
