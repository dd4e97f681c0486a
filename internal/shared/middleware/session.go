package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sessionService "storefront-backend/internal/domains/session/service"
	"storefront-backend/internal/shared/response"
)

const (
	SessionCookieName = "session_id"
	SessionMaxAge     = 60 * 60 * 24 * 30 // 30 days in seconds

	ContextKeySession   = "session"
	ContextKeySessionID = "session_id"
)

var ErrSessionNotFound = errors.New("session not found in context")

// SessionMiddlewareConfig holds the session cookie settings
type SessionMiddlewareConfig struct {
	Registry       *sessionService.Registry
	CookieDomain   string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
}

func DefaultSessionMiddlewareConfig(registry *sessionService.Registry) SessionMiddlewareConfig {
	return SessionMiddlewareConfig{
		Registry:       registry,
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// Session resolves the client's session from the session_id cookie.
// Clients without a valid cookie get a new session and cookie.
func Session(config SessionMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := getSessionID(c)
		if sessionID == "" {
			sessionID = uuid.NewString()
			setSessionCookie(c, sessionID, config)
		}

		sess, _ := config.Registry.GetOrCreate(sessionID)

		c.Set(ContextKeySession, sess)
		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}

// getSessionID retrieves a well-formed session id from the cookie
func getSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return ""
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}
	return sessionID
}

func setSessionCookie(c *gin.Context, sessionID string, config SessionMiddlewareConfig) {
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(
		SessionCookieName,
		sessionID,
		SessionMaxAge,
		config.CookiePath,
		config.CookieDomain,
		config.CookieSecure,
		true,
	)
}

// GetSession retrieves the session set by Session
func GetSession(c *gin.Context) (*sessionService.Session, error) {
	value, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, ErrSessionNotFound
	}
	sess, ok := value.(*sessionService.Session)
	if !ok || sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// MustGetSession writes a 500 and returns nil when no session is set
func MustGetSession(c *gin.Context) *sessionService.Session {
	sess, err := GetSession(c)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return nil
	}
	return sess
}
