package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/observability"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

const (
	SessionCookie = "session"
	LoginPath     = "/login"

	ctxSessionKey = "auth.session"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// CORS allows the dashboard front end to post forms with credentials.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// RequestLogger logs each request and records it on metrics.
func RequestLogger(log *logger.Logger, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		dur := time.Since(start)
		metrics.ObserveAPI(c.Request.Method, path, strconv.Itoa(status), dur)

		if log == nil {
			return
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", dur.Milliseconds(),
		}
		if s := SessionFrom(c); s != nil {
			fields = append(fields, "user_id", s.UserID)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

type AuthMiddleware struct {
	log      *logger.Logger
	verifier contracts.SessionVerifier
}

func NewAuthMiddleware(log *logger.Logger, verifier contracts.SessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), verifier: verifier}
}

// RequireSession admits requests carrying a valid session cookie or bearer
// token. Browsers are sent to the login page; API clients get a 401.
func (am *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		session, err := am.verifier.Verify(token)
		if err != nil {
			am.log.Debug("session rejected", "path", c.Request.URL.Path, "error", err)
			if wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{"message": "missing or invalid session", "code": "unauthorized"},
				})
				return
			}
			c.Redirect(http.StatusSeeOther, LoginPath+"?redirectTo="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Set(ctxSessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the session RequireSession attached, if any.
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*domain.Session)
	return s
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("Authorization") != "" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
