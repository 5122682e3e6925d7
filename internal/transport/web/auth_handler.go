package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/usecases/authenticate"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/clock"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

type AuthHandler struct {
	log          *logger.Logger
	authenticate *authenticate.Interactor
	clock        clock.Clock
	secureCookie bool
}

func NewAuthHandler(log *logger.Logger, auth *authenticate.Interactor, clk clock.Clock, secureCookie bool) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authenticate: auth, clock: clk, secureCookie: secureCookie}
}

// Login handles POST /login.
func (ah *AuthHandler) Login(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		respondMessage(c, http.StatusBadRequest, "Malformed form submission.")
		return
	}
	out, err := ah.authenticate.Execute(c.Request.Context(), nil, c.Request.PostForm)
	if err != nil {
		_ = c.Error(err)
		ah.log.Error("sign in crashed", "error", err)
		respondMessage(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	if !out.IsRedirect() {
		respondMessage(c, http.StatusUnauthorized, *out.Message)
		return
	}

	maxAge := int(out.Session.ExpiresAt.Sub(ah.clock.Now()) / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, out.Session.Token, maxAge, "/", "", ah.secureCookie, true)
	c.Redirect(http.StatusSeeOther, out.Redirect)
}

// Logout handles POST /logout.
func (ah *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", ah.secureCookie, true)
	c.Redirect(http.StatusSeeOther, LoginPath)
}
