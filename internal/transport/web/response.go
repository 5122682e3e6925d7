package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
)

// respondOutcome turns a mutation outcome into an HTTP response: 303 for a
// redirect, 422 for field errors and 500 for everything else.
func respondOutcome(c *gin.Context, out state.Outcome) {
	if out.IsRedirect() {
		c.Redirect(http.StatusSeeOther, out.Redirect)
		return
	}
	if out.State == nil {
		c.JSON(http.StatusInternalServerError, state.MutationState{})
		return
	}
	if len(out.State.Errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, out.State)
		return
	}
	c.JSON(http.StatusInternalServerError, out.State)
}

func respondMessage(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"message": msg})
}
