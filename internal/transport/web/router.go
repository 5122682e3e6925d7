package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/invoice-dashboard-service/internal/observability"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	CORSOrigins    []string
	InvoiceHandler *InvoiceHandler
	AuthHandler    *AuthHandler
	AuthMiddleware *AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Log, cfg.Metrics))
	r.Use(CORS(cfg.CORSOrigins))

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	if cfg.AuthHandler != nil {
		r.POST("/login", cfg.AuthHandler.Login)
		r.POST("/logout", cfg.AuthHandler.Logout)
	}

	dashboard := r.Group("/dashboard")
	if cfg.AuthMiddleware != nil {
		dashboard.Use(cfg.AuthMiddleware.RequireSession())
	}
	if h := cfg.InvoiceHandler; h != nil {
		dashboard.POST("/invoices", h.Create)
		dashboard.GET("/invoices/create", h.CreateForm)
		dashboard.GET("/invoices/:id/edit", h.EditForm)
		dashboard.POST("/invoices/:id/edit", h.Update)
		dashboard.POST("/invoices/:id/delete", h.Delete)
	}

	return r
}
