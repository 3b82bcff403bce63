package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	CORSOrigins []string
	Logger      *zap.Logger
	Tokens      TokenParser
}

func NewRouter(cfg RouterConfig, auth *AuthHandler, hotels *HotelHandler, bookings *BookingHandler) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	if len(cfg.CORSOrigins) > 0 {
		allowCredentials := true
		for _, origin := range cfg.CORSOrigins {
			if origin == "*" {
				allowCredentials = false
				break
			}
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: allowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	auth.Register(apiGroup.Group("/auth"))
	hotels.Register(apiGroup.Group("/hotels"), apiGroup.Group("/rooms"))
	bookings.Register(apiGroup.Group("/bookings", RequireAuth(cfg.Tokens)))

	return r
}
