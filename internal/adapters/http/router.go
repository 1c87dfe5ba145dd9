// Package http exposes a small read-only status API for operators.
package http

import (
	"net/http"
	"time"

	"github.com/dkeye/Steward/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestIDMiddleware tags every request so admin-API lines correlate in logs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

type roomView struct {
	Channel   string    `json:"channel_id"`
	Trigger   string    `json:"trigger"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionView struct {
	Owner       string    `json:"owner_id"`
	Channel     string    `json:"channel_id"`
	Description string    `json:"description"`
	Responded   int       `json:"responded"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func SetupRouter(mode string, rooms *app.RoomRegistry, sessions *app.SessionRegistry, verifier *app.Verifier) *gin.Engine {
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		snapshot := rooms.Snapshot()
		out := make([]roomView, 0, len(snapshot))
		for _, room := range snapshot {
			out = append(out, roomView{
				Channel:   string(room.Channel),
				Trigger:   string(room.Trigger),
				CreatedBy: string(room.CreatedBy),
				CreatedAt: room.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"rooms": out})
	})

	api.GET("/sessions", func(c *gin.Context) {
		snapshot := sessions.Snapshot()
		out := make([]sessionView, 0, len(snapshot))
		for _, s := range snapshot {
			out = append(out, sessionView{
				Owner:       string(s.Owner),
				Channel:     string(s.Channel),
				Description: s.Description,
				Responded:   len(s.OptedIn()),
				UpdatedAt:   s.UpdatedAt(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"sessions": out})
	})

	api.GET("/verified", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"count": verifier.Count()})
	})

	log.Info().Str("module", "adapters.http").Str("mode", mode).Msg("router setup")
	return r
}
