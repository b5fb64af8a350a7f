// Package handlers expose la boutique en HTTP (Gin). Chaque handler lit ou
// modifie le Store partagé ; les erreurs sont renvoyées en JSON {"error": "..."}.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"costumes_back_end/internal/realtime"
	"costumes_back_end/internal/services"
	"costumes_back_end/internal/store"
	"costumes_back_end/internal/utils"
)

const defaultGroupLimit = 3

type Handler struct {
	Store          *store.Store
	Index          *services.ProductIndex
	Mailer         *services.Mailer
	Hub            *realtime.Hub
	Admin          utils.AdminCredentials
	JWTSecret      string
	WhatsAppNumber string
	Now            func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// 🔌 GET /ws
func (h *Handler) WebSocket(c *gin.Context) {
	if h.Hub == nil {
		abort(c, http.StatusServiceUnavailable, "Temps réel indisponible")
		return
	}
	h.Hub.ServeWS(c.Writer, c.Request)
}

// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
