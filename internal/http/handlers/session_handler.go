// README: Session handlers for create/get/message/reset and readiness.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/conversation"
)

// backendBudget caps one exchange end to end; planning is the slow path.
const backendBudget = 90 * time.Second

type SessionHandler struct {
	conv *conversation.Service
}

func NewSessionHandler(svc *conversation.Service) *SessionHandler {
	return &SessionHandler{conv: svc}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	st := h.conv.CreateSession(c.Request.Context())
	writeJSON(c, http.StatusCreated, st)
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	st, err := h.conv.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, st)
}

type postMessageReq struct {
	Text string `json:"text"`
}

// PostMessage handles POST /api/sessions/:id/messages.
func (h *SessionHandler) PostMessage(c *gin.Context) {
	var req postMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), backendBudget)
	defer cancel()

	st, err := h.conv.SendMessage(ctx, c.Param("id"), req.Text)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, st)
}

// Reset handles POST /api/sessions/:id/reset.
func (h *SessionHandler) Reset(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	st, err := h.conv.Reset(ctx, c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, st)
}

// Ready handles GET /health/ready.
func (h *SessionHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	r := h.conv.Readiness(ctx)
	status := http.StatusOK
	if !r.Ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(c, status, map[string]any{
		"ready":          r.Ready,
		"llm_configured": r.LLMConfigured,
	})
}
