// README: Speech toggle handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/conversation"
	"voyage/internal/speech"
)

type VoiceHandler struct {
	conv    *conversation.Service
	adapter *speech.Adapter
}

func NewVoiceHandler(svc *conversation.Service, adapter *speech.Adapter) *VoiceHandler {
	return &VoiceHandler{conv: svc, adapter: adapter}
}

// Toggle handles POST /api/sessions/:id/voice/toggle.
func (h *VoiceHandler) Toggle(c *gin.Context) {
	if _, err := h.conv.Get(c.Request.Context(), c.Param("id")); err != nil {
		writeSessionError(c, err)
		return
	}
	if h.adapter == nil {
		writeError(c, http.StatusServiceUnavailable, speech.ErrUnavailable.Error())
		return
	}

	listening, err := h.adapter.Toggle()
	if err != nil {
		if errors.Is(err, speech.ErrUnavailable) {
			writeError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"listening": listening,
		"available": h.adapter.Available(),
	})
}
