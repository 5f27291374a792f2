// README: Email modal lifecycle and send-itinerary handlers.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"voyage/internal/modules/conversation"
)

type EmailHandler struct {
	conv *conversation.Service
}

func NewEmailHandler(svc *conversation.Service) *EmailHandler {
	return &EmailHandler{conv: svc}
}

type sendEmailReq struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
}

// Send handles POST /api/sessions/:id/email. Delivery failures are state,
// not HTTP errors: the modal reads them from lastError and stays open.
func (h *EmailHandler) Send(c *gin.Context) {
	var req sendEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	recipients := lo.Filter(req.Recipients, func(r string, _ int) bool {
		return strings.TrimSpace(r) != ""
	})
	if len(recipients) == 0 {
		writeError(c, http.StatusBadRequest, "no recipients")
		return
	}
	if req.Subject == "" {
		req.Subject = "Your Travel Itinerary"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	st, err := h.conv.SendEmail(ctx, c.Param("id"), recipients, req.Subject)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, st)
}

// OpenModal handles POST /api/sessions/:id/email/open.
func (h *EmailHandler) OpenModal(c *gin.Context) {
	st, err := h.conv.OpenEmailModal(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, st)
}

// CloseModal handles POST /api/sessions/:id/email/close.
func (h *EmailHandler) CloseModal(c *gin.Context) {
	st, err := h.conv.CloseEmailModal(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, st)
}
