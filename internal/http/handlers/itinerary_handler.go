// README: Itinerary view and PDF export handlers.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/conversation"
	"voyage/internal/modules/itinerary"
)

type ItineraryHandler struct {
	conv *conversation.Service
}

func NewItineraryHandler(svc *conversation.Service) *ItineraryHandler {
	return &ItineraryHandler{conv: svc}
}

// Get handles GET /api/sessions/:id/itinerary.
func (h *ItineraryHandler) Get(c *gin.Context) {
	st, err := h.conv.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	if !st.HasItinerary() {
		writeSessionError(c, conversation.ErrNoItinerary)
		return
	}

	view := itinerary.Render(st.Itinerary)
	writeJSON(c, http.StatusOK, map[string]any{
		"summary":         itinerary.Summary(st.Itinerary),
		"days":            view.Days,
		"enrichment":      st.Enrichment,
		"poiDescriptions": st.POIDescriptions,
	})
}

// ExportPDF handles GET /api/sessions/:id/itinerary.pdf.
func (h *ItineraryHandler) ExportPDF(c *gin.Context) {
	st, err := h.conv.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	if !st.HasItinerary() {
		writeSessionError(c, conversation.ErrNoItinerary)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "itinerary.pdf"))
	if err := itinerary.WritePDF(c.Writer, st.Itinerary, "Your Travel Itinerary"); err != nil {
		// Headers are out; all we can do is drop the connection.
		c.Abort()
	}
}
