// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/conversation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeSessionError(c *gin.Context, err error) {
	switch err {
	case conversation.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case conversation.ErrBusy:
		writeError(c, http.StatusConflict, err.Error())
	case conversation.ErrEmptyMessage:
		writeError(c, http.StatusBadRequest, err.Error())
	case conversation.ErrNoItinerary:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
