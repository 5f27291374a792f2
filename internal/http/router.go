// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
	"voyage/internal/logger"
	"voyage/internal/modules/conversation"
	"voyage/internal/speech"
)

func NewRouter(
	convService *conversation.Service,
	adapter *speech.Adapter,
	allowOrigins []string,
	log *logger.Logger,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type"},
	}))

	sessionHandler := handlers.NewSessionHandler(convService)
	r.POST("/api/sessions", sessionHandler.Create)
	r.GET("/api/sessions/:id", sessionHandler.Get)
	r.POST("/api/sessions/:id/messages", sessionHandler.PostMessage)
	r.POST("/api/sessions/:id/reset", sessionHandler.Reset)

	itineraryHandler := handlers.NewItineraryHandler(convService)
	r.GET("/api/sessions/:id/itinerary", itineraryHandler.Get)
	r.GET("/api/sessions/:id/itinerary.pdf", itineraryHandler.ExportPDF)

	emailHandler := handlers.NewEmailHandler(convService)
	r.POST("/api/sessions/:id/email", emailHandler.Send)
	r.POST("/api/sessions/:id/email/open", emailHandler.OpenModal)
	r.POST("/api/sessions/:id/email/close", emailHandler.CloseModal)

	voiceHandler := handlers.NewVoiceHandler(convService, adapter)
	r.POST("/api/sessions/:id/voice/toggle", voiceHandler.Toggle)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/health/ready", sessionHandler.Ready)

	return r
}
