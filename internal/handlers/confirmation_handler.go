package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

// ConfirmationHandler atende POST /api/send-confirmation e entrega o e-mail.
type ConfirmationHandler struct {
	mailer notify.Mailer
	apiKey string
	log    zerolog.Logger
}

func NewConfirmationHandler(mailer notify.Mailer, apiKey string, log zerolog.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{mailer: mailer, apiKey: apiKey, log: log}
}

func (h *ConfirmationHandler) Send(c *gin.Context) {
	if h.apiKey != "" && c.GetHeader(notify.APIKeyHeader) != h.apiKey {
		httperr.Write(c, http.StatusUnauthorized, "unauthorized", "Invalid API key.")
		return
	}

	var req notify.ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	req.To = strings.TrimSpace(req.To)
	if !domain.IsValidEmail(req.To) ||
		strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Date) == "" ||
		strings.TrimSpace(req.Time) == "" {
		httperr.BadRequest(c, "invalid_request", "to, name, date and time are required.")
		return
	}

	if err := h.mailer.Send(c.Request.Context(), req); err != nil {
		h.log.Error().Err(err).Str("to", req.To).Msg("failed to send confirmation email")
		httperr.BadGateway(c, "email_failed", "Failed to send confirmation email.")
		return
	}

	httpresp.OK(c, gin.H{"success": true})
}
