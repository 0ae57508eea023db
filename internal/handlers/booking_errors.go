package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/httperr"
)

const (
	LoadFailedMessage   = "Failed to load appointments. Please try again."
	SubmitFailedMessage = "Something went wrong. Please try again."
	InvalidFieldsText   = "Please fix the highlighted fields."
)

// businessMessages traduz o código de negócio para a mensagem do formulário.
var businessMessages = map[string]string{
	domain.CodeSlotRequired: "Please select a time slot",
	domain.CodeInvalidDate:  "Please select a valid date",
	domain.CodeInvalidSlot:  "Please select one of the available time slots",
	domain.CodeSlotTaken:    "This time slot is already booked. Please choose another one.",
}

func businessStatus(code string) int {
	if code == domain.CodeSlotTaken {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// writeSubmitError responde o erro do submit no formato JSON da API.
func writeSubmitError(c *gin.Context, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		httperr.WriteFields(c, "invalid_fields", InvalidFieldsText, ve.Fields)
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		if code == domain.CodeSlotTaken {
			httperr.Conflict(c, code, businessMessages[code])
			return
		}
		httperr.BadRequest(c, code, businessMessages[code])
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, "booking_failed", SubmitFailedMessage)
}
