package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/dto"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/appointease/internal/usecase/booking"
	"github.com/BruksfildServices01/appointease/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	submit       *ucBooking.SubmitBooking
	list         *ucBooking.ListBookings
	del          *ucBooking.DeleteBooking
	availability *ucBooking.GetAvailability

	checkEmailDomain bool
}

func NewBookingHandler(
	submit *ucBooking.SubmitBooking,
	list *ucBooking.ListBookings,
	del *ucBooking.DeleteBooking,
	availability *ucBooking.GetAvailability,
	checkEmailDomain bool,
) *BookingHandler {
	return &BookingHandler{
		submit:           submit,
		list:             list,
		del:              del,
		availability:     availability,
		checkEmailDomain: checkEmailDomain,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type CreateBookingRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Message  string `json:"message" form:"message"`
	Date     string `json:"date" form:"date"`
	TimeSlot string `json:"time_slot" form:"time_slot"`
}

func (r CreateBookingRequest) input() ucBooking.SubmitBookingInput {
	return ucBooking.SubmitBookingInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Message:  r.Message,
		Date:     r.Date,
		TimeSlot: r.TimeSlot,
	}
}

type AvailabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type DateOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"-"`
}

func dateOptions(dates []time.Time, selected string) []DateOption {
	out := make([]DateOption, 0, len(dates))
	for _, d := range dates {
		v := d.Format(domain.DateLayout)
		out = append(out, DateOption{
			Value:    v,
			Label:    d.Format(domain.OptionDateLayout),
			Selected: v == selected,
		})
	}
	return out
}

// emailDomainError devolve o erro de campo quando o domínio não resolve.
// Só roda com o formato já válido; o resto da validação fica no use case.
func emailDomainError(enabled bool, email string) error {
	email = strings.TrimSpace(email)
	if !enabled || !domain.IsValidEmail(email) {
		return nil
	}
	if validators.IsEmailDomainValid(email) {
		return nil
	}
	return &domain.ValidationError{
		Fields: map[string]string{"email": "Invalid email address"},
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	date := h.availability.DefaultDate()

	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := h.availability.ParseDate(raw)
		if err != nil {
			httperr.BadRequest(c, domain.CodeInvalidDate, businessMessages[domain.CodeInvalidDate])
			return
		}
		date = d
	}

	slots, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "availability_failed", LoadFailedMessage)
		return
	}

	httpresp.OK(c, AvailabilityResponse{
		Date:  date.Format(domain.DateLayout),
		Slots: slots,
	})
}

func (h *BookingHandler) Dates(c *gin.Context) {
	httpresp.List(c, dateOptions(h.availability.Dates(), ""))
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := emailDomainError(h.checkEmailDomain, req.Email); err != nil {
		writeSubmitError(c, err)
		return
	}

	conf, err := h.submit.Execute(c.Request.Context(), req.input())
	if err != nil {
		writeSubmitError(c, err)
		return
	}

	httpresp.Created(c, conf)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		httpresp.ListWithError[dto.BookingListDTO](c, LoadFailedMessage)
		return
	}

	httpresp.List(c, dto.FromBookings(list, h.list.Location()))
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.del.Execute(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "delete_failed", "Failed to delete appointment. Please try again.")
		return
	}

	httpresp.NoContent(c)
}
