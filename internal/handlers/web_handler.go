package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/dto"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	ucBooking "github.com/BruksfildServices01/appointease/internal/usecase/booking"
)

// WebHandler renderiza as páginas HTML (template "base" + .Page).
type WebHandler struct {
	submit       *ucBooking.SubmitBooking
	list         *ucBooking.ListBookings
	del          *ucBooking.DeleteBooking
	availability *ucBooking.GetAvailability

	checkEmailDomain bool
}

func NewWebHandler(
	submit *ucBooking.SubmitBooking,
	list *ucBooking.ListBookings,
	del *ucBooking.DeleteBooking,
	availability *ucBooking.GetAvailability,
	checkEmailDomain bool,
) *WebHandler {
	return &WebHandler{
		submit:           submit,
		list:             list,
		del:              del,
		availability:     availability,
		checkEmailDomain: checkEmailDomain,
	}
}

func (h *WebHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "base", gin.H{"Page": "home"})
}

// NotFound responde JSON sob /api e a página 404 no resto.
func (h *WebHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}
	c.HTML(http.StatusNotFound, "base", gin.H{"Page": "notfound", "Title": "Page Not Found"})
}

// ======================================================
// BOOK
// ======================================================

func (h *WebHandler) BookForm(c *gin.Context) {
	h.renderBook(c, http.StatusOK, CreateBookingRequest{Date: c.Query("date")}, nil, "")
}

func (h *WebHandler) BookSubmit(c *gin.Context) {
	var form CreateBookingRequest
	if err := c.ShouldBind(&form); err != nil {
		h.renderBook(c, http.StatusBadRequest, form, nil, SubmitFailedMessage)
		return
	}

	err := emailDomainError(h.checkEmailDomain, form.Email)
	var conf *domain.Confirmation
	if err == nil {
		conf, err = h.submit.Execute(c.Request.Context(), form.input())
	}

	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			h.renderBook(c, http.StatusBadRequest, form, ve.Fields, "")
			return
		}
		if code, ok := httperr.BusinessCode(err); ok {
			h.renderBook(c, businessStatus(code), form, nil, businessMessages[code])
			return
		}

		_ = c.Error(err)
		h.renderBook(c, http.StatusInternalServerError, form, nil, SubmitFailedMessage)
		return
	}

	c.HTML(http.StatusOK, "base", gin.H{
		"Page":         "success",
		"Title":        "Appointment Confirmed",
		"Confirmation": conf,
	})
}

// renderBook monta o formulário para a data escolhida (ou amanhã).
func (h *WebHandler) renderBook(
	c *gin.Context,
	status int,
	form CreateBookingRequest,
	fieldErrors map[string]string,
	formError string,
) {
	date := h.availability.DefaultDate()
	if d, err := h.availability.ParseDate(strings.TrimSpace(form.Date)); err == nil {
		date = d
	}
	selected := date.Format(domain.DateLayout)
	form.Date = selected

	slots, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		_ = c.Error(err)
		slots = []string{}
		if formError == "" {
			formError = LoadFailedMessage
		}
	}

	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}

	c.HTML(status, "base", gin.H{
		"Page":      "book",
		"Title":     "Book Appointment",
		"Form":      form,
		"Date":      selected,
		"Dates":     dateOptions(h.availability.Dates(), selected),
		"Slots":     slots,
		"Errors":    fieldErrors,
		"FormError": formError,
	})
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *WebHandler) Dashboard(c *gin.Context) {
	data := gin.H{
		"Page":  "dashboard",
		"Title": "Dashboard",
	}

	list, err := h.list.Execute(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		data["LoadError"] = LoadFailedMessage
	}
	data["Bookings"] = dto.FromBookings(list, h.list.Location())

	c.HTML(http.StatusOK, "base", data)
}

func (h *WebHandler) DashboardDelete(c *gin.Context) {
	if err := h.del.Execute(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}
