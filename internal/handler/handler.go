package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

type EventSvc interface {
	List(ctx context.Context, filter domain.EventFilter) []domain.Event
	Get(ctx context.Context, id domain.ID) (*domain.Event, error)
	Categories(ctx context.Context) []string
	Upsert(ctx context.Context, event domain.Event) (*domain.Event, bool, error)
	Delete(ctx context.Context, id domain.ID) error
}

type RegistrationSvc interface {
	Register(ctx context.Context, input domain.CreateRegistrationInput) (*domain.Registration, error)
	Delete(ctx context.Context, id domain.ID) error
	List(ctx context.Context) []domain.RegistrationView
	ListByEvent(ctx context.Context, eventID domain.ID) []domain.Registration
}

type Handler struct {
	eventService        EventSvc
	registrationService RegistrationSvc
}

func NewHandler(eventService EventSvc, registrationService RegistrationSvc) *Handler {
	return &Handler{
		eventService:        eventService,
		registrationService: registrationService,
	}
}

// Events

func (h *Handler) ListEvents(c *ginext.Context) {
	filter := domain.EventFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		When:     domain.ParseDateWindow(c.Query("when")),
	}

	events := h.eventService.List(c.Request.Context(), filter)

	c.JSON(http.StatusOK, dto.ToEventsResponse(events))
}

func (h *Handler) GetEvent(c *ginext.Context) {
	event, err := h.eventService.Get(c.Request.Context(), domain.ID(c.Param("id")))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *Handler) CreateEvent(c *ginext.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	h.upsert(c, &req)
}

func (h *Handler) UpdateEvent(c *ginext.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	req.ID = c.Param("id")

	h.upsert(c, &req)
}

// upsert answers 201 when the event was appended and 200 when it replaced
// an existing one.
func (h *Handler) upsert(c *ginext.Context, req *dto.EventRequest) {
	if _, err := time.Parse(domain.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid date format, expected YYYY-MM-DD",
		})
		return
	}
	if _, err := time.Parse(domain.TimeLayout, req.Time); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid time format, expected HH:MM",
		})
		return
	}

	event, created, err := h.eventService.Upsert(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToEventResponse(event))
}

func (h *Handler) DeleteEvent(c *ginext.Context) {
	if err := h.eventService.Delete(c.Request.Context(), domain.ID(c.Param("id"))); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCategories(c *ginext.Context) {
	c.JSON(http.StatusOK, h.eventService.Categories(c.Request.Context()))
}

// Registrations

func (h *Handler) Register(c *ginext.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	input := domain.CreateRegistrationInput{
		EventID: domain.ID(c.Param("id")),
		Name:    req.Name,
		Email:   req.Email,
		Notes:   req.Notes,
	}

	reg, err := h.registrationService.Register(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

func (h *Handler) ListEventRegistrations(c *ginext.Context) {
	regs := h.registrationService.ListByEvent(c.Request.Context(), domain.ID(c.Param("id")))

	resp := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		resp = append(resp, dto.ToRegistrationResponse(&regs[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListRegistrations(c *ginext.Context) {
	views := h.registrationService.List(c.Request.Context())

	resp := make([]dto.RegistrationViewResponse, 0, len(views))
	for i := range views {
		resp = append(resp, dto.ToRegistrationViewResponse(&views[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteRegistration(c *ginext.Context) {
	if err := h.registrationService.Delete(c.Request.Context(), domain.ID(c.Param("id"))); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "storage unavailable, try again later"})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
