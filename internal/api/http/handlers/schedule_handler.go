package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/practice-kit/practice-service/internal/api/dto"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/repository"
	"github.com/practice-kit/practice-service/internal/service"
)

// ScheduleHandler exposes calendar endpoints.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// Create handles POST /schedule/events.
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.StudentID == "" || req.Date == "" {
		return fiber.NewError(http.StatusBadRequest, "student_id and date required")
	}

	event, err := h.scheduleService.CreateEvent(c.Context(), actor, eventInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": eventResponse(event)})
}

// List handles GET /schedule/events.
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	filter := repository.EventFilter{
		Limit:  parseIntQuery(c, "page_size", 500),
		Offset: (parseIntQuery(c, "page", 1) - 1) * parseIntQuery(c, "page_size", 500),
	}
	if val := c.Query("student_id"); val != "" {
		filter.StudentID = &val
	}
	if val := c.Query("status"); val != "" {
		status := domain.EventStatus(val)
		filter.Status = &status
	}
	if val := c.Query("from"); val != "" {
		from, err := time.Parse("2006-01-02", val)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if val := c.Query("to"); val != "" {
		to, err := time.Parse("2006-01-02", val)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		filter.DateTo = &to
	}

	list, err := h.scheduleService.ListEvents(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	resp := make([]dto.EventResponse, 0, len(list))
	for i := range list {
		resp = append(resp, eventResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /schedule/events/:id.
func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	event, err := h.scheduleService.GetEvent(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// Update handles PUT /schedule/events/:id.
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	event, err := h.scheduleService.UpdateEvent(c.Context(), actor, c.Params("id"), eventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// UpdateStatus handles PATCH /schedule/events/:id/status.
func (h *ScheduleHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.EventStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Status == "" {
		return fiber.NewError(http.StatusBadRequest, "status required")
	}

	event, err := h.scheduleService.UpdateEventStatus(c.Context(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(event)})
}

// Delete handles DELETE /schedule/events/:id.
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.scheduleService.DeleteEvent(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func eventInput(req dto.EventRequest) service.EventInput {
	return service.EventInput{
		StudentID:    req.StudentID,
		Title:        req.Title,
		Date:         req.Date,
		StartTime:    req.StartTime,
		Service:      req.Service,
		Observations: req.Observations,
	}
}

func eventResponse(event *domain.ClassEvent) dto.EventResponse {
	return dto.EventResponse{
		ID:           event.ID,
		StudentID:    event.StudentID,
		StaffHandle:  event.StaffHandle,
		Title:        event.Title,
		Date:         event.Date.Format("2006-01-02"),
		StartTime:    event.StartTime,
		Status:       event.Status,
		Service:      event.Service,
		Observations: event.Observations,
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}
}
