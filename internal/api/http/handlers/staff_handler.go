package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/practice-kit/practice-service/internal/api/dto"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/repository"
	"github.com/practice-kit/practice-service/internal/service"
)

// StaffHandler exposes staff roster endpoints.
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Create handles POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	staff, err := h.staffService.CreateStaff(c.Context(), actor, service.CreateStaffInput{
		Handle:   req.Handle,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Rates:    ratesFromDTO(req.Rates),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": staffResponse(staff)})
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}

	filter := repository.StaffFilter{
		Limit:  parseIntQuery(c, "page_size", 100),
		Offset: (parseIntQuery(c, "page", 1) - 1) * parseIntQuery(c, "page_size", 100),
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := domain.StaffRole(roleStr)
		filter.Role = &role
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active := parseBoolQuery(c, "active", true)
		filter.Active = &active
	}

	list, err := h.staffService.ListStaff(c.Context(), filter)
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(list))
	for i := range list {
		resp = append(resp, staffResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	staff, err := h.staffService.GetStaff(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

// Update handles PUT /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.UpdateStaffInput{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: req.Active,
	}
	if req.Rates != nil {
		rates := ratesFromDTO(*req.Rates)
		input.Rates = &rates
	}

	updated, err := h.staffService.UpdateStaff(c.Context(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(updated)})
}

// Deactivate handles DELETE /staff/:id.
func (h *StaffHandler) Deactivate(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.staffService.DeactivateStaff(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deactivated"}})
}

func ratesFromDTO(rates []dto.ServiceRateDTO) []domain.ServiceRate {
	result := make([]domain.ServiceRate, 0, len(rates))
	for _, r := range rates {
		result = append(result, domain.ServiceRate{Service: r.Service, HourlyRate: r.HourlyRate})
	}
	return result
}

func staffResponse(staff *domain.StaffMember) dto.StaffResponse {
	rates := make([]dto.ServiceRateDTO, 0, len(staff.Rates))
	for _, r := range staff.Rates {
		rates = append(rates, dto.ServiceRateDTO{Service: r.Service, HourlyRate: r.HourlyRate})
	}
	return dto.StaffResponse{
		ID:     staff.ID,
		Handle: staff.Handle,
		Name:   staff.Name,
		Email:  staff.Email,
		Role:   staff.Role,
		Active: staff.Active,
		Rates:  rates,
	}
}
