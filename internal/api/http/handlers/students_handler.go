package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/practice-kit/practice-service/internal/api/dto"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/service"
)

// StudentsHandler exposes student record endpoints.
type StudentsHandler struct {
	studentService *service.StudentService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(studentService *service.StudentService) *StudentsHandler {
	return &StudentsHandler{studentService: studentService}
}

// Create handles POST /students.
func (h *StudentsHandler) Create(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	student, err := h.studentService.CreateStudent(c.Context(), actor, studentInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": studentResponse(student)})
}

// List handles GET /students.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var status *domain.StudentStatus
	if val := c.Query("status"); val != "" {
		s := domain.StudentStatus(val)
		status = &s
	}

	list, err := h.studentService.ListStudents(c.Context(), actor, status)
	if err != nil {
		return err
	}
	resp := make([]dto.StudentResponse, 0, len(list))
	for i := range list {
		resp = append(resp, studentResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /students/:id.
func (h *StudentsHandler) Get(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	student, err := h.studentService.GetStudent(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": studentResponse(student)})
}

// Update handles PUT /students/:id.
func (h *StudentsHandler) Update(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	student, err := h.studentService.UpdateStudent(c.Context(), actor, c.Params("id"), studentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": studentResponse(student)})
}

// Delete handles DELETE /students/:id.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.studentService.DeleteStudent(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// AppendProgress handles POST /students/:id/progress.
func (h *StudentsHandler) AppendProgress(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ProgressEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.studentService.AppendProgress(c.Context(), actor, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": progressResponse(entry)})
}

// ListProgress handles GET /students/:id/progress.
func (h *StudentsHandler) ListProgress(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	entries, err := h.studentService.ListProgress(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	resp := make([]dto.ProgressEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, progressResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func studentInput(req dto.StudentRequest) service.StudentInput {
	return service.StudentInput{
		Name:          req.Name,
		Status:        req.Status,
		BirthDate:     req.BirthDate,
		ParentName:    req.ParentName,
		ParentContact: req.ParentContact,
		Address:       req.Address,
		Service:       req.Service,
		StaffHandle:   req.StaffHandle,
		MonthlyFee:    req.MonthlyFee,
		Observations:  req.Observations,
	}
}

func studentResponse(student *domain.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:            student.ID,
		Name:          student.Name,
		Status:        student.Status,
		ParentName:    student.ParentName,
		ParentContact: student.ParentContact,
		Address:       student.Address,
		Service:       student.Service,
		StaffHandle:   student.StaffHandle,
		MonthlyFee:    student.MonthlyFee,
		Observations:  student.Observations,
		CreatedAt:     student.CreatedAt,
		UpdatedAt:     student.UpdatedAt,
	}
	if student.BirthDate != nil {
		formatted := student.BirthDate.Format("2006-01-02")
		resp.BirthDate = &formatted
	}
	return resp
}

func progressResponse(entry *domain.ProgressEntry) dto.ProgressEntryResponse {
	return dto.ProgressEntryResponse{
		ID:        entry.ID,
		StudentID: entry.StudentID,
		Author:    entry.Author,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
	}
}
