package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/practice-kit/practice-service/internal/api/dto"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/service"
)

// BillingHandler exposes billing generation, entry upkeep and the
// financial reports.
type BillingHandler struct {
	billingService *service.BillingService
	financeService *service.FinanceService
}

// NewBillingHandler constructs handler.
func NewBillingHandler(billingService *service.BillingService, financeService *service.FinanceService) *BillingHandler {
	return &BillingHandler{billingService: billingService, financeService: financeService}
}

// Generate handles POST /billing/generate.
func (h *BillingHandler) Generate(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.GenerateBillingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	report, err := h.billingService.GenerateMonthlyEntries(c.Context(), actor, req.Year, time.Month(req.Month))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// ListEntries handles GET /billing/entries.
func (h *BillingHandler) ListEntries(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	entries, err := h.billingService.ListEntries(c.Context(), actor, c.Query("period"))
	if err != nil {
		return err
	}
	resp := make([]dto.BillingEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, billingEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateEntryStatus handles PATCH /billing/entries/:id/status.
func (h *BillingHandler) UpdateEntryStatus(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.BillingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Status == "" {
		return fiber.NewError(http.StatusBadRequest, "status required")
	}

	entry, err := h.billingService.UpdateEntryStatus(c.Context(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": billingEntryResponse(entry)})
}

// Summary handles GET /billing/summary.
func (h *BillingHandler) Summary(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	summary, err := h.financeService.GetSummary(c.Context(), actor, c.Query("period"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// RevenueBreakdown handles GET /billing/reports/revenue.
func (h *BillingHandler) RevenueBreakdown(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	breakdown, err := h.financeService.GetRevenueBreakdown(c.Context(), actor, c.Query("period"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": breakdown})
}

// TeamPerformance handles GET /billing/reports/performance.
func (h *BillingHandler) TeamPerformance(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	performance, err := h.financeService.GetTeamPerformance(c.Context(), actor, c.Query("period"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": performance})
}

// CreateIncome handles POST /billing/incomes.
func (h *BillingHandler) CreateIncome(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.IncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	income, err := h.financeService.CreateIncome(c.Context(), actor, req.Description, req.Amount, req.Period)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": incomeResponse(income)})
}

// ListIncomes handles GET /billing/incomes.
func (h *BillingHandler) ListIncomes(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	incomes, err := h.financeService.ListIncomes(c.Context(), actor, c.Query("period"))
	if err != nil {
		return err
	}
	resp := make([]dto.IncomeResponse, 0, len(incomes))
	for i := range incomes {
		resp = append(resp, incomeResponse(&incomes[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateIncome handles PUT /billing/incomes/:id.
func (h *BillingHandler) UpdateIncome(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.IncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	income := &domain.MiscIncome{
		ID:          c.Params("id"),
		Description: req.Description,
		Amount:      req.Amount,
		Period:      req.Period,
	}
	updated, err := h.financeService.UpdateIncome(c.Context(), actor, income)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": incomeResponse(updated)})
}

// DeleteIncome handles DELETE /billing/incomes/:id.
func (h *BillingHandler) DeleteIncome(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.financeService.DeleteIncome(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// CreateExpense handles POST /billing/expenses.
func (h *BillingHandler) CreateExpense(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	expense, err := h.financeService.CreateExpense(c.Context(), actor, req.Description, req.Amount, req.Period, req.Status)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": expenseResponse(expense)})
}

// ListExpenses handles GET /billing/expenses.
func (h *BillingHandler) ListExpenses(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	expenses, err := h.financeService.ListExpenses(c.Context(), actor, c.Query("period"))
	if err != nil {
		return err
	}
	resp := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, expenseResponse(&expenses[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateExpense handles PUT /billing/expenses/:id.
func (h *BillingHandler) UpdateExpense(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	expense := &domain.GeneralExpense{
		ID:          c.Params("id"),
		Description: req.Description,
		Amount:      req.Amount,
		Period:      req.Period,
		Status:      req.Status,
	}
	updated, err := h.financeService.UpdateExpense(c.Context(), actor, expense)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": expenseResponse(updated)})
}

// DeleteExpense handles DELETE /billing/expenses/:id.
func (h *BillingHandler) DeleteExpense(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.financeService.DeleteExpense(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func billingEntryResponse(entry *domain.BillingEntry) dto.BillingEntryResponse {
	return dto.BillingEntryResponse{
		ID:          entry.ID,
		StudentID:   entry.StudentID,
		Description: entry.Description,
		Amount:      entry.Amount,
		Period:      entry.Period,
		Status:      entry.Status,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}

func incomeResponse(income *domain.MiscIncome) dto.IncomeResponse {
	return dto.IncomeResponse{
		ID:          income.ID,
		Description: income.Description,
		Amount:      income.Amount,
		Period:      income.Period,
		CreatedAt:   income.CreatedAt,
		UpdatedAt:   income.UpdatedAt,
	}
}

func expenseResponse(expense *domain.GeneralExpense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Period:      expense.Period,
		Status:      expense.Status,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
