package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/practice-kit/practice-service/internal/api/dto"
	"github.com/practice-kit/practice-service/internal/domain"
	"github.com/practice-kit/practice-service/internal/service"
)

// NoticesHandler exposes the announcement board endpoints.
type NoticesHandler struct {
	noticeService *service.NoticeService
}

// NewNoticesHandler constructs handler.
func NewNoticesHandler(noticeService *service.NoticeService) *NoticesHandler {
	return &NoticesHandler{noticeService: noticeService}
}

// Create handles POST /notices.
func (h *NoticesHandler) Create(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	notice, err := h.noticeService.CreateNotice(c.Context(), actor, noticeInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": noticeResponse(notice)})
}

// List handles GET /notices.
func (h *NoticesHandler) List(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	notices, err := h.noticeService.ListNotices(c.Context(), actor)
	if err != nil {
		return err
	}
	resp := make([]dto.NoticeResponse, 0, len(notices))
	for i := range notices {
		resp = append(resp, noticeResponse(&notices[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /notices/:id.
func (h *NoticesHandler) Get(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	notice, err := h.noticeService.GetNotice(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": noticeResponse(notice)})
}

// Update handles PUT /notices/:id.
func (h *NoticesHandler) Update(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	notice, err := h.noticeService.UpdateNotice(c.Context(), actor, c.Params("id"), noticeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": noticeResponse(notice)})
}

// Delete handles DELETE /notices/:id.
func (h *NoticesHandler) Delete(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.noticeService.DeleteNotice(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// ToggleReaction handles POST /notices/:id/reactions.
func (h *NoticesHandler) ToggleReaction(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	notice, err := h.noticeService.ToggleReaction(c.Context(), actor, c.Params("id"), req.Emoji)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": noticeResponse(notice)})
}

// AddComment handles POST /notices/:id/comments.
func (h *NoticesHandler) AddComment(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	notice, err := h.noticeService.AddComment(c.Context(), actor, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": noticeResponse(notice)})
}

// DeleteComment handles DELETE /notices/:id/comments/:commentId.
func (h *NoticesHandler) DeleteComment(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	notice, err := h.noticeService.DeleteComment(c.Context(), actor, c.Params("id"), c.Params("commentId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": noticeResponse(notice)})
}

// ToggleCommentReaction handles POST /notices/:id/comments/:commentId/reactions.
func (h *NoticesHandler) ToggleCommentReaction(c *fiber.Ctx) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	notice, err := h.noticeService.ToggleCommentReaction(c.Context(), actor, c.Params("id"), c.Params("commentId"), req.Emoji)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": noticeResponse(notice)})
}

func noticeInput(req dto.NoticeRequest) service.NoticeInput {
	return service.NoticeInput{
		Content:  req.Content,
		Everyone: req.Everyone,
		Handles:  req.Handles,
	}
}

func reactionResponses(reactions []domain.Reaction) []dto.ReactionResponse {
	resp := make([]dto.ReactionResponse, 0, len(reactions))
	for _, r := range reactions {
		resp = append(resp, dto.ReactionResponse{Emoji: r.Emoji, Handle: r.Handle})
	}
	return resp
}

func noticeResponse(notice *domain.Notice) dto.NoticeResponse {
	comments := make([]dto.CommentResponse, 0, len(notice.Comments))
	for _, comment := range notice.Comments {
		comments = append(comments, dto.CommentResponse{
			ID:        comment.ID,
			Author:    comment.Author,
			Content:   comment.Content,
			Reactions: reactionResponses(comment.Reactions),
			CreatedAt: comment.CreatedAt,
		})
	}
	return dto.NoticeResponse{
		ID:        notice.ID,
		Author:    notice.Author,
		Content:   notice.Content,
		Everyone:  notice.Audience.Everyone,
		Handles:   notice.Audience.Handles,
		Reactions: reactionResponses(notice.Reactions),
		Comments:  comments,
		CreatedAt: notice.CreatedAt,
		UpdatedAt: notice.UpdatedAt,
	}
}
