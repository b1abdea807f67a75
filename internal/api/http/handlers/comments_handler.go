package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdeskpro/helpdesk-service/internal/api/dto"
	"github.com/helpdeskpro/helpdesk-service/internal/auth"
	"github.com/helpdeskpro/helpdesk-service/internal/domain"
	"github.com/helpdeskpro/helpdesk-service/internal/service"
	apperrors "github.com/helpdeskpro/helpdesk-service/pkg/util"
)

// CommentsHandler manages comment thread endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// List GET /comments?ticketId=.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticketID := c.Query("ticketId")
	if ticketID == "" {
		return apperrors.NewValidationError("ticketId is required", nil)
	}

	comments, err := h.service.List(c.Context(), actor, ticketID)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /comments.
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" {
		return apperrors.NewValidationError("ticketId is required", nil)
	}

	comment, err := h.service.Add(c.Context(), actor, req.TicketID, req.Message)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		Author:    refSummary(comment.Author),
		Message:   comment.Message,
		CreatedAt: comment.CreatedAt,
	}
}
