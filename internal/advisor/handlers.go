package advisor

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sandeep-khatri01/court-scheduling-system/internal/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type chatRequest struct {
	Message string `json:"message"`
}

/* ============================== Chat =============================== */

// Chat answers a free-form legal question using the law corpus. The route is
// public; when a valid token is present the exchange is attributed to the
// caller in the audit trail.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	var userID *uuid.UUID
	if s, ok := auth.UserID(c); ok {
		if id, err := uuid.Parse(s); err == nil {
			userID = &id
		}
	}

	answer, err := h.svc.AnswerChat(c.Context(), req.Message, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to answer query")
	}
	return c.JSON(answer)
}
