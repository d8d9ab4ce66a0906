package notify

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/internal/auth"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

/* ============================== List =============================== */

// List returns the caller's notifications, unread first, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)

	var items []models.Notification
	if err := h.db.
		Where("user_id = ?", userID).
		Order("is_read ASC, created_at DESC").
		Limit(100).
		Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load notifications")
	}

	var unread int64
	h.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread)

	return c.JSON(fiber.Map{
		"notifications": items,
		"unread_count":  unread,
	})
}

/* ============================ Mark read ============================ */

func (h *Handler) MarkRead(c *fiber.Ctx) error {
	userID := auth.MustUserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update notification")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}

	return c.JSON(fiber.Map{"message": "notification marked as read"})
}
