package laws

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

type Handler struct {
	db     *gorm.DB
	engine *Engine
}

func NewHandler(db *gorm.DB, engine *Engine) *Handler {
	return &Handler{db: db, engine: engine}
}

// Search ranks the corpus against ?q= and returns the top matches.
func (h *Handler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Search query required (use ?q=...)")
	}

	results := h.engine.Retrieve(q)
	if results == nil {
		results = []ScoredLaw{}
	}
	return c.JSON(fiber.Map{
		"query":   q,
		"results": results,
		"count":   len(results),
	})
}

// List returns the corpus, optionally filtered by ?category=.
func (h *Handler) List(c *fiber.Ctx) error {
	q := h.db.Model(&models.Law{})
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var laws []models.Law
	if err := q.Order("act_name, section").Find(&laws).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(laws)
}

// Get returns a single law by its integer ID.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid law id")
	}

	var law models.Law
	if err := h.db.First(&law, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Law not found")
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(law)
}
