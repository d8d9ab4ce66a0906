package cases

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/internal/advisor"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/validation"
)

/* ================================ DTOs ================================= */

type CreateCaseRequest struct {
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description" validate:"max=5000"`
	CaseType         string `json:"case_type" validate:"required"`
	Urgency          string `json:"urgency" validate:"omitempty,oneof=Low Medium High Critical"`
	PetitionerName   string `json:"petitioner_name" validate:"omitempty,max=120"`
	RespondentName   string `json:"respondent_name" validate:"omitempty,max=120"`
	PresidingJudgeID string `json:"presiding_judge_id" validate:"omitempty,uuid4"`
	AssignedLawyerID string `json:"assigned_lawyer_id" validate:"omitempty,uuid4"`
}

// CaseListItem is a case row joined with judge/lawyer display names.
type CaseListItem struct {
	models.Case
	JudgeName  string `json:"judge_name"`
	LawyerName string `json:"lawyer_name"`
}

// CaseHearing is a hearing row joined with its judge's display name.
type CaseHearing struct {
	models.Hearing
	JudgeName string `json:"judge_name"`
}

// CaseDetail is the full single-case view. Hearings here shadows the bare
// hearing list embedded in CaseListItem.
type CaseDetail struct {
	CaseListItem
	Hearings []CaseHearing `json:"hearings"`
}

const statsCacheKey = "cases:stats"

/* ============================== Handler ================================= */

type Handler struct {
	db      *gorm.DB
	advisor *advisor.Service
	cache   *gocache.Cache
}

func NewHandler(db *gorm.DB, adv *advisor.Service, cache *gocache.Cache) *Handler {
	return &Handler{db: db, advisor: adv, cache: cache}
}

/* ================================ Create ================================ */

// Create files a new case. Status starts at PENDING with a zero priority
// score; the case number is generated from the filing year.
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}
	if !models.ValidCaseType(models.CaseType(in.CaseType)) {
		return validation.Respond(c, map[string][]string{
			"case_type": {"Value is not allowed"},
		})
	}

	urgency := models.Urgency(in.Urgency)
	if urgency == "" {
		urgency = models.UrgencyMedium
	}

	now := time.Now()
	cs := models.Case{
		CaseNumber:     fmt.Sprintf("CASE/%d/%06d", now.Year(), now.UnixNano()%1000000),
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		CaseType:       models.CaseType(in.CaseType),
		Status:         models.CasePending,
		Urgency:        urgency,
		PetitionerName: in.PetitionerName,
		RespondentName: in.RespondentName,
		FilingDate:     now.Format("2006-01-02"),
	}
	if in.PresidingJudgeID != "" {
		id, _ := uuid.Parse(in.PresidingJudgeID)
		cs.PresidingJudgeID = &id
	}
	if in.AssignedLawyerID != "" {
		id, _ := uuid.Parse(in.AssignedLawyerID)
		cs.AssignedLawyerID = &id
	}

	if err := h.db.Create(&cs).Error; err != nil {
		return fiber.ErrInternalServerError
	}
	h.cache.Delete(statsCacheKey)
	return c.Status(fiber.StatusCreated).JSON(cs)
}

/* ================================= List ================================= */

func parseLimitOffset(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "50"))
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return
}

// List returns cases with optional filters, ordered by priority (desc) then
// filing date (asc) so old urgent matters surface first.
func (h *Handler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c)

	q := h.db.Table("cases").
		Select(`cases.*, j.full_name AS judge_name, l.full_name AS lawyer_name`).
		Joins("LEFT JOIN users j ON cases.presiding_judge_id = j.id").
		Joins("LEFT JOIN users l ON cases.assigned_lawyer_id = l.id")

	if status := c.Query("status"); status != "" {
		q = q.Where("cases.status = ?", status)
	}
	if caseType := c.Query("type"); caseType != "" {
		q = q.Where("cases.case_type = ?", caseType)
	}
	if urgency := c.Query("urgency"); urgency != "" {
		q = q.Where("cases.urgency = ?", urgency)
	}
	if judgeID := c.Query("judge_id"); judgeID != "" {
		q = q.Where("cases.presiding_judge_id = ?", judgeID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("cases.title LIKE ? OR cases.case_number LIKE ?", like, like)
	}

	rows := make([]CaseListItem, 0, limit)
	if err := q.Order("cases.priority_score DESC, cases.filing_date ASC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	var total int64
	if err := h.db.Model(&models.Case{}).Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"cases":  rows,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

/* ================================= Stats ================================ */

type countBucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Stats returns the dashboard aggregates, cached briefly since every
// dashboard load requests them.
func (h *Handler) Stats(c *fiber.Ctx) error {
	if cached, found := h.cache.Get(statsCacheKey); found {
		return c.JSON(cached)
	}

	var total int64
	if err := h.db.Model(&models.Case{}).Count(&total).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	byStatus := make([]countBucket, 0)
	h.db.Model(&models.Case{}).Select("status AS key, COUNT(*) AS count").Group("status").Scan(&byStatus)
	byType := make([]countBucket, 0)
	h.db.Model(&models.Case{}).Select("case_type AS key, COUNT(*) AS count").Group("case_type").Scan(&byType)
	byUrgency := make([]countBucket, 0)
	h.db.Model(&models.Case{}).Select("urgency AS key, COUNT(*) AS count").Group("urgency").Scan(&byUrgency)

	var avgPriority float64
	h.db.Model(&models.Case{}).Select("COALESCE(AVG(priority_score), 0)").Scan(&avgPriority)

	var highPriority, pending, adjourned, totalAdjournments, upcoming int64
	h.db.Model(&models.Case{}).Where("priority_score >= ?", 70).Count(&highPriority)
	h.db.Model(&models.Case{}).Where("status = ?", models.CasePending).Count(&pending)
	h.db.Model(&models.Case{}).Where("status = ?", models.CaseAdjourned).Count(&adjourned)
	h.db.Model(&models.Case{}).Select("COALESCE(SUM(adjournment_count), 0)").Scan(&totalAdjournments)
	h.db.Model(&models.Hearing{}).
		Where("hearing_date >= ? AND status = ?", time.Now().Format("2006-01-02"), models.HearingScheduled).
		Count(&upcoming)

	stats := fiber.Map{
		"totalCases":        total,
		"avgPriority":       float64(int(avgPriority*10)) / 10,
		"highPriorityCases": highPriority,
		"pendingCases":      pending,
		"adjournedCases":    adjourned,
		"totalAdjournments": totalAdjournments,
		"upcomingHearings":  upcoming,
		"byStatus":          byStatus,
		"byType":            byType,
		"byUrgency":         byUrgency,
	}
	h.cache.Set(statsCacheKey, stats, gocache.DefaultExpiration)
	return c.JSON(stats)
}

/* ================================== Get ================================= */

// Get returns a single case with its hearings (latest first) and the
// judge/lawyer display names.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	var row CaseListItem
	err := h.db.Table("cases").
		Select(`cases.*, j.full_name AS judge_name, l.full_name AS lawyer_name`).
		Joins("LEFT JOIN users j ON cases.presiding_judge_id = j.id").
		Joins("LEFT JOIN users l ON cases.assigned_lawyer_id = l.id").
		Where("cases.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if row.ID == uuid.Nil {
		return fiber.NewError(fiber.StatusNotFound, "Case not found")
	}

	hearings := make([]CaseHearing, 0)
	if err := h.db.Table("hearings").
		Select("hearings.*, users.full_name AS judge_name").
		Joins("LEFT JOIN users ON hearings.judge_id = users.id").
		Where("hearings.case_id = ?", row.ID).
		Order("hearings.hearing_date DESC").
		Scan(&hearings).Error; err != nil {
		return fiber.ErrInternalServerError
	}

	return c.JSON(CaseDetail{CaseListItem: row, Hearings: hearings})
}

/* ========================== Priority Analysis =========================== */

// AnalyzePriority runs the advisor's priority analysis for a case.
func (h *Handler) AnalyzePriority(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid case id")
	}

	analysis, err := h.advisor.AnalyzePriority(c.Context(), id)
	if err != nil {
		if errors.Is(err, advisor.ErrCaseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Case not found")
		}
		return fiber.ErrInternalServerError
	}
	h.cache.Delete(statsCacheKey)
	return c.JSON(analysis)
}
