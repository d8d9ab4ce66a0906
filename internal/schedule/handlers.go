package schedule

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sandeep-khatri01/court-scheduling-system/internal/advisor"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/validation"
)

/* ================================ DTOs ================================= */

type ConfirmHearingRequest struct {
	CaseID          string `json:"case_id" validate:"required,uuid4"`
	HearingDate     string `json:"hearing_date" validate:"required,hearingdate"`
	HearingTime     string `json:"hearing_time" validate:"omitempty,hearingtime"`
	CourtroomID     string `json:"courtroom_id" validate:"omitempty,max=20"`
	JudgeID         string `json:"judge_id" validate:"omitempty,uuid4"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=5,lte=480"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

type AdjournRequest struct {
	HearingID string `json:"hearing_id" validate:"required,uuid4"`
	Reason    string `json:"reason" validate:"required,max=500"`
}

type SuggestRequest struct {
	CaseID string `json:"case_id" validate:"required,uuid4"`
}

/* ============================== Handler ================================= */

type Handler struct {
	svc     *Service
	advisor *advisor.Service
}

func NewHandler(svc *Service, adv *advisor.Service) *Handler {
	return &Handler{svc: svc, advisor: adv}
}

// mapError converts scheduler sentinel errors to HTTP status errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, ErrCaseNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Case not found")
	case errors.Is(err, ErrHearingNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Hearing not found")
	case errors.Is(err, ErrJudgeConflict):
		return fiber.NewError(fiber.StatusConflict, "Judge has a scheduling conflict at this time")
	case errors.Is(err, ErrCourtroomConflict):
		return fiber.NewError(fiber.StatusConflict, "Courtroom is already booked at this time")
	case errors.Is(err, ErrSlotConflict):
		return fiber.NewError(fiber.StatusConflict, "Time slot was just booked by another request")
	case errors.Is(err, ErrEmptyReason):
		return fiber.NewError(fiber.StatusBadRequest, "Adjournment reason is required")
	default:
		return fiber.ErrInternalServerError
	}
}

// ListHearings returns hearings filtered by ?date=&judge_id=&status=.
func (h *Handler) ListHearings(c *fiber.Ctx) error {
	rows, err := h.svc.ListHearings(c.Context(), HearingFilter{
		Date:    c.Query("date"),
		JudgeID: c.Query("judge_id"),
		Status:  c.Query("status"),
	})
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(rows)
}

// Confirm books a hearing after the conflict checks pass.
func (h *Handler) Confirm(c *fiber.Ctx) error {
	var in ConfirmHearingRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	caseID, _ := uuid.Parse(in.CaseID)
	var judgeID *uuid.UUID
	if in.JudgeID != "" {
		id, _ := uuid.Parse(in.JudgeID)
		judgeID = &id
	}

	hearing, err := h.svc.BookHearing(c.Context(), BookingInput{
		CaseID:          caseID,
		Date:            in.HearingDate,
		Time:            in.HearingTime,
		CourtroomID:     in.CourtroomID,
		JudgeID:         judgeID,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(hearing)
}

// Adjourn postpones a hearing with a mandatory reason.
func (h *Handler) Adjourn(c *fiber.Ctx) error {
	var in AdjournRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	hearingID, _ := uuid.Parse(in.HearingID)
	result, err := h.svc.AdjournHearing(c.Context(), hearingID, in.Reason)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{
		"message":           "Hearing adjourned",
		"hearing_id":        result.HearingID,
		"reason":            result.Reason,
		"adjournment_count": result.AdjournmentCount,
	})
}

// Suggest returns the advisor's scheduling hint for a case.
func (h *Handler) Suggest(c *fiber.Ctx) error {
	var in SuggestRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	caseID, _ := uuid.Parse(in.CaseID)
	suggestion, err := h.advisor.SuggestSchedule(c.Context(), caseID)
	if err != nil {
		if errors.Is(err, advisor.ErrCaseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Case not found")
		}
		return fiber.ErrInternalServerError
	}
	return c.JSON(suggestion)
}

// Courtrooms lists all courtrooms.
func (h *Handler) Courtrooms(c *fiber.Ctx) error {
	rooms, err := h.svc.ListCourtrooms(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(rooms)
}

// JudgeAvailability returns a judge's upcoming scheduled hearings. The judge
// field is null when the ID does not belong to a judge; clients must check.
func (h *Handler) JudgeAvailability(c *fiber.Ctx) error {
	judgeID, err := uuid.Parse(c.Params("judgeID"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid judge id")
	}

	sched, err := h.svc.JudgeAvailability(c.Context(), judgeID)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	return c.JSON(sched)
}
