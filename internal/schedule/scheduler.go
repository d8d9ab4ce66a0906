package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

/* =============================== Errors ================================= */

var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrHearingNotFound   = errors.New("hearing not found")
	ErrJudgeConflict     = errors.New("judge has a scheduling conflict at this time")
	ErrCourtroomConflict = errors.New("courtroom is already booked at this time")
	// ErrSlotConflict is the catch-all for a booking that lost a race: the
	// pre-checks passed but the slot's unique index rejected the insert.
	ErrSlotConflict = errors.New("time slot was just booked")
	ErrEmptyReason  = errors.New("adjournment reason is required")
)

/* ============================== Defaults ================================ */

const (
	defaultHearingTime = "10:00"
	defaultCourtroomID = "CR-1"
	defaultDuration    = 30
)

/* =============================== Service ================================ */

// Notifier receives best-effort scheduling events. Implementations must not
// block; failures never affect the scheduling result.
type Notifier interface {
	HearingBooked(cs models.Case, h models.Hearing)
	HearingAdjourned(cs models.Case, h models.Hearing, reason string)
}

// Service books and adjourns hearings against judge and courtroom
// availability. The paired hearing/case writes run in one transaction, which
// also serializes concurrent bookings for the same slot.
type Service struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	notifier Notifier
	now      func() time.Time
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, notifier Notifier) *Service {
	return &Service{db: db, log: log, notifier: notifier, now: time.Now}
}

/* =============================== Booking ================================ */

// BookingInput describes a booking request. Zero values for Time, CourtroomID
// and DurationMinutes take the standard defaults.
type BookingInput struct {
	CaseID          uuid.UUID
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	CourtroomID     string
	JudgeID         *uuid.UUID
	DurationMinutes int
	Notes           string
}

// BookHearing validates the slot and persists a new hearing together with the
// case status transition. The conflict check is exact (date,time) equality
// among SCHEDULED hearings; duration is intentionally not consulted (known
// limitation, kept for parity with how courts book fixed call-over slots).
func (s *Service) BookHearing(ctx context.Context, in BookingInput) (*models.Hearing, error) {
	if in.Time == "" {
		in.Time = defaultHearingTime
	}
	if in.CourtroomID == "" {
		in.CourtroomID = defaultCourtroomID
	}
	if in.DurationMinutes <= 0 {
		in.DurationMinutes = defaultDuration
	}

	var (
		hearing models.Hearing
		booked  models.Case
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cs models.Case
		if err := tx.First(&cs, "id = ?", in.CaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCaseNotFound
			}
			return err
		}

		if in.JudgeID != nil {
			var n int64
			if err := tx.Model(&models.Hearing{}).
				Where("judge_id = ? AND hearing_date = ? AND hearing_time = ? AND status = ?",
					*in.JudgeID, in.Date, in.Time, models.HearingScheduled).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrJudgeConflict
			}
		}

		var n int64
		if err := tx.Model(&models.Hearing{}).
			Where("courtroom_id = ? AND hearing_date = ? AND hearing_time = ? AND status = ?",
				in.CourtroomID, in.Date, in.Time, models.HearingScheduled).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCourtroomConflict
		}

		hearing = models.Hearing{
			CaseID:          cs.ID,
			HearingDate:     in.Date,
			HearingTime:     in.Time,
			CourtroomID:     in.CourtroomID,
			JudgeID:         in.JudgeID,
			Status:          models.HearingScheduled,
			DurationMinutes: in.DurationMinutes,
			Notes:           in.Notes,
		}
		// The partial unique indexes on (courtroom, date, time) and
		// (judge, date, time) for SCHEDULED hearings are the backstop for
		// bookings racing past the counts above.
		if err := tx.Create(&hearing).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotConflict
			}
			return err
		}

		if err := tx.Model(&cs).Updates(map[string]any{
			"status":     models.CaseScheduled,
			"updated_at": s.now(),
		}).Error; err != nil {
			return err
		}

		cs.Status = models.CaseScheduled
		booked = cs
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.HearingBooked(booked, hearing)
	}

	s.log.Infow("hearing booked",
		"hearing_id", hearing.ID, "case_id", in.CaseID,
		"date", in.Date, "time", in.Time, "courtroom", in.CourtroomID)
	return &hearing, nil
}

/* ============================== Adjournment ============================= */

// AdjournmentResult reports a successful adjournment.
type AdjournmentResult struct {
	HearingID        uuid.UUID `json:"hearing_id"`
	CaseID           uuid.UUID `json:"case_id"`
	Reason           string    `json:"reason"`
	AdjournmentCount int       `json:"adjournment_count"`
}

// AdjournHearing marks the hearing and its case adjourned, bumping the case's
// adjournment counter exactly once, all in one transaction.
func (s *Service) AdjournHearing(ctx context.Context, hearingID uuid.UUID, reason string) (*AdjournmentResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	var (
		result  AdjournmentResult
		adjCase models.Case
		adjHear models.Hearing
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var h models.Hearing
		if err := tx.First(&h, "id = ?", hearingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHearingNotFound
			}
			return err
		}

		if err := tx.Model(&h).Updates(map[string]any{
			"status":             models.HearingAdjourned,
			"adjournment_reason": reason,
		}).Error; err != nil {
			return err
		}

		var cs models.Case
		if err := tx.First(&cs, "id = ?", h.CaseID).Error; err != nil {
			return err
		}
		if err := tx.Model(&cs).Updates(map[string]any{
			"status":                  models.CaseAdjourned,
			"adjournment_count":       gorm.Expr("adjournment_count + 1"),
			"last_adjournment_reason": reason,
			"updated_at":              s.now(),
		}).Error; err != nil {
			return err
		}

		result = AdjournmentResult{
			HearingID:        h.ID,
			CaseID:           cs.ID,
			Reason:           reason,
			AdjournmentCount: cs.AdjournmentCount + 1,
		}

		cs.Status = models.CaseAdjourned
		cs.AdjournmentCount++
		adjCase, adjHear = cs, h
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.HearingAdjourned(adjCase, adjHear, reason)
	}

	s.log.Infow("hearing adjourned", "hearing_id", hearingID, "reason", reason)
	return &result, nil
}

/* ================================ Queries =============================== */

// HearingFilter narrows ListHearings. An empty Status defaults to SCHEDULED.
type HearingFilter struct {
	Date    string
	JudgeID string
	Status  string
}

// HearingRow is a hearing joined with case and judge display fields.
type HearingRow struct {
	models.Hearing
	CaseTitle     string         `json:"case_title"`
	CaseNumber    string         `json:"case_number"`
	CaseType      string         `json:"case_type"`
	PriorityScore int            `json:"priority_score"`
	Urgency       models.Urgency `json:"urgency"`
	JudgeName     string         `json:"judge_name"`
}

// ListHearings returns hearings matching the filter, ordered by date then time.
func (s *Service) ListHearings(ctx context.Context, f HearingFilter) ([]HearingRow, error) {
	if f.Status == "" {
		f.Status = string(models.HearingScheduled)
	}

	q := s.db.WithContext(ctx).
		Table("hearings").
		Select(`hearings.*, cases.title AS case_title, cases.case_number,
			cases.case_type, cases.priority_score, cases.urgency,
			users.full_name AS judge_name`).
		Joins("JOIN cases ON hearings.case_id = cases.id").
		Joins("LEFT JOIN users ON hearings.judge_id = users.id").
		Where("hearings.status = ?", f.Status)

	if f.Date != "" {
		q = q.Where("hearings.hearing_date = ?", f.Date)
	}
	if f.JudgeID != "" {
		q = q.Where("hearings.judge_id = ?", f.JudgeID)
	}

	rows := make([]HearingRow, 0)
	if err := q.Order("hearings.hearing_date ASC, hearings.hearing_time ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// JudgeSchedule pairs a judge with their upcoming scheduled hearings. Judge is
// nil when the ID does not resolve to a JUDGE-role user; callers must check.
type JudgeSchedule struct {
	Judge             *models.User     `json:"judge"`
	ScheduledHearings []models.Hearing `json:"scheduled_hearings"`
}

// JudgeAvailability lists a judge's future SCHEDULED hearings, earliest first.
func (s *Service) JudgeAvailability(ctx context.Context, judgeID uuid.UUID) (*JudgeSchedule, error) {
	today := s.now().Format("2006-01-02")

	hearings := make([]models.Hearing, 0)
	if err := s.db.WithContext(ctx).
		Where("judge_id = ? AND status = ? AND hearing_date >= ?",
			judgeID, models.HearingScheduled, today).
		Order("hearing_date ASC").
		Find(&hearings).Error; err != nil {
		return nil, err
	}

	out := &JudgeSchedule{ScheduledHearings: hearings}
	var judge models.User
	err := s.db.WithContext(ctx).
		First(&judge, "id = ? AND role = ?", judgeID, models.RoleJudge).Error
	switch {
	case err == nil:
		out.Judge = &judge
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return out, nil
}

// ListCourtrooms returns all courtrooms.
func (s *Service) ListCourtrooms(ctx context.Context) ([]models.Courtroom, error) {
	rooms := make([]models.Courtroom, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
