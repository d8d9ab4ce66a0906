package notify

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

// Service writes notifications about scheduling activity. All writes are
// best-effort: a failure is logged and otherwise ignored, so notification
// problems can never fail a booking.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) create(n models.Notification) {
	if err := s.db.Create(&n).Error; err != nil {
		s.log.Debugw("notification write failed", "type", n.Type, "error", err)
	}
}

// HearingBooked notifies the assigned lawyer that a hearing was scheduled.
func (s *Service) HearingBooked(cs models.Case, h models.Hearing) {
	if cs.AssignedLawyerID == nil {
		return
	}
	s.create(models.Notification{
		UserID: *cs.AssignedLawyerID,
		CaseID: &cs.ID,
		Type:   models.NotifyStatusChange,
		Message: fmt.Sprintf("Hearing scheduled for %s (%s) on %s at %s in %s",
			cs.Title, cs.CaseNumber, h.HearingDate, h.HearingTime, h.CourtroomID),
	})
}

// HearingAdjourned notifies the assigned lawyer that a hearing was postponed.
func (s *Service) HearingAdjourned(cs models.Case, h models.Hearing, reason string) {
	if cs.AssignedLawyerID == nil {
		return
	}
	s.create(models.Notification{
		UserID: *cs.AssignedLawyerID,
		CaseID: &cs.ID,
		Type:   models.NotifyReschedule,
		Message: fmt.Sprintf("Hearing on %s for %s (%s) was adjourned: %s",
			h.HearingDate, cs.Title, cs.CaseNumber, reason),
	})
}
