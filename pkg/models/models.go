package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================== Enums ================================== */

// Role defines the type of user in the system.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleJudge   Role = "JUDGE"
	RoleClerk   Role = "CLERK"
	RoleLawyer  Role = "LAWYER"
	RoleCitizen Role = "CITIZEN"
)

// CaseType classifies the legal matter.
type CaseType string

const (
	CaseTypeCivil          CaseType = "Civil"
	CaseTypeCriminal       CaseType = "Criminal"
	CaseTypeConstitutional CaseType = "Constitutional"
	CaseTypeFamily         CaseType = "Family"
	CaseTypeLabour         CaseType = "Labour"
	CaseTypeCyber          CaseType = "Cyber"
	CaseTypeMotorVehicle   CaseType = "Motor Vehicle"
	CaseTypeTax            CaseType = "Tax"
	CaseTypeOther          CaseType = "Other"
)

// ValidCaseType reports whether t is one of the closed case type variants.
func ValidCaseType(t CaseType) bool {
	switch t {
	case CaseTypeCivil, CaseTypeCriminal, CaseTypeConstitutional, CaseTypeFamily,
		CaseTypeLabour, CaseTypeCyber, CaseTypeMotorVehicle, CaseTypeTax, CaseTypeOther:
		return true
	}
	return false
}

// CaseStatus defines lifecycle states for a case.
// Pending -> Scheduled -> Adjourned -> Scheduled ... ; Disposed/Closed are terminal.
type CaseStatus string

const (
	CasePending    CaseStatus = "PENDING"
	CaseScheduled  CaseStatus = "SCHEDULED"
	CaseInProgress CaseStatus = "IN_PROGRESS"
	CaseAdjourned  CaseStatus = "ADJOURNED"
	CaseDisposed   CaseStatus = "DISPOSED"
	CaseClosed     CaseStatus = "CLOSED"
)

// Terminal reports whether the status is absorbing.
func (s CaseStatus) Terminal() bool {
	return s == CaseDisposed || s == CaseClosed
}

// HearingStatus defines lifecycle states for a hearing.
type HearingStatus string

const (
	HearingScheduled HearingStatus = "SCHEDULED"
	HearingCompleted HearingStatus = "COMPLETED"
	HearingAdjourned HearingStatus = "ADJOURNED"
	HearingCancelled HearingStatus = "CANCELLED"
)

// Urgency buckets a case's priority score for display and triage.
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// UrgencyFromLevel maps an advisor priority level onto the urgency enum.
// Unrecognized values collapse to Medium.
func UrgencyFromLevel(level string) Urgency {
	switch Urgency(level) {
	case UrgencyCritical, UrgencyHigh, UrgencyLow:
		return Urgency(level)
	}
	return UrgencyMedium
}

// CourtroomStatus defines availability states for a courtroom.
type CourtroomStatus string

const (
	CourtroomAvailable   CourtroomStatus = "AVAILABLE"
	CourtroomOccupied    CourtroomStatus = "OCCUPIED"
	CourtroomMaintenance CourtroomStatus = "MAINTENANCE"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotifyHearingReminder NotificationType = "HEARING_REMINDER"
	NotifyReschedule      NotificationType = "RESCHEDULE"
	NotifyStatusChange    NotificationType = "STATUS_CHANGE"
	NotifyGeneral         NotificationType = "GENERAL"
)

/* =============================== Entities =============================== */

// User represents any actor in the system: court staff, judges, lawyers, citizens.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	Phone        string    `json:"phone,omitempty"`
	BarNumber    string    `json:"bar_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Case represents a legal matter tracked from intake to disposition.
type Case struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CaseNumber  string     `gorm:"uniqueIndex;not null" json:"case_number"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	FilingDate  string     `gorm:"not null" json:"filing_date"` // YYYY-MM-DD
	CaseType    CaseType   `gorm:"type:varchar(20);not null;default:'Civil'" json:"case_type"`
	Status      CaseStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`

	PriorityScore int     `gorm:"default:0" json:"priority_score"` // 0-100
	Urgency       Urgency `gorm:"type:varchar(10);default:'Medium'" json:"urgency"`

	PresidingJudgeID *uuid.UUID `gorm:"type:uuid;index" json:"presiding_judge_id"`
	AssignedLawyerID *uuid.UUID `gorm:"type:uuid" json:"assigned_lawyer_id"`
	PetitionerName   string     `json:"petitioner_name"`
	RespondentName   string     `json:"respondent_name"`

	// AdjournmentCount only ever increases, once per successful adjournment,
	// always paired with LastAdjournmentReason.
	AdjournmentCount      int     `gorm:"default:0" json:"adjournment_count"`
	LastAdjournmentReason *string `json:"last_adjournment_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hearings []Hearing `gorm:"foreignKey:CaseID" json:"hearings,omitempty"`
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Hearing represents one scheduled sitting of a case.
// At most one SCHEDULED hearing may exist per (judge, date, time) and per
// (courtroom, date, time); the scheduler enforces this on booking.
type Hearing struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"case_id"`
	HearingDate string        `gorm:"not null;index" json:"hearing_date"` // YYYY-MM-DD
	HearingTime string        `gorm:"default:'10:00'" json:"hearing_time"`
	CourtroomID string        `gorm:"default:'CR-1'" json:"courtroom_id"`
	JudgeID     *uuid.UUID    `gorm:"type:uuid;index" json:"judge_id"`
	Status      HearingStatus `gorm:"type:varchar(20);default:'SCHEDULED'" json:"status"`

	AdjournmentReason *string `json:"adjournment_reason"`
	Notes             string  `json:"notes,omitempty"`
	DurationMinutes   int     `gorm:"default:30" json:"duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
}

func (h *Hearing) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// Courtroom is read-mostly reference data.
type Courtroom struct {
	ID           string          `gorm:"primaryKey" json:"id"` // e.g. CR-1
	Name         string          `gorm:"not null" json:"name"`
	Capacity     int             `gorm:"default:50" json:"capacity"`
	HasVideoConf bool            `gorm:"default:false" json:"has_video_conf"`
	Floor        string          `json:"floor"`
	Status       CourtroomStatus `gorm:"type:varchar(20);default:'AVAILABLE'" json:"status"`
}

// Law is one record of the immutable statute corpus. The integer ID is
// assigned at load time.
type Law struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ActName         string `gorm:"not null" json:"act_name"`
	Section         string `json:"section"`
	Title           string `gorm:"not null" json:"title"`
	Description     string `gorm:"type:text;not null" json:"description"`
	Penalty         string `json:"penalty"`
	Category        string `json:"category"`
	Keywords        string `json:"keywords"` // comma-separated free text
	IsBailable      bool   `gorm:"default:true" json:"is_bailable"`
	MaxImprisonment string `json:"max_imprisonment"`
	FineAmount      string `json:"fine_amount"`
}

// AuditLog records one advisor invocation. Append-only; never mutated or
// deleted by the application.
type AuditLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	ActionType    string     `gorm:"type:varchar(40);not null" json:"action_type"`
	PromptSummary string     `gorm:"type:text" json:"prompt_summary"`
	AIResponse    string     `gorm:"type:text" json:"ai_response"`
	TokensUsed    int        `gorm:"default:0" json:"tokens_used"`
	LatencyMs     int64      `gorm:"default:0" json:"latency_ms"`
	CreatedAt     time.Time  `json:"timestamp"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Notification is a best-effort message to a user about case activity.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CaseID    *uuid.UUID       `gorm:"type:uuid" json:"case_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Message   string           `gorm:"not null" json:"message"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
