package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/internal/laws"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

// ErrCaseNotFound is returned when an advisor operation references a case
// that does not exist.
var ErrCaseNotFound = errors.New("case not found")

// Action types recorded in the audit log.
const (
	actionScheduleSuggestion = "SCHEDULE_SUGGESTION"
	actionPriorityAnalysis   = "PRIORITY_ANALYSIS"
	actionChatQuery          = "CHAT_QUERY"
)

/* =============================== Results ================================ */

// ScheduleSuggestion is the advisor's (advisory, non-binding) booking hint.
type ScheduleSuggestion struct {
	SuggestedDaysRange     string   `json:"suggested_days_range"`
	HearingDurationMinutes int      `json:"hearing_duration_minutes"`
	ConfidenceScore        int      `json:"confidence_score"`
	SchedulingReasoning    string   `json:"scheduling_reasoning"`
	DelayRisk              string   `json:"delay_risk"`
	Recommendations        []string `json:"recommendations"`
}

// PriorityAnalysis is the advisor's structured priority assessment.
// PriorityScore is a pointer so an absent/null field in the model output is
// distinguishable from zero.
type PriorityAnalysis struct {
	PriorityScore   *int     `json:"priority_score"`
	PriorityLevel   string   `json:"priority_level"`
	DelayRisk       string   `json:"delay_risk"`
	Reasoning       string   `json:"reasoning"`
	Recommendations []string `json:"recommendations"`
}

// LawSource cites one retrieved law backing a chat answer.
type LawSource struct {
	Act     string `json:"act"`
	Section string `json:"section"`
	Title   string `json:"title"`
}

// ChatAnswer is a retrieval-grounded reply with its cited sources.
type ChatAnswer struct {
	Reply   string      `json:"reply"`
	Sources []LawSource `json:"sources"`
}

/* =============================== Service ================================ */

// Service wraps the external text-completion dependency with deterministic
// fallbacks. Completion failures are absorbed here and never surface as
// errors to callers; only missing cases do.
type Service struct {
	db        *gorm.DB
	engine    *laws.Engine
	completer Completer
	audit     *Recorder
	log       *zap.SugaredLogger
	timeout   time.Duration
}

// NewService wires the advisor. completer may be nil (unconfigured).
func NewService(db *gorm.DB, engine *laws.Engine, completer Completer, audit *Recorder, log *zap.SugaredLogger, timeout time.Duration) *Service {
	return &Service{db: db, engine: engine, completer: completer, audit: audit, log: log, timeout: timeout}
}

// invoke performs the single completion attempt and audit-logs success.
// The returned bool is false when the dependency is unconfigured or failed,
// i.e. the caller must fall back.
func (s *Service) invoke(ctx context.Context, prompt, actionType string, userID *uuid.UUID) (Completion, bool) {
	if s.completer == nil {
		s.log.Debugw("completion service not configured, using fallback", "action", actionType)
		return Completion{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	out, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.log.Warnw("completion call failed, using fallback", "action", actionType, "error", err)
		return Completion{}, false
	}

	s.audit.Record(userID, actionType, prompt, out.Text, out.TokensUsed, time.Since(start))
	return out, true
}

// stripCodeFences removes surrounding ```json / ``` markers that models wrap
// around JSON payloads.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func (s *Service) loadCase(ctx context.Context, caseID uuid.UUID) (*models.Case, error) {
	var cs models.Case
	if err := s.db.WithContext(ctx).First(&cs, "id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &cs, nil
}

/* ============================== Operations ============================== */

// SuggestSchedule asks the model for a hearing-scheduling hint for the case.
// Any completion failure yields the fixed fallback suggestion.
func (s *Service) SuggestSchedule(ctx context.Context, caseID uuid.UUID) (*ScheduleSuggestion, error) {
	cs, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	prompt := buildSchedulePrompt(*cs)
	out, ok := s.invoke(ctx, prompt, actionScheduleSuggestion, nil)
	if !ok {
		return fallbackSchedule(), nil
	}

	var suggestion ScheduleSuggestion
	if err := json.Unmarshal([]byte(stripCodeFences(out.Text)), &suggestion); err != nil {
		s.log.Warnw("unparseable schedule suggestion, using fallback", "error", err)
		return fallbackSchedule(), nil
	}
	return &suggestion, nil
}

// AnalyzePriority asks the model for a priority assessment and, on success,
// persists the score and the mapped urgency onto the case.
func (s *Service) AnalyzePriority(ctx context.Context, caseID uuid.UUID) (*PriorityAnalysis, error) {
	cs, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	prompt := buildPriorityPrompt(*cs)
	out, ok := s.invoke(ctx, prompt, actionPriorityAnalysis, nil)
	if !ok {
		return fallbackPriority(), nil
	}

	var analysis PriorityAnalysis
	if err := json.Unmarshal([]byte(stripCodeFences(out.Text)), &analysis); err != nil {
		s.log.Warnw("unparseable priority analysis, using fallback", "error", err)
		return fallbackPriority(), nil
	}

	if analysis.PriorityScore != nil {
		err := s.db.WithContext(ctx).Model(cs).Updates(map[string]any{
			"priority_score": *analysis.PriorityScore,
			"urgency":        models.UrgencyFromLevel(analysis.PriorityLevel),
			"updated_at":     time.Now(),
		}).Error
		if err != nil {
			return nil, err
		}
	}
	return &analysis, nil
}

// AnswerChat retrieves relevant laws, asks the model a context-constrained
// question, and returns the reply with its sources. userID, when known, is
// attached to the audit entry.
func (s *Service) AnswerChat(ctx context.Context, message string, userID *uuid.UUID) (*ChatAnswer, error) {
	relevant := s.engine.Retrieve(message)

	sources := make([]LawSource, 0, len(relevant))
	for _, l := range relevant {
		sources = append(sources, LawSource{Act: l.ActName, Section: l.Section, Title: l.Title})
	}

	prompt := buildChatPrompt(message, relevant)
	out, ok := s.invoke(ctx, prompt, actionChatQuery, userID)
	if !ok {
		return &ChatAnswer{Reply: fallbackChatText(), Sources: sources}, nil
	}
	return &ChatAnswer{Reply: out.Text, Sources: sources}, nil
}
