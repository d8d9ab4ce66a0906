package advisor

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/sanitize"
)

const (
	promptSnippetMax   = 200
	responseSnippetMax = 500
)

// Recorder appends audit entries for advisor invocations. Writes are
// dispatched on a goroutine and errors are swallowed: audit logging must be
// structurally incapable of affecting the primary result.
type Recorder struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewRecorder(db *gorm.DB, log *zap.SugaredLogger) *Recorder {
	return &Recorder{db: db, log: log}
}

// Record stores one truncated, PII-redacted audit entry.
func (r *Recorder) Record(userID *uuid.UUID, actionType, prompt, response string, tokens int, latency time.Duration) {
	entry := models.AuditLog{
		UserID:        userID,
		ActionType:    actionType,
		PromptSummary: sanitize.Truncate(sanitize.RedactPII(prompt), promptSnippetMax),
		AIResponse:    sanitize.Truncate(sanitize.RedactPII(response), responseSnippetMax),
		TokensUsed:    tokens,
		LatencyMs:     latency.Milliseconds(),
	}
	go func() {
		if err := r.db.Create(&entry).Error; err != nil {
			r.log.Debugw("audit log write failed", "action", actionType, "error", err)
		}
	}()
}
