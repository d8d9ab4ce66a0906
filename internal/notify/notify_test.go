package notify

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/database"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init("", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func fixtureCase(t *testing.T, db *gorm.DB, lawyerID *uuid.UUID) models.Case {
	t.Helper()
	cs := models.Case{
		CaseNumber:       "CASE/2026/" + uuid.NewString()[:8],
		Title:            "State vs Test",
		FilingDate:       "2026-01-15",
		CaseType:         models.CaseTypeCriminal,
		Status:           models.CasePending,
		AssignedLawyerID: lawyerID,
	}
	require.NoError(t, db.Create(&cs).Error)
	return cs
}

func TestHearingBookedNotifiesLawyer(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zap.NewNop().Sugar())

	lawyerID := uuid.New()
	cs := fixtureCase(t, db, &lawyerID)
	h := models.Hearing{
		CaseID:      cs.ID,
		HearingDate: "2026-09-10",
		HearingTime: "11:00",
		CourtroomID: "CR-2",
	}

	svc.HearingBooked(cs, h)

	var got models.Notification
	require.NoError(t, db.First(&got, "user_id = ?", lawyerID).Error)
	assert.Equal(t, models.NotifyStatusChange, got.Type)
	assert.Contains(t, got.Message, cs.CaseNumber)
	assert.Contains(t, got.Message, "2026-09-10")
	assert.Contains(t, got.Message, "CR-2")
	assert.False(t, got.IsRead)
}

func TestHearingAdjournedNotifiesLawyer(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zap.NewNop().Sugar())

	lawyerID := uuid.New()
	cs := fixtureCase(t, db, &lawyerID)
	h := models.Hearing{CaseID: cs.ID, HearingDate: "2026-09-10"}

	svc.HearingAdjourned(cs, h, "Witness unavailable")

	var got models.Notification
	require.NoError(t, db.First(&got, "user_id = ?", lawyerID).Error)
	assert.Equal(t, models.NotifyReschedule, got.Type)
	assert.Contains(t, got.Message, "Witness unavailable")
}

func TestNoLawyerNoNotification(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zap.NewNop().Sugar())

	cs := fixtureCase(t, db, nil)
	svc.HearingBooked(cs, models.Hearing{CaseID: cs.ID, HearingDate: "2026-09-10"})
	svc.HearingAdjourned(cs, models.Hearing{CaseID: cs.ID}, "reason")

	var n int64
	db.Model(&models.Notification{}).Count(&n)
	assert.EqualValues(t, 0, n)
}

func newNotifApp(db *gorm.DB, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID.String())
		return c.Next()
	})
	h := NewHandler(db)
	app.Get("/api/notifications", h.List)
	app.Post("/api/notifications/:id/read", h.MarkRead)
	return app
}

func TestListAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zap.NewNop().Sugar())

	lawyerID := uuid.New()
	cs := fixtureCase(t, db, &lawyerID)
	svc.HearingBooked(cs, models.Hearing{CaseID: cs.ID, HearingDate: "2026-09-10"})
	svc.HearingAdjourned(cs, models.Hearing{CaseID: cs.ID, HearingDate: "2026-09-10"}, "Strike")

	app := newNotifApp(db, lawyerID)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/notifications", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int64                 `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Notifications, 2)
	assert.EqualValues(t, 2, out.UnreadCount)

	target := out.Notifications[0].ID
	resp, err = app.Test(httptest.NewRequest("POST", "/api/notifications/"+target.String()+"/read", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/notifications", nil), -1)
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.EqualValues(t, 1, out.UnreadCount)
	// Unread entries sort ahead of read ones.
	assert.False(t, out.Notifications[0].IsRead)
	assert.True(t, out.Notifications[1].IsRead)

	// Another user's notification is not reachable.
	other := newNotifApp(db, uuid.New())
	resp, err = other.Test(httptest.NewRequest("POST", "/api/notifications/"+target.String()+"/read", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
