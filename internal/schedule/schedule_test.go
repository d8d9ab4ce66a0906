package schedule

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/database"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

type fakeNotifier struct {
	booked    []models.Hearing
	adjourned []string
}

func (f *fakeNotifier) HearingBooked(cs models.Case, h models.Hearing) {
	f.booked = append(f.booked, h)
}

func (f *fakeNotifier) HearingAdjourned(cs models.Case, h models.Hearing, reason string) {
	f.adjourned = append(f.adjourned, reason)
}

func newTestService(t *testing.T) (*Service, *fakeNotifier) {
	t.Helper()

	db, err := database.Init("", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	fn := &fakeNotifier{}
	return NewService(db, zap.NewNop().Sugar(), fn), fn
}

func createUser(t *testing.T, svc *Service, role models.Role) *models.User {
	t.Helper()
	u := models.User{
		Email:        fmt.Sprintf("%s-%s@court.test", role, uuid.NewString()[:8]),
		PasswordHash: "x",
		FullName:     "Test " + string(role),
		Role:         role,
	}
	require.NoError(t, svc.db.Create(&u).Error)
	return &u
}

func createCase(t *testing.T, svc *Service) *models.Case {
	t.Helper()
	cs := models.Case{
		CaseNumber: "CASE/2026/" + uuid.NewString()[:8],
		Title:      "State vs Test",
		FilingDate: "2026-01-15",
		CaseType:   models.CaseTypeCriminal,
		Status:     models.CasePending,
	}
	require.NoError(t, svc.db.Create(&cs).Error)
	return &cs
}

func TestBookHearingAppliesDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	cs := createCase(t, svc)

	h, err := svc.BookHearing(context.Background(), BookingInput{
		CaseID: cs.ID,
		Date:   "2026-09-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "10:00", h.HearingTime)
	assert.Equal(t, "CR-1", h.CourtroomID)
	assert.Equal(t, 30, h.DurationMinutes)
	assert.Equal(t, models.HearingScheduled, h.Status)

	var reloaded models.Case
	require.NoError(t, svc.db.First(&reloaded, "id = ?", cs.ID).Error)
	assert.Equal(t, models.CaseScheduled, reloaded.Status)
}

func TestBookHearingCaseNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.BookHearing(context.Background(), BookingInput{
		CaseID: uuid.New(),
		Date:   "2026-09-10",
	})
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestBookHearingJudgeConflict(t *testing.T) {
	svc, _ := newTestService(t)
	judge := createUser(t, svc, models.RoleJudge)
	first := createCase(t, svc)
	second := createCase(t, svc)

	_, err := svc.BookHearing(context.Background(), BookingInput{
		CaseID: first.ID, Date: "2026-09-10", Time: "11:00",
		CourtroomID: "CR-1", JudgeID: &judge.ID,
	})
	require.NoError(t, err)

	// Same judge, same slot, different room.
	_, err = svc.BookHearing(context.Background(), BookingInput{
		CaseID: second.ID, Date: "2026-09-10", Time: "11:00",
		CourtroomID: "CR-2", JudgeID: &judge.ID,
	})
	assert.ErrorIs(t, err, ErrJudgeConflict)

	// Same judge, different time is fine.
	_, err = svc.BookHearing(context.Background(), BookingInput{
		CaseID: second.ID, Date: "2026-09-10", Time: "14:00",
		CourtroomID: "CR-2", JudgeID: &judge.ID,
	})
	assert.NoError(t, err)
}

func TestBookHearingCourtroomConflict(t *testing.T) {
	svc, _ := newTestService(t)
	j1 := createUser(t, svc, models.RoleJudge)
	j2 := createUser(t, svc, models.RoleJudge)
	first := createCase(t, svc)
	second := createCase(t, svc)

	_, err := svc.BookHearing(context.Background(), BookingInput{
		CaseID: first.ID, Date: "2026-09-10", Time: "11:00",
		CourtroomID: "CR-1", JudgeID: &j1.ID,
	})
	require.NoError(t, err)

	// Different judge, same room and slot.
	_, err = svc.BookHearing(context.Background(), BookingInput{
		CaseID: second.ID, Date: "2026-09-10", Time: "11:00",
		CourtroomID: "CR-1", JudgeID: &j2.ID,
	})
	assert.ErrorIs(t, err, ErrCourtroomConflict)

	// No rows were written by the failed attempt.
	var n int64
	svc.db.Model(&models.Hearing{}).Count(&n)
	assert.EqualValues(t, 1, n)
	var reloaded models.Case
	require.NoError(t, svc.db.First(&reloaded, "id = ?", second.ID).Error)
	assert.Equal(t, models.CasePending, reloaded.Status)
}

func TestAdjournHearing(t *testing.T) {
	svc, _ := newTestService(t)
	cs := createCase(t, svc)

	h, err := svc.BookHearing(context.Background(), BookingInput{
		CaseID: cs.ID, Date: "2026-09-10", Time: "11:00",
	})
	require.NoError(t, err)

	res, err := svc.AdjournHearing(context.Background(), h.ID, "Witness unavailable")
	require.NoError(t, err)
	assert.Equal(t, h.ID, res.HearingID)
	assert.Equal(t, cs.ID, res.CaseID)
	assert.Equal(t, 1, res.AdjournmentCount)

	var hearing models.Hearing
	require.NoError(t, svc.db.First(&hearing, "id = ?", h.ID).Error)
	assert.Equal(t, models.HearingAdjourned, hearing.Status)
	require.NotNil(t, hearing.AdjournmentReason)
	assert.Equal(t, "Witness unavailable", *hearing.AdjournmentReason)

	var reloaded models.Case
	require.NoError(t, svc.db.First(&reloaded, "id = ?", cs.ID).Error)
	assert.Equal(t, models.CaseAdjourned, reloaded.Status)
	assert.Equal(t, 1, reloaded.AdjournmentCount)
	require.NotNil(t, reloaded.LastAdjournmentReason)
	assert.Equal(t, "Witness unavailable", *reloaded.LastAdjournmentReason)
}

func TestAdjournFreesSlot(t *testing.T) {
	svc, _ := newTestService(t)
	first := createCase(t, svc)
	second := createCase(t, svc)

	h, err := svc.BookHearing(context.Background(), BookingInput{
		CaseID: first.ID, Date: "2026-09-10", Time: "11:00", CourtroomID: "CR-1",
	})
	require.NoError(t, err)

	_, err = svc.BookHearing(context.Background(), BookingInput{
		CaseID: second.ID, Date: "2026-09-10", Time: "11:00", CourtroomID: "CR-1",
	})
	require.ErrorIs(t, err, ErrCourtroomConflict)

	_, err = svc.AdjournHearing(context.Background(), h.ID, "Judge on leave")
	require.NoError(t, err)

	// Adjourned hearings no longer block the slot.
	_, err = svc.BookHearing(context.Background(), BookingInput{
		CaseID: second.ID, Date: "2026-09-10", Time: "11:00", CourtroomID: "CR-1",
	})
	assert.NoError(t, err)

	// Re-booking the adjourned case takes it back to SCHEDULED.
	_, err = svc.BookHearing(context.Background(), BookingInput{
		CaseID: first.ID, Date: "2026-09-17", Time: "11:00", CourtroomID: "CR-1",
	})
	require.NoError(t, err)
	var reloaded models.Case
	require.NoError(t, svc.db.First(&reloaded, "id = ?", first.ID).Error)
	assert.Equal(t, models.CaseScheduled, reloaded.Status)
	assert.Equal(t, 1, reloaded.AdjournmentCount)
}

func TestScheduledSlotUniqueIndexes(t *testing.T) {
	svc, _ := newTestService(t)
	judge := createUser(t, svc, models.RoleJudge)
	cs := createCase(t, svc)

	scheduled := func(room string, judgeID *uuid.UUID) models.Hearing {
		return models.Hearing{
			CaseID:      cs.ID,
			HearingDate: "2026-09-10",
			HearingTime: "11:00",
			CourtroomID: room,
			JudgeID:     judgeID,
			Status:      models.HearingScheduled,
		}
	}

	// Same courtroom slot: the unique index rejects the second row even when
	// inserted directly, bypassing the scheduler's checks.
	first := scheduled("CR-1", nil)
	require.NoError(t, svc.db.Create(&first).Error)
	dup := scheduled("CR-1", nil)
	err := svc.db.Create(&dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Same judge slot in a different courtroom.
	withJudge := scheduled("CR-2", &judge.ID)
	require.NoError(t, svc.db.Create(&withJudge).Error)
	judgeDup := scheduled("CR-3", &judge.ID)
	err = svc.db.Create(&judgeDup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Judge-less rows never collide on the judge index.
	free := scheduled("CR-4", nil)
	assert.NoError(t, svc.db.Create(&free).Error)

	// An adjourned hearing leaves the partial index, so the slot reopens.
	_, err = svc.AdjournHearing(context.Background(), first.ID, "Bench reshuffle")
	require.NoError(t, err)
	reopened := scheduled("CR-1", nil)
	assert.NoError(t, svc.db.Create(&reopened).Error)
}

func TestAdjournValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AdjournHearing(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrEmptyReason)

	_, err = svc.AdjournHearing(context.Background(), uuid.New(), "real reason")
	assert.ErrorIs(t, err, ErrHearingNotFound)
}

func TestNotifierReceivesEvents(t *testing.T) {
	svc, fn := newTestService(t)
	cs := createCase(t, svc)

	h, err := svc.BookHearing(context.Background(), BookingInput{
		CaseID: cs.ID, Date: "2026-09-10",
	})
	require.NoError(t, err)
	require.Len(t, fn.booked, 1)
	assert.Equal(t, h.ID, fn.booked[0].ID)

	_, err = svc.AdjournHearing(context.Background(), h.ID, "Counsel engaged elsewhere")
	require.NoError(t, err)
	require.Len(t, fn.adjourned, 1)
	assert.Equal(t, "Counsel engaged elsewhere", fn.adjourned[0])

	// A failed booking must not notify.
	other := createCase(t, svc)
	_, err = svc.BookHearing(context.Background(), BookingInput{
		CaseID: other.ID, Date: "2026-09-10",
	})
	require.NoError(t, err) // slot freed by the adjournment
	_, err = svc.BookHearing(context.Background(), BookingInput{
		CaseID: other.ID, Date: "2026-09-10",
	})
	require.ErrorIs(t, err, ErrCourtroomConflict)
	assert.Len(t, fn.booked, 2)
}

func TestListHearingsOrderAndFilter(t *testing.T) {
	svc, _ := newTestService(t)
	cs := createCase(t, svc)

	for _, slot := range []struct{ date, time, room string }{
		{"2026-09-12", "14:00", "CR-1"},
		{"2026-09-10", "11:00", "CR-2"},
		{"2026-09-10", "09:00", "CR-3"},
	} {
		_, err := svc.BookHearing(context.Background(), BookingInput{
			CaseID: cs.ID, Date: slot.date, Time: slot.time, CourtroomID: slot.room,
		})
		require.NoError(t, err)
	}

	rows, err := svc.ListHearings(context.Background(), HearingFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "09:00", rows[0].HearingTime)
	assert.Equal(t, "11:00", rows[1].HearingTime)
	assert.Equal(t, "2026-09-12", rows[2].HearingDate)
	assert.Equal(t, "State vs Test", rows[0].CaseTitle)

	rows, err = svc.ListHearings(context.Background(), HearingFilter{Date: "2026-09-10"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Adjourned hearings fall out of the default (SCHEDULED) view.
	_, err = svc.AdjournHearing(context.Background(), rows[0].Hearing.ID, "Bench reshuffle")
	require.NoError(t, err)
	remaining, err := svc.ListHearings(context.Background(), HearingFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	adjourned, err := svc.ListHearings(context.Background(), HearingFilter{Status: string(models.HearingAdjourned)})
	require.NoError(t, err)
	assert.Len(t, adjourned, 1)
}

func TestJudgeAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	judge := createUser(t, svc, models.RoleJudge)
	clerk := createUser(t, svc, models.RoleClerk)
	cs := createCase(t, svc)

	_, err := svc.BookHearing(context.Background(), BookingInput{
		CaseID: cs.ID, Date: "2030-01-05", Time: "11:00", JudgeID: &judge.ID,
	})
	require.NoError(t, err)

	out, err := svc.JudgeAvailability(context.Background(), judge.ID)
	require.NoError(t, err)
	require.NotNil(t, out.Judge)
	assert.Equal(t, judge.ID, out.Judge.ID)
	require.Len(t, out.ScheduledHearings, 1)
	assert.Equal(t, "2030-01-05", out.ScheduledHearings[0].HearingDate)

	// A non-judge ID resolves to an empty schedule with no judge attached.
	out, err = svc.JudgeAvailability(context.Background(), clerk.ID)
	require.NoError(t, err)
	assert.Nil(t, out.Judge)
	assert.Empty(t, out.ScheduledHearings)
}

func TestJudgeAvailabilityPropagatesLookupError(t *testing.T) {
	svc, _ := newTestService(t)

	// A broken judge lookup must surface, not masquerade as judge: null.
	require.NoError(t, svc.db.Exec("DROP TABLE users").Error)
	_, err := svc.JudgeAvailability(context.Background(), uuid.New())
	assert.Error(t, err)
}
