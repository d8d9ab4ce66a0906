package cases

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Sandeep-khatri01/court-scheduling-system/internal/advisor"
	"github.com/Sandeep-khatri01/court-scheduling-system/internal/auth"
	"github.com/Sandeep-khatri01/court-scheduling-system/internal/laws"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/database"
	"github.com/Sandeep-khatri01/court-scheduling-system/pkg/models"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	os.Setenv("JWT_SECRET", "test-secret")

	db, err := database.Init("", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	engine, err := laws.LoadEngine(db)
	require.NoError(t, err)

	log := zap.NewNop().Sugar()
	adv := advisor.NewService(db, engine, nil, advisor.NewRecorder(db, log), log, time.Second)
	h := NewHandler(db, adv, gocache.New(time.Minute, time.Minute))

	app := fiber.New(fiber.Config{ErrorHandler: auth.ErrorHandler})
	api := app.Group("/api")
	api.Post("/cases", auth.RequireAuth(), auth.RequireRole(models.RoleAdmin, models.RoleClerk), h.Create)
	api.Get("/cases", auth.RequireAuth(), h.List)
	api.Get("/cases/stats", auth.RequireAuth(), h.Stats)
	api.Get("/cases/:id", auth.RequireAuth(), h.Get)
	api.Post("/cases/:id/analyze-priority", auth.RequireAuth(), h.AnalyzePriority)
	return app, db
}

func bearer(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := auth.IssueToken(uuid.NewString(), string(role))
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestCreateCase(t *testing.T) {
	app, _ := newTestApp(t)
	token := bearer(t, models.RoleClerk)

	resp, raw := doJSON(t, app, "POST", "/api/cases", token, fiber.Map{
		"title":     "State vs Sharma",
		"case_type": "Criminal",
		"urgency":   "High",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var got models.Case
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "State vs Sharma", got.Title)
	assert.Equal(t, models.CasePending, got.Status)
	assert.Equal(t, models.UrgencyHigh, got.Urgency)
	assert.Regexp(t, `^CASE/\d{4}/\d{6}$`, got.CaseNumber)
	assert.Equal(t, time.Now().Format("2006-01-02"), got.FilingDate)
}

func TestCreateCaseAuthz(t *testing.T) {
	app, _ := newTestApp(t)

	body := fiber.Map{"title": "x", "case_type": "Civil"}

	resp, _ := doJSON(t, app, "POST", "/api/cases", "", body)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/cases", bearer(t, models.RoleCitizen), body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCreateCaseRejectsUnknownType(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doJSON(t, app, "POST", "/api/cases", bearer(t, models.RoleAdmin), fiber.Map{
		"title":     "State vs Sharma",
		"case_type": "Maritime",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out models.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Contains(t, out.Errors, "case_type")
}

func TestListCasesOrdering(t *testing.T) {
	app, db := newTestApp(t)
	token := bearer(t, models.RoleClerk)

	for i, spec := range []struct {
		score  int
		filing string
	}{
		{20, "2026-03-01"},
		{90, "2026-05-01"},
		{90, "2026-01-01"},
	} {
		cs := models.Case{
			CaseNumber:    "CASE/2026/" + uuid.NewString()[:8],
			Title:         "Case " + string(rune('A'+i)),
			FilingDate:    spec.filing,
			CaseType:      models.CaseTypeCivil,
			Status:        models.CasePending,
			PriorityScore: spec.score,
		}
		require.NoError(t, db.Create(&cs).Error)
	}

	resp, raw := doJSON(t, app, "GET", "/api/cases", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Cases []CaseListItem `json:"cases"`
		Total int64          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Cases, 3)
	assert.EqualValues(t, 3, out.Total)

	// Highest priority first; equal scores ordered by oldest filing.
	assert.Equal(t, "2026-01-01", out.Cases[0].FilingDate)
	assert.Equal(t, "2026-05-01", out.Cases[1].FilingDate)
	assert.Equal(t, 20, out.Cases[2].PriorityScore)
}

func TestGetCaseHearingsIncludeJudgeName(t *testing.T) {
	app, db := newTestApp(t)
	token := bearer(t, models.RoleClerk)

	judge := models.User{
		Email:        "judge.iyer@court.gov.in",
		PasswordHash: "x",
		FullName:     "Hon. Justice S. Iyer",
		Role:         models.RoleJudge,
	}
	require.NoError(t, db.Create(&judge).Error)

	cs := models.Case{
		CaseNumber:       "CASE/2026/" + uuid.NewString()[:8],
		Title:            "State vs Test",
		FilingDate:       "2026-01-15",
		CaseType:         models.CaseTypeCriminal,
		Status:           models.CaseScheduled,
		PresidingJudgeID: &judge.ID,
	}
	require.NoError(t, db.Create(&cs).Error)

	for _, date := range []string{"2026-09-10", "2026-10-01"} {
		h := models.Hearing{
			CaseID:      cs.ID,
			HearingDate: date,
			HearingTime: "11:00",
			CourtroomID: "CR-1",
			JudgeID:     &judge.ID,
			Status:      models.HearingScheduled,
		}
		require.NoError(t, db.Create(&h).Error)
	}

	resp, raw := doJSON(t, app, "GET", "/api/cases/"+cs.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		JudgeName string `json:"judge_name"`
		Hearings  []struct {
			HearingDate string `json:"hearing_date"`
			JudgeName   string `json:"judge_name"`
		} `json:"hearings"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Hon. Justice S. Iyer", out.JudgeName)
	require.Len(t, out.Hearings, 2)
	// Latest first, each carrying its own judge name.
	assert.Equal(t, "2026-10-01", out.Hearings[0].HearingDate)
	for _, h := range out.Hearings {
		assert.Equal(t, "Hon. Justice S. Iyer", h.JudgeName)
	}
}

func TestGetCaseNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/cases/"+uuid.NewString(), bearer(t, models.RoleClerk), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStatsInvalidatedByCreate(t *testing.T) {
	app, _ := newTestApp(t)
	token := bearer(t, models.RoleClerk)

	_, raw := doJSON(t, app, "GET", "/api/cases/stats", token, nil)
	var before struct {
		TotalCases int64 `json:"totalCases"`
	}
	require.NoError(t, json.Unmarshal(raw, &before))
	assert.EqualValues(t, 0, before.TotalCases)

	resp, _ := doJSON(t, app, "POST", "/api/cases", token, fiber.Map{
		"title": "New matter", "case_type": "Civil",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	_, raw = doJSON(t, app, "GET", "/api/cases/stats", token, nil)
	var after struct {
		TotalCases int64 `json:"totalCases"`
	}
	require.NoError(t, json.Unmarshal(raw, &after))
	assert.EqualValues(t, 1, after.TotalCases)
}

func TestAnalyzePriorityFallback(t *testing.T) {
	app, db := newTestApp(t)
	token := bearer(t, models.RoleClerk)

	cs := models.Case{
		CaseNumber: "CASE/2026/" + uuid.NewString()[:8],
		Title:      "State vs Test",
		FilingDate: "2026-01-15",
		CaseType:   models.CaseTypeCriminal,
		Status:     models.CasePending,
	}
	require.NoError(t, db.Create(&cs).Error)

	resp, raw := doJSON(t, app, "POST", "/api/cases/"+cs.ID.String()+"/analyze-priority", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out advisor.PriorityAnalysis
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotNil(t, out.PriorityScore)
	assert.Equal(t, 50, *out.PriorityScore)
	assert.Equal(t, "Medium", out.PriorityLevel)

	resp, _ = doJSON(t, app, "POST", "/api/cases/"+uuid.NewString()+"/analyze-priority", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
