package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehabtrack/rehab-api/internal/handler"
	adminHandler "github.com/rehabtrack/rehab-api/internal/handler/admin"
	assessmentHandler "github.com/rehabtrack/rehab-api/internal/handler/assessment"
	patientHandler "github.com/rehabtrack/rehab-api/internal/handler/patient"
	reportHandler "github.com/rehabtrack/rehab-api/internal/handler/report"
	statsHandler "github.com/rehabtrack/rehab-api/internal/handler/stats"
	workoutHandler "github.com/rehabtrack/rehab-api/internal/handler/workout"
	"github.com/rehabtrack/rehab-api/internal/middleware"
	"github.com/rehabtrack/rehab-api/internal/repository/jsonfile"
	adminService "github.com/rehabtrack/rehab-api/internal/service/admin"
	"github.com/rehabtrack/rehab-api/internal/service/analytics"
	assessmentService "github.com/rehabtrack/rehab-api/internal/service/assessment"
	patientService "github.com/rehabtrack/rehab-api/internal/service/patient"
	reportService "github.com/rehabtrack/rehab-api/internal/service/report"
	workoutService "github.com/rehabtrack/rehab-api/internal/service/workout"
	"github.com/rehabtrack/rehab-api/pkg/document"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, middleware.RegisterValidators())

	store, err := jsonfile.NewStore(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	patientRepo := jsonfile.NewPatientRepository(store)
	assessmentRepo := jsonfile.NewAssessmentRepository(store)
	workoutRepo := jsonfile.NewWorkoutRepository(store)

	r := NewRouter(
		Config{CORS: middleware.DefaultCORSConfig()},
		handler.NewHandler(),
		patientHandler.NewHandler(patientService.NewService(patientRepo)),
		assessmentHandler.NewHandler(assessmentService.NewService(assessmentRepo, patientRepo)),
		workoutHandler.NewHandler(workoutService.NewService(workoutRepo)),
		statsHandler.NewHandler(analytics.NewService(patientRepo, assessmentRepo, workoutRepo)),
		reportHandler.NewHandler(reportService.NewService(patientRepo, assessmentRepo, workoutRepo, nil, document.NewRenderer(), 0)),
		adminHandler.NewHandler(adminService.NewService(patientRepo, assessmentRepo, workoutRepo)),
	)
	r.Setup()
	return r.Engine()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	doJSON(t, engine, http.MethodGet, "/api/health", nil)
	w := doJSON(t, engine, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rehab_api_requests_total")
}

func TestPatientLifecycle(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/patients", gin.H{"name": "  Alex  ", "age": 6})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, "Alex", created["name"])
	assert.NotEmpty(t, created["id"])

	w = doJSON(t, engine, http.MethodGet, "/api/patients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var patients []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patients))
	require.Len(t, patients, 1)
	assert.Equal(t, "Alex", patients[0]["name"])
}

func TestCreatePatientRequiresName(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/patients", gin.H{"age": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAssessment(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/assessments", gin.H{
		"patientId":      "p1",
		"fineMotor_grip": 4,
		"fineMotor_notes": "good pincer grasp",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Assessment saved successfully", body["message"])
	assert.Equal(t, float64(80), body["score"])
	assert.True(t, strings.HasPrefix(body["id"].(string), "ASSESS_"))
}

func TestCreateAssessmentMissingPatient(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/assessments", gin.H{"fineMotor_grip": 4})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(http.StatusBadRequest), body["code"])
	assert.Contains(t, body["message"], "patientId")
	assert.NotEmpty(t, body["trace_id"])
}

func TestBindFailureRendersErrorEnvelope(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(http.StatusBadRequest), body["code"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["trace_id"])
}

func TestCreateWorkoutRejectsUnknownCategory(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/workouts", gin.H{
		"patientId":    "p1",
		"activityName": "juggling",
		"category":     "circus-arts",
		"duration":     10,
		"frequency":    "daily",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWorkoutAcceptsMixedCaseCategory(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/workouts", gin.H{
		"patientId":    "p1",
		"activityName": "bead threading",
		"category":     "Fine-Motor",
		"duration":     15,
		"frequency":    "3x per week",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Workout saved successfully", body["message"])
	assert.True(t, strings.HasPrefix(body["id"].(string), "WORK_"))
}

func TestDashboardStats(t *testing.T) {
	engine := newTestEngine(t)

	doJSON(t, engine, http.MethodPost, "/api/assessments", gin.H{"patientId": "p1", "fineMotor_grip": 4})
	doJSON(t, engine, http.MethodPost, "/api/workouts", gin.H{
		"patientId": "p2", "activityName": "balance beam", "category": "gross-motor",
		"duration": 20, "frequency": "daily",
	})

	w := doJSON(t, engine, http.MethodGet, "/api/stats/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody(t, w)
	assert.Equal(t, float64(2), stats["activePatients"])
	assert.Equal(t, float64(80), stats["averageProgress"])
	assert.Equal(t, float64(1), stats["homeWorkouts"])

	w = doJSON(t, engine, http.MethodGet, "/api/stats/dashboard?patientId=p2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats = decodeBody(t, w)
	assert.Equal(t, float64(1), stats["activePatients"])
	assert.Equal(t, float64(0), stats["averageProgress"])
}

func TestChartEndpointsShape(t *testing.T) {
	engine := newTestEngine(t)

	doJSON(t, engine, http.MethodPost, "/api/workouts", gin.H{
		"patientId": "p1", "activityName": "bead threading", "category": "fine-motor",
		"duration": 10, "frequency": "daily",
	})

	w := doJSON(t, engine, http.MethodGet, "/api/charts/homeworkout/weekly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	series := decodeBody(t, w)
	assert.Len(t, series["labels"], 7)
	assert.Len(t, series["data"], 7)

	w = doJSON(t, engine, http.MethodGet, "/api/charts/homeworkout/distribution", nil)
	require.Equal(t, http.StatusOK, w.Code)
	series = decodeBody(t, w)
	assert.Len(t, series["labels"], 8)

	w = doJSON(t, engine, http.MethodGet, "/api/charts/dashboard/progress?days=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	series = decodeBody(t, w)
	assert.Len(t, series["labels"], 3)

	w = doJSON(t, engine, http.MethodGet, "/api/charts/dashboard/skills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	series = decodeBody(t, w)
	assert.Len(t, series["labels"], 8)
}

func TestSkillPerformanceEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/api/reports/skill-performance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 8)
	assert.Equal(t, "Fine Motor Skills", rows[0]["skill"])
}

func TestGenerateReportJSON(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/reports/generate", gin.H{"reportType": "daily"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["content"], "Insufficient data")
}

func TestGenerateReportPDF(t *testing.T) {
	engine := newTestEngine(t)

	doJSON(t, engine, http.MethodPost, "/api/assessments", gin.H{"patientId": "p1", "fineMotor_grip": 4})

	w := doJSON(t, engine, http.MethodPost, "/api/reports/generate", gin.H{
		"reportType": "daily",
		"format":     "pdf",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=report_daily_all.pdf", w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestGenerateReportPDFViaAcceptHeader(t *testing.T) {
	engine := newTestEngine(t)

	doJSON(t, engine, http.MethodPost, "/api/assessments", gin.H{"patientId": "p1", "fineMotor_grip": 4})

	raw, err := json.Marshal(gin.H{"reportType": "weekly"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/reports/generate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=report_weekly_all.pdf", w.Header().Get("Content-Disposition"))
}

func TestAdminClear(t *testing.T) {
	engine := newTestEngine(t)

	doJSON(t, engine, http.MethodPost, "/api/patients", gin.H{"name": "Alex"})
	doJSON(t, engine, http.MethodPost, "/api/assessments", gin.H{"patientId": "p1", "fineMotor_grip": 4})

	w := doJSON(t, engine, http.MethodPost, "/api/admin/clear?type=assessments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/assessments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = doJSON(t, engine, http.MethodGet, "/api/patients", nil)
	var patients []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patients))
	assert.Len(t, patients, 1)
}

func TestCORSPreflightExposesDownloadHeader(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/patients", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	// Credentialed wildcard config echoes the caller origin back.
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}
