package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"activity-signup/app/signup/api/internal/config"
	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/app/signup/model/modeltest"
	"activity-signup/common/middleware"
	"activity-signup/common/response"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/rest/router"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	response.SetupGlobalErrorHandler()
	os.Exit(m.Run())
}

type activityJSON struct {
	Description     *string  `json:"description"`
	Schedule        *string  `json:"schedule"`
	MaxParticipants *int     `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// newTestRouter 按生产路由表组装 router，使用内存数据库
func newTestRouter(t *testing.T, db *gorm.DB) http.Handler {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>Activities</h1>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(staticDir, "assets"), 0o755))

	c := config.Config{StaticDir: staticDir}
	c.Breaker.Name = "signup-test"
	svcCtx := svc.NewServiceContextWithDB(c, db)

	r := router.NewRouter()
	for _, route := range Routes(svcCtx) {
		require.NoError(t, r.Handle(route.Method, route.Path, middleware.TraceIDMiddleware(route.Handler)))
	}
	r.SetNotFoundHandler(NotFoundHandler(c.StaticDir))
	return r
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body["detail"]
}

func listActivities(t *testing.T, h http.Handler) map[string]activityJSON {
	t.Helper()
	rec := do(t, h, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]activityJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListActivities_FreshCatalogue(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"participants":[]`)
	assert.NotContains(t, rec.Body.String(), `"participants":null`)

	activities := listActivities(t, h)
	assert.Len(t, activities, 9)

	capacities := map[string]int{
		"Chess Club": 12, "Programming Class": 20, "Gym Class": 30,
		"Soccer Team": 22, "Basketball Team": 15, "Art Club": 15,
		"Drama Club": 20, "Math Club": 10, "Debate Team": 12,
	}
	for name, capacity := range capacities {
		a, ok := activities[name]
		require.True(t, ok, name)
		require.NotNil(t, a.MaxParticipants)
		assert.Equal(t, capacity, *a.MaxParticipants, name)
		assert.Empty(t, a.Participants, name)
	}
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", *activities["Chess Club"].Schedule)
}

func TestSignup_FirstTime(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=alice%40school.edu")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Signed up alice@school.edu for Chess Club"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderTraceID))

	assert.Equal(t, []string{"alice@school.edu"}, listActivities(t, h)["Chess Club"].Participants)
}

func TestSignup_Duplicate(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=alice%40school.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=alice%40school.edu")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Student is already signed up", detailOf(t, rec))
	assert.Equal(t, []string{"alice@school.edu"}, listActivities(t, h)["Chess Club"].Participants)
}

func TestSignup_UnknownActivity(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodPost, "/activities/Underwater%20Basket%20Weaving/signup?email=bob%40school.edu")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found", detailOf(t, rec))
}

func TestSignup_MissingEmail(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodPost, "/activities/Chess%20Club/signup")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.NotEmpty(t, detailOf(t, rec))
}

func TestSignup_EmptyEmailIsAccepted(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Signed up  for Chess Club"}`, rec.Body.String())
	assert.Contains(t, listActivities(t, h)["Chess Club"].Participants, "")

	rec = do(t, h, http.MethodDelete, "/activities/Chess%20Club/unregister?email=")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, listActivities(t, h)["Chess Club"].Participants, "")
}

func TestUnregister_MissingEmail(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodDelete, "/activities/Chess%20Club/unregister")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, `field "email" is not set`, detailOf(t, rec))
}

func TestUnregister_RoundTrip(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodPost, "/activities/Art%20Club/signup?email=alice%40school.edu")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/activities/Art%20Club/unregister?email=alice%40school.edu")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Unregistered alice@school.edu from Art Club"}`, rec.Body.String())
	assert.Empty(t, listActivities(t, h)["Art Club"].Participants)

	rec = do(t, h, http.MethodDelete, "/activities/Art%20Club/unregister?email=alice%40school.edu")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Student is not signed up for this activity", detailOf(t, rec))
}

func TestUnregister_UnknownMember(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodDelete, "/activities/Chess%20Club/unregister?email=ghost%40school.edu")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Student is not signed up for this activity", detailOf(t, rec))
}

func TestUnregister_UnknownActivity(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodDelete, "/activities/Nope/unregister?email=alice%40school.edu")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found", detailOf(t, rec))
}

func TestRootRedirect(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodGet, "/")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, IndexPath, rec.Header().Get("Location"))
}

func TestStaticFiles(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodGet, "/static/index.html")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>Activities</h1>", rec.Body.String())

	for _, target := range []string{"/static/missing.css", "/static/assets", "/static/../etc/passwd"} {
		rec = do(t, h, http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}

	rec = do(t, h, http.MethodPost, "/static/index.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, modeltest.NewSeededDB(t))

	rec := do(t, h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["database"])
}

func TestStoreUnreachable(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	refused := errors.New("connect: connection refused")
	mock.ExpectBegin().WillReturnError(refused)
	mock.ExpectBegin().WillReturnError(refused)
	mock.ExpectPing().WillReturnError(refused)

	h := newTestRouter(t, db)

	rec := do(t, h, http.MethodPost, "/activities/Chess%20Club/signup?email=alice%40school.edu")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Storage unavailable", detailOf(t, rec))
	assert.NotContains(t, rec.Body.String(), "refused")

	rec = do(t, h, http.MethodGet, "/activities")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Storage unavailable", detailOf(t, rec))

	rec = do(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
