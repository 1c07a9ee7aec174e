package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet-gateway-backend/internal/common/middleware"
	"sheet-gateway-backend/internal/features/records/models"
	"sheet-gateway-backend/internal/features/records/repository/sheet"
	"sheet-gateway-backend/internal/features/records/service"
	"sheet-gateway-backend/internal/platform/lock"
	"sheet-gateway-backend/internal/platform/store"
	"sheet-gateway-backend/internal/platform/tables"
)

const adminToken = "secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(mem *store.MemoryStore) *gin.Engine {
	guard := tables.NewGuard(mem, lock.NewLocalLocker(time.Second))
	repo := sheet.NewRecordRepository(guard, sheet.TableNames{
		Batch:    "Feuille 1",
		Activity: "Feuille 2",
		Devices:  "Feuille 3",
	})
	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.Local)
	h := NewRecordHandler(service.NewRecordService(repo, func() time.Time { return now }))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorResponder(), middleware.Recovery())
	h.RegisterRoutes(r.Group("/api/v1"), middleware.RequireAdmin(adminToken))
	return r
}

func do(r *gin.Engine, method, path, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(middleware.HeaderAdminToken, adminToken)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestWrite(t *testing.T) {
	mem := store.NewMemoryStore()
	r := newTestRouter(mem)

	rr := do(r, http.MethodPost, "/api/v1/write", `{"values": [["alice", "dev-1", 100, "fixed", "s1"], ["bob", "dev-1"]]}`, false)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res models.WriteResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Appended)
	assert.Equal(t, 1, res.UsersCreated)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.DevicesAdded)

	rr = do(r, http.MethodGet, "/api/v1/activity", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	var activity []models.ActivityRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &activity))
	require.Len(t, activity, 1)
	assert.Equal(t, "100", activity[0].Balances)

	rr = do(r, http.MethodGet, "/api/v1/devices", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	var devices []models.DeviceRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &devices))
	assert.Equal(t, []models.DeviceRecord{{Device: "dev-1", Users: []string{"alice", "bob"}}}, devices)
}

func TestWrite_BadBody(t *testing.T) {
	r := newTestRouter(store.NewMemoryStore())

	for _, body := range []string{`{}`, `not json`, `{"values": []}`} {
		rr := do(r, http.MethodPost, "/api/v1/write", body, false)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestRead(t *testing.T) {
	mem := store.NewMemoryStore()
	mem.Seed("Feuille 1", [][]string{{"a", "b"}, {"c"}})
	r := newTestRouter(mem)

	rr := do(r, http.MethodGet, "/api/v1/read", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[["a","b"],["c"]]`, rr.Body.String())

	rr = do(r, http.MethodGet, "/api/v1/read?range=A2", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[["c"]]`, rr.Body.String())

	rr = do(r, http.MethodGet, "/api/v1/read?table=Feuille%209", "", false)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(r, http.MethodGet, "/api/v1/read?range=1A", "", false)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdate(t *testing.T) {
	mem := store.NewMemoryStore()
	mem.Seed("Feuille 1", [][]string{{"a", "b"}})
	r := newTestRouter(mem)
	body := `{"range": "B1", "values": [[true]]}`

	rr := do(r, http.MethodPut, "/api/v1/update", body, false)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(r, http.MethodPut, "/api/v1/update", body, true)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rows, err := mem.GetRange(context.Background(), "Feuille 1", "A:B")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "TRUE"}}, rows)

	rr = do(r, http.MethodPut, "/api/v1/update", `{"values": [["x"]]}`, true)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResetActivity(t *testing.T) {
	mem := store.NewMemoryStore()
	mem.Seed("Feuille 2", [][]string{models.ActivityHeader, {"alice", "Active", "1"}})
	r := newTestRouter(mem)

	rr := do(r, http.MethodDelete, "/api/v1/activity", "", false)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(r, http.MethodDelete, "/api/v1/activity", "", true)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(r, http.MethodGet, "/api/v1/activity", "", false)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
