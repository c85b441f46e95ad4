package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parking_app/internal/repository/jsonfile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, db string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := jsonfile.NewFromJSON([]byte(db))
	if err != nil {
		t.Fatal(err)
	}
	return SetupRouter(store, zap.NewNop())
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCollectionRoutes(t *testing.T) {
	router := newTestRouter(t, `{"bookings":[{"id":"1","status":"upcoming"}]}`)

	rec := serve(router, http.MethodGet, "/bookings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /bookings = %d", rec.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("GET /bookings body = %s", rec.Body.String())
	}

	rec = serve(router, http.MethodPost, "/bookings", `{"parkingName":"Central"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /bookings = %d %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	json.Unmarshal(rec.Body.Bytes(), &created)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("POST response has no id: %v", created)
	}

	rec = serve(router, http.MethodPut, "/bookings/"+id, `{"parkingName":"Harbor","status":"active"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Harbor") {
		t.Errorf("PUT = %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(router, http.MethodPatch, "/bookings/"+id, `{"status":"completed"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"completed"`) {
		t.Errorf("PATCH = %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(router, http.MethodDelete, "/bookings/"+id, "")
	if rec.Code != http.StatusOK {
		t.Errorf("DELETE = %d", rec.Code)
	}
	rec = serve(router, http.MethodGet, "/bookings/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET deleted = %d, want 404", rec.Code)
	}
}

func TestUnknownCollectionIs404(t *testing.T) {
	router := newTestRouter(t, `{"users":[]}`)
	if rec := serve(router, http.MethodGet, "/tickets", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET /tickets = %d, want 404", rec.Code)
	}
}

func TestDuplicateCreateIs409(t *testing.T) {
	router := newTestRouter(t, `{"users":[{"id":"1"}]}`)
	if rec := serve(router, http.MethodPost, "/users", `{"id":"1"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate POST = %d, want 409", rec.Code)
	}
}

func TestMalformedBodyIs400(t *testing.T) {
	router := newTestRouter(t, `{"users":[]}`)
	if rec := serve(router, http.MethodPost, "/users", `{not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed POST = %d, want 400", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, `{"users":[]}`)
	rec := serve(router, http.MethodOptions, "/users", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("OPTIONS = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing CORS header: %v", rec.Header())
	}
}

func TestDumpDatabase(t *testing.T) {
	router := newTestRouter(t, `{"users":[{"id":"1"}],"parking":[]}`)
	rec := serve(router, http.MethodGet, "/db", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /db = %d", rec.Code)
	}
	var db map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &db); err != nil {
		t.Fatal(err)
	}
	if len(db["users"]) != 1 {
		t.Errorf("dump = %v", db)
	}
}
