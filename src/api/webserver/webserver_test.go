package webserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/slonskitech/slownik/src/api/config"
	"github.com/slonskitech/slownik/src/api/internal/testutil"
	"github.com/slonskitech/slownik/src/api/types"
	"gorm.io/gorm"
)

func testConfig() config.Config {
	return config.Config{
		AdminEmail:    "admin@slownik.sl",
		AdminPassword: "tajne-haslo",
		SessionSecret: "test-secret",
		CORSOrigins:   []string{"http://localhost:3000"},
		SubmitRate:    10,
		SubmitWindow:  60,
	}
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.OpenTestDB(t)
	return New(testConfig(), db, nil), db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return out
}

func login(t *testing.T, router *gin.Engine) []*http.Cookie {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/admin/login", map[string]string{
		"email":    "admin@slownik.sl",
		"password": "tajne-haslo",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}
	return cookies
}

func TestAdminRoutesRequireSession(t *testing.T) {
	router, _ := newTestServer(t)

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/v1/admin/submissions"},
		{http.MethodPost, "/v1/admin/categories"},
		{http.MethodDelete, "/v1/admin/parts-of-speech/1"},
		{http.MethodPatch, "/v1/admin/entries/1"},
	} {
		w := doJSON(t, router, probe.method, probe.path, nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", probe.method, probe.path, w.Code)
		}
		if body := decode(t, w); body["error"] != "Unauthorized" {
			t.Errorf("%s %s: unexpected body %v", probe.method, probe.path, body)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestServer(t)
	w := doJSON(t, router, http.MethodPost, "/v1/admin/login", map[string]string{
		"email":    "admin@slownik.sl",
		"password": "zle-haslo",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/v1/admin/session", nil, nil)
	if body := decode(t, w); body["authenticated"] != false {
		t.Fatalf("expected unauthenticated probe, got %v", body)
	}

	cookies := login(t, router)

	w = doJSON(t, router, http.MethodGet, "/v1/admin/session", nil, cookies)
	if body := decode(t, w); body["authenticated"] != true {
		t.Fatalf("expected authenticated probe, got %v", body)
	}

	// A forged cookie is rejected.
	forged := []*http.Cookie{{Name: "slownik_admin", Value: "deadbeef"}}
	w = doJSON(t, router, http.MethodGet, "/v1/admin/submissions", nil, forged)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged cookie, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/v1/admin/logout", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", w.Code)
	}
}

func TestSubmitApproveFetchFlow(t *testing.T) {
	router, db := newTestServer(t)

	cat := types.Category{Name: "Górnictwo", Slug: "gornictwo", Type: types.CategoryTraditional}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	submission := map[string]any{
		"sourceWord": "fajront",
		"targetWord": "koniec pracy",
		"categoryId": cat.ID,
		"exampleSentences": []map[string]string{
			{"sourceText": "Już fajront", "translatedText": "Już koniec pracy"},
		},
	}

	w := doJSON(t, router, http.MethodPost, "/v1/submissions", submission, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}
	subID := decode(t, w)["id"].(float64)

	// Duplicate pending proposal is refused.
	w = doJSON(t, router, http.MethodPost, "/v1/submissions", submission, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate pending, got %d", w.Code)
	}

	cookies := login(t, router)

	w = doJSON(t, router, http.MethodGet, "/v1/admin/submissions?status=PENDING", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}

	review := map[string]string{"action": "approve", "adminId": "admin-1", "reviewNotes": "git"}
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/v1/admin/submissions/%.0f", subID), review, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("approve failed: %d %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["status"] != "APPROVED" || body["entryId"] == nil {
		t.Fatalf("unexpected review response: %v", body)
	}

	// Second review attempt conflicts.
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/v1/admin/submissions/%.0f", subID), review, cookies)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on double review, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/v1/dictionary/fajront", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("fetch by slug failed: %d %s", w.Code, w.Body.String())
	}
	entry := decode(t, w)
	if entry["status"] != "APPROVED" {
		t.Errorf("expected APPROVED entry, got %v", entry["status"])
	}
	sentences, ok := entry["exampleSentences"].([]any)
	if !ok || len(sentences) != 1 {
		t.Fatalf("expected one example sentence, got %v", entry["exampleSentences"])
	}
}

func TestSubmitValidationAndSearch(t *testing.T) {
	router, db := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/v1/submissions", map[string]any{
		"sourceWord": "fajront",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}

	cat := types.Category{Name: "Górnictwo", Slug: "gornictwo"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	slugVal := "szola"
	if err := db.Create(&types.DictionaryEntry{
		SourceWord: "Szola",
		TargetWord: "winda szybowa",
		CategoryID: cat.ID,
		Status:     types.EntryApproved,
		Slug:       &slugVal,
	}).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	w = doJSON(t, router, http.MethodGet, "/v1/search?q=szola", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search failed: %d", w.Code)
	}
	if body := decode(t, w); body["total"].(float64) != 1 {
		t.Errorf("expected one hit, got %v", body)
	}

	w = doJSON(t, router, http.MethodGet, "/v1/dictionary/index", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("index failed: %d", w.Code)
	}
	if body := decode(t, w); body["letters"].([]any)[0] != "S" {
		t.Errorf("expected letter index, got %v", body["letters"])
	}

	// Stats endpoint stays open.
	w = doJSON(t, router, http.MethodGet, "/v1/admin/stats", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats failed: %d", w.Code)
	}
}
