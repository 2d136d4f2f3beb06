package analyses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/companies"
	"github.com/Shiki0138/ai-subsidy-system-sub004/internal/usage"
)

func newTestRouter(t *testing.T, userID string) (*gin.Engine, *Service, companies.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, comps := newTestDeps(t, fakeLLM{raw: validDraft()})

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(api)
	return r, svc, comps
}

func TestStartAnalysisEndpoint(t *testing.T) {
	r, svc, comps := newTestRouter(t, "user-1")
	company := testCompany(t, comps, "user-1")

	body := `{"companyId":"` + company.ID + `","plan":{"title":"IoT活用によるDX","purpose":"生産性向上"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/monodukuri-2025/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == "" || resp.Status != StatusQueued {
		t.Fatalf("resp = %+v", resp)
	}

	done := waitForDone(t, svc, "user-1", resp.ID)
	if done.Status != StatusCompleted {
		t.Fatalf("status = %q failure=%+v", done.Status, done.Failure)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+resp.ID, nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)
	if getW.Code != http.StatusOK {
		t.Fatalf("get status = %d body=%s", getW.Code, getW.Body.String())
	}
	if !strings.Contains(getW.Body.String(), `"matchScore"`) {
		t.Fatalf("expected result payload, got %s", getW.Body.String())
	}
}

func TestStartAnalysisUnknownProgram(t *testing.T) {
	r, _, comps := newTestRouter(t, "user-1")
	company := testCompany(t, comps, "user-1")

	body := `{"companyId":"` + company.ID + `","plan":{"title":"テスト"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/nope/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestAnalysesRequireIdentity(t *testing.T) {
	r, _, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestQuotaExhaustedEndpoint(t *testing.T) {
	r, svc, comps := newTestRouter(t, "guest:abc")
	company := testCompany(t, comps, "guest:abc")

	// Exhaust the guest allowance directly.
	for i := 0; i < usage.PlanLimit(usage.PlanGuest); i++ {
		if _, err := svc.Usage.Consume(context.Background(), "guest:abc", usage.PlanGuest); err != nil {
			t.Fatalf("consume %d: %v", i, err)
		}
	}

	body := `{"companyId":"` + company.ID + `","plan":{"title":"テスト"}}`
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/programs/monodukuri-2025/analyze", strings.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httpReq)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}
