// README: Integration tests for the session HTTP surface.
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	voyagehttp "voyage/internal/http"
	"voyage/internal/logger"
	"voyage/internal/modules/conversation"
	"voyage/internal/planner"
)

const itineraryJSON = `{
	"action": "itinerary",
	"message": "Here is your plan.",
	"itinerary": {"days": [
		{"day": 1, "blocks": [{"type": "morning", "pois": [{"poiId": "p1", "name": "Amber Fort"}]}]}
	]}
}`

// buildTestRouter wires the full router against a stubbed planner backend.
func buildTestRouter(t *testing.T, backend http.Handler) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	gw := planner.New(srv.URL, 5*time.Second, logger.Nop())
	svc := conversation.NewService(conversation.NewStore(), gw, nil, nil, nil, logger.Nop())
	return voyagehttp.NewRouter(svc, nil, []string{"*"}, logger.Nop())
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", w.Code, w.Body.String())
	}
	var st struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil || st.ID == "" {
		t.Fatalf("create session body: %s", w.Body.String())
	}
	return st.ID
}

func TestSessionLifecycle(t *testing.T) {
	r := buildTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(itineraryJSON))
	}))
	id := createSession(t, r)

	w := doRequest(r, http.MethodGet, "/api/sessions/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get session: %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "Plan a trip to Jaipur"})
	if w.Code != http.StatusOK {
		t.Fatalf("post message: %d %s", w.Code, w.Body.String())
	}
	var st struct {
		Messages  []map[string]any `json:"messages"`
		Itinerary map[string]any   `json:"itinerary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Itinerary == nil || len(st.Messages) != 3 { // greeting, user, assistant
		t.Errorf("messages = %d, itinerary = %v", len(st.Messages), st.Itinerary)
	}
}

func TestPostMessage_Validation(t *testing.T) {
	r := buildTestRouter(t, http.NotFoundHandler())
	id := createSession(t, r)

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"unknown session", "/api/sessions/nope/messages", map[string]string{"text": "hi"}, http.StatusNotFound},
		{"blank text", "/api/sessions/" + id + "/messages", map[string]string{"text": "  "}, http.StatusBadRequest},
		{"invalid json", "/api/sessions/" + id + "/messages", "not json", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doRequest(r, http.MethodPost, tt.path, tt.body); w.Code != tt.want {
				t.Errorf("code = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestItineraryEndpoints(t *testing.T) {
	r := buildTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(itineraryJSON))
	}))
	id := createSession(t, r)

	// No itinerary yet.
	if w := doRequest(r, http.MethodGet, "/api/sessions/"+id+"/itinerary", nil); w.Code != http.StatusConflict {
		t.Errorf("itinerary before plan: %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "Plan a trip"}); w.Code != http.StatusOK {
		t.Fatalf("plan: %d", w.Code)
	}

	w := doRequest(r, http.MethodGet, "/api/sessions/"+id+"/itinerary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("itinerary: %d", w.Code)
	}
	var view struct {
		Summary string `json:"summary"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &view)
	if view.Summary != "1-day itinerary with 1 places to visit" {
		t.Errorf("summary = %q", view.Summary)
	}

	w = doRequest(r, http.MethodGet, "/api/sessions/"+id+"/itinerary.pdf", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pdf: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
}

func TestEmailEndpoints(t *testing.T) {
	r := buildTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/api/send-email" {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "sent"})
			return
		}
		_, _ = w.Write([]byte(itineraryJSON))
	}))
	id := createSession(t, r)

	// Modal needs an itinerary.
	if w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/email/open", nil); w.Code != http.StatusConflict {
		t.Errorf("open before plan: %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/messages", map[string]string{"text": "Plan a trip"}); w.Code != http.StatusOK {
		t.Fatalf("plan: %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/email/open", nil); w.Code != http.StatusOK {
		t.Fatalf("open: %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/email", map[string]any{"recipients": []string{}}); w.Code != http.StatusBadRequest {
		t.Errorf("empty recipients: %d", w.Code)
	}

	w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/email", map[string]any{"recipients": []string{"a@example.com"}})
	if w.Code != http.StatusOK {
		t.Fatalf("send: %d %s", w.Code, w.Body.String())
	}
	var st struct {
		EmailSuccess string `json:"emailSuccess"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	if st.EmailSuccess != "sent" {
		t.Errorf("emailSuccess = %q", st.EmailSuccess)
	}

	if w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/email/close", nil); w.Code != http.StatusOK {
		t.Errorf("close: %d", w.Code)
	}
}

func TestVoiceToggle_UnavailableWithoutAdapter(t *testing.T) {
	r := buildTestRouter(t, http.NotFoundHandler())
	id := createSession(t, r)

	if w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/voice/toggle", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("toggle without adapter: %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := buildTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"llm_configured": true})
	}))

	if w := doRequest(r, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health: %d", w.Code)
	}
	w := doRequest(r, http.MethodGet, "/health/ready", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ready: %d", w.Code)
	}
	var body struct {
		Ready         bool `json:"ready"`
		LLMConfigured bool `json:"llm_configured"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Ready || !body.LLMConfigured {
		t.Errorf("readiness = %+v", body)
	}
}
