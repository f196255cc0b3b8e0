package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"solidarity-api/internal/domain/entity"
	"solidarity-api/internal/form"
	"solidarity-api/internal/handler/http/contact"
	"solidarity-api/internal/resilience/retry"
	contactUC "solidarity-api/internal/usecase/contact"
)

type stubContactRepo struct {
	insertErr error
	last      *entity.ContactSubmission
}

func (s *stubContactRepo) Insert(_ context.Context, sub *entity.ContactSubmission) (int64, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	s.last = sub
	return 1, nil
}

func fastRetry() retry.Config {
	return retry.Config{
		MaxRetries:     1,
		BaseDelay:      time.Millisecond,
		MaxDelay:       time.Millisecond,
		Multiplier:     1,
		JitterFraction: 0,
	}
}

// newSubmitRoute wires the handler behind the same pipeline Register
// uses, without the rate limiter.
func newSubmitRoute(stub *stubContactRepo) http.Handler {
	svc := contactUC.NewService(stub)
	svc.Retry = fastRetry()
	pipeline := form.WithMiddleware(form.Options{
		Sanitize: contact.ContactSanitize(),
		Validate: contact.ContactValidate(),
	})
	return pipeline(contact.SubmitHandler{Svc: svc})
}

func TestSubmitRoute_Success(t *testing.T) {
	stub := &stubContactRepo{}
	route := newSubmitRoute(stub)

	body := `{
		"name": "  Ada Yilmaz ",
		"email": "Ada@Example.ORG",
		"subject": "Toplantı hakkında",
		"message": "Kampanya toplantısına katılmak istiyorum.",
		"locale": "TR"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	route.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status code = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Success {
		t.Error("success = false, want true")
	}

	if stub.last == nil {
		t.Fatal("nothing was inserted")
	}
	if stub.last.Name != "Ada Yilmaz" {
		t.Errorf("Name = %q, want %q", stub.last.Name, "Ada Yilmaz")
	}
	if stub.last.Email != "ada@example.org" {
		t.Errorf("Email = %q, want %q", stub.last.Email, "ada@example.org")
	}
	if stub.last.Locale != "tr" {
		t.Errorf("Locale = %q, want %q", stub.last.Locale, "tr")
	}
}

func TestSubmitRoute_StripsHTML(t *testing.T) {
	stub := &stubContactRepo{}
	route := newSubmitRoute(stub)

	body := `{
		"name": "<b>Ada</b> Yilmaz",
		"email": "ada@example.org",
		"subject": "Hello there",
		"message": "<script>alert(1)</script>A long enough message."
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	rr := httptest.NewRecorder()

	route.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status code = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if stub.last.Name != "Ada Yilmaz" {
		t.Errorf("Name = %q, want HTML stripped", stub.last.Name)
	}
	if strings.Contains(stub.last.Message, "<script>") {
		t.Errorf("Message = %q, want HTML stripped", stub.last.Message)
	}
}

func TestSubmitRoute_ValidationFailure(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "missing email",
			body:      `{"name": "Ada", "subject": "Hello there", "message": "A long enough message."}`,
			wantField: "email",
		},
		{
			name:      "message too short",
			body:      `{"name": "Ada", "email": "ada@example.org", "subject": "Hello there", "message": "short"}`,
			wantField: "message",
		},
		{
			name:      "invalid email",
			body:      `{"name": "Ada", "email": "not-an-email", "subject": "Hello there", "message": "A long enough message."}`,
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubContactRepo{}
			route := newSubmitRoute(stub)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			route.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}

			var result struct {
				Error   string `json:"error"`
				Details []struct {
					Field string `json:"field"`
				} `json:"details"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if result.Error != "validation failed" {
				t.Errorf("error = %q, want %q", result.Error, "validation failed")
			}
			found := false
			for _, d := range result.Details {
				if d.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("details do not mention field %q: %+v", tt.wantField, result.Details)
			}
			if stub.last != nil {
				t.Error("invalid submission reached the repository")
			}
		})
	}
}

func TestSubmitRoute_InvalidJSON(t *testing.T) {
	stub := &stubContactRepo{}
	route := newSubmitRoute(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":`))
	rr := httptest.NewRecorder()

	route.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var result map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["error"] != "invalid JSON body" {
		t.Errorf("error = %q, want %q", result["error"], "invalid JSON body")
	}
}

func TestSubmitRoute_RepositoryError(t *testing.T) {
	stub := &stubContactRepo{insertErr: errors.New("connection refused")}
	route := newSubmitRoute(stub)

	body := `{"name": "Ada", "email": "ada@example.org", "subject": "Hello there", "message": "A long enough message."}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	rr := httptest.NewRecorder()

	route.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	var result map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["error"] != "internal server error" {
		t.Errorf("error = %q, internal details must not leak", result["error"])
	}
}
