package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	controller "github.com/prguard/prguard/pkg/controller/http"
	"github.com/prguard/prguard/pkg/domain/model"
)

// stubProcessor records processed events and signals completion, since the
// handler dispatches processing asynchronously
type stubProcessor struct {
	events chan *model.WebhookEvent
}

func newStubProcessor() *stubProcessor {
	return &stubProcessor{events: make(chan *model.WebhookEvent, 1)}
}

func (s *stubProcessor) ProcessEvent(ctx context.Context, event *model.WebhookEvent, payload any) error {
	s.events <- event
	return nil
}

// generateSignature generates HMAC-SHA256 signature for testing
func generateSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

const prPayload = `{"action":"labeled","pull_request":{"number":1,"head":{"sha":"abc"},"labels":[{"name":"bug"}]},"repository":{"name":"repo","full_name":"test/repo","owner":{"login":"test"}},"sender":{"login":"testuser"}}`

func TestWebhookHandler_SignatureVerification(t *testing.T) {
	secret := "test-secret"

	tests := []struct {
		name           string
		payload        string
		signature      string
		wantStatusCode int
	}{
		{
			name:           "Valid signature",
			payload:        prPayload,
			signature:      "", // Will be generated
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Invalid signature",
			payload:        `{"action":"opened"}`,
			signature:      "sha256=invalid",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Missing signature",
			payload:        `{"action":"opened"}`,
			signature:      "",
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := controller.NewWebhookHandler(secret, newStubProcessor())

			payload := []byte(tt.payload)
			signature := tt.signature
			if signature == "" && tt.wantStatusCode == http.StatusOK {
				signature = generateSignature(secret, payload)
			}

			req := httptest.NewRequest(http.MethodPost, "/hooks/github/app", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-GitHub-Event", "pull_request")
			req.Header.Set("X-GitHub-Delivery", "test-delivery")
			req.Header.Set("X-Hub-Signature-256", signature)

			w := httptest.NewRecorder()
			handler.Handle(w, req)

			if w.Code != tt.wantStatusCode {
				t.Errorf("Handle() status = %v, want %v", w.Code, tt.wantStatusCode)
			}
		})
	}
}

func TestWebhookHandler_EventDispatch(t *testing.T) {
	secret := "test-secret"
	processor := newStubProcessor()
	handler := controller.NewWebhookHandler(secret, processor)

	payload := []byte(prPayload)
	req := httptest.NewRequest(http.MethodPost, "/hooks/github/app", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "pull_request")
	req.Header.Set("X-GitHub-Delivery", "delivery-42")
	req.Header.Set("X-Hub-Signature-256", generateSignature(secret, payload))

	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Handle() status = %v, want %v", w.Code, http.StatusOK)
	}

	select {
	case event := <-processor.events:
		if event.ID != "delivery-42" {
			t.Errorf("event.ID = %v, want delivery-42", event.ID)
		}
		if event.Type != model.EventTypePullRequest {
			t.Errorf("event.Type = %v, want %v", event.Type, model.EventTypePullRequest)
		}
		if event.Action != "labeled" {
			t.Errorf("event.Action = %v, want labeled", event.Action)
		}
		if event.Repository != "test/repo" {
			t.Errorf("event.Repository = %v, want test/repo", event.Repository)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("event was not processed within timeout")
	}
}

func TestWebhookHandler_UnknownEventType(t *testing.T) {
	secret := "test-secret"
	processor := newStubProcessor()
	handler := controller.NewWebhookHandler(secret, processor)

	payload := []byte(`{"action":"created","issue":{"number":1}}`)
	req := httptest.NewRequest(http.MethodPost, "/hooks/github/app", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "issues")
	req.Header.Set("X-GitHub-Delivery", "delivery-issues")
	req.Header.Set("X-Hub-Signature-256", generateSignature(secret, payload))

	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Handle() status = %v, want %v", w.Code, http.StatusOK)
	}

	select {
	case event := <-processor.events:
		if event.Type != model.EventTypeUnknown {
			t.Errorf("event.Type = %v, want %v", event.Type, model.EventTypeUnknown)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("event was not processed within timeout")
	}
}

func TestWebhookHandler_InvalidPayload(t *testing.T) {
	secret := "test-secret"
	handler := controller.NewWebhookHandler(secret, newStubProcessor())

	payload := []byte(`not json`)
	req := httptest.NewRequest(http.MethodPost, "/hooks/github/app", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "pull_request")
	req.Header.Set("X-Hub-Signature-256", generateSignature(secret, payload))

	w := httptest.NewRecorder()
	handler.Handle(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Handle() status = %v, want %v", w.Code, http.StatusBadRequest)
	}
}
