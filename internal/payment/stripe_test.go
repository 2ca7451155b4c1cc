package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coursehaven/backend/internal/config"
)

func testGateway(t *testing.T, handler http.HandlerFunc) Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewStripeGateway(config.Stripe{SecretKey: "sk_test_123", BaseURL: server.URL})
}

func TestStripeGateway_CreateIntent(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("amount"); got != "4999" {
			t.Errorf("amount = %q, want 4999", got)
		}
		if got := r.PostForm.Get("currency"); got != "usd" {
			t.Errorf("currency = %q, want usd", got)
		}
		if got := r.PostForm.Get("payment_method_types[]"); got != "card" {
			t.Errorf("payment_method_types = %q, want card", got)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_abc",
			"amount":        4999,
			"currency":      "usd",
			"status":        "requires_payment_method",
		})
	})

	intent, err := gateway.CreateIntent(context.Background(), 4999, "usd")
	if err != nil {
		t.Fatalf("CreateIntent() error = %v", err)
	}
	if intent.ID != "pi_123" || intent.ClientSecret != "pi_123_secret_abc" {
		t.Errorf("intent = %+v", intent)
	}
	if intent.Amount != 4999 {
		t.Errorf("amount = %d, want 4999", intent.Amount)
	}
}

func TestStripeGateway_GetIntent(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/payment_intents/pi_123" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "pi_123",
			"amount": 4999,
			"status": "succeeded",
		})
	})

	intent, err := gateway.GetIntent(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("GetIntent() error = %v", err)
	}
	if intent.Status != IntentSucceeded {
		t.Errorf("status = %q, want succeeded", intent.Status)
	}
}

func TestStripeGateway_APIError(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Your card was declined."},
		})
	})

	_, err := gateway.CreateIntent(context.Background(), 100, "usd")
	if err == nil {
		t.Fatal("CreateIntent() expected error")
	}
}
