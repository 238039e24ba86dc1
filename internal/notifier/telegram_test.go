package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTelegramNotifier_Send(t *testing.T) {
	var gotPath string
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "123", "")
	tn.APIBase = srv.URL
	if err := tn.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if gotPath != "/botTOKEN/sendMessage" {
		t.Errorf("path = %q, want %q", gotPath, "/botTOKEN/sendMessage")
	}
	if payload["chat_id"] != "123" || payload["text"] != "hello" || payload["parse_mode"] != "HTML" {
		t.Errorf("payload = %v", payload)
	}
}

func TestTelegramNotifier_SendError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "123", "")
	tn.APIBase = srv.URL
	if err := tn.Send(context.Background(), "hello"); err == nil {
		t.Error("expected error for non-200 status")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want a single attempt", calls)
	}
}
