package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"
)

const updatesBatch = `{"ok":true,"result":[
	{"update_id":7,"message":{"text":" /trends ","chat":{"id":123}}},
	{"update_id":8,"message":{"text":"/update","chat":{"id":999}}},
	{"update_id":9}
]}`

func TestPoll_RunsCommandsFromConfiguredChatOnly(t *testing.T) {
	var gotOffset string
	var sent []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			gotOffset = r.URL.Query().Get("offset")
			w.Write([]byte(updatesBatch))
		case "/botTOKEN/sendMessage":
			var payload map[string]string
			json.NewDecoder(r.Body).Decode(&payload)
			sent = append(sent, payload["text"])
			w.Write([]byte(`{"ok":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "123", "")
	tn.APIBase = srv.URL

	var commands []string
	handler := func(_ context.Context, cmd string) string {
		commands = append(commands, cmd)
		return "reply to " + cmd
	}

	next, err := tn.poll(context.Background(), tn.Client, 7, handler)
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if gotOffset != "7" {
		t.Errorf("offset sent = %q, want %q", gotOffset, "7")
	}
	if next != 10 {
		t.Errorf("next offset = %d, want 10", next)
	}
	if want := []string{"/trends"}; !reflect.DeepEqual(commands, want) {
		t.Errorf("commands = %v, want %v", commands, want)
	}
	if want := []string{"reply to /trends"}; !reflect.DeepEqual(sent, want) {
		t.Errorf("replies = %v, want %v", sent, want)
	}
}

func TestPoll_RejectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"ok":false,"error_code":409,"description":"Conflict: terminated by other getUpdates request"}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "123", "")
	tn.APIBase = srv.URL

	called := false
	next, err := tn.poll(context.Background(), tn.Client, 42, func(context.Context, string) string {
		called = true
		return ""
	})
	if err == nil {
		t.Fatal("expected error for ok=false")
	}
	if next != 42 {
		t.Errorf("next offset = %d, want unchanged 42", next)
	}
	if called {
		t.Error("handler must not run for a rejected batch")
	}
}

func TestStartPolling_StopsOnCancel(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.Write([]byte(`{"ok":true,"result":[{"update_id":1,"message":{"text":"/trends","chat":{"id":123}}}]}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "123", "")
	tn.APIBase = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		tn.StartPolling(ctx, func(context.Context, string) string {
			cancel()
			return ""
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("StartPolling did not return after cancel")
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("getUpdates calls = %d, want 1", calls)
	}
}
