package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/config"
	"github.com/sirupsen/logrus"
)

func newTestClient(url string) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(&config.Config{LLMBaseURL: url + "/", LLMAPIKey: "sk-test", LLMModel: "test-model"}, log)
}

func TestStream(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing api key header")
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"role":"assistant"}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"Hello"}}]}`+"\n\n")
		fmt.Fprint(w, "data: not-json\n\n")
		fmt.Fprint(w, `data:{"choices":[{"delta":{"content":", world"}}]}`+"\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"ignored"}}]}`+"\n\n")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if client.Model() != "test-model" {
		t.Fatalf("unexpected model %q", client.Model())
	}

	var tokens []string
	err := client.Stream(context.Background(),
		[]Message{{Role: RoleUser, Content: "hi"}},
		func(s string) error { tokens = append(tokens, s); return nil })
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if got := strings.Join(tokens, ""); got != "Hello, world" {
		t.Fatalf("expected %q, got %q", "Hello, world", got)
	}
	if gotBody["model"] != "test-model" || gotBody["stream"] != true {
		t.Fatalf("unexpected request body %v", gotBody)
	}
}

func TestStreamStopsOnCallbackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 5; i++ {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":\"%d\"}}]}\n\n", i)
		}
	}))
	defer srv.Close()

	stop := errors.New("client went away")
	calls := 0
	err := newTestClient(srv.URL).Stream(context.Background(), nil, func(string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("expected abort after first token, got %v after %d calls", err, calls)
	}
}

func TestStreamAPIErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		quota     bool
		invalid   bool
		wantInMsg string
	}{
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"You exceeded your quota","type":"insufficient_quota","code":"insufficient_quota"}}`, true, false, "exceeded"},
		{"bad key", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error","code":"invalid_api_key"}}`, false, true, "Incorrect API key"},
		{"server", http.StatusBadGateway, `upstream unavailable`, false, false, "upstream unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			err := newTestClient(srv.URL).Stream(context.Background(), nil, func(string) error { return nil })
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.status {
				t.Fatalf("expected APIError with status %d, got %v", tt.status, err)
			}
			if IsQuotaExceeded(err) != tt.quota || IsInvalidKey(err) != tt.invalid {
				t.Fatalf("classification mismatch for %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantInMsg) {
				t.Fatalf("expected message to contain %q, got %v", tt.wantInMsg, err)
			}
		})
	}
}

func TestBuildConversation(t *testing.T) {
	history := []Message{{Role: RoleUser, Content: "How am I doing?"}}

	plain := BuildConversation(history, nil, analysis.LocaleEN)
	if len(plain) != 2 || plain[0].Role != RoleSystem || plain[1] != history[0] {
		t.Fatalf("unexpected conversation %+v", plain)
	}

	snap := &analysis.Snapshot{AnnualSalary: 120000}
	withData := BuildConversation(history, snap, analysis.LocaleZH)
	if len(withData) != 3 || withData[1].Role != RoleSystem {
		t.Fatalf("expected data system message, got %+v", withData)
	}
	if !strings.Contains(withData[1].Content, "年薪资收入：120,000 元") {
		t.Fatalf("summary missing from context: %s", withData[1].Content)
	}
	if !strings.HasPrefix(withData[0].Content, "你是一位专业的个人财务分析师") {
		t.Fatalf("expected zh system prompt")
	}
}
