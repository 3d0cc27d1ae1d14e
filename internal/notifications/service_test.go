package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecogenius/internal/config"
	"ecogenius/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.Publish(context.Background(), notifications.EventNewPost, notifications.Payload{"title": "Couch"}); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		event          notifications.Event
		payload        notifications.Payload
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name:  "new post",
			event: notifications.EventNewPost,
			payload: notifications.Payload{
				"title":       "Two-seater couch",
				"category":    "Furniture",
				"suburb":      "Fitzroy",
				"street_name": "Brunswick St",
			},
			expectTitle:   "EcoGenius - New Post",
			expectMessage: "📌 Two-seater couch (Furniture)\nPick up in Fitzroy",
			expectTags:    "ecogenius,billboard,post",
		},
		{
			name:  "new post without suburb",
			event: notifications.EventNewPost,
			payload: notifications.Payload{
				"title":       "Microwave",
				"street_name": "Smith St",
			},
			expectTitle:   "EcoGenius - New Post",
			expectMessage: "📌 Microwave\nPick up in Smith St",
			expectTags:    "ecogenius,billboard,post",
		},
		{
			name:  "new response",
			event: notifications.EventNewResponse,
			payload: notifications.Payload{
				"post_id":  int64(7),
				"nickname": "GreenKoala07",
				"content":  "Still available?",
			},
			expectTitle:   "EcoGenius - New Reply",
			expectMessage: "💬 GreenKoala07 replied to post #7: Still available?",
			expectTags:    "ecogenius,billboard,reply",
		},
		{
			name:           "test",
			event:          notifications.EventTest,
			expectTitle:    "EcoGenius - Test",
			expectMessage:  "🧪 Notification system test",
			expectTags:     "ecogenius,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Errorf("read body: %v", err)
				}
				captured.body = string(body)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5
			cfg.Notifications.Responses = true

			svc := notifications.NewService(&cfg)
			if err := svc.Publish(context.Background(), tc.event, tc.payload); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceIgnoresDisabledEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call for disabled event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.NewPosts = false
	cfg.Notifications.Responses = false

	svc := notifications.NewService(&cfg)
	for _, event := range []notifications.Event{notifications.EventNewPost, notifications.EventNewResponse, "unknown"} {
		if err := svc.Publish(context.Background(), event, notifications.Payload{"title": "ignored"}); err != nil {
			t.Fatalf("expected no error for disabled event %s, got %v", event, err)
		}
	}
}

func TestNtfyServiceReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "topic locked", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)
	if err := svc.Publish(context.Background(), notifications.EventTest, nil); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
