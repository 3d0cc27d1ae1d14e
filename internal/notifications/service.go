package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecogenius/internal/config"
)

const userAgent = "EcoGenius-Go/0.1.0"

// Event names a notification kind.
type Event string

const (
	EventNewPost     Event = "new_post"
	EventNewResponse Event = "new_response"
	EventTest        Event = "test"
)

// Payload carries event fields by name.
type Payload map[string]any

// Service publishes events.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds an ntfy-backed service, or a no-op when no topic is set.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		enabled: map[Event]bool{
			EventNewPost:     cfg.Notifications.NewPosts,
			EventNewResponse: cfg.Notifications.Responses,
			EventTest:        true,
		},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
	click    string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	enabled  map[Event]bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	if !n.enabled[event] {
		return nil
	}
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func format(event Event, payload Payload) (message, bool) {
	switch event {
	case EventNewPost:
		title := payload.str("title")
		where := payload.str("suburb")
		if where == "" {
			where = payload.str("street_name")
		}
		body := fmt.Sprintf("📌 %s", title)
		if category := payload.str("category"); category != "" {
			body += fmt.Sprintf(" (%s)", category)
		}
		if where != "" {
			body += fmt.Sprintf("\nPick up in %s", where)
		}
		return message{
			title: "EcoGenius - New Post",
			body:  body,
			tags:  []string{"ecogenius", "billboard", "post"},
			click: payload.str("url"),
		}, true
	case EventNewResponse:
		return message{
			title: "EcoGenius - New Reply",
			body:  fmt.Sprintf("💬 %s replied to post #%s: %s", payload.str("nickname"), payload.str("post_id"), payload.str("content")),
			tags:  []string{"ecogenius", "billboard", "reply"},
		}, true
	case EventTest:
		return message{
			title:    "EcoGenius - Test",
			body:     "🧪 Notification system test",
			tags:     []string{"ecogenius", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (p Payload) str(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func (n *ntfyService) send(ctx context.Context, data message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" {
		req.Header.Set("Priority", data.priority)
	}
	if data.click != "" {
		req.Header.Set("Click", data.click)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
