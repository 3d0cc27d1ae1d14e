package billboard

import (
	"context"
	"log/slog"
	"strings"

	"ecogenius/internal/logging"
	"ecogenius/internal/notifications"
)

type submitterKey struct{}

// WithSubmitter tags ctx with the cooldown key for the caller, such as a
// client address.
func WithSubmitter(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, submitterKey{}, strings.TrimSpace(key))
}

func submitterFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(submitterKey{}).(string); ok {
		return v
	}
	return ""
}

// Board validates, rate-limits and announces submissions before handing them
// to a Service.
type Board struct {
	backend  Service
	cooldown *Cooldown
	notifier notifications.Service
	logger   *slog.Logger
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithCooldown replaces the default cooldown.
func WithCooldown(c *Cooldown) BoardOption {
	return func(b *Board) {
		if c != nil {
			b.cooldown = c
		}
	}
}

// WithNotifier publishes accepted submissions.
func WithNotifier(n notifications.Service) BoardOption {
	return func(b *Board) {
		if n != nil {
			b.notifier = n
		}
	}
}

// NewBoard wraps backend.
func NewBoard(backend Service, logger *slog.Logger, opts ...BoardOption) *Board {
	b := &Board{
		backend:  backend,
		cooldown: NewCooldown(DefaultCooldown),
		logger:   logging.NewComponentLogger(logger, "billboard"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Posts lists posts matching f.
func (b *Board) Posts(ctx context.Context, f Filter) ([]Post, error) {
	posts, err := b.backend.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(posts), nil
}

// Post returns a post with its replies.
func (b *Board) Post(ctx context.Context, id int64) (Post, []Response, error) {
	post, err := b.backend.GetPost(ctx, id)
	if err != nil {
		return Post{}, nil, err
	}
	responses, err := b.backend.ListResponses(ctx, id)
	if err != nil {
		return Post{}, nil, err
	}
	return post, responses, nil
}

// Responses lists replies for a post.
func (b *Board) Responses(ctx context.Context, postID int64) ([]Response, error) {
	return b.backend.ListResponses(ctx, postID)
}

// Submit validates and stores a new post. A second accepted submission from
// the same submitter within the cooldown window fails with ErrCooldown and
// never reaches the backend.
func (b *Board) Submit(ctx context.Context, p NewPost) (Post, error) {
	p, err := ValidatePost(p)
	if err != nil {
		return Post{}, err
	}
	release, err := b.cooldown.Reserve("post:" + submitterFromContext(ctx))
	if err != nil {
		return Post{}, err
	}
	post, err := b.backend.CreatePost(ctx, p)
	if err != nil {
		release()
		return Post{}, err
	}

	logger := logging.WithContext(ctx, b.logger)
	logger.Info("post created",
		logging.Int64("post_id", post.ID),
		logging.String("category", string(post.Category)),
		logging.String("suburb", post.Suburb),
	)
	b.publish(ctx, notifications.EventNewPost, notifications.Payload{
		"id":          post.ID,
		"title":       post.Title,
		"category":    string(post.Category),
		"suburb":      post.Suburb,
		"street_name": post.StreetName,
	})
	return post, nil
}

// Reply validates and stores a reply under the same cooldown rules.
func (b *Board) Reply(ctx context.Context, r NewResponse) (Response, error) {
	r, err := ValidateResponse(r)
	if err != nil {
		return Response{}, err
	}
	release, err := b.cooldown.Reserve("reply:" + submitterFromContext(ctx))
	if err != nil {
		return Response{}, err
	}
	resp, err := b.backend.CreateResponse(ctx, r)
	if err != nil {
		release()
		return Response{}, err
	}

	logging.WithContext(ctx, b.logger).Info("response created",
		logging.Int64("post_id", resp.PostID),
		logging.Int64("response_id", resp.ID),
	)
	b.publish(ctx, notifications.EventNewResponse, notifications.Payload{
		"post_id":  resp.PostID,
		"nickname": resp.Nickname,
		"content":  resp.Content,
	})
	return resp, nil
}

func (b *Board) publish(ctx context.Context, event notifications.Event, payload notifications.Payload) {
	if b.notifier == nil {
		return
	}
	if err := b.notifier.Publish(ctx, event, payload); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, b.logger), "notification failed",
			"notification_failed", "check ntfy_topic in config.toml",
			logging.String("event", string(event)),
			logging.Error(err),
		)
	}
}
