package billboard_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ecogenius/internal/billboard"
	"ecogenius/internal/logging"
	"ecogenius/internal/notifications"
	"ecogenius/internal/services"
)

type fakeBackend struct {
	mu        sync.Mutex
	posts     []billboard.Post
	responses []billboard.Response
	creates   int
}

func (f *fakeBackend) ListPosts(context.Context) ([]billboard.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]billboard.Post(nil), f.posts...), nil
}

func (f *fakeBackend) GetPost(_ context.Context, id int64) (billboard.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return billboard.Post{}, billboard.ErrPostNotFound
}

func (f *fakeBackend) CreatePost(_ context.Context, p billboard.NewPost) (billboard.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	post := billboard.Post{
		ID:         int64(len(f.posts) + 1),
		Title:      p.Title,
		StreetName: p.StreetName,
		Suburb:     p.Suburb,
		Category:   p.Category,
		Nickname:   p.Nickname,
	}
	f.posts = append(f.posts, post)
	return post, nil
}

func (f *fakeBackend) ListResponses(_ context.Context, postID int64) ([]billboard.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []billboard.Response
	for _, r := range f.responses {
		if r.PostID == postID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateResponse(_ context.Context, r billboard.NewResponse) (billboard.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	resp := billboard.Response{ID: int64(len(f.responses) + 1), PostID: r.PostID, Nickname: r.Nickname, Content: r.Content}
	f.responses = append(f.responses, resp)
	return resp, nil
}

type recordingNotifier struct {
	events []notifications.Event
	err    error
}

func (r *recordingNotifier) Publish(_ context.Context, event notifications.Event, _ notifications.Payload) error {
	r.events = append(r.events, event)
	return r.err
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestBoardSubmitCooldown(t *testing.T) {
	backend := &fakeBackend{}
	notifier := &recordingNotifier{}
	clk := &clock{now: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)}
	board := billboard.NewBoard(backend, logging.NewNop(),
		billboard.WithCooldown(billboard.NewCooldown(5*time.Second).WithClock(clk.Now)),
		billboard.WithNotifier(notifier),
	)
	ctx := billboard.WithSubmitter(context.Background(), "10.0.0.1")

	if _, err := board.Submit(ctx, couch()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	clk.now = clk.now.Add(2 * time.Second)
	_, err := board.Submit(ctx, couch())
	if !errors.Is(err, billboard.ErrCooldown) {
		t.Fatalf("second submit err = %v, want ErrCooldown", err)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("cooldown should map to validation, got %v", err)
	}
	if backend.creates != 1 {
		t.Fatalf("backend called %d times, want 1", backend.creates)
	}

	other := billboard.WithSubmitter(context.Background(), "10.0.0.2")
	if _, err := board.Submit(other, couch()); err != nil {
		t.Fatalf("other submitter: %v", err)
	}

	clk.now = clk.now.Add(5 * time.Second)
	if _, err := board.Submit(ctx, couch()); err != nil {
		t.Fatalf("submit after window: %v", err)
	}
	if len(notifier.events) != 3 || notifier.events[0] != notifications.EventNewPost {
		t.Fatalf("events = %v", notifier.events)
	}
}

// slowBackend holds CreatePost open so concurrent submissions overlap.
type slowBackend struct {
	*fakeBackend
	delay time.Duration
	err   error
}

func (s *slowBackend) CreatePost(ctx context.Context, p billboard.NewPost) (billboard.Post, error) {
	time.Sleep(s.delay)
	if s.err != nil {
		return billboard.Post{}, s.err
	}
	return s.fakeBackend.CreatePost(ctx, p)
}

func TestBoardConcurrentSubmitsFromSameSubmitter(t *testing.T) {
	backend := &slowBackend{fakeBackend: &fakeBackend{}, delay: 50 * time.Millisecond}
	board := billboard.NewBoard(backend, logging.NewNop())
	ctx := billboard.WithSubmitter(context.Background(), "10.0.0.1")

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = board.Submit(ctx, couch())
		}()
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case !errors.Is(err, billboard.ErrCooldown):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != 1 {
		t.Fatalf("accepted %d submissions, want 1 (errs=%v)", accepted, errs)
	}
	backend.mu.Lock()
	creates := backend.creates
	backend.mu.Unlock()
	if creates != 1 {
		t.Fatalf("backend called %d times, want 1", creates)
	}
}

func TestBoardBackendFailureReleasesCooldown(t *testing.T) {
	backend := &slowBackend{fakeBackend: &fakeBackend{}, err: errors.New("database locked")}
	board := billboard.NewBoard(backend, logging.NewNop())
	ctx := billboard.WithSubmitter(context.Background(), "10.0.0.1")

	if _, err := board.Submit(ctx, couch()); err == nil || errors.Is(err, billboard.ErrCooldown) {
		t.Fatalf("first submit err = %v, want backend failure", err)
	}
	backend.err = nil
	if _, err := board.Submit(ctx, couch()); err != nil {
		t.Fatalf("retry after backend failure: %v", err)
	}
}

func TestBoardRejectedSubmissionDoesNotStartCooldown(t *testing.T) {
	backend := &fakeBackend{}
	board := billboard.NewBoard(backend, logging.NewNop())
	ctx := context.Background()

	bad := couch()
	bad.Title = "   "
	_, err := board.Submit(ctx, bad)
	var verr *billboard.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "title" {
		t.Fatalf("fields = %+v", verr.Fields)
	}
	if backend.creates != 0 {
		t.Fatal("invalid post reached backend")
	}
	if _, err := board.Submit(ctx, couch()); err != nil {
		t.Fatalf("valid submit after rejection: %v", err)
	}
}

func TestBoardReplyAndPost(t *testing.T) {
	backend := &fakeBackend{}
	notifier := &recordingNotifier{err: errors.New("ntfy down")}
	board := billboard.NewBoard(backend, logging.NewNop(), billboard.WithNotifier(notifier))
	ctx := context.Background()

	post, err := board.Submit(ctx, couch())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := board.Reply(ctx, billboard.NewResponse{PostID: post.ID, Nickname: "Sunny12", Content: " Is it still there? "}); err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if _, err := board.Reply(ctx, billboard.NewResponse{PostID: post.ID, Nickname: "Sunny12", Content: "again"}); !errors.Is(err, billboard.ErrCooldown) {
		t.Fatalf("second reply err = %v", err)
	}

	got, responses, err := board.Post(ctx, post.ID)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if got.Title != post.Title || len(responses) != 1 || responses[0].Content != "Is it still there?" {
		t.Fatalf("post = %+v responses = %+v", got, responses)
	}
	if len(notifier.events) != 2 || notifier.events[1] != notifications.EventNewResponse {
		t.Fatalf("events = %v", notifier.events)
	}

	if _, _, err := board.Post(ctx, 42); !errors.Is(err, billboard.ErrPostNotFound) {
		t.Fatalf("missing post err = %v", err)
	}
}

func TestBoardPostsFilter(t *testing.T) {
	backend := &fakeBackend{posts: []billboard.Post{
		{ID: 1, Title: "Fridge", Category: billboard.CategoryAppliance, Suburb: "Richmond"},
		{ID: 2, Title: "Desk", Category: billboard.CategoryFurniture, Suburb: "Carlton"},
		{ID: 3, Title: "Desk lamp", Category: billboard.CategoryAppliance, Suburb: "Carlton"},
	}}
	board := billboard.NewBoard(backend, logging.NewNop())

	posts, err := board.Posts(context.Background(), billboard.Filter{Search: "desk", Suburb: "carlton"})
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %+v", posts)
	}
	posts, _ = board.Posts(context.Background(), billboard.Filter{Categories: []billboard.Category{billboard.CategoryAppliance}, Search: "lamp"})
	if len(posts) != 1 || posts[0].ID != 3 {
		t.Fatalf("posts = %+v", posts)
	}
}
