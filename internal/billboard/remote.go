package billboard

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"ecogenius/internal/services"
)

// RemoteClient is a Service backed by an external board API exposing
// /posts, /posts/{id}, /posts/{id}/responses and /responses.
type RemoteClient struct {
	http *resty.Client
}

type remoteOptions struct {
	httpClient *http.Client
	token      string
}

// RemoteOption configures a RemoteClient.
type RemoteOption func(*remoteOptions)

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(o *remoteOptions) { o.httpClient = client }
}

// WithBearerToken authenticates every request.
func WithBearerToken(token string) RemoteOption {
	return func(o *remoteOptions) { o.token = strings.TrimSpace(token) }
}

// NewRemoteClient targets baseURL (e.g. https://api.example.com/prod).
func NewRemoteClient(baseURL string, timeout time.Duration, opts ...RemoteOption) *RemoteClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	var o remoteOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	client := resty.New()
	if o.httpClient != nil {
		client = resty.NewWithClient(o.httpClient)
	}
	client.
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "EcoGenius-Go/0.1.0")
	if o.token != "" {
		client.SetAuthToken(o.token)
	}
	return &RemoteClient{http: client}
}

// remotePost mirrors the create payload the board API accepts; optional
// fields are sent as null when empty.
type remotePost struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	StreetName  string  `json:"street_name"`
	Suburb      *string `json:"suburb"`
	Postcode    *string `json:"postcode"`
	Category    string  `json:"category"`
	Nickname    string  `json:"nickname"`
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func (c *RemoteClient) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	resp, err := c.http.R().SetContext(ctx).SetResult(&posts).Get("/posts")
	if err := check(resp, err, "fetch posts"); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	for i := range posts {
		posts[i].Category = ParseCategory(string(posts[i].Category))
	}
	return posts, nil
}

func (c *RemoteClient) GetPost(ctx context.Context, id int64) (Post, error) {
	var post Post
	resp, err := c.http.R().SetContext(ctx).SetResult(&post).Get("/posts/" + strconv.FormatInt(id, 10))
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return Post{}, ErrPostNotFound
	}
	if err := check(resp, err, "fetch post"); err != nil {
		return Post{}, err
	}
	post.Category = ParseCategory(string(post.Category))
	return post, nil
}

func (c *RemoteClient) CreatePost(ctx context.Context, p NewPost) (Post, error) {
	p = p.Normalize()
	body := remotePost{
		Title:       p.Title,
		Description: optional(p.Description),
		ImageURL:    optional(p.ImageURL),
		StreetName:  p.StreetName,
		Suburb:      optional(p.Suburb),
		Postcode:    optional(p.Postcode),
		Category:    string(p.Category),
		Nickname:    p.Nickname,
	}
	var created Post
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&created).Post("/posts")
	if err := check(resp, err, "create post"); err != nil {
		return Post{}, err
	}
	return created, nil
}

func (c *RemoteClient) ListResponses(ctx context.Context, postID int64) ([]Response, error) {
	var out []Response
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/posts/" + strconv.FormatInt(postID, 10) + "/responses")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return nil, ErrPostNotFound
	}
	if err := check(resp, err, "fetch responses"); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Response{}
	}
	return out, nil
}

func (c *RemoteClient) CreateResponse(ctx context.Context, r NewResponse) (Response, error) {
	r = r.Normalize()
	var created Response
	resp, err := c.http.R().SetContext(ctx).SetBody(r).SetResult(&created).Post("/responses")
	if err := check(resp, err, "create response"); err != nil {
		return Response{}, err
	}
	return created, nil
}

func check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return services.Wrap(services.ErrExternal, "billboard", op, "request failed", err)
	}
	if resp.IsError() {
		detail := strings.TrimSpace(resp.String())
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return services.Wrap(services.ErrExternal, "billboard", op,
			fmt.Sprintf("status %d: %s", resp.StatusCode(), detail), nil)
	}
	return nil
}
