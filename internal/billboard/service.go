package billboard

import "context"

// Service stores posts and replies.
type Service interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id int64) (Post, error)
	CreatePost(ctx context.Context, p NewPost) (Post, error)
	ListResponses(ctx context.Context, postID int64) ([]Response, error)
	CreateResponse(ctx context.Context, r NewResponse) (Response, error)
}
