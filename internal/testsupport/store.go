package testsupport

import (
	"context"
	"testing"

	"ecogenius/internal/billboard"
	"ecogenius/internal/config"
)

// MustOpenBoardStore opens the local billboard store for tests and registers cleanup.
func MustOpenBoardStore(t testing.TB, cfg *config.Config) *billboard.Store {
	t.Helper()

	store, err := billboard.OpenStore(context.Background(), cfg.BillboardDBPath())
	if err != nil {
		t.Fatalf("billboard.OpenStore: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewPost inserts a post with the given title using the provided store.
func NewPost(t testing.TB, store *billboard.Store, title string) billboard.Post {
	t.Helper()

	post, err := store.CreatePost(context.Background(), billboard.NewPost{
		Title:      title,
		StreetName: "Swanston St",
		Suburb:     "Carlton",
		Postcode:   "3053",
		Category:   billboard.CategoryOthers,
		Nickname:   "TestKoala01",
	})
	if err != nil {
		t.Fatalf("store.CreatePost: %v", err)
	}
	return post
}
