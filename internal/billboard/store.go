package billboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a Service backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// storeTimeLayout is fixed width so created_at sorts lexically.
const storeTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// OpenStore opens or creates the database at path.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const postColumns = "id, title, description, image_url, street_name, suburb, postcode, category, nickname, created_at"

// ListPosts returns posts newest first.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// GetPost returns ErrPostNotFound for unknown ids.
func (s *Store) GetPost(ctx context.Context, id int64) (Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrPostNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// CreatePost inserts p. Callers validate first.
func (s *Store) CreatePost(ctx context.Context, p NewPost) (Post, error) {
	p = p.Normalize()
	created := s.now().UTC().Format(storeTimeLayout)
	var id int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO posts (title, description, image_url, street_name, suburb, postcode, category, nickname, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Title,
			nullableString(p.Description),
			nullableString(p.ImageURL),
			p.StreetName,
			nullableString(p.Suburb),
			nullableString(p.Postcode),
			string(p.Category),
			p.Nickname,
			created,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return Post{}, fmt.Errorf("insert post: %w", err)
	}
	return s.GetPost(ctx, id)
}

// ListResponses returns replies oldest first. Unknown posts yield ErrPostNotFound.
func (s *Store) ListResponses(ctx context.Context, postID int64) ([]Response, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, post_id, nickname, content, created_at FROM responses WHERE post_id = ? ORDER BY created_at ASC, id ASC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	out := make([]Response, 0)
	for rows.Next() {
		var (
			r          Response
			createdRaw string
		)
		if err := rows.Scan(&r.ID, &r.PostID, &r.Nickname, &r.Content, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		r.CreatedAt = ParseTimestamp(createdRaw)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

// CreateResponse inserts a reply to an existing post.
func (s *Store) CreateResponse(ctx context.Context, r NewResponse) (Response, error) {
	r = r.Normalize()
	if _, err := s.GetPost(ctx, r.PostID); err != nil {
		return Response{}, err
	}
	now := s.now().UTC()
	var id int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO responses (post_id, nickname, content, created_at) VALUES (?, ?, ?, ?)`,
			r.PostID, r.Nickname, r.Content, now.Format(storeTimeLayout),
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return Response{}, fmt.Errorf("insert response: %w", err)
	}
	return Response{ID: id, PostID: r.PostID, Nickname: r.Nickname, Content: r.Content, CreatedAt: Timestamp{Time: now}}, nil
}

func scanPost(scanner interface{ Scan(dest ...any) error }) (Post, error) {
	var (
		p           Post
		description sql.NullString
		imageURL    sql.NullString
		suburb      sql.NullString
		postcode    sql.NullString
		category    string
		createdRaw  string
	)
	if err := scanner.Scan(
		&p.ID,
		&p.Title,
		&description,
		&imageURL,
		&p.StreetName,
		&suburb,
		&postcode,
		&category,
		&p.Nickname,
		&createdRaw,
	); err != nil {
		return Post{}, err
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.Suburb = suburb.String
	p.Postcode = postcode.String
	p.Category = ParseCategory(category)
	p.CreatedAt = ParseTimestamp(createdRaw)
	return p, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > busyRetryMaxBackoff {
			delay = busyRetryMaxBackoff
		}
	}
	return lastErr
}
