package billboard

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Category groups posts on the board.
type Category string

const (
	CategoryAppliance Category = "Appliance"
	CategoryFurniture Category = "Furniture"
	CategoryOthers    Category = "Others"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryAppliance, CategoryFurniture, CategoryOthers}
}

// ParseCategory matches case-insensitively and falls back to Others.
func ParseCategory(value string) Category {
	value = strings.TrimSpace(value)
	for _, c := range Categories() {
		if strings.EqualFold(value, string(c)) {
			return c
		}
	}
	return CategoryOthers
}

// Timestamp decodes the several time layouts board backends emit.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp returns the zero Timestamp when value matches no layout.
func ParseTimestamp(value string) Timestamp {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: t.UTC()}
		}
	}
	return Timestamp{}
}

// MarshalJSON writes RFC 3339 in UTC, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts any known layout. Unknown layouts leave the zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = ParseTimestamp(raw)
	return nil
}

// Post is an item offered on the board.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	StreetName  string    `json:"street_name"`
	Suburb      string    `json:"suburb"`
	Postcode    string    `json:"postcode"`
	Category    Category  `json:"category"`
	Nickname    string    `json:"nickname"`
	CreatedAt   Timestamp `json:"created_at"`
}

// Location formats the pickup address line.
func (p Post) Location() string {
	parts := make([]string, 0, 2)
	if p.StreetName != "" {
		parts = append(parts, p.StreetName)
	}
	tail := strings.TrimSpace(p.Suburb + " " + p.Postcode)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

// Response is a reply to a post.
type Response struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}

// NewPost is the input for creating a post.
type NewPost struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	StreetName  string   `json:"street_name" validate:"required,max=120"`
	Suburb      string   `json:"suburb" validate:"max=80"`
	Postcode    string   `json:"postcode" validate:"omitempty,numeric,len=4"`
	Category    Category `json:"category" validate:"oneof=Appliance Furniture Others"`
	Nickname    string   `json:"nickname" validate:"required,max=40"`
}

// Normalize trims every field and defaults the category.
func (p NewPost) Normalize() NewPost {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	p.StreetName = strings.TrimSpace(p.StreetName)
	p.Suburb = strings.TrimSpace(p.Suburb)
	p.Postcode = strings.TrimSpace(p.Postcode)
	p.Category = ParseCategory(string(p.Category))
	p.Nickname = strings.TrimSpace(p.Nickname)
	return p
}

// NewResponse is the input for replying to a post.
type NewResponse struct {
	PostID   int64  `json:"post_id" validate:"required,gt=0"`
	Nickname string `json:"nickname" validate:"required,max=40"`
	Content  string `json:"content" validate:"required,max=1000"`
}

// Normalize trims every field.
func (r NewResponse) Normalize() NewResponse {
	r.Nickname = strings.TrimSpace(r.Nickname)
	r.Content = strings.TrimSpace(r.Content)
	return r
}
