package server

import (
	"ecogenius/internal/advice"
	"ecogenius/internal/analytics"
	"ecogenius/internal/billboard"
	"ecogenius/internal/classify"
)

// ClassifyResponse pairs the model's verdict with the rendered result card.
type ClassifyResponse struct {
	Result classify.Result `json:"result"`
	Card   advice.Card     `json:"card"`
}

// PostDetail is a post with its replies.
type PostDetail struct {
	Post      billboard.Post       `json:"post"`
	Responses []billboard.Response `json:"responses"`
}

// ValidationResponse lists the fields a submission failed on.
type ValidationResponse struct {
	Error  string                   `json:"error"`
	Fields []billboard.FieldProblem `json:"fields"`
}

// TrendsResponse carries the yearly series and headline figures.
type TrendsResponse struct {
	Trends   []analytics.YearTrend `json:"trends"`
	Summary  analytics.Summary     `json:"summary"`
	Fallback bool                  `json:"fallback"`
	Warning  string                `json:"warning,omitempty"`
}

// MaterialsResponse carries the latest year's material breakdown.
type MaterialsResponse struct {
	Year      string                    `json:"year"`
	Materials []analytics.MaterialTotal `json:"materials"`
	Fallback  bool                      `json:"fallback"`
	Warning   string                    `json:"warning,omitempty"`
}

// NicknameResponse carries a generated alias.
type NicknameResponse struct {
	Nickname string `json:"nickname"`
}
