// Package search implements the recycling search guide: a built-in table
// with an AI fallback for items the table does not know.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ecogenius/internal/classify"
	"ecogenius/internal/logging"
)

// FallbackMessage is shown when the AI fallback fails.
const FallbackMessage = "Sorry, the Eco-AI couldn't find information for that item right now."

// FallbackError reports a failed AI lookup.
type FallbackError struct {
	Term string
	Err  error
}

func (e *FallbackError) Error() string {
	if e.Err == nil {
		return "search fallback failed for " + e.Term
	}
	return "search fallback failed for " + e.Term + ": " + e.Err.Error()
}

func (e *FallbackError) Unwrap() error { return e.Err }

// UserMessage returns FallbackMessage.
func (e *FallbackError) UserMessage() string { return FallbackMessage }

// Advisor answers a free-text question about an item.
type Advisor interface {
	SearchAdvice(ctx context.Context, term string) (classify.SearchAdvice, error)
}

// Results holds the items to display and where they came from.
type Results struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Items    []Item `json:"items"`
	// AI is set when Items came from the fallback rather than the table.
	AI bool `json:"ai"`
}

// Guide searches the table and falls back to the advisor.
type Guide struct {
	items   []Item
	advisor Advisor
	logger  *slog.Logger
}

// NewGuide builds a guide over the built-in table. advisor may be nil, which
// disables the fallback.
func NewGuide(advisor Advisor, logger *slog.Logger) *Guide {
	return &Guide{
		items:   Items,
		advisor: advisor,
		logger:  logging.NewComponentLogger(logger, "search"),
	}
}

// Lookup matches term case-insensitively against item names, restricted to
// category unless it is empty or "all".
func (g *Guide) Lookup(term, category string) []Item {
	needle := strings.ToLower(strings.TrimSpace(term))
	category = strings.ToLower(strings.TrimSpace(category))
	matches := make([]Item, 0, len(g.items))
	for _, item := range g.items {
		if !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		if category != "" && category != AllCategories && string(item.Category) != category {
			continue
		}
		matches = append(matches, item)
	}
	return matches
}

// Search returns local matches, or asks the advisor when a non-empty term has
// none. A failed fallback is returned as *FallbackError.
func (g *Guide) Search(ctx context.Context, term, category string) (Results, error) {
	term = strings.TrimSpace(term)
	res := Results{Term: term, Category: category, Items: g.Lookup(term, category)}
	if len(res.Items) > 0 || term == "" {
		return res, nil
	}
	if g.advisor == nil {
		return res, &FallbackError{Term: term, Err: errors.New("no advisor configured")}
	}

	logging.WithContext(ctx, g.logger).Debug("no local match, asking advisor", logging.String("term", term))
	advice, err := g.advisor.SearchAdvice(ctx, term)
	if err != nil {
		logging.WithContext(ctx, g.logger).Warn("search fallback failed",
			logging.String("term", term),
			logging.Error(err),
		)
		return res, &FallbackError{Term: term, Err: err}
	}
	res.Items = []Item{{
		Name:        advice.Name,
		Category:    advice.Category,
		BinType:     advice.BinType,
		Tip:         advice.Tip,
		Explanation: advice.Explanation,
	}}
	res.AI = true
	return res, nil
}
