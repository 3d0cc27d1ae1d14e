// Package classify runs the scan pipeline: upload the photo, prompt the model,
// and validate what comes back.
package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ecogenius/internal/bins"
	"ecogenius/internal/capture"
	"ecogenius/internal/logging"
	"ecogenius/internal/prompt"
	"ecogenius/internal/relay"
	"ecogenius/internal/services"
	"ecogenius/internal/services/llm"
)

// Request asks for classification of an already uploaded image.
type Request struct {
	ImageURL     string
	PromptText   string
	OutputSchema *prompt.Schema
}

// Result is the model's structured verdict.
type Result struct {
	ItemName           string        `json:"item_name"`
	Category           bins.Category `json:"category"`
	BinType            bins.Type     `json:"bin_type"`
	AlternativeBinType bins.Type     `json:"alternative_bin_type,omitempty"`
	// ConfidenceScore is passed through as reported (nominally 0-100).
	ConfidenceScore float64 `json:"confidence_score"`
	CO2SavedGrams   float64 `json:"co2_saved"`
	RecyclingTip    string  `json:"recycling_tip"`
	Explanation     string  `json:"explanation"`
	ImageURL        string  `json:"image_url,omitempty"`
}

// HasAlternative reports whether a distinct secondary bin was suggested.
func (r Result) HasAlternative() bool {
	alt := r.AlternativeBinType
	return alt != "" && alt != bins.None && alt != r.BinType
}

// SearchAdvice is the model's answer to a typed search.
type SearchAdvice struct {
	Name        string        `json:"name"`
	Category    bins.Category `json:"category"`
	BinType     bins.Type     `json:"bin_type"`
	Tip         string        `json:"tip"`
	Explanation string        `json:"explanation"`
}

// Uploader moves an image to the image host.
type Uploader interface {
	Upload(ctx context.Context, img capture.Image) (string, error)
}

// Completer sends one prompt to the model.
type Completer interface {
	Complete(ctx context.Context, req llm.Completion) (string, error)
}

// Service wires the pipeline stages.
type Service struct {
	uploader  Uploader
	completer Completer
	logger    *slog.Logger
}

// NewService builds a pipeline. uploader may be nil when only URL and search
// classification are needed.
func NewService(uploader Uploader, completer Completer, logger *slog.Logger) *Service {
	return &Service{
		uploader:  uploader,
		completer: completer,
		logger:    logging.NewComponentLogger(logger, "classify"),
	}
}

// ClassifyImage uploads img and classifies the hosted copy. The upload must
// succeed before the model is called.
func (s *Service) ClassifyImage(ctx context.Context, img capture.Image) (Result, error) {
	if s.uploader == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "classify", "upload", "no upload relay configured", nil)
	}
	ctx = services.WithOperation(ctx, "classify")
	logger := logging.WithContext(ctx, s.logger)

	started := time.Now()
	url, err := s.uploader.Upload(ctx, img)
	if err != nil {
		logger.Warn("image upload failed", logging.String("name", img.Name), logging.Error(err))
		return Result{}, err
	}
	logger.Debug("image uploaded", logging.String("url", url), logging.Duration("elapsed", time.Since(started)))

	return s.ClassifyURL(ctx, Request{
		ImageURL:     url,
		PromptText:   prompt.ImageClassification(),
		OutputSchema: prompt.ClassificationSchema(),
	})
}

// ClassifyURL classifies an image that is already hosted.
func (s *Service) ClassifyURL(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.ImageURL) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "classify", "request", "image url required", nil)
	}
	if req.PromptText == "" {
		req.PromptText = prompt.ImageClassification()
	}
	if req.OutputSchema == nil {
		req.OutputSchema = prompt.ClassificationSchema()
	}
	logger := logging.WithContext(ctx, s.logger)

	started := time.Now()
	content, err := s.completer.Complete(ctx, llm.Completion{
		Prompt:   prompt.WithJSONInstruction(req.PromptText, req.OutputSchema),
		ImageURL: req.ImageURL,
		JSONMode: true,
	})
	if err != nil {
		logger.Warn("classification request failed", logging.Error(err))
		return Result{}, err
	}

	var raw rawResult
	if err := llm.DecodeLLMJSON(content, &raw); err != nil {
		logger.Warn("classification reply malformed", logging.Error(err))
		return Result{}, err
	}
	result := raw.normalize()
	result.ImageURL = req.ImageURL
	if err := validate(result, req.OutputSchema); err != nil {
		logger.Warn("classification reply incomplete", logging.Error(err))
		return Result{}, err
	}

	logger.Info("item classified",
		logging.String("item", result.ItemName),
		logging.String("bin", string(result.BinType)),
		logging.Float64("confidence", result.ConfidenceScore),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// SearchAdvice asks the model about a typed search term (text only).
func (s *Service) SearchAdvice(ctx context.Context, term string) (SearchAdvice, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return SearchAdvice{}, services.Wrap(services.ErrValidation, "classify", "search", "search term required", nil)
	}
	ctx = services.WithOperation(ctx, "search")
	content, err := s.completer.Complete(ctx, llm.Completion{
		Prompt:   prompt.TextSearch(term),
		JSONMode: true,
	})
	if err != nil {
		return SearchAdvice{}, err
	}
	var advice SearchAdvice
	if err := llm.DecodeLLMJSON(content, &advice); err != nil {
		return SearchAdvice{}, err
	}
	advice.Name = strings.TrimSpace(advice.Name)
	if advice.Name == "" {
		advice.Name = term
	}
	advice.Category = bins.ParseCategory(string(advice.Category))
	advice.BinType = bins.ParseType(string(advice.BinType))
	advice.Tip = strings.TrimSpace(advice.Tip)
	advice.Explanation = strings.TrimSpace(advice.Explanation)
	return advice, nil
}

// rawResult tolerates null and missing fields in model output.
type rawResult struct {
	ItemName           *string  `json:"item_name"`
	Category           *string  `json:"category"`
	BinType            *string  `json:"bin_type"`
	AlternativeBinType *string  `json:"alternative_bin_type"`
	ConfidenceScore    *float64 `json:"confidence_score"`
	CO2Saved           *float64 `json:"co2_saved"`
	RecyclingTip       *string  `json:"recycling_tip"`
	Explanation        *string  `json:"explanation"`
}

func (r rawResult) normalize() Result {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return strings.TrimSpace(*p)
	}
	out := Result{
		ItemName:     str(r.ItemName),
		Category:     bins.ParseCategory(str(r.Category)),
		BinType:      bins.ParseType(str(r.BinType)),
		RecyclingTip: str(r.RecyclingTip),
		Explanation:  str(r.Explanation),
	}
	if alt := bins.ParseType(str(r.AlternativeBinType)); alt != "" && alt != "null" {
		out.AlternativeBinType = alt
	}
	if r.ConfidenceScore != nil {
		out.ConfidenceScore = *r.ConfidenceScore
	}
	if r.CO2Saved != nil && *r.CO2Saved > 0 {
		out.CO2SavedGrams = *r.CO2Saved
	}
	return out
}

// validate enforces the schema's required subset. Enum membership is not
// enforced here; the renderer handles unknown bins with a fallback card.
func validate(r Result, schema *prompt.Schema) error {
	var missing []string
	check := func(field string, empty bool) {
		if empty && schema.IsRequired(field) {
			missing = append(missing, field)
		}
	}
	check("item_name", r.ItemName == "")
	check("category", r.Category == "")
	check("bin_type", r.BinType == "")
	check("recycling_tip", r.RecyclingTip == "")
	check("explanation", r.Explanation == "")
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", llm.ErrMalformedResponse, strings.Join(missing, ", "))
	}
	return nil
}

// UserMessage maps any pipeline error to the text shown to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var capErr *capture.Error
	if errors.As(err, &capErr) {
		return capErr.UserMessage()
	}
	var upErr *relay.UploadError
	if errors.As(err, &upErr) {
		return relay.UserMessage
	}
	if errors.Is(err, services.ErrValidation) {
		return "Please provide an image to analyze."
	}
	return llm.UserMessage(err)
}
