package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	KindRateLimit ErrorKind = "rate_limit"
	KindAuth      ErrorKind = "auth"
	KindQuota     ErrorKind = "quota"
	KindGeneric   ErrorKind = "generic"
)

// Provider error codes found in OpenAI-style error bodies.
const (
	codeRateLimitExceeded = "rate_limit_exceeded"
	codeInvalidAPIKey     = "invalid_api_key"
	codeInsufficientQuota = "insufficient_quota"
)

// ErrMalformedResponse reports a reply that does not contain a usable JSON object.
var ErrMalformedResponse = errors.New("llm: malformed response")

// APIError is a failed classification API call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("llm request: ")
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": http %d", e.StatusCode)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// newStatusError classifies a failed response from its status and body. The
// body code wins over the status because providers report exhausted quota as
// HTTP 429.
func newStatusError(status int, body []byte) *APIError {
	code := gjson.GetBytes(body, "error.code").String()
	if code == "" {
		code = gjson.GetBytes(body, "error.type").String()
	}
	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = summarizePayloadSnippet(string(body))
	}
	return &APIError{
		Kind:       classify(status, code),
		StatusCode: status,
		Code:       code,
		Message:    message,
	}
}

func classify(status int, code string) ErrorKind {
	switch code {
	case codeInsufficientQuota:
		return KindQuota
	case codeRateLimitExceeded:
		return KindRateLimit
	case codeInvalidAPIKey:
		return KindAuth
	}
	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	default:
		return KindGeneric
	}
}

// User-facing messages for classification failures.
const (
	MessageRateLimit = "Too many requests. Please wait a moment and try again."
	MessageAuth      = "API configuration error. Please check your settings."
	MessageQuota     = "API quota exceeded. Please check your OpenAI account."
	MessageMalformed = "AI returned invalid format."
	MessageGeneric   = "Failed to analyze image. Please try again."
)

// UserMessage maps a classification error to the text shown to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrMalformedResponse) {
		return MessageMalformed
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindRateLimit:
			return MessageRateLimit
		case KindAuth:
			return MessageAuth
		case KindQuota:
			return MessageQuota
		}
	}
	return MessageGeneric
}

// IsCanceled reports whether err stems from context cancellation rather than the provider.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
