// Package request resolves raw CLI inputs into a validated completion request.
package request

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultModel is used when no model is given on the command line or in config.
const DefaultModel = "o3-pro"

// Temperature bounds accepted by the OpenAI API.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// ErrMissingQuery is returned when the query is absent or blank.
var ErrMissingQuery = errors.New("request: query is required")

// InvalidOptionError reports an option whose value failed validation.
type InvalidOptionError struct {
	Option string // Flag name (e.g. "reasoning-effort").
	Value  string // The offending value as given.
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("request: invalid --%s %q: %s", e.Option, e.Value, e.Reason)
}

// Effort is the reasoning effort level passed to reasoning models.
// The zero value means no preference and is omitted from the outgoing request.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// ParseEffort validates a reasoning effort value. An empty string parses
// to the zero Effort (no preference).
func ParseEffort(s string) (Effort, error) {
	switch Effort(s) {
	case "", EffortLow, EffortMedium, EffortHigh:
		return Effort(s), nil
	}
	return "", &InvalidOptionError{
		Option: "reasoning-effort",
		Value:  s,
		Reason: "must be one of low, medium, high",
	}
}

// Raw holds the unvalidated command-line inputs, all as strings so the
// resolver owns every parse error.
type Raw struct {
	Query       string
	Context     string // Literal text or a path to a file.
	Model       string
	Effort      string
	MaxTokens   string
	Temperature string
}

// Request is a validated, fully resolved completion request.
// Optional fields keep their zero value when the user gave no preference.
type Request struct {
	Query       string
	Context     string
	Model       string
	Effort      Effort
	MaxTokens   int      // 0 = unset.
	Temperature *float64 // nil = unset.
}

// Resolve validates raw inputs and produces a Request. It may stat and read
// the context file but performs no network activity.
func Resolve(raw Raw) (Request, error) {
	if strings.TrimSpace(raw.Query) == "" {
		return Request{}, ErrMissingQuery
	}

	req := Request{
		Query: raw.Query,
		Model: raw.Model,
	}

	if req.Model == "" {
		req.Model = DefaultModel
	}

	ctx, err := resolveContext(raw.Context)
	if err != nil {
		return Request{}, err
	}
	req.Context = ctx

	req.Effort, err = ParseEffort(raw.Effort)
	if err != nil {
		return Request{}, err
	}

	if raw.MaxTokens != "" {
		n, err := strconv.Atoi(raw.MaxTokens)
		if err != nil || n <= 0 {
			return Request{}, &InvalidOptionError{
				Option: "max-tokens",
				Value:  raw.MaxTokens,
				Reason: "must be a positive integer",
			}
		}
		req.MaxTokens = n
	}

	if raw.Temperature != "" {
		f, err := strconv.ParseFloat(raw.Temperature, 64)
		if err != nil || f < MinTemperature || f > MaxTemperature {
			return Request{}, &InvalidOptionError{
				Option: "temperature",
				Value:  raw.Temperature,
				Reason: fmt.Sprintf("must be a number between %g and %g", MinTemperature, MaxTemperature),
			}
		}
		req.Temperature = &f
	}

	return req, nil
}

// resolveContext interprets the --context value. A value naming an existing
// regular file resolves to that file's contents; anything else is used
// verbatim as context text. The existence check is explicit so that a
// non-path value never surfaces as a read error.
func resolveContext(val string) (string, error) {
	if val == "" {
		return "", nil
	}

	info, err := os.Stat(val)
	if err != nil || info.IsDir() {
		return val, nil
	}

	data, err := os.ReadFile(val)
	if err != nil {
		return "", fmt.Errorf("request: read context file %s: %w", val, err)
	}

	return string(data), nil
}
