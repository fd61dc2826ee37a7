package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
)

// Reasons reported by MalformedResponseError for batch-level failures
const (
	ReasonNoArray     = "no array found"
	ReasonInvalidJSON = "invalid JSON"
	ReasonEmpty       = "empty"
)

// Field names of a generated question object
const (
	fieldQuestion     = "question"
	fieldOptions      = "options"
	fieldCorrectIndex = "correct_option_index"
	fieldDifficulty   = "difficulty"
	fieldPoints       = "points"
)

// openingFence matches a leading Markdown code fence with an optional language tag
var openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*")

// Parse extracts question drafts from free-form generation output.
//
// The batch is all-or-nothing: the first invalid element rejects the whole
// response with a *model.MalformedResponseError naming the element's 1-based
// position and every rule it violates. Numeric fields are clamped rather
// than rejected.
func Parse(raw string) ([]model.QuestionDraft, error) {
	text := stripCodeFences(raw)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < 0 || end < start {
		return nil, goerr.Wrap(model.NewMalformedResponse(ReasonNoArray), "failed to locate question array",
			goerr.V("response_length", len(raw)))
	}

	elements, err := decodeArray(text[start : end+1])
	if err != nil {
		return nil, goerr.Wrap(model.NewMalformedResponse(ReasonInvalidJSON), "failed to decode question array",
			goerr.V("cause", err.Error()))
	}
	if len(elements) == 0 {
		return nil, goerr.Wrap(model.NewMalformedResponse(ReasonEmpty), "question array is empty")
	}

	drafts := make([]model.QuestionDraft, 0, len(elements))
	for i, elem := range elements {
		draft, violations := parseElement(i, elem)
		if len(violations) > 0 {
			return nil, goerr.Wrap(model.NewMalformedElement(i+1, violations), "invalid question in response",
				goerr.V(model.ElementIndexKey, i+1))
		}
		drafts = append(drafts, draft)
	}

	return drafts, nil
}

// stripCodeFences removes a Markdown code fence wrapping the whole text.
// Fences inside the text are left alone.
func stripCodeFences(s string) string {
	text := strings.TrimSpace(s)
	text = openingFence.ReplaceAllString(text, "")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return text
}

func decodeArray(s string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var elements []any
	if err := dec.Decode(&elements); err != nil {
		return nil, err
	}

	// Anything after the array means the slice spanned more than one value
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after array")
	}

	return elements, nil
}

// parseElement validates one decoded element. It returns every violated
// rule so the caller can report them together.
func parseElement(pos int, elem any) (model.QuestionDraft, []string) {
	obj, ok := elem.(map[string]any)
	if !ok {
		return model.QuestionDraft{}, []string{"element is not an object"}
	}

	var violations []string

	questionText, v := validateQuestionText(obj)
	violations = append(violations, v...)

	options, v := validateOptions(obj)
	violations = append(violations, v...)

	correctIndex, v := validateCorrectIndex(obj)
	violations = append(violations, v...)

	if len(violations) > 0 {
		return model.QuestionDraft{}, violations
	}

	difficulty := types.Difficulty(pos + 1)
	if f, ok := numberValue(obj[fieldDifficulty]); ok {
		difficulty = types.Difficulty(clampToInt(f, int(types.MinDifficulty), int(types.MaxDifficulty)))
	}
	difficulty = difficulty.Clamp()

	points := difficulty.DefaultPoints()
	if f, ok := numberValue(obj[fieldPoints]); ok {
		points = types.Points(clampToInt(f, int(types.MinPoints), int(types.MaxPoints)))
	}
	points = points.Clamp()

	return model.QuestionDraft{
		QuestionText:       questionText,
		Options:            options,
		CorrectOptionIndex: correctIndex,
		CorrectAnswer:      options[correctIndex],
		Difficulty:         difficulty,
		Points:             points,
	}, nil
}

func validateQuestionText(obj map[string]any) (string, []string) {
	raw, exists := obj[fieldQuestion]
	if !exists || raw == nil {
		return "", []string{"question is missing"}
	}
	text, ok := raw.(string)
	if !ok {
		return "", []string{"question must be a string"}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", []string{"question is empty"}
	}
	return text, nil
}

func validateOptions(obj map[string]any) ([]string, []string) {
	raw, exists := obj[fieldOptions]
	if !exists || raw == nil {
		return nil, []string{"options is missing"}
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, []string{"options must be an array"}
	}

	var violations []string
	if len(items) != model.OptionCount {
		violations = append(violations,
			fmt.Sprintf("options must contain exactly %d entries (got %d)", model.OptionCount, len(items)))
	}

	options := make([]string, 0, len(items))
	allStrings := true
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			allStrings = false
			continue
		}
		options = append(options, s)
	}
	if !allStrings {
		violations = append(violations, "options must be strings")
	}

	if len(items) > 0 {
		last, ok := items[len(items)-1].(string)
		if !ok || last != model.SentinelOption {
			violations = append(violations,
				fmt.Sprintf("last option must be %q", model.SentinelOption))
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return options, nil
}

func validateCorrectIndex(obj map[string]any) (int, []string) {
	raw, exists := obj[fieldCorrectIndex]
	if !exists || raw == nil {
		return 0, []string{"correct_option_index is missing"}
	}
	f, ok := numberValue(raw)
	if !ok {
		return 0, []string{"correct_option_index must be a number"}
	}

	idx := math.Trunc(f)
	sentinelIndex := float64(model.OptionCount - 1)
	switch {
	case idx == sentinelIndex:
		return 0, []string{fmt.Sprintf("correct_option_index must not point at %q", model.SentinelOption)}
	case f < 0 || idx > sentinelIndex:
		return 0, []string{fmt.Sprintf("correct_option_index must be between 0 and %d (got %s)",
			model.OptionCount-2, strconv.FormatFloat(f, 'f', -1, 64))}
	}

	return int(idx), nil
}

// numberValue coerces a decoded JSON value into a float. Numeric strings
// are accepted since models sometimes quote numbers. Values beyond the
// float64 range become ±Inf so that clamping still applies.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		return parseNumber(n.String())
	case float64:
		return n, true
	case string:
		return parseNumber(strings.TrimSpace(n))
	default:
		return 0, false
	}
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// clampToInt truncates f toward zero and clamps it into [lo, hi]. Clamping
// happens in float space so huge values do not overflow.
func clampToInt(f float64, lo, hi int) int {
	f = math.Trunc(f)
	if f < float64(lo) {
		return lo
	}
	if f > float64(hi) {
		return hi
	}
	return int(f)
}

// compactJSON is used for log values of rejected responses
func compactJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return raw
	}
	return buf.String()
}
