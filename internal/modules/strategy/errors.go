package strategy

import (
	"errors"
	"fmt"
)

// ErrorKind classifies evaluation failures.
type ErrorKind string

const (
	// KindInvalidInput is returned for negative shares, prices or costs.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindComputation is returned when evaluation fails unexpectedly.
	KindComputation ErrorKind = "computation"
)

// EvaluationError is the typed failure of Evaluate.
type EvaluationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("strategy %s: %s", e.Kind, e.Message)
}

// IsKind reports whether err is an EvaluationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var evalErr *EvaluationError
	return errors.As(err, &evalErr) && evalErr.Kind == kind
}

// Degraded builds the danger-tagged fallback a page or API can render in
// place of a real recommendation.
func Degraded(code string, err error) Recommendation {
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		evalErr = &EvaluationError{Kind: KindComputation, Message: err.Error()}
	}

	return Recommendation{
		Code: code,
		Action: Action{
			Label:      "Strategy calculation error",
			Suggestion: "Error: " + evalErr.Message,
			Tone:       ToneDanger,
		},
		ActionSteps: []string{},
		Error:       evalErr,
	}
}
