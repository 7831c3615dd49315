// SPDX-License-Identifier: Apache-2.0

// Package indicator scores a subject's normalized metadata against the RDA
// FAIR compliance indicators. Each indicator is an independently invocable
// rule producing a 0-100 score plus human-readable justifications.
package indicator

// Message is one justification line of an indicator result, carrying the
// points the described check contributed.
type Message struct {
	Message string  `json:"message"`
	Points  float64 `json:"points"`
}

// Result is the outcome of one indicator. Points is always in [0, 100];
// every invocation yields a well-formed Result even when the rule faulted.
type Result struct {
	Points   float64   `json:"points"`
	Messages []Message `json:"messages"`
}

// single builds a Result whose single message carries the result points.
func single(points float64, message string) Result {
	return Result{
		Points:   points,
		Messages: []Message{{Message: message, Points: points}},
	}
}
