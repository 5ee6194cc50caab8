// Package tokens approximates how many model tokens a piece of text costs.
//
// The estimate is a cheap heuristic, not a tokenizer: each whitespace-delimited
// word counts as 0.75 tokens and each structural punctuation mark as one.
package tokens

import (
	"math"
	"strings"
)

const wordWeight = 0.75

// estimates the token cost of text; deterministic and monotonic under appending
func Estimate(text string) int {
	if text == "" {
		return 0
	}

	words := len(strings.Fields(text))
	symbols := 0

	for _, r := range text {
		switch r {
		case '{', '}', '(', ')', ';', ',', '[', ']':
			symbols++
		}
	}

	return int(math.Ceil(float64(words)*wordWeight + float64(symbols)))
}
