package audio

import (
	"fmt"
	"math"
)

// EstimateDuration returns the human-facing duration label for a script,
// rounded up to whole minutes in "M:00" form. It shares the chars-per-word
// base with SpeechSeconds so display labels and placeholder sizing are
// derived from the same estimate.
func EstimateDuration(text string) string {
	words := float64(len(text)) / charsPerWord
	minutes := int(math.Ceil(words / wordsPerMinute))
	return fmt.Sprintf("%d:00", minutes)
}
