package extract

import (
	"strings"
	"unicode"
)

// lookupQuery decides whether the message is a deterministic contact lookup
// and isolates the name to search for. The trigger vocabulary is a blunt
// keyword heuristic inherited as a latency optimization; when no name can be
// isolated the fast path is skipped rather than guessed.
func lookupQuery(message string, keywords []string) (string, bool) {
	lower := strings.ToLower(message)
	triggered := false
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			triggered = true
			break
		}
	}
	if !triggered {
		return "", false
	}

	name := isolateName(message, keywords)
	return name, name != ""
}

// isolateName returns the longest run of capitalized words, preferring runs
// that do not open the message (sentence case makes the first word a weak
// signal). Possessive suffixes and surrounding punctuation are stripped, and
// the trigger keywords themselves never join a run.
func isolateName(message string, keywords []string) string {
	skip := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		skip[strings.ToLower(kw)] = true
	}

	var runs [][]string
	var starts []int
	var current []string
	currentStart := -1

	for i, field := range strings.Fields(message) {
		word := cleanWord(field)
		if word != "" && isCapitalized(word) && !skip[strings.ToLower(word)] {
			if current == nil {
				currentStart = i
			}
			current = append(current, word)
			continue
		}
		if current != nil {
			runs = append(runs, current)
			starts = append(starts, currentStart)
			current = nil
		}
	}
	if current != nil {
		runs = append(runs, current)
		starts = append(starts, currentStart)
	}

	best := -1
	for i := range runs {
		if best == -1 {
			best = i
			continue
		}
		if len(runs[i]) > len(runs[best]) {
			best = i
			continue
		}
		// Tie: prefer a run that does not start the message.
		if len(runs[i]) == len(runs[best]) && starts[best] == 0 && starts[i] > 0 {
			best = i
		}
	}
	if best == -1 {
		return ""
	}
	return strings.Join(runs[best], " ")
}

func cleanWord(field string) string {
	word := strings.TrimFunc(field, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	word = strings.TrimSuffix(word, "'s")
	word = strings.TrimSuffix(word, "’s")
	return word
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}
