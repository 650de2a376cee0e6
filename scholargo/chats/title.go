package chats

import (
	"regexp"
	"strings"
)

const (
	titleWords      = 3
	titleMinWordLen = 3
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// derives a short title from the first message of a session
func SmartTitle(text string) string {
	words := strings.Fields(nonWord.ReplaceAllString(text, ""))
	seen := make(map[string]bool, len(words))
	picked := make([]string, 0, titleWords)

	for _, w := range words {
		if len(w) < titleMinWordLen || seen[w] {
			continue
		}

		seen[w] = true
		picked = append(picked, strings.ToUpper(w[:1])+w[1:])

		if len(picked) == titleWords {
			break
		}
	}

	if len(picked) == 0 {
		return DefaultTitle
	}

	return strings.Join(picked, " ")
}
