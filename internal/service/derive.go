package service

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// wordsPerMinute is the reading rate behind the reading-time estimate.
const wordsPerMinute = 200

// excerptLength is how much of the content the list views show.
const excerptLength = 150

// GenerateSlug derives a URL-safe slug from a title and disambiguates it
// with the creation timestamp. It is computed once per post and never
// regenerated, so links stay stable across title edits.
func GenerateSlug(title string, now time.Time) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "post"
	}
	return slug + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// EstimateReadingTime returns the reading time in whole minutes for the
// given content, never less than one.
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Excerpt returns the first excerptLength characters of the content with an
// ellipsis when truncated.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}
