package service

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	suffix := "-" + strconv.FormatInt(now.UnixMilli(), 10)

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "plain words", title: "Hello World", want: "hello-world" + suffix},
		{name: "punctuation collapses", title: "Go, Go... Go!", want: "go-go-go" + suffix},
		{name: "leading and trailing junk", title: "  ---What?!  ", want: "what" + suffix},
		{name: "digits survive", title: "Top 10 Tips", want: "top-10-tips" + suffix},
		{name: "no usable characters", title: "!!!", want: "post" + suffix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title, now))
		})
	}
}

func TestGenerateSlug_StableForSameInputs(t *testing.T) {
	now := time.Now()
	assert.Equal(t, GenerateSlug("Same Title", now), GenerateSlug("Same Title", now))
}

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty content still takes a minute", content: "", want: 1},
		{name: "one word", content: "hi", want: 1},
		{name: "exactly 200 words", content: strings.Repeat("word ", 200), want: 1},
		{name: "201 words rounds up", content: strings.Repeat("word ", 201), want: 2},
		{name: "450 words", content: strings.Repeat("word ", 450), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReadingTime(tt.content))
		})
	}
}

func TestExcerpt(t *testing.T) {
	short := strings.Repeat("a", 150)
	assert.Equal(t, short, Excerpt(short))

	long := strings.Repeat("b", 151)
	got := Excerpt(long)
	assert.Equal(t, strings.Repeat("b", 150)+"...", got)

	// Truncation counts runes, not bytes.
	multibyte := strings.Repeat("é", 151)
	assert.Equal(t, strings.Repeat("é", 150)+"...", Excerpt(multibyte))
}
