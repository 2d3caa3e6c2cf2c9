package storage

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDataURL(t *testing.T) {
	payload := []byte("fake image bytes")
	encoded := base64.StdEncoding.EncodeToString(payload)

	t.Run("well formed", func(t *testing.T) {
		contentType, data, err := ParseDataURL("data:image/png;base64," + encoded)
		assert.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, payload, data)
	})

	t.Run("missing mime falls back to octet-stream", func(t *testing.T) {
		contentType, data, err := ParseDataURL("data:;base64," + encoded)
		assert.NoError(t, err)
		assert.Equal(t, "application/octet-stream", contentType)
		assert.Equal(t, payload, data)
	})

	tests := []struct {
		name  string
		input string
	}{
		{name: "no data prefix", input: "http://example.com/a.png"},
		{name: "no comma", input: "data:image/png;base64"},
		{name: "not base64 encoded", input: "data:image/png," + encoded},
		{name: "invalid payload", input: "data:image/png;base64,@@@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseDataURL(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".jpg", extensionFor("something/else"))
}
