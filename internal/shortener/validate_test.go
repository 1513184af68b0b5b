package shortener_test

import (
	"testing"

	"github.com/serroba/shortcode/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		hostURL   string
		wantField string
		wantMsg   string
	}{
		{
			name:      "empty url",
			url:       "",
			hostURL:   "https://short.ly",
			wantField: shortener.FieldURL,
			wantMsg:   "Url is required",
		},
		{
			name:      "url is not a url",
			url:       "not a url",
			hostURL:   "https://short.ly",
			wantField: shortener.FieldURL,
			wantMsg:   "Bad URL provided",
		},
		{
			name:      "relative url",
			url:       "/very/long/path",
			hostURL:   "https://short.ly",
			wantField: shortener.FieldURL,
			wantMsg:   "Bad URL provided",
		},
		{
			name:      "host url is not a url",
			url:       "https://example.com",
			hostURL:   "not a url",
			wantField: shortener.FieldHostURL,
			wantMsg:   "Error handling host URL",
		},
		{
			name:      "empty host url",
			url:       "https://example.com",
			hostURL:   "",
			wantField: shortener.FieldHostURL,
			wantMsg:   "Error handling host URL",
		},
		{
			name:      "url is checked before host url",
			url:       "",
			hostURL:   "not a url",
			wantField: shortener.FieldURL,
			wantMsg:   "Url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := shortener.Validate(tt.url, tt.hostURL)

			require.ErrorIs(t, err, shortener.ErrValidation)

			var vErr *shortener.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantMsg, vErr.Message)
		})
	}
}

func TestValidate_AcceptsAbsoluteURLs(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/very/long/path",
		"http://example.com?q=1#frag",
		"https://sub.example.com:8443/a/b",
	}

	for _, u := range urls {
		assert.NoError(t, shortener.Validate(u, "https://short.ly"), u)
	}

	assert.NoError(t, shortener.Validate("https://example.com", "http://localhost:8888"))
}
