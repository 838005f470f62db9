package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestTags(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"response": "keywords: goblet, gold\ncategory: Tableware",
		})
	}))
	defer srv.Close()

	tagger := NewOllamaTagger(srv.URL, "moondream")
	sug, err := tagger.SuggestTags(context.Background(), bytes.NewReader([]byte("img")), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "/api/generate", gotPath)
	assert.Equal(t, "moondream", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"])
	images, ok := gotBody["images"].([]any)
	require.True(t, ok)
	assert.Len(t, images, 1)

	assert.Equal(t, []string{"goblet", "gold"}, sug.Keywords)
	assert.Equal(t, "Tableware", sug.Category)
}

func TestSuggestTagsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tagger := NewOllamaTagger(srv.URL, "moondream")
	_, err := tagger.SuggestTags(context.Background(), bytes.NewReader([]byte("img")), "image/jpeg")
	assert.Error(t, err)
}
