package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "book-gen-ai-api/pkg/errors"
)

func TestNewGeminiClient_EmptyKey(t *testing.T) {
	_, err := NewGeminiClient(GeminiOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeProviderNotConfigured))
}

func TestGeminiClient_Generate(t *testing.T) {
	var gotPath string
	var gotReq geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []struct {
				Content geminiContent `json:"content"`
			}{
				{Content: geminiContent{Parts: []geminiPart{{Text: "generated outline"}}}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewGeminiClient(GeminiOptions{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "write an outline", 4000)
	require.NoError(t, err)
	assert.Equal(t, "generated outline", text)
	assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", gotPath)
	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 1)
	assert.Equal(t, "write an outline", gotReq.Contents[0].Parts[0].Text)
}

func TestGeminiClient_Generate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewGeminiClient(GeminiOptions{APIKey: "bad-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt", 4000)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeGenerationFailed))
}

func TestGeminiClient_Generate_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer srv.Close()

	client, err := NewGeminiClient(GeminiOptions{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt", 4000)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeGenerationFailed))
}

func TestGeminiClient_Defaults(t *testing.T) {
	client, err := NewGeminiClient(GeminiOptions{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, defaultGeminiBaseURL, client.baseURL)
	assert.Equal(t, defaultGeminiModel, client.model)
	assert.Equal(t, ProviderGemini, client.Name())
}
