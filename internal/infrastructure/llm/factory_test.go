package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-gen-ai-api/internal/config"
	apperrors "book-gen-ai-api/pkg/errors"
)

func TestFactory_Get_UnsupportedProvider(t *testing.T) {
	f := NewFactory(nil)

	_, err := f.Get("mistral")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnsupportedProvider))
}

func TestFactory_Get_NotConfigured(t *testing.T) {
	f := NewFactory(nil)

	for _, name := range KnownProviders() {
		_, err := f.Get(name)
		require.Error(t, err, name)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeProviderNotConfigured), name)
	}
}

func TestFactory_Configure(t *testing.T) {
	f := NewFactory(&config.Config{
		LLM: config.LLMConfig{
			Providers: map[string]config.ProviderConfig{
				ProviderGemini: {Model: "gemini-pro"},
			},
		},
	})

	err := f.Configure(context.Background(), Credentials{
		GeminiKey:    "gemini-key",
		AnthropicKey: "anthropic-key",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{ProviderAnthropic, ProviderGemini}, f.Configured())

	client, err := f.Get(ProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, client.Name())

	// 未提供密钥的提供商保持未配置
	_, err = f.Get(ProviderOpenAI)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeProviderNotConfigured))
}

func TestFactory_Configure_NoKeys(t *testing.T) {
	f := NewFactory(nil)

	err := f.Configure(context.Background(), Credentials{})
	require.NoError(t, err)
	assert.Empty(t, f.Configured())
}

func TestFactory_Configure_Replace(t *testing.T) {
	f := NewFactory(nil)

	require.NoError(t, f.Configure(context.Background(), Credentials{OpenAIKey: "first"}))
	require.NoError(t, f.Configure(context.Background(), Credentials{OpenAIKey: "second"}))

	assert.Equal(t, []string{ProviderOpenAI}, f.Configured())
}

func TestIsKnownProvider(t *testing.T) {
	for _, name := range KnownProviders() {
		assert.True(t, IsKnownProvider(name))
	}
	assert.False(t, IsKnownProvider("llama"))
	assert.False(t, IsKnownProvider(""))
	assert.False(t, IsKnownProvider("OpenAI"))
}
