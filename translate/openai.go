package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// pairModels maps each supported ordered language pair to the backend
// model serving it, mirroring the per-pair model layout of the upstream
// translation service.
var pairModels = map[string]string{
	"en-fr": "opus-mt-en-fr",
	"en-es": "opus-mt-en-es",
	"fr-en": "opus-mt-fr-en",
	"es-en": "opus-mt-es-en",
	"fr-es": "opus-mt-fr-es",
	"es-fr": "opus-mt-es-fr",
}

var languageNames = map[string]string{
	"en": "English",
	"fr": "French",
	"es": "Spanish",
}

// OpenAIFactory builds translators backed by an OpenAI-compatible
// chat-completions endpoint.
type OpenAIFactory struct {
	client *openai.Client
}

func NewOpenAIFactory(baseURL, apiKey string) *OpenAIFactory {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIFactory{client: openai.NewClientWithConfig(cfg)}
}

func (f *OpenAIFactory) New(source, target string) (Translator, error) {
	model, ok := pairModels[source+"-"+target]
	if !ok {
		return nil, ErrUnsupportedPair
	}
	return &openaiTranslator{
		client: f.client,
		model:  model,
		prompt: fmt.Sprintf(
			"You are a translation engine. Translate the user's message from %s to %s. Reply with the translation only.",
			languageNames[source], languageNames[target],
		),
	}, nil
}

type openaiTranslator struct {
	client *openai.Client
	model  string
	prompt string
}

func (t *openaiTranslator) Translate(ctx context.Context, text string) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: t.prompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("translation backend returned no choices")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", errors.New("translation backend returned empty text")
	}
	return translated, nil
}
