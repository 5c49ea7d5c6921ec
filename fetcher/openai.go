package fetcher

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAI implements Enricher with a chat completion. The prompt template is
// read from disk on every call, so it can be edited between videos.
type OpenAI struct {
	client     *openai.Client
	model      string
	promptFile string
	language   string
}

func NewOpenAI(apiKey, model, promptFile, language string) *OpenAI {
	return &OpenAI{
		client:     openai.NewClient(apiKey),
		model:      model,
		promptFile: promptFile,
		language:   language,
	}
}

func (o *OpenAI) Generate(videoURL string) (string, error) {
	prompt, err := o.renderPrompt(videoURL)
	if err != nil {
		return "", err
	}

	resp, err := o.client.CreateChatCompletion(
		context.Background(),
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to generate transcript: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response for %s", videoURL)
	}

	return resp.Choices[len(resp.Choices)-1].Message.Content, nil
}

func (o *OpenAI) renderPrompt(videoURL string) (string, error) {
	raw, err := os.ReadFile(o.promptFile)
	if err != nil {
		return "", fmt.Errorf("read prompt template: %w", err)
	}

	prompt := strings.ReplaceAll(string(raw), "{video_url}", videoURL)
	prompt = strings.ReplaceAll(prompt, "{language}", o.language)

	return prompt, nil
}
