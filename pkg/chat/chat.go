// Package chat sends assembled prompts to a chat model and returns its reply.
package chat

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Completer maps a prompt to generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelInfo() string
}

// DefaultTemperature matches the sampling temperature the service clients
// have historically defaulted to for question answering.
const DefaultTemperature = 0.7

// AzureChat uses an Azure OpenAI chat deployment.
type AzureChat struct {
	client      *openai.Client
	deployment  string
	temperature float32
}

// NewAzureChat creates a completer for the given deployment.
func NewAzureChat(client *openai.Client, deployment string) (*AzureChat, error) {
	if client == nil {
		return nil, errors.New("openai client is nil")
	}
	if deployment == "" {
		return nil, errors.New("chat deployment is empty")
	}
	return &AzureChat{
		client:      client,
		deployment:  deployment,
		temperature: DefaultTemperature,
	}, nil
}

// Complete sends prompt as a single user message and returns the first
// choice verbatim.
func (c *AzureChat) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.deployment,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("azure chat completion (%s): %w", c.deployment, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("azure chat completion (%s): no choices in response", c.deployment)
	}
	return resp.Choices[0].Message.Content, nil
}

// ModelInfo returns model information.
func (c *AzureChat) ModelInfo() string {
	return "azure-" + c.deployment
}

// EchoCompleter returns the prompt unchanged. It lets the whole pipeline run
// without a chat service, showing exactly what would have been sent.
type EchoCompleter struct{}

// Complete returns prompt.
func (EchoCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return prompt, nil
}

// ModelInfo returns model information.
func (EchoCompleter) ModelInfo() string { return "echo" }
