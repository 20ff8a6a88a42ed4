package anthropic

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

// Message is one turn of the assistant conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for the inventory consultant.
type Client interface {
	Advise(ctx context.Context, inventoryContext string, history []Message, input string) (string, error)
}

type apiClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &apiClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Advise answers a warehouse question grounded in the provided inventory
// snapshot. The snapshot is passed as serialized JSON so the model can
// quote concrete stock figures.
func (c *apiClient) Advise(ctx context.Context, inventoryContext string, history []Message, input string) (string, error) {
	systemPrompt := fmt.Sprintf(`You are a supply chain consultant for the ProStock warehouse system.

Current inventory data (JSON):
%s

Rules:
- Be professional, concise and data-driven.
- When asked about stock, refer specifically to the provided data.
- Offer actionable advice, e.g. which items to restock and why.
- Answer in the language the user writes in.`, inventoryContext)

	messages := append(append([]Message{}, history...), Message{Role: "user", Content: input})

	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  messages,
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return respBody.Content[0].Text, nil
}
