// Package llm calls an OpenAI-compatible chat completion API for the three
// language tasks the recommender needs: intent classification, tag
// extraction, and review summarization.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"game_mate/config"
	"game_mate/logger"
)

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Client is a thin chat-completions caller.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

// New creates an LLM client from the configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: time.Duration(cfg.OpenAI.TimeoutSec) * time.Second},
		baseURL:     cfg.OpenAI.BaseURL,
		apiKey:      cfg.OpenAI.APIKey,
		model:       cfg.OpenAI.Model,
		temperature: cfg.OpenAI.Temperature,
	}
}

// complete sends one system+user exchange and returns the raw assistant text.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(reqJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion failed: %d - %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	logger.Debug("chat completion finished",
		"model", c.model,
		"tokens_total", chatResp.Usage.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds())

	return chatResp.Choices[0].Message.Content, nil
}

// extractJSONFromText pulls the JSON object out of a model reply that may
// wrap it in prose or a code fence.
func extractJSONFromText(text string) string {
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx >= 0 && endIdx > startIdx {
		return text[startIdx : endIdx+1]
	}

	startMarker := "```json"
	endMarker := "```"
	startIdx = strings.Index(text, startMarker)
	if startIdx >= 0 {
		startIdx += len(startMarker)
		if endIdx := strings.Index(text[startIdx:], endMarker); endIdx > 0 {
			return strings.TrimSpace(text[startIdx : startIdx+endIdx])
		}
	}
	return text
}

// extractIntList parses a model reply expected to contain a JSON array of
// integers, tolerating surrounding prose or a code fence.
func extractIntList(text string) ([]int64, error) {
	candidate := text
	startIdx := strings.Index(text, "[")
	endIdx := strings.LastIndex(text, "]")
	if startIdx >= 0 && endIdx > startIdx {
		candidate = text[startIdx : endIdx+1]
	}

	var ids []int64
	if err := json.Unmarshal([]byte(candidate), &ids); err != nil {
		return nil, fmt.Errorf("parse id list %q: %w", text, err)
	}
	return ids, nil
}
