// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: assistant/client.go
// Summary: Minimal Gemini generateContent client for chat replies and the
// daily quote.
// Notes: Every failure is folded into a fixed fallback string; callers never
// see an error.

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Fallback replies.
const (
	NoKeyReply     = "Please configure your API_KEY to use the AI assistant."
	ErrorReply     = "Sorry, I encountered an error connecting to the AI service."
	EmptyReply     = "I couldn't generate a response."
	NoKeyQuote     = "The future belongs to those who believe in the beauty of their dreams. - Eleanor Roosevelt"
	EmptyQuote     = "Every moment is a fresh beginning."
	ErrorQuote     = "Simplicity is the ultimate sophistication."
	quotePrompt    = "Generate a short, inspiring, philosophical quote about technology, future, or serenity. Max 20 words. Do not include the author."
	defaultModel   = "gemini-2.5-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// ErrNoAPIKey is returned by Generate when the client has no key.
var ErrNoAPIKey = errors.New("assistant: no API key configured")

// Role of a chat message.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn of a conversation.
type Message struct {
	Role string
	Text string
}

// Config configures a Client.
type Config struct {
	Endpoint     string
	Model        string
	APIKey       string
	SystemPrompt string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// Client talks to the generateContent endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a client. Missing fields take the stock values.
func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultBaseURL
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: hc}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one generateContent request and returns the concatenated
// text of the first candidate.
func (c *Client) Generate(ctx context.Context, turns []Message, system string) (string, error) {
	if !c.Configured() {
		return "", ErrNoAPIKey
	}
	req := generateRequest{}
	for _, m := range turns {
		req.Contents = append(req.Contents, content{Role: m.Role, Parts: []part{{Text: m.Text}}})
	}
	if system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", nil
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

// Chat answers message given the earlier turns.
func (c *Client) Chat(ctx context.Context, history []Message, message string) string {
	if !c.Configured() {
		return NoKeyReply
	}
	turns := append(append([]Message(nil), history...), Message{Role: RoleUser, Text: message})
	reply, err := c.Generate(ctx, turns, c.cfg.SystemPrompt)
	if err != nil {
		log.Printf("Assistant: Chat error: %v", err)
		return ErrorReply
	}
	if reply == "" {
		return EmptyReply
	}
	return reply
}

// DailyQuote returns a short generated quote.
func (c *Client) DailyQuote(ctx context.Context) string {
	if !c.Configured() {
		return NoKeyQuote
	}
	quote, err := c.Generate(ctx, []Message{{Role: RoleUser, Text: quotePrompt}}, "")
	if err != nil {
		log.Printf("Assistant: Failed to fetch quote: %v", err)
		return ErrorQuote
	}
	if quote == "" {
		return EmptyQuote
	}
	return quote
}
