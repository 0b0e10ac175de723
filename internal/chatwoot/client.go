// internal/chatwoot/client.go
//
// Client for the Chatwoot conversation API. Used for the "interested" click
// path: post a message into the visitor's widget conversation and hand the
// conversation to the advisor's agent account.
package chatwoot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/autorunai/moto-backend/internal/config"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	accountID  string
}

func NewClient(cfg config.ChatwootConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		baseURL:    cfg.BaseURL,
		apiToken:   cfg.APIToken,
		accountID:  cfg.AccountID,
	}
}

// Configured reports whether the client can reach an instance at all.
// Without a base URL the chat hand-off degrades to WhatsApp links upstream.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiToken != ""
}

// SendMessage posts an outgoing message into a conversation. Outgoing means
// it appears as sent by the advisor side, which is how the interest summary
// is meant to read.
func (c *Client) SendMessage(ctx context.Context, conversationID int, content string, private bool) error {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d/messages",
		c.baseURL, c.accountID, conversationID)
	body := map[string]any{
		"content":      content,
		"message_type": "outgoing",
		"private":      private,
	}
	return c.post(ctx, http.MethodPost, endpoint, body)
}

// AssignConversation sets the conversation's assignee to a Chatwoot agent.
func (c *Client) AssignConversation(ctx context.Context, conversationID, agentID int) error {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d",
		c.baseURL, c.accountID, conversationID)
	return c.post(ctx, http.MethodPatch, endpoint, map[string]any{"assignee_id": agentID})
}

// SetCustomAttributes attaches structured context (moto, year, advisor) to
// the conversation for the agent view.
func (c *Client) SetCustomAttributes(ctx context.Context, conversationID int, attrs map[string]any) error {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d/custom_attributes",
		c.baseURL, c.accountID, conversationID)
	return c.post(ctx, http.MethodPost, endpoint, map[string]any{"custom_attributes": attrs})
}

func (c *Client) post(ctx context.Context, method, endpoint string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("chatwoot: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("chatwoot: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_access_token", c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chatwoot: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("chatwoot: unexpected status %d: %s", resp.StatusCode, raw)
	}
	return nil
}
