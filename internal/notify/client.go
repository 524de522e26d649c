package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Dispatcher is the capability consumed by the scheduler and announcer.
type Dispatcher interface {
	SendDirect(ctx context.Context, userID, title, body string) error
	PostChannel(ctx context.Context, channelID, title, body string) error
}

// Client delivers notifications through the chat-gateway webhook
type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
	stubMode   bool
}

// NewClient creates a new notification client with the given configuration
func NewClient(baseURL, secret string, stubMode bool) *Client {
	return &Client{
		baseURL:    baseURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		stubMode:   stubMode,
	}
}

// SendDirect delivers a private message to a user identity.
func (c *Client) SendDirect(ctx context.Context, userID, title, body string) error {
	msg := Message{UserID: userID, Title: title, Body: body}
	if err := c.post(ctx, "/dm", msg); err != nil {
		return &NotificationError{Recipient: userID, Err: err}
	}
	return nil
}

// PostChannel delivers a message to a channel identity.
func (c *Client) PostChannel(ctx context.Context, channelID, title, body string) error {
	msg := Message{ChannelID: channelID, Title: title, Body: body}
	if err := c.post(ctx, "/channel", msg); err != nil {
		return &NotificationError{Recipient: channelID, Err: err}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, msg Message) error {
	if c.stubMode {
		// Local development without a gateway: log instead of sending.
		slog.Info("stub notification",
			"path", path,
			"user_id", msg.UserID,
			"channel_id", msg.ChannelID,
			"title", msg.Title,
		)
		return nil
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Gateway-Secret", c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
