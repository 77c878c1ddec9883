// Package line sends reply messages through the LINE Messaging API.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"kuritterweight/internal/domain"
)

// DefaultBaseURL is the production Messaging API host.
const DefaultBaseURL = "https://api.line.me"

const (
	replyPath = "/v2/bot/message/reply"
	tokenPath = "/v2/oauth/accessToken"
)

// ErrNoCredentials is returned when neither an access token nor a channel
// id and secret are configured.
var ErrNoCredentials = errors.New("line: no channel credentials configured")

// StatusError reports a non-2xx response from the Messaging API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("line: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("line: unexpected status %d: %s", e.Code, e.Body)
}

// Config holds the channel credentials. A channel id and secret take
// precedence over a long-lived AccessToken.
type Config struct {
	BaseURL       string
	AccessToken   string
	ChannelID     string
	ChannelSecret string
	Timeout       time.Duration
}

// Client implements domain.Notifier.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ domain.Notifier = (*Client)(nil)

// New creates a Client whose requests carry a bearer token obtained from the
// configured credentials.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})

	var hc *http.Client
	switch {
	case cfg.ChannelID != "" && cfg.ChannelSecret != "":
		cc := &clientcredentials.Config{
			ClientID:     cfg.ChannelID,
			ClientSecret: cfg.ChannelSecret,
			TokenURL:     base + tokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		hc = cc.Client(ctx)
	case cfg.AccessToken != "":
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		}))
	default:
		return nil, ErrNoCredentials
	}
	hc.Timeout = timeout

	return &Client{baseURL: base, http: hc}, nil
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

// Reply sends text as a single text message answering replyToken.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	body, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+replyPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("line reply: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
