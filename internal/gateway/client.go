// Package gateway provides a client for the fiscal operator HTTP API.
// Documents are registered per group code, then their fiscalization
// reports are polled by the identifier returned at registration.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fiscaldoc/fiscaldoc/internal/model"
)

// Operation is a fiscal registration endpoint.
type Operation string

const (
	OperationSell           Operation = "sell"
	OperationSellRefund     Operation = "sell_refund"
	OperationBuy            Operation = "buy"
	OperationBuyRefund      Operation = "buy_refund"
	OperationSellCorrection Operation = "sell_correction"
	OperationBuyCorrection  Operation = "buy_correction"
)

func (o Operation) correction() bool {
	return o == OperationSellCorrection || o == OperationBuyCorrection
}

// Valid reports whether the operation is a known registration endpoint.
func (o Operation) Valid() bool {
	switch o {
	case OperationSell, OperationSellRefund, OperationBuy, OperationBuyRefund,
		OperationSellCorrection, OperationBuyCorrection:
		return true
	}
	return false
}

// RemoteError is a failure reported by the fiscal operator.
type RemoteError struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("operator error %d: %s", e.Code, e.Text)
}

// Client is the fiscal operator API client.
type Client struct {
	baseURL     string
	login       string
	password    string
	groupCode   string
	callbackURL string
	httpClient  *http.Client

	token string
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCallbackURL sets the URL the operator calls back once a document
// is fiscalized.
func WithCallbackURL(url string) ClientOption {
	return func(c *Client) {
		c.callbackURL = url
	}
}

// NewClient creates a new fiscal operator client
func NewClient(baseURL, login, password, groupCode string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   baseURL,
		login:     login,
		password:  password,
		groupCode: groupCode,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type tokenRequest struct {
	Login    string `json:"login"`
	Password string `json:"pass"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	Error *RemoteError `json:"error"`
}

// Authenticate exchanges the login and password for a session token.
// Register and Report call it automatically when no token is held.
func (c *Client) Authenticate(ctx context.Context) error {
	jsonBody, err := json.Marshal(tokenRequest{Login: c.login, Password: c.password})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/getToken", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != nil {
		return result.Error
	}
	if result.Token == "" {
		return fmt.Errorf("authentication returned no token (status %d)", resp.StatusCode)
	}

	c.token = result.Token
	return nil
}

type serviceBlock struct {
	CallbackURL string `json:"callback_url,omitempty"`
}

type registerEnvelope struct {
	ExternalID string          `json:"external_id"`
	Receipt    json.RawMessage `json:"receipt,omitempty"`
	Correction json.RawMessage `json:"correction,omitempty"`
	Service    *serviceBlock   `json:"service,omitempty"`
	Timestamp  string          `json:"timestamp"`
}

// RegisterResponse identifies a registered document at the operator.
type RegisterResponse struct {
	UUID     string       `json:"uuid"`
	Status   string       `json:"status"`
	Error    *RemoteError `json:"error"`
	External string       `json:"external_id"`
}

// Register submits a serialized document under the given operation.
// An empty externalID gets a generated UUID.
func (c *Client) Register(ctx context.Context, op Operation, doc model.Document, externalID string) (*RegisterResponse, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	if op.correction() {
		if _, ok := doc.(*model.Correction); !ok {
			return nil, fmt.Errorf("operation %s requires a correction document", op)
		}
	} else {
		if _, ok := doc.(*model.Receipt); !ok {
			return nil, fmt.Errorf("operation %s requires a receipt document", op)
		}
	}

	body, err := doc.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}

	if externalID == "" {
		externalID = uuid.NewString()
	}
	env := registerEnvelope{
		ExternalID: externalID,
		Timestamp:  time.Now().Format("02.01.2006 15:04:05"),
	}
	if op.correction() {
		env.Correction = body
	} else {
		env.Receipt = body
	}
	if c.callbackURL != "" {
		env.Service = &serviceBlock{CallbackURL: c.callbackURL}
	}

	var result RegisterResponse
	if err := c.do(ctx, "POST", fmt.Sprintf("/%s/%s", c.groupCode, op), env, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &result, nil
}

// Report holds the fiscalization outcome of a registered document.
type Report struct {
	UUID      string          `json:"uuid"`
	Status    string          `json:"status"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Error     *RemoteError    `json:"error"`
	Timestamp string          `json:"timestamp"`
}

// Done reports whether fiscalization has finished.
func (r *Report) Done() bool {
	return r.Status == "done"
}

// GetReport fetches the current fiscalization state of a document.
func (c *Client) GetReport(ctx context.Context, documentUUID string) (*Report, error) {
	var result Report
	if err := c.do(ctx, "GET", fmt.Sprintf("/%s/report/%s", c.groupCode, documentUUID), nil, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &result, nil
}

// WaitReport polls until the document is fiscalized, the attempts run
// out, or the context is canceled.
func (c *Client) WaitReport(ctx context.Context, documentUUID string, attempts int, delay time.Duration) (*Report, error) {
	var last *Report
	for i := 0; i < attempts; i++ {
		report, err := c.GetReport(ctx, documentUUID)
		if err != nil {
			return nil, err
		}
		if report.Done() {
			return report, nil
		}
		last = report

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-time.After(delay):
		}
	}
	return last, fmt.Errorf("document %s not fiscalized after %d attempts", documentUUID, attempts)
}

func (c *Client) do(ctx context.Context, method, path string, body, into interface{}) error {
	if c.token == "" {
		if err := c.Authenticate(ctx); err != nil {
			return err
		}
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s (status %d)", string(raw), resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
