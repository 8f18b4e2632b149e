// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the Gemini generateContent endpoint.
//
// One call per rewrite request: no retries, no caching. Every outcome is
// classified into a model.Result so callers never handle raw HTTP errors.
//
// CLOUD: The API key is never logged; a SHA-256 fingerprint is used instead.
package gemini

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/model"
)

// Configuration constants for the Gemini API.
const (
	// DefaultBaseURL is the base URL for the Generative Language API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-1.5-flash"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 4 * 1024 * 1024
)

// statusResourceExhausted is the gRPC status Google returns for quota errors.
const statusResourceExhausted = "RESOURCE_EXHAUSTED"

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

// generateRequest is the body of a generateContent call.
type generateRequest struct {
	Contents []content `json:"contents"`
}

// generateResponse is the subset of the response the client reads.
type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

// apiError is the error object Google APIs return.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// APIError is a provider error that was not a rate limit.
type APIError struct {
	Code    int
	Status  string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini error [%s] (HTTP %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gemini error (HTTP %d): %s", e.Code, e.Message)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client calls the generateContent endpoint.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client

	calls atomic.Int64
}

// NewClient creates a client with default settings.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		timeout:    DefaultTimeout,
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(u string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

// WithModel sets the model name.
func (c *Client) WithModel(name string) *Client {
	c.SetModel(name)
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.SetTimeout(timeout)
	return c
}

// WithHTTPClient replaces the HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// SetModel changes the model used for subsequent requests.
func (c *Client) SetModel(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = name
}

// Model returns the current model name.
func (c *Client) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetTimeout changes the per-request timeout. Non-positive values are ignored.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
}

// Calls returns how many HTTP requests the client has issued.
func (c *Client) Calls() int64 {
	return c.calls.Load()
}

// KeyFingerprint returns a short fingerprint of a credential for logging.
// SECURITY: Never exposes any part of the key.
func KeyFingerprint(credential string) string {
	if credential == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(h[:4])
}

// =============================================================================
// REQUEST
// =============================================================================

// RequestRewrite sends prompt to the model and classifies the outcome.
// A blank credential fails with MissingCredential without touching the network.
func (c *Client) RequestRewrite(ctx context.Context, prompt, credential string) model.Result {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return model.Failure(model.ErrorKindMissingCredential, "")
	}
	if strings.TrimSpace(prompt) == "" {
		return model.Failure(model.ErrorKindEmptyInput, "")
	}

	c.mu.RLock()
	baseURL, modelName, timeout, hc := c.baseURL, c.model, c.timeout, c.httpClient
	c.mu.RUnlock()

	log := logging.For("gemini")

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return model.Failure(model.ErrorKindNetworkFailure, fmt.Sprintf("failed to marshal request: %v", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		baseURL, url.PathEscape(modelName), url.QueryEscape(credential))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.Failure(model.ErrorKindNetworkFailure, fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("model", modelName).
		Str("key", KeyFingerprint(credential)).
		Int("prompt_chars", len(prompt)).
		Msg("generateContent request")

	start := time.Now()
	c.calls.Add(1)
	resp, err := hc.Do(req)
	if err != nil {
		log.Warn().Err(redactURLError(err)).Msg("generateContent transport failure")
		return model.Failure(model.ErrorKindNetworkFailure, describeTransportError(err))
	}
	defer resp.Body.Close()

	data, err := readResponse(resp)
	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(data)).
		Msg("generateContent response")
	if err != nil {
		return model.Failure(model.ErrorKindNetworkFailure, err.Error())
	}

	res := classify(resp.StatusCode, data)
	if !res.IsSuccess() {
		log.Info().
			Str("outcome", res.Kind.String()).
			Str("kind", res.Err.String()).
			Msg("generateContent did not succeed")
	}
	return res
}

// readResponse reads the response body with a size limit.
//
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// classify maps a status code and body to a Result.
func classify(statusCode int, body []byte) model.Result {
	var parsed generateResponse
	parseErr := json.Unmarshal(body, &parsed)

	if parseErr == nil && parsed.Error != nil {
		return classifyAPIError(statusCode, parsed.Error)
	}

	if statusCode < 200 || statusCode > 299 {
		if statusCode == http.StatusTooManyRequests {
			return model.RateLimited(model.FixedCooldownSeconds)
		}
		return model.Failure(model.ErrorKindRemoteError, fmt.Sprintf("HTTP %d", statusCode))
	}

	if parseErr != nil {
		return model.Failure(model.ErrorKindNetworkFailure, fmt.Sprintf("failed to parse response: %v", parseErr))
	}

	if len(parsed.Candidates) == 0 {
		return model.Failure(model.ErrorKindEmptyResponse, "")
	}

	parts := parsed.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return model.Failure(model.ErrorKindEmptyResponse, "")
	}
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return model.Failure(model.ErrorKindEmptyResponse, "")
	}
	return model.Success(text)
}

// classifyAPIError separates quota exhaustion from every other provider error.
func classifyAPIError(statusCode int, e *apiError) model.Result {
	if isQuotaError(statusCode, e) {
		return model.RateLimited(model.FixedCooldownSeconds)
	}
	code := e.Code
	if code == 0 {
		code = statusCode
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = (&APIError{Code: code, Status: e.Status, Message: "no message"}).Error()
	}
	return model.Failure(model.ErrorKindRemoteError, msg)
}

func isQuotaError(statusCode int, e *apiError) bool {
	if e.Code == http.StatusTooManyRequests || statusCode == http.StatusTooManyRequests {
		return true
	}
	if strings.EqualFold(e.Status, statusResourceExhausted) {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "quota") || strings.Contains(msg, "too many requests")
}

// describeTransportError turns a transport error into a short cause without
// the request URL, which carries the key.
func describeTransportError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	return redactURLError(err).Error()
}

// redactURLError strips the URL from *url.Error so the key never reaches logs.
func redactURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}
