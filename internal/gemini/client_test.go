// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/corptranslate/internal/model"
)

// newTestServer returns a server that replies with status and body and counts
// requests.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var count atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &count
}

func TestRequestRewrite_Success(t *testing.T) {
	var gotPath, gotKey, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Kind Regards"}]}}]}`)
	}))
	defer server.Close()

	client := NewClient().WithBaseURL(server.URL).WithModel("gemini-test")
	res := client.RequestRewrite(context.Background(), "rewrite this", "  secret-key  ")

	require.Equal(t, model.OutcomeSuccess, res.Kind)
	assert.Equal(t, "Kind Regards", res.Text)
	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "secret-key", gotKey, "credential is trimmed")

	var req generateRequest
	require.NoError(t, json.Unmarshal([]byte(gotBody), &req))
	require.Len(t, req.Contents, 1)
	require.Len(t, req.Contents[0].Parts, 1)
	assert.Equal(t, "rewrite this", req.Contents[0].Parts[0].Text)
}

func TestRequestRewrite_MissingCredentialMakesNoCall(t *testing.T) {
	server, count := newTestServer(t, http.StatusOK, `{}`)
	client := NewClient().WithBaseURL(server.URL)

	for _, cred := range []string{"", "   ", "\t\n"} {
		res := client.RequestRewrite(context.Background(), "prompt", cred)
		assert.Equal(t, model.OutcomeFailure, res.Kind)
		assert.Equal(t, model.ErrorKindMissingCredential, res.Err)
	}
	assert.Equal(t, int32(0), count.Load())
	assert.Equal(t, int64(0), client.Calls())
}

func TestRequestRewrite_RateLimited(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http 429 with error body", http.StatusTooManyRequests,
			`{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`},
		{"http 429 without body", http.StatusTooManyRequests, ``},
		{"status only", http.StatusBadRequest,
			`{"error":{"code":400,"message":"limit","status":"RESOURCE_EXHAUSTED"}}`},
		{"quota message", http.StatusForbidden,
			`{"error":{"code":403,"message":"Quota exceeded for this project"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, count := newTestServer(t, tt.status, tt.body)
			res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")

			assert.Equal(t, model.OutcomeRateLimited, res.Kind)
			assert.Equal(t, 60, res.RetryAfterSeconds)
			assert.Equal(t, int32(1), count.Load(), "no retry")
		})
	}
}

func TestRequestRewrite_EmptyCandidates(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"candidates": []}`)
	res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")

	assert.Equal(t, model.OutcomeFailure, res.Kind)
	assert.Equal(t, model.ErrorKindEmptyResponse, res.Err)
}

func TestRequestRewrite_EmptyParts(t *testing.T) {
	for _, body := range []string{
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`,
		`{"candidates":[{"finishReason":"SAFETY"}]}`,
	} {
		server, _ := newTestServer(t, http.StatusOK, body)
		res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")
		assert.Equal(t, model.ErrorKindEmptyResponse, res.Err, body)
	}
}

func TestRequestRewrite_MultiPartConcatenated(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"Subject: Hi\n"},{"text":"Regards."}]}}]}`)
	res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")

	require.True(t, res.IsSuccess())
	assert.Equal(t, "Subject: Hi\nRegards.", res.Text)
}

func TestRequestRewrite_RemoteError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`)
	res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")

	assert.Equal(t, model.OutcomeFailure, res.Kind)
	assert.Equal(t, model.ErrorKindRemoteError, res.Err)
	assert.Equal(t, "API key not valid. Please pass a valid API key.", res.UserMessage())
}

func TestRequestRewrite_ErrorObjectWith200(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"error":{"code":500,"message":"Internal error"}}`)
	res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")

	assert.Equal(t, model.ErrorKindRemoteError, res.Err)
	assert.Equal(t, "Internal error", res.Message)
}

func TestRequestRewrite_UnparseableErrorStatus(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")

	assert.Equal(t, model.ErrorKindRemoteError, res.Err)
	assert.Equal(t, "HTTP 502", res.Message)
}

func TestRequestRewrite_MalformedBody(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"candidates": [`)
	res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")

	assert.Equal(t, model.ErrorKindNetworkFailure, res.Err)
}

func TestRequestRewrite_TransportFailure(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{}`)
	url := server.URL
	server.Close()

	res := NewClient().WithBaseURL(url).RequestRewrite(context.Background(), "p", "super-secret")
	assert.Equal(t, model.ErrorKindNetworkFailure, res.Err)
	assert.NotContains(t, res.Message, "super-secret")
}

func TestRequestRewrite_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	res := NewClient().
		WithBaseURL(server.URL).
		WithTimeout(50*time.Millisecond).
		RequestRewrite(context.Background(), "p", "k")

	assert.Equal(t, model.ErrorKindNetworkFailure, res.Err)
	assert.Equal(t, "request timed out", res.Message)
}

func TestRequestRewrite_OversizedBody(t *testing.T) {
	big := `{"candidates":[{"content":{"parts":[{"text":"` + strings.Repeat("a", MaxResponseSize) + `"}]}}]}`
	server, _ := newTestServer(t, http.StatusOK, big)
	res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "p", "k")

	assert.Equal(t, model.ErrorKindNetworkFailure, res.Err)
}

func TestRequestRewrite_BlankPrompt(t *testing.T) {
	server, count := newTestServer(t, http.StatusOK, `{}`)
	res := NewClient().WithBaseURL(server.URL).RequestRewrite(context.Background(), "  ", "k")

	assert.Equal(t, model.ErrorKindEmptyInput, res.Err)
	assert.Equal(t, int32(0), count.Load())
}

func TestClient_Settings(t *testing.T) {
	c := NewClient()
	assert.Equal(t, DefaultModel, c.Model())

	c.SetModel("  ")
	assert.Equal(t, DefaultModel, c.Model(), "blank model ignored")

	c.SetModel("gemini-2.0-flash")
	assert.Equal(t, "gemini-2.0-flash", c.Model())
}

func TestKeyFingerprint(t *testing.T) {
	assert.Equal(t, "none", KeyFingerprint(""))
	fp := KeyFingerprint("AIzaSyExample")
	assert.Len(t, fp, 8)
	assert.NotContains(t, "AIzaSyExample", fp)
	assert.Equal(t, fp, KeyFingerprint("AIzaSyExample"))
}
