package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func TestGetFile(t *testing.T) {
	body := []byte(`{"name":"أسامة"}`)
	enc := base64.StdEncoding.EncodeToString(body)
	// Simulate the API's line wrapping.
	wrapped := enc[:10] + "\n" + enc[10:] + "\n"

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/me/site/contents/data.json", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"path": "data.json", "sha": "abc", "content": wrapped, "encoding": "base64",
		})
	})

	f, err := c.GetFile(context.Background(), "tok", "me/site", "data.json")
	require.NoError(t, err)
	assert.Equal(t, "abc", f.SHA)
	assert.Equal(t, body, f.Content)
}

func TestPutFile(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":{"sha":"new"},"commit":{"sha":"c1"}}`))
	})

	res, err := c.PutFile(context.Background(), "tok", "me/site", "data.json", PutRequest{
		Message: "msg",
		Content: []byte("مرحبا"),
		SHA:     "old",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", res.SHA)
	assert.Equal(t, "c1", res.CommitSHA)

	assert.Equal(t, "msg", got["message"])
	assert.Equal(t, "old", got["sha"])
	_, hasBranch := got["branch"]
	assert.False(t, hasBranch)
	dec, err := base64.StdEncoding.DecodeString(got["content"])
	require.NoError(t, err)
	assert.Equal(t, "مرحبا", string(dec))
}

func TestBranchIsSent(t *testing.T) {
	var ref, branch string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			ref = r.URL.Query().Get("ref")
			w.Write([]byte(`{"sha":"s","content":""}`))
			return
		}
		var b map[string]string
		json.NewDecoder(r.Body).Decode(&b)
		branch = b["branch"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Branch: "pages"})
	_, err := c.GetFile(context.Background(), "t", "me/site", "data.json")
	require.NoError(t, err)
	_, err = c.PutFile(context.Background(), "t", "me/site", "data.json", PutRequest{SHA: "s"})
	require.NoError(t, err)
	assert.Equal(t, "pages", ref)
	assert.Equal(t, "pages", branch)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Bad credentials"}`, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{"message":"Resource not accessible"}`, ErrUnauthorized},
		{"not found", http.StatusNotFound, `{"message":"Not Found"}`, ErrNotFound},
		{"conflict", http.StatusConflict, `{"message":"is at 1 but expected 2"}`, ErrConflict},
		{"stale sha", http.StatusUnprocessableEntity, `{"message":"Invalid request.\n\n\"sha\" wasn't supplied."}`, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.PutFile(context.Background(), "t", "me/site", "data.json", PutRequest{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnexpectedStatusIsPlainError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.GetFile(context.Background(), "t", "me/site", "data.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "502")
}
