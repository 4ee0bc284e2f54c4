// Package github is a minimal client for the GitHub REST contents API:
// read a file with its blob sha, and replace it with a new commit.
package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.github.com"

// Config configures a Client. Zero fields take defaults.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Branch is sent with every write when set; otherwise the repository's
	// default branch is used.
	Branch string
}

// File is a repository file as returned by the contents API.
type File struct {
	Path    string
	SHA     string
	Content []byte
}

// PutRequest is the body of a contents API write.
type PutRequest struct {
	Message string
	Content []byte
	SHA     string
}

// PutResult is what a successful write reports back.
type PutResult struct {
	SHA       string
	CommitSHA string
}

type Client struct {
	http   *resty.Client
	branch string
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28").
		SetError(&apiError{})
	return &Client{http: c, branch: cfg.Branch}
}

type contentsResponse struct {
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type putBody struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

func contentsPath(repo, path string) string {
	return "/repos/" + strings.Trim(repo, "/") + "/contents/" + strings.TrimLeft(path, "/")
}

// GetFile fetches path from repo.
func (c *Client) GetFile(ctx context.Context, token, repo, path string) (File, error) {
	var out contentsResponse
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&out)
	if c.branch != "" {
		req.SetQueryParam("ref", c.branch)
	}
	resp, err := req.Get(contentsPath(repo, path))
	if err != nil {
		return File{}, fmt.Errorf("get %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return File{}, fmt.Errorf("get %s: %w", path, err)
	}

	f := File{Path: out.Path, SHA: out.SHA}
	if out.Encoding == "base64" || out.Encoding == "" {
		// The API wraps base64 content at 60 columns.
		raw := strings.NewReplacer("\n", "", "\r", "").Replace(out.Content)
		f.Content, err = base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return File{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return f, nil
}

// PutFile creates or replaces path in repo. SHA must be the blob sha of the
// current file when replacing.
func (c *Client) PutFile(ctx context.Context, token, repo, path string, in PutRequest) (PutResult, error) {
	var out putResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(putBody{
			Message: in.Message,
			Content: base64.StdEncoding.EncodeToString(in.Content),
			SHA:     in.SHA,
			Branch:  c.branch,
		}).
		SetResult(&out).
		Put(contentsPath(repo, path))
	if err != nil {
		return PutResult{}, fmt.Errorf("put %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return PutResult{}, fmt.Errorf("put %s: %w", path, err)
	}
	return PutResult{SHA: out.Content.SHA, CommitSHA: out.Commit.SHA}, nil
}
