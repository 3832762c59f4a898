// Package githubassets stores profile pictures in a GitHub repository via
// the contents API and serves them from raw.githubusercontent.com.
package githubassets

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the GitHub contents API for a single assets repository.
type Client struct {
	http   *resty.Client
	owner  string
	repo   string
	branch string
	root   string
}

type contentResponse struct {
	SHA string `json:"sha"`
}

type getContentResponse struct {
	SHA string `json:"sha"`
}

// New returns a client for the given repository. Token must have contents
// write access. Root is the directory inside the repo that holds uploads.
func New(apiBaseURL, token, owner, repo, root string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(apiBaseURL).
			SetTimeout(15 * time.Second).
			SetAuthToken(token).
			SetHeader("Accept", "application/vnd.github+json").
			SetHeader("User-Agent", "resumin-api"),
		owner:  owner,
		repo:   repo,
		branch: "main",
		root:   root,
	}
}

// Upload writes content to path (relative to the configured root), replacing
// any existing file, and returns the raw URL it will be served from.
func (c *Client) Upload(ctx context.Context, path string, content []byte) (string, error) {
	fullPath := c.fullPath(path)

	body := map[string]string{
		"message": fmt.Sprintf("upload %s", path),
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  c.branch,
	}

	// The contents API requires the current blob SHA when overwriting.
	if sha, err := c.currentSHA(ctx, fullPath); err != nil {
		return "", err
	} else if sha != "" {
		body["sha"] = sha
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Put(fmt.Sprintf("/repos/%s/%s/contents/%s", c.owner, c.repo, fullPath))
	if err != nil {
		return "", fmt.Errorf("github upload failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("github upload failed: %s: %s", resp.Status(), resp.String())
	}

	return c.RawURL(path), nil
}

// Delete removes a previously uploaded file. Deleting a missing file is not
// an error.
func (c *Client) Delete(ctx context.Context, path string) error {
	fullPath := c.fullPath(path)

	sha, err := c.currentSHA(ctx, fullPath)
	if err != nil {
		return err
	}
	if sha == "" {
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"message": fmt.Sprintf("delete %s", path),
			"sha":     sha,
			"branch":  c.branch,
		}).
		Delete(fmt.Sprintf("/repos/%s/%s/contents/%s", c.owner, c.repo, fullPath))
	if err != nil {
		return fmt.Errorf("github delete failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("github delete failed: %s: %s", resp.Status(), resp.String())
	}
	return nil
}

// RawURL returns the public URL a stored file is served from.
func (c *Client) RawURL(path string) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", c.owner, c.repo, c.branch, c.fullPath(path))
}

func (c *Client) currentSHA(ctx context.Context, fullPath string) (string, error) {
	var got getContentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&got).
		SetQueryParam("ref", c.branch).
		Get(fmt.Sprintf("/repos/%s/%s/contents/%s", c.owner, c.repo, fullPath))
	if err != nil {
		return "", fmt.Errorf("github lookup failed: %w", err)
	}
	if resp.StatusCode() == 404 {
		return "", nil
	}
	if resp.IsError() {
		return "", fmt.Errorf("github lookup failed: %s", resp.Status())
	}
	return got.SHA, nil
}

func (c *Client) fullPath(path string) string {
	if c.root == "" {
		return path
	}
	return c.root + "/" + path
}
