package remotefile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rios0rios0/gitpuller/internal/domain/repositories"
)

const (
	// HTTPBaseURLEnvVar is prefixed to identifiers that are not absolute URLs.
	HTTPBaseURLEnvVar = "GITPULLER_HTTP_BASE_URL"
	// HTTPTokenEnvVar, when set, is sent as a bearer token.
	HTTPTokenEnvVar = "GITPULLER_HTTP_TOKEN"

	httpRetryMax = 3
)

// ErrFileNotFound is returned when the provider reports the file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnauthorized is returned when the provider rejects the credentials.
var ErrUnauthorized = errors.New("unauthorized")

// HTTPProvider fetches files over HTTP(S), retrying transient failures.
type HTTPProvider struct {
	client  *retryablehttp.Client
	baseURL string
	token   string
}

// NewHTTPProvider creates an HTTPProvider.
func NewHTTPProvider(baseURL, token string) *HTTPProvider {
	client := retryablehttp.NewClient()
	client.RetryMax = httpRetryMax
	client.Logger = nil

	return &HTTPProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// NewHTTPProviderFromEnv reads the base URL and token from the environment.
func NewHTTPProviderFromEnv(_ context.Context) (repositories.RemoteFileRepository, error) {
	return NewHTTPProvider(os.Getenv(HTTPBaseURLEnvVar), os.Getenv(HTTPTokenEnvVar)), nil
}

// Name identifies the provider in registry lookups and log lines.
func (it *HTTPProvider) Name() string { return "http" }

// Fetch downloads fileID, either an absolute URL or a path under the base URL.
func (it *HTTPProvider) Fetch(
	ctx context.Context,
	fileID string,
	w io.Writer,
	progress repositories.ProgressFunc,
) error {
	url, err := it.resolve(fileID)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if it.token != "" {
		req.Header.Set("Authorization", "Bearer "+it.token)
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrFileNotFound, url)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned %d", ErrUnauthorized, url, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return copyWithProgress(ctx, w, resp.Body, resp.ContentLength, progress)
}

func (it *HTTPProvider) resolve(fileID string) (string, error) {
	if strings.HasPrefix(fileID, "http://") || strings.HasPrefix(fileID, "https://") {
		return fileID, nil
	}
	if it.baseURL == "" {
		return "", fmt.Errorf("%q is not a URL and %s is not set", fileID, HTTPBaseURLEnvVar)
	}
	return it.baseURL + "/" + strings.TrimLeft(fileID, "/"), nil
}
