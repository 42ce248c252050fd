package manager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/bikeflow/bikeflow/pkg/dataimporter/datasets"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const maxDownloadRetries = 4

var httpClient = &http.Client{Timeout: 5 * time.Minute}

// openSource opens a local file, or downloads a URL retrying on network
// errors and 5xx/429 responses. Other 4xx responses are not retried.
func openSource(ctx context.Context, source datasets.Source) (io.ReadCloser, error) {
	if !isValidUrl(source.Source) {
		return os.Open(source.Source)
	}

	var body io.ReadCloser

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.Source, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		req.Header.Set("User-Agent", "bikeflow-data-importer")
		for key, value := range source.Header {
			req.Header.Set(key, value)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()

			statusErr := fmt.Errorf("download %s returned %s", source.Source, resp.Status)
			if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
				return statusErr
			}

			return backoff.Permanent(statusErr)
		}

		body = resp.Body
		return nil
	}

	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxDownloadRetries), ctx)

	err := backoff.RetryNotify(operation, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("source", source.Source).Str("wait", wait.String()).Msg("Download failed, retrying")
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
