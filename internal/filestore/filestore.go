package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrEmptyReference = errors.New("file service returned an empty reference")

type uploadResponse struct {
	Ref string `json:"ref"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPStore uploads check-in photos to the external file service.
type HTTPStore struct {
	client *resty.Client
	logger *zap.Logger
}

func NewHTTPStore(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPStore {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetHeader("Accept", "application/json")

	return &HTTPStore{client: client, logger: logger}
}

func (s *HTTPStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("photo %s is empty", name)
	}

	var (
		result  uploadResponse
		failure errorResponse
	)
	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("file", name, bytes.NewReader(data)).
		SetResult(&result).
		SetError(&failure).
		Post("/files")
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("file service rejected %s: status %d: %s", name, resp.StatusCode(), failure.Error)
	}
	if result.Ref == "" {
		return "", ErrEmptyReference
	}

	s.logger.Debug("photo uploaded", zap.String("name", name), zap.String("ref", result.Ref), zap.Int("size", len(data)))
	return result.Ref, nil
}
