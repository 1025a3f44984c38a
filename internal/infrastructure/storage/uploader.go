// Package storage proxies file uploads to external object storage.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Config captures the unsigned-upload endpoint settings.
type Config struct {
	// UploadURL is the object storage unsigned upload endpoint.
	UploadURL string
	// Preset is the unsigned upload preset name.
	Preset string
}

// HTTPUploader implements ports.FileStorage against an unsigned multipart
// upload endpoint (Cloudinary-style) and returns the secure URL it reports.
type HTTPUploader struct {
	cfg  Config
	http *http.Client
}

func NewHTTPUploader(cfg Config) *HTTPUploader {
	return &HTTPUploader{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("buffer upload: %w", err)
	}
	if u.cfg.Preset != "" {
		if err := writer.WriteField("upload_preset", u.cfg.Preset); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.UploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed: status %d", resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.SecureURL != "" {
		return out.SecureURL, nil
	}
	return out.URL, nil
}
