//go:build ocr

// This is the Tesseract-backed implementation, compiled in with the
// "ocr" build tag. It requires the Tesseract libraries installed on
// the system. On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-fin
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for recognizing scanned report pages.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client with the default Finnish+English setup.
// The client should be closed when no longer needed.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an OCR client with a custom engine setup.
func NewWithConfig(config Config) (*Client, error) {
	client := gosseract.NewClient()
	c := &Client{client: client}
	if config.Language != "" {
		if err := c.SetLanguage(config.Language); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("set language %q: %w", config.Language, err)
		}
	}
	if err := c.SetPageSegMode(config.PageSegMode); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("set page segmentation mode %d: %w", config.PageSegMode, err)
	}
	return c, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on raw image bytes (PNG, JPEG, TIFF,
// BMP). Returns the recognized text with surrounding whitespace
// trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetLanguage sets the recognition language(s), "+"-separated for
// multiple ("fin+eng").
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode for subsequent
// recognitions.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
