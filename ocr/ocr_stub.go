//go:build !ocr

// This is the stub implementation used when the "ocr" build tag is not
// set. All engine operations return ErrOCRNotEnabled; the scan path
// and its artifact helpers still compile and work against any other
// Engine implementation.
package ocr

// Client is a stub OCR client that reports OCR as unavailable.
type Client struct{}

// New returns ErrOCRNotEnabled. Rebuild with -tags ocr to enable OCR.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// NewWithConfig returns ErrOCRNotEnabled. Rebuild with -tags ocr to
// enable OCR.
func NewWithConfig(config Config) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client. Safe to call on nil.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns ErrOCRNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// SetPageSegMode returns ErrOCRNotEnabled.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}
