package api

import (
	"context"
	"io"
)

// UploadResult is the stored file's server-relative URL plus echo metadata.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Size     string `json:"size,omitempty"`
}

// UploadFile stores one file and returns its /api/files/... URL, which is
// what assignment and post records reference.
func (c *Client) UploadFile(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	var result UploadResult
	if err := c.doMultipart(ctx, "/files/upload", "file", filename, file, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
