package imaging

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Inline payloads travel as data URLs: "data:{mime};base64,{body}".

// EncodeDataURL wraps raw image bytes as an inline payload.
func EncodeDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURL splits an inline payload into its MIME type and raw bytes.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, fmt.Errorf("not a data URL")
	}

	comma := strings.IndexByte(dataURL, ',')
	if comma < 0 {
		return "", nil, fmt.Errorf("malformed data URL: missing body")
	}

	meta := dataURL[len("data:"):comma]
	mimeType := meta
	if semi := strings.IndexByte(meta, ';'); semi >= 0 {
		mimeType = meta[:semi]
	}
	if mimeType == "" {
		return "", nil, fmt.Errorf("malformed data URL: missing mime type")
	}

	body, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return "", nil, fmt.Errorf("malformed data URL body: %w", err)
	}
	if len(body) == 0 {
		return "", nil, fmt.Errorf("malformed data URL: empty body")
	}

	return mimeType, body, nil
}

// FetchAsDataURL downloads a remote image and re-encodes it as an inline
// payload.
func FetchAsDataURL(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image fetch: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch image: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || strings.HasPrefix(mimeType, "application/octet-stream") {
		mimeType = SniffMIME(data)
	}
	if semi := strings.IndexByte(mimeType, ';'); semi >= 0 {
		mimeType = mimeType[:semi]
	}

	return EncodeDataURL(mimeType, data), nil
}

// SniffMIME guesses an image MIME type from content.
func SniffMIME(data []byte) string {
	return http.DetectContentType(data)
}
