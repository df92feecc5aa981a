package data

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// OpenSource opens the content behind a source URI for upload. Supported
// forms are plain local paths, file:// URIs and RFC 2397 data: URIs.
func OpenSource(uri string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(uri, "data:"):
		content, err := decodeDataURI(uri)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(content)), nil
	case strings.HasPrefix(uri, "file://"):
		parsed, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid file URI: %w", err)
		}
		return openLocalFile(parsed.Path)
	case strings.Contains(uri, "://"):
		return nil, fmt.Errorf("unsupported source URI scheme: %s", uri[:strings.Index(uri, "://")])
	default:
		return openLocalFile(uri)
	}
}

func openLocalFile(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, fmt.Errorf("source path is empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	return file, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found {
		return nil, fmt.Errorf("malformed data URI: missing ','")
	}

	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		content, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data URI: %w", err)
		}
		return content, nil
	}

	content, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return []byte(content), nil
}

// DataURI encodes content as a base64 data: URI
func DataURI(contentType string, content []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(content)
}
