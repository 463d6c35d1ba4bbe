package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrTooLarge is returned for a download bigger than Fetcher.MaxBytes.
var ErrTooLarge = errors.New("page exceeds size limit")

type format int

const (
	formatCSV format = iota
	formatHTML
)

// Fetcher reads inputs that are URLs.
type Fetcher struct {
	Client  *http.Client
	Limiter *HostLimiter
	// MaxBytes caps a downloaded page.
	MaxBytes int64
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 20 * time.Second},
		Limiter:  NewHostLimiter(1, 2),
		MaxBytes: 20 << 20,
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// inputName is the file name part used for the year and the format.
func inputName(input string) string {
	if isURL(input) {
		if u, err := url.Parse(input); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(input)
}

func formatOf(name, contentType string) format {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".html" || ext == ".htm":
		return formatHTML
	case ext == ".csv":
		return formatCSV
	case strings.Contains(contentType, "html"):
		return formatHTML
	default:
		return formatCSV
	}
}

// readRaw loads one input, local or remote.
func (f *Fetcher) readRaw(ctx context.Context, input string) ([]RawRow, error) {
	var (
		body []byte
		ct   string
		err  error
	)
	if isURL(input) {
		body, ct, err = f.fetch(ctx, input)
	} else {
		body, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, err
	}

	if formatOf(inputName(input), ct) == formatHTML {
		return ParseHTMLTables(bytes.NewReader(body))
	}
	return ReadRawCSV(bytes.NewReader(body))
}

func (f *Fetcher) fetch(ctx context.Context, raw string) ([]byte, string, error) {
	if f.Limiter != nil {
		if err := f.Limiter.WaitURL(ctx, raw); err != nil {
			return nil, "", err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", "draftboard-engine/1.0")
	req.Header.Set("Accept", "text/html,text/csv;q=0.9,*/*;q=0.8")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("GET %s: %s", raw, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = 20 << 20
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(body)) > limit {
		return nil, "", fmt.Errorf("GET %s: %w (%d bytes)", raw, ErrTooLarge, limit)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
