package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendlens/purchase-parser/dto"
	"github.com/spendlens/purchase-parser/logger"
)

var pdfMagic = []byte("%PDF-")

// URLFetcher downloads remote PDFs for the parse-by-URL operation.
type URLFetcher struct {
	httpClient *http.Client
	maxSize    int64
	log        zerolog.Logger
}

func NewURLFetcher(timeout time.Duration, maxSize int64) *URLFetcher {
	return &URLFetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxSize:    maxSize,
		log:        logger.New("url-fetcher"),
	}
}

// FetchPDF downloads the document at rawURL and returns its bytes plus a
// filename derived from the URL path. Anything that is not a PDF within the
// size limit is an error.
func (f *URLFetcher) FetchPDF(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid url: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("url returned status %d", resp.StatusCode)
	}
	if resp.ContentLength > f.maxSize {
		return nil, "", dto.ErrFileTooLarge
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" &&
		!strings.Contains(contentType, "pdf") &&
		!strings.Contains(contentType, "octet-stream") {
		return nil, "", dto.ErrNotPDF
	}

	// Read one byte past the cap to tell "exactly at limit" from "over it".
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, "", dto.ErrFileTooLarge
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, "", dto.ErrNotPDF
	}

	f.log.Info().Str("url", rawURL).Int("bytes", len(data)).Msg("fetched pdf")
	return data, filenameFromURL(rawURL), nil
}

func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "downloaded.pdf"
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" || name == "" {
		return "downloaded.pdf"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
