package metadata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rafflehouse/artcli/internal/gateway"
)

// ErrNoMetadata is returned when every candidate URI has been attempted
// without producing a metadata document or a direct media resource.
var ErrNoMetadata = errors.New("no metadata found at any candidate URI")

// maxBodySize caps how much of a metadata response is read. Metadata JSON is
// tiny; anything larger is a media file being classified by content-type.
const maxBodySize = 2 << 20

// Resolved is the outcome of a successful cascade run.
type Resolved struct {
	SourceURI       string   // the candidate that produced the result
	RawImage        string   // the image field exactly as the document stated it
	ImageCandidates []string // ordered gateway-expanded URLs for the image
}

// Result carries the resolution outcome plus per-attempt warnings for
// verbose display. Warnings are informational only — a populated Meta means
// success regardless of how many earlier candidates failed.
type Result struct {
	Meta     *Resolved
	Warnings []string
}

// Cascade fetches candidate metadata URIs in order, first success wins.
type Cascade struct {
	client   *http.Client
	gateways gateway.Set
}

// NewCascade creates a Cascade using the given gateway set for expanding
// image fields that are themselves decentralized URIs.
func NewCascade(gateways gateway.Set) *Cascade {
	return &Cascade{
		client:   &http.Client{},
		gateways: gateways,
	}
}

// Resolve tries each candidate URI in order with the given per-attempt
// timeout. Candidates are attempted strictly sequentially: the first success
// short-circuits the rest, which keeps gateway load down and preserves the
// priority order the variant constructor encoded. Every per-attempt error is
// recovered locally; only full exhaustion returns ErrNoMetadata.
func (c *Cascade) Resolve(ctx context.Context, candidates []string, perAttempt time.Duration) (*Result, error) {
	attempts := make([]attempt, 0, len(candidates))
	for _, uri := range candidates {
		uri := uri
		attempts = append(attempts, attempt{
			name: uri,
			run: func() (*Resolved, error) {
				return c.tryOne(ctx, uri, perAttempt)
			},
		})
	}

	meta, warnings, err := firstSuccessful(ctx, attempts)
	res := &Result{Meta: meta, Warnings: warnings}
	if err != nil {
		return res, err
	}
	return res, nil
}

// tryOne attempts a single candidate URI.
func (c *Cascade) tryOne(ctx context.Context, uri string, timeout time.Duration) (*Resolved, error) {
	if strings.HasPrefix(uri, "data:") {
		return c.resolveDataURI(uri)
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, image/*, video/*, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if json.Unmarshal(body, &doc) == nil && doc != nil {
		return c.fromDocument(uri, doc)
	}

	// Not JSON — the URI may point straight at the media file.
	contentType := resp.Header.Get("Content-Type")
	if isMedia(contentType, uri) {
		return &Resolved{
			SourceURI:       uri,
			RawImage:        uri,
			ImageCandidates: []string{uri},
		}, nil
	}

	return nil, fmt.Errorf("response is neither metadata JSON nor media (content-type %q)", contentType)
}

// resolveDataURI handles inline data: candidates without any network I/O.
func (c *Cascade) resolveDataURI(uri string) (*Resolved, error) {
	meta := strings.TrimPrefix(uri, "data:")
	comma := strings.Index(meta, ",")
	if comma < 0 {
		return nil, errors.New("malformed data URI")
	}
	header, payload := meta[:comma], meta[comma+1:]

	switch {
	case strings.HasPrefix(header, "application/json"):
		raw := []byte(payload)
		if strings.Contains(header, "base64") {
			decoded, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				return nil, fmt.Errorf("decoding data URI: %w", err)
			}
			raw = decoded
		} else if unescaped, err := url.PathUnescape(payload); err == nil {
			raw = []byte(unescaped)
		}
		var doc map[string]interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing inline metadata: %w", err)
		}
		return c.fromDocument(uri, doc)

	case strings.HasPrefix(header, "image/"), strings.HasPrefix(header, "video/"):
		// The data URI itself is the artwork.
		return &Resolved{SourceURI: uri, RawImage: uri, ImageCandidates: []string{uri}}, nil
	}

	return nil, fmt.Errorf("unsupported data URI type %q", header)
}

// fromDocument extracts and normalizes the image field of a parsed document.
func (c *Cascade) fromDocument(sourceURI string, doc map[string]interface{}) (*Resolved, error) {
	raw, ok := ExtractImage(doc)
	if !ok {
		return nil, errors.New("metadata has no image field")
	}
	return &Resolved{
		SourceURI:       sourceURI,
		RawImage:        raw,
		ImageCandidates: c.gateways.Expand(raw),
	}, nil
}

// isMedia reports whether a response looks like a direct image/video
// resource, by content-type first and file extension second.
func isMedia(contentType, uri string) bool {
	ct := strings.ToLower(contentType)
	if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") {
		return true
	}
	return HasMediaExtension(uri)
}

var mediaExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".avif", ".bmp",
	".mp4", ".webm", ".mov", ".m4v",
}

// HasMediaExtension reports whether a URI's path ends in a known
// image/video file extension.
func HasMediaExtension(uri string) bool {
	path := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		path = u.Path
	}
	path = strings.ToLower(path)
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
