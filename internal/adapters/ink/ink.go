// Package ink is the handwriting recognition adapter. It speaks the cloud
// service's batch protocol when credentials are configured and otherwise
// serves a deterministic local mock so the pipeline works offline
package ink

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"smartjotter/internal/platform/logger"
)

const (
	baseURLDefault = "https://cloud.myscript.com"
	batchPath      = "/api/v4.0/iink/batch"
	defaultTimeout = 20 * time.Second
	defaultLang    = "en_GB"
)

// Stroke is one pen-down to pen-up segment as parallel point arrays
type Stroke struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	T []int64   `json:"t,omitempty"`
	P []float64 `json:"p,omitempty"`
}

// Points returns the number of points in the stroke
func (s Stroke) Points() int { return len(s.X) }

// Drawing is the captured canvas content handed to Recognize
// either Strokes or ImagePNG must be non-empty
type Drawing struct {
	Strokes  []Stroke `json:"strokes,omitempty"`
	ImagePNG []byte   `json:"image_png,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
}

// Empty reports whether the drawing has neither strokes nor raster data
func (d Drawing) Empty() bool { return len(d.Strokes) == 0 && len(d.ImagePNG) == 0 }

// size is the hash key for mock phrase selection
func (d Drawing) size() int {
	n := len(d.ImagePNG)
	for _, s := range d.Strokes {
		n += s.Points()
	}
	return n
}

// Result is the outcome of one recognition attempt
// Err is set instead of returning a Go error so transport failures never
// escape the adapter; callers must check it explicitly
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	IsMock     bool    `json:"is_mock"`
	Err        string  `json:"error,omitempty"`
}

// Options configures the Client
type Options struct {
	BaseURL string
	// ApplicationKey and HMACKey are the cloud credentials
	// both empty means mock mode, which is a supported configuration
	ApplicationKey string
	HMACKey        string
	Lang           string
	Timeout        time.Duration
}

// Client calls the recognition cloud or the local mock
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Lang == "" {
		o.Lang = defaultLang
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("ink"),
	}
}

// Configured reports whether cloud credentials are present
func (c *Client) Configured() bool {
	return c.opts.ApplicationKey != "" && c.opts.HMACKey != ""
}

// batchRequest is the cloud wire format: stroke groups with parallel point
// arrays, or a base64 raster, plus a locale and a plain-text export directive
type batchRequest struct {
	Configuration struct {
		Lang string `json:"lang"`
	} `json:"configuration"`
	ContentType  string        `json:"contentType"`
	StrokeGroups []strokeGroup `json:"strokeGroups,omitempty"`
	Image        string        `json:"image,omitempty"`
	Width        int           `json:"width,omitempty"`
	Height       int           `json:"height,omitempty"`
}

type strokeGroup struct {
	Strokes []Stroke `json:"strokes"`
}

// batchResponse mirrors the service reply; the exported text may live at the
// top level or nested under exports
type batchResponse struct {
	Label      string            `json:"label"`
	Exports    map[string]string `json:"exports"`
	Confidence *float64          `json:"confidence"`
}

// Recognize converts a drawing to plain text
// with no credentials it returns the deterministic mock immediately
func (c *Client) Recognize(ctx context.Context, d Drawing) Result {
	if d.Empty() {
		// capture gates this already; reaching here is an internal fault
		return Result{Err: "nothing to recognize"}
	}
	if !c.Configured() {
		return mockResult(d)
	}

	req := batchRequest{ContentType: "Text"}
	req.Configuration.Lang = c.opts.Lang
	if len(d.Strokes) > 0 {
		req.StrokeGroups = []strokeGroup{{Strokes: d.Strokes}}
	} else {
		req.Image = base64.StdEncoding.EncodeToString(d.ImagePNG)
		req.Width = d.Width
		req.Height = d.Height
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Result{Err: "could not encode the drawing"}
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+batchPath, bytes.NewReader(body))
	if err != nil {
		return Result{Err: "could not build the recognition request"}
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("applicationKey", c.opts.ApplicationKey)
	hreq.Header.Set("hmac", c.sign(body))

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		c.log.Warn().Err(err).Msg("ink transport error")
		return Result{Err: "handwriting service unreachable"}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("ink http response")

	if resp.StatusCode != http.StatusOK {
		// read a small tail for diagnostics, keep the user message short
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn().Int("status", resp.StatusCode).Str("body", string(tail)).Msg("ink non-success status")
		return Result{Err: "handwriting service rejected the request"}
	}

	var br batchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&br); err != nil {
		return Result{Err: "handwriting service returned an unreadable response"}
	}

	text := br.Label
	if text == "" && br.Exports != nil {
		text = br.Exports["text/plain"]
	}
	conf := 0.9
	if br.Confidence != nil {
		conf = clamp01(*br.Confidence)
	}
	return Result{Text: strings.TrimSpace(text), Confidence: conf}
}

// sign computes the request HMAC the way the cloud expects:
// SHA-512 over the body keyed by applicationKey+hmacKey, hex encoded
func (c *Client) sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(c.opts.ApplicationKey+c.opts.HMACKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
