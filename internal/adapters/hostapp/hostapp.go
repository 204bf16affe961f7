// Package hostapp is the booking/estimate creation adapter. It forwards a
// finished record to the host application as a flat field set for a new
// draft. With no base URL configured it creates a local draft reference so
// the flow still completes offline
package hostapp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"smartjotter/internal/core/record"
	perr "smartjotter/internal/platform/errors"
	"smartjotter/internal/platform/logger"
)

const (
	defaultTimeout = 15 * time.Second
	bookingPath    = "/api/bookings/drafts"
	estimatePath   = "/api/estimates/drafts"
)

// Action selects the creation target
type Action string

// Supported actions
const (
	ActionBooking  Action = "booking"
	ActionEstimate Action = "estimate"
)

// Valid reports whether a is a known action
func (a Action) Valid() bool { return a == ActionBooking || a == ActionEstimate }

// DraftRef identifies the created draft in the host application
type DraftRef struct {
	ID   string `json:"id"`
	Kind Action `json:"kind"`
	URL  string `json:"url,omitempty"`
}

// Options configures the Client
type Options struct {
	// BaseURL empty means local draft mode
	BaseURL string
	Timeout time.Duration
}

// Client creates booking and estimate drafts from finished records
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("hostapp"),
	}
}

// Configured reports whether a host application URL is present
func (c *Client) Configured() bool { return c.opts.BaseURL != "" }

// draftPayload is the flat field set the host application pre-fills from
type draftPayload struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Vehicle      string `json:"vehicle,omitempty"`
	Year         string `json:"year,omitempty"`
	Registration string `json:"registration,omitempty"`
	Issue        string `json:"issue"`
	Notes        string `json:"notes,omitempty"`
}

// CreateDraft forwards rec to the host application for the given action
// the record must already have passed the actionable gate
func (c *Client) CreateDraft(ctx context.Context, action Action, rec record.BookingRecord) (DraftRef, error) {
	if !action.Valid() {
		return DraftRef{}, perr.InvalidArgf("unknown action %q", action)
	}
	if !c.Configured() {
		ref := DraftRef{ID: uuid.NewString(), Kind: action}
		c.log.Debug().Str("draft_id", ref.ID).Str("kind", string(action)).Msg("local draft created")
		return ref, nil
	}

	path := bookingPath
	if action == ActionEstimate {
		path = estimatePath
	}
	body, err := json.Marshal(draftPayload{
		CustomerName: rec.CustomerName,
		Phone:        rec.Phone,
		Vehicle:      rec.Vehicle,
		Year:         rec.Year,
		Registration: rec.Registration,
		Issue:        rec.Issue,
		Notes:        rec.Notes,
	})
	if err != nil {
		return DraftRef{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "hostapp encode failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return DraftRef{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "hostapp new request failed")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return DraftRef{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "host application unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("kind", string(action)).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("hostapp draft response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn().Int("status", resp.StatusCode).Str("body", string(tail)).Msg("hostapp rejected draft")
		return DraftRef{}, perr.Upstreamf("host application rejected the %s", action)
	}

	ref := DraftRef{Kind: action}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&ref); err != nil {
		// a created draft with an unreadable body still counts as created
		ref = DraftRef{ID: uuid.NewString(), Kind: action}
	}
	if ref.Kind == "" {
		ref.Kind = action
	}
	return ref, nil
}
