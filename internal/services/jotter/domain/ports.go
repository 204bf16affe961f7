package domain

import (
	"context"

	"smartjotter/internal/adapters/hostapp"
	"smartjotter/internal/adapters/ink"
	"smartjotter/internal/core/record"
)

// RecognizerPort converts a drawing to plain text
// failures are reported inside the Result, never as a Go error
type RecognizerPort interface {
	Recognize(ctx context.Context, d ink.Drawing) ink.Result
}

// ExtractorPort converts free text to a structured record
// the string return is a degradation notice when the fallback served
type ExtractorPort interface {
	Extract(ctx context.Context, text string) (record.BookingRecord, string, error)
}

// DispatcherPort hands a finished record to the host application
type DispatcherPort interface {
	CreateDraft(ctx context.Context, action hostapp.Action, rec record.BookingRecord) (hostapp.DraftRef, error)
}
