// Package domain holds ports for the dispatch service
package domain

import (
	"context"

	"smartjotter/internal/adapters/hostapp"
	"smartjotter/internal/core/record"
)

// DispatcherPort hands finished records to the host application
type DispatcherPort interface {
	CreateDraft(ctx context.Context, action hostapp.Action, rec record.BookingRecord) (hostapp.DraftRef, error)
}
