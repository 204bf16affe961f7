// Package record defines the structured booking record produced by extraction
// and the completeness/confidence rules the review surface relies on
package record

import "strings"

// Field names used as keys in FieldConfidence and in per-field edit routes
const (
	FieldCustomerName = "customerName"
	FieldPhone        = "phone"
	FieldVehicle      = "vehicle"
	FieldYear         = "year"
	FieldRegistration = "registration"
	FieldIssue        = "issue"
	FieldNotes        = "notes"
)

// Fields lists every editable field in display order
var Fields = []string{
	FieldCustomerName,
	FieldPhone,
	FieldVehicle,
	FieldYear,
	FieldRegistration,
	FieldIssue,
	FieldNotes,
}

// BookingRecord is the structured target entity for one capture cycle
// all fields are optional strings; empty means "not extracted", never a placeholder
type BookingRecord struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Vehicle      string `json:"vehicle"`
	Year         string `json:"year"`
	Registration string `json:"registration"`
	Issue        string `json:"issue"`
	Notes        string `json:"notes"`

	// OverallConfidence is in [0,1] when Scored is true
	OverallConfidence float64 `json:"overall_confidence,omitempty"`
	// Scored reports whether OverallConfidence carries a real value
	// absent confidence renders as "no data", never as 0%
	Scored bool `json:"scored"`

	// FieldConfidence maps a field name to its score in [0,1]
	// an absent key means unknown confidence for that field
	FieldConfidence map[string]float64 `json:"field_confidence,omitempty"`

	// IsMock is true when the record came from the local fallback extractor
	IsMock bool `json:"is_mock"`
}

// IsValidField reports whether name is one of the editable field names
func IsValidField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Get returns the current value of the named field
// unknown names return the empty string
func (r *BookingRecord) Get(field string) string {
	switch field {
	case FieldCustomerName:
		return r.CustomerName
	case FieldPhone:
		return r.Phone
	case FieldVehicle:
		return r.Vehicle
	case FieldYear:
		return r.Year
	case FieldRegistration:
		return r.Registration
	case FieldIssue:
		return r.Issue
	case FieldNotes:
		return r.Notes
	}
	return ""
}

// Set writes value into the named field verbatim
// callers that accept user edits should go through SaveEdit instead
func (r *BookingRecord) Set(field, value string) {
	switch field {
	case FieldCustomerName:
		r.CustomerName = value
	case FieldPhone:
		r.Phone = value
	case FieldVehicle:
		r.Vehicle = value
	case FieldYear:
		r.Year = value
	case FieldRegistration:
		r.Registration = value
	case FieldIssue:
		r.Issue = value
	case FieldNotes:
		r.Notes = value
	}
}

// SaveEdit trims value and stores it in the named field
// trimming is the only transformation applied; format checks stay advisory
func (r *BookingRecord) SaveEdit(field, value string) {
	r.Set(field, strings.TrimSpace(value))
}

// IsActionable reports whether the record may create a booking or estimate
// customer name, phone and issue must all be non-empty after trimming
func (r *BookingRecord) IsActionable() bool {
	return strings.TrimSpace(r.CustomerName) != "" &&
		strings.TrimSpace(r.Phone) != "" &&
		strings.TrimSpace(r.Issue) != ""
}

// HasVehicleContext reports whether a vehicle or registration was captured
// advisory only; it never affects the actionable gate
func (r *BookingRecord) HasVehicleContext() bool {
	return strings.TrimSpace(r.Vehicle) != "" || strings.TrimSpace(r.Registration) != ""
}

// MissingRequired lists the required fields that are still empty, in display order
func (r *BookingRecord) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(r.CustomerName) == "" {
		missing = append(missing, FieldCustomerName)
	}
	if strings.TrimSpace(r.Phone) == "" {
		missing = append(missing, FieldPhone)
	}
	if strings.TrimSpace(r.Issue) == "" {
		missing = append(missing, FieldIssue)
	}
	return missing
}

// ConfidenceFor returns the confidence for a field and whether one exists
// falls back to the overall score when no per-field value was reported
func (r *BookingRecord) ConfidenceFor(field string) (float64, bool) {
	if r.FieldConfidence != nil {
		if c, ok := r.FieldConfidence[field]; ok {
			return c, true
		}
	}
	if r.Scored {
		return r.OverallConfidence, true
	}
	return 0, false
}

// BandFor classifies the named field's confidence for display
func (r *BookingRecord) BandFor(field string) Band {
	c, ok := r.ConfidenceFor(field)
	if !ok {
		return BandNone
	}
	return BandOf(c)
}
