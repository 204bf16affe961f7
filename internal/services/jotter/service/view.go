package service

import (
	"smartjotter/internal/core/record"
	dom "smartjotter/internal/services/jotter/domain"
)

// viewLocked projects run state for the client; caller holds s.mu
func (s *Service) viewLocked(r *run) dom.RunView {
	v := dom.RunView{
		ID:        r.id,
		Stage:     r.machine.Stage().String(),
		Kind:      r.kind,
		Text:      r.text,
		TextLimit: s.cfg.MaxTextLen,
		Strokes:   len(r.drawing.Strokes),
		HasRaster: len(r.drawing.ImagePNG) > 0,
		LastError: r.machine.LastError(),
		Notice:    r.notice,
		Draft:     r.draft,
	}
	if r.rec != nil {
		v.Record = recordView(r.rec, r.editing)
	}
	return v
}

// recordView renders the record with per-field confidence bands
func recordView(rec *record.BookingRecord, editing map[string]string) *dom.RecordView {
	rv := &dom.RecordView{
		Actionable:        rec.IsActionable(),
		MissingRequired:   rec.MissingRequired(),
		HasVehicleContext: rec.HasVehicleContext(),
		IsMock:            rec.IsMock,
		OverallBand:       record.BandNone.String(),
	}
	if rec.Scored {
		rv.OverallBand = record.BandOf(rec.OverallConfidence).String()
	}
	for _, f := range record.Fields {
		fv := dom.FieldView{
			Name:  f,
			Value: rec.Get(f),
			Band:  rec.BandFor(f).String(),
		}
		if c, ok := rec.ConfidenceFor(f); ok {
			score := c
			fv.Score = &score
		}
		if editing != nil {
			_, fv.Editing = editing[f]
		}
		rv.Fields = append(rv.Fields, fv)
	}
	return rv
}
