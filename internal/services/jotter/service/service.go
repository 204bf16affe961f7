// Package service implements the jotter pipeline orchestrator. It owns the
// in-memory run registry and is the only writer of run state; adapters are
// reached through the ports in domain
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartjotter/internal/adapters/hostapp"
	"smartjotter/internal/adapters/ink"
	"smartjotter/internal/core/normalize"
	"smartjotter/internal/core/pipeline"
	"smartjotter/internal/core/record"
	perr "smartjotter/internal/platform/errors"
	"smartjotter/internal/platform/logger"
	dom "smartjotter/internal/services/jotter/domain"
)

// Config for the jotter service
type Config struct {
	// MaxTextLen caps free text input; longer text blocks submission
	MaxTextLen int
	// RunTTL evicts abandoned runs; zero means the 30 minute default
	RunTTL time.Duration
}

// run is the orchestration state for one capture-to-review cycle
// raw input is discarded once review begins, it is not retained for audit
type run struct {
	id      string
	machine *pipeline.Machine
	kind    dom.InputKind

	text    string
	drawing ink.Drawing

	rec     *record.BookingRecord
	editing map[string]string

	// inFlight serializes submission; gen tags in-flight work so results
	// landing after a reset are discarded instead of mutating fresh state
	inFlight bool
	gen      uint64

	notice  string
	draft   *hostapp.DraftRef
	touched time.Time
}

// Service implements the pipeline orchestration for all active runs
type Service struct {
	mu   sync.Mutex
	runs map[string]*run

	recognizer dom.RecognizerPort
	extractor  dom.ExtractorPort
	dispatcher dom.DispatcherPort

	norm *normalize.Normalizer
	cfg  Config
	log  logger.Logger
	now  func() time.Time
}

// New constructs the jotter service
func New(recognizer dom.RecognizerPort, extractor dom.ExtractorPort, dispatcher dom.DispatcherPort, cfg Config) *Service {
	if cfg.MaxTextLen <= 0 {
		cfg.MaxTextLen = 1000
	}
	if cfg.RunTTL <= 0 {
		cfg.RunTTL = 30 * time.Minute
	}
	return &Service{
		runs:       map[string]*run{},
		recognizer: recognizer,
		extractor:  extractor,
		dispatcher: dispatcher,
		norm:       normalize.New(),
		cfg:        cfg,
		log:        *logger.Named("jotter"),
		now:        time.Now,
	}
}

// CreateRun opens a fresh run at AwaitingInput in text mode
func (s *Service) CreateRun(ctx context.Context) dom.RunView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	r := &run{
		id:      uuid.NewString(),
		machine: pipeline.NewMachine(),
		kind:    dom.KindText,
		touched: s.now(),
	}
	s.runs[r.id] = r
	logger.C(ctx).Info().Str("run_id", r.id).Msg("run created")
	return s.viewLocked(r)
}

// GetRun returns the current state of a run
func (s *Service) GetRun(_ context.Context, id string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	return s.viewLocked(r), nil
}

// DestroyRun drops a run, discarding any in-flight result on arrival
func (s *Service) DestroyRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return err
	}
	r.gen++
	delete(s.runs, id)
	return nil
}

// SetMode switches the capture kind and clears data held for the other kind
func (s *Service) SetMode(_ context.Context, id string, kind dom.InputKind) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	if err := s.mustAwaitingLocked(r); err != nil {
		return dom.RunView{}, err
	}
	if r.kind != kind {
		r.kind = kind
		r.text = ""
		r.drawing = ink.Drawing{}
		r.notice = ""
	}
	return s.viewLocked(r), nil
}

// UpdateText replaces the in-progress free text
// overlong text is kept but flagged; submission stays blocked until trimmed
func (s *Service) UpdateText(_ context.Context, id, text string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	if err := s.mustAwaitingLocked(r); err != nil {
		return dom.RunView{}, err
	}
	if r.kind != dom.KindText {
		return dom.RunView{}, perr.Conflictf("run is in drawing mode")
	}
	r.text = text
	if len([]rune(text)) > s.cfg.MaxTextLen {
		r.notice = "note is too long, shorten it to submit"
	} else {
		r.notice = ""
	}
	return s.viewLocked(r), nil
}

// UpdateDrawing replaces the drawing with a raster image
func (s *Service) UpdateDrawing(_ context.Context, id string, d ink.Drawing) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	if err := s.mustAwaitingLocked(r); err != nil {
		return dom.RunView{}, err
	}
	if r.kind != dom.KindDrawing {
		return dom.RunView{}, perr.Conflictf("run is in text mode")
	}
	r.drawing = d
	r.notice = ""
	return s.viewLocked(r), nil
}

// AddStrokes appends strokes to the in-progress drawing
func (s *Service) AddStrokes(_ context.Context, id string, strokes []ink.Stroke) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	if err := s.mustAwaitingLocked(r); err != nil {
		return dom.RunView{}, err
	}
	if r.kind != dom.KindDrawing {
		return dom.RunView{}, perr.Conflictf("run is in text mode")
	}
	r.drawing.Strokes = append(r.drawing.Strokes, strokes...)
	r.notice = ""
	return s.viewLocked(r), nil
}

// UndoStroke pops the most recent stroke; a no-op on an empty canvas
func (s *Service) UndoStroke(_ context.Context, id string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	if err := s.mustAwaitingLocked(r); err != nil {
		return dom.RunView{}, err
	}
	if n := len(r.drawing.Strokes); n > 0 {
		r.drawing.Strokes = r.drawing.Strokes[:n-1]
	}
	return s.viewLocked(r), nil
}

// ClearDrawing empties the canvas; a no-op when already empty
func (s *Service) ClearDrawing(_ context.Context, id string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	if err := s.mustAwaitingLocked(r); err != nil {
		return dom.RunView{}, err
	}
	r.drawing = ink.Drawing{}
	return s.viewLocked(r), nil
}

// Submit runs the pipeline for the captured input synchronously
// at most one submission per run may be in flight
func (s *Service) Submit(ctx context.Context, id string) (dom.RunView, error) {
	s.mu.Lock()
	r, err := s.getLocked(id)
	if err != nil {
		s.mu.Unlock()
		return dom.RunView{}, err
	}
	if r.inFlight {
		s.mu.Unlock()
		return dom.RunView{}, perr.Conflictf("request already in flight")
	}
	if r.machine.Stage() != pipeline.StageAwaitingInput {
		s.mu.Unlock()
		return dom.RunView{}, perr.Conflictf("run is not awaiting input")
	}

	var text string
	var drawing ink.Drawing
	switch r.kind {
	case dom.KindText:
		text = strings.TrimSpace(r.text)
		// text made of zero-width or format characters survives the trim
		// but normalizes to nothing, so gate on the normalized form too
		if text == "" || s.norm.Normalize(text) == "" {
			s.mu.Unlock()
			return dom.RunView{}, perr.Validationf("nothing to process, type a note first")
		}
		if len([]rune(r.text)) > s.cfg.MaxTextLen {
			s.mu.Unlock()
			return dom.RunView{}, perr.Validationf("note is too long, shorten it to submit")
		}
		if err := r.machine.To(pipeline.StageExtracting); err != nil {
			s.mu.Unlock()
			return dom.RunView{}, err
		}
	case dom.KindDrawing:
		if r.drawing.Empty() {
			s.mu.Unlock()
			return dom.RunView{}, perr.Validationf("nothing to process, draw something first")
		}
		drawing = r.drawing
		if err := r.machine.To(pipeline.StageRecognizing); err != nil {
			s.mu.Unlock()
			return dom.RunView{}, err
		}
	}
	r.inFlight = true
	r.notice = ""
	gen := r.gen
	kind := r.kind
	s.mu.Unlock()

	// network work happens unlocked; results are applied only if the run
	// generation is unchanged when they land
	if kind == dom.KindDrawing {
		res := s.recognizer.Recognize(logger.WithRun(ctx, id), drawing)
		text = strings.TrimSpace(res.Text)

		s.mu.Lock()
		cur, ok := s.runs[id]
		if !ok || cur.gen != gen {
			s.mu.Unlock()
			s.log.Debug().Str("run_id", id).Msg("stale recognition result discarded")
			return dom.RunView{}, perr.NotFoundf("run was reset")
		}
		cur.inFlight = false
		if res.Err != "" {
			_ = cur.machine.Fail(pipeline.ErrRecognition, "handwriting could not be read, start over")
			v := s.viewLocked(cur)
			s.mu.Unlock()
			return v, nil
		}
		if text == "" {
			_ = cur.machine.Fail(pipeline.ErrRecognition, "nothing legible in the drawing, start over")
			v := s.viewLocked(cur)
			s.mu.Unlock()
			return v, nil
		}
		if err := cur.machine.To(pipeline.StageExtracting); err != nil {
			s.mu.Unlock()
			return dom.RunView{}, err
		}
		cur.inFlight = true
		s.mu.Unlock()
	}

	rec, notice, err := s.extractor.Extract(logger.WithRun(ctx, id), s.norm.Normalize(text))

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.runs[id]
	if !ok || cur.gen != gen {
		s.log.Debug().Str("run_id", id).Msg("stale extraction result discarded")
		return dom.RunView{}, perr.NotFoundf("run was reset")
	}
	cur.inFlight = false
	if err != nil {
		// extraction rejects only empty text; typed text is gated at submit,
		// so this is recognized text that normalized away to nothing
		_ = cur.machine.Fail(pipeline.ErrRecognition, "nothing legible to extract from, start over")
		return s.viewLocked(cur), nil
	}
	if err := cur.machine.To(pipeline.StageReviewing); err != nil {
		return dom.RunView{}, err
	}
	cur.rec = &rec
	cur.editing = map[string]string{}
	cur.notice = notice
	if notice != "" {
		cur.machine.Note(pipeline.ErrExtraction, notice)
	}
	// raw input is not retained once review begins
	cur.text = ""
	cur.drawing = ink.Drawing{}
	return s.viewLocked(cur), nil
}

// BeginEdit opens an inline editor for one field
func (s *Service) BeginEdit(_ context.Context, id, field string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.reviewingLocked(id, field)
	if err != nil {
		return dom.RunView{}, err
	}
	r.editing[field] = r.rec.Get(field)
	return s.viewLocked(r), nil
}

// SaveEdit trims the value, writes it into the record and closes the editor
func (s *Service) SaveEdit(_ context.Context, id, field, value string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.reviewingLocked(id, field)
	if err != nil {
		return dom.RunView{}, err
	}
	r.rec.SaveEdit(field, value)
	delete(r.editing, field)
	return s.viewLocked(r), nil
}

// CancelEdit discards the in-progress edit and reverts to the saved value
func (s *Service) CancelEdit(_ context.Context, id, field string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.reviewingLocked(id, field)
	if err != nil {
		return dom.RunView{}, err
	}
	delete(r.editing, field)
	return s.viewLocked(r), nil
}

// EditInput returns a reviewing run to AwaitingInput, discarding the record
func (s *Service) EditInput(_ context.Context, id string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	if r.machine.Stage() != pipeline.StageReviewing {
		return dom.RunView{}, perr.Conflictf("run is not in review")
	}
	// a pending dispatch owns the in-flight slot; letting the run rewind
	// here would leave the slot marked busy after the stale result lands
	if r.inFlight {
		return dom.RunView{}, perr.Conflictf("request already in flight")
	}
	if err := r.machine.To(pipeline.StageAwaitingInput); err != nil {
		return dom.RunView{}, err
	}
	r.gen++
	r.rec = nil
	r.editing = nil
	r.notice = ""
	r.draft = nil
	return s.viewLocked(r), nil
}

// Reset starts the run over from AwaitingInput, discarding everything
// in-flight results arriving later are ignored
func (s *Service) Reset(_ context.Context, id string) (dom.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.getLocked(id)
	if err != nil {
		return dom.RunView{}, err
	}
	r.gen++
	r.machine = pipeline.NewMachine()
	r.kind = dom.KindText
	r.text = ""
	r.drawing = ink.Drawing{}
	r.rec = nil
	r.editing = nil
	r.inFlight = false
	r.notice = ""
	r.draft = nil
	return s.viewLocked(r), nil
}

// Dispatch hands the reviewed record to the host application
// a dispatch failure keeps the run in review so the user can retry
func (s *Service) Dispatch(ctx context.Context, id string, action hostapp.Action) (dom.RunView, error) {
	s.mu.Lock()
	r, err := s.getLocked(id)
	if err != nil {
		s.mu.Unlock()
		return dom.RunView{}, err
	}
	if r.machine.Stage() != pipeline.StageReviewing {
		s.mu.Unlock()
		return dom.RunView{}, perr.Conflictf("run is not in review")
	}
	if r.inFlight {
		s.mu.Unlock()
		return dom.RunView{}, perr.Conflictf("request already in flight")
	}
	rec := *r.rec
	if !rec.IsActionable() {
		missing := strings.Join(rec.MissingRequired(), ", ")
		s.mu.Unlock()
		return dom.RunView{}, perr.Validationf("missing required fields: %s", missing)
	}
	r.inFlight = true
	gen := r.gen
	s.mu.Unlock()

	ref, derr := s.dispatcher.CreateDraft(logger.WithRun(ctx, id), action, rec)

	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.runs[id]
	if !ok || cur.gen != gen {
		return dom.RunView{}, perr.NotFoundf("run was reset")
	}
	cur.inFlight = false
	if derr != nil {
		cur.machine.Note(pipeline.ErrActionDispatch, "could not create the "+string(action)+", try again")
		return s.viewLocked(cur), derr
	}
	if err := cur.machine.To(pipeline.StageDone); err != nil {
		return dom.RunView{}, err
	}
	cur.machine.ClearError()
	cur.draft = &ref
	logger.C(ctx).Info().Str("run_id", id).Str("draft_id", ref.ID).Str("kind", string(action)).Msg("draft created")
	return s.viewLocked(cur), nil
}

// getLocked fetches a live run and refreshes its eviction clock
func (s *Service) getLocked(id string) (*run, error) {
	r, ok := s.runs[id]
	if !ok {
		return nil, perr.NotFoundf("run not found")
	}
	if s.now().Sub(r.touched) > s.cfg.RunTTL {
		delete(s.runs, id)
		return nil, perr.NotFoundf("run expired")
	}
	r.touched = s.now()
	return r, nil
}

// mustAwaitingLocked guards capture operations to the input stage
func (s *Service) mustAwaitingLocked(r *run) error {
	if r.inFlight {
		return perr.Conflictf("request already in flight")
	}
	if r.machine.Stage() != pipeline.StageAwaitingInput {
		return perr.Conflictf("run is not awaiting input")
	}
	return nil
}

// reviewingLocked guards edit operations to review stage and known fields
func (s *Service) reviewingLocked(id, field string) (*run, error) {
	r, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}
	if r.machine.Stage() != pipeline.StageReviewing {
		return nil, perr.Conflictf("run is not in review")
	}
	if !record.IsValidField(field) {
		return nil, perr.NotFoundf("unknown field %q", field)
	}
	return r, nil
}

// sweepLocked evicts runs idle past the TTL
func (s *Service) sweepLocked() {
	cutoff := s.now().Add(-s.cfg.RunTTL)
	for id, r := range s.runs {
		if r.touched.Before(cutoff) {
			delete(s.runs, id)
		}
	}
}
