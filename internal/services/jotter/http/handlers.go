// Package http provides http transport for the jotter pipeline
package http

import (
	"encoding/base64"
	stdhttp "net/http"

	"smartjotter/internal/adapters/hostapp"
	"smartjotter/internal/adapters/ink"
	"smartjotter/internal/modkit/httpkit"
	perr "smartjotter/internal/platform/errors"
	"smartjotter/internal/services/jotter/domain"
	svc "smartjotter/internal/services/jotter/service"
)

// Register mounts jotter endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.Post(r, "/runs", h.create)
	httpkit.Get(r, "/runs/{id}", h.get)
	httpkit.Delete(r, "/runs/{id}", h.destroy)

	httpkit.PostJSON[domain.SetModeInput](r, "/runs/{id}/input/mode", h.setMode)
	httpkit.PutJSON[domain.TextInput](r, "/runs/{id}/input/text", h.updateText)
	httpkit.PutJSON[domain.DrawingInput](r, "/runs/{id}/input/drawing", h.updateDrawing)
	httpkit.PostJSON[domain.StrokesInput](r, "/runs/{id}/input/strokes", h.addStrokes)
	httpkit.Post(r, "/runs/{id}/input/undo", h.undo)
	httpkit.Post(r, "/runs/{id}/input/clear", h.clear)

	httpkit.Post(r, "/runs/{id}/submit", h.submit)

	httpkit.Post(r, "/runs/{id}/record/{field}/edit", h.beginEdit)
	httpkit.PutJSON[domain.EditInput](r, "/runs/{id}/record/{field}", h.saveEdit)
	httpkit.Delete(r, "/runs/{id}/record/{field}/edit", h.cancelEdit)

	httpkit.Post(r, "/runs/{id}/edit-input", h.editInput)
	httpkit.Post(r, "/runs/{id}/reset", h.reset)
	httpkit.PostJSON[domain.DispatchInput](r, "/runs/{id}/dispatch", h.dispatch)
}

type handlers struct{ svc *svc.Service }

// @Summary Open a fresh pipeline run
// @Tags Jotter
// @Produce json
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs [post]
func (h *handlers) create(r *stdhttp.Request) (any, error) {
	return h.svc.CreateRun(r.Context()), nil
}

// @Summary Current state of a run
// @Tags Jotter
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.GetRun(r.Context(), httpkit.Param(r, "id"))
}

// @Summary Destroy a run and discard any in-flight work
// @Tags Jotter
// @Param id path string true "Run id"
// @Success 200 {object} any "ok"
// @Router /jotter/runs/{id} [delete]
func (h *handlers) destroy(r *stdhttp.Request) (any, error) {
	if err := h.svc.DestroyRun(r.Context(), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": true}, nil
}

// @Summary Switch the capture mode between text and drawing
// @Tags Jotter
// @Accept json
// @Produce json
// @Param id path string true "Run id"
// @Param payload body domain.SetModeInput true "Mode"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/input/mode [post]
func (h *handlers) setMode(r *stdhttp.Request, in domain.SetModeInput) (any, error) {
	return h.svc.SetMode(r.Context(), httpkit.Param(r, "id"), domain.InputKind(in.Kind))
}

// @Summary Replace the in-progress free text
// @Tags Jotter
// @Accept json
// @Produce json
// @Param id path string true "Run id"
// @Param payload body domain.TextInput true "Text"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/input/text [put]
func (h *handlers) updateText(r *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.UpdateText(r.Context(), httpkit.Param(r, "id"), in.Text)
}

// @Summary Replace the in-progress drawing with a raster image
// @Tags Jotter
// @Accept json
// @Produce json
// @Param id path string true "Run id"
// @Param payload body domain.DrawingInput true "Drawing"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/input/drawing [put]
func (h *handlers) updateDrawing(r *stdhttp.Request, in domain.DrawingInput) (any, error) {
	img, err := base64.StdEncoding.DecodeString(in.ImagePNG)
	if err != nil || len(img) == 0 {
		return nil, perr.Validationf("image_png must be non-empty base64")
	}
	d := ink.Drawing{ImagePNG: img, Width: in.Width, Height: in.Height}
	return h.svc.UpdateDrawing(r.Context(), httpkit.Param(r, "id"), d)
}

// @Summary Append strokes to the in-progress drawing
// @Tags Jotter
// @Accept json
// @Produce json
// @Param id path string true "Run id"
// @Param payload body domain.StrokesInput true "Strokes"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/input/strokes [post]
func (h *handlers) addStrokes(r *stdhttp.Request, in domain.StrokesInput) (any, error) {
	return h.svc.AddStrokes(r.Context(), httpkit.Param(r, "id"), in.Strokes)
}

// @Summary Undo the most recent stroke
// @Tags Jotter
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/input/undo [post]
func (h *handlers) undo(r *stdhttp.Request) (any, error) {
	return h.svc.UndoStroke(r.Context(), httpkit.Param(r, "id"))
}

// @Summary Clear the canvas
// @Tags Jotter
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/input/clear [post]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	return h.svc.ClearDrawing(r.Context(), httpkit.Param(r, "id"))
}

// @Summary Run the pipeline for the captured input
// @Tags Jotter
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} domain.RunView "ok"
// @Failure 409 {object} httpkit.Envelope "another request is in flight"
// @Router /jotter/runs/{id}/submit [post]
func (h *handlers) submit(r *stdhttp.Request) (any, error) {
	return h.svc.Submit(r.Context(), httpkit.Param(r, "id"))
}

// @Summary Open an inline editor for one record field
// @Tags Jotter
// @Produce json
// @Param id path string true "Run id"
// @Param field path string true "Field name"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/record/{field}/edit [post]
func (h *handlers) beginEdit(r *stdhttp.Request) (any, error) {
	return h.svc.BeginEdit(r.Context(), httpkit.Param(r, "id"), httpkit.Param(r, "field"))
}

// @Summary Save an edited field value
// @Tags Jotter
// @Accept json
// @Produce json
// @Param id path string true "Run id"
// @Param field path string true "Field name"
// @Param payload body domain.EditInput true "Value"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/record/{field} [put]
func (h *handlers) saveEdit(r *stdhttp.Request, in domain.EditInput) (any, error) {
	return h.svc.SaveEdit(r.Context(), httpkit.Param(r, "id"), httpkit.Param(r, "field"), in.Value)
}

// @Summary Discard an in-progress field edit
// @Tags Jotter
// @Produce json
// @Param id path string true "Run id"
// @Param field path string true "Field name"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/record/{field}/edit [delete]
func (h *handlers) cancelEdit(r *stdhttp.Request) (any, error) {
	return h.svc.CancelEdit(r.Context(), httpkit.Param(r, "id"), httpkit.Param(r, "field"))
}

// @Summary Return to input capture, discarding the record
// @Tags Jotter
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/edit-input [post]
func (h *handlers) editInput(r *stdhttp.Request) (any, error) {
	return h.svc.EditInput(r.Context(), httpkit.Param(r, "id"))
}

// @Summary Start the run over from a clean slate
// @Tags Jotter
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} domain.RunView "ok"
// @Router /jotter/runs/{id}/reset [post]
func (h *handlers) reset(r *stdhttp.Request) (any, error) {
	return h.svc.Reset(r.Context(), httpkit.Param(r, "id"))
}

// @Summary Create a booking or estimate draft from the reviewed record
// @Tags Jotter
// @Accept json
// @Produce json
// @Param id path string true "Run id"
// @Param payload body domain.DispatchInput true "Action"
// @Success 200 {object} domain.RunView "ok"
// @Failure 400 {object} httpkit.Envelope "record is not actionable"
// @Router /jotter/runs/{id}/dispatch [post]
func (h *handlers) dispatch(r *stdhttp.Request, in domain.DispatchInput) (any, error) {
	return h.svc.Dispatch(r.Context(), httpkit.Param(r, "id"), hostapp.Action(in.Action))
}
