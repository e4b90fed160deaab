package handler

import (
	"fmt"
	"net/http"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/export"
	"github.com/gorilla/mux"
)

// Analyze scores the posted snapshot without storing it
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var snap analysis.Snapshot
	if !decodeJSON(w, r, &snap) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Analyze(snap, h.locale(r)))
}

type saveRequest struct {
	Title string            `json:"title"`
	Data  analysis.Snapshot `json:"data"`
}

// Save stores a snapshot and returns the record with its report
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	loc := h.locale(r)
	rec, err := h.svc.Save(r.Context(), currentUserID(r), req.Data, req.Title, loc)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"record":  rec,
		"report":  h.svc.Analyze(rec.Snapshot, loc),
	})
}

// Latest returns the newest record; record is null for users without one.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Latest(r.Context(), currentUserID(r))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "record": rec})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), currentUserID(r))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analyses": list})
}

// Get returns a stored record scored in the request locale
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rec, report, err := h.svc.ReportFor(r.Context(), currentUserID(r), mux.Vars(r)["id"], h.locale(r))
	if err != nil {
		h.serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "record": rec, "report": report})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.Delete(r.Context(), currentUserID(r), mux.Vars(r)["id"])
	if err != nil {
		h.serviceError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Export downloads a stored record's report as json, yaml, xml or text
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, report, err := h.svc.ReportFor(r.Context(), currentUserID(r), mux.Vars(r)["id"], h.locale(r))
	if err != nil {
		h.serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="analysis-%s.%s"`, rec.ID, format.Extension()))
	if err := export.Render(w, report, format); err != nil {
		h.log.Errorf("Failed to render analysis %s as %s: %v", rec.ID, format, err)
	}
}
