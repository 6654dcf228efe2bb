/*
handlers.go - HTTP API handlers for the time-off tracker

PURPOSE:
  Exposes the engine's queries and commands to a presentation layer over
  JSON. Handlers parse the request, call the Repository and serialize the
  derived view. No business rule lives here.

ENDPOINTS:
  Settings:
    GET    /api/settings                     Hours per day, week start, categories

  Years:
    GET    /api/years                        Years that have been written
    GET    /api/years/{year}                 Year view (balances, entries, stats)
    PUT    /api/years/{year}/allocation      Replace allocation
    POST   /api/years/{year}/entries         Add entry
    DELETE /api/years/{year}/entries/{id}    Remove entry

  Calendar:
    GET    /api/years/{year}/months/{month}  Month grid with per-day entries
    GET    /api/years/{year}/dates/{date}    Entries covering a date

  Helpers:
    GET    /api/suggest?start=&end=&type=    Suggested hours for a range

  Selection:
    GET    /api/selection                    Selected year
    PUT    /api/selection                    Select absolute year
    POST   /api/selection/shift              Move selection by delta

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed path or body
  - 422: Validation failure (nothing was changed)
  - 500: Store failures
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/warp/timeoff-tracker/generic"
	"github.com/warp/timeoff-tracker/timeoff"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Repo *timeoff.Repository
}

// NewHandler creates a new handler over repo.
func NewHandler(repo *timeoff.Repository) *Handler {
	return &Handler{Repo: repo}
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSettings returns the engine configuration a client needs for display.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s := h.Repo.Settings()
	writeJSON(w, http.StatusOK, SettingsDTO{
		HoursPerDay:       hoursPerDay(s.HoursPerDay),
		WeekStart:         s.WeekStart.String(),
		DefaultAllocation: toAllocationDTO(s.DefaultAllocation),
		Categories:        toCategoryDTOs(),
	})
}

// =============================================================================
// YEAR HANDLERS
// =============================================================================

// ListYears returns the years that have been written.
func (h *Handler) ListYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.Repo.Years(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list years", err)
		return
	}
	writeJSON(w, http.StatusOK, YearsDTO{Years: years})
}

// GetYear returns the year view. Reading never creates the year.
func (h *Handler) GetYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	view, err := h.Repo.YearView(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load year", err)
		return
	}
	writeJSON(w, http.StatusOK, toYearViewDTO(view, h.Repo.Balances()))
}

// SetAllocation replaces the allocation of a year.
func (h *Handler) SetAllocation(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	var req AllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Repo.SetAllocationInput(r.Context(), year, req.toInput()); err != nil {
		writeCommandError(w, "Allocation not updated", err)
		return
	}
	h.GetYear(w, r)
}

// AddEntry records a new entry in a year.
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		writeCommandError(w, "Entry not added", err)
		return
	}
	entry, err := h.Repo.AddEntry(r.Context(), year, draft)
	if err != nil {
		writeCommandError(w, "Entry not added", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(entry))
}

// RemoveEntry deletes an entry. Unknown ids succeed with removed=false.
func (h *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	removed, err := h.Repo.RemoveEntry(r.Context(), year, timeoff.EntryID(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove entry", err)
		return
	}
	writeJSON(w, http.StatusOK, RemoveResultDTO{ID: id, Removed: removed})
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// GetMonth returns the grid of a month with each day's entries.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use 1-12)", err)
		return
	}
	view, err := h.Repo.MonthView(r.Context(), year, time.Month(month))
	if err != nil {
		writeCommandError(w, "Invalid month (use 1-12)", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthViewDTO(view, h.Repo.Calendar().WeekdayHeaders()))
}

// GetDate returns every entry of a year's ledger that covers the date.
func (h *Handler) GetDate(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	date, err := generic.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	entries, err := h.Repo.EntriesForDate(r.Context(), year, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entries", err)
		return
	}
	writeJSON(w, http.StatusOK, DateEntriesDTO{Date: date.String(), Entries: toEntryDTOs(entries)})
}

// Suggest proposes hours for a date range, the way the entry form pre-fills.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	draft, err := EntryRequest{StartDate: q.Get("start"), EndDate: q.Get("end"), Type: q.Get("type")}.toDraft()
	if err != nil {
		writeCommandError(w, "Cannot suggest hours", err)
		return
	}
	hours, ok := h.Repo.SuggestHours(draft)
	if !ok {
		writeJSON(w, http.StatusOK, SuggestionDTO{Available: false})
		return
	}
	period, _ := draft.Period()
	writeJSON(w, http.StatusOK, SuggestionDTO{
		Available: true,
		Hours:     hours.Float64(),
		Days:      period.BusinessDays(),
	})
}

// =============================================================================
// SELECTION HANDLERS
// =============================================================================

func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SelectionDTO{Year: h.Repo.SelectedYear()})
}

func (h *Handler) SelectYear(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.Repo.SelectYear(req.Year)
	writeJSON(w, http.StatusOK, SelectionDTO{Year: h.Repo.SelectedYear()})
}

func (h *Handler) ShiftYear(w http.ResponseWriter, r *http.Request) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	writeJSON(w, http.StatusOK, SelectionDTO{Year: h.Repo.ShiftYear(req.Delta)})
}

// =============================================================================
// HELPERS
// =============================================================================

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, false
	}
	return year, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
		if status >= http.StatusInternalServerError {
			log.WithError(err).Error(message)
		}
	}
	writeJSON(w, status, resp)
}

// writeCommandError maps validation failures to 422 and everything else to 500.
func writeCommandError(w http.ResponseWriter, message string, err error) {
	if !generic.IsValidation(err) {
		writeError(w, http.StatusInternalServerError, message, err)
		return
	}
	resp := ErrorResponse{Error: message, Details: err.Error()}
	var fe *generic.FieldError
	if errors.As(err, &fe) {
		resp.Field = fe.Field
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}
