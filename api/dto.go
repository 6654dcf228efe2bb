/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal and enum types from the wire format:
  - Hours travel as JSON numbers, rounded display strings ride alongside
  - Categories travel by name ("vacation", "stat", ...)
  - Dates travel as "YYYY-MM-DD"

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done by the engine, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/timeoff-tracker/generic"
	"github.com/warp/timeoff-tracker/timeoff"
)

// =============================================================================
// INPUT HELPERS
// =============================================================================

// HoursInput accepts either a JSON number or a string, keeping the raw text
// so the engine decides what empty or malformed input means.
type HoursInput string

func (h *HoursInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*h = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*h = HoursInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("hours must be a number or string: %w", err)
	}
	*h = HoursInput(n.String())
	return nil
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// AllocationRequest sets a year's allocation. Empty values mean zero.
type AllocationRequest struct {
	Vacation HoursInput `json:"vacation"`
	Personal HoursInput `json:"personal"`
	Floater  HoursInput `json:"floater"`
}

func (r AllocationRequest) toInput() timeoff.AllocationInput {
	return timeoff.AllocationInput{
		Vacation: string(r.Vacation),
		Personal: string(r.Personal),
		Floater:  string(r.Floater),
	}
}

// EntryRequest is the add-entry form.
type EntryRequest struct {
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Hours       HoursInput `json:"hours"`
}

func (r EntryRequest) toDraft() (timeoff.Draft, error) {
	typ := strings.TrimSpace(r.Type)
	if typ == "" {
		typ = timeoff.Vacation.String()
	}
	category, err := timeoff.ParseCategory(typ)
	if err != nil {
		return timeoff.Draft{}, &generic.FieldError{Field: "type", Err: err}
	}
	return timeoff.Draft{
		Start:       r.StartDate,
		End:         r.EndDate,
		Description: r.Description,
		Category:    category,
		Hours:       string(r.Hours),
	}, nil
}

// SelectionRequest selects an absolute year.
type SelectionRequest struct {
	Year int `json:"year"`
}

// ShiftRequest moves the selected year by Delta.
type ShiftRequest struct {
	Delta int `json:"delta"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type SettingsDTO struct {
	HoursPerDay       float64       `json:"hours_per_day"`
	WeekStart         string        `json:"week_start"`
	DefaultAllocation AllocationDTO `json:"default_allocation"`
	Categories        []CategoryDTO `json:"categories"`
}

type CategoryDTO struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
	Deducts bool   `json:"deducts"`
}

type AllocationDTO struct {
	Vacation float64 `json:"vacation"`
	Personal float64 `json:"personal"`
	Floater  float64 `json:"floater"`
}

type EntryDTO struct {
	ID          string  `json:"id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Display     string  `json:"display"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Hours       float64 `json:"hours"`
	Days        int     `json:"days"`
}

// BalanceDTO shows one deducting category. *_days are display values.
type BalanceDTO struct {
	Type           string  `json:"type"`
	Label          string  `json:"label"`
	AllocatedHours float64 `json:"allocated_hours"`
	AllocatedDays  string  `json:"allocated_days"`
	UsedHours      float64 `json:"used_hours"`
	UsedDisplay    string  `json:"used_display"`
	RemainingHours float64 `json:"remaining_hours"`
	RemainingDays  string  `json:"remaining_days"`
	Overdrawn      bool    `json:"overdrawn"`
}

type YearViewDTO struct {
	Year         int           `json:"year"`
	HoursPerDay  float64       `json:"hours_per_day"`
	Allocation   AllocationDTO `json:"allocation"`
	Balances     []BalanceDTO  `json:"balances"`
	Entries      []EntryDTO    `json:"entries"`
	StatCount    int           `json:"stat_count"`
	StatHolidays []EntryDTO    `json:"stat_holidays"`
}

type DayCellDTO struct {
	Date    string     `json:"date"`
	Day     int        `json:"day"`
	Weekday string     `json:"weekday"`
	Entries []EntryDTO `json:"entries"`
}

type MonthViewDTO struct {
	Year              int          `json:"year"`
	Month             int          `json:"month"`
	MonthName         string       `json:"month_name"`
	DaysInMonth       int          `json:"days_in_month"`
	LeadingBlankCells int          `json:"leading_blank_cells"`
	WeekdayHeaders    []string     `json:"weekday_headers"`
	Days              []DayCellDTO `json:"days"`
}

type DateEntriesDTO struct {
	Date    string     `json:"date"`
	Entries []EntryDTO `json:"entries"`
}

type SuggestionDTO struct {
	Available bool    `json:"available"`
	Hours     float64 `json:"hours"`
	Days      int     `json:"days"`
}

type RemoveResultDTO struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

type SelectionDTO struct {
	Year int `json:"year"`
}

type YearsDTO struct {
	Years []int `json:"years"`
}

// ErrorResponse is the error body. Field names the offending input when known.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toAllocationDTO(a timeoff.Allocation) AllocationDTO {
	return AllocationDTO{
		Vacation: a.Vacation.Float64(),
		Personal: a.Personal.Float64(),
		Floater:  a.Floater.Float64(),
	}
}

func toCategoryDTOs() []CategoryDTO {
	out := make([]CategoryDTO, 0, len(timeoff.Categories))
	for _, c := range timeoff.Categories {
		d := c.Descriptor()
		out = append(out, CategoryDTO{Name: d.Name, Label: d.Label, Color: d.Color, Icon: d.Icon, Deducts: d.Deducts})
	}
	return out
}

func toEntryDTO(e timeoff.Entry) EntryDTO {
	return EntryDTO{
		ID:          string(e.ID),
		StartDate:   e.Start.String(),
		EndDate:     e.End.String(),
		Display:     e.Period().Display(),
		Description: e.Description,
		Type:        e.Category.String(),
		Hours:       e.Hours.Float64(),
		Days:        e.Days,
	}
}

func toEntryDTOs(entries []timeoff.Entry) []EntryDTO {
	out := make([]EntryDTO, len(entries))
	for i, e := range entries {
		out[i] = toEntryDTO(e)
	}
	return out
}

func toYearViewDTO(v timeoff.YearView, bc timeoff.BalanceCalculator) YearViewDTO {
	balances := make([]BalanceDTO, 0, len(v.Balances.Categories))
	for _, b := range v.Balances.Categories {
		balances = append(balances, BalanceDTO{
			Type:           b.Category.String(),
			Label:          b.Category.Descriptor().Label,
			AllocatedHours: b.Allocated.Float64(),
			AllocatedDays:  bc.InDays(b.Allocated).Display(),
			UsedHours:      b.Used.Float64(),
			UsedDisplay:    b.Used.Display(),
			RemainingHours: b.Remaining.Float64(),
			RemainingDays:  bc.InDays(b.Remaining).Display(),
			Overdrawn:      b.Overdrawn(),
		})
	}
	return YearViewDTO{
		Year:         v.Year,
		HoursPerDay:  hoursPerDay(v.HoursPerDay),
		Allocation:   toAllocationDTO(v.Allocation),
		Balances:     balances,
		Entries:      toEntryDTOs(v.Entries),
		StatCount:    v.StatCount(),
		StatHolidays: toEntryDTOs(v.Balances.StatHolidays),
	}
}

func toMonthViewDTO(v timeoff.MonthView, headers []string) MonthViewDTO {
	days := make([]DayCellDTO, len(v.Days))
	for i, c := range v.Days {
		days[i] = DayCellDTO{
			Date:    c.Date.String(),
			Day:     c.Date.Day(),
			Weekday: c.Date.Weekday().String(),
			Entries: toEntryDTOs(c.Entries),
		}
	}
	return MonthViewDTO{
		Year:              v.Grid.Year,
		Month:             int(v.Grid.Month),
		MonthName:         v.Grid.Month.String(),
		DaysInMonth:       v.Grid.DaysInMonth,
		LeadingBlankCells: v.Grid.LeadingBlankCells,
		WeekdayHeaders:    headers,
		Days:              days,
	}
}

func hoursPerDay(d decimal.Decimal) float64 { return d.InexactFloat64() }
