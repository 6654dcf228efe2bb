package timeoff

import (
	"github.com/shopspring/decimal"
	"github.com/warp/timeoff-tracker/generic"
)

// =============================================================================
// DRAFT - Unvalidated entry as typed by the user
// =============================================================================

// Draft carries raw form input. Dates are YYYY-MM-DD strings and Hours is
// whatever the user typed; nothing is trusted until Build.
type Draft struct {
	Start       string
	End         string
	Description string
	Category    Category
	Hours       string
}

// Build validates the draft and creates the entry it describes.
//
// Rules:
//   - both dates present and well formed
//   - End not before Start
//   - Hours numeric and non-negative unless the category is Stat,
//     in which case Hours is ignored and stored as zero
func (d Draft) Build(ids IDGenerator) (Entry, error) {
	if !d.Category.Valid() {
		return Entry{}, &generic.FieldError{Field: "type", Err: generic.ErrUnknownCategory}
	}
	period, err := d.period()
	if err != nil {
		return Entry{}, err
	}

	hours := generic.ZeroHours()
	if d.Category.Deducts() {
		hours, err = generic.ParseHours(d.Hours)
		if err != nil {
			return Entry{}, &generic.FieldError{Field: "hours", Err: err}
		}
	}

	return Entry{
		ID:          ids.NewID(),
		Start:       period.Start,
		End:         period.End,
		Description: d.Description,
		Category:    d.Category,
		Hours:       hours,
		Days:        period.BusinessDays(),
	}, nil
}

func (d Draft) period() (generic.Period, error) {
	start, err := generic.ParseDate(d.Start)
	if err != nil {
		return generic.Period{}, &generic.FieldError{Field: "start_date", Err: err}
	}
	end, err := generic.ParseDate(d.End)
	if err != nil {
		return generic.Period{}, &generic.FieldError{Field: "end_date", Err: err}
	}
	p, err := generic.NewPeriod(start, end)
	if err != nil {
		return generic.Period{}, &generic.FieldError{Field: "end_date", Err: err}
	}
	return p, nil
}

// Period returns the draft's validated date range.
func (d Draft) Period() (generic.Period, error) { return d.period() }

// SuggestHours is the hours a draft would cost if every business day in its
// range were taken in full. It only answers once both dates are present and
// valid and the category deducts; otherwise ok is false.
func (d Draft) SuggestHours(hoursPerDay decimal.Decimal) (generic.Amount, bool) {
	if !d.Category.Deducts() {
		return generic.Amount{}, false
	}
	p, err := d.period()
	if err != nil {
		return generic.Amount{}, false
	}
	days := decimal.NewFromInt(int64(p.BusinessDays()))
	return generic.HoursOf(days.Mul(hoursPerDay)), true
}
