/*
balance.go - Used and remaining hours derived from a YearLedger

PURPOSE:
  Balances are never stored. Every call walks the ledger's entries and
  recomputes, so a balance cannot go stale after a mutation.

FORMULAS:
  used[c]      = sum of Hours over entries of category c
  remaining[c] = allocation[c] - used[c]     (not clamped; negative means over-booked)
  statCount    = number of Stat entries

  Day figures are hours / hoursPerDay and exist for display only.

SEE ALSO:
  - types.go: Allocation, Entry
  - repository.go: YearView wraps these results
*/
package timeoff

import (
	"github.com/shopspring/decimal"
	"github.com/warp/timeoff-tracker/generic"
)

// CategoryBalance is the bookkeeping of one deducting category.
type CategoryBalance struct {
	Category  Category
	Allocated generic.Amount
	Used      generic.Amount
	Remaining generic.Amount
}

// Overdrawn reports whether more hours were booked than allocated.
func (b CategoryBalance) Overdrawn() bool { return b.Remaining.IsNegative() }

// Balances is the result of one BalanceCalculator run.
type Balances struct {
	Categories   []CategoryBalance // Vacation, Personal, Floater in that order
	StatCount    int
	StatHolidays []Entry
}

// For returns the balance of c. Stat yields a zero balance.
func (b Balances) For(c Category) CategoryBalance {
	for _, cb := range b.Categories {
		if cb.Category == c {
			return cb
		}
	}
	return CategoryBalance{Category: c, Allocated: generic.ZeroHours(), Used: generic.ZeroHours(), Remaining: generic.ZeroHours()}
}

// BalanceCalculator derives balances and day conversions.
type BalanceCalculator struct {
	HoursPerDay decimal.Decimal
}

func NewBalanceCalculator(hoursPerDay decimal.Decimal) BalanceCalculator {
	if !hoursPerDay.IsPositive() {
		hoursPerDay = DefaultHoursPerDay()
	}
	return BalanceCalculator{HoursPerDay: hoursPerDay}
}

// UsedHours sums the hours of c's entries.
func (bc BalanceCalculator) UsedHours(l YearLedger, c Category) generic.Amount {
	used := generic.ZeroHours()
	for _, e := range l.Entries {
		if e.Category == c {
			used = used.Add(e.Hours)
		}
	}
	return used
}

// Calculate derives every balance for the ledger.
func (bc BalanceCalculator) Calculate(l YearLedger) Balances {
	out := Balances{
		Categories:   make([]CategoryBalance, 0, len(DeductingCategories)),
		StatHolidays: []Entry{},
	}
	for _, c := range DeductingCategories {
		allocated := l.Allocation.For(c)
		used := bc.UsedHours(l, c)
		out.Categories = append(out.Categories, CategoryBalance{
			Category:  c,
			Allocated: allocated,
			Used:      used,
			Remaining: allocated.Sub(used),
		})
	}
	for _, e := range l.Entries {
		if e.Category == Stat {
			out.StatHolidays = append(out.StatHolidays, e)
		}
	}
	out.StatCount = len(out.StatHolidays)
	return out
}

// InDays converts hours to days, rounded for display.
func (bc BalanceCalculator) InDays(hours generic.Amount) generic.Amount {
	return hours.InDays(bc.HoursPerDay).Rounded()
}
