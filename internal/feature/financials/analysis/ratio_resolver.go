package analysis

import "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"

// ResolveRatio picks the entry to display for sel. entries must be sorted
// descending by (year, quarter).
//
// The selected year wins when it has entries: the exact quarter if present,
// otherwise the first entry of that year. Without a usable year the most
// recent entry is returned.
func ResolveRatio(entries []entity.RatioEntry, sel entity.PeriodSelection) (entity.RatioEntry, bool) {
	if len(entries) == 0 {
		return entity.RatioEntry{}, false
	}
	if sel.Year != nil {
		var first *entity.RatioEntry
		for i := range entries {
			e := &entries[i]
			if e.Year != *sel.Year {
				continue
			}
			if sel.Quarter != nil && e.Quarter == *sel.Quarter {
				return *e, true
			}
			if first == nil {
				first = e
			}
		}
		if first != nil {
			return *first, true
		}
	}
	return entries[0], true
}

// Reconcile returns the selection to use after entries changed. A selection
// that still exists is kept. A selected year that still has entries is kept
// with its quarter moved to the first quarter listed for that year. Otherwise
// the selection moves to the first entry. entries must be sorted descending.
func Reconcile(old entity.PeriodSelection, entries []entity.RatioEntry) entity.PeriodSelection {
	if len(entries) == 0 {
		return entity.PeriodSelection{}
	}
	if old.Year != nil {
		firstQuarter, found := 0, false
		for _, e := range entries {
			if e.Year != *old.Year {
				continue
			}
			if old.Quarter != nil && e.Quarter == *old.Quarter {
				return old
			}
			if !found {
				firstQuarter, found = e.Quarter, true
			}
		}
		if found {
			return entity.NewSelection(*old.Year, firstQuarter)
		}
	}
	return entity.NewSelection(entries[0].Year, entries[0].Quarter)
}
