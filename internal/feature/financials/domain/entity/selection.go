package entity

// PeriodSelection is the (year, quarter) picked on the dashboard.
// A nil field means nothing is selected for it yet.
type PeriodSelection struct {
	Year    *int
	Quarter *int
}

// NewSelection builds a selection with both parts set.
func NewSelection(year, quarter int) PeriodSelection {
	return PeriodSelection{Year: &year, Quarter: &quarter}
}

// Matches reports whether the selection points exactly at (year, quarter).
func (s PeriodSelection) Matches(year, quarter int) bool {
	return s.Year != nil && s.Quarter != nil && *s.Year == year && *s.Quarter == quarter
}
