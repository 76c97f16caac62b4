// Package format renders dashboard numbers as display strings.
//
// All functions are total: nil, NaN and infinite inputs render as Dash.
package format

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Dash is shown wherever a value is unavailable.
const Dash = "—"

// CSS classes returned by AmountClass and YoYClass.
const (
	ClassNeutral  = "neutral"
	ClassWarn     = "warn"
	ClassPositive = "positive"
)

const (
	billion  = 1e9
	million  = 1e6
	trillion = 1e12
)

// Formatter formats numbers for one locale.
type Formatter struct {
	printer *message.Printer
}

// New returns a Formatter for tag.
func New(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// ParseLocale builds a Formatter from a BCP 47 string, falling back to Vietnamese.
func ParseLocale(s string) *Formatter {
	tag, err := language.Parse(s)
	if err != nil || s == "" {
		tag = language.Vietnamese
	}
	return New(tag)
}

var std = New(language.Vietnamese)

// Currency renders v in billions of VND with up to 3 fraction digits.
func (f *Formatter) Currency(v *float64) string {
	if !finite(v) {
		return Dash
	}
	return f.decimal(*v/billion, 3)
}

// Percent renders v with 2 decimals and an explicit sign. v is multiplied by
// 100 when alreadyFraction is true (ratios such as ROE = 0.18).
func (f *Formatter) Percent(v *float64, alreadyFraction bool) string {
	if !finite(v) {
		return Dash
	}
	val := *v
	if alreadyFraction {
		val *= 100
	}
	return signed(val, 2) + "%"
}

// YoYString renders a year-over-year change with 1 decimal and a sign.
func (f *Formatter) YoYString(pct *float64) string {
	if !finite(pct) {
		return Dash
	}
	return signed(*pct, 1) + "%"
}

// MagnitudeScaled renders large amounts with a T, B or M suffix.
func (f *Formatter) MagnitudeScaled(v *float64) string {
	if !finite(v) {
		return Dash
	}
	abs := math.Abs(*v)
	switch {
	case abs >= trillion:
		return f.decimal(*v/trillion, 2) + "T"
	case abs >= billion:
		return f.decimal(*v/billion, 2) + "B"
	case abs >= million:
		return f.decimal(*v/million, 2) + "M"
	}
	return f.decimal(*v, 0)
}

// Multiple renders a plain ratio such as P/E or a turnover with 2 decimals.
func (f *Formatter) Multiple(v *float64) string {
	if !finite(v) {
		return Dash
	}
	return f.decimal(*v, 2)
}

// VND renders the full amount in dong with the currency symbol.
func (f *Formatter) VND(v *float64) string {
	if !finite(v) || math.Abs(*v) >= math.MaxInt64 {
		return Dash
	}
	return money.New(int64(math.Round(*v)), "VND").Display()
}

func (f *Formatter) decimal(v float64, maxFraction int) string {
	return f.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(maxFraction)))
}

// AmountClass picks the style of an amount cell.
func AmountClass(v *float64) string {
	return classOf(v)
}

// YoYClass picks the style of a YoY cell.
func YoYClass(pct *float64) string {
	return classOf(pct)
}

func classOf(v *float64) string {
	switch {
	case !finite(v):
		return ClassNeutral
	case *v < 0:
		return ClassWarn
	}
	return ClassPositive
}

// signed rounds half away from zero and prefixes non-negative results with "+".
func signed(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	s := d.StringFixed(places)
	if !d.IsNegative() {
		s = "+" + s
	}
	return s
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// Currency formats with the default Vietnamese locale.
func Currency(v *float64) string { return std.Currency(v) }

// Percent formats with the default Vietnamese locale.
func Percent(v *float64, alreadyFraction bool) string { return std.Percent(v, alreadyFraction) }

// YoYString formats with the default Vietnamese locale.
func YoYString(pct *float64) string { return std.YoYString(pct) }

// MagnitudeScaled formats with the default Vietnamese locale.
func MagnitudeScaled(v *float64) string { return std.MagnitudeScaled(v) }

// Multiple formats with the default Vietnamese locale.
func Multiple(v *float64) string { return std.Multiple(v) }

// VND formats with the default Vietnamese locale.
func VND(v *float64) string { return std.VND(v) }
