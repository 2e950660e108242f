package format

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// NotAvailable is rendered for values that cannot be formatted.
const NotAvailable = "n/a"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// exact is the magnitude past which float64 values carry no fraction, so
// rounding to a decimal place would only risk overflow.
const exact = 1 << 53

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	if math.Abs(v) >= exact {
		return v
	}
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Currency formats an amount as dollars with two decimals and grouped
// thousands. Amounts that round to zero carry no sign.
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NotAvailable
	}
	amount = roundTo(amount, 2)
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := math.Abs(amount)
	cents := strconv.FormatFloat(abs, 'f', 2, 64)
	return sign + "$" + humanize.Commaf(math.Trunc(abs)) + cents[len(cents)-3:]
}

// Distance formats kilometres to one decimal, dropping it for whole values.
func Distance(km float64) string {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return NotAvailable
	}
	return humanize.Commaf(math.Abs(roundTo(km, 1))) + " km"
}

// Duration formats a number of minutes as "45 min", "2h" or "2h 30min".
func Duration(minutes int) string {
	if minutes < 0 {
		return NotAvailable
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dmin", h, m)
	}
}

// Date formats the calendar day of t; the zero time is not available.
func Date(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(dateLayout)
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(dateTimeLayout)
}
