package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/kevin07696/card-wallet/pkg/timeutil"
)

// ParseExpiry splits an MM/YY or MM/YYYY value into month and four-digit year
func ParseExpiry(candidate string) (month, year int, ok bool) {
	parts := strings.Split(candidate, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	mm := strings.TrimSpace(parts[0])
	yy := strings.TrimSpace(parts[1])

	if len(mm) < 1 || len(mm) > 2 || !isDigits(mm) {
		return 0, 0, false
	}
	if (len(yy) != 2 && len(yy) != 4) || !isDigits(yy) {
		return 0, 0, false
	}

	month, _ = strconv.Atoi(mm)
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(yy)
	if len(yy) == 2 {
		year += 2000
	}
	return month, year, true
}

// CheckExpiry accepts a well-formed date that is not in the past and not
// further ahead than the configured number of years
func (d *Default) CheckExpiry(candidate string) bool {
	month, year, ok := ParseExpiry(candidate)
	if !ok {
		return false
	}

	now := d.now()
	if timeutil.MonthExpired(year, time.Month(month), now) {
		return false
	}
	return year <= now.UTC().Year()+d.maxElapsedYears
}
