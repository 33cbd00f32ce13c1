package validation

import (
	"strings"

	"github.com/kevin07696/card-wallet/internal/domain"
)

// NormalizeCardNumber strips spaces, tabs and dashes from a typed card number
func NormalizeCardNumber(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		}
		return r
	}, s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CheckCardNumber infers the issuer and validates the number against the
// matched scheme. A number that matches no scheme is invalid even if its
// Luhn digit is correct.
func (d *Default) CheckCardNumber(candidate string) CardCheck {
	number := NormalizeCardNumber(candidate)
	if number == "" || !isDigits(number) {
		return CardCheck{Issuer: domain.IssuerUnknown, CVVSize: DefaultCVVSize}
	}

	scheme, ok := d.bestScheme(number)
	if !ok {
		return CardCheck{Issuer: domain.IssuerUnknown, CVVSize: DefaultCVVSize}
	}

	check := CardCheck{Issuer: scheme.Name, CVVSize: scheme.CVVSize}
	if check.CVVSize == 0 {
		check.CVVSize = DefaultCVVSize
	}
	if !scheme.allowsLength(len(number)) {
		return check
	}
	check.Valid = scheme.SkipLuhn || Luhn(number)
	return check
}

// Issuer returns the issuer label for a possibly partial card number
func (d *Default) Issuer(candidate string) string {
	return d.CheckCardNumber(candidate).Issuer
}

// bestScheme picks the single scheme for number. With several candidates
// the winner is the one with the longest fully matched prefix; if any
// candidate only matched partially there is no winner.
func (d *Default) bestScheme(number string) (Scheme, bool) {
	var (
		best         Scheme
		bestStrength int
		matches      int
		allFull      = true
	)
	for _, s := range d.schemes {
		ok, strength := s.match(number)
		if !ok {
			continue
		}
		matches++
		if strength == 0 {
			allFull = false
		}
		if matches == 1 || strength > bestStrength {
			best, bestStrength = s, strength
		}
	}

	switch {
	case matches == 0:
		return Scheme{}, false
	case matches == 1:
		return best, true
	case allFull:
		return best, true
	default:
		return Scheme{}, false
	}
}
