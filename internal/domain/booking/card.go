package booking

import (
	"regexp"
	"strings"
)

const (
	minCardDigits = 13
	maxCardDigits = 19
)

type Brand string

const (
	BrandVisa       Brand = "Visa"
	BrandMastercard Brand = "Mastercard"
	BrandAmex       Brand = "Amex"
	BrandDiscover   Brand = "Discover"
	BrandUnknown    Brand = "Unknown"
)

func (b Brand) String() string {
	return string(b)
}

// checked in order, first match wins
var brandPatterns = []struct {
	brand   Brand
	pattern *regexp.Regexp
}{
	{BrandVisa, regexp.MustCompile(`^4`)},
	{BrandMastercard, regexp.MustCompile(`^(5[1-5]|2(2[2-9]|[3-6]\d|7[01]))`)},
	{BrandAmex, regexp.MustCompile(`^3[47]`)},
	{BrandDiscover, regexp.MustCompile(`^6(011|5)`)},
}

type CardCheck struct {
	Valid  bool
	Digits string
	Brand  Brand
}

func ValidateCardNumber(raw string) CardCheck {
	digits := stripNonDigits(raw)
	n := len(digits)
	return CardCheck{
		Valid:  n >= minCardDigits && n <= maxCardDigits && luhn(digits),
		Digits: digits,
		Brand:  DetectBrand(digits),
	}
}

func DetectBrand(digits string) Brand {
	for _, bp := range brandPatterns {
		if bp.pattern.MatchString(digits) {
			return bp.brand
		}
	}
	return BrandUnknown
}

// LastFour returns the trailing four digits, or all of them when shorter.
func (c CardCheck) LastFour() string {
	if len(c.Digits) <= 4 {
		return c.Digits
	}
	return c.Digits[len(c.Digits)-4:]
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
