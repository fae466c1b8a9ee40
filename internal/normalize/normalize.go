package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberRe matches the first numeric token, decimals preferred over integers.
var numberRe = regexp.MustCompile(`\d+\.\d+|\d+`)

// currencyWords are currency markers stripped before numeric extraction.
// The Arabic entries cover the riyal spellings used on the listing page.
var currencyWords = []string{
	"SAR", "sar", "ر.س", "رس", "ريال سعودي", "ريال",
}

// arabicDigits maps Arabic-Indic and Eastern Arabic-Indic digit glyphs and
// separators to their ASCII equivalents.
var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٫", ".", "٬", "",
)

// FoldDigits converts localized digit glyphs and separators in s to their
// ASCII equivalents.
func FoldDigits(s string) string {
	return arabicDigits.Replace(s)
}

// ParseAmount extracts a numeric amount from raw price text. Currency words,
// thousands separators and localized digit glyphs are folded away first.
// Returns 0 when no digits are found; callers must treat 0 as absent for
// price fields.
func ParseAmount(raw string) float64 {
	s := FoldDigits(raw)
	for _, w := range currencyWords {
		s = strings.ReplaceAll(s, w, " ")
	}
	s = strings.ReplaceAll(s, ",", "")

	match := numberRe.FindString(s)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}

// Discount computes the rounded percentage saved when paying current instead
// of original. Returns 0 when original is not positive or not above current.
func Discount(original, current float64) int {
	if original <= 0 || current < 0 || current >= original {
		return 0
	}
	return int(math.Round(100 * (original - current) / original))
}

// Original recovers the pre-discount price from the current price and the
// discount percentage. Returns 0 (absent) when the discount is outside
// (0, 100); a 100% discount leaves the original price undefined.
func Original(current float64, discount int) float64 {
	if current <= 0 || discount <= 0 || discount >= 100 {
		return 0
	}
	return current / (1 - float64(discount)/100)
}
