package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tamimideals/monitor/helpers"
	"tamimideals/monitor/internal/normalize"
)

const minNameLength = 8

var (
	// percentRe matches a bare percentage, Western or Arabic percent sign.
	percentRe = regexp.MustCompile(`(\d{1,3})\s*[%٪]`)

	// offRe matches an explicit discount phrase like "50% OFF" or "50% خصم".
	offRe = regexp.MustCompile(`(?i)(\d{1,3})\s*[%٪]\s*(?:off|خصم)`)

	// khasmRe matches the Arabic phrase order, "خصم 50%".
	khasmRe = regexp.MustCompile(`خصم\s*(\d{1,3})\s*[%٪]`)

	// struckPriceSel finds struck-through or outdated price elements.
	struckPriceSel = `del, s, [class*="OutDated"], [class*="Outdated"], [class*="old"], [class*="regular"]`
)

// fieldHandler extracts one field's raw text from a container selection.
// Handlers are tried in order; the first non-empty result wins.
type fieldHandler func(*goquery.Selection) string

// applyHandlers runs handlers in sequence until one returns a value.
func applyHandlers(s *goquery.Selection, handlers []fieldHandler) string {
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if result := handler(s); result != "" {
			return result
		}
	}
	return ""
}

// resolveDiscount extracts the discount percentage from the container.
// The explicitly badged value is authoritative; a value computed from the
// prices is filled in later only when no badge is found.
func (e *Extractor) resolveDiscount(s *goquery.Selection) int {
	raw := applyHandlers(s, []fieldHandler{
		// Explicit discount badge element.
		func(s *goquery.Selection) string {
			return matchPercent(s.Find(`[class*="Discount"], [class*="discount"]`).First().Text())
		},
		// Any element with a discount-like class.
		func(s *goquery.Selection) string {
			sel := s.Find(`[class*="percent"], [class*="Percent"], [class*="offer"], [class*="Offer"], [class*="badge"], [class*="Badge"], [class*="sale"]`)
			return matchPercent(sel.First().Text())
		},
		// "N% OFF" / "N% خصم" anywhere in the container text.
		func(s *goquery.Selection) string {
			text := normalize.FoldDigits(s.Text())
			if m := offRe.FindStringSubmatch(text); len(m) > 1 {
				return m[1]
			}
			if m := khasmRe.FindStringSubmatch(text); len(m) > 1 {
				return m[1]
			}
			return ""
		},
		// Last resort: any percentage in the container text.
		func(s *goquery.Selection) string {
			return matchPercent(s.Text())
		},
	})

	if raw == "" {
		return 0
	}
	discount, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return discount
}

// resolveCurrentPrice extracts the selling price from the container.
func (e *Extractor) resolveCurrentPrice(s *goquery.Selection) float64 {
	// Selling-price element, skipping the struck-through variant.
	sel := s.Find(`[class*="SellingPrice"]`).FilterFunction(func(i int, ps *goquery.Selection) bool {
		class, _ := ps.Attr("class")
		return !strings.Contains(class, "OutDated") && !strings.Contains(class, "Outdated")
	})
	if amount := normalize.ParseAmount(sel.First().Text()); amount > 0 {
		return amount
	}

	// Generic price-like element that is not a struck-through price.
	sel = s.Find(`[class*="price"], [class*="Price"]`).NotSelection(s.Find(struckPriceSel))
	if amount := normalize.ParseAmount(sel.First().Text()); amount > 0 {
		return amount
	}

	// Currency-adjacent amounts in the full text; the smaller of two
	// distinct tokens is the discounted price.
	tokens := e.priceTokens(s)
	if len(tokens) > 0 {
		return tokens[0]
	}
	return 0
}

// resolveOriginalPrice extracts the pre-discount price, when shown.
func (e *Extractor) resolveOriginalPrice(s *goquery.Selection) float64 {
	if amount := normalize.ParseAmount(s.Find(struckPriceSel).First().Text()); amount > 0 {
		return amount
	}

	// With two distinct price tokens the larger one is the original.
	tokens := e.priceTokens(s)
	if len(tokens) >= 2 {
		return tokens[len(tokens)-1]
	}
	return 0
}

// resolveName extracts the product name, bounded to maxNameLength runes.
func (e *Extractor) resolveName(s *goquery.Selection) string {
	name := applyHandlers(s, []fieldHandler{
		// Brand element plus name element, when both exist.
		func(s *goquery.Selection) string {
			brand := strings.TrimSpace(s.Find(`[class*="Brand"], [class*="ebqvdy"]`).First().Text())
			text := strings.TrimSpace(s.Find(`[class*="NameText"], [class*="StyledName"]`).First().Text())
			if brand != "" && text != "" {
				return brand + " " + text
			}
			return ""
		},
		// First heading-like element.
		func(s *goquery.Selection) string {
			sel := s.Find(`h2, h3, h4, [class*="Title"], [class*="title"], [class*="name"]`)
			return strings.TrimSpace(sel.First().Text())
		},
		// Longest text line, with price and discount fragments removed.
		e.longestLineName,
	})

	return helpers.TruncateRunes(helpers.CollapseSpaces(name), maxNameLength)
}

// longestLineName picks the longest line of the container text that exceeds
// the minimum name length, after stripping percentage and price substrings.
func (e *Extractor) longestLineName(s *goquery.Selection) string {
	var best string
	for _, line := range strings.Split(normalize.FoldDigits(s.Text()), "\n") {
		line = offRe.ReplaceAllString(line, "")
		line = khasmRe.ReplaceAllString(line, "")
		line = percentRe.ReplaceAllString(line, "")
		if re := e.currencyAmountRe(); re != nil {
			line = re.ReplaceAllString(line, "")
		}
		line = helpers.CollapseSpaces(line)
		if len([]rune(line)) >= minNameLength && len(line) > len(best) {
			best = line
		}
	}
	return best
}

// priceTokens returns the distinct currency-adjacent amounts found in the
// container text, sorted ascending.
func (e *Extractor) priceTokens(s *goquery.Selection) []float64 {
	re := e.currencyAmountRe()
	if re == nil {
		return nil
	}

	text := normalize.FoldDigits(s.Text())
	seen := make(map[float64]bool)
	var tokens []float64
	for _, match := range re.FindAllString(text, -1) {
		amount := normalize.ParseAmount(match)
		if amount > 0 && !seen[amount] {
			seen[amount] = true
			tokens = append(tokens, amount)
		}
	}
	sort.Float64s(tokens)
	return tokens
}

// currencyAmountRe builds the currency-amount pattern for the configured
// currency markers, caching it on first use.
func (e *Extractor) currencyAmountRe() *regexp.Regexp {
	if e.amountRe != nil {
		return e.amountRe
	}
	if len(e.currency) == 0 {
		return nil
	}

	quoted := make([]string, len(e.currency))
	for i, marker := range e.currency {
		quoted[i] = regexp.QuoteMeta(marker)
	}
	markers := strings.Join(quoted, "|")
	e.amountRe = regexp.MustCompile(
		`(?i)(?:` + markers + `)\s*\d+(?:\.\d+)?|\d+(?:\.\d+)?\s*(?:` + markers + `)`)
	return e.amountRe
}

// matchPercent pulls the numeric part out of percentage text.
func matchPercent(text string) string {
	if m := percentRe.FindStringSubmatch(normalize.FoldDigits(text)); len(m) > 1 {
		return m[1]
	}
	return ""
}
