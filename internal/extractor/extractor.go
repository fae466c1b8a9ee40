package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tamimideals/monitor/internal/deal"
	"tamimideals/monitor/internal/normalize"
	"tamimideals/monitor/logger"
)

const (
	// maxNameLength bounds the product name field
	maxNameLength = 100

	// maxAncestorWalk bounds the parent walk of the text-scan strategy
	maxAncestorWalk = 6
)

var containerClassRe = regexp.MustCompile(`(?i)product|item|card|offer`)

// Config contains configuration for an extractor
type Config struct {
	BaseURL        string
	CurrencySymbol string
}

// Extractor scans a parsed listing page for product containers and turns
// them into product records. Container discovery tries a fixed priority
// order of strategies; the first one that yields any containers wins,
// because the live markup is unstable and no single selector is reliable.
type Extractor struct {
	base     *url.URL
	currency []string
	amountRe *regexp.Regexp
	log      *logger.Logger

	// Misses counts containers dropped for unresolvable required fields.
	Misses int
}

// strategy locates candidate product containers in the document.
type strategy struct {
	name string
	find func(doc *goquery.Document) []*goquery.Selection
}

// New creates a new extractor for the given base URL and currency marker.
func New(config Config) *Extractor {
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		base = nil
	}

	currency := []string{"ر.س", "ريال"}
	if config.CurrencySymbol != "" {
		currency = append([]string{config.CurrencySymbol}, currency...)
	}

	return &Extractor{
		base:     base,
		currency: currency,
		log:      logger.ForPipeline(),
	}
}

// Extract returns the valid product records found in the document, in page
// order. Containers that fail field resolution are skipped silently and
// counted in Misses.
func (e *Extractor) Extract(doc *goquery.Document) []deal.Product {
	containers, strategyName := e.findContainers(doc)
	if len(containers) == 0 {
		e.log.Warn().Msg("No product containers found by any strategy")
		return nil
	}

	e.log.Debug().
		Str("strategy", strategyName).
		Int("containers", len(containers)).
		Msg("Product containers located")

	var products []deal.Product
	for _, s := range containers {
		product := e.processContainer(s)
		if product == nil {
			e.Misses++
			continue
		}
		products = append(products, *product)
	}

	return products
}

// findContainers tries each discovery strategy in priority order and
// returns the first non-empty result.
func (e *Extractor) findContainers(doc *goquery.Document) ([]*goquery.Selection, string) {
	strategies := []strategy{
		{"test-id", e.findByTestID},
		{"product-link", e.findByProductLink},
		{"class-pattern", e.findByClassPattern},
		{"percent-text", e.findByPercentText},
	}

	for _, st := range strategies {
		if containers := st.find(doc); len(containers) > 0 {
			return containers, st.name
		}
	}
	return nil, ""
}

// findByTestID locates containers by the stable test-identifier attribute.
func (e *Extractor) findByTestID(doc *goquery.Document) []*goquery.Selection {
	return splitSelection(doc.Find(`[data-testid="product"]`))
}

// findByProductLink locates containers via product detail anchors.
func (e *Extractor) findByProductLink(doc *goquery.Document) []*goquery.Selection {
	return splitSelection(doc.Find(`a[href*="/product"]`))
}

// findByClassPattern locates containers whose class loosely names a product
// card. Elements nested inside an already-matched container are skipped so
// one card does not show up once per wrapper div.
func (e *Extractor) findByClassPattern(doc *goquery.Document) []*goquery.Selection {
	var containers []*goquery.Selection
	seen := make(map[*goquery.Selection]bool)

	doc.Find("div[class], li[class], article[class], section[class]").Each(func(i int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if !containerClassRe.MatchString(class) {
			return
		}
		for matched := range seen {
			if matched.Contains(s.Get(0)) {
				return
			}
		}
		seen[s] = true
		containers = append(containers, s)
	})

	return containers
}

// findByPercentText scans for percentage text anywhere on the page and walks
// up the ancestor chain until a container whose text also carries a currency
// marker is found.
func (e *Extractor) findByPercentText(doc *goquery.Document) []*goquery.Selection {
	var containers []*goquery.Selection
	claimed := make(map[*goquery.Selection]bool)

	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		if !percentRe.MatchString(normalize.FoldDigits(s.Text())) {
			return
		}

		container := s
		for level := 0; level < maxAncestorWalk; level++ {
			parent := container.Parent()
			if parent.Length() == 0 {
				return
			}
			container = parent
			if e.containsCurrency(container.Text()) {
				break
			}
		}
		if !e.containsCurrency(container.Text()) {
			return
		}

		for c := range claimed {
			if c.Get(0) == container.Get(0) || c.Contains(container.Get(0)) {
				return
			}
		}
		claimed[container] = true
		containers = append(containers, container)
	})

	return containers
}

// processContainer resolves all fields for a single container. Returns nil
// when name, current price, or discount cannot be resolved; a parsing miss
// is expected and not an error.
func (e *Extractor) processContainer(s *goquery.Selection) *deal.Product {
	current := e.resolveCurrentPrice(s)
	original := e.resolveOriginalPrice(s)
	discount := e.resolveDiscount(s)

	// Two price-like tokens with no explicit price elements: the larger is
	// the original price, the smaller the current one.
	if current > 0 && original > 0 && original < current {
		current, original = original, current
	}

	// Fill whichever of discount and original price the page left implicit.
	if discount == 0 && original > current {
		discount = normalize.Discount(original, current)
	}
	if original == 0 && discount > 0 {
		original = normalize.Original(current, discount)
	}

	name := e.resolveName(s)

	product := &deal.Product{
		Name:            name,
		CurrentPrice:    current,
		OriginalPrice:   original,
		DiscountPercent: discount,
		URL:             e.resolveURL(s),
	}

	if !product.Valid() || product.DiscountPercent == 0 {
		return nil
	}
	return product
}

// containsCurrency reports whether text carries any configured currency marker.
func (e *Extractor) containsCurrency(text string) bool {
	for _, marker := range e.currency {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// resolveURL finds the product link: a descendant anchor first, then the
// enclosing anchor chain. Relative paths are resolved against the base URL.
func (e *Extractor) resolveURL(s *goquery.Selection) string {
	href, ok := s.Attr("href")
	if !ok {
		if link := s.Find("a[href]").First(); link.Length() > 0 {
			href, _ = link.Attr("href")
		}
	}
	if href == "" {
		anchor := s.Closest("a[href]")
		if anchor.Length() > 0 {
			href, _ = anchor.Attr("href")
		}
	}

	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if e.base != nil {
		parsed = e.base.ResolveReference(parsed)
	}
	return parsed.String()
}

// splitSelection breaks a multi-node selection into per-node selections,
// preserving document order.
func splitSelection(sel *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Each(func(i int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}
