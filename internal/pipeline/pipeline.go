package pipeline

import (
	"sort"

	"github.com/PuerkitoBio/goquery"

	"tamimideals/monitor/config"
	"tamimideals/monitor/internal/classify"
	"tamimideals/monitor/internal/deal"
	"tamimideals/monitor/internal/extractor"
	"tamimideals/monitor/internal/message"
	"tamimideals/monitor/logger"
)

// Pipeline turns a parsed hot-deals page into a RunResult: extraction,
// deduplication, classification, range filtering, sorting and message
// composition, in that order, exactly once per run. All stages are pure, so
// the same document and configuration always produce the same result.
type Pipeline struct {
	extractor   *extractor.Extractor
	classifier  *classify.Classifier
	composer    *message.Composer
	discountMin int
	discountMax int
	log         *logger.Logger
}

// New creates a pipeline from the application configuration. The keyword
// override is validated by config.Validate, so a malformed value here falls
// back to the built-in rules rather than failing.
func New(cfg *config.Config) *Pipeline {
	rules, _ := classify.ParseRules(cfg.CategoryKeywords)

	return &Pipeline{
		extractor: extractor.New(extractor.Config{
			BaseURL:        cfg.BaseURL,
			CurrencySymbol: cfg.CurrencySymbol,
		}),
		classifier: classify.NewClassifier(rules...),
		composer: message.NewComposer(message.Config{
			DiscountMin:      cfg.DiscountMin,
			DiscountMax:      cfg.DiscountMax,
			ChunkSize:        cfg.ChunkSize,
			MaxPayloadLength: cfg.MaxPayloadLength,
			CurrencySymbol:   cfg.CurrencySymbol,
		}),
		discountMin: cfg.DiscountMin,
		discountMax: cfg.DiscountMax,
		log:         logger.ForPipeline(),
	}
}

// Run executes the pipeline on one document. A page with no extractable
// products yields a RunResult with empty lists and a single "nothing found"
// payload; that is data, not an error.
func (p *Pipeline) Run(doc *goquery.Document) deal.RunResult {
	products := Dedupe(p.extractor.Extract(doc))

	for i := range products {
		products[i].Category = p.classifier.Classify(products[i])
	}

	matched := p.filterAndSort(products)

	p.log.Info().
		Int("scanned", len(products)).
		Int("matched", len(matched)).
		Int("misses", p.extractor.Misses).
		Msg("Pipeline run complete")

	return deal.RunResult{
		AllProducts:     products,
		MatchedProducts: matched,
		Messages:        p.composer.Compose(products, matched),
	}
}

// Dedupe collapses repeated extractions of the same product, keeping the
// first-seen record per uniqueness key and preserving page order.
func Dedupe(products []deal.Product) []deal.Product {
	seen := make(map[string]bool, len(products))
	var out []deal.Product
	for _, p := range products {
		key := p.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// filterAndSort keeps products inside the inclusive discount range and
// sorts them by discount descending; ties keep their page order.
func (p *Pipeline) filterAndSort(products []deal.Product) []deal.Product {
	var matched []deal.Product
	for _, product := range products {
		if product.DiscountPercent >= p.discountMin && product.DiscountPercent <= p.discountMax {
			matched = append(matched, product)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DiscountPercent > matched[j].DiscountPercent
	})
	return matched
}
