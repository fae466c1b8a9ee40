package message

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode/utf8"

	"tamimideals/monitor/helpers"
	"tamimideals/monitor/internal/deal"
)

const highlightNameLength = 40

// histogram buckets, highest range first
var buckets = [][2]int{
	{90, 99}, {80, 89}, {70, 79}, {60, 69}, {50, 59},
	{40, 49}, {30, 39}, {20, 29}, {10, 19}, {0, 9},
}

// Config contains configuration for the composer
type Config struct {
	DiscountMin      int
	DiscountMax      int
	ChunkSize        int
	MaxPayloadLength int
	CurrencySymbol   string
}

// Composer renders a run's product lists into Telegram-ready HTML payloads.
// Every payload it produces fits within MaxPayloadLength; detail payloads
// carry at most ChunkSize products each with continuous numbering.
type Composer struct {
	cfg Config
}

// NewComposer creates a new composer
func NewComposer(cfg Config) *Composer {
	return &Composer{cfg: cfg}
}

// Compose builds the ordered payload sequence for one run. An empty matched
// list yields exactly one summary payload; otherwise a summary payload is
// followed by chunked detail payloads.
func (c *Composer) Compose(all, matched []deal.Product) []string {
	if len(matched) == 0 {
		return []string{c.clamp(c.composeScanSummary(all))}
	}

	payloads := []string{c.clamp(c.composeAlertSummary(matched))}
	payloads = append(payloads, c.composeDetails(matched)...)
	return payloads
}

// composeScanSummary reports a run that found nothing inside the configured
// range: total scanned count, discount histogram and the best deals seen.
func (c *Composer) composeScanSummary(all []deal.Product) string {
	var b strings.Builder

	b.WriteString("🔍 <b>Tamimi Monitor - Hot Deals Summary</b>\n\n")
	fmt.Fprintf(&b, "📊 Total products scanned: <b>%d</b>\n", len(all))

	if len(all) > 0 {
		b.WriteString("\n📈 <b>Discount Breakdown:</b>\n")
		for _, bucket := range buckets {
			count := countInRange(all, bucket[0], bucket[1])
			if count > 0 {
				fmt.Fprintf(&b, "  • %d-%d%%: %d items\n", bucket[0], bucket[1], count)
			}
		}

		top := topByDiscount(all, 5)
		b.WriteString("\n🏆 <b>Top 5 Deals Today:</b>\n")
		for i, p := range top {
			fmt.Fprintf(&b, "  %d. %s - <b>%d%%</b> off\n",
				i+1, escapeName(p.Name, highlightNameLength), p.DiscountPercent)
		}
	}

	fmt.Fprintf(&b, "\nI'll alert you when %d-%d%% deals appear! 🤖",
		c.cfg.DiscountMin, c.cfg.DiscountMax)
	return b.String()
}

// composeAlertSummary leads an alert: bilingual header, totals, discount
// range breakdown with sample names, and a category breakdown.
func (c *Composer) composeAlertSummary(matched []deal.Product) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔥🔥🔥 <b>HOT DEALS ALERT! (%d-%d%% OFF)</b> 🔥🔥🔥\n",
		c.cfg.DiscountMin, c.cfg.DiscountMax)
	b.WriteString("🔥 <b>تميمي ماركتس - عروض حصرية</b> 🔥\n\n")
	fmt.Fprintf(&b, "✅ Found <b>%d</b> items with %d-%d%% discounts!\n",
		len(matched), c.cfg.DiscountMin, c.cfg.DiscountMax)
	fmt.Fprintf(&b, "✅ وجدنا <b>%d</b> منتج بتخفيض %d-%d%%\n\n",
		len(matched), c.cfg.DiscountMin, c.cfg.DiscountMax)

	for _, bucket := range buckets {
		if bucket[1] < c.cfg.DiscountMin || bucket[0] > c.cfg.DiscountMax {
			continue
		}
		inRange := filterRange(matched, bucket[0], bucket[1])
		if len(inRange) == 0 {
			continue
		}
		fmt.Fprintf(&b, "<b>%d-%d%% OFF (%d items):</b>\n", bucket[0], bucket[1], len(inRange))
		for i, p := range inRange {
			if i == 3 {
				fmt.Fprintf(&b, "  ... and %d more\n", len(inRange)-3)
				break
			}
			fmt.Fprintf(&b, "  • %s - %d%%\n", escapeName(p.Name, highlightNameLength), p.DiscountPercent)
		}
		b.WriteString("\n")
	}

	b.WriteString("📂 <b>By Category:</b>\n")
	for _, category := range []deal.Category{deal.CategoryCheese, deal.CategoryMeat, deal.CategoryFood, deal.CategoryOther} {
		count := 0
		for _, p := range matched {
			if p.Category == category {
				count++
			}
		}
		if count > 0 {
			fmt.Fprintf(&b, "  • %s: %d\n", category, count)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// composeDetails renders matched products into chunked payloads. A chunk is
// flushed when it reaches ChunkSize entries or when the next entry would
// push the payload over the length ceiling; numbering continues across
// payloads from the running index. Every flushed chunk is clamped, so a
// single entry larger than the ceiling still yields a bounded payload.
func (c *Composer) composeDetails(matched []deal.Product) []string {
	var payloads []string
	var b strings.Builder
	count := 0

	flush := func() {
		if count == 0 {
			return
		}
		payloads = append(payloads, c.clamp(strings.TrimRight(b.String(), "\n")))
		b.Reset()
		count = 0
	}

	for i, p := range matched {
		entry := c.renderEntry(i+1, p)
		if count == c.cfg.ChunkSize ||
			(count > 0 && utf8.RuneCountInString(b.String())+utf8.RuneCountInString(entry) > c.cfg.MaxPayloadLength) {
			flush()
		}
		b.WriteString(entry)
		count++
	}
	flush()

	return payloads
}

// renderEntry renders a single numbered product line group.
func (c *Composer) renderEntry(rank int, p deal.Product) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%d. %s</b>\n", rank, escapeName(p.Name, 50))
	b.WriteString("   ")
	if p.OriginalPrice > 0 {
		fmt.Fprintf(&b, "<s>%.2f %s</s> → ", p.OriginalPrice, c.cfg.CurrencySymbol)
	}
	fmt.Fprintf(&b, "<b>%.2f %s</b>  <b>(-%d%%)</b>\n", p.CurrentPrice, c.cfg.CurrencySymbol, p.DiscountPercent)
	if p.URL != "" {
		fmt.Fprintf(&b, "   <a href=\"%s\">View Product</a>\n", html.EscapeString(p.URL))
	}
	b.WriteString("\n")

	return b.String()
}

// clamp bounds a payload to the configured maximum length. Composition
// keeps payloads under the ceiling by construction; this is the backstop
// for degenerate configurations.
func (c *Composer) clamp(payload string) string {
	return helpers.TruncateRunes(payload, c.cfg.MaxPayloadLength)
}

func escapeName(name string, max int) string {
	return html.EscapeString(helpers.TruncateRunes(name, max))
}

func countInRange(products []deal.Product, low, high int) int {
	count := 0
	for _, p := range products {
		if p.DiscountPercent >= low && p.DiscountPercent <= high {
			count++
		}
	}
	return count
}

func filterRange(products []deal.Product, low, high int) []deal.Product {
	var out []deal.Product
	for _, p := range products {
		if p.DiscountPercent >= low && p.DiscountPercent <= high {
			out = append(out, p)
		}
	}
	return out
}

func topByDiscount(products []deal.Product, n int) []deal.Product {
	sorted := make([]deal.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DiscountPercent > sorted[j].DiscountPercent
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
