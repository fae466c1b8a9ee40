package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *Extractor {
	return New(Config{
		BaseURL:        "https://shop.tamimimarkets.com",
		CurrencySymbol: "SAR",
	})
}

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractBadgeAndStruckPrice(t *testing.T) {
	html := `<html><body>
		<div data-testid="product">
			<a href="/en/product/acme-milk-1l">
				<span class="Product__StyledDiscount-sc-1x2">50% OFF</span>
				<span class="Product__Brand ebqvdy">Acme</span>
				<span class="Product__StyledNameText">Milk 1L</span>
				<span class="Price__SellingPriceOutDated">SAR 50.00</span>
				<span class="Price__SellingPrice">SAR 25.00</span>
			</a>
		</div>
	</body></html>`

	products := newTestExtractor().Extract(parseHTML(t, html))
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "Acme Milk 1L", p.Name)
	assert.Equal(t, 25.00, p.CurrentPrice)
	assert.Equal(t, 50.00, p.OriginalPrice)
	assert.Equal(t, 50, p.DiscountPercent)
	assert.Equal(t, "https://shop.tamimimarkets.com/en/product/acme-milk-1l", p.URL)
}

func TestExtractComputedDiscount(t *testing.T) {
	// No badge at all; the discount comes from the two prices.
	html := `<html><body>
		<div data-testid="product">
			<h3>Organic Olive Oil 500ml</h3>
			<del>SAR 60.00</del>
			<span class="Price__SellingPrice">SAR 30.00</span>
		</div>
	</body></html>`

	products := newTestExtractor().Extract(parseHTML(t, html))
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "Organic Olive Oil 500ml", p.Name)
	assert.Equal(t, 30.00, p.CurrentPrice)
	assert.Equal(t, 60.00, p.OriginalPrice)
	assert.Equal(t, 50, p.DiscountPercent)
}

func TestExtractBadgeIsAuthoritative(t *testing.T) {
	// Promotional badge disagrees with the computed ratio; the badge wins.
	html := `<html><body>
		<div data-testid="product">
			<span class="Product__StyledDiscount">30% OFF</span>
			<h3>Frozen Chicken Nuggets</h3>
			<del>SAR 40.00</del>
			<span class="Price__SellingPrice">SAR 30.00</span>
		</div>
	</body></html>`

	products := newTestExtractor().Extract(parseHTML(t, html))
	require.Len(t, products, 1)
	assert.Equal(t, 30, products[0].DiscountPercent)
}

func TestExtractProductLinkStrategy(t *testing.T) {
	// No test-id containers; the anchor strategy takes over.
	html := `<html><body>
		<a class="ProductLink" href="/product/123">
			<span class="discount-badge">40%</span>
			<h3>Tasty Chocolate Spread</h3>
			<span class="price">SAR 12.00</span>
		</a>
	</body></html>`

	products := newTestExtractor().Extract(parseHTML(t, html))
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "Tasty Chocolate Spread", p.Name)
	assert.Equal(t, 12.00, p.CurrentPrice)
	assert.Equal(t, 40, p.DiscountPercent)
	assert.Equal(t, "https://shop.tamimimarkets.com/product/123", p.URL)
}

func TestExtractClassPatternStrategy(t *testing.T) {
	html := `<html><body>
		<div class="offer-card">
			<span class="badge">25%</span>
			<h3>Sparkling Water 6x330ml</h3>
			<span class="price">SAR 9.00</span>
		</div>
	</body></html>`

	products := newTestExtractor().Extract(parseHTML(t, html))
	require.Len(t, products, 1)
	assert.Equal(t, "Sparkling Water 6x330ml", products[0].Name)
	assert.Equal(t, 25, products[0].DiscountPercent)
}

func TestExtractPercentTextStrategy(t *testing.T) {
	// Arabic listing with no recognizable classes at all: the percent text
	// is found and the ancestor chain is walked to a currency-bearing node.
	html := `<html><body>
		<div><div class="x1y2">
			<span>خصم ٥٠٪</span>
			<p>جبنة شيدر ممتازة كبيرة</p>
			<span>٢٥٫٠٠ ر.س</span>
		</div></div>
	</body></html>`

	products := newTestExtractor().Extract(parseHTML(t, html))
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, 50, p.DiscountPercent)
	assert.Equal(t, 25.00, p.CurrentPrice)
	assert.InDelta(t, 50.00, p.OriginalPrice, 0.01)
	assert.Contains(t, p.Name, "جبنة شيدر")
}

func TestExtractDropsUnresolvableCandidates(t *testing.T) {
	// Second container has no price, third has no discount at all.
	html := `<html><body>
		<div data-testid="product">
			<span class="Product__StyledDiscount">60%</span>
			<h3>Good Candidate Snack</h3>
			<span class="Price__SellingPrice">SAR 8.00</span>
		</div>
		<div data-testid="product">
			<span class="Product__StyledDiscount">70%</span>
			<h3>No Price Here At All</h3>
		</div>
		<div data-testid="product">
			<h3>Full Price Product Name</h3>
			<span class="Price__SellingPrice">SAR 15.00</span>
		</div>
	</body></html>`

	extractor := newTestExtractor()
	products := extractor.Extract(parseHTML(t, html))
	require.Len(t, products, 1)
	assert.Equal(t, "Good Candidate Snack", products[0].Name)
	assert.Equal(t, 2, extractor.Misses)
}

func TestExtractComputesOriginalFromBadge(t *testing.T) {
	// Struck price missing; original recovered from badge and current price.
	html := `<html><body>
		<div data-testid="product">
			<span class="Product__StyledDiscount">50%</span>
			<h3>Laundry Detergent 3kg</h3>
			<span class="Price__SellingPrice">SAR 20.00</span>
		</div>
	</body></html>`

	products := newTestExtractor().Extract(parseHTML(t, html))
	require.Len(t, products, 1)
	assert.InDelta(t, 40.00, products[0].OriginalPrice, 0.01)
}

func TestExtractEmptyDocument(t *testing.T) {
	products := newTestExtractor().Extract(parseHTML(t, `<html><body><p>maintenance</p></body></html>`))
	assert.Empty(t, products)
}

func TestExtractNameTruncated(t *testing.T) {
	long := strings.Repeat("Very Long Product Name ", 10)
	html := `<html><body>
		<div data-testid="product">
			<span class="Product__StyledDiscount">55%</span>
			<h3>` + long + `</h3>
			<span class="Price__SellingPrice">SAR 10.00</span>
		</div>
	</body></html>`

	products := newTestExtractor().Extract(parseHTML(t, html))
	require.Len(t, products, 1)
	assert.LessOrEqual(t, len([]rune(products[0].Name)), 100)
}
