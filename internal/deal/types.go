package deal

// Category is a priority bucket assigned by the classifier.
type Category string

const (
	CategoryCheese Category = "CHEESE"
	CategoryMeat   Category = "MEAT"
	CategoryFood   Category = "FOOD"
	CategoryOther  Category = "OTHER"
)

// Product represents one discounted product extracted from the listing page.
// OriginalPrice and URL may be absent (zero value); Category is assigned by
// the classifier and defaults to CategoryOther.
type Product struct {
	Name            string   `json:"name"`
	CurrentPrice    float64  `json:"current_price"`
	OriginalPrice   float64  `json:"original_price,omitempty"`
	DiscountPercent int      `json:"discount_percent"`
	URL             string   `json:"url,omitempty"`
	Category        Category `json:"category,omitempty"`
}

// Key returns the uniqueness key used for deduplication: the URL when
// present, otherwise the name.
func (p Product) Key() string {
	if p.URL != "" {
		return p.URL
	}
	return p.Name
}

// Valid reports whether the product satisfies the record invariants.
func (p Product) Valid() bool {
	if p.Name == "" || p.CurrentPrice <= 0 {
		return false
	}
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return false
	}
	if p.OriginalPrice > 0 && p.OriginalPrice < p.CurrentPrice {
		return false
	}
	return true
}

// RunResult is the output of one pipeline invocation.
type RunResult struct {
	AllProducts     []Product `json:"all_products"`
	MatchedProducts []Product `json:"matched_products"`
	Messages        []string  `json:"messages"`
}
