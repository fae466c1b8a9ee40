package classify

import (
	"fmt"
	"strings"

	"tamimideals/monitor/internal/deal"
)

// Rule binds a category to its keyword list. Keywords are matched as
// case-insensitive substrings and may mix scripts; all entries in one rule
// share the same priority.
type Rule struct {
	Category deal.Category
	Keywords []string
}

// DefaultRules orders categories by priority. Meat ranks above the broad
// food list so that "chicken breast" is not swallowed by a generic keyword.
var DefaultRules = []Rule{
	{
		Category: deal.CategoryCheese,
		Keywords: []string{
			"cheese", "cheddar", "mozzarella", "halloumi", "feta",
			"جبن", "جبنة", "موزاريلا", "حلوم",
		},
	},
	{
		Category: deal.CategoryMeat,
		Keywords: []string{
			"meat", "beef", "chicken", "lamb", "mutton", "veal", "mince",
			"لحم", "لحوم", "دجاج", "بقري", "غنم", "مفروم",
		},
	},
	{
		Category: deal.CategoryFood,
		Keywords: []string{
			"milk", "laban", "yogurt", "bread", "rice", "pasta", "juice",
			"oil", "sugar", "flour", "egg", "butter", "cream", "honey",
			"حليب", "لبن", "زبادي", "خبز", "أرز", "مكرونة", "عصير",
			"زيت", "سكر", "دقيق", "بيض", "زبدة", "قشطة", "عسل",
		},
	},
}

// ParseRules parses a keyword-override string of the form
// "CHEESE:cheese,جبن;MEAT:beef,لحم". Rule order in the string is priority
// order. An empty string yields nil, which selects DefaultRules.
func ParseRules(spec string) ([]Rule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var rules []Rule
	for _, segment := range strings.Split(spec, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		parts := strings.SplitN(segment, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("keyword rule %q must be CATEGORY:keyword,keyword", segment)
		}

		category, err := parseCategory(parts[0])
		if err != nil {
			return nil, err
		}

		var keywords []string
		for _, keyword := range strings.Split(parts[1], ",") {
			if keyword = strings.TrimSpace(keyword); keyword != "" {
				keywords = append(keywords, keyword)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("keyword rule %q has no keywords", segment)
		}

		rules = append(rules, Rule{Category: category, Keywords: keywords})
	}
	return rules, nil
}

func parseCategory(name string) (deal.Category, error) {
	switch deal.Category(strings.ToUpper(strings.TrimSpace(name))) {
	case deal.CategoryCheese:
		return deal.CategoryCheese, nil
	case deal.CategoryMeat:
		return deal.CategoryMeat, nil
	case deal.CategoryFood:
		return deal.CategoryFood, nil
	case deal.CategoryOther:
		return deal.CategoryOther, nil
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// Classifier assigns a priority category to products by keyword matching.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the given rules, falling back to
// DefaultRules when none are provided.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Classifier{rules: rules}
}

// Classify returns the first matching category in rule order, or
// CategoryOther when no keyword matches. Always returns a value.
func (c *Classifier) Classify(p deal.Product) deal.Category {
	name := strings.ToLower(p.Name)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(name, strings.ToLower(keyword)) {
				return rule.Category
			}
		}
	}
	return deal.CategoryOther
}
