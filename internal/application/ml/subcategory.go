package ml

import (
	"strings"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// SubcategoryRule is one sub-category and the keywords that select it.
type SubcategoryRule struct {
	Name     string
	Keywords []string
}

// CategoryRules binds an ordered list of sub-category rules to a top-level
// category. Rule order matters: the first matching rule wins.
type CategoryRules struct {
	Category entity.TransactionCategory
	Rules    []SubcategoryRule
}

// DefaultSubcategoryRules returns the built-in sub-category rule table.
func DefaultSubcategoryRules() []CategoryRules {
	return []CategoryRules{
		{
			Category: entity.CategoryFoodDining,
			Rules: []SubcategoryRule{
				{Name: "restaurant", Keywords: []string{"restaurant", "cafe", "bistro", "grill"}},
				{Name: "fast_food", Keywords: []string{"mcdonalds", "burger", "pizza", "subway"}},
				{Name: "grocery", Keywords: []string{"grocery", "supermarket", "walmart", "target"}},
				{Name: "coffee", Keywords: []string{"starbucks", "coffee", "dunkin"}},
			},
		},
		{
			Category: entity.CategoryShopping,
			Rules: []SubcategoryRule{
				{Name: "clothing", Keywords: []string{"clothing", "apparel", "fashion", "shoes"}},
				{Name: "electronics", Keywords: []string{"electronics", "apple", "best buy", "amazon"}},
				{Name: "household", Keywords: []string{"home", "furniture", "kitchen", "bath"}},
			},
		},
		{
			Category: entity.CategoryTransportation,
			Rules: []SubcategoryRule{
				{Name: "gas", Keywords: []string{"gas", "fuel", "exxon", "shell", "bp"}},
				{Name: "public_transit", Keywords: []string{"metro", "bus", "train", "uber", "lyft"}},
				{Name: "parking", Keywords: []string{"parking", "toll"}},
			},
		},
	}
}

// resolveSubcategory scans the rule table for the predicted category and
// returns the first sub-category with any case-insensitive keyword match in
// description + " " + merchantName. No match yields the empty string.
func resolveSubcategory(rules []CategoryRules, category entity.TransactionCategory, description, merchantName string) string {
	text := strings.ToLower(description + " " + merchantName)

	for _, cr := range rules {
		if cr.Category != category {
			continue
		}
		for _, rule := range cr.Rules {
			for _, keyword := range rule.Keywords {
				if strings.Contains(text, keyword) {
					return rule.Name
				}
			}
		}
		return ""
	}

	return ""
}
