package enums

import "fmt"

// ProductCategory is the catalog taxonomy a product is listed under.
type ProductCategory string

const (
	CategoryGrocery     ProductCategory = "grocery"
	CategoryKitchen     ProductCategory = "kitchen"
	CategoryClothing    ProductCategory = "clothing"
	CategoryElectronics ProductCategory = "electronics"
	CategoryFurniture   ProductCategory = "furniture"
	CategoryLiquor      ProductCategory = "liquor"
	CategoryCosmetics   ProductCategory = "cosmetics"
	CategoryBakery      ProductCategory = "bakery"
)

var validProductCategories = []ProductCategory{
	CategoryGrocery,
	CategoryKitchen,
	CategoryClothing,
	CategoryElectronics,
	CategoryFurniture,
	CategoryLiquor,
	CategoryCosmetics,
	CategoryBakery,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
