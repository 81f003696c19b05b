package models

import "time"

// Product is the normalized projection of an upstream commerce API product.
// BrandName is empty when the product has no brand; Categories is never nil.
type Product struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Thumbnail   string            `json:"thumbnail,omitempty"`
	Status      string            `json:"status,omitempty"`
	BrandID     string            `json:"brand_id,omitempty"`
	BrandName   string            `json:"brand_name,omitempty"`
	Categories  []ProductCategory `json:"categories"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ProductCategory is a category reference attached to a product.
type ProductCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FirstCategoryName returns the product's primary category label, or the
// fallback when the product is uncategorized.
func (p Product) FirstCategoryName(fallback string) string {
	if len(p.Categories) > 0 && p.Categories[0].Name != "" {
		return p.Categories[0].Name
	}
	return fallback
}
