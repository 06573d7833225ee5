package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices serialize as JSON numbers, matching the NUMERIC columns and the
	// wire format the admin clients expect.
	decimal.MarshalJSONWithoutQuotes = true
}

// ViewType controls how a category renders its dishes on the tablet menu.
type ViewType string

const (
	ViewTypeGrid ViewType = "grid"
	ViewTypeList ViewType = "list"
)

// Branch represents a physical restaurant location.
type Branch struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Address     string  `json:"address" db:"address"`
	Phone       string  `json:"phone" db:"phone"`
	CustomColor *string `json:"custom_color" db:"custom_color"`
	LogoURL     *string `json:"logo_url" db:"logo_url"`
}

// Category is a named, ordered grouping of dishes.
// sort_order is global across the category list.
type Category struct {
	ID        int      `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	SortOrder int      `json:"sort_order" db:"sort_order"`
	ViewType  ViewType `json:"view_type" db:"view_type"`
}

// DishVariant is a priced portion or preparation of a dish.
type DishVariant struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Product is a sellable menu item. sort_order is meaningful only relative
// to other products sharing the same category_id.
type Product struct {
	ID                 int             `json:"id" db:"id"`
	CategoryID         int             `json:"category_id" db:"category_id"`
	Name               string          `json:"name" db:"name"`
	Description        string          `json:"description" db:"description"`
	Price              decimal.Decimal `json:"price" db:"price"`
	ImageURL           *string         `json:"image_url" db:"image_url"`
	Variants           []DishVariant   `json:"variants" db:"variants"`
	Badges             []string        `json:"badges" db:"badges"`
	IsActive           bool            `json:"is_active" db:"is_active"`
	IsFeatured         bool            `json:"is_featured" db:"is_featured"`
	AvailableBranchIDs []int           `json:"available_branch_ids" db:"available_branch_ids"`
	SortOrder          int             `json:"sort_order" db:"sort_order"`
}

// VisibleAtBranch reports whether the product is shown at the given branch.
// An empty allowlist means visible at every branch, including branches
// created after the product.
func (p *Product) VisibleAtBranch(branchID int) bool {
	if !p.IsActive {
		return false
	}
	if len(p.AvailableBranchIDs) == 0 {
		return true
	}
	for _, id := range p.AvailableBranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}

// EffectivePrice returns the displayed price: the minimum variant price when
// variants are present, the base price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if len(p.Variants) == 0 {
		return p.Price
	}
	min := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price.LessThan(min) {
			min = v.Price
		}
	}
	return min
}

// Branding is the global theme singleton. It is persisted as a JSONB blob;
// this struct documents the known settings and seeds the initial row.
type Branding struct {
	RestaurantName     string `json:"restaurant_name"`
	LogoURL            string `json:"logo_url,omitempty"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
	HeaderImageURL     string `json:"header_image_url,omitempty"`
	PrimaryColor       string `json:"primary_color,omitempty"`
	BackgroundColor    string `json:"background_color,omitempty"`
	CardColor          string `json:"card_color,omitempty"`
	TextColor          string `json:"text_color,omitempty"`
	MutedColor         string `json:"muted_color,omitempty"`
}
