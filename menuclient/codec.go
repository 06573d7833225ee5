package menuclient

import (
	"fmt"
	"strconv"
)

// The store speaks snake_case with numeric keys; the client model speaks
// camelCase with opaque string ids. Every field is translated here, in
// both directions, exactly once.

type wireBranch struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	CustomColor *string `json:"custom_color"`
	LogoURL     *string `json:"logo_url"`
}

type wireCategory struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	ViewType  string `json:"view_type"`
}

type wireVariant struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type wireDish struct {
	ID                 int64         `json:"id"`
	CategoryID         int64         `json:"category_id"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Price              float64       `json:"price"`
	ImageURL           *string       `json:"image_url"`
	Variants           []wireVariant `json:"variants"`
	Badges             []string      `json:"badges"`
	IsActive           bool          `json:"is_active"`
	IsFeatured         bool          `json:"is_featured"`
	AvailableBranchIDs []int64       `json:"available_branch_ids"`
	SortOrder          int           `json:"sort_order"`
}

// Every field serializes even when empty: the store merges the submitted
// object into its settings row, so an explicit empty string is how a color
// or image gets cleared.
type wireBranding struct {
	RestaurantName     string `json:"restaurant_name"`
	LogoURL            string `json:"logo_url"`
	BackgroundImageURL string `json:"background_image_url"`
	HeaderImageURL     string `json:"header_image_url"`
	PrimaryColor       string `json:"primary_color"`
	BackgroundColor    string `json:"background_color"`
	CardColor          string `json:"card_color"`
	TextColor          string `json:"text_color"`
	MutedColor         string `json:"muted_color"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(id string) (int64, error) {
	if id == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entity id %q: %w", id, err)
	}
	return n, nil
}

func branchFromWire(w wireBranch) Branch {
	b := Branch{
		ID:      formatID(w.ID),
		Name:    w.Name,
		Address: w.Address,
		Phone:   w.Phone,
	}
	if w.CustomColor != nil {
		b.CustomColor = *w.CustomColor
	}
	if w.LogoURL != nil {
		b.LogoURL = *w.LogoURL
	}
	return b
}

func branchToWire(b Branch) (wireBranch, error) {
	id, err := parseID(b.ID)
	if err != nil {
		return wireBranch{}, err
	}
	w := wireBranch{
		ID:      id,
		Name:    b.Name,
		Address: b.Address,
		Phone:   b.Phone,
	}
	if b.CustomColor != "" {
		w.CustomColor = &b.CustomColor
	}
	if b.LogoURL != "" {
		w.LogoURL = &b.LogoURL
	}
	return w, nil
}

func categoryFromWire(w wireCategory) Category {
	viewType := ViewType(w.ViewType)
	if viewType == "" {
		viewType = ViewGrid
	}
	return Category{
		ID:        formatID(w.ID),
		Name:      w.Name,
		SortOrder: w.SortOrder,
		ViewType:  viewType,
	}
}

func categoryToWire(c Category) (wireCategory, error) {
	id, err := parseID(c.ID)
	if err != nil {
		return wireCategory{}, err
	}
	return wireCategory{
		ID:        id,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		ViewType:  string(c.ViewType),
	}, nil
}

func dishFromWire(w wireDish) Dish {
	d := Dish{
		ID:          formatID(w.ID),
		CategoryID:  formatID(w.CategoryID),
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		Badges:      w.Badges,
		IsActive:    w.IsActive,
		IsFeatured:  w.IsFeatured,
		SortOrder:   w.SortOrder,
	}
	// The store persists a single image_url; it becomes the primary (first)
	// entry of the client-side list.
	if w.ImageURL != nil && *w.ImageURL != "" {
		d.ImageURLs = []string{*w.ImageURL}
	}
	for _, v := range w.Variants {
		d.Variants = append(d.Variants, DishVariant{Name: v.Name, Price: v.Price})
	}
	for _, id := range w.AvailableBranchIDs {
		d.AvailableBranchIDs = append(d.AvailableBranchIDs, formatID(id))
	}
	return d
}

func dishToWire(d Dish) (wireDish, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return wireDish{}, err
	}
	categoryID, err := parseID(d.CategoryID)
	if err != nil {
		return wireDish{}, err
	}

	w := wireDish{
		ID:          id,
		CategoryID:  categoryID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Badges:      d.Badges,
		IsActive:    d.IsActive,
		IsFeatured:  d.IsFeatured,
		SortOrder:   d.SortOrder,
	}
	// Only the first image round-trips to the store.
	if len(d.ImageURLs) > 0 && d.ImageURLs[0] != "" {
		w.ImageURL = &d.ImageURLs[0]
	}
	for _, v := range d.Variants {
		w.Variants = append(w.Variants, wireVariant{Name: v.Name, Price: v.Price})
	}
	for _, branchID := range d.AvailableBranchIDs {
		n, err := parseID(branchID)
		if err != nil {
			return wireDish{}, err
		}
		w.AvailableBranchIDs = append(w.AvailableBranchIDs, n)
	}
	return w, nil
}

func brandingFromWire(w wireBranding) Branding {
	return Branding(w)
}

func brandingToWire(b Branding) wireBranding {
	return wireBranding(b)
}
