// Package menuclient mirrors the menu service's entities on the client
// side: it issues the REST calls, translates between the store's wire
// format and the client model, and keeps an in-memory state mirror that
// admin and customer UIs read from.
package menuclient

// ViewType controls how a category renders its dishes.
type ViewType string

const (
	ViewGrid ViewType = "grid"
	ViewList ViewType = "list"
)

// Branch is a physical restaurant location.
type Branch struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	CustomColor string `json:"customColor,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

// Category is a named, ordered grouping of dishes.
type Category struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	SortOrder int      `json:"sortOrder"`
	ViewType  ViewType `json:"viewType"`
}

// DishVariant is a priced portion or preparation of a dish.
type DishVariant struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Dish is a sellable menu item. IDs are opaque strings on the client
// regardless of the store's numeric keys.
type Dish struct {
	ID                 string        `json:"id"`
	CategoryID         string        `json:"categoryId"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Price              float64       `json:"price"`
	ImageURLs          []string      `json:"imageUrls"`
	Variants           []DishVariant `json:"variants,omitempty"`
	Badges             []string      `json:"badges,omitempty"`
	IsActive           bool          `json:"isActive"`
	IsFeatured         bool          `json:"isFeatured,omitempty"`
	AvailableBranchIDs []string      `json:"availableBranchIds,omitempty"`
	SortOrder          int           `json:"sortOrder"`
}

// VisibleAt reports whether the dish is shown at the given branch. An empty
// allowlist means visible at every branch, including branches that did not
// exist when the dish was created.
func (d Dish) VisibleAt(branchID string) bool {
	if !d.IsActive {
		return false
	}
	if len(d.AvailableBranchIDs) == 0 {
		return true
	}
	for _, id := range d.AvailableBranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}

// DisplayPrice returns the price shown on the menu: the minimum variant
// price when variants are present, the base price otherwise.
func (d Dish) DisplayPrice() float64 {
	if len(d.Variants) == 0 {
		return d.Price
	}
	min := d.Variants[0].Price
	for _, v := range d.Variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	return min
}

// Branding is the global theme configuration singleton. Fields serialize
// even when empty so that clearing a setting reaches the store.
type Branding struct {
	RestaurantName     string `json:"restaurantName"`
	LogoURL            string `json:"logoUrl"`
	BackgroundImageURL string `json:"backgroundImageUrl"`
	HeaderImageURL     string `json:"headerImageUrl"`
	PrimaryColor       string `json:"primaryColor"`
	BackgroundColor    string `json:"backgroundColor"`
	CardColor          string `json:"cardColor"`
	TextColor          string `json:"textColor"`
	MutedColor         string `json:"mutedColor"`
}

// Direction of a move-by-one operation.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)
