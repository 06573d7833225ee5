package menuclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDishFromWire(t *testing.T) {
	img := "https://cdn.example.com/lagman.jpg"
	w := wireDish{
		ID:                 7,
		CategoryID:         3,
		Name:               "Lagman",
		Description:        "Hand-pulled noodles",
		Price:              42,
		ImageURL:           &img,
		Variants:           []wireVariant{{Name: "0.7", Price: 42}, {Name: "1.0", Price: 55}},
		Badges:             []string{"beef.svg"},
		IsActive:           true,
		IsFeatured:         true,
		AvailableBranchIDs: []int64{1, 4},
		SortOrder:          2,
	}

	d := dishFromWire(w)

	assert.Equal(t, "7", d.ID, "numeric store keys become opaque strings")
	assert.Equal(t, "3", d.CategoryID)
	assert.Equal(t, []string{img}, d.ImageURLs, "the single image_url becomes the primary image")
	assert.Equal(t, []string{"1", "4"}, d.AvailableBranchIDs)
	assert.Equal(t, 42.0, d.Price)
	assert.Len(t, d.Variants, 2)
	assert.True(t, d.IsFeatured)
	assert.Equal(t, 2, d.SortOrder)
}

func TestDishToWireKeepsOnlyFirstImage(t *testing.T) {
	d := Dish{
		ID:         "7",
		CategoryID: "3",
		Name:       "Lagman",
		ImageURLs:  []string{"first.jpg", "second.jpg", "third.jpg"},
		IsActive:   true,
	}

	w, err := dishToWire(d)

	require.NoError(t, err)
	require.NotNil(t, w.ImageURL)
	assert.Equal(t, "first.jpg", *w.ImageURL, "only the first image round-trips to the store")
}

func TestDishToWireRejectsNonNumericID(t *testing.T) {
	_, err := dishToWire(Dish{ID: "not-a-number", CategoryID: "1"})
	assert.Error(t, err)

	_, err = dishToWire(Dish{ID: "1", CategoryID: "cat-x"})
	assert.Error(t, err)
}

func TestDishToWireEmptyIDMeansCreate(t *testing.T) {
	w, err := dishToWire(Dish{CategoryID: "3", Name: "Somsa"})

	require.NoError(t, err)
	assert.Zero(t, w.ID)
	assert.EqualValues(t, 3, w.CategoryID)
}

func TestCategoryRoundTrip(t *testing.T) {
	w := wireCategory{ID: 12, Name: "Salads", SortOrder: 4, ViewType: "list"}

	c := categoryFromWire(w)
	assert.Equal(t, Category{ID: "12", Name: "Salads", SortOrder: 4, ViewType: ViewList}, c)

	back, err := categoryToWire(c)
	require.NoError(t, err)
	assert.Equal(t, w, back)
}

func TestCategoryFromWireDefaultsToGrid(t *testing.T) {
	c := categoryFromWire(wireCategory{ID: 1, Name: "Soups"})
	assert.Equal(t, ViewGrid, c.ViewType)
}

func TestBranchRoundTrip(t *testing.T) {
	color := "#ff6600"
	w := wireBranch{ID: 2, Name: "Chilonzor", Address: "Chilonzor 5", Phone: "+998900000000", CustomColor: &color}

	b := branchFromWire(w)
	assert.Equal(t, "2", b.ID)
	assert.Equal(t, "#ff6600", b.CustomColor)
	assert.Empty(t, b.LogoURL)

	back, err := branchToWire(b)
	require.NoError(t, err)
	assert.Equal(t, w, back)
}

func TestBrandingTranslation(t *testing.T) {
	w := wireBranding{
		RestaurantName: "Mening Restoranim",
		PrimaryColor:   "#e11d48",
		MutedColor:     "#6b7280",
	}

	b := brandingFromWire(w)
	assert.Equal(t, "Mening Restoranim", b.RestaurantName)
	assert.Equal(t, "#e11d48", b.PrimaryColor)
	assert.Equal(t, w, brandingToWire(b))
}
