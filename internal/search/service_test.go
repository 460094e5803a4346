package search_test

import (
	"testing"

	"github.com/maeva/realestate/internal/models"
	"github.com/maeva/realestate/internal/search"
	"github.com/maeva/realestate/internal/testutils"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedProperties(t *testing.T, db *gorm.DB) {
	props := []models.Property{
		{Title: "Casa na Ilha", Description: "Vista para o mar", PropertyType: "house", Price: "250000", Location: "Luanda", Featured: true},
		{Title: "Apartamento T3", Description: "Centro da cidade", PropertyType: "apartment", Price: "120000", Location: "Luanda"},
		{Title: "Loja comercial", Description: "Zona movimentada", PropertyType: "commercial", Price: "80000", Location: "Benguela"},
		{Title: "Vivenda moderna", Description: "Condomínio fechado", PropertyType: "house", Price: "400000", Location: "Benguela", Featured: true},
	}
	for i := range props {
		assert.NoError(t, db.Create(&props[i]).Error)
	}
}

func TestSearchFreeText(t *testing.T) {
	db := testutils.TestDB(t)
	seedProperties(t, db)
	svc := search.NewService(db)

	result, err := svc.Search(search.Params{Query: "mar"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, "Casa na Ilha", result.Properties[0].Title)

	// Matches location text too.
	result, err = svc.Search(search.Params{Query: "Benguela"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}

func TestSearchFilters(t *testing.T) {
	db := testutils.TestDB(t)
	seedProperties(t, db)
	svc := search.NewService(db)

	result, err := svc.Search(search.Params{PropertyType: "house"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	featured := true
	result, err = svc.Search(search.Params{Location: "Luanda", Featured: &featured})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, "Casa na Ilha", result.Properties[0].Title)
}

func TestSearchPriceRange(t *testing.T) {
	db := testutils.TestDB(t)
	seedProperties(t, db)
	svc := search.NewService(db)

	result, err := svc.Search(search.Params{MinPrice: 100000, MaxPrice: 300000})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}

func TestSearchSortByPrice(t *testing.T) {
	db := testutils.TestDB(t)
	seedProperties(t, db)
	svc := search.NewService(db)

	result, err := svc.Search(search.Params{SortBy: "price", OrderBy: "asc"})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), result.Total)
	assert.Equal(t, "Loja comercial", result.Properties[0].Title)
	assert.Equal(t, "Vivenda moderna", result.Properties[3].Title)
}

func TestSearchPagination(t *testing.T) {
	db := testutils.TestDB(t)
	seedProperties(t, db)
	svc := search.NewService(db)

	result, err := svc.Search(search.Params{Limit: 3, Page: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), result.Total)
	assert.Len(t, result.Properties, 1)
	assert.Equal(t, int64(2), result.TotalPages)
}

func TestLocations(t *testing.T) {
	db := testutils.TestDB(t)
	seedProperties(t, db)
	svc := search.NewService(db)

	locations, err := svc.Locations()
	assert.NoError(t, err)
	assert.Equal(t, []string{"Benguela", "Luanda"}, locations)
}
