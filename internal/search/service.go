package search

import (
	"strings"
	"time"

	"github.com/maeva/realestate/internal/models"
	"gorm.io/gorm"
)

type Params struct {
	Query        string  `json:"query"`
	PropertyType string  `json:"property_type,omitempty"`
	Location     string  `json:"location,omitempty"`
	Featured     *bool   `json:"featured,omitempty"`
	MinPrice     float64 `json:"min_price,omitempty"`
	MaxPrice     float64 `json:"max_price,omitempty"`
	FromDate     string  `json:"from_date,omitempty"`
	ToDate       string  `json:"to_date,omitempty"`
	Page         int     `json:"page"`
	Limit        int     `json:"limit"`
	SortBy       string  `json:"sort_by"`
	OrderBy      string  `json:"order_by"`
}

type Result struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int64             `json:"total_pages"`
	Query      string            `json:"query"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Search runs a filtered, paginated query over the property catalogue. The
// free-text query matches title, description, and location.
func (s *Service) Search(params Params) (*Result, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 10
	}
	if params.Limit > 100 {
		params.Limit = 100
	}

	query := s.db.Model(&models.Property{})

	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + q + "%"
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where(
				"title ILIKE ? OR description ILIKE ? OR location ILIKE ?",
				pattern, pattern, pattern,
			)
		} else {
			query = query.Where(
				"title LIKE ? OR description LIKE ? OR location LIKE ?",
				pattern, pattern, pattern,
			)
		}
	}

	if params.PropertyType != "" {
		query = query.Where("property_type = ?", params.PropertyType)
	}
	if params.Location != "" {
		query = query.Where("location LIKE ?", "%"+params.Location+"%")
	}
	if params.Featured != nil {
		query = query.Where("featured = ?", *params.Featured)
	}

	// Price is stored as text; cast per dialect for range comparisons.
	if params.MinPrice > 0 {
		query = query.Where(priceCast(s.db)+" >= ?", params.MinPrice)
	}
	if params.MaxPrice > 0 {
		query = query.Where(priceCast(s.db)+" <= ?", params.MaxPrice)
	}

	if params.FromDate != "" {
		if fromDate, err := time.Parse("2006-01-02", params.FromDate); err == nil {
			query = query.Where("created_at >= ?", fromDate)
		}
	}
	if params.ToDate != "" {
		if toDate, err := time.Parse("2006-01-02", params.ToDate); err == nil {
			query = query.Where("created_at < ?", toDate.Add(24*time.Hour))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	query = s.applySorting(query, params)

	offset := (params.Page - 1) * params.Limit
	query = query.Offset(offset).Limit(params.Limit)

	query = query.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	})

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, err
	}

	totalPages := total / int64(params.Limit)
	if total%int64(params.Limit) > 0 {
		totalPages++
	}

	return &Result{
		Properties: properties,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
		Query:      params.Query,
	}, nil
}

func (s *Service) applySorting(query *gorm.DB, params Params) *gorm.DB {
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = "desc"
	}

	switch params.SortBy {
	case "price":
		query = query.Order(priceCast(s.db) + " " + orderBy)
	case "title":
		query = query.Order("title " + orderBy)
	case "created_at", "":
		query = query.Order("created_at " + orderBy)
	default:
		query = query.Order("created_at " + orderBy)
	}

	return query
}

// Locations lists the distinct locations present in the catalogue, for
// populating the search filter dropdown.
func (s *Service) Locations() ([]string, error) {
	var locations []string
	err := s.db.Model(&models.Property{}).
		Distinct().
		Where("location <> ''").
		Order("location ASC").
		Pluck("location", &locations).Error
	return locations, err
}

func priceCast(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "NULLIF(regexp_replace(price, '[^0-9.]', '', 'g'), '')::numeric"
	}
	return "CAST(price AS REAL)"
}
