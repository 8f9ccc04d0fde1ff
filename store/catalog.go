package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/roboarena/storefront-api/models"
)

// ProductByID resolves a product to its current price and availability.
func (s *Store) ProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ProductBySlug fetches a product with its category for the detail view.
func (s *Store) ProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

type ProductPage struct {
	Products   []models.Product `json:"products"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	TotalCount int64            `json:"total_count"`
}

// Products lists the catalog newest first, optionally filtered by category
// slug, paginated perPage at a time.
func (s *Store) Products(categorySlug string, page, perPage int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 6
	}

	query := s.db.Model(&models.Product{}).Preload("Category")
	if categorySlug != "" {
		var category models.Category
		if err := s.db.Where("slug = ?", categorySlug).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		query = query.Where("category_id = ?", category.ID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var products []models.Product
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return &ProductPage{
		Products:   products,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// Categories lists all categories ordered by name.
func (s *Store) Categories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
