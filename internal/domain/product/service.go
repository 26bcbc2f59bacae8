// internal/domain/product/service.go
package product

import (
	"errors"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Brand    string `form:"brand"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// ProductUpdateRequest represents product update data. Zero values leave the
// stored field unchanged, matching the admin edit form behavior.
type ProductUpdateRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	CountInStock int     `json:"count_in_stock"`
}

// GetProducts retrieves products with optional filtering
func (s *Service) GetProducts(req *ProductListRequest) ([]Product, error) {
	var products []Product

	query := s.db.Model(&Product{})
	if req.Brand != "" {
		query = query.Where("brand = ?", req.Brand)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Search != "" {
		query = query.Where("name ILIKE ?", "%"+req.Search+"%")
	}

	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, apperror.Internal(err)
	}

	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, apperror.Internal(result.Error)
	}
	return &product, nil
}

// CreateProduct creates a placeholder product owned by the given admin.
// The admin edits it afterwards through UpdateProduct.
func (s *Service) CreateProduct(userID uint) (*Product, error) {
	product := Product{
		Name:         "Sample Name",
		Price:        0,
		UserID:       userID,
		Image:        "/images/sample.jpg",
		Brand:        "Sample Brand",
		Category:     "Sample Category",
		CountInStock: 0,
		NumReviews:   0,
		Description:  "Sample description",
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, apperror.Internal(err)
	}

	return &product, nil
}

// UpdateProduct merges the non-zero request fields into an existing product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Price != 0 {
		product.Price = req.Price
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Image != "" {
		product.Image = req.Image
	}
	if req.Brand != "" {
		product.Brand = req.Brand
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.CountInStock != 0 {
		product.CountInStock = req.CountInStock
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, apperror.Internal(err)
	}

	return product, nil
}

// DeleteProduct removes a product by ID
func (s *Service) DeleteProduct(id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return apperror.Internal(err)
	}

	return nil
}
