package service

import (
	"errors"
	"fmt"

	"stocktrack-backend/internal/apperr"
	"stocktrack-backend/internal/model"
	"stocktrack-backend/internal/repository"
	"stocktrack-backend/internal/ws"
	"stocktrack-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	SKU           string          `json:"sku" validate:"required"`
	Description   string          `json:"description"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity" validate:"gte=0"`
	MinStockLevel *int            `json:"min_stock_level" validate:"omitempty,gte=0"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CategoryWithCount is a category plus its computed product count.
type CategoryWithCount struct {
	model.Category
	ProductCount int64 `json:"product_count"`
}

// CatalogService owns product and category CRUD plus the notifications
// those mutations emit.
type CatalogService interface {
	CreateProduct(req *ProductRequest) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProducts(categoryID *uuid.UUID, search string) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)

	CreateCategory(req *CategoryRequest) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *CategoryRequest) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetCategories() ([]CategoryWithCount, error)
}

type catalogService struct {
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	notifications repository.NotificationRepository
	db            *gorm.DB
	hub           *ws.Hub
}

func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	notifications repository.NotificationRepository,
	db *gorm.DB,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		products:      products,
		categories:    categories,
		notifications: notifications,
		db:            db,
		hub:           hub,
	}
}

func (s *catalogService) CreateProduct(req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("Missing required fields")
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("Price must not be negative")
	}

	existing, _ := s.products.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, apperr.Conflict("Product with this SKU already exists")
	}

	minStock := 10
	if req.MinStockLevel != nil {
		minStock = *req.MinStockLevel
	}

	product := &model.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		Quantity:      req.Quantity,
		MinStockLevel: minStock,
	}

	var created []model.Notification
	err := runTx(s.db, func(tx *gorm.DB) error {
		if err := s.products.Create(tx, product); err != nil {
			return translateDBErr(err, "Product with this SKU already exists")
		}

		added := model.Notification{
			Type:              model.NotifProductAdded,
			Message:           fmt.Sprintf("New product %q has been added to inventory", product.Name),
			RelatedEntityType: "product",
			RelatedEntityID:   &product.ID,
		}
		if err := s.notifications.Create(tx, &added); err != nil {
			return err
		}
		created = append(created, added)

		// Level-triggered on create: notify whenever the starting
		// quantity is already below threshold.
		if product.IsLowStock() {
			low := lowStockNotification(product.ID, product.Name, product.Quantity)
			if err := s.notifications.Create(tx, &low); err != nil {
				return err
			}
			created = append(created, low)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishNotifications(s.hub, created)
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("Missing required fields")
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("Price must not be negative")
	}

	var updated *model.Product
	var created []model.Notification

	err := runTx(s.db, func(tx *gorm.DB) error {
		existing, err := s.products.FindByIDForUpdate(tx, id)
		if err != nil {
			return apperr.NotFound("Product not found")
		}

		if req.SKU != existing.SKU {
			other, _ := s.products.FindBySKU(req.SKU)
			if other != nil && other.ID != uuid.Nil && other.ID != id {
				return apperr.Conflict("Product with this SKU already exists")
			}
		}

		wasLow := existing.IsLowStock()

		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Description = req.Description
		existing.CategoryID = req.CategoryID
		existing.Price = req.Price
		existing.Quantity = req.Quantity
		if req.MinStockLevel != nil {
			existing.MinStockLevel = *req.MinStockLevel
		}

		if err := s.products.Save(tx, existing); err != nil {
			return translateDBErr(err, "Product with this SKU already exists")
		}
		updated = existing

		notif := model.Notification{
			Type:              model.NotifProductUpdated,
			Message:           fmt.Sprintf("Product %q has been updated", existing.Name),
			RelatedEntityType: "product",
			RelatedEntityID:   &existing.ID,
		}
		if err := s.notifications.Create(tx, &notif); err != nil {
			return err
		}
		created = append(created, notif)

		// Edge-triggered on update: only fire when crossing from
		// not-low into low, never while already below threshold.
		if !wasLow && existing.IsLowStock() {
			low := lowStockNotification(existing.ID, existing.Name, existing.Quantity)
			if err := s.notifications.Create(tx, &low); err != nil {
				return err
			}
			created = append(created, low)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishNotifications(s.hub, created)
	return updated, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return apperr.NotFound("Product not found")
	}

	var created []model.Notification
	err = runTx(s.db, func(tx *gorm.DB) error {
		if err := s.products.Delete(tx, id); err != nil {
			return err
		}

		// Sales and movements are historical facts; they stay.
		notif := model.Notification{
			Type:              model.NotifProductDeleted,
			Message:           fmt.Sprintf("Product %q has been removed from inventory", product.Name),
			RelatedEntityType: "product",
		}
		if err := s.notifications.Create(tx, &notif); err != nil {
			return err
		}
		created = append(created, notif)
		return nil
	})
	if err != nil {
		return err
	}

	publishNotifications(s.hub, created)
	return nil
}

func (s *catalogService) GetProducts(categoryID *uuid.UUID, search string) ([]model.Product, error) {
	return s.products.FindAll(categoryID, search)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) CreateCategory(req *CategoryRequest) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("Category name is required")
	}

	existing, _ := s.categories.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, apperr.Conflict("Category with this name already exists")
	}

	category := &model.Category{Name: req.Name, Description: req.Description}

	var created []model.Notification
	err := runTx(s.db, func(tx *gorm.DB) error {
		if err := s.categories.Create(category); err != nil {
			return translateDBErr(err, "Category with this name already exists")
		}

		notif := model.Notification{
			Type:              model.NotifCategoryAdded,
			Message:           fmt.Sprintf("New category %q has been created", category.Name),
			RelatedEntityType: "category",
			RelatedEntityID:   &category.ID,
		}
		if err := s.notifications.Create(tx, &notif); err != nil {
			return err
		}
		created = append(created, notif)
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishNotifications(s.hub, created)
	return category, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *CategoryRequest) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("Category name is required")
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		return nil, apperr.NotFound("Category not found")
	}

	if req.Name != category.Name {
		other, _ := s.categories.FindByName(req.Name)
		if other != nil && other.ID != uuid.Nil && other.ID != id {
			return nil, apperr.Conflict("Category with this name already exists")
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categories.Save(category); err != nil {
		return nil, translateDBErr(err, "Category with this name already exists")
	}
	return category, nil
}

// DeleteCategory removes the category and clears the reference on its
// products. Products themselves are never deleted or blocked.
func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	category, err := s.categories.FindByID(id)
	if err != nil {
		return apperr.NotFound("Category not found")
	}

	var created []model.Notification
	err = runTx(s.db, func(tx *gorm.DB) error {
		if err := s.products.ClearCategory(tx, id); err != nil {
			return err
		}
		if err := s.categories.Delete(tx, id); err != nil {
			return err
		}

		notif := model.Notification{
			Type:              model.NotifCategoryDeleted,
			Message:           fmt.Sprintf("Category %q has been deleted", category.Name),
			RelatedEntityType: "category",
		}
		if err := s.notifications.Create(tx, &notif); err != nil {
			return err
		}
		created = append(created, notif)
		return nil
	})
	if err != nil {
		return err
	}

	publishNotifications(s.hub, created)
	return nil
}

func (s *catalogService) GetCategories() ([]CategoryWithCount, error) {
	categories, err := s.categories.FindAll()
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.products.CountByCategory(category.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CategoryWithCount{Category: category, ProductCount: count})
	}
	return result, nil
}
