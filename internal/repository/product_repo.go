package repository

import (
	"stocktrack-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll(categoryID *uuid.UUID, search string) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	// FindByIDForUpdate locks the product row for the duration of tx so
	// the sufficiency check and the quantity write are atomic.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	ClearCategory(tx *gorm.DB, categoryID uuid.UUID) error
	Count() (int64, error)
	CountByCategory(categoryID uuid.UUID) (int64, error)
	CountLowStock() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// conn returns the tx handle when one is in flight, the base connection otherwise.
func (r *productRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return r.conn(tx).Create(product).Error
}

func (r *productRepo) FindAll(categoryID *uuid.UUID, search string) ([]model.Product, error) {
	var products []model.Product
	query := r.db.Preload("Category").Order("created_at DESC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.conn(tx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return r.conn(tx).Save(product).Error
}

func (r *productRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error {
	return r.conn(tx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity", newQuantity).Error
}

func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).Delete(&model.Product{}, "id = ?", id).Error
}

// ClearCategory detaches every product from a category being deleted.
// Products survive; only the reference is cleared.
func (r *productRepo) ClearCategory(tx *gorm.DB, categoryID uuid.UUID) error {
	return r.conn(tx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *productRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("quantity < min_stock_level").Count(&count).Error
	return count, err
}
