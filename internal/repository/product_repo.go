package repository

import (
	"go-stocktrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows FindAll results. Zero values mean "no filter".
type ProductFilter struct {
	Search     string
	CategoryID uuid.UUID
	Status     model.StockStatus
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	CountByCategory(id uuid.UUID) (int64, error)
	CountBySupplier(id uuid.UUID) (int64, error)
	// DeleteByCategory/DeleteBySupplier take a *gorm.DB so the purge can run
	// inside the cascade transaction
	DeleteByCategory(tx *gorm.DB, categoryID uuid.UUID) error
	DeleteBySupplier(tx *gorm.DB, supplierID uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category").Preload("Supplier").Order("created_at DESC")

	if filter.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if filter.CategoryID != uuid.Nil {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Supplier").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) CountByCategory(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *productRepo) CountBySupplier(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("supplier_id = ?", id).Count(&count).Error
	return count, err
}

func (r *productRepo) DeleteByCategory(tx *gorm.DB, categoryID uuid.UUID) error {
	return tx.Delete(&model.Product{}, "category_id = ?", categoryID).Error
}

func (r *productRepo) DeleteBySupplier(tx *gorm.DB, supplierID uuid.UUID) error {
	return tx.Delete(&model.Product{}, "supplier_id = ?", supplierID).Error
}
