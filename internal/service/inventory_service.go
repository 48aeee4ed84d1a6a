package service

import (
	"errors"
	"fmt"

	"go-stocktrack/internal/apperror"
	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/internal/ws"
	"go-stocktrack/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateProduct(req *CreateProductRequest, actorID uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actorID uuid.UUID) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetAllProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
}

type CreateProductRequest struct {
	Name              string    `json:"name" validate:"required"`
	SKU               string    `json:"sku" validate:"required"`
	CategoryID        uuid.UUID `json:"category_id" validate:"uuid_required"`
	SupplierID        uuid.UUID `json:"supplier_id" validate:"uuid_required"`
	Quantity          int       `json:"quantity" validate:"gte=0"`
	Price             float64   `json:"price" validate:"gte=0"`
	LowStockThreshold *int      `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	Name              string    `json:"name" validate:"required"`
	SKU               string    `json:"sku"` // must match the stored SKU if present
	CategoryID        uuid.UUID `json:"category_id" validate:"uuid_required"`
	SupplierID        uuid.UUID `json:"supplier_id" validate:"uuid_required"`
	Quantity          int       `json:"quantity" validate:"gte=0"`
	Price             float64   `json:"price" validate:"gte=0"`
	LowStockThreshold *int      `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	wsHub        *ws.Hub
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		wsHub:        hub,
	}
}

func (s *inventoryService) CreateProduct(req *CreateProductRequest, actorID uuid.UUID) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	// Duplicate SKU check
	existing, err := s.productRepo.FindBySKU(req.SKU)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Dependency("failed to look up SKU", err)
	}
	if existing != nil {
		return nil, apperror.Validation("SKU already exists")
	}

	// Both references must exist before the product is written
	if err := s.checkReferences(req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	threshold := model.DefaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	product := &model.Product{
		Name:              req.Name,
		SKU:               req.SKU,
		CategoryID:        req.CategoryID,
		SupplierID:        req.SupplierID,
		Quantity:          req.Quantity,
		Price:             req.Price,
		LowStockThreshold: threshold,
	}
	product.CreatedBy = actorID.String()
	product.UpdatedBy = actorID.String()

	if err := s.productRepo.Create(product); err != nil {
		return nil, apperror.Dependency("failed to create product", err)
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventProductCreated,
		Message: fmt.Sprintf("product '%s' created", product.Name),
		Payload: product,
	})
	s.alertIfStockCritical(product)

	return s.GetProductByID(product.ID)
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actorID uuid.UUID) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, apperror.Dependency("failed to fetch product", err)
	}

	// SKU is immutable after creation
	if req.SKU != "" && req.SKU != existing.SKU {
		return nil, apperror.Validation("SKU cannot be changed")
	}

	if err := s.checkReferences(req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	oldStatus := existing.Status

	existing.Name = req.Name
	existing.CategoryID = req.CategoryID
	existing.SupplierID = req.SupplierID
	existing.Quantity = req.Quantity
	existing.Price = req.Price
	if req.LowStockThreshold != nil {
		existing.LowStockThreshold = *req.LowStockThreshold
	}
	existing.UpdatedBy = actorID.String()

	// Save runs the BeforeSave hook, recomputing status from quantity
	if err := s.productRepo.Update(existing); err != nil {
		return nil, apperror.Dependency("failed to update product", err)
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventProductUpdated,
		Message: fmt.Sprintf("product '%s' updated", existing.Name),
		Payload: existing,
	})
	if existing.Status != oldStatus {
		s.alertIfStockCritical(existing)
	}

	return s.GetProductByID(existing.ID)
}

func (s *inventoryService) DeleteProduct(id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("product not found")
		}
		return apperror.Dependency("failed to fetch product", err)
	}

	if err := s.productRepo.Delete(id); err != nil {
		return apperror.Dependency("failed to delete product", err)
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventProductDeleted,
		Message: fmt.Sprintf("product '%s' removed from inventory", product.Name),
	})

	return nil
}

func (s *inventoryService) GetAllProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		return nil, apperror.Dependency("failed to fetch products", err)
	}
	return products, nil
}

func (s *inventoryService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, apperror.Dependency("failed to fetch product", err)
	}
	return product, nil
}

func (s *inventoryService) checkReferences(categoryID, supplierID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("category not found")
		}
		return apperror.Dependency("failed to fetch category", err)
	}
	if _, err := s.supplierRepo.FindByID(supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("supplier not found")
		}
		return apperror.Dependency("failed to fetch supplier", err)
	}
	return nil
}

func (s *inventoryService) alertIfStockCritical(product *model.Product) {
	if product.Status == model.StatusInStock {
		return
	}
	s.wsHub.Publish(ws.Event{
		Type:    ws.EventLowStockAlert,
		Message: fmt.Sprintf("product '%s' (%s) is %s", product.Name, product.SKU, product.Status),
		Payload: map[string]interface{}{
			"product_id": product.ID,
			"sku":        product.SKU,
			"quantity":   product.Quantity,
			"status":     product.Status,
		},
	})
}
