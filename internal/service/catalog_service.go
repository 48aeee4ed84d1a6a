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
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CatalogService manages categories and suppliers. Deletion cascades to the
// referencing products: the purge and the parent delete run as one unit.
type CatalogService interface {
	CreateCategory(req *model.Category, actorID uuid.UUID) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *model.Category, actorID uuid.UUID) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetAllCategories() ([]model.Category, error)

	CreateSupplier(req *model.Supplier, actorID uuid.UUID) (*model.Supplier, error)
	UpdateSupplier(id uuid.UUID, req *model.Supplier, actorID uuid.UUID) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error
	GetAllSuppliers() ([]model.Supplier, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateCategory(req *model.Category, actorID uuid.UUID) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	existing, err := s.categoryRepo.FindByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Dependency("failed to look up category name", err)
	}
	if existing != nil {
		return nil, apperror.Validation("category name already exists")
	}

	req.CreatedBy = actorID.String()
	req.UpdatedBy = actorID.String()
	if err := s.categoryRepo.Create(req); err != nil {
		return nil, apperror.Dependency("failed to create category", err)
	}
	return req, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category, actorID uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, apperror.Dependency("failed to fetch category", err)
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	// The new name must not collide with another category
	existing, err := s.categoryRepo.FindByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Dependency("failed to look up category name", err)
	}
	if existing != nil && existing.ID != id {
		return nil, apperror.Validation("category name already exists")
	}

	category.Name = req.Name
	category.Description = req.Description
	category.UpdatedBy = actorID.String()

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, apperror.Dependency("failed to update category", err)
	}
	return category, nil
}

// DeleteCategory purges every product referencing the category, then deletes
// the category itself. Both steps share one transaction: a failed purge
// leaves the category intact.
func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("category not found")
		}
		return apperror.Dependency("failed to fetch category", err)
	}

	purged, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return apperror.Dependency("failed to count linked products", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.DeleteByCategory(tx, id); err != nil {
			return err
		}
		return s.categoryRepo.Delete(tx, id)
	})
	if err != nil {
		return apperror.Dependency("cascade deletion failed, category left intact", err)
	}

	log.Info().
		Str("category", category.Name).
		Int64("purged_products", purged).
		Msg("category deleted with cascade")

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventCascadeDeletion,
		Message: fmt.Sprintf("category '%s' and %d linked products deleted", category.Name, purged),
	})

	return nil
}

func (s *catalogService) GetAllCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, apperror.Dependency("failed to fetch categories", err)
	}
	return categories, nil
}

func (s *catalogService) CreateSupplier(req *model.Supplier, actorID uuid.UUID) (*model.Supplier, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	existing, err := s.supplierRepo.FindByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Dependency("failed to look up supplier name", err)
	}
	if existing != nil {
		return nil, apperror.Validation("supplier name already exists")
	}

	req.CreatedBy = actorID.String()
	req.UpdatedBy = actorID.String()
	if err := s.supplierRepo.Create(req); err != nil {
		return nil, apperror.Dependency("failed to create supplier", err)
	}
	return req, nil
}

func (s *catalogService) UpdateSupplier(id uuid.UUID, req *model.Supplier, actorID uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("supplier not found")
		}
		return nil, apperror.Dependency("failed to fetch supplier", err)
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperror.Validation(fmt.Sprintf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	// The new name must not collide with another supplier
	existing, err := s.supplierRepo.FindByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Dependency("failed to look up supplier name", err)
	}
	if existing != nil && existing.ID != id {
		return nil, apperror.Validation("supplier name already exists")
	}

	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Address = req.Address
	supplier.UpdatedBy = actorID.String()

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, apperror.Dependency("failed to update supplier", err)
	}
	return supplier, nil
}

// DeleteSupplier cascades identically to DeleteCategory.
func (s *catalogService) DeleteSupplier(id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("supplier not found")
		}
		return apperror.Dependency("failed to fetch supplier", err)
	}

	purged, err := s.productRepo.CountBySupplier(id)
	if err != nil {
		return apperror.Dependency("failed to count linked products", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.DeleteBySupplier(tx, id); err != nil {
			return err
		}
		return s.supplierRepo.Delete(tx, id)
	})
	if err != nil {
		return apperror.Dependency("cascade deletion failed, supplier left intact", err)
	}

	log.Info().
		Str("supplier", supplier.Name).
		Int64("purged_products", purged).
		Msg("supplier deleted with cascade")

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventCascadeDeletion,
		Message: fmt.Sprintf("supplier '%s' and %d linked products deleted", supplier.Name, purged),
	})

	return nil
}

func (s *catalogService) GetAllSuppliers() ([]model.Supplier, error) {
	suppliers, err := s.supplierRepo.FindAll()
	if err != nil {
		return nil, apperror.Dependency("failed to fetch suppliers", err)
	}
	return suppliers, nil
}
