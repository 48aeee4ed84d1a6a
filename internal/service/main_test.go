package service

import (
	"strings"
	"testing"

	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"
	"go-stocktrack/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory db")

	err = db.AutoMigrate(&model.User{}, &model.Category{}, &model.Supplier{}, &model.Product{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	catalog  CatalogService
	products InventoryService
	reports  ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	hub := ws.NewHub()

	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	reportRepo := repository.NewReportRepo(db)

	return &testEnv{
		db:       db,
		users:    userRepo,
		catalog:  NewCatalogService(categoryRepo, supplierRepo, productRepo, db, hub),
		products: NewInventoryService(productRepo, categoryRepo, supplierRepo, hub),
		reports:  NewReportService(reportRepo),
	}
}

func (e *testEnv) mustCreateCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	category, err := e.catalog.CreateCategory(&model.Category{Name: name}, uuid.New())
	require.NoError(t, err)
	return category
}

func (e *testEnv) mustCreateSupplier(t *testing.T, name string) *model.Supplier {
	t.Helper()
	supplier, err := e.catalog.CreateSupplier(&model.Supplier{
		Name:  name,
		Email: strings.ReplaceAll(name, " ", ".") + "@suppliers.test",
	}, uuid.New())
	require.NoError(t, err)
	return supplier
}

func (e *testEnv) mustCreateProduct(t *testing.T, req *CreateProductRequest) *model.Product {
	t.Helper()
	product, err := e.products.CreateProduct(req, uuid.New())
	require.NoError(t, err)
	return product
}

func intPtr(v int) *int { return &v }
