package service

import (
	"testing"

	"go-stocktrack/internal/apperror"
	"go-stocktrack/internal/model"
	"go-stocktrack/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_DerivesStatus(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	cola := env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0, LowStockThreshold: intPtr(10),
	})
	assert.Equal(t, model.StatusLowStock, cola.Status)

	full := env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Water", SKU: "WATER-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 100, Price: 1.0,
	})
	assert.Equal(t, model.StatusInStock, full.Status)

	empty := env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Juice", SKU: "JUICE-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 0, Price: 3.0,
	})
	assert.Equal(t, model.StatusOutOfStock, empty.Status)
}

func TestUpdateProduct_RecomputesStatus(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	cola := env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0, LowStockThreshold: intPtr(10),
	})
	require.Equal(t, model.StatusLowStock, cola.Status)

	updated, err := env.products.UpdateProduct(cola.ID, &UpdateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 0, Price: 2.0, LowStockThreshold: intPtr(10),
	}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.StatusOutOfStock, updated.Status)

	updated, err = env.products.UpdateProduct(cola.ID, &UpdateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 500, Price: 2.0, LowStockThreshold: intPtr(10),
	}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.StatusInStock, updated.Status)
}

func TestCreateProduct_DefaultThreshold(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	// No threshold given: default of 10 applies, so quantity 10 is Low Stock
	product := env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 10, Price: 2.0,
	})
	assert.Equal(t, model.DefaultLowStockThreshold, product.LowStockThreshold)
	assert.Equal(t, model.StatusLowStock, product.Status)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0,
	})

	_, err := env.products.CreateProduct(&CreateProductRequest{
		Name: "Other Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateProduct_SKUImmutable(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	cola := env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0,
	})

	_, err := env.products.UpdateProduct(cola.ID, &UpdateProductRequest{
		Name: "Cola", SKU: "COLA-2",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreateProduct_MissingReferences(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	_, err := env.products.CreateProduct(&CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: uuid.New(), SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0,
	}, uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	_, err = env.products.CreateProduct(&CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: uuid.New(),
		Quantity: 5, Price: 2.0,
	}, uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateProduct_NegativeQuantityRejected(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	_, err := env.products.CreateProduct(&CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: -1, Price: 2.0,
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	cola := env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0,
	})

	require.NoError(t, env.products.DeleteProduct(cola.ID))

	_, err := env.products.GetProductByID(cola.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	err = env.products.DeleteProduct(uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteProduct_FreesSKUForReuse(t *testing.T) {
	env := newTestEnv(t)

	category := env.mustCreateCategory(t, "Beverages")
	supplier := env.mustCreateSupplier(t, "Acme")

	cola := env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 5, Price: 2.0,
	})

	require.NoError(t, env.products.DeleteProduct(cola.ID))

	// The deleted SKU no longer occupies the unique index
	recreated, err := env.products.CreateProduct(&CreateProductRequest{
		Name: "Cola Reborn", SKU: "COLA-1",
		CategoryID: category.ID, SupplierID: supplier.ID,
		Quantity: 8, Price: 2.5,
	}, uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, cola.ID, recreated.ID)
}

func TestGetAllProducts_Filters(t *testing.T) {
	env := newTestEnv(t)

	beverages := env.mustCreateCategory(t, "Beverages")
	snacks := env.mustCreateCategory(t, "Snacks")
	supplier := env.mustCreateSupplier(t, "Acme")

	env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola Zero", SKU: "COLA-0",
		CategoryID: beverages.ID, SupplierID: supplier.ID,
		Quantity: 0, Price: 2.0,
	})
	env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Cola Classic", SKU: "COLA-1",
		CategoryID: beverages.ID, SupplierID: supplier.ID,
		Quantity: 50, Price: 2.0,
	})
	env.mustCreateProduct(t, &CreateProductRequest{
		Name: "Chips", SKU: "CHIPS-1",
		CategoryID: snacks.ID, SupplierID: supplier.ID,
		Quantity: 50, Price: 3.0,
	})

	byName, err := env.products.GetAllProducts(repository.ProductFilter{Search: "cola"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byCategory, err := env.products.GetAllProducts(repository.ProductFilter{CategoryID: snacks.ID})
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	byStatus, err := env.products.GetAllProducts(repository.ProductFilter{Status: model.StatusOutOfStock})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Cola Zero", byStatus[0].Name)
}
