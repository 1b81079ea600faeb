package service

import (
	"testing"

	"stocktrack-backend/internal/apperr"
	"stocktrack-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	products      *stubProductRepo
	categories    *stubCategoryRepo
	notifications *stubNotificationRepo
	service       CatalogService
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		products:      newStubProductRepo(),
		categories:    newStubCategoryRepo(),
		notifications: newStubNotificationRepo(),
	}
	f.service = NewCatalogService(f.products, f.categories, f.notifications, nil, nil)
	return f
}

func productRequest(name, sku string, quantity int) *ProductRequest {
	return &ProductRequest{
		Name:     name,
		SKU:      sku,
		Price:    decimal.NewFromInt(5),
		Quantity: quantity,
	}
}

func TestCreateProductEmitsAddedNotification(t *testing.T) {
	f := newCatalogFixture()

	product, err := f.service.CreateProduct(productRequest("Widget", "WID-001", 50))
	require.NoError(t, err)
	assert.Equal(t, 10, product.MinStockLevel, "default threshold")

	assert.Len(t, f.notifications.byType(model.NotifProductAdded), 1)
	assert.Empty(t, f.notifications.byType(model.NotifLowStock))
}

// Create is level-triggered: a product born below threshold alerts
// immediately.
func TestCreateProductAlreadyLowStock(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.service.CreateProduct(productRequest("Widget", "WID-001", 3))
	require.NoError(t, err)

	assert.Len(t, f.notifications.byType(model.NotifProductAdded), 1)
	assert.Len(t, f.notifications.byType(model.NotifLowStock), 1)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	f := newCatalogFixture()

	first, err := f.service.CreateProduct(productRequest("Widget", "WID-001", 50))
	require.NoError(t, err)

	_, err = f.service.CreateProduct(productRequest("Other Widget", "WID-001", 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// First product unaffected
	stored, _ := f.products.FindByID(first.ID)
	assert.Equal(t, "Widget", stored.Name)
	assert.Equal(t, 50, stored.Quantity)
}

func TestCreateProductMissingFields(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.service.CreateProduct(&ProductRequest{Name: "No SKU"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateProductNegativePrice(t *testing.T) {
	f := newCatalogFixture()

	req := productRequest("Widget", "WID-001", 5)
	req.Price = decimal.NewFromInt(-1)
	_, err := f.service.CreateProduct(req)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

// Update is edge-triggered: the alert fires only on the crossing from
// not-low into low, not on every save while already below threshold.
func TestUpdateProductLowStockEdgeTriggered(t *testing.T) {
	f := newCatalogFixture()

	product, err := f.service.CreateProduct(productRequest("Widget", "WID-001", 50))
	require.NoError(t, err)

	// Still above threshold: no alert
	req := productRequest("Widget", "WID-001", 20)
	_, err = f.service.UpdateProduct(product.ID, req)
	require.NoError(t, err)
	assert.Empty(t, f.notifications.byType(model.NotifLowStock))

	// Crossing down: exactly one alert
	req = productRequest("Widget", "WID-001", 4)
	_, err = f.service.UpdateProduct(product.ID, req)
	require.NoError(t, err)
	assert.Len(t, f.notifications.byType(model.NotifLowStock), 1)

	// Already low, dropping further: no second alert
	req = productRequest("Widget", "WID-001", 2)
	_, err = f.service.UpdateProduct(product.ID, req)
	require.NoError(t, err)
	assert.Len(t, f.notifications.byType(model.NotifLowStock), 1)

	// Back above, then down again: fires once more
	req = productRequest("Widget", "WID-001", 30)
	_, err = f.service.UpdateProduct(product.ID, req)
	require.NoError(t, err)
	req = productRequest("Widget", "WID-001", 1)
	_, err = f.service.UpdateProduct(product.ID, req)
	require.NoError(t, err)
	assert.Len(t, f.notifications.byType(model.NotifLowStock), 2)
}

func TestUpdateProductNotFound(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.service.UpdateProduct(uuid.New(), productRequest("Widget", "WID-001", 5))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateProductDuplicateSKU(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.service.CreateProduct(productRequest("A", "SKU-A", 5))
	require.NoError(t, err)
	b, err := f.service.CreateProduct(productRequest("B", "SKU-B", 5))
	require.NoError(t, err)

	_, err = f.service.UpdateProduct(b.ID, productRequest("B", "SKU-A", 5))
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestDeleteProductEmitsNotification(t *testing.T) {
	f := newCatalogFixture()

	product, err := f.service.CreateProduct(productRequest("Widget", "WID-001", 50))
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteProduct(product.ID))

	_, err = f.products.FindByID(product.ID)
	assert.Error(t, err)
	deleted := f.notifications.byType(model.NotifProductDeleted)
	require.Len(t, deleted, 1)
	assert.Nil(t, deleted[0].RelatedEntityID)
}

func TestDeleteProductNotFound(t *testing.T) {
	f := newCatalogFixture()
	assert.ErrorIs(t, f.service.DeleteProduct(uuid.New()), apperr.ErrNotFound)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.service.CreateCategory(&CategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	_, err = f.service.CreateCategory(&CategoryRequest{Name: "Tools"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Len(t, f.notifications.byType(model.NotifCategoryAdded), 1)
}

// Deleting a category leaves its products queryable with no category.
func TestDeleteCategoryClearsProductReferences(t *testing.T) {
	f := newCatalogFixture()

	category, err := f.service.CreateCategory(&CategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	var ids []uuid.UUID
	for _, sku := range []string{"T-1", "T-2", "T-3"} {
		req := productRequest("Tool "+sku, sku, 20)
		req.CategoryID = &category.ID
		p, err := f.service.CreateProduct(req)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	require.NoError(t, f.service.DeleteCategory(category.ID))

	for _, id := range ids {
		p, err := f.products.FindByID(id)
		require.NoError(t, err)
		assert.Nil(t, p.CategoryID)
	}
	assert.Len(t, f.notifications.byType(model.NotifCategoryDeleted), 1)
}

func TestGetCategoriesWithProductCount(t *testing.T) {
	f := newCatalogFixture()

	tools, err := f.service.CreateCategory(&CategoryRequest{Name: "Tools"})
	require.NoError(t, err)
	_, err = f.service.CreateCategory(&CategoryRequest{Name: "Empty"})
	require.NoError(t, err)

	req := productRequest("Hammer", "HAM-1", 5)
	req.CategoryID = &tools.ID
	_, err = f.service.CreateProduct(req)
	require.NoError(t, err)

	categories, err := f.service.GetCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)

	counts := map[string]int64{}
	for _, c := range categories {
		counts[c.Name] = c.ProductCount
	}
	assert.Equal(t, int64(1), counts["Tools"])
	assert.Equal(t, int64(0), counts["Empty"])
}
