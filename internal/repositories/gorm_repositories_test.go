package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/repositories"
)

// newTestDB opens a private in-memory SQLite database with foreign keys
// enforced, so image rows cascade like they do in Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Image{}, &models.Blob{}, &models.Order{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newProduct(title string, createdAt time.Time) *models.Product {
	return &models.Product{
		Title:     title,
		Price:     decimal.RequireFromString("199.99"),
		SKU:       "SKU-" + title,
		Stock:     3,
		Tags:      []string{"gold", "ring"},
		CreatedAt: createdAt,
	}
}

func images(productID string, urls ...string) []models.Image {
	rows := make([]models.Image, 0, len(urls))
	for i, u := range urls {
		rows = append(rows, models.Image{ProductID: productID, URL: u, AltText: "alt", DisplayOrder: i})
	}
	return rows
}

func TestGORMCatalogRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))

	product := newProduct("Gold Ring", time.Now())
	require.NoError(t, repo.CreateProduct(ctx, product))
	require.NotEmpty(t, product.ID)

	// Stored out of order; reads come back by display_order.
	rows := images(product.ID, "a", "b", "c")
	rows[0], rows[2] = rows[2], rows[0]
	require.NoError(t, repo.InsertImages(ctx, rows))

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gold Ring", got.Title)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("199.99")), got.Price.String())
	assert.Equal(t, []string{"gold", "ring"}, got.Tags)
	require.Len(t, got.Images, 3)
	for i, u := range []string{"a", "b", "c"} {
		assert.Equal(t, u, got.Images[i].URL)
		assert.Equal(t, i, got.Images[i].DisplayOrder)
		assert.NotEmpty(t, got.Images[i].ID)
	}
}

func TestGORMCatalogRepository_CreateIgnoresImagesField(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))

	product := newProduct("Gold Ring", time.Now())
	product.Images = []models.Image{{ID: uuid.New().String(), URL: "x"}}
	require.NoError(t, repo.CreateProduct(ctx, product))

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
}

func TestGORMCatalogRepository_GetNotFound(t *testing.T) {
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))

	got, err := repo.GetProduct(context.Background(), "missing")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMCatalogRepository_UpdateWritesZeroValues(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))
	product := newProduct("Gold Ring", time.Now())
	product.IsFeatured = true
	require.NoError(t, repo.CreateProduct(ctx, product))

	update := &models.Product{
		ID:    product.ID,
		Title: "Rose Ring",
		Price: decimal.RequireFromString("5"),
		SKU:   "RR-1",
		Stock: 0,
		Tags:  []string{},
	}
	require.NoError(t, repo.UpdateProduct(ctx, update))

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rose Ring", got.Title)
	assert.Equal(t, 0, got.Stock)
	assert.False(t, got.IsFeatured)
	assert.Empty(t, got.Description)
	assert.Empty(t, got.Tags)
}

func TestGORMCatalogRepository_UpdateMissing(t *testing.T) {
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))

	err := repo.UpdateProduct(context.Background(), newProduct("Ghost", time.Now()))

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMCatalogRepository_DeleteImagesThenReinsert(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))
	product := newProduct("Gold Ring", time.Now())
	require.NoError(t, repo.CreateProduct(ctx, product))
	require.NoError(t, repo.InsertImages(ctx, images(product.ID, "a", "b", "c")))

	require.NoError(t, repo.DeleteImages(ctx, product.ID))
	require.NoError(t, repo.DeleteImages(ctx, product.ID))
	require.NoError(t, repo.InsertImages(ctx, images(product.ID, "c", "a")))

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "c", got.Images[0].URL)
	assert.Equal(t, "a", got.Images[1].URL)
}

func TestGORMCatalogRepository_InsertImagesForUnknownProduct(t *testing.T) {
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))

	err := repo.InsertImages(context.Background(), images("missing", "a"))

	assert.Error(t, err)
}

func TestGORMCatalogRepository_DeleteCascadesImages(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMCatalogRepository(db)
	product := newProduct("Gold Ring", time.Now())
	require.NoError(t, repo.CreateProduct(ctx, product))
	require.NoError(t, repo.InsertImages(ctx, images(product.ID, "a", "b")))

	require.NoError(t, repo.DeleteProduct(ctx, product.ID))

	var orphans int64
	require.NoError(t, db.Model(&models.Image{}).Where("product_id = ?", product.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)
	assert.ErrorIs(t, repo.DeleteProduct(ctx, product.ID), repositories.ErrNotFound)
}

func TestGORMCatalogRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	older := newProduct("Older", base)
	newer := newProduct("Newer", base.Add(time.Hour))
	require.NoError(t, repo.CreateProduct(ctx, older))
	require.NoError(t, repo.CreateProduct(ctx, newer))
	require.NoError(t, repo.InsertImages(ctx, images(newer.ID, "n0", "n1")))

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Newer", products[0].Title)
	assert.Equal(t, "Older", products[1].Title)
	require.Len(t, products[0].Images, 2)
	assert.Equal(t, "n0", products[0].Images[0].URL)
	assert.Empty(t, products[1].Images)

	count, err := repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGORMBlobStore_PutAndGet(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewGORMBlobStore(newTestDB(t), "http://localhost:8080/")
	data := []byte("\x89PNG\r\n\x1a\nrest")

	require.NoError(t, store.Put(ctx, "a.png", "image/png", data))

	blob, err := store.Get(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", blob.ContentType)
	assert.Equal(t, int64(len(data)), blob.Size)
	assert.Equal(t, data, blob.Data)
	assert.Equal(t, "http://localhost:8080/media/a.png", store.PublicURL("a.png"))
}

func TestGORMBlobStore_NeverOverwrites(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewGORMBlobStore(newTestDB(t), "http://localhost:8080")

	require.NoError(t, store.Put(ctx, "a.png", "image/png", []byte("first")))
	err := store.Put(ctx, "a.png", "image/png", []byte("second"))

	assert.ErrorIs(t, err, repositories.ErrBlobExists)
	blob, err := store.Get(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), blob.Data)
}

func TestGORMBlobStore_GetMissing(t *testing.T) {
	store := repositories.NewGORMBlobStore(newTestDB(t), "http://localhost:8080")

	_, err := store.Get(context.Background(), "nope.png")

	assert.ErrorIs(t, err, repositories.ErrBlobNotFound)
}

func TestGORMOrderRepository_TodayFigures(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	midnight := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{ID: uuid.New().String(), Total: decimal.RequireFromString("10.50"), Status: "pending", CreatedAt: midnight.Add(9 * time.Hour)},
		{ID: uuid.New().String(), Total: decimal.RequireFromString("4.25"), Status: "shipped", CreatedAt: midnight.Add(20 * time.Hour)},
		{ID: uuid.New().String(), Total: decimal.RequireFromString("99.00"), Status: "delivered", CreatedAt: midnight.Add(-time.Hour)},
	}
	require.NoError(t, db.Create(&orders).Error)

	count, err := repo.CountSince(ctx, midnight)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	revenue, err := repo.RevenueSince(ctx, midnight)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.RequireFromString("14.75")), revenue.String())
}

func TestMockCatalogRepository_MatchesCascade(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockCatalogRepository()
	product := newProduct("Gold Ring", time.Time{})
	require.NoError(t, repo.CreateProduct(ctx, product))
	require.NoError(t, repo.InsertImages(ctx, images(product.ID, "a")))

	require.NoError(t, repo.DeleteProduct(ctx, product.ID))
	require.NoError(t, repo.CreateProduct(ctx, &models.Product{ID: product.ID, Title: "Reused"}))

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
	assert.Error(t, repo.InsertImages(ctx, images("missing", "a")))
}

func TestGORMCatalogRepository_UpdateFillsTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))
	createdAt := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	product := newProduct("Gold Ring", createdAt)
	require.NoError(t, repo.CreateProduct(ctx, product))

	update := newProduct("Rose Ring", time.Time{})
	update.ID = product.ID
	require.NoError(t, repo.UpdateProduct(ctx, update))

	assert.True(t, update.CreatedAt.Equal(createdAt), update.CreatedAt.String())
	assert.False(t, update.UpdatedAt.IsZero())
	assert.True(t, update.UpdatedAt.After(createdAt))
}

func TestGORMCatalogRepository_EmptyTagsStayEmpty(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMCatalogRepository(newTestDB(t))
	sub := &models.Submission{
		Title: "Gold Ring",
		Price: decimal.RequireFromString("5"),
		SKU:   "GR-1",
		Tags:  []string{},
	}
	product := &models.Product{}
	sub.Apply(product)
	require.NoError(t, repo.CreateProduct(ctx, product))

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)

	require.NoError(t, repo.UpdateProduct(ctx, product))
	got, err = repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Tags)
}
