package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/atolye-store/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductSize{},
		&models.ProductColor{},
		&models.ProductImage{},
		&models.Campaign{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func seedProduct(t *testing.T, db *gorm.DB, slug string, visible, available bool) *models.Product {
	t.Helper()
	category := &models.Category{Slug: slug + "-cat", NameJSON: models.JSON{"tr": slug, "en": slug}}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Slug:          slug,
		NameJSON:      models.JSON{"tr": slug + " türkçe", "en": slug + " english"},
		PriceAmount:   models.NewMoneyFromInt(100),
		PriceCurrency: "EUR",
		IsVisible:     visible,
		IsAvailable:   available,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductCreateUpdateDelete(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	seeded := seedProduct(t, db, "crud-base", true, true)

	product := &models.Product{
		CategoryID:    seeded.CategoryID,
		Slug:          "crud-shoes",
		NameJSON:      models.JSON{"tr": "crud tr", "en": "crud en"},
		PriceAmount:   models.NewMoneyFromInt(250),
		PriceCurrency: "EUR",
		IsVisible:     true,
		IsAvailable:   true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID == 0 {
		t.Fatalf("create should assign an id")
	}

	product.IsAvailable = false
	if err := repo.Update(product); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	reloaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.IsAvailable {
		t.Fatalf("update should persist availability flag")
	}

	if err := repo.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	gone, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("soft deleted product should not be found")
	}
}

func TestProductListFilters(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	seedProduct(t, db, "visible-shoes", true, true)
	seedProduct(t, db, "hidden-shoes", false, true)
	seedProduct(t, db, "soldout-shoes", true, false)

	products, total, err := repo.List(ProductListFilter{OnlyVisible: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("visible products want 2 got total=%d len=%d", total, len(products))
	}

	products, total, err = repo.List(ProductListFilter{OnlyVisible: true, OnlyAvailable: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || products[0].Slug != "visible-shoes" {
		t.Fatalf("available products want visible-shoes got total=%d", total)
	}
}

func TestProductSearchMatchesLocalizedName(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	seedProduct(t, db, "topuklu", true, true)
	seedProduct(t, db, "bot", true, true)

	// slug 命中
	_, total, err := repo.List(ProductListFilter{Search: "topuklu"})
	if err != nil {
		t.Fatalf("slug search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("slug search want 1 got %d", total)
	}

	// 多语言 JSON 字段命中
	_, total, err = repo.List(ProductListFilter{Search: "bot english"})
	if err != nil {
		t.Fatalf("json search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("json search want 1 got %d", total)
	}

	_, total, err = repo.List(ProductListFilter{Search: "hiçbir şey"})
	if err != nil {
		t.Fatalf("empty search failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("no match want 0 got %d", total)
	}
}

func TestGetSizeByIDPreloads(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := seedProduct(t, db, "preload-shoes", true, true)
	campaign := &models.Campaign{
		Name:            "test",
		DiscountPercent: models.NewMoneyFromInt(20),
		StartsAt:        time.Now().Add(-time.Hour),
		EndsAt:          time.Now().Add(time.Hour),
		IsActive:        true,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	size := &models.ProductSize{ProductID: product.ID, SizeValue: 39, Stock: 3, CampaignID: &campaign.ID}
	if err := db.Create(size).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}

	loaded, err := repo.GetSizeByID(size.ID, false)
	if err != nil {
		t.Fatalf("get size failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("size should be found")
	}
	if loaded.Product == nil || loaded.Product.ID != product.ID {
		t.Fatalf("product should be preloaded")
	}
	if loaded.Campaign == nil || loaded.Campaign.ID != campaign.ID {
		t.Fatalf("campaign should be preloaded")
	}

	missing, err := repo.GetSizeByID(999, false)
	if err != nil {
		t.Fatalf("get missing size failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing size want nil got %v", missing)
	}
}

func TestAdjustFavoriteCountClampsAtZero(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := seedProduct(t, db, "fav-shoes", true, true)

	if err := repo.AdjustFavoriteCount(product.ID, 1); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if err := repo.AdjustFavoriteCount(product.ID, -1); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	// 减到 0 以下时不更新，计数不出现负数
	if err := repo.AdjustFavoriteCount(product.ID, -1); err != nil {
		t.Fatalf("underflow decrement failed: %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.FavoriteCount != 0 {
		t.Fatalf("favorite count want 0 got %d", reloaded.FavoriteCount)
	}
}

func TestCountBySlug(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := seedProduct(t, db, "unique-shoes", true, true)

	count, err := repo.CountBySlug("unique-shoes", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("unique-shoes", &product.ID)
	if err != nil {
		t.Fatalf("count with exclusion failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("excluded count want 0 got %d", count)
	}
}
