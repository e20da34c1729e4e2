package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/atolye-store/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductSize{},
		&models.ProductColor{},
		&models.Campaign{},
		&models.Coupon{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCartRepository(db), db
}

func seedCartFixture(t *testing.T, db *gorm.DB) (*models.Product, *models.ProductSize, *models.ProductColor) {
	t.Helper()
	category := &models.Category{Slug: "heels", NameJSON: models.JSON{"tr": "topuklu", "en": "heels"}}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Slug:          "fixture-heels",
		NameJSON:      models.JSON{"tr": "ayakkabı", "en": "shoe"},
		PriceAmount:   models.NewMoneyFromInt(100),
		PriceCurrency: "EUR",
		IsVisible:     true,
		IsAvailable:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	size := &models.ProductSize{ProductID: product.ID, SizeValue: 38, Stock: 10}
	if err := db.Create(size).Error; err != nil {
		t.Fatalf("create size failed: %v", err)
	}
	color := &models.ProductColor{ProductID: product.ID, Name: "Siyah", HexCode: "#000000"}
	if err := db.Create(color).Error; err != nil {
		t.Fatalf("create color failed: %v", err)
	}
	return product, size, color
}

func TestCartGetActiveByUser(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	cart, err := repo.GetActiveByUser(1, false)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if cart != nil {
		t.Fatalf("no cart yet, want nil got %v", cart)
	}

	created := &models.Cart{UserID: 1}
	if err := repo.Create(created); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	cart, err = repo.GetActiveByUser(1, false)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if cart == nil || cart.ID != created.ID {
		t.Fatalf("active cart want %d got %v", created.ID, cart)
	}

	// 已结算的购物车不再是活跃购物车
	if err := repo.MarkCompleted(created.ID); err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}
	cart, err = repo.GetActiveByUser(1, false)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if cart != nil {
		t.Fatalf("completed cart should not be active, got %v", cart)
	}
	_ = db
}

func TestCartGetActiveByUserPicksOldest(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	// 并发首建可能留下多条活跃车，读取固定收敛到最早一行
	first := &models.Cart{UserID: 1}
	if err := repo.Create(first); err != nil {
		t.Fatalf("create first cart failed: %v", err)
	}
	second := &models.Cart{UserID: 1}
	if err := repo.Create(second); err != nil {
		t.Fatalf("create second cart failed: %v", err)
	}

	cart, err := repo.GetActiveByUser(1, false)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if cart == nil || cart.ID != first.ID {
		t.Fatalf("active cart want oldest %d got %v", first.ID, cart)
	}

	// 最早一行结算后才轮到后一行
	if err := repo.MarkCompleted(first.ID); err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}
	cart, err = repo.GetActiveByUser(1, false)
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if cart == nil || cart.ID != second.ID {
		t.Fatalf("active cart want %d got %v", second.ID, cart)
	}
	_ = db
}

func TestCartGetItemColorMatching(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product, size, color := seedCartFixture(t, db)

	cart := &models.Cart{UserID: 1}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	noColor := &models.CartItem{CartID: cart.ID, ProductID: product.ID, SizeID: size.ID, Quantity: 1}
	if err := repo.CreateItem(noColor); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	withColor := &models.CartItem{CartID: cart.ID, ProductID: product.ID, SizeID: size.ID, ColorID: &color.ID, Quantity: 2}
	if err := repo.CreateItem(withColor); err != nil {
		t.Fatalf("create colored item failed: %v", err)
	}

	// 颜色为空只匹配 NULL 行，不匹配带颜色的行
	found, err := repo.GetItem(cart.ID, product.ID, size.ID, nil)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if found == nil || found.ID != noColor.ID {
		t.Fatalf("nil color want item %d got %v", noColor.ID, found)
	}

	found, err = repo.GetItem(cart.ID, product.ID, size.ID, &color.ID)
	if err != nil {
		t.Fatalf("get colored item failed: %v", err)
	}
	if found == nil || found.ID != withColor.ID {
		t.Fatalf("color want item %d got %v", withColor.ID, found)
	}

	other := uint(999)
	found, err = repo.GetItem(cart.ID, product.ID, size.ID, &other)
	if err != nil {
		t.Fatalf("get unknown color failed: %v", err)
	}
	if found != nil {
		t.Fatalf("unknown color want nil got %v", found)
	}
}

func TestCartListItemsPreloadsAndOrder(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product, size, color := seedCartFixture(t, db)

	cart := &models.Cart{UserID: 1}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	first := &models.CartItem{CartID: cart.ID, ProductID: product.ID, SizeID: size.ID, Quantity: 1}
	if err := repo.CreateItem(first); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	second := &models.CartItem{CartID: cart.ID, ProductID: product.ID, SizeID: size.ID, ColorID: &color.ID, Quantity: 2}
	if err := repo.CreateItem(second); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items want 2 got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != second.ID {
		t.Fatalf("items should be in insertion order")
	}
	if items[0].Product == nil || items[0].Product.Slug != "fixture-heels" {
		t.Fatalf("product should be preloaded")
	}
	if items[0].Size == nil || items[0].Size.SizeValue != 38 {
		t.Fatalf("size should be preloaded")
	}
	if items[1].Color == nil || items[1].Color.Name != "Siyah" {
		t.Fatalf("color should be preloaded")
	}
}

func TestCartSetCoupon(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	coupon := &models.Coupon{
		Code:     "TEST10",
		Type:     "percent",
		Value:    models.NewMoneyFromInt(10),
		StartsAt: time.Now().Add(-time.Hour),
		EndsAt:   time.Now().Add(time.Hour),
		IsActive: true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	cart := &models.Cart{UserID: 1}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	if err := repo.SetCoupon(cart.ID, &coupon.ID); err != nil {
		t.Fatalf("set coupon failed: %v", err)
	}
	reloaded, err := repo.GetActiveByUser(1, false)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if reloaded.CouponID == nil || *reloaded.CouponID != coupon.ID {
		t.Fatalf("coupon id want %d got %v", coupon.ID, reloaded.CouponID)
	}

	if err := repo.SetCoupon(cart.ID, nil); err != nil {
		t.Fatalf("clear coupon failed: %v", err)
	}
	reloaded, err = repo.GetActiveByUser(1, false)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if reloaded.CouponID != nil {
		t.Fatalf("coupon id after clear want nil got %v", reloaded.CouponID)
	}
}
