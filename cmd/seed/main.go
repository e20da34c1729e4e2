package main

import (
	"time"

	"github.com/atolye-store/internal/config"
	"github.com/atolye-store/internal/constants"
	"github.com/atolye-store/internal/logger"
	"github.com/atolye-store/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"tr": "Topuklu Ayakkabı",
				"en": "Heels",
			}),
			Slug:      "heels",
			SortOrder: 30,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"tr": "Bot",
				"en": "Boots",
			}),
			Slug:      "boots",
			SortOrder: 20,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"tr": "Günlük Ayakkabı",
				"en": "Casual",
			}),
			Slug:      "casual",
			SortOrder: 10,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"heels", "boots", "casual"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加活动（未过期的示例折扣）
	now := time.Now()
	campaign := models.Campaign{
		Name:            "Sezon Açılışı %20",
		DiscountPercent: models.NewMoneyFromInt(20),
		StartsAt:        now.AddDate(0, 0, -1),
		EndsAt:          now.AddDate(0, 1, 0),
		IsActive:        true,
	}
	var existingCampaign models.Campaign
	if err := models.DB.Where("name = ?", campaign.Name).First(&existingCampaign).Error; err != nil {
		if err := models.DB.Create(&campaign).Error; err != nil {
			stdLog.Printf("Failed to create campaign: %v", err)
		} else {
			stdLog.Printf("Created campaign: %s", campaign.Name)
		}
	} else {
		campaign = existingCampaign
		stdLog.Printf("Campaign already exists: %s", campaign.Name)
	}

	// 添加商品
	products := []models.Product{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"tr": "Klasik Deri Topuklu",
				"en": "Classic Leather Heels",
			}),
			DescriptionJSON: models.JSON(map[string]interface{}{
				"tr": "Gerçek deri, 7 cm topuk, el yapımı",
				"en": "Genuine leather, 7 cm heel, handmade",
			}),
			Slug:          "classic-leather-heels",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(1499.90)),
			PriceCurrency: constants.DefaultCurrency,
			CategoryID:    categoryIDs["heels"],
			IsVisible:     true,
			IsAvailable:   true,
			SortOrder:     30,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"tr": "Süet Kısa Bot",
				"en": "Suede Ankle Boots",
			}),
			DescriptionJSON: models.JSON(map[string]interface{}{
				"tr": "Süet deri, kaymaz taban",
				"en": "Suede leather, non-slip sole",
			}),
			Slug:          "suede-ankle-boots",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(2199.00)),
			PriceCurrency: constants.DefaultCurrency,
			CategoryID:    categoryIDs["boots"],
			IsVisible:     true,
			IsAvailable:   true,
			SortOrder:     20,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"tr": "Günlük Deri Sneaker",
				"en": "Everyday Leather Sneakers",
			}),
			DescriptionJSON: models.JSON(map[string]interface{}{
				"tr": "Yumuşak iç taban, nefes alan deri",
				"en": "Soft insole, breathable leather",
			}),
			Slug:          "everyday-leather-sneakers",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(999.50)),
			PriceCurrency: constants.DefaultCurrency,
			CategoryID:    categoryIDs["casual"],
			IsVisible:     true,
			IsAvailable:   true,
			SortOrder:     10,
		},
	}

	for i := range products {
		product := &products[i]
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", product.Slug)
			continue
		}
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Slug)

		// 尺码（36-41），首个商品的部分尺码参加活动
		for size := 36; size <= 41; size++ {
			productSize := models.ProductSize{
				ProductID: product.ID,
				SizeValue: float64(size),
				Stock:     10,
			}
			if i == 0 && size <= 38 {
				productSize.CampaignID = &campaign.ID
			}
			if err := models.DB.Create(&productSize).Error; err != nil {
				stdLog.Printf("Failed to create size %d for %s: %v", size, product.Slug, err)
			}
		}

		// 颜色
		colors := []models.ProductColor{
			{ProductID: product.ID, Name: "Siyah", HexCode: "#000000"},
			{ProductID: product.ID, Name: "Taba", HexCode: "#A0522D"},
		}
		for _, color := range colors {
			if err := models.DB.Create(&color).Error; err != nil {
				stdLog.Printf("Failed to create color %s for %s: %v", color.Name, product.Slug, err)
			}
		}

		// 图片
		images := []models.ProductImage{
			{ProductID: product.ID, Path: "/uploads/products/" + product.Slug + "-1.jpg", SortOrder: 1},
			{ProductID: product.ID, Path: "/uploads/products/" + product.Slug + "-2.jpg", SortOrder: 2},
		}
		for _, image := range images {
			if err := models.DB.Create(&image).Error; err != nil {
				stdLog.Printf("Failed to create image for %s: %v", product.Slug, err)
			}
		}
	}

	// 添加优惠券
	coupons := []models.Coupon{
		{
			Code:       "HOSGELDIN50",
			Type:       constants.DiscountTypeFixed,
			Value:      models.NewMoneyFromInt(50),
			UsageLimit: 0,
			StartsAt:   now.AddDate(0, 0, -1),
			EndsAt:     now.AddDate(0, 3, 0),
			IsActive:   true,
		},
		{
			Code:       "SEZON10",
			Type:       constants.DiscountTypePercent,
			Value:      models.NewMoneyFromInt(10),
			UsageLimit: 100,
			StartsAt:   now.AddDate(0, 0, -1),
			EndsAt:     now.AddDate(0, 1, 0),
			IsActive:   true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err == nil {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
			continue
		}
		if err := models.DB.Create(&coupon).Error; err != nil {
			stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
		} else {
			stdLog.Printf("Created coupon: %s", coupon.Code)
		}
	}

	stdLog.Println("Seed completed")
}
