package provider

import (
	"github.com/atolye-store/internal/cache"
	"github.com/atolye-store/internal/config"
	"github.com/atolye-store/internal/logger"
	"github.com/atolye-store/internal/models"
	"github.com/atolye-store/internal/queue"
	"github.com/atolye-store/internal/repository"
	"github.com/atolye-store/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo        repository.UserRepository
	CategoryRepo    repository.CategoryRepository
	ProductRepo     repository.ProductRepository
	CampaignRepo    repository.CampaignRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository
	CartRepo        repository.CartRepository
	OrderRepo       repository.OrderRepository
	FavoriteRepo    repository.FavoriteRepository

	// Services
	UserAuthService *service.UserAuthService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	CartService     *service.CartService
	CouponService   *service.CouponService
	OrderService    *service.OrderService
	FavoriteService *service.FavoriteService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.Config.Catalog)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.Config.Catalog)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.CouponRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo)
	c.FavoriteService = service.NewFavoriteService(c.FavoriteRepo, c.ProductRepo)

	var notifier service.OrderNotifier
	if c.QueueClient != nil {
		notifier = c.QueueClient
	}
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.ProductRepo,
		c.CouponRepo,
		c.CouponUsageRepo,
		c.UserRepo,
		notifier,
	)
}
