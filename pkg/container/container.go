package container

import (
	"context"
	"fmt"
	"time"

	"agromap-backend/internal/config"
	infraCache "agromap-backend/internal/infrastructure/cache"
	"agromap-backend/internal/infrastructure/database"
	"agromap-backend/internal/infrastructure/queue"
	"agromap-backend/internal/infrastructure/storage"
	"agromap-backend/pkg/cache"
	"agromap-backend/pkg/jwt"

	adminHandler "agromap-backend/internal/domains/admin/handler"
	adminRepo "agromap-backend/internal/domains/admin/repository"
	adminService "agromap-backend/internal/domains/admin/service"
	categoryHandler "agromap-backend/internal/domains/category/handler"
	categoryRepo "agromap-backend/internal/domains/category/repository"
	categoryService "agromap-backend/internal/domains/category/service"
	commentHandler "agromap-backend/internal/domains/comment/handler"
	commentRepo "agromap-backend/internal/domains/comment/repository"
	commentService "agromap-backend/internal/domains/comment/service"
	marketHandler "agromap-backend/internal/domains/market/handler"
	marketRepo "agromap-backend/internal/domains/market/repository"
	marketService "agromap-backend/internal/domains/market/service"
	mediaService "agromap-backend/internal/domains/media/service"
	productHandler "agromap-backend/internal/domains/product/handler"
	productRepo "agromap-backend/internal/domains/product/repository"
	productService "agromap-backend/internal/domains/product/service"
	ratingHandler "agromap-backend/internal/domains/rating/handler"
	ratingRepo "agromap-backend/internal/domains/rating/repository"
	ratingService "agromap-backend/internal/domains/rating/service"
	templateHandler "agromap-backend/internal/domains/template/handler"
	templateRepo "agromap-backend/internal/domains/template/repository"
	templateService "agromap-backend/internal/domains/template/service"
	userHandler "agromap-backend/internal/domains/user/handler"
	userRepo "agromap-backend/internal/domains/user/repository"
	userService "agromap-backend/internal/domains/user/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long lived dependency of the API process.
// Initialization order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient // nil when running on the in-memory cache
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Storage     *storage.MinIOStorage
	Images      *storage.ImageProcessor
	QueueClient *asynq.Client

	Uploader mediaService.Uploader
	Cleaner  mediaService.Cleaner

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo     userRepo.Repository
	MarketRepo   marketRepo.Repository
	ProductRepo  productRepo.Repository
	CategoryRepo categoryRepo.Repository
	TemplateRepo templateRepo.Repository
	CommentRepo  commentRepo.Repository
	RatingRepo   ratingRepo.Repository
	AdminRepo    adminRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService     userService.ServiceInterface
	MarketService   marketService.ServiceInterface
	ProductService  productService.ServiceInterface
	CategoryService categoryService.ServiceInterface
	TemplateService templateService.ServiceInterface
	CommentService  commentService.ServiceInterface
	RatingService   ratingService.ServiceInterface
	AdminService    adminService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler     *userHandler.UserHandler
	MarketHandler   *marketHandler.MarketHandler
	ProductHandler  *productHandler.ProductHandler
	CategoryHandler *categoryHandler.CategoryHandler
	TemplateHandler *templateHandler.TemplateHandler
	CommentHandler  *commentHandler.CommentHandler
	RatingHandler   *ratingHandler.RatingHandler
	AdminHandler    *adminHandler.AdminHandler
}

// NewContainer builds the whole dependency graph.
// A failure in any required component aborts startup.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	c.initCache()

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	// ========================================
	// STEP 4: OBJECT STORAGE + MEDIA QUEUE
	// ========================================
	if err := c.initMedia(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Info().Str("host", dbConfig.Host).Str("database", dbConfig.DBName).Msg("Database connected")
	return nil
}

// initCache falls back to the in-process cache when Redis is unreachable.
// Login lockouts and cached aggregates are then per instance.
func (c *Container) initCache() {
	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("host", c.Config.Redis.Host).Msg("Redis unavailable, using in-memory cache")
		_ = rc.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}

	c.Redis = rc
	c.Cache = infraCache.NewRedisCache(rc)
	log.Info().Str("host", c.Config.Redis.Host).Msg("Redis connected")
}

func (c *Container) initMedia() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	c.Images = storage.NewImageProcessor(c.Config.Upload.MaxImageBytes)
	log.Info().Str("endpoint", c.Config.MinIO.Endpoint).Str("bucket", c.Config.MinIO.Bucket).Msg("Object storage ready")

	c.QueueClient = asynq.NewClient(queue.RedisOpt(c.Config.Redis))

	c.Uploader = mediaService.NewUploader(c.Storage, c.Images)
	c.Cleaner = mediaService.NewCleaner(c.QueueClient)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.MarketRepo = marketRepo.NewPostgresRepository(pool)
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.TemplateRepo = templateRepo.NewPostgresRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
	c.RatingRepo = ratingRepo.NewPostgresRepository(pool)
	c.AdminRepo = adminRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache, c.Uploader, c.Cleaner)
	c.MarketService = marketService.NewMarketService(
		c.MarketRepo,
		c.Cache,
		c.Uploader,
		c.Cleaner,
		cfg.Location(),
		cfg.Cache.ProvincesTTL,
	)
	// Product pages embed the rating summary
	c.RatingService = ratingService.NewRatingService(c.RatingRepo)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.RatingService, c.Cache, c.Uploader, c.Cleaner)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache)
	c.TemplateService = templateService.NewTemplateService(c.TemplateRepo, c.Uploader, c.Cleaner)
	c.CommentService = commentService.NewCommentService(c.CommentRepo)
	c.AdminService = adminService.NewAdminService(c.AdminRepo, c.Cache, cfg.Cache.StatsTTL)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.MarketHandler = marketHandler.NewMarketHandler(c.MarketService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.TemplateHandler = templateHandler.NewTemplateHandler(c.TemplateService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.RatingHandler = ratingHandler.NewRatingHandler(c.RatingService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService)
}

// Cleanup releases connections on shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleanup completed")
}
