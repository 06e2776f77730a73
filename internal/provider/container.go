package provider

import (
	"fmt"
	"time"

	"github.com/sabai-next/internal/cache"
	"github.com/sabai-next/internal/catalog"
	"github.com/sabai-next/internal/config"
	"github.com/sabai-next/internal/logger"
	"github.com/sabai-next/internal/models"
	"github.com/sabai-next/internal/repository"
	"github.com/sabai-next/internal/service"
	"github.com/sabai-next/internal/session"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	CredentialRepo repository.CredentialRepository
	ProfileRepo    repository.ProfileRepository
	OrderRepo      repository.OrderRepository

	Catalog      catalog.Source
	SessionStore session.Store

	AuthService    *service.AuthService
	ProfileService *service.ProfileService
	CartService    *service.CartService
	OrderService   *service.OrderService
	CatalogService *service.CatalogService
}

// NewContainer 构建依赖容器
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if err := cache.InitRedis(&cfg.Redis); err != nil {
		return nil, err
	}
	if cache.Enabled() {
		logger.Infow("redis_enabled", "prefix", cache.Prefix())
	}

	source, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	store := session.NewStore(ttl)

	credentialRepo := repository.NewGormCredentialRepository(models.DB)
	profileRepo := repository.NewGormProfileRepository(models.DB)
	orderRepo := repository.NewGormOrderRepository(models.DB)

	profileService := service.NewProfileService(profileRepo)
	cartService := service.NewCartService(source, store)

	return &Container{
		Config:         cfg,
		CredentialRepo: credentialRepo,
		ProfileRepo:    profileRepo,
		OrderRepo:      orderRepo,
		Catalog:        source,
		SessionStore:   store,
		AuthService:    service.NewAuthService(credentialRepo, profileRepo),
		ProfileService: profileService,
		CartService:    cartService,
		OrderService:   service.NewOrderService(orderRepo, profileService, cartService),
		CatalogService: service.NewCatalogService(source),
	}, nil
}

func loadCatalog(cfg *config.Config) (catalog.Source, error) {
	if cfg.Catalog.File != "" {
		source, err := catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			return nil, fmt.Errorf("load catalog file: %w", err)
		}
		logger.Infow("catalog_loaded", "file", cfg.Catalog.File)
		return source, nil
	}
	return catalog.Default()
}
