package router

import (
	"github.com/sharelist/sharelist-api/internal/application"
	"github.com/sharelist/sharelist-api/internal/container"
	pginfra "github.com/sharelist/sharelist-api/internal/infrastructure/postgres"
	handlers "github.com/sharelist/sharelist-api/internal/interface/http"
	"github.com/sharelist/sharelist-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	listRepo := pginfra.NewListRepository(pool)
	itemRepo := pginfra.NewItemRepository(pool)

	authSvc := application.NewAuthService(userRepo, jwt, container.GetRedis(), logger)
	// The rabbit publisher may be nil when the broker is not configured;
	// share notifications are then skipped.
	var pub application.SharePublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	listSvc := application.NewListService(listRepo, userRepo, pub, logger)
	itemSvc := application.NewItemService(itemRepo, listRepo, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	listHandler := handlers.NewListHandler(listSvc, logger)
	itemHandler := handlers.NewItemHandler(itemSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewListModule(listHandler, jwt))
	r.Add(modules.NewItemModule(itemHandler, jwt))
}
