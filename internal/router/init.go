package router

import (
	"github.com/explorea/countries-api/internal/application"
	"github.com/explorea/countries-api/internal/container"
	pginfra "github.com/explorea/countries-api/internal/infrastructure/postgres"
	handlers "github.com/explorea/countries-api/internal/interface/http"
	"github.com/explorea/countries-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	repo := pginfra.NewUserRepository(container.GetPGPool())

	authSvc := application.NewAuthService(repo, container.GetJWT(), logger)
	favSvc := application.NewFavoritesService(repo, logger)
	countriesSvc := application.NewCountriesService(
		cfg.CountriesBaseURL,
		cfg.CountriesTimeout,
		container.GetRedis(),
		cfg.CountriesCacheTTL,
		logger,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewFavoritesModule(handlers.NewFavoritesHandler(favSvc, logger), container.GetJWT()))
	r.Add(modules.NewCountriesModule(handlers.NewCountriesHandler(countriesSvc, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
