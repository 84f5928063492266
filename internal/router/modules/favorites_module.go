package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/explorea/countries-api/internal/container"
	handlers "github.com/explorea/countries-api/internal/interface/http"
	"github.com/explorea/countries-api/internal/interface/middleware"
	"github.com/explorea/countries-api/pkg/helpers"
)

// FavoritesModule wires the favorites CRUD behind the auth gate.
// GET /api/favorites, POST /api/favorites, DELETE /api/favorites/:countryName
type FavoritesModule struct {
	Handler *handlers.FavoritesHandler
	JWT     *helpers.JWTManager
}

func NewFavoritesModule(h *handlers.FavoritesHandler, jwt *helpers.JWTManager) *FavoritesModule {
	return &FavoritesModule{Handler: h, JWT: jwt}
}

func (m *FavoritesModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/favorites")
	auth.Use(middleware.Auth(m.JWT, container.GetLogger()))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Add)
		auth.DELETE("/:countryName", m.Handler.Remove)
	}
}
