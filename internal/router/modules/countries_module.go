package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/explorea/countries-api/internal/interface/http"
)

// CountriesModule wires the public country data proxy.
// GET /api/countries, GET /api/countries/:name
type CountriesModule struct {
	Handler *handlers.CountriesHandler
}

func NewCountriesModule(h *handlers.CountriesHandler) *CountriesModule {
	return &CountriesModule{Handler: h}
}

func (m *CountriesModule) Register(rg *gin.RouterGroup) {
	rg.GET("/countries", m.Handler.List)
	rg.GET("/countries/:name", m.Handler.Get)
}
