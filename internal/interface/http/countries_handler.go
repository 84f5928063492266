package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/explorea/countries-api/internal/application"
	"github.com/explorea/countries-api/pkg/response"
)

// CountriesHandler exposes the read-only country data proxy.
type CountriesHandler struct {
	Svc    *application.CountriesService
	Logger *logrus.Logger
}

func NewCountriesHandler(svc *application.CountriesService, logger *logrus.Logger) *CountriesHandler {
	return &CountriesHandler{Svc: svc, Logger: logger}
}

// List GET /api/countries
func (h *CountriesHandler) List(c *gin.Context) {
	countries, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusBadGateway, "Failed to load countries. Please try again later.", nil)
		return
	}
	response.Success(c, http.StatusOK, countries, "countries", map[string]any{"count": len(countries)})
}

// Get GET /api/countries/:name
func (h *CountriesHandler) Get(c *gin.Context) {
	name := c.Param("name")
	country, err := h.Svc.GetByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, application.ErrCountryNotFound) {
			response.Fail(c, http.StatusNotFound, "Country not found", nil)
			return
		}
		response.Fail(c, http.StatusBadGateway, "Failed to load country details. Please try again later.", nil)
		return
	}
	response.Success(c, http.StatusOK, country, "country", nil)
}
