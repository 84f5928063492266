package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/explorea/countries-api/internal/application"
	"github.com/explorea/countries-api/internal/domain/entity"
	"github.com/explorea/countries-api/internal/interface/middleware"
	"github.com/explorea/countries-api/pkg/response"
	"github.com/explorea/countries-api/pkg/validation"
)

// FavoritesHandler serves the per-user favorites collection. All routes
// sit behind the auth gate; the verified user ID arrives via the context.
type FavoritesHandler struct {
	Svc    *application.FavoritesService
	Logger *logrus.Logger
}

func NewFavoritesHandler(svc *application.FavoritesService, logger *logrus.Logger) *FavoritesHandler {
	return &FavoritesHandler{Svc: svc, Logger: logger}
}

type addFavoriteRequest struct {
	CountryName string `json:"countryName" binding:"required"`
	Flag        string `json:"flag"`
	Capital     string `json:"capital"`
	Region      string `json:"region"`
}

// List GET /api/favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	favs, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Error fetching favorites", nil)
		return
	}
	response.Success(c, http.StatusOK, favs, "favorites", nil)
}

// Add POST /api/favorites
func (h *FavoritesHandler) Add(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	favs, err := h.Svc.Add(c.Request.Context(), uid, entity.Favorite{
		CountryName: req.CountryName,
		Flag:        req.Flag,
		Capital:     req.Capital,
		Region:      req.Region,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyFavorited):
			response.Fail(c, http.StatusBadRequest, "Country already in favorites", nil)
		case errors.Is(err, application.ErrInvalidCountryName):
			response.Fail(c, http.StatusBadRequest, "countryName is required", nil)
		default:
			response.Fail(c, http.StatusInternalServerError, "Error adding to favorites", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, favs, "added to favorites", nil)
}

// Remove DELETE /api/favorites/:countryName
// Removal is idempotent: deleting a name that is not favorited still
// answers 200 with the unchanged list.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	name := c.Param("countryName")

	favs, err := h.Svc.Remove(c.Request.Context(), uid, name)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Error removing from favorites", nil)
		return
	}

	response.Success(c, http.StatusOK, favs, "removed from favorites", nil)
}
