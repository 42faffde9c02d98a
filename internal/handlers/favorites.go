package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fujical/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      List favorite locations
// @Security     ApiKeyAuth
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, locations"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/favorites/locations [get]
func (h *Handler) listFavoriteLocations(c *gin.Context) {
	userId, err := getUserId(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	locations, err := h.services.Favorites.List(ctx, userId)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load favorites", "favorites_list_failed", err,
			"user_id", userId)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(locations),
		"locations": locations,
	})
}

// @Summary      Add favorite location
// @Security     ApiKeyAuth
// @Tags         favorites
// @Produce      json
// @Param        id  path  int  true  "Location id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/favorites/locations/{id} [post]
func (h *Handler) addFavoriteLocation(c *gin.Context) {
	userId, err := getUserId(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	locationId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	ctx := c.Request.Context()
	if err := h.services.Favorites.Add(ctx, userId, locationId); err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to add favorite", "favorites_add_failed", err,
			"user_id", userId, "location_id", locationId)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Remove favorite location
// @Security     ApiKeyAuth
// @Tags         favorites
// @Produce      json
// @Param        id  path  int  true  "Location id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/favorites/locations/{id} [delete]
func (h *Handler) removeFavoriteLocation(c *gin.Context) {
	userId, err := getUserId(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	locationId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	ctx := c.Request.Context()
	if err := h.services.Favorites.Remove(ctx, userId, locationId); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to remove favorite", "favorites_remove_failed", err,
			"user_id", userId, "location_id", locationId)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
