package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary      List viewing locations
// @Tags         locations
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, locations"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/locations [get]
func (h *Handler) listLocations(c *gin.Context) {
	ctx := c.Request.Context()
	locations, err := h.services.Locations.List(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load locations", "locations_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(locations),
		"locations": locations,
	})
}

// @Summary      Viewing location by id
// @Tags         locations
// @Produce      json
// @Param        id  path  int  true  "Location id"
// @Success      200  {object}  models.Location
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/locations/{id} [get]
func (h *Handler) getLocation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	ctx := c.Request.Context()
	location, err := h.services.Locations.Get(ctx, id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load location", "location_get_failed", err,
			"id", id)
		return
	}
	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}
	c.JSON(http.StatusOK, location)
}
