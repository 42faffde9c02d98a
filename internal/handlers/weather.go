package handlers

import (
	"errors"
	"net/http"

	"fujical/internal/service"

	"github.com/gin-gonic/gin"
)

// isValidationError reports whether err should map to a 400.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidYear) ||
		errors.Is(err, service.ErrInvalidMonth) ||
		errors.Is(err, service.ErrInvalidDate)
}

// @Summary      Weather for a date
// @Description  Forecast for the Fuji view area. Available only for dates the upstream provider covers; otherwise 404.
// @Tags         weather
// @Produce      json
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"  example(2025-06-21)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/weather/{date} [get]
func (h *Handler) getWeather(c *gin.Context) {
	date := c.Param("date")

	ctx := c.Request.Context()
	info, err := h.services.Weather.GetByDate(ctx, date)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Provider failures and out-of-range dates look the same to the
		// caller: there is no forecast for that date.
		if h.log != nil {
			h.log.Infow("weather_unavailable", "date", date, "err", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "weather unavailable for " + date})
		return
	}
	c.JSON(http.StatusOK, info)
}
