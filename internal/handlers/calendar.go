package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errGetCalendar  = "failed to load calendar"
	errGetDayEvents = "failed to load day events"
	errGetUpcoming  = "failed to load upcoming events"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Monthly calendar
// @Description  All diamond/pearl events for the given month, ordered by date and time.
// @Tags         calendar
// @Produce      json
// @Param        year   path  int  true  "Calendar year"   example(2025)
// @Param        month  path  int  true  "Month, 1-based"  example(6)
// @Success      200  {object}  map[string]interface{}  "year, month, events"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/calendar/{year}/{month} [get]
func (h *Handler) getMonthlyCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.services.Calendar.GetMonthlyCalendar(ctx, year, month)
	if err != nil {
		// Range validation failed in the service → 400; anything else is storage.
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetCalendar, "calendar_month_failed", err,
			"year", year, "month", month)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Day events
// @Tags         calendar
// @Produce      json
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"  example(2025-06-21)
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/events/{date} [get]
func (h *Handler) getDayEvents(c *gin.Context) {
	date := c.Param("date")

	ctx := c.Request.Context()
	events, err := h.services.Calendar.GetDayEvents(ctx, date)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetDayEvents, "calendar_day_failed", err,
			"date", date)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// @Summary      Upcoming events
// @Description  Best-scored events over the next days, ordered by quality score.
// @Tags         calendar
// @Produce      json
// @Param        days   query  int  false  "Window in days (default 30, max 90)"
// @Param        limit  query  int  false  "Maximum events (default 20, max 100)"
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/upcoming [get]
func (h *Handler) getUpcomingEvents(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	ctx := c.Request.Context()
	events, err := h.services.Calendar.GetUpcoming(ctx, days, limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetUpcoming, "calendar_upcoming_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}
