package http

import (
	"net/http"
	"strings"

	"stockplus/internal/application/service/coordinator"
	"stockplus/internal/application/service/watchlist"
	market "stockplus/internal/domain/entity/market"

	"github.com/gin-gonic/gin"
)

type groupPayload struct {
	Group int `json:"group" binding:"required"`
}

type venuePayload struct {
	Venue string `json:"exchangeCode" binding:"required"`
}

type periodPayload struct {
	Period string `json:"period" binding:"required"`
}

type selectionPayload struct {
	Code string `json:"stockCode" binding:"required"`
}

type favoritePayload struct {
	IsFavorite bool `json:"isFavorite"`
}

type chartResponse struct {
	Code   string        `json:"code"`
	Venue  market.Venue  `json:"venue"`
	Period market.Period `json:"period"`
	Series market.Series `json:"series"`
}

// getDashboard returns the dashboard state
// @Summary      Dashboard state
// @Description  Active group, venue, period and the selected instrument
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  coordinator.State
// @Router       /dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.coordinator.State())
}

// openStock selects a stock addressed by the page path
// @Summary      Open stock page
// @Description  Select the stock now or once the active group loads it
// @Tags         dashboard
// @Produce      json
// @Param        code  path      string  true  "Stock code"
// @Success      200   {object}  coordinator.State
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /stock/{code} [get]
func (h *Handler) openStock(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.coordinator.Instruments(ctx); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.coordinator.SelectFromPath(ctx, c.Param("code")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.coordinator.State())
}

// getWatchlist lists the active watchlist group
// @Summary      Get watchlist
// @Description  Instruments of the active group with their latest prices
// @Tags         watchlist
// @Produce      json
// @Success      200  {array}   market.Instrument
// @Failure      502  {object}  map[string]string
// @Router       /watchlist [get]
func (h *Handler) getWatchlist(c *gin.Context) {
	items, err := h.coordinator.Instruments(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// reloadWatchlist refetches the active group
// @Summary      Reload watchlist
// @Tags         watchlist
// @Produce      json
// @Success      200  {array}   market.Instrument
// @Failure      502  {object}  map[string]string
// @Router       /watchlist/reload [post]
func (h *Handler) reloadWatchlist(c *gin.Context) {
	items, err := h.coordinator.Reload(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// addToWatchlist adds a search result to the active group
// @Summary      Add to watchlist
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        stock  body      market.SearchResult  true  "Stock to add"
// @Success      201    {array}   market.Instrument
// @Failure      400    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Router       /watchlist [post]
func (h *Handler) addToWatchlist(c *gin.Context) {
	var payload market.SearchResult
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	items, err := h.coordinator.Add(c.Request.Context(), payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, items)
}

// deleteFromWatchlist removes a stock from the active group
// @Summary      Remove from watchlist
// @Tags         watchlist
// @Produce      json
// @Param        code  path      string  true  "Stock code"
// @Success      200   {array}   market.Instrument
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /watchlist/{code} [delete]
func (h *Handler) deleteFromWatchlist(c *gin.Context) {
	items, err := h.coordinator.Delete(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// clearWatchlist removes every stock of the active group
// @Summary      Clear watchlist group
// @Tags         watchlist
// @Produce      json
// @Success      200  {array}   market.Instrument
// @Failure      502  {object}  map[string]string
// @Router       /watchlist [delete]
func (h *Handler) clearWatchlist(c *gin.Context) {
	items, err := h.coordinator.DeleteAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// selectGroup switches the active watchlist group
// @Summary      Select group
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        group  body      groupPayload  true  "Group 1..4"
// @Success      200    {array}   market.Instrument
// @Failure      400    {object}  map[string]string
// @Router       /watchlist/group [put]
func (h *Handler) selectGroup(c *gin.Context) {
	var payload groupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	items, err := h.coordinator.SelectGroup(c.Request.Context(), payload.Group)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// setVenue switches the active venue
// @Summary      Set venue
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        venue  body      venuePayload  true  "J, NX or UN"
// @Success      200    {array}   market.Instrument
// @Failure      400    {object}  map[string]string
// @Router       /watchlist/venue [put]
func (h *Handler) setVenue(c *gin.Context) {
	var payload venuePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	items, err := h.coordinator.SetVenue(c.Request.Context(), market.Venue(strings.ToUpper(strings.TrimSpace(payload.Venue))))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// setFavorite toggles the favorite flag optimistically
// @Summary      Set favorite
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        code      path      string           true  "Stock code"
// @Param        favorite  body      favoritePayload  true  "Favorite flag"
// @Success      200       {object}  watchlist.Mutation
// @Failure      404       {object}  map[string]string
// @Failure      502       {object}  map[string]string
// @Router       /watchlist/{code}/favorite [put]
func (h *Handler) setFavorite(c *gin.Context) {
	var payload favoritePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	m, err := h.coordinator.ToggleFavorite(c.Request.Context(), c.Param("code"), payload.IsFavorite)
	if err != nil {
		if m.State == watchlist.MutationRolledBack || m.State == watchlist.MutationDiverged {
			c.JSON(statusFor(err), gin.H{"error": err.Error(), "mutation": m})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// selectInstrument selects a stock of the active group
// @Summary      Select stock
// @Tags         chart
// @Accept       json
// @Produce      json
// @Param        selection  body      selectionPayload  true  "Stock code"
// @Success      200        {object}  coordinator.State
// @Failure      404        {object}  map[string]string
// @Router       /selection [put]
func (h *Handler) selectInstrument(c *gin.Context) {
	var payload selectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.coordinator.Select(c.Request.Context(), payload.Code); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.coordinator.State())
}

// clearSelection drops the selection and empties the chart
// @Summary      Clear selection
// @Tags         chart
// @Success      204  "No Content"
// @Router       /selection [delete]
func (h *Handler) clearSelection(c *gin.Context) {
	h.coordinator.ClearSelection()
	c.Status(http.StatusNoContent)
}

// getChart returns the chart of the selected stock
// @Summary      Get chart
// @Tags         chart
// @Produce      json
// @Success      200  {object}  chartResponse
// @Failure      404  {object}  map[string]string
// @Router       /chart [get]
func (h *Handler) getChart(c *gin.Context) {
	st := h.coordinator.State()
	if st.Selected == nil {
		h.fail(c, coordinator.ErrNotSelected)
		return
	}
	c.JSON(http.StatusOK, chartResponse{
		Code:   st.Chart.Code,
		Venue:  st.Chart.Venue,
		Period: st.Chart.Period,
		Series: h.coordinator.Series(),
	})
}

// getDailyPrices returns the daily price table of the selected stock
// @Summary      Daily prices
// @Tags         chart
// @Produce      json
// @Success      200  {array}   market.DailyPrice
// @Failure      404  {object}  map[string]string
// @Router       /chart/daily [get]
func (h *Handler) getDailyPrices(c *gin.Context) {
	if _, err := h.coordinator.Selected(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.coordinator.DailyPrices())
}

// setPeriod switches the chart period
// @Summary      Set chart period
// @Tags         chart
// @Accept       json
// @Produce      json
// @Param        period  body      periodPayload  true  "5m, 1D, 1W or 1M"
// @Success      200     {object}  coordinator.State
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /chart/period [put]
func (h *Handler) setPeriod(c *gin.Context) {
	var payload periodPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.coordinator.SetPeriod(c.Request.Context(), market.Period(payload.Period)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.coordinator.State())
}
