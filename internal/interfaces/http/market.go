package http

import (
	"net/http"
	"strconv"
	"strings"

	market "stockplus/internal/domain/entity/market"

	"github.com/gin-gonic/gin"
)

const defaultTickLimit = 100

type keywordPayload struct {
	Keyword string `json:"keyword" binding:"required"`
}

// searchStocks searches stocks by name or code
// @Summary      Search stocks
// @Tags         stocks
// @Produce      json
// @Param        keyword  query     string  true  "Name or code fragment"
// @Success      200      {array}   market.SearchResult
// @Failure      400      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Router       /stocks/search [get]
func (h *Handler) searchStocks(c *gin.Context) {
	results, err := h.insight.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// getInvestors returns the investor flow table of a stock
// @Summary      Investor flows
// @Tags         stocks
// @Produce      json
// @Param        code          path      string  true   "Stock code"
// @Param        exchangeCode  query     string  false  "J, NX or UN"
// @Success      200           {object}  market.InvestorTable
// @Failure      400           {object}  map[string]string
// @Router       /stocks/{code}/investors [get]
func (h *Handler) getInvestors(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		h.fail(c, errMissingCode)
		return
	}
	venue, err := parseVenueQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.insight.Investors(c.Request.Context(), code, venue))
}

// getArchivedTicks returns the most recent archived ticks of a stock
// @Summary      Archived ticks
// @Tags         stocks
// @Produce      json
// @Param        code          path      string  true   "Stock code"
// @Param        exchangeCode  query     string  false  "J, NX or UN"
// @Param        limit         query     int     false  "Maximum rows"  default(100)
// @Success      200           {array}   archive.TickRow
// @Failure      400           {object}  map[string]string
// @Failure      503           {object}  map[string]string
// @Router       /stocks/{code}/ticks [get]
func (h *Handler) getArchivedTicks(c *gin.Context) {
	if h.archive == nil {
		h.fail(c, errArchiveOff)
		return
	}
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		h.fail(c, errMissingCode)
		return
	}
	venue, err := parseVenueQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	limit, err := parseLimitQuery(c, defaultTickLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	rows, err := h.archive.LastTicks(c.Request.Context(), code, venue, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// getInsight returns news and AI commentary
// @Summary      Market insight
// @Tags         insight
// @Produce      json
// @Success      200  {object}  insight.Digest
// @Router       /insight [get]
func (h *Handler) getInsight(c *gin.Context) {
	c.JSON(http.StatusOK, h.insight.Digest())
}

// getKeywords lists the registered news keywords
// @Summary      List keywords
// @Tags         insight
// @Produce      json
// @Success      200  {array}   market.Keyword
// @Failure      502  {object}  map[string]string
// @Router       /keywords [get]
func (h *Handler) getKeywords(c *gin.Context) {
	keywords, err := h.insight.Keywords(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, keywords)
}

// addKeyword registers a news keyword
// @Summary      Add keyword
// @Tags         insight
// @Accept       json
// @Produce      json
// @Param        keyword  body      keywordPayload  true  "Keyword"
// @Success      201      {array}   market.Keyword
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /keywords [post]
func (h *Handler) addKeyword(c *gin.Context) {
	var payload keywordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	keywords, err := h.insight.AddKeyword(c.Request.Context(), payload.Keyword)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, keywords)
}

// deleteKeyword removes a news keyword
// @Summary      Delete keyword
// @Tags         insight
// @Produce      json
// @Param        keyword  query     string  true  "Keyword"
// @Success      200      {array}   market.Keyword
// @Failure      400      {object}  map[string]string
// @Router       /keywords [delete]
func (h *Handler) deleteKeyword(c *gin.Context) {
	keywords, err := h.insight.DeleteKeyword(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, keywords)
}

// getHoldings lists the aggregated holdings
// @Summary      List holdings
// @Tags         holdings
// @Produce      json
// @Success      200  {array}   market.Holding
// @Failure      502  {object}  map[string]string
// @Router       /holdings [get]
func (h *Handler) getHoldings(c *gin.Context) {
	items, err := h.holdings.Holdings(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// addTrade records a buy
// @Summary      Add trade
// @Tags         holdings
// @Accept       json
// @Param        trade  body  market.TradeEntry  true  "Trade"
// @Success      201    "Created"
// @Failure      400    {object}  map[string]string
// @Router       /holdings [post]
func (h *Handler) addTrade(c *gin.Context) {
	var trade market.TradeEntry
	if err := c.ShouldBindJSON(&trade); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.holdings.AddTrade(c.Request.Context(), trade); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// getPortfolio values the holdings at current prices
// @Summary      Portfolio valuation
// @Tags         holdings
// @Produce      json
// @Param        exchangeCode  query     string  false  "J, NX or UN"
// @Success      200           {object}  market.Portfolio
// @Failure      400           {object}  map[string]string
// @Failure      502           {object}  map[string]string
// @Router       /holdings/portfolio [get]
func (h *Handler) getPortfolio(c *gin.Context) {
	venue, err := parseVenueQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	portfolio, err := h.holdings.Portfolio(c.Request.Context(), venue)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// getTradeHistory lists the trades of one stock
// @Summary      Trade history
// @Tags         holdings
// @Produce      json
// @Param        code  path      string  true  "Stock code"
// @Success      200   {array}   market.TradeEntry
// @Failure      400   {object}  map[string]string
// @Router       /holdings/{code}/history [get]
func (h *Handler) getTradeHistory(c *gin.Context) {
	entries, err := h.holdings.History(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// deleteTrade removes one trade
// @Summary      Delete trade
// @Tags         holdings
// @Param        id   path  int  true  "Trade id"
// @Success      204  "No Content"
// @Failure      400  {object}  map[string]string
// @Router       /holdings/history/{id} [delete]
func (h *Handler) deleteTrade(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, errInvalidTradeID)
		return
	}
	if err := h.holdings.DeleteTrade(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
