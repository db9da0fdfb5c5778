package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	market "stockplus/internal/domain/entity/market"
	interfaces "stockplus/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

var (
	ErrStatus        = errors.New("unexpected backend status")
	ErrLoginRejected = errors.New("login rejected")
)

// StatusError is a non-2xx backend response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}

// Client talks to the dashboard backend's REST and streaming endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
	session *Session
	logger  *logrus.Entry
}

var _ interfaces.Backend = (*Client)(nil)

// NewClient builds a client rooted at baseURL, for example
// http://localhost:8080/stockPlus/api. Streaming requests are not bound by
// timeout; they end with their context.
func NewClient(baseURL string, timeout time.Duration, session *Session, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if session == nil {
		session = NewSession("", "")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		stream:  &http.Client{},
		session: session,
		logger:  logger.WithField("component", "backend_client"),
	}
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Valid() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}
	return req, nil
}

func (c *Client) send(client *http.Client, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{"method": req.Method, "path": req.URL.Path}).Warn("backend request failed")
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"method":  req.Method,
		"path":    req.URL.Path,
		"status":  resp.StatusCode,
		"took_ms": time.Since(start).Milliseconds(),
	}).Trace("backend request")
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	return resp, nil
}

// do sends a JSON request and decodes the JSON response into out when set.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.send(c.http, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// text fetches a free-text document. JSON string bodies are unquoted.
func (c *Client) text(ctx context.Context, path string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.send(c.http, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", path, err)
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
	}
	return string(raw), nil
}

func (c *Client) openStream(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	resp, err := c.send(c.stream, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func groupQuery(groupID int) url.Values {
	return url.Values{"groupId": {strconv.Itoa(groupID)}}
}

func venueQuery(venue market.Venue) url.Values {
	return url.Values{"exchangeCode": {venue.OrDefault().String()}}
}

type loginRequest struct {
	UserID   string `json:"usrId"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserName string `json:"usrName"`
}

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, userID, password string) error {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{UserID: userID, Password: password}, &out); err != nil {
		return fmt.Errorf("login %s: %w", userID, err)
	}
	if out.Token == "" {
		return ErrLoginRejected
	}
	username := out.Username
	if username == "" {
		username = userID
	}
	c.session.Set(out.Token, username)
	c.logger.WithField("user", username).Info("backend session established")
	return nil
}

// Watchlist

func (c *Client) Watchlist(ctx context.Context, groupID int) ([]market.WatchlistEntry, error) {
	var out []market.WatchlistEntry
	if err := c.do(ctx, http.MethodGet, "/dashboard/watchlist", groupQuery(groupID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToWatchlist(ctx context.Context, entry market.WatchlistEntry) error {
	return c.do(ctx, http.MethodPost, "/dashboard/watchlist", nil, entry, nil)
}

func (c *Client) DeleteFromWatchlist(ctx context.Context, code string, groupID int) error {
	return c.do(ctx, http.MethodDelete, "/dashboard/watchlist/"+url.PathEscape(code), groupQuery(groupID), nil, nil)
}

func (c *Client) DeleteGroup(ctx context.Context, groupID int) error {
	return c.do(ctx, http.MethodDelete, "/dashboard/watchlist/group/"+strconv.Itoa(groupID), nil, nil, nil)
}

func (c *Client) SetFavorite(ctx context.Context, code string, groupID int, favorite bool) error {
	body := struct {
		IsFavorite bool `json:"isFavorite"`
	}{favorite}
	return c.do(ctx, http.MethodPut, "/dashboard/watchlist/"+url.PathEscape(code)+"/favorite", groupQuery(groupID), body, nil)
}

// Quotes

func (c *Client) Price(ctx context.Context, code string, venue market.Venue) (market.PriceSnapshot, error) {
	var out market.PriceSnapshot
	err := c.do(ctx, http.MethodGet, "/dashboard/stocks/"+url.PathEscape(code)+"/price", venueQuery(venue), nil, &out)
	return out, err
}

func (c *Client) Chart(ctx context.Context, code string, venue market.Venue, period market.Period) ([]market.RawCandle, error) {
	q := venueQuery(venue)
	q.Set("period", period.String())
	var out []market.RawCandle
	if err := c.do(ctx, http.MethodGet, "/dashboard/stocks/"+url.PathEscape(code)+"/chart", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Investors(ctx context.Context, code string, venue market.Venue) (market.InvestorTable, error) {
	var out market.InvestorTable
	err := c.do(ctx, http.MethodGet, "/dashboard/stocks/"+url.PathEscape(code)+"/investors", venueQuery(venue), nil, &out)
	return out, err
}

func (c *Client) Search(ctx context.Context, keyword string) ([]market.SearchResult, error) {
	var out []market.SearchResult
	if err := c.do(ctx, http.MethodGet, "/stocks/search", url.Values{"keyword": {keyword}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Insight

func (c *Client) RecentNews(ctx context.Context) ([]market.NewsItem, error) {
	var out []market.NewsItem
	if err := c.do(ctx, http.MethodGet, "/news/recent", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarketInsight(ctx context.Context) (string, error) {
	return c.text(ctx, "/dashboard/market-insight")
}

func (c *Client) SpecialReport(ctx context.Context) (string, error) {
	return c.text(ctx, "/dashboard/special-report")
}

func (c *Client) Keywords(ctx context.Context) ([]market.Keyword, error) {
	var out []market.Keyword
	if err := c.do(ctx, http.MethodGet, "/dashboard/keywords", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddKeyword(ctx context.Context, keyword string) error {
	return c.do(ctx, http.MethodPost, "/dashboard/keywords", nil, market.Keyword{Keyword: keyword}, nil)
}

func (c *Client) DeleteKeyword(ctx context.Context, keyword string) error {
	return c.do(ctx, http.MethodDelete, "/dashboard/keywords", url.Values{"keyword": {keyword}}, nil, nil)
}

// Holdings

func (c *Client) Holdings(ctx context.Context) ([]market.Holding, error) {
	var out []market.Holding
	if err := c.do(ctx, http.MethodGet, "/holdings", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TradeHistory(ctx context.Context, code string) ([]market.TradeEntry, error) {
	var out []market.TradeEntry
	if err := c.do(ctx, http.MethodGet, "/holdings/"+url.PathEscape(code)+"/history", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddTrade(ctx context.Context, trade market.TradeEntry) error {
	return c.do(ctx, http.MethodPost, "/holdings", nil, trade, nil)
}

func (c *Client) DeleteTrade(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/holdings/history/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// Streams

func (c *Client) OpenPriceStream(ctx context.Context) (io.ReadCloser, error) {
	return c.openStream(ctx, "/sse/stocks")
}

func (c *Client) OpenAnalysis(ctx context.Context, code string) (io.ReadCloser, error) {
	return c.openStream(ctx, "/sse/stocks/"+url.PathEscape(code)+"/ai-analysis")
}
