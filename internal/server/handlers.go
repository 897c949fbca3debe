// Package server exposes the dashboard views as a JSON API.
package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/KaramelBytes/mbtiboard/internal/analysis"
	"github.com/KaramelBytes/mbtiboard/internal/dataset"
	"github.com/KaramelBytes/mbtiboard/internal/present"
	"github.com/KaramelBytes/mbtiboard/internal/query"
	"github.com/KaramelBytes/mbtiboard/internal/session"
)

type Handler struct {
	sess       *session.Session
	defaultTop int
	summary    analysis.Options
	log        *zap.Logger
}

// Options tunes handler defaults.
type Options struct {
	DefaultTop int
	Summary    analysis.Options
}

func NewHandler(sess *session.Session, opt Options, log *zap.Logger) *Handler {
	if opt.DefaultTop <= 0 {
		opt.DefaultTop = 10
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{sess: sess, defaultTop: opt.DefaultTop, summary: opt.Summary, log: log}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/types", h.GetTypes)
	api.GET("/countries", h.GetCountries)
	api.GET("/preview", h.GetPreview)
	api.GET("/rank/:type", h.GetRank)
	api.GET("/profile/:country", h.GetProfile)
	api.GET("/summary", h.GetSummary)
}

// PreviewRow is one dataset row keyed by type label.
type PreviewRow struct {
	Country string             `json:"country"`
	Ratios  map[string]float64 `json:"ratios"`
}

type errorBody struct {
	Error string `json:"error"`
}

// --- HANDLERS ---

// limitParam reads ?limit. Missing means def; anything else must be a positive integer.
func limitParam(c echo.Context, def int) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
	}
	return n, nil
}

// pathParam returns a decoded path parameter. echo matches on URL.RawPath
// when the client's escaping differs from the default, and then hands back
// the segment still escaped; URL.Path values are already decoded.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	u, err := url.PathUnescape(v)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "malformed "+name+" in path")
	}
	return u, nil
}

func (h *Handler) GetTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sess.Types())
}

func (h *Handler) GetCountries(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sess.Countries())
}

func (h *Handler) GetPreview(c echo.Context) error {
	limit, err := limitParam(c, 5)
	if err != nil {
		return err
	}
	rows := h.sess.Preview(limit)
	out := make([]PreviewRow, len(rows))
	for i, r := range rows {
		m := make(map[string]float64, dataset.NumTypes)
		for _, t := range dataset.AllTypes() {
			m[t.String()] = r.Ratio(t)
		}
		out[i] = PreviewRow{Country: r.Country, Ratios: m}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  out,
		"total": h.sess.Table.Len(),
		"limit": limit,
	})
}

func (h *Handler) GetRank(c echo.Context) error {
	label, err := pathParam(c, "type")
	if err != nil {
		return err
	}
	typ, err := dataset.ParseType(label)
	if err != nil {
		return err
	}
	limit, err := limitParam(c, h.defaultTop)
	if err != nil {
		return err
	}
	order, err := query.ParseOrder(c.QueryParam("order"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	entries, err := h.sess.Rank(typ.String(), limit, order)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, present.RankView(typ, entries))
}

func (h *Handler) GetProfile(c echo.Context) error {
	desc := true
	switch c.QueryParam("sort") {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "sort must be asc or desc")
	}
	country, err := pathParam(c, "country")
	if err != nil {
		return err
	}
	entries, err := h.sess.Profile(country, desc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, present.ProfileView(country, entries))
}

func (h *Handler) GetSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sess.Summary(h.summary))
}

// ErrorHandler renders every failure as {"error": msg}. Lookup misses map to
// 404, bad parameters to 400.
func (h *Handler) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	switch {
	case errors.Is(err, dataset.ErrUnknownType), errors.Is(err, dataset.ErrUnknownCountry):
		code = http.StatusNotFound
	case errors.Is(err, query.ErrInvalidCount):
		code = http.StatusBadRequest
	case errors.As(err, &he):
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody{Error: msg})
}
