package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"fomezero/internal/engine"
	"fomezero/internal/models"
)

const defaultTopRestaurants = 10

type Handler struct {
	mu      sync.RWMutex
	session *engine.Session
	loadErr error
}

// NewHandler returns a handler serving s. s may be nil while the dataset
// is still loading; requests then get 503 until SetSession is called.
func NewHandler(s *engine.Session) *Handler {
	return &Handler{session: s}
}

// SetSession publishes a freshly loaded session.
func (h *Handler) SetSession(s *engine.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = s
	h.loadErr = nil
}

// SetError records that the background load failed.
func (h *Handler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loadErr = err
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/session", h.GetSession)
	api.GET("/countries", h.GetCountries)
	api.GET("/overview", h.GetOverview)
	api.GET("/map", h.GetMapPoints)
	api.GET("/countries/stats", h.GetCountriesView)
	api.GET("/cities/stats", h.GetCitiesView)
	api.GET("/cuisines/stats", h.GetCuisinesView)
	api.GET("/cuisines/best", h.GetBestRestaurant)
	api.GET("/restaurants/top", h.GetTopRestaurants)
}

func (h *Handler) current() (*engine.Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.loadErr != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "dataset failed to load").SetInternal(h.loadErr)
	}
	if h.session == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is loading")
	}
	return h.session, nil
}

// selection applies the request's country filter. Without any country
// parameter every country is selected; country= with no value selects none.
func (h *Handler) selection(c echo.Context) ([]engine.Record, error) {
	s, err := h.current()
	if err != nil {
		return nil, err
	}
	values, ok := c.QueryParams()["country"]
	if !ok {
		return s.Select(s.Countries), nil
	}
	selected := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				selected = append(selected, p)
			}
		}
	}
	return s.Select(selected), nil
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) GetSession(c echo.Context) error {
	s, err := h.current()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Info())
}

// countries available for selection
func (h *Handler) GetCountries(c echo.Context) error {
	s, err := h.current()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Countries)
}

func (h *Handler) GetOverview(c echo.Context) error {
	rows, err := h.selection(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildOverview(rows))
}

func (h *Handler) GetMapPoints(c echo.Context) error {
	rows, err := h.selection(c)
	if err != nil {
		return err
	}
	points := engine.MapPoints(rows)
	total := len(points)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		points = []models.MapPoint{}
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		points = points[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   points,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetCountriesView(c echo.Context) error {
	rows, err := h.selection(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildCountriesView(rows))
}

func (h *Handler) GetCitiesView(c echo.Context) error {
	rows, err := h.selection(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildCitiesView(rows))
}

func (h *Handler) GetCuisinesView(c echo.Context) error {
	rows, err := h.selection(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BuildCuisinesView(rows, engine.FeaturedCuisines))
}

// best restaurant of one cuisine; unknown cuisines get the N/A result, not 404
func (h *Handler) GetBestRestaurant(c echo.Context) error {
	cuisine := c.QueryParam("cuisine")
	if cuisine == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "cuisine is required")
	}
	rows, err := h.selection(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.BestRestaurant(rows, cuisine))
}

func (h *Handler) GetTopRestaurants(c echo.Context) error {
	rows, err := h.selection(c)
	if err != nil {
		return err
	}
	limit, _ := getPaginationParams(c, defaultTopRestaurants)
	return c.JSON(http.StatusOK, engine.TopRestaurants(rows, limit))
}
