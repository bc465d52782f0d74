// Package handlers provides HTTP request handlers
package handlers

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"flight-insights/internal/domain"
	"flight-insights/internal/services"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgMissingAirports = "Please select both origin and destination airports"
	msgNoFlightData    = "No flight data found for the selected date range"
	msgNoData          = "No data available for the selected route and date range"
)

// Handler holds all service dependencies
type Handler struct {
	Reference *services.ReferenceService
	Insights  *services.InsightService
	UseMock   bool
	Now       func() time.Time
}

// NewHandler creates a new handler with services
func NewHandler(reference *services.ReferenceService, insights *services.InsightService, useMock bool) *Handler {
	return &Handler{
		Reference: reference,
		Insights:  insights,
		UseMock:   useMock,
		Now:       time.Now,
	}
}

// Health handles health check requests
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Health{
		Status: "ok",
		Now:    h.Now().UTC(),
	})
}

// Index renders the route selection page
func (h *Handler) Index(c *gin.Context) {
	countries := h.Reference.Countries(c.Request.Context())
	c.HTML(http.StatusOK, "index.html", gin.H{
		"countries": countries,
		"today":     h.Now().Format("2006-01-02"),
	})
}

// GetAirports handles requests for the airports of one country
func (h *Handler) GetAirports(c *gin.Context) {
	airports := h.Reference.Airports(c.Request.Context(), c.Param("country_code"))
	c.JSON(http.StatusOK, airports)
}

// Analyze handles insight requests for a route around a departure date
func (h *Handler) Analyze(c *gin.Context) {
	origin := strings.TrimSpace(c.PostForm("origin"))
	destination := strings.TrimSpace(c.PostForm("destination"))
	if origin == "" || destination == "" {
		c.JSON(http.StatusOK, domain.ErrorResponse(msgMissingAirports))
		return
	}

	selected := c.PostForm("departure_date")
	if selected == "" {
		selected = h.Now().Format("2006-01-02")
	}

	slog.InfoContext(c.Request.Context(), "analyzing flights",
		slog.String("origin", origin),
		slog.String("destination", destination),
		slog.String("date", selected),
		slog.String("request_id", c.GetString(requestIDKey)),
	)

	result, err := h.Insights.Analyze(c.Request.Context(), origin, destination, selected, h.UseMock)
	if err != nil {
		msg := msgNoData
		if errors.Is(err, services.ErrNoFlightData) {
			msg = msgNoFlightData
		}
		slog.Error(msg, slog.String("err", err.Error()), slog.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusOK, domain.ErrorResponse(msg))
		return
	}
	c.JSON(http.StatusOK, result)
}

// LoadTemplates parses the embedded page templates into r
func LoadTemplates(r *gin.Engine) error {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	return nil
}

// SetupRoutes configures all routes
func SetupRoutes(r *gin.Engine, h *Handler) {
	// Health check
	r.GET("/health", h.Health)

	// Selection page
	r.GET("/", h.Index)
	r.GET("/get_airports/:country_code", h.GetAirports)

	// Insights
	r.POST("/analyze", h.Analyze)
}
