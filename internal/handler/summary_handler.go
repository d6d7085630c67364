package handler

import (
	"net/http"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/middleware"
	"github.com/centsible/centsible-backend/internal/service"
	"github.com/centsible/centsible-backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SummaryHandler handles the dashboard summary request
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// TimeSeriesResponse is the 12-month spending series; Labels and Values
// are parallel and always 12 entries long
type TimeSeriesResponse struct {
	Labels []string `json:"labels"`
	Values []string `json:"values"`
}

// CategoryEntryResponse is one dated amount in a category breakdown
type CategoryEntryResponse struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// CategoryBreakdownResponse is the per-category rollup over the user's
// whole history
type CategoryBreakdownResponse struct {
	Category      string                  `json:"category"`
	Total         string                  `json:"total"`
	Entries       []CategoryEntryResponse `json:"entries"`
	MonthlyTotals map[string]string       `json:"monthlyTotals"`
}

// SummaryResponse represents the dashboard summary
type SummaryResponse struct {
	GrandTotal     string                      `json:"grandTotal"`
	MonthlyAverage string                      `json:"monthlyAverage"`
	TimeSeries     TimeSeriesResponse          `json:"timeSeries"`
	Categories     []CategoryBreakdownResponse `json:"categories"`
	Allocation     AllocationResponse          `json:"allocation"`
}

// GetSummary handles GET /api/v1/summary
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.summaryService.GetSummary(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to compute summary")
		return NewInternalError(c, "Failed to compute summary")
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

func toSummaryResponse(summary *domain.Summary) SummaryResponse {
	series := TimeSeriesResponse{
		Labels: summary.TimeSeries.Labels,
		Values: make([]string, len(summary.TimeSeries.Values)),
	}
	for i, value := range summary.TimeSeries.Values {
		series.Values[i] = value.StringFixed(2)
	}

	categories := make([]CategoryBreakdownResponse, len(summary.Categories))
	for i, breakdown := range summary.Categories {
		entries := make([]CategoryEntryResponse, len(breakdown.Entries))
		for j, entry := range breakdown.Entries {
			entries[j] = CategoryEntryResponse{
				Date:   util.FormatDate(entry.Date),
				Amount: entry.Amount.StringFixed(2),
			}
		}
		monthly := make(map[string]string, len(breakdown.MonthlyTotals))
		for key, total := range breakdown.MonthlyTotals {
			monthly[key] = total.StringFixed(2)
		}
		categories[i] = CategoryBreakdownResponse{
			Category:      string(breakdown.Category),
			Total:         breakdown.Total.StringFixed(2),
			Entries:       entries,
			MonthlyTotals: monthly,
		}
	}

	return SummaryResponse{
		GrandTotal:     summary.GrandTotal.StringFixed(2),
		MonthlyAverage: summary.MonthlyAverage.StringFixed(2),
		TimeSeries:     series,
		Categories:     categories,
		Allocation:     toAllocationResponse(summary.Allocation),
	}
}
