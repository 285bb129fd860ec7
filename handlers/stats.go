package handlers

import (
	"net/http"
	"time"

	"github.com/connosssss/trackr/models"
	"github.com/connosssss/trackr/repository"
	"github.com/connosssss/trackr/stats"
	"github.com/connosssss/trackr/types"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	sessionsRepo *repository.SessionsRepository
}

func NewStatsHandler(sessionsRepo *repository.SessionsRepository) *StatsHandler {
	return &StatsHandler{sessionsRepo: sessionsRepo}
}

func (h *StatsHandler) GetPeriodTypes(c *gin.Context) {
	c.JSON(http.StatusOK, types.NewSuccessResponse(types.PeriodTypes))
}

func (h *StatsHandler) GetChartTypes(c *gin.Context) {
	c.JSON(http.StatusOK, types.NewSuccessResponse(types.ChartTypes))
}

// GetSummary serves the statistics page header: lifetime total, rolling
// week/month/year sums and the per-group leaderboard.
func (h *StatsHandler) GetSummary(c *gin.Context) {
	userID := c.GetInt("userId")

	totals, err := h.sessionsRepo.GetSummaryTotals(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	groups, err := h.sessionsRepo.GetGroupStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if groups == nil {
		groups = []models.GroupStat{}
	}

	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"total":     totals.Total,
		"week":      totals.Week,
		"month":     totals.Month,
		"year":      totals.Year,
		"topGroups": groups,
	}))
}

// GetBuckets serves the bucketed chart data for one period. weekStart and
// monthStart are optional RFC3339 anchors for back/forward navigation;
// groups=false collapses each bucket to a single total segment.
func (h *StatsHandler) GetBuckets(c *gin.Context) {
	periodName := c.DefaultQuery("period", "week")
	if types.GetPeriodTypeByName(periodName) == nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid period"))
		return
	}

	anchor := stats.Anchor{Now: time.Now()}
	if v := c.Query("weekStart"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid weekStart"))
			return
		}
		anchor.WeekStart = stats.StartOfWeek(t)
	}
	if v := c.Query("monthStart"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid monthStart"))
			return
		}
		anchor.MonthStart = t
	}
	showGroups := c.DefaultQuery("groups", "true") != "false"

	sessions, err := h.sessionsRepo.GetAllSessions(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	r := stats.ResolveRange(stats.Period(periodName), anchor, sessions)
	buckets := stats.BuildBuckets(sessions, r, showGroups)

	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"period":  r.Period,
		"start":   r.Start,
		"end":     r.End,
		"buckets": buckets,
	}))
}

// GetPie serves the all-time group breakdown as pie sector geometry.
func (h *StatsHandler) GetPie(c *gin.Context) {
	sessions, err := h.sessionsRepo.GetAllSessions(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	slices := stats.BuildPie(sessions)
	if slices == nil {
		slices = []stats.Slice{}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"slices": slices}))
}

// GetHeatmap serves the hour-of-week activity grid.
func (h *StatsHandler) GetHeatmap(c *gin.Context) {
	sessions, err := h.sessionsRepo.GetAllSessions(c.GetInt("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(stats.BuildHeatmap(sessions)))
}
