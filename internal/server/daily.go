package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/pulsebot/internal/daily"
	"github.com/teampulse/pulsebot/internal/reminder"
	"github.com/teampulse/pulsebot/internal/store"
)

type submitRequest struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// DailySubmitHandler stores the caller's daily update. An omitted date
// means yesterday.
func DailySubmitHandler(d *daily.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
			return
		}

		date, err := d.Submit(c.Request.Context(), callerID(c), req.Date, req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"report_date": date})
	}
}

// DailyViewHandler lists the caller's updates in the trailing week or
// month window.
func DailyViewHandler(d *daily.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := c.DefaultQuery("period", daily.PeriodWeek)
		updates, err := d.View(c.Request.Context(), callerID(c), period)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"period": period, "updates": updates})
	}
}

// DailyReportHandler returns the coverage matrix for admins and product
// owners.
func DailyReportHandler(d *daily.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		from := c.Query("from")
		to := c.Query("to")
		if from == "" || to == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from and to dates are required"})
			return
		}
		roleFilter := c.DefaultQuery("role", store.RoleAll)

		cells, err := d.Report(c.Request.Context(), from, to, roleFilter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "coverage": cells})
	}
}

// DailyClearHandler is the administrative bulk wipe of daily updates.
func DailyClearHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := s.ClearDailyUpdates(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	}
}

// DailySweepHandler runs a manual reminder sweep on behalf of an admin or
// product owner. The scheduled cycle still fires on its own afterwards.
func DailySweepHandler(r *reminder.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := r.RunManual(c.Request.Context(), callerID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"target_date": result.TargetDate,
			"pending":     result.Pending,
			"notified":    result.Notified,
		})
	}
}
