package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/pulsebot/internal/config"
	"github.com/teampulse/pulsebot/internal/notify"
	"github.com/teampulse/pulsebot/internal/orgtime"
	"github.com/teampulse/pulsebot/internal/store"
	"github.com/teampulse/pulsebot/internal/tracker"
)

type clockRequest struct {
	Observation string `json:"observation"`
}

// clockConfirm posts a public confirmation to the time-tracking channel
// when one is configured. Best effort: a delivery failure is logged and
// never fails the clock command itself.
func clockConfirm(c *gin.Context, cfg *config.Config, n notify.Dispatcher, body string) {
	if cfg.TimeTrackingChannelID == "" {
		return
	}
	if err := n.PostChannel(c.Request.Context(), cfg.TimeTrackingChannelID, "Attendance", body); err != nil {
		slog.Warn("Failed to post clock confirmation", "error", err.Error())
	}
}

// ClockInHandler opens an attendance session for the caller.
func ClockInHandler(cfg *config.Config, t *tracker.Tracker, n notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req clockRequest
		_ = c.ShouldBindJSON(&req)

		at, err := t.ClockIn(c.Request.Context(), callerID(c), req.Observation)
		if err != nil {
			respondError(c, err)
			return
		}
		clockConfirm(c, cfg, n, fmt.Sprintf("<@%s> clocked in at %s.",
			callerID(c), at.In(orgtime.Zone).Format("15:04")))
		c.JSON(http.StatusOK, gin.H{"clocked_in_at": at})
	}
}

// ClockOutHandler closes the caller's open session and reports its length.
func ClockOutHandler(cfg *config.Config, t *tracker.Tracker, n notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req clockRequest
		_ = c.ShouldBindJSON(&req)

		elapsed, err := t.ClockOut(c.Request.Context(), callerID(c), req.Observation)
		if err != nil {
			respondError(c, err)
			return
		}
		clockConfirm(c, cfg, n, fmt.Sprintf("<@%s> clocked out after %s.",
			callerID(c), elapsed.Round(time.Minute)))
		c.JSON(http.StatusOK, gin.H{
			"duration":       elapsed.String(),
			"duration_hours": elapsed.Hours(),
		})
	}
}

// ClockStatusHandler reports whether the caller is currently clocked in.
func ClockStatusHandler(t *tracker.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := t.Status(c.Request.Context(), callerID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if entry == nil {
			c.JSON(http.StatusOK, gin.H{"clocked_in": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"clocked_in": true, "since": entry.ClockIn})
	}
}

type sessionView struct {
	ClockIn     time.Time  `json:"clock_in"`
	ClockOut    *time.Time `json:"clock_out,omitempty"`
	Observation string     `json:"observation,omitempty"`
}

type hoursView struct {
	User         string        `json:"user"`
	TotalHours   float64       `json:"total_hours"`
	OpenSessions []sessionView `json:"open_sessions,omitempty"`
}

// ClockReportHandler aggregates hours for one user or the whole team over
// a date window (defaults to today). Open sessions appear as a caveat, not
// an error.
func ClockReportHandler(t *tracker.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		fromDate := c.DefaultQuery("from", orgtime.Today())
		toDate := c.DefaultQuery("to", orgtime.Today())
		user := c.Query("user")

		from, err := orgtime.ParseDate(fromDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed from date"})
			return
		}
		to, err := orgtime.ParseDate(toDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed to date"})
			return
		}
		// Window covers the whole final day.
		to = to.AddDate(0, 0, 1).Add(-time.Second)

		report, err := t.ReportHours(c.Request.Context(), user, from, to)
		if err != nil {
			respondError(c, err)
			return
		}

		views := make([]hoursView, 0, len(report.Users))
		for id, sum := range report.Users {
			v := hoursView{User: id, TotalHours: sum.Hours()}
			for _, open := range sum.OpenSessions {
				v.OpenSessions = append(v.OpenSessions, sessionView{
					ClockIn:     open.ClockIn,
					Observation: open.Observation,
				})
			}
			views = append(views, v)
		}
		c.JSON(http.StatusOK, gin.H{"from": fromDate, "to": toDate, "users": views})
	}
}

// TrackingToggleHandler flips the system-wide attendance flag (admin only
// at the routing layer).
func TrackingToggleHandler(t *tracker.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		enabled, err := t.ToggleTracking(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tracking_enabled": enabled})
	}
}

// ClockResetHandler is the explicit administrative bulk wipe of attendance
// records.
func ClockResetHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		removed, err := s.ResetTimeEntries(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	}
}
