package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/pulsebot/internal/models"
	"github.com/teampulse/pulsebot/internal/orgtime"
	"github.com/teampulse/pulsebot/internal/store"
)

type registerRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Name       string `json:"name"`
	Role       string `json:"role" binding:"required"`
}

// RegisterUserHandler creates or updates a user registration.
func RegisterUserHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "external_id and role are required"})
			return
		}
		if !models.ValidRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be member, product_owner or admin"})
			return
		}

		created, err := s.UpsertUser(c.Request.Context(), req.ExternalID, req.Name, req.Role, callerID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"external_id": req.ExternalID, "role": req.Role})
	}
}

// RemoveUserHandler removes a user; they disappear from listings, pending
// computations and reports.
func RemoveUserHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.RemoveUser(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": c.Param("id")})
	}
}

// ListUsersHandler lists active users, optionally filtered by role.
func ListUsersHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.ListUsers(c.Request.Context(), c.DefaultQuery("role", store.RoleAll))
		if err != nil {
			respondError(c, err)
			return
		}

		type userView struct {
			ExternalID   string `json:"external_id"`
			Name         string `json:"name"`
			Role         string `json:"role"`
			RegisteredAt string `json:"registered_at"`
		}
		views := make([]userView, 0, len(users))
		for _, u := range users {
			views = append(views, userView{
				ExternalID:   u.ExternalID,
				Name:         u.Name,
				Role:         u.Role,
				RegisteredAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		c.JSON(http.StatusOK, gin.H{"users": views})
	}
}

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// FeatureToggleHandler sets or flips a named feature toggle.
func FeatureToggleHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if name != models.FeatureAttendance && name != models.FeatureDailyCollection {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown feature"})
			return
		}

		var req toggleRequest
		_ = c.ShouldBindJSON(&req)

		var enabled bool
		var err error
		if req.Enabled != nil {
			enabled = *req.Enabled
			err = s.SetFeature(c.Request.Context(), name, enabled)
		} else {
			enabled, err = s.ToggleFeature(c.Request.Context(), name)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"feature": name, "enabled": enabled})
	}
}

type ignoredDateRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"`
}

// AddIgnoredDateHandler records a holiday range skipped by daily
// collection.
func AddIgnoredDateHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ignoredDateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date is required"})
			return
		}
		if req.EndDate == "" {
			req.EndDate = req.StartDate
		}
		for _, d := range []string{req.StartDate, req.EndDate} {
			if _, err := orgtime.ParseDate(d); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "malformed date, expected YYYY-MM-DD"})
				return
			}
		}
		if req.EndDate < req.StartDate {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date precedes start_date"})
			return
		}

		row, err := s.AddIgnoredDate(c.Request.Context(), req.StartDate, req.EndDate, callerID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": row.ID, "start_date": row.StartDate, "end_date": row.EndDate})
	}
}

// RemoveIgnoredDateHandler deletes one ignored-date range.
func RemoveIgnoredDateHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed id"})
			return
		}
		if err := s.RemoveIgnoredDate(c.Request.Context(), uint(id)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": id})
	}
}

// ListIgnoredDatesHandler lists configured ranges.
func ListIgnoredDatesHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := s.ListIgnoredDates(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ignored_dates": rows})
	}
}

// ClearIgnoredDatesHandler removes every configured range.
func ClearIgnoredDatesHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.ClearIgnoredDates(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}
