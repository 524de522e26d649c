package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teampulse/pulsebot/internal/config"
	"github.com/teampulse/pulsebot/internal/notify"
)

type supportRequest struct {
	Message string `json:"message" binding:"required"`
}

// SupportHandler forwards a support message from the caller to the
// configured support user as a direct message.
func SupportHandler(cfg *config.Config, n notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.SupportUserID == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "support is not configured"})
			return
		}

		var req supportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}

		body := fmt.Sprintf("Support request from <@%s>:\n%s", callerID(c), req.Message)
		if err := n.SendDirect(c.Request.Context(), cfg.SupportUserID, "Support request", body); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to deliver support message"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"delivered": true})
	}
}
