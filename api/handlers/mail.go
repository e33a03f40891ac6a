package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/talentstack/cvintake/interfaces"
	"github.com/talentstack/cvintake/services/notifications"
)

// SendDecision sends the accept/reject email for a candidate. A
// permission-denied response from the mail transport maps to 403.
func SendDecision(notifier interfaces.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request interfaces.DecisionNotification
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if request.EmailAddress == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "emailAddress is required"})
			return
		}

		sent, err := notifier.SendDecision(c.Request.Context(), request)
		if err != nil {
			if errors.Is(err, notifications.ErrInvalidRecipient) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if !sent {
			c.JSON(http.StatusForbidden, gin.H{"error": "mail transport refused to send"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"sent": true})
	}
}
