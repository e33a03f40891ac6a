package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/talentstack/cvintake/interfaces"
	er "github.com/talentstack/cvintake/internal/errors"
)

// InboxCount returns how many messages are currently in the watched inbox.
func InboxCount(source interfaces.MessageSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := source.InboxMessageCount(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "inbox unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// InspectMessage fetches the nth newest inbox message, stores its
// attachments and returns the message snapshot.
func InspectMessage(ingestion interfaces.IngestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil || index < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a non-negative integer"})
			return
		}

		message, stored, err := ingestion.InspectMessage(c.Request.Context(), index)
		if err != nil {
			if errors.Is(err, er.ErrNotEnoughMessages) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     message,
			"attachments": stored,
		})
	}
}

// RefreshInbox runs one ingestion sweep over the inbox.
func RefreshInbox(ingestion interfaces.IngestionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		processed, err := ingestion.RunOnce(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     err.Error(),
				"processed": processed,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"processed": processed})
	}
}
