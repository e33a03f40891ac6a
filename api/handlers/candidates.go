package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentstack/cvintake/interfaces"
)

// ListCandidates returns all candidates ordered by score, best first.
func ListCandidates(repo interfaces.CandidateRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates, err := repo.ListByScore(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list candidates"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"candidates": candidates})
	}
}

// GetCandidate returns a single candidate by id.
func GetCandidate(repo interfaces.CandidateRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidate, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load candidate"})
			return
		}
		if candidate == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		c.JSON(http.StatusOK, candidate)
	}
}
