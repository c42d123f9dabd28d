package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Big-jpg/swipehire/internal/feed"
	"github.com/Big-jpg/swipehire/internal/models"
)

func (s *Server) nextJob(c *gin.Context) {
	res, err := s.feed.NextJob(c.Request.Context(), userID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) recordDecision(c *gin.Context) {
	var in feed.DecisionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid decision payload")
		return
	}

	res, err := s.feed.RecordDecision(c.Request.Context(), userID(c), in)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) undoLast(c *gin.Context) {
	res, err := s.feed.UndoLastDecision(c.Request.Context(), userID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) swipeHistory(c *gin.Context) {
	var decision *models.Decision
	if raw := strings.TrimSpace(c.Query("decision")); raw != "" {
		d := models.Decision(strings.ToLower(raw))
		decision = &d
	}

	entries, err := s.feed.ListSwipeHistory(c.Request.Context(), userID(c), decision)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (s *Server) applications(c *gin.Context) {
	entries, err := s.feed.ListApplications(c.Request.Context(), userID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}
