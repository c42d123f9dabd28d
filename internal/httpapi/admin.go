package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Big-jpg/swipehire/internal/models"
)

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (s *Server) createJob(c *gin.Context) {
	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		badRequest(c, "invalid job payload")
		return
	}

	created, err := s.feed.CreateJob(c.Request.Context(), &job)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listJobs(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	jobs, err := s.feed.ListJobs(c.Request.Context(), limit)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": jobs})
}

func (s *Server) getJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	job, err := s.feed.Job(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) markSubmitted(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	app, err := s.feed.MarkSubmitted(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type failRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) markFailed(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req failRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid failure payload")
		return
	}
	app, err := s.feed.MarkFailed(c.Request.Context(), id, req.Reason)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
