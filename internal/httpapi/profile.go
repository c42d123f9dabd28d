package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Big-jpg/swipehire/internal/models"
)

func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.feed.Profile(c.Request.Context(), userID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) putProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, "invalid profile payload")
		return
	}

	saved, err := s.feed.SaveProfile(c.Request.Context(), userID(c), &profile)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

type resumeRequest struct {
	FileURL          string `json:"file_url"`
	FileKey          string `json:"file_key"`
	OriginalFilename string `json:"original_filename"`
	MimeType         string `json:"mime_type"`
	ParsedText       string `json:"parsed_text"`
}

func (s *Server) getResume(c *gin.Context) {
	resume, err := s.feed.Resume(c.Request.Context(), userID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (s *Server) putResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid resume payload")
		return
	}

	saved, err := s.feed.SaveResume(c.Request.Context(), userID(c), &models.Resume{
		FileURL:          req.FileURL,
		FileKey:          req.FileKey,
		OriginalFilename: req.OriginalFilename,
		MimeType:         req.MimeType,
		ParsedText:       req.ParsedText,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
