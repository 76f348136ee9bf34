package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/refhub/referral-tracker/internal/dtos"
	"github.com/refhub/referral-tracker/internal/middleware"
	"github.com/refhub/referral-tracker/internal/services"
)

type CandidateHandler struct {
	CandidateService *services.CandidateService
}

func NewCandidateHandler(candidates *services.CandidateService) *CandidateHandler {
	return &CandidateHandler{CandidateService: candidates}
}

// List is the GET /api/candidates endpoint with optional search and status
// query params
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.CandidateService.List(
		middleware.UserID(c),
		c.Query("search"),
		c.Query("status"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Create is the POST /api/candidates endpoint (multipart form, optional
// resume file)
func (h *CandidateHandler) Create(c *gin.Context) {
	var req dtos.CreateCandidateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid form data: " + err.Error()})
		return
	}

	var resume *multipart.FileHeader
	if file, err := c.FormFile("resume"); err == nil {
		resume = file
	}

	candidate, err := h.CandidateService.Create(middleware.UserID(c), &req, resume)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// UpdateStatus is the PUT /api/candidates/:id/status endpoint
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Candidate not found"})
		return
	}

	var req dtos.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON format: " + err.Error()})
		return
	}

	candidate, err := h.CandidateService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// Delete is the DELETE /api/candidates/:id endpoint
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Candidate not found"})
		return
	}

	if err := h.CandidateService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted successfully"})
}

// Stats is the GET /api/candidates/stats endpoint
func (h *CandidateHandler) Stats(c *gin.Context) {
	stats, err := h.CandidateService.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
