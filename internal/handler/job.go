package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack/internal/middleware"
	"github.com/jobtrack/jobtrack/internal/service"
	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/resp"
)

// JobHandler handles job-application CRUD.
type JobHandler struct {
	svc    *service.JobService
	logger *logger.Logger
}

// NewJobHandler creates a new job handler instance.
func NewJobHandler(svc *service.JobService, logger *logger.Logger) *JobHandler {
	return &JobHandler{svc: svc, logger: logger}
}

// Create handles POST /api/jobs.
func (h *JobHandler) Create(c *gin.Context) {
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}

	job, err := h.svc.Create(c.Request.Context(), middleware.CurrentIdentity(c), &req)
	if err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusCreated, job)
}

// List handles GET /api/jobs.
func (h *JobHandler) List(c *gin.Context) {
	var req service.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		failValidation(c, err)
		return
	}

	jobs, err := h.svc.List(c.Request.Context(), middleware.CurrentIdentity(c).UserID, &req)
	if err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.Success(c.Writer, jobs)
}

// Get handles GET /api/jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), middleware.CurrentIdentity(c).UserID, c.Param("id"))
	if err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.Success(c.Writer, job)
}

// Update handles PATCH /api/jobs/:id.
func (h *JobHandler) Update(c *gin.Context) {
	var req service.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, err)
		return
	}

	job, err := h.svc.Update(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), &req)
	if err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.Success(c.Writer, job)
}

// Delete handles DELETE /api/jobs/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentIdentity(c).UserID, c.Param("id")); err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.Success(c.Writer, "job application deleted")
}

// Stats handles GET /api/jobs/stats.
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.CurrentIdentity(c).UserID)
	if err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.Success(c.Writer, stats)
}

// AdminList handles GET /api/jobs/admin/all.
func (h *JobHandler) AdminList(c *gin.Context) {
	var req service.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		failValidation(c, err)
		return
	}

	jobs, err := h.svc.AdminList(c.Request.Context(), &req)
	if err != nil {
		failError(c, h.logger, err)
		return
	}

	resp.Success(c.Writer, jobs)
}
