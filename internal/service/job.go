package service

import (
	"context"
	"errors"
	"time"

	"github.com/jobtrack/jobtrack/internal/data/repository"
	"github.com/jobtrack/jobtrack/internal/notify"
	"github.com/jobtrack/jobtrack/pkg/logger"
)

var (
	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrInvalidDate is returned for an unparseable date value.
	ErrInvalidDate = errors.New("invalid date value")
)

// dateLayouts lists the accepted appliedDate formats, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// CreateJobRequest is the payload for creating a job application.
type CreateJobRequest struct {
	Company     string `json:"company" binding:"required,max=256"`
	Role        string `json:"role" binding:"required,max=256"`
	Status      string `json:"status" binding:"omitempty,jobstatus"`
	AppliedDate string `json:"appliedDate" binding:"omitempty"`
	Notes       string `json:"notes" binding:"omitempty,max=4096"`
	Location    string `json:"location" binding:"omitempty,max=256"`
	Salary      string `json:"salary" binding:"omitempty,max=128"`
	JobURL      string `json:"jobUrl" binding:"omitempty,url"`
}

// UpdateJobRequest is the payload for a partial update. Absent fields are
// left untouched.
type UpdateJobRequest struct {
	Company     *string `json:"company" binding:"omitempty,min=1,max=256"`
	Role        *string `json:"role" binding:"omitempty,min=1,max=256"`
	Status      *string `json:"status" binding:"omitempty,jobstatus"`
	AppliedDate *string `json:"appliedDate" binding:"omitempty"`
	Notes       *string `json:"notes" binding:"omitempty,max=4096"`
	Location    *string `json:"location" binding:"omitempty,max=256"`
	Salary      *string `json:"salary" binding:"omitempty,max=128"`
	JobURL      *string `json:"jobUrl" binding:"omitempty,url"`
}

// ListJobsRequest narrows and orders a listing.
type ListJobsRequest struct {
	Status    string `form:"status" binding:"omitempty,jobstatus"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// JobService handles job-application business logic.
type JobService struct {
	jobs     repository.JobRepository
	notifier notify.Notifier
	logger   *logger.Logger
}

// NewJobService creates a new job service instance.
func NewJobService(jobs repository.JobRepository, notifier notify.Notifier, logger *logger.Logger) *JobService {
	return &JobService{
		jobs:     jobs,
		notifier: notifier,
		logger:   logger,
	}
}

// Create persists a new application for the owner and notifies them.
// Notification failures never fail the create.
func (s *JobService) Create(ctx context.Context, ident *Identity, req *CreateJobRequest) (*repository.Job, error) {
	job := &repository.Job{
		Owner:    ident.UserID,
		Company:  req.Company,
		Role:     req.Role,
		Status:   repository.Status(req.Status),
		Notes:    req.Notes,
		Location: req.Location,
		Salary:   req.Salary,
		JobURL:   req.JobURL,
	}
	if req.AppliedDate != "" {
		applied, err := parseDate(req.AppliedDate)
		if err != nil {
			return nil, err
		}
		job.AppliedDate = applied
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, &notify.Event{
		Occasion:       notify.OccasionCreated,
		Job:            created,
		RecipientEmail: ident.Email,
	})

	return created, nil
}

// List returns the owner's applications, filtered and sorted.
func (s *JobService) List(ctx context.Context, owner string, req *ListJobsRequest) ([]*repository.Job, error) {
	return s.jobs.List(ctx, repository.ListQuery{
		Owner:     owner,
		Status:    repository.Status(req.Status),
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
}

// Get returns one of the owner's applications.
func (s *JobService) Get(ctx context.Context, owner, id string) (*repository.Job, error) {
	return s.jobs.FindByID(ctx, owner, id)
}

// Update applies a partial update to one of the owner's applications.
// When the update changes the status, exactly one status-change
// notification is dispatched; updates that leave the status alone dispatch
// none.
func (s *JobService) Update(ctx context.Context, ident *Identity, id string, req *UpdateJobRequest) (*repository.Job, error) {
	current, err := s.jobs.FindByID(ctx, ident.UserID, id)
	if err != nil {
		return nil, err
	}

	patch := &repository.JobPatch{
		Company:  req.Company,
		Role:     req.Role,
		Notes:    req.Notes,
		Location: req.Location,
		Salary:   req.Salary,
		JobURL:   req.JobURL,
	}
	if req.Status != nil {
		status := repository.Status(*req.Status)
		patch.Status = &status
	}
	if req.AppliedDate != nil {
		applied, err := parseDate(*req.AppliedDate)
		if err != nil {
			return nil, err
		}
		patch.AppliedDate = &applied
	}

	updated, err := s.jobs.Update(ctx, ident.UserID, id, patch)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status != current.Status {
		s.notifier.Notify(ctx, &notify.Event{
			Occasion:       notify.OccasionStatusChanged,
			Job:            updated,
			RecipientEmail: ident.Email,
		})
	}

	return updated, nil
}

// Delete removes one of the owner's applications.
func (s *JobService) Delete(ctx context.Context, owner, id string) error {
	return s.jobs.Delete(ctx, owner, id)
}

// Stats returns per-status counts for the owner.
func (s *JobService) Stats(ctx context.Context, owner string) (*repository.Stats, error) {
	return s.jobs.Stats(ctx, owner)
}

// AdminList returns applications across all owners.
func (s *JobService) AdminList(ctx context.Context, req *ListJobsRequest) ([]*repository.Job, error) {
	return s.jobs.List(ctx, repository.ListQuery{
		Status:    repository.Status(req.Status),
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
}
