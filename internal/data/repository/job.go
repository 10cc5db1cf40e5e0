// Package repository provides MongoDB-backed persistence for jobtrack.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/nanoid"
)

// ErrNotFound indicates the requested record does not exist or is not
// visible to the caller. Not-owned records are reported identically so
// existence never leaks across owners.
var ErrNotFound = errors.New("record not found")

// Status enumerates the lifecycle states of a job application.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
	StatusAccepted  Status = "Accepted"
)

// Statuses lists all valid status values.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusAccepted}

// Valid reports whether s is one of the enumerated status values.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Job represents a job-application record.
type Job struct {
	ID          string    `bson:"_id" json:"id"`
	Owner       string    `bson:"owner" json:"owner"`
	Company     string    `bson:"company" json:"company"`
	Role        string    `bson:"role" json:"role"`
	Status      Status    `bson:"status" json:"status"`
	AppliedDate time.Time `bson:"appliedDate" json:"appliedDate"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Salary      string    `bson:"salary,omitempty" json:"salary,omitempty"`
	JobURL      string    `bson:"jobUrl,omitempty" json:"jobUrl,omitempty"`
	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// JobPatch carries a partial update; nil fields are left untouched.
// Owner and ID are deliberately absent: both are immutable.
type JobPatch struct {
	Company     *string
	Role        *string
	Status      *Status
	AppliedDate *time.Time
	Notes       *string
	Location    *string
	Salary      *string
	JobURL      *string
}

// ListQuery narrows and orders a listing.
type ListQuery struct {
	Owner     string // empty means all owners (admin listing)
	Status    Status // empty means any status
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// Stats aggregates per-status counts for one owner.
type Stats struct {
	Total     int64 `bson:"total" json:"total"`
	Applied   int64 `bson:"applied" json:"applied"`
	Interview int64 `bson:"interview" json:"interview"`
	Offer     int64 `bson:"offer" json:"offer"`
	Rejected  int64 `bson:"rejected" json:"rejected"`
	Accepted  int64 `bson:"accepted" json:"accepted"`
}

// JobRepository defines the interface for job-application persistence.
type JobRepository interface {
	Create(ctx context.Context, job *Job) (*Job, error)
	FindByID(ctx context.Context, owner, id string) (*Job, error)
	List(ctx context.Context, q ListQuery) ([]*Job, error)
	Update(ctx context.Context, owner, id string, patch *JobPatch) (*Job, error)
	Delete(ctx context.Context, owner, id string) error
	Stats(ctx context.Context, owner string) (*Stats, error)
}

type jobRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewJobRepository creates a new job repository instance.
func NewJobRepository(db *mongo.Database, logger *logger.Logger) JobRepository {
	collection := db.Collection("job_applications")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "appliedDate", Value: -1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warnf(ctx, "failed to create job indexes: %v", err)
	}

	return &jobRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create inserts a new job application.
func (r *jobRepository) Create(ctx context.Context, job *Job) (*Job, error) {
	now := time.Now()
	if job.ID == "" {
		job.ID = nanoid.PrimaryKey()
	}
	if job.Status == "" {
		job.Status = StatusApplied
	}
	if job.AppliedDate.IsZero() {
		job.AppliedDate = now
	}
	job.LastUpdated = now
	job.CreatedAt = now
	job.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, job); err != nil {
		r.logger.Errorf(ctx, "failed to create job: %v", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	r.logger.Infof(ctx, "job created: %s owner=%s", job.ID, job.Owner)
	return job, nil
}

// FindByID retrieves one record scoped to its owner.
func (r *jobRepository) FindByID(ctx context.Context, owner, id string) (*Job, error) {
	var job Job
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Errorf(ctx, "failed to find job %s: %v", id, err)
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// sortFields whitelists the scalar fields a listing may sort by.
var sortFields = map[string]string{
	"company":     "company",
	"role":        "role",
	"status":      "status",
	"appliedDate": "appliedDate",
	"location":    "location",
	"salary":      "salary",
	"lastUpdated": "lastUpdated",
	"createdAt":   "createdAt",
	"updatedAt":   "updatedAt",
}

// BuildListOptions translates a ListQuery into a mongo filter and sort.
func BuildListOptions(q ListQuery) (bson.M, bson.D) {
	filter := bson.M{}
	if q.Owner != "" {
		filter["owner"] = q.Owner
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	field, ok := sortFields[q.SortBy]
	if !ok {
		field = "appliedDate"
	}
	order := -1
	if q.SortOrder == "asc" {
		order = 1
	}

	return filter, bson.D{{Key: field, Value: order}}
}

// List retrieves records matching the query.
func (r *jobRepository) List(ctx context.Context, q ListQuery) ([]*Job, error) {
	filter, sort := BuildListOptions(q)

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		r.logger.Errorf(ctx, "failed to list jobs: %v", err)
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := make([]*Job, 0)
	if err := cursor.All(ctx, &jobs); err != nil {
		r.logger.Errorf(ctx, "failed to decode jobs: %v", err)
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}

	return jobs, nil
}

// Update applies a partial update to an owner's record and returns the
// updated document.
func (r *jobRepository) Update(ctx context.Context, owner, id string, patch *JobPatch) (*Job, error) {
	now := time.Now()
	set := bson.M{
		"lastUpdated": now,
		"updatedAt":   now,
	}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.AppliedDate != nil {
		set["appliedDate"] = *patch.AppliedDate
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Salary != nil {
		set["salary"] = *patch.Salary
	}
	if patch.JobURL != nil {
		set["jobUrl"] = *patch.JobURL
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "owner": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Errorf(ctx, "failed to update job %s: %v", id, result.Err())
		return nil, fmt.Errorf("failed to update job: %w", result.Err())
	}

	var updated Job
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated job: %w", err)
	}

	r.logger.Infof(ctx, "job updated: %s owner=%s", id, owner)
	return &updated, nil
}

// Delete physically removes an owner's record.
func (r *jobRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		r.logger.Errorf(ctx, "failed to delete job %s: %v", id, err)
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.logger.Infof(ctx, "job deleted: %s owner=%s", id, owner)
	return nil
}

// Stats returns zero-filled per-status counts for one owner.
func (r *jobRepository) Stats(ctx context.Context, owner string) (*Stats, error) {
	statusCount := func(s Status) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", s}}, 1, 0}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner": owner}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"applied":   statusCount(StatusApplied),
			"interview": statusCount(StatusInterview),
			"offer":     statusCount(StatusOffer),
			"rejected":  statusCount(StatusRejected),
			"accepted":  statusCount(StatusAccepted),
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Errorf(ctx, "failed to aggregate stats for owner %s: %v", owner, err)
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []Stats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}

	if len(results) == 0 {
		return &Stats{}, nil
	}
	return &results[0], nil
}
