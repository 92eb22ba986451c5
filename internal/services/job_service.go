package services

import (
	"context"
	"fmt"
	"log"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	jobRepo  storage.JobRepository
	appRepo  storage.ApplicationRepository
	userRepo storage.UserRepository
	resumes  storage.ResumeStore
	db       storage.TxBeginner
}

// NewJobService creates a new instance of JobService.
func NewJobService(
	jobRepo storage.JobRepository,
	appRepo storage.ApplicationRepository,
	userRepo storage.UserRepository,
	resumes storage.ResumeStore,
	db storage.TxBeginner,
) JobService {
	return &jobService{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
		resumes:  resumes,
		db:       db,
	}
}

// CreateJob creates a new active posting owned by the requesting employer.
func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	// Only employer accounts may post jobs.
	user, err := s.userRepo.GetByID(ctx, &dto.GetUserByIDRequest{ID: req.EmployerID})
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching user %s for job creation", req.EmployerID))
	}
	if user.Role != models.RoleEmployer {
		log.Printf("CreateJob: Forbidden attempt by non-employer user %s (role: %s)", user.ID, user.Role)
		return nil, fmt.Errorf("%w: only employers can create job postings", ErrForbidden)
	}

	if !models.IsValidJobType(req.Type) {
		return nil, fmt.Errorf("%w: invalid job type %q", ErrValidation, req.Type)
	}
	if len(req.Requirements) == 0 {
		return nil, fmt.Errorf("%w: requirements must not be empty", ErrValidation)
	}
	if req.Salary != nil && req.Salary.Currency != nil && !models.IsValidCurrency(*req.Salary.Currency) {
		return nil, fmt.Errorf("%w: invalid salary currency %q", ErrValidation, *req.Salary.Currency)
	}

	job, err := s.jobRepo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating job")
	}
	return job, nil
}

// GetJobByID returns a job with its employer and resolved application ids.
func (s *jobService) GetJobByID(ctx context.Context, id uuid.UUID) (*models.JobDetail, error) {
	detail, err := s.jobRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s", id))
	}
	return detail, nil
}

// ListActiveJobs returns active postings, newest first, for public browsing.
func (s *jobService) ListActiveJobs(ctx context.Context, req *dto.ListActiveJobsRequest) ([]models.JobWithEmployer, error) {
	jobs, err := s.jobRepo.ListActive(ctx, req)
	if err != nil {
		log.Printf("ListActiveJobs: Error listing jobs: %v", err)
		return nil, mapRepoError(err, "listing active jobs")
	}
	return jobs, nil
}

// ListEmployerJobs returns the requesting employer's postings.
func (s *jobService) ListEmployerJobs(ctx context.Context, req *dto.ListEmployerJobsRequest) ([]models.JobDetail, error) {
	jobs, err := s.jobRepo.ListByEmployer(ctx, req)
	if err != nil {
		log.Printf("ListEmployerJobs: Error listing jobs for employer %s: %v", req.EmployerID, err)
		return nil, mapRepoError(err, fmt.Sprintf("listing jobs for employer %s", req.EmployerID))
	}
	return jobs, nil
}

// UpdateJob applies a partial update after ownership checks. Salary min/max
// are validated independently; min <= max ordering is intentionally not
// enforced. The employer reference never changes.
func (s *jobService) UpdateJob(ctx context.Context, requesterID uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for update", req.ID))
	}
	if job.EmployerID != requesterID {
		log.Printf("UpdateJob: Forbidden attempt by user %s on job %s owned by %s", requesterID, job.ID, job.EmployerID)
		return nil, ErrForbidden
	}

	if req.Type != nil && !models.IsValidJobType(*req.Type) {
		return nil, fmt.Errorf("%w: invalid job type %q", ErrValidation, *req.Type)
	}
	if req.Salary != nil && req.Salary.Currency != nil && !models.IsValidCurrency(*req.Salary.Currency) {
		return nil, fmt.Errorf("%w: invalid salary currency %q", ErrValidation, *req.Salary.Currency)
	}
	if req.Requirements != nil && len(req.Requirements) == 0 {
		return nil, fmt.Errorf("%w: requirements must not be empty", ErrValidation)
	}

	updated, err := s.jobRepo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("updating job %s", req.ID))
	}
	return updated, nil
}

// DeleteJob removes a posting and cascades to its applications: the rows go
// in the same transaction, the resume files afterwards. File removal
// tolerates already-absent files.
func (s *jobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("DeleteJob: Error beginning transaction: %v", err)
		return fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txJobRepo := s.jobRepo.WithTx(tx)
	txAppRepo := s.appRepo.WithTx(tx)

	job, err := txJobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching job %s for deletion", req.ID))
	}
	if job.EmployerID != req.RequesterID {
		log.Printf("DeleteJob: Forbidden attempt by user %s on job %s owned by %s", req.RequesterID, job.ID, job.EmployerID)
		return ErrForbidden
	}

	resumePaths, err := txAppRepo.ListResumesByJob(ctx, req.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("listing resumes for job %s", req.ID))
	}
	if err := txAppRepo.DeleteByJob(ctx, req.ID); err != nil {
		return mapRepoError(err, fmt.Sprintf("deleting applications for job %s", req.ID))
	}
	if err := txJobRepo.Delete(ctx, req.ID, req.ExpectedVersion); err != nil {
		return mapRepoError(err, fmt.Sprintf("deleting job %s", req.ID))
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("DeleteJob: Error committing transaction: %v", err)
		return fmt.Errorf("internal error committing job deletion: %w", err)
	}

	// Rows are gone; now clear the stored files. Absent files are fine,
	// anything else is logged and moved past since the records no longer
	// reference them.
	for _, path := range resumePaths {
		if rmErr := s.resumes.Remove(ctx, path); rmErr != nil {
			log.Printf("DeleteJob: Error removing resume %s for deleted job %s: %v", path, req.ID, rmErr)
		}
	}

	log.Printf("Job %s deleted with %d application(s) by employer %s", req.ID, len(resumePaths), req.RequesterID)
	return nil
}
