package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
)

type applicationService struct {
	appRepo storage.ApplicationRepository
	jobRepo storage.JobRepository
	resumes storage.ResumeStore
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(
	appRepo storage.ApplicationRepository,
	jobRepo storage.JobRepository,
	resumes storage.ResumeStore,
) ApplicationService {
	return &applicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
		resumes: resumes,
	}
}

// Submit creates a pending application for the candidate. The resume is
// stored before the job checks run, mirroring how the upload reaches disk
// ahead of the request body being inspected; every rejection path below
// must therefore remove the stored file before returning.
func (s *applicationService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest) (*models.Application, error) {
	if req.JobID == uuid.Nil {
		return nil, fmt.Errorf("%w: job id is required", ErrValidation)
	}
	if strings.TrimSpace(req.CoverLetter) == "" {
		return nil, fmt.Errorf("%w: cover letter is required", ErrValidation)
	}
	if req.Resume == nil {
		return nil, fmt.Errorf("%w: resume file is required", ErrValidation)
	}

	resumePath, err := s.resumes.Save(ctx, req.Filename, req.Resume)
	if err != nil {
		log.Printf("Submit: Error storing resume for candidate %s: %v", req.CandidateID, err)
		return nil, fmt.Errorf("internal error storing resume: %w", err)
	}
	discard := func() {
		if rmErr := s.resumes.Remove(ctx, resumePath); rmErr != nil {
			log.Printf("Submit: Error discarding resume %s after rejected submission: %v", resumePath, rmErr)
		}
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		discard()
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for application", req.JobID))
	}
	if job.Status != models.JobStatusActive {
		discard()
		log.Printf("Submit: Attempt to apply to non-active job %s (status: %s)", job.ID, job.Status)
		return nil, fmt.Errorf("%w: this job is no longer accepting applications", ErrInvalidState)
	}

	existing, err := s.appRepo.GetByJobAndCandidate(ctx, req.JobID, req.CandidateID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		discard()
		return nil, mapRepoError(err, "checking for existing application")
	}
	if existing != nil {
		discard()
		log.Printf("Submit: Candidate %s already applied to job %s", req.CandidateID, req.JobID)
		return nil, fmt.Errorf("%w: you have already applied for this job", ErrConflict)
	}

	app, err := s.appRepo.Create(ctx, &dto.CreateApplicationRequest{
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
		CoverLetter: req.CoverLetter,
		ResumePath:  resumePath,
	})
	if err != nil {
		// The unique index catches the race between the duplicate check and
		// the insert; the stored file goes either way.
		discard()
		return nil, mapRepoError(err, "creating application")
	}

	log.Printf("Application %s submitted by candidate %s for job %s", app.ID, req.CandidateID, req.JobID)
	return app, nil
}

// ListCandidateApplications returns the candidate's applications, newest
// first, with parent job display fields resolved.
func (s *applicationService) ListCandidateApplications(ctx context.Context, req *dto.ListCandidateApplicationsRequest) ([]models.ApplicationWithJob, error) {
	apps, err := s.appRepo.ListByCandidate(ctx, req)
	if err != nil {
		log.Printf("ListCandidateApplications: Error listing applications for candidate %s: %v", req.CandidateID, err)
		return nil, mapRepoError(err, fmt.Sprintf("listing applications for candidate %s", req.CandidateID))
	}
	return apps, nil
}

// ListJobApplications returns the applications for a job, restricted to the
// owning employer, with candidate display fields resolved.
func (s *applicationService) ListJobApplications(ctx context.Context, req *dto.ListJobApplicationsRequest) ([]models.ApplicationWithCandidate, error) {
	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching job %s for listing applications", req.JobID))
	}
	if job.EmployerID != req.RequesterID {
		log.Printf("ListJobApplications: Forbidden attempt by user %s to list applications for job %s owned by %s", req.RequesterID, req.JobID, job.EmployerID)
		return nil, ErrForbidden
	}

	apps, err := s.appRepo.ListByJob(ctx, req)
	if err != nil {
		log.Printf("ListJobApplications: Error listing applications for job %s: %v", req.JobID, err)
		return nil, mapRepoError(err, fmt.Sprintf("listing applications for job %s", req.JobID))
	}
	return apps, nil
}

// UpdateStatus sets an application's status on behalf of the employer who
// owns the parent job. Any enumerated value is allowed at any time; there
// is deliberately no transition graph.
func (s *applicationService) UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		// Should not happen with the FK in place, but handle defensively
		log.Printf("UpdateStatus: Error fetching job %s for application %s: %v", app.JobID, req.ID, err)
		return nil, mapRepoError(err, fmt.Sprintf("fetching associated job %s", app.JobID))
	}
	if job.EmployerID != req.RequesterID {
		log.Printf("UpdateStatus: Forbidden attempt by user %s on application %s (job employer: %s)", req.RequesterID, req.ID, job.EmployerID)
		return nil, ErrForbidden
	}

	if !models.IsValidApplicationStatus(req.Status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, req.Status)
	}

	updated, err := s.appRepo.UpdateStatus(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("updating status of application %s", req.ID))
	}

	log.Printf("Application %s status updated to %s by employer %s", updated.ID, updated.Status, req.RequesterID)
	return updated, nil
}

// Delete removes an application on behalf of the owning employer, then
// removes the stored resume. An already-absent file is fine; deleting twice
// reports NotFound on the second call without touching storage.
func (s *applicationService) Delete(ctx context.Context, req *dto.DeleteApplicationRequest) error {
	app, err := s.appRepo.GetByID(ctx, req.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching application %s for deletion", req.ID))
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		log.Printf("Delete: Error fetching job %s for application %s: %v", app.JobID, req.ID, err)
		return mapRepoError(err, fmt.Sprintf("fetching associated job %s", app.JobID))
	}
	if job.EmployerID != req.RequesterID {
		log.Printf("Delete: Forbidden attempt by user %s on application %s (job employer: %s)", req.RequesterID, req.ID, job.EmployerID)
		return ErrForbidden
	}

	if err := s.appRepo.Delete(ctx, req.ID, req.ExpectedVersion); err != nil {
		return mapRepoError(err, fmt.Sprintf("deleting application %s", req.ID))
	}

	if rmErr := s.resumes.Remove(ctx, app.Resume); rmErr != nil {
		// The record is gone; a failed file removal is logged, not surfaced.
		log.Printf("Delete: Error removing resume %s for deleted application %s: %v", app.Resume, req.ID, rmErr)
	}

	log.Printf("Application %s deleted by employer %s", req.ID, req.RequesterID)
	return nil
}
