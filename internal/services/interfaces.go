package services

import (
	"context"

	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
)

// UserService defines the interface for identity business logic.
type UserService interface {
	Register(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, string, error) // Returns user, access token, refresh token
	Refresh(ctx context.Context, req *dto.RefreshRequest) (string, string, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	GetByID(ctx context.Context, req *dto.GetUserByIDRequest) (*models.User, error)
}

// JobService defines the interface for job registry business logic.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*models.JobDetail, error)
	ListActiveJobs(ctx context.Context, req *dto.ListActiveJobsRequest) ([]models.JobWithEmployer, error)
	ListEmployerJobs(ctx context.Context, req *dto.ListEmployerJobsRequest) ([]models.JobDetail, error)
	UpdateJob(ctx context.Context, requesterID uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error
}

// ApplicationService defines the interface for application lifecycle business logic.
type ApplicationService interface {
	Submit(ctx context.Context, req *dto.SubmitApplicationRequest) (*models.Application, error)
	ListCandidateApplications(ctx context.Context, req *dto.ListCandidateApplicationsRequest) ([]models.ApplicationWithJob, error)
	ListJobApplications(ctx context.Context, req *dto.ListJobApplicationsRequest) ([]models.ApplicationWithCandidate, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	Delete(ctx context.Context, req *dto.DeleteApplicationRequest) error
}
