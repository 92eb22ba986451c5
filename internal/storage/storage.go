package storage

import (
	"context"
	"io"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxBeginner starts pgx transactions; satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	GetByID(ctx context.Context, req *dto.GetUserByIDRequest) (*models.User, error)
	GetByEmail(ctx context.Context, req *dto.GetUserByEmailRequest) (*models.User, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*models.JobDetail, error)
	ListActive(ctx context.Context, req *dto.ListActiveJobsRequest) ([]models.JobWithEmployer, error)
	ListByEmployer(ctx context.Context, req *dto.ListEmployerJobsRequest) ([]models.JobDetail, error)
	Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, id uuid.UUID, expectedVersion *int64) error
	WithTx(tx pgx.Tx) JobRepository
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetByJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (*models.Application, error)
	ListByCandidate(ctx context.Context, req *dto.ListCandidateApplicationsRequest) ([]models.ApplicationWithJob, error)
	ListByJob(ctx context.Context, req *dto.ListJobApplicationsRequest) ([]models.ApplicationWithCandidate, error)
	ListResumesByJob(ctx context.Context, jobID uuid.UUID) ([]string, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID, expectedVersion *int64) error
	DeleteByJob(ctx context.Context, jobID uuid.UUID) error
	WithTx(tx pgx.Tx) ApplicationRepository
}

// ResumeStore stores uploaded resume binaries. Save returns the storage
// path recorded on the application; paths always begin with the reserved
// upload prefix. Remove tolerates an already-absent file.
type ResumeStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

// SessionStore persists refresh tokens with a TTL.
type SessionStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}
