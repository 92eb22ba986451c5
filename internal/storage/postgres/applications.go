// internal/storage/postgres/applications.go
package postgres

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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db Querier) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// WithTx creates a new ApplicationRepo bound to the transaction.
func (r *ApplicationRepo) WithTx(tx pgx.Tx) storage.ApplicationRepository {
	return &ApplicationRepo{db: tx}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

const applicationColumns = `id, job_id, candidate_id, status, cover_letter, resume, notes,
	version, created_at, updated_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.CandidateID,
		&a.Status,
		&a.CoverLetter,
		&a.Resume,
		&a.Notes,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create saves a new application with status=pending. The unique index on
// (job_id, candidate_id) backstops the duplicate check against races.
func (r *ApplicationRepo) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	query := `
		INSERT INTO applications (id, job_id, candidate_id, status, cover_letter, resume, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, NOW(), NOW())
		RETURNING ` + applicationColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(),
		req.JobID,
		req.CandidateID,
		models.ApplicationStatusPending,
		req.CoverLetter,
		req.ResumePath,
	)

	app, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				log.Printf("Error creating application: duplicate (job: %s, candidate: %s)", req.JobID, req.CandidateID)
				return nil, storage.ErrDuplicateApplication
			case pgForeignKeyViolation:
				log.Printf("Error creating application: foreign key violation (job: %s): %v\n", req.JobID, err)
				return nil, storage.ErrNotFound
			}
		}
		log.Printf("Error creating application: %v\n", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Application created successfully with ID: %s", app.ID)
	return app, nil
}

// GetByID retrieves a specific application by its ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}
	return app, nil
}

// GetByJobAndCandidate retrieves the application for a (job, candidate) pair,
// or storage.ErrNotFound when none exists.
func (r *ApplicationRepo) GetByJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 AND candidate_id = $2`
	app, err := scanApplication(r.db.QueryRow(ctx, query, jobID, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application for job %s, candidate %s: %v\n", jobID, candidateID, err)
		return nil, fmt.Errorf("failed to get application by job and candidate: %w", err)
	}
	return app, nil
}

// ListByCandidate returns a candidate's applications, newest first, each with
// the parent job's display fields.
func (r *ApplicationRepo) ListByCandidate(ctx context.Context, req *dto.ListCandidateApplicationsRequest) ([]models.ApplicationWithJob, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT a.id, a.job_id, a.candidate_id, a.status, a.cover_letter, a.resume, a.notes,
			a.version, a.created_at, a.updated_at,
			j.id, j.title, j.company, j.location
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.candidate_id = $1
		ORDER BY a.created_at DESC
	`)
	args := []interface{}{req.CandidateID}
	args = append(args, req.Limit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, req.Offset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		log.Printf("Error listing applications for candidate %s: %v\n", req.CandidateID, err)
		return nil, fmt.Errorf("failed to list candidate applications: %w", err)
	}
	defer rows.Close()

	apps := make([]models.ApplicationWithJob, 0)
	for rows.Next() {
		var a models.ApplicationWithJob
		err := rows.Scan(
			&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.Resume, &a.Notes,
			&a.Version, &a.CreatedAt, &a.UpdatedAt,
			&a.Job.ID, &a.Job.Title, &a.Job.Company, &a.Job.Location,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate application row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// ListByJob returns the applications for a job, newest first, each with the
// candidate's display fields.
func (r *ApplicationRepo) ListByJob(ctx context.Context, req *dto.ListJobApplicationsRequest) ([]models.ApplicationWithCandidate, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_id, a.status, a.cover_letter, a.resume, a.notes,
			a.version, a.created_at, a.updated_at,
			u.id, u.name, u.email, u.phone
		FROM applications a
		JOIN users u ON u.id = a.candidate_id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, req.JobID, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error listing applications for job %s: %v\n", req.JobID, err)
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	defer rows.Close()

	apps := make([]models.ApplicationWithCandidate, 0)
	for rows.Next() {
		var a models.ApplicationWithCandidate
		err := rows.Scan(
			&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.Resume, &a.Notes,
			&a.Version, &a.CreatedAt, &a.UpdatedAt,
			&a.Candidate.ID, &a.Candidate.Name, &a.Candidate.Email, &a.Candidate.Phone,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job application row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// ListResumesByJob returns the stored resume paths for a job's applications.
func (r *ApplicationRepo) ListResumesByJob(ctx context.Context, jobID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT resume FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes for job %s: %w", jobID, err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan resume path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// UpdateStatus sets the status (and notes, when supplied), refreshing
// updated_at and bumping the version. A supplied expected version makes the
// update conditional.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	sets := []string{"updated_at = NOW()", "version = version + 1"}
	args := []interface{}{}
	addSet := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	addSet("status", req.Status)
	if req.Notes != nil {
		addSet("notes", *req.Notes)
	}

	args = append(args, req.ID)
	where := fmt.Sprintf("WHERE id = $%d", len(args))
	if req.ExpectedVersion != nil {
		args = append(args, *req.ExpectedVersion)
		where += fmt.Sprintf(" AND version = $%d", len(args))
	}

	query := "UPDATE applications SET " + strings.Join(sets, ", ") + " " + where + " RETURNING " + applicationColumns
	app, err := scanApplication(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missingOrStale(ctx, req.ID, req.ExpectedVersion)
		}
		log.Printf("Error updating application %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// Delete removes an application row, optionally conditional on its version.
func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID, expectedVersion *int64) error {
	args := []interface{}{id}
	query := "DELETE FROM applications WHERE id = $1"
	if expectedVersion != nil {
		args = append(args, *expectedVersion)
		query += " AND version = $2"
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		log.Printf("Error deleting application %s: %v\n", id, err)
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, id, expectedVersion)
	}
	log.Printf("Application deleted successfully with ID: %s", id)
	return nil
}

// DeleteByJob removes all applications for a job. Used by the job delete
// cascade; missing rows are not an error.
func (r *ApplicationRepo) DeleteByJob(ctx context.Context, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		log.Printf("Error deleting applications for job %s: %v\n", jobID, err)
		return fmt.Errorf("failed to delete applications for job: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) missingOrStale(ctx context.Context, id uuid.UUID, expectedVersion *int64) error {
	if expectedVersion == nil {
		return storage.ErrNotFound
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check application existence: %w", err)
	}
	if exists {
		return storage.ErrStaleVersion
	}
	return storage.ErrNotFound
}
