// internal/storage/postgres/jobs.go
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

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db Querier) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo bound to the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, title, company, location, type, description, requirements,
	salary_min, salary_max, salary_currency, status, employer_id, version, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.Type,
		&j.Description,
		&j.Requirements,
		&j.Salary.Min,
		&j.Salary.Max,
		&j.Salary.Currency,
		&j.Status,
		&j.EmployerID,
		&j.Version,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create saves a new job posting with status=active.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	salary := models.Salary{Currency: models.CurrencyUSD}
	if req.Salary != nil {
		salary.Min = req.Salary.Min
		salary.Max = req.Salary.Max
		if req.Salary.Currency != nil {
			salary.Currency = *req.Salary.Currency
		}
	}

	query := `
		INSERT INTO jobs (id, title, company, location, type, description, requirements,
			salary_min, salary_max, salary_currency, status, employer_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, NOW(), NOW())
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(),
		req.Title,
		req.Company,
		req.Location,
		req.Type,
		req.Description,
		req.Requirements,
		salary.Min,
		salary.Max,
		salary.Currency,
		models.JobStatusActive,
		req.EmployerID,
	)

	job, err := scanJob(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			log.Printf("Error creating job: foreign key violation (employer_id: %s): %v\n", req.EmployerID, err)
			return nil, fmt.Errorf("failed to create job: invalid employer ID: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Job created successfully with ID: %s", job.ID)
	return job, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}
	return job, nil
}

// GetDetail retrieves a job with its employer display fields and the ids of
// its applications. The application list is computed from the applications
// table rather than read from a stored back-reference.
func (r *JobRepo) GetDetail(ctx context.Context, id uuid.UUID) (*models.JobDetail, error) {
	query := `
		SELECT j.id, j.title, j.company, j.location, j.type, j.description, j.requirements,
			j.salary_min, j.salary_max, j.salary_currency, j.status, j.employer_id, j.version,
			j.created_at, j.updated_at,
			u.id, u.name, u.email, u.company
		FROM jobs j
		JOIN users u ON u.id = j.employer_id
		WHERE j.id = $1
	`
	var d models.JobDetail
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Title, &d.Company, &d.Location, &d.Type, &d.Description, &d.Requirements,
		&d.Salary.Min, &d.Salary.Max, &d.Salary.Currency, &d.Status, &d.EmployerID, &d.Version,
		&d.CreatedAt, &d.UpdatedAt,
		&d.Employer.ID, &d.Employer.Name, &d.Employer.Email, &d.Employer.Company,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job detail %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job detail: %w", err)
	}

	appIDs, err := r.applicationIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	d.ApplicationIDs = appIDs
	return &d, nil
}

func (r *JobRepo) applicationIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM applications WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list application ids for job %s: %w", jobID, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan application id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListActive returns active jobs, newest first, with employer display fields.
func (r *JobRepo) ListActive(ctx context.Context, req *dto.ListActiveJobsRequest) ([]models.JobWithEmployer, error) {
	query := `
		SELECT j.id, j.title, j.company, j.location, j.type, j.description, j.requirements,
			j.salary_min, j.salary_max, j.salary_currency, j.status, j.employer_id, j.version,
			j.created_at, j.updated_at,
			u.id, u.name, u.email, u.company
		FROM jobs j
		JOIN users u ON u.id = j.employer_id
		WHERE j.status = $1
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, models.JobStatusActive, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error listing active jobs: %v\n", err)
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]models.JobWithEmployer, 0)
	for rows.Next() {
		var j models.JobWithEmployer
		err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Description, &j.Requirements,
			&j.Salary.Min, &j.Salary.Max, &j.Salary.Currency, &j.Status, &j.EmployerID, &j.Version,
			&j.CreatedAt, &j.UpdatedAt,
			&j.Employer.ID, &j.Employer.Name, &j.Employer.Email, &j.Employer.Company,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan active job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// ListByEmployer returns the employer's jobs, newest first, each with its
// resolved application ids.
func (r *JobRepo) ListByEmployer(ctx context.Context, req *dto.ListEmployerJobsRequest) ([]models.JobDetail, error) {
	query := `
		SELECT j.id, j.title, j.company, j.location, j.type, j.description, j.requirements,
			j.salary_min, j.salary_max, j.salary_currency, j.status, j.employer_id, j.version,
			j.created_at, j.updated_at,
			u.id, u.name, u.email, u.company
		FROM jobs j
		JOIN users u ON u.id = j.employer_id
		WHERE j.employer_id = $1
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, req.EmployerID, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error listing jobs for employer %s: %v\n", req.EmployerID, err)
		return nil, fmt.Errorf("failed to list employer jobs: %w", err)
	}

	details := make([]models.JobDetail, 0)
	jobIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var d models.JobDetail
		err := rows.Scan(
			&d.ID, &d.Title, &d.Company, &d.Location, &d.Type, &d.Description, &d.Requirements,
			&d.Salary.Min, &d.Salary.Max, &d.Salary.Currency, &d.Status, &d.EmployerID, &d.Version,
			&d.CreatedAt, &d.UpdatedAt,
			&d.Employer.ID, &d.Employer.Name, &d.Employer.Email, &d.Employer.Company,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan employer job row: %w", err)
		}
		d.ApplicationIDs = make([]uuid.UUID, 0)
		details = append(details, d)
		jobIDs = append(jobIDs, d.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(jobIDs) == 0 {
		return details, nil
	}

	appRows, err := r.db.Query(ctx,
		`SELECT id, job_id FROM applications WHERE job_id = ANY($1) ORDER BY created_at DESC`, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list application ids: %w", err)
	}
	defer appRows.Close()

	byJob := make(map[uuid.UUID][]uuid.UUID, len(jobIDs))
	for appRows.Next() {
		var appID, jobID uuid.UUID
		if err := appRows.Scan(&appID, &jobID); err != nil {
			return nil, fmt.Errorf("failed to scan application id row: %w", err)
		}
		byJob[jobID] = append(byJob[jobID], appID)
	}
	if err := appRows.Err(); err != nil {
		return nil, err
	}
	for i := range details {
		if ids, ok := byJob[details[i].ID]; ok {
			details[i].ApplicationIDs = ids
		}
	}
	return details, nil
}

// Update applies a partial update, refreshing updated_at and bumping the
// version. When an expected version is supplied the update only matches if
// the row still carries it; a mismatch surfaces as ErrStaleVersion.
// The employer reference is never part of the SET list.
func (r *JobRepo) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	sets := []string{"updated_at = NOW()", "version = version + 1"}
	args := []interface{}{}
	addSet := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Company != nil {
		addSet("company", *req.Company)
	}
	if req.Location != nil {
		addSet("location", *req.Location)
	}
	if req.Type != nil {
		addSet("type", *req.Type)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Requirements != nil {
		addSet("requirements", req.Requirements)
	}
	if req.Salary != nil {
		if req.Salary.Min != nil {
			addSet("salary_min", *req.Salary.Min)
		}
		if req.Salary.Max != nil {
			addSet("salary_max", *req.Salary.Max)
		}
		if req.Salary.Currency != nil {
			addSet("salary_currency", *req.Salary.Currency)
		}
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}

	args = append(args, req.ID)
	where := fmt.Sprintf("WHERE id = $%d", len(args))
	if req.ExpectedVersion != nil {
		args = append(args, *req.ExpectedVersion)
		where += fmt.Sprintf(" AND version = $%d", len(args))
	}

	query := "UPDATE jobs SET " + strings.Join(sets, ", ") + " " + where + " RETURNING " + jobColumns
	job, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missingOrStale(ctx, req.ID, req.ExpectedVersion)
		}
		log.Printf("Error updating job %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// Delete removes a job row, optionally conditional on its version.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID, expectedVersion *int64) error {
	args := []interface{}{id}
	query := "DELETE FROM jobs WHERE id = $1"
	if expectedVersion != nil {
		args = append(args, *expectedVersion)
		query += " AND version = $2"
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		log.Printf("Error deleting job %s: %v\n", id, err)
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, id, expectedVersion)
	}
	log.Printf("Job deleted successfully with ID: %s", id)
	return nil
}

// missingOrStale distinguishes a vanished row from a version mismatch.
func (r *JobRepo) missingOrStale(ctx context.Context, id uuid.UUID, expectedVersion *int64) error {
	if expectedVersion == nil {
		return storage.ErrNotFound
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check job existence: %w", err)
	}
	if exists {
		return storage.ErrStaleVersion
	}
	return storage.ErrNotFound
}
