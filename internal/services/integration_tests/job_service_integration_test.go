package integration_tests

import (
	"context"
	"testing"

	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/storage"
	"job-board-api/internal/storage/files"
	"job-board-api/internal/storage/postgres"
	"job-board-api/internal/transport/dto"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Setup ---

type jobServiceIntegration struct {
	jobService services.JobService
	appService services.ApplicationService
	jobRepo    *postgres.JobRepo
	appRepo    *postgres.ApplicationRepo
	resumeDir  string
}

// setupJobServiceIntegrationTest wires the real services against the test
// database, sharing one resume directory so the delete cascade can be
// observed on disk.
func setupJobServiceIntegrationTest(t *testing.T) (context.Context, *jobServiceIntegration, *pgxpool.Pool) {
	t.Helper()
	pool, _ := getTestClients(t)

	resumeDir := t.TempDir()
	store, err := files.NewLocalStore(resumeDir)
	require.NoError(t, err, "Failed to create resume store")

	jobRepo := postgres.NewJobRepo(pool)
	appRepo := postgres.NewApplicationRepo(pool)
	userRepo := postgres.NewUserRepo(pool)

	env := &jobServiceIntegration{
		jobService: services.NewJobService(jobRepo, appRepo, userRepo, store, pool),
		appService: services.NewApplicationService(appRepo, jobRepo, store),
		jobRepo:    jobRepo,
		appRepo:    appRepo,
		resumeDir:  resumeDir,
	}
	return context.Background(), env, pool
}

// --- Test Cases ---

func TestJobService_Integration_CreateJob_RoleCheck(t *testing.T) {
	ctx, env, pool := setupJobServiceIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "create-employer@test.com", "Create Employer", models.RoleEmployer)
	candidate := createTestUser(t, ctx, pool, "create-candidate@test.com", "Create Candidate", models.RoleCandidate)

	req := &dto.CreateJobRequest{
		Title:        "Platform Engineer",
		Company:      "Acme Corp",
		Location:     "Berlin",
		Type:         models.JobTypeContract,
		Description:  "Keep the lights on.",
		Requirements: []string{"Go"},
		EmployerID:   employer.ID,
	}
	job, err := env.jobService.CreateJob(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusActive, job.Status)
	assert.Equal(t, int64(1), job.Version)

	req.EmployerID = candidate.ID
	_, err = env.jobService.CreateJob(ctx, req)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestJobService_Integration_DeleteJob_CascadesApplicationsAndResumes(t *testing.T) {
	ctx, env, pool := setupJobServiceIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "cascade-employer@test.com", "Cascade Employer", models.RoleEmployer)
	first := createTestUser(t, ctx, pool, "cascade-first@test.com", "First Candidate", models.RoleCandidate)
	second := createTestUser(t, ctx, pool, "cascade-second@test.com", "Second Candidate", models.RoleCandidate)
	job := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)

	_, err := env.appService.Submit(ctx, submitRequest(job.ID, first.ID))
	require.NoError(t, err)
	_, err = env.appService.Submit(ctx, submitRequest(job.ID, second.ID))
	require.NoError(t, err)
	require.Equal(t, 2, countResumes(t, env.resumeDir))

	err = env.jobService.DeleteJob(ctx, &dto.DeleteJobRequest{
		ID:          job.ID,
		RequesterID: employer.ID,
	})
	require.NoError(t, err)

	_, err = env.jobRepo.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	apps, err := env.appRepo.ListByJob(ctx, &dto.ListJobApplicationsRequest{JobID: job.ID, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, apps)

	assert.Equal(t, 0, countResumes(t, env.resumeDir), "stored resumes must be removed with the posting")
}

func TestJobService_Integration_DeleteJob_ForbiddenLeavesEverything(t *testing.T) {
	ctx, env, pool := setupJobServiceIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "keep-employer@test.com", "Keep Employer", models.RoleEmployer)
	intruder := createTestUser(t, ctx, pool, "keep-intruder@test.com", "Keep Intruder", models.RoleEmployer)
	candidate := createTestUser(t, ctx, pool, "keep-candidate@test.com", "Keep Candidate", models.RoleCandidate)
	job := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)

	_, err := env.appService.Submit(ctx, submitRequest(job.ID, candidate.ID))
	require.NoError(t, err)

	err = env.jobService.DeleteJob(ctx, &dto.DeleteJobRequest{
		ID:          job.ID,
		RequesterID: intruder.ID,
	})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = env.jobRepo.GetByID(ctx, job.ID)
	require.NoError(t, err, "the posting must survive a forbidden delete")
	require.Equal(t, 1, countResumes(t, env.resumeDir))
}
