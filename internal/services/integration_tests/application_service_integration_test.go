package integration_tests

import (
	"context"
	"os"
	"strings"
	"testing"

	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/storage/files"
	"job-board-api/internal/storage/postgres"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Setup ---

// setupApplicationServiceIntegrationTest wires the real service against the
// test database and a throwaway resume directory.
func setupApplicationServiceIntegrationTest(t *testing.T) (context.Context, services.ApplicationService, *pgxpool.Pool, string) {
	t.Helper()
	pool, _ := getTestClients(t)

	resumeDir := t.TempDir()
	store, err := files.NewLocalStore(resumeDir)
	require.NoError(t, err, "Failed to create resume store")

	appRepo := postgres.NewApplicationRepo(pool)
	jobRepo := postgres.NewJobRepo(pool)
	appService := services.NewApplicationService(appRepo, jobRepo, store)
	return context.Background(), appService, pool, resumeDir
}

func submitRequest(jobID, candidateID uuid.UUID) *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		JobID:       jobID,
		CandidateID: candidateID,
		CoverLetter: "Please consider my application.",
		Resume:      strings.NewReader("resume body"),
		Filename:    "resume.pdf",
	}
}

func countResumes(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

// --- Test Cases ---

func TestApplicationService_Integration_Submit(t *testing.T) {
	ctx, appService, pool, resumeDir := setupApplicationServiceIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "submit-employer@test.com", "Submit Employer", models.RoleEmployer)
	candidate := createTestUser(t, ctx, pool, "submit-candidate@test.com", "Submit Candidate", models.RoleCandidate)
	jobActive := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)
	jobClosed := createTestJob(t, ctx, pool, employer.ID, models.JobStatusClosed)

	app, err := appService.Submit(ctx, submitRequest(jobActive.ID, candidate.ID))
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.True(t, strings.HasPrefix(app.Resume, files.ResumePrefix))
	assert.Equal(t, 1, countResumes(t, resumeDir))

	// A second submission hits the duplicate check and must leave no file
	// behind for the rejected upload.
	_, err = appService.Submit(ctx, submitRequest(jobActive.ID, candidate.ID))
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Contains(t, err.Error(), "already applied")
	assert.Equal(t, 1, countResumes(t, resumeDir))

	_, err = appService.Submit(ctx, submitRequest(jobClosed.ID, candidate.ID))
	assert.ErrorIs(t, err, services.ErrInvalidState)
	assert.Equal(t, 1, countResumes(t, resumeDir))

	_, err = appService.Submit(ctx, submitRequest(uuid.New(), candidate.ID))
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, 1, countResumes(t, resumeDir))
}

func TestApplicationService_Integration_UpdateStatus_OwnershipAndVersion(t *testing.T) {
	ctx, appService, pool, _ := setupApplicationServiceIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "review-employer@test.com", "Review Employer", models.RoleEmployer)
	intruder := createTestUser(t, ctx, pool, "review-intruder@test.com", "Review Intruder", models.RoleEmployer)
	candidate := createTestUser(t, ctx, pool, "review-candidate@test.com", "Review Candidate", models.RoleCandidate)
	job := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)
	app := createTestApplication(t, ctx, pool, job.ID, candidate.ID)

	_, err := appService.UpdateStatus(ctx, &dto.UpdateApplicationStatusRequest{
		ID:          app.ID,
		RequesterID: intruder.ID,
		Status:      models.ApplicationStatusReviewed,
	})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = appService.UpdateStatus(ctx, &dto.UpdateApplicationStatusRequest{
		ID:              app.ID,
		RequesterID:     employer.ID,
		Status:          models.ApplicationStatusReviewed,
		ExpectedVersion: ptrInt64(app.Version + 5),
	})
	assert.ErrorIs(t, err, services.ErrConflict)

	updated, err := appService.UpdateStatus(ctx, &dto.UpdateApplicationStatusRequest{
		ID:              app.ID,
		RequesterID:     employer.ID,
		Status:          models.ApplicationStatusReviewed,
		ExpectedVersion: ptrInt64(app.Version),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusReviewed, updated.Status)
	assert.Equal(t, app.Version+1, updated.Version)
}
