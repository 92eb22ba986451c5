package integration_tests

import (
	"context"
	"testing"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/storage/postgres"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Setup ---

func setupJobRepoIntegrationTest(t *testing.T) (context.Context, *postgres.JobRepo, *pgxpool.Pool) {
	t.Helper()
	pool, _ := getTestClients(t)
	return context.Background(), postgres.NewJobRepo(pool), pool
}

// --- Test Cases ---

func TestJobRepo_Integration_ListActive_NewestFirst(t *testing.T) {
	ctx, jobRepo, pool := setupJobRepoIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "list-active-employer@test.com", "List Employer", models.RoleEmployer)

	oldest := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)
	waitForClock()
	closed := createTestJob(t, ctx, pool, employer.ID, models.JobStatusClosed)
	waitForClock()
	newest := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)

	jobs, err := jobRepo.ListActive(ctx, &dto.ListActiveJobsRequest{Limit: 20})
	require.NoError(t, err)

	require.Len(t, jobs, 2, "closed postings must not appear in the public listing")
	assert.Equal(t, newest.ID, jobs[0].ID)
	assert.Equal(t, oldest.ID, jobs[1].ID)
	for _, j := range jobs {
		assert.NotEqual(t, closed.ID, j.ID)
	}
	assert.Equal(t, employer.Name, jobs[0].Employer.Name)
}

func TestJobRepo_Integration_ListByEmployer_NewestFirst(t *testing.T) {
	ctx, jobRepo, pool := setupJobRepoIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "list-own-employer@test.com", "Own Employer", models.RoleEmployer)
	other := createTestUser(t, ctx, pool, "list-own-other@test.com", "Other Employer", models.RoleEmployer)
	candidate := createTestUser(t, ctx, pool, "list-own-candidate@test.com", "Candidate", models.RoleCandidate)

	oldest := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)
	waitForClock()
	newest := createTestJob(t, ctx, pool, employer.ID, models.JobStatusClosed)
	createTestJob(t, ctx, pool, other.ID, models.JobStatusActive)
	app := createTestApplication(t, ctx, pool, oldest.ID, candidate.ID)

	jobs, err := jobRepo.ListByEmployer(ctx, &dto.ListEmployerJobsRequest{EmployerID: employer.ID, Limit: 20})
	require.NoError(t, err)

	require.Len(t, jobs, 2, "the owner listing covers both active and closed postings")
	assert.Equal(t, newest.ID, jobs[0].ID)
	assert.Equal(t, oldest.ID, jobs[1].ID)
	assert.Empty(t, jobs[0].ApplicationIDs)
	require.Len(t, jobs[1].ApplicationIDs, 1)
	assert.Equal(t, app.ID, jobs[1].ApplicationIDs[0])
}

func TestJobRepo_Integration_Update_RefreshesRowMetadata(t *testing.T) {
	ctx, jobRepo, pool := setupJobRepoIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "update-employer@test.com", "Update Employer", models.RoleEmployer)
	job := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)

	waitForClock()
	title := "Staff Engineer"
	updated, err := jobRepo.Update(ctx, &dto.UpdateJobRequest{ID: job.ID, Title: &title})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, job.Version+1, updated.Version)
	assert.True(t, updated.UpdatedAt.After(job.UpdatedAt), "updated_at must be refreshed on mutation")
	assert.True(t, updated.CreatedAt.Equal(job.CreatedAt), "created_at must not change on mutation")
}

func TestJobRepo_Integration_Update_StaleVersusMissing(t *testing.T) {
	ctx, jobRepo, pool := setupJobRepoIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "stale-employer@test.com", "Stale Employer", models.RoleEmployer)
	job := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)
	title := "Renamed"

	_, err := jobRepo.Update(ctx, &dto.UpdateJobRequest{
		ID:              job.ID,
		Title:           &title,
		ExpectedVersion: ptrInt64(job.Version + 5),
	})
	assert.ErrorIs(t, err, storage.ErrStaleVersion, "live row with a mismatched version reports staleness")

	_, err = jobRepo.Update(ctx, &dto.UpdateJobRequest{
		ID:              uuid.New(),
		Title:           &title,
		ExpectedVersion: ptrInt64(1),
	})
	assert.ErrorIs(t, err, storage.ErrNotFound, "a vanished row is not a version conflict")

	updated, err := jobRepo.Update(ctx, &dto.UpdateJobRequest{
		ID:              job.ID,
		Title:           &title,
		ExpectedVersion: ptrInt64(job.Version),
	})
	require.NoError(t, err)
	assert.Equal(t, job.Version+1, updated.Version)
}

func TestJobRepo_Integration_Delete_StaleVersusMissing(t *testing.T) {
	ctx, jobRepo, pool := setupJobRepoIntegrationTest(t)
	defer cleanupTables(ctx, t, pool, "applications", "jobs", "users")

	employer := createTestUser(t, ctx, pool, "delete-employer@test.com", "Delete Employer", models.RoleEmployer)
	job := createTestJob(t, ctx, pool, employer.ID, models.JobStatusActive)

	err := jobRepo.Delete(ctx, job.ID, ptrInt64(job.Version+5))
	assert.ErrorIs(t, err, storage.ErrStaleVersion)

	err = jobRepo.Delete(ctx, uuid.New(), ptrInt64(1))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = jobRepo.Delete(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, jobRepo.Delete(ctx, job.ID, ptrInt64(job.Version)))
	_, err = jobRepo.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
