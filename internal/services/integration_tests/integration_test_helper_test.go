package integration_tests

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"job-board-api/internal/database"
	"job-board-api/internal/models"
	"job-board-api/internal/storage/files"
	"job-board-api/internal/storage/postgres"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Helper to create a pointer to an int64
func ptrInt64(i int64) *int64 { return &i }

// Helper to create a pointer to a models.JobStatus
func ptrJobStatus(s models.JobStatus) *models.JobStatus { return &s }

var testDB *pgxpool.Pool
var testRedisClient *redis.Client

// getTestClients establishes a connection pool to the test database.
// It reads the DSN from the TEST_DATABASE_URL environment variable and
// skips the calling test when it is not set.
func getTestClients(t *testing.T) (*pgxpool.Pool, *redis.Client) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL environment variable not set")
	}

	if testDB == nil {
		pool, err := pgxpool.New(context.Background(), dsn)
		require.NoError(t, err, "Failed to connect to test database")
		testDB = pool

		// Apply the schema before any test touches the pool
		runMigrations(t)
	}

	// --- Redis Setup ---
	if testRedisClient == nil {
		redisAddr := os.Getenv("TEST_REDIS_URL")
		if redisAddr == "" {
			log.Println("WARN: TEST_REDIS_URL not set. Redis-dependent tests may be skipped.")
			// Keep testRedisClient as nil
		} else {
			rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
			ctxRedis, cancelRedis := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancelRedis()
			if err := rdb.Ping(ctxRedis).Err(); err != nil {
				log.Printf("WARN: Failed to connect to test Redis at %s: %v. Redis-dependent tests may be skipped.", redisAddr, err)
				// Keep testRedisClient as nil
			} else {
				testRedisClient = rdb
			}
		}
	}
	return testDB, testRedisClient
}

// runMigrations applies the schema to the test database.
func runMigrations(t *testing.T) {
	t.Helper()
	require.NoError(t, database.Migrate(context.Background(), testDB), "Failed to migrate test database")
}

// cleanupTables deletes all rows from the given tables for test isolation.
// List child tables before their parents so foreign keys do not block the
// deletes.
func cleanupTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return // Nothing to clean
	}

	for _, table := range tables {
		switch table {
		case "applications", "jobs", "users":
			_, err := pool.Exec(ctx, "DELETE FROM "+table)
			require.NoError(t, err, "Failed to clean table %s", table)
		default:
		}
	}
	log.Printf("Cleaned tables: %s", strings.Join(tables, ", "))
}

// cleanupRedis flushes the test Redis database. Use with caution!
func cleanupRedis(t *testing.T, client *redis.Client) {
	t.Helper()
	if client == nil {
		return // No client to clean
	}
	require.NoError(t, client.FlushDB(context.Background()).Err(), "Failed to flush test Redis database")
}

// Helper function to create a user for tests
func createTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, email, name string, role models.UserRole) *models.User {
	t.Helper()
	userRepo := postgres.NewUserRepo(pool)
	user, err := userRepo.Create(ctx, &dto.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err, "Failed to create test user %s", email)
	require.NotNil(t, user)
	return user
}

// Helper function to create a job for tests. The repository always inserts
// active postings, so a closed job is produced by an immediate update.
func createTestJob(t *testing.T, ctx context.Context, pool *pgxpool.Pool, employerID uuid.UUID, status models.JobStatus) *models.Job {
	t.Helper()
	jobRepo := postgres.NewJobRepo(pool)
	job, err := jobRepo.Create(ctx, &dto.CreateJobRequest{
		Title:        "Backend Engineer",
		Company:      "Acme Corp",
		Location:     "Remote",
		Type:         models.JobTypeFullTime,
		Description:  "Build and operate the hiring API.",
		Requirements: []string{"Go", "PostgreSQL"},
		EmployerID:   employerID,
	})
	require.NoError(t, err, "Failed to create test job for employer %s", employerID)
	require.NotNil(t, job)

	if status != models.JobStatusActive {
		updated, updateErr := jobRepo.Update(ctx, &dto.UpdateJobRequest{
			ID:     job.ID,
			Status: ptrJobStatus(status),
		})
		require.NoError(t, updateErr, "Failed to set test job status")
		return updated
	}
	return job
}

// Helper function to create an application for tests
func createTestApplication(t *testing.T, ctx context.Context, pool *pgxpool.Pool, jobID, candidateID uuid.UUID) *models.Application {
	t.Helper()
	appRepo := postgres.NewApplicationRepo(pool)
	app, err := appRepo.Create(ctx, &dto.CreateApplicationRequest{
		JobID:       jobID,
		CandidateID: candidateID,
		CoverLetter: "I would love to join.",
		ResumePath:  files.ResumePrefix + uuid.NewString() + ".pdf",
	})
	require.NoError(t, err, "Failed to create test application")
	require.NotNil(t, app)
	return app
}

// waitForClock lets NOW() advance between statements so created_at and
// updated_at comparisons are observable.
func waitForClock() {
	time.Sleep(10 * time.Millisecond)
}
