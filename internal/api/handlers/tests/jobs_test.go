package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-board-api/internal/api/handlers"
	"job-board-api/internal/api/middleware"
	"job-board-api/internal/models"
	"job-board-api/internal/services"
	"job-board-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "handler-test-secret"

// MockJobService is a mock implementation of services.JobService
type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) GetJobByID(ctx context.Context, id uuid.UUID) (*models.JobDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobDetail), args.Error(1)
}

func (m *MockJobService) ListActiveJobs(ctx context.Context, req *dto.ListActiveJobsRequest) ([]models.JobWithEmployer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobWithEmployer), args.Error(1)
}

func (m *MockJobService) ListEmployerJobs(ctx context.Context, req *dto.ListEmployerJobsRequest) ([]models.JobDetail, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.JobDetail), args.Error(1)
}

func (m *MockJobService) UpdateJob(ctx context.Context, requesterID uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error) {
	args := m.Called(ctx, requesterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) DeleteJob(ctx context.Context, req *dto.DeleteJobRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ services.JobService = (*MockJobService)(nil)

func setupJobRouter() (*gin.Engine, *MockJobService) {
	gin.SetMode(gin.TestMode)
	mockService := new(MockJobService)
	handler := handlers.NewJobHandler(mockService, validator.New())
	auth := middleware.JWTAuthMiddleware(testSecret)

	router := gin.New()
	api := router.Group("/api")
	jobs := api.Group("/jobs")
	{
		jobs.GET("", handler.ListJobs)
		jobs.GET("/:id", handler.GetJobByID)
		jobs.POST("", auth, handler.CreateJob)
		jobs.PUT("/:id", auth, handler.UpdateJob)
		jobs.DELETE("/:id", auth, handler.DeleteJob)
	}
	return router, mockService
}

func TestJobHandler_CreateJob(t *testing.T) {
	router, mockService := setupJobRouter()
	employerID := uuid.New()
	token, err := generateTestToken(employerID, testSecret, time.Hour)
	assert.NoError(t, err)

	body := map[string]interface{}{
		"title":        "Backend Engineer",
		"company":      "Acme",
		"location":     "Remote",
		"type":         "full-time",
		"description":  "Build and run services.",
		"requirements": []string{"Go", "Postgres"},
	}
	payload, _ := json.Marshal(body)

	t.Run("Success", func(t *testing.T) {
		created := &models.Job{
			ID:           uuid.New(),
			Title:        "Backend Engineer",
			Company:      "Acme",
			Location:     "Remote",
			Type:         models.JobTypeFullTime,
			Description:  "Build and run services.",
			Requirements: []string{"Go", "Postgres"},
			Status:       models.JobStatusActive,
			EmployerID:   employerID,
			Version:      1,
		}
		mockService.On("CreateJob", mock.Anything, mock.MatchedBy(func(req *dto.CreateJobRequest) bool {
			return req.Title == "Backend Engineer" && req.EmployerID == employerID
		})).Return(created, nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp dto.JobResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, models.JobStatusActive, resp.Status)
		assert.Equal(t, int64(1), resp.Version)
		mockService.AssertExpectations(t)
	})

	t.Run("Missing token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Candidate forbidden", func(t *testing.T) {
		mockService.On("CreateJob", mock.Anything, mock.Anything).Return(nil, services.ErrForbidden).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Validation failure", func(t *testing.T) {
		invalid, _ := json.Marshal(map[string]interface{}{
			"title": "Missing everything else",
		})

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(invalid))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestJobHandler_GetJobByID(t *testing.T) {
	router, mockService := setupJobRouter()

	t.Run("Not found", func(t *testing.T) {
		id := uuid.New()
		mockService.On("GetJobByID", mock.Anything, id).Return(nil, services.ErrNotFound).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/api/jobs/"+id.String(), nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `{"error": "Job not found"}`, recorder.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/api/jobs/not-a-uuid", nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestJobHandler_UpdateJob(t *testing.T) {
	router, mockService := setupJobRouter()
	userID := uuid.New()
	token, err := generateTestToken(userID, testSecret, time.Hour)
	assert.NoError(t, err)

	jobID := uuid.New()
	payload, _ := json.Marshal(map[string]interface{}{"status": "closed"})

	t.Run("Stale If-Match yields conflict", func(t *testing.T) {
		staleErr := fmt.Errorf("%w: the resource was modified by another request", services.ErrConflict)
		mockService.On("UpdateJob", mock.Anything, userID, mock.MatchedBy(func(req *dto.UpdateJobRequest) bool {
			return req.ID == jobID && req.ExpectedVersion != nil && *req.ExpectedVersion == 3
		})).Return(nil, staleErr).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPut, "/api/jobs/"+jobID.String(), bytes.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+token)
		request.Header.Set("If-Match", "3")
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.JSONEq(t, `{"error": "the resource was modified by another request"}`, recorder.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("Malformed If-Match", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPut, "/api/jobs/"+jobID.String(), bytes.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+token)
		request.Header.Set("If-Match", "not-a-number")
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Forbidden for non-owner", func(t *testing.T) {
		mockService.On("UpdateJob", mock.Anything, userID, mock.Anything).Return(nil, services.ErrForbidden).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPut, "/api/jobs/"+jobID.String(), bytes.NewReader(payload))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		mockService.AssertExpectations(t)
	})
}

func TestJobHandler_DeleteJob(t *testing.T) {
	router, mockService := setupJobRouter()
	userID := uuid.New()
	token, err := generateTestToken(userID, testSecret, time.Hour)
	assert.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		jobID := uuid.New()
		mockService.On("DeleteJob", mock.Anything, mock.MatchedBy(func(req *dto.DeleteJobRequest) bool {
			return req.ID == jobID && req.RequesterID == userID
		})).Return(nil).Once()

		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodDelete, "/api/jobs/"+jobID.String(), nil)
		request.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		mockService.AssertExpectations(t)
	})
}
