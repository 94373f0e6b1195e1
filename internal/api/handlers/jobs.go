package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"hirepath-api/internal/aggregator"
	"hirepath-api/internal/logging"
	"hirepath-api/internal/store"
	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

var validate = validator.New()

// userID extracts the caller identity header. The auth provider itself is an
// external collaborator; the header is trusted the way the upstream proxy
// delivers it.
func userID(c echo.Context) string {
	return c.Request().Header.Get("x-user-id")
}

// ListJobsHandler serves the aggregated job listing: cache, then quota-guarded
// provider fetch merged with the persisted jobs. Provider trouble and quota
// exhaustion both degrade to fewer results; only a store failure errors.
func ListJobsHandler(search *aggregator.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		page := 1
		if raw := c.QueryParam("page"); raw != "" {
			if p, err := strconv.Atoi(raw); err == nil && p > 0 {
				page = p
			}
		}

		params := models.SearchParams{
			Query:    c.QueryParam("q"),
			Location: c.QueryParam("location"),
			Page:     page,
			Country:  c.QueryParam("country"),
		}

		jobs, err := search.Search(c.Request().Context(), params)
		if err != nil {
			logger.Error("Job aggregation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "jobs_unavailable",
				Message:   "Error fetching jobs",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, jobs)
	}
}

// CreateJobHandler persists an internally posted job.
func CreateJobHandler(jobs store.JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		uid := userID(c)
		if uid == "" {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:     "unauthorized",
				Message:   "Missing x-user-id header",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		var req models.CreateJobRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		job, err := jobs.CreateJob(c.Request().Context(), req.Title, req.Description, req.Skills, uid)
		if err != nil {
			logger.Error("Create job failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "create_failed",
				Message:   "Error creating job",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Internal job posted", map[string]interface{}{
			"job_id": job.ID,
			"title":  job.Title,
		})
		return c.JSON(http.StatusOK, job)
	}
}
