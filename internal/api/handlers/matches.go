package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hirepath-api/internal/logging"
	"hirepath-api/internal/matcher"
	"hirepath-api/internal/store"
	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

// MatchResumeHandler runs the match orchestration for the caller's latest
// resume. This is the loud path: a scoring-service failure comes back as an
// explicit error, never as an empty match list.
func MatchResumeHandler(orchestrator *matcher.Orchestrator, resumes store.ResumeStore) echo.HandlerFunc {
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

		list, err := resumes.ListResumesByUser(c.Request().Context(), uid)
		if err != nil {
			logger.Error("List resumes failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "resumes_unavailable",
				Message:   "Failed to fetch resumes",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if len(list) == 0 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "resume_required",
				Message:   "Please upload a resume first to see matched jobs",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		matches, err := orchestrator.MatchResume(c.Request().Context(), list[0])
		if err != nil {
			logger.Error("Matching failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "matching_failed",
				Message:   "Matching could not be completed, please try again",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.MatchResponse{Matches: matches})
	}
}

// SaveMatchesHandler persists scored matches for a resume.
func SaveMatchesHandler(matches store.MatchStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		var req models.SaveMatchesRequest
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

		saved, err := matches.SaveMatches(c.Request().Context(), req.ResumeID, req.Matches)
		if err != nil {
			logger.Error("Save matches failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "save_failed",
				Message:   "Failed to save matches",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.SaveMatchesResponse{Success: true, Saved: saved})
	}
}
