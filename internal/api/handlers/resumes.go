package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hirepath-api/internal/logging"
	"hirepath-api/internal/parser"
	"hirepath-api/internal/store"
	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

// ListResumesHandler returns the caller's resumes, most recent first.
func ListResumesHandler(resumes store.ResumeStore) echo.HandlerFunc {
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
		if list == nil {
			list = []models.ResumeRecord{}
		}

		return c.JSON(http.StatusOK, list)
	}
}

// UploadResumeHandler proxies the uploaded document through the parsing
// service and persists the extracted fields.
func UploadResumeHandler(parserClient *parser.Client, resumes store.ResumeStore) echo.HandlerFunc {
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

		fileHeader, err := c.FormFile("resume")
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "no_file",
				Message:   "No file uploaded",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "unreadable_file",
				Message:   "Could not read uploaded file",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "unreadable_file",
				Message:   "Could not read uploaded file",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		parsed, err := parserClient.Parse(c.Request().Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
		if err != nil {
			logger.Error("Resume parsing failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     "parse_failed",
				Message:   "Error parsing resume",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		saved, err := resumes.CreateResume(c.Request().Context(), uid, parsed)
		if err != nil {
			logger.Error("Save resume failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "save_failed",
				Message:   "Error saving resume",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Resume uploaded", map[string]interface{}{"resume_id": saved.ID})
		return c.JSON(http.StatusOK, saved)
	}
}

// DeleteResumeHandler removes one of the caller's resumes.
func DeleteResumeHandler(resumes store.ResumeStore) echo.HandlerFunc {
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

		id := c.Param("id")
		if err := resumes.DeleteResume(c.Request().Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:     "not_found",
					Message:   "Resume not found",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			logger.Error("Delete resume failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "delete_failed",
				Message:   "Error deleting resume",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}
