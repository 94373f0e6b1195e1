package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"hirepath-api/internal/api/handlers"
	"hirepath-api/internal/parser"
	"hirepath-api/internal/store"
	"hirepath-api/pkg/models"
)

func uploadRequest(t *testing.T, userID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("resume", "resume.pdf")
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 fake resume")); err != nil {
		t.Fatalf("build form: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("build form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set(echo.HeaderContentType, form.FormDataContentType())
	if userID != "" {
		req.Header.Set("x-user-id", userID)
	}
	return req
}

func TestUploadResume_ParsesAndPersists(t *testing.T) {
	parseSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Jordan Smith", "email": "jordan@example.com", "skills": ["Go"], "experience": "5 years"}`))
	}))
	defer parseSrv.Close()

	cfg := pipelineConfig()
	cfg.Parser.BaseURL = parseSrv.URL

	st := store.NewMemoryStore()
	e := echo.New()
	e.POST("/api/upload-resume", handlers.UploadResumeHandler(parser.New(cfg, nil), st))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "user-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var saved models.ResumeRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.Name != "Jordan Smith" || saved.UserID != "user-1" {
		t.Errorf("saved = %+v", saved)
	}

	listed, err := st.ListResumesByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListResumesByUser: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("store holds %d resumes, want 1", len(listed))
	}
}

func TestUploadResume_ParseFailureIs502(t *testing.T) {
	parseSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "unsupported document"}`))
	}))
	defer parseSrv.Close()

	cfg := pipelineConfig()
	cfg.Parser.BaseURL = parseSrv.URL

	e := echo.New()
	e.POST("/api/upload-resume", handlers.UploadResumeHandler(parser.New(cfg, nil), store.NewMemoryStore()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "user-1"))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "parse_failed" {
		t.Errorf("error = %q, want parse_failed", resp.Error)
	}
}

func TestUploadResume_NoFileIs400(t *testing.T) {
	cfg := pipelineConfig()
	cfg.Parser.BaseURL = "http://127.0.0.1:1"

	e := echo.New()
	e.POST("/api/upload-resume", handlers.UploadResumeHandler(parser.New(cfg, nil), store.NewMemoryStore()))

	rec := doJSON(e, http.MethodPost, "/api/upload-resume", "user-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "no_file" {
		t.Errorf("error = %q, want no_file", resp.Error)
	}
}
