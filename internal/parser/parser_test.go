package parser

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hirepath-api/internal/config"
)

func parserConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Parser.BaseURL = baseURL
	cfg.Parser.Timeout = 5 * time.Second
	cfg.Parser.CacheTTL = time.Hour
	return cfg
}

// ── Parse ──────────────────────────────────────────────────────────────────

func TestParse_CleansExtractedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse-resume" {
			t.Errorf("path = %q, want /parse-resume", r.URL.Path)
		}
		w.Write([]byte("{\"name\": \"  Jordan\\u0000 Smith  \", \"email\": \"jordan@example.com\\n\", \"skills\": [\" Go \", \"Postgres\\u0000\"], \"experience\": \"5 years\"}"))
	}))
	defer srv.Close()

	c := New(parserConfig(srv.URL), nil)
	parsed, err := c.Parse(context.Background(), "resume.pdf", "application/pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.Name != "Jordan Smith" {
		t.Errorf("Name = %q, want NULs stripped and trimmed", parsed.Name)
	}
	if parsed.Email != "jordan@example.com" {
		t.Errorf("Email = %q, want trailing whitespace trimmed", parsed.Email)
	}
	if len(parsed.Skills) != 2 || parsed.Skills[0] != "Go" || parsed.Skills[1] != "Postgres" {
		t.Errorf("Skills = %v, want each entry cleaned", parsed.Skills)
	}
}

func TestParse_ForwardsUploadUnchanged(t *testing.T) {
	raw := []byte("%PDF-1.4 fake resume bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if header.Filename != "resume.pdf" {
			t.Errorf("filename = %q, want resume.pdf", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("part content type = %q, want application/pdf", ct)
		}
		got, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("read upload: %v", err)
		}
		if string(got) != string(raw) {
			t.Errorf("upload bytes altered in transit")
		}
		w.Write([]byte(`{"name": "X", "email": "x@example.com", "skills": [], "experience": ""}`))
	}))
	defer srv.Close()

	c := New(parserConfig(srv.URL), nil)
	if _, err := c.Parse(context.Background(), "resume.pdf", "application/pdf", raw); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestParse_InBandErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "unsupported document"}`))
	}))
	defer srv.Close()

	c := New(parserConfig(srv.URL), nil)
	_, err := c.Parse(context.Background(), "resume.docx", "", []byte("zzz"))
	if err == nil {
		t.Fatal("in-band error field should fail even at HTTP 200")
	}
	if !strings.Contains(err.Error(), "unsupported document") {
		t.Errorf("error = %q, should carry the service message", err.Error())
	}
}

func TestParse_BadStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(parserConfig(srv.URL), nil)
	if _, err := c.Parse(context.Background(), "resume.pdf", "application/pdf", []byte("x")); err == nil {
		t.Error("non-200 status should fail")
	}
}

// ── cacheKey ───────────────────────────────────────────────────────────────

func TestCacheKey(t *testing.T) {
	a := cacheKey([]byte("document one"))
	b := cacheKey([]byte("document two"))

	if !strings.HasPrefix(a, "resume:parse:") {
		t.Errorf("key = %q, want resume:parse: prefix", a)
	}
	if a == b {
		t.Error("different documents should hash to different keys")
	}
	if a != cacheKey([]byte("document one")) {
		t.Error("same document should hash to the same key")
	}
}
