package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hirepath-api/pkg/models"
	"hirepath-api/pkg/utils"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates and verifies a pgxpool-backed store.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// ListJobs returns all internally posted jobs, most recent first.
func (s *PostgresStore) ListJobs(ctx context.Context) ([]models.JobRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, skills, posted_by, created_at
		FROM jobs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.JobRecord
	for rows.Next() {
		var j models.JobRecord
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Skills, &j.PostedBy, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) CreateJob(ctx context.Context, title, description string, skills []string, postedBy string) (models.JobRecord, error) {
	job := models.JobRecord{
		ID:          utils.GenerateRequestID(),
		Title:       title,
		Description: description,
		Skills:      skills,
		PostedBy:    postedBy,
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO jobs (id, title, description, skills, posted_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		job.ID, job.Title, job.Description, job.Skills, job.PostedBy,
	).Scan(&job.CreatedAt)
	if err != nil {
		return models.JobRecord{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (s *PostgresStore) ListResumesByUser(ctx context.Context, userID string) ([]models.ResumeRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, name, email, skills, experience, created_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []models.ResumeRecord
	for rows.Next() {
		var r models.ResumeRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Email, &r.Skills, &r.Experience, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

func (s *PostgresStore) CreateResume(ctx context.Context, userID string, parsed models.ParsedResume) (models.ResumeRecord, error) {
	resume := models.ResumeRecord{
		ID:         utils.GenerateRequestID(),
		UserID:     userID,
		Name:       parsed.Name,
		Email:      parsed.Email,
		Skills:     parsed.Skills,
		Experience: parsed.Experience,
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO resumes (id, user_id, name, email, skills, experience)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		resume.ID, resume.UserID, resume.Name, resume.Email, resume.Skills, resume.Experience,
	).Scan(&resume.CreatedAt)
	if err != nil {
		return models.ResumeRecord{}, fmt.Errorf("create resume: %w", err)
	}
	return resume, nil
}

func (s *PostgresStore) DeleteResume(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveMatches writes all rows in one transaction; either every match is
// recorded or none are.
func (s *PostgresStore) SaveMatches(ctx context.Context, resumeID string, matches []models.SavedMatch) (int, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range matches {
		if _, err := tx.Exec(ctx, `
			INSERT INTO matches (id, resume_id, job_id, score)
			VALUES ($1, $2, $3, $4)`,
			utils.GenerateRequestID(), resumeID, m.JobID, m.Score,
		); err != nil {
			return 0, fmt.Errorf("insert match: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return len(matches), nil
}
