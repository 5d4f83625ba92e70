// Package tracking persists application records to PostgreSQL so match
// quality and application progress can be reviewed later. The matching
// engine itself stays stateless; only the CLI writes here.
package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/job-application-assistant/internal/types"
)

// Application statuses.
const (
	StatusAnalyzed  = "analyzed"
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
)

// Application is one tracked job application.
type Application struct {
	ID         uuid.UUID `json:"id"`
	Company    string    `json:"company"`
	RoleTitle  string    `json:"role_title"`
	JobURL     string    `json:"job_url,omitempty"`
	Status     string    `json:"status"`
	MatchScore int       `json:"match_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateApplication records a new application together with a snapshot
// of the match summary that justified it.
func (s *Store) CreateApplication(ctx context.Context, company, roleTitle, jobURL string, summary *types.MatchSummary) (uuid.UUID, error) {
	score := 0
	var snapshot []byte
	if summary != nil {
		score = summary.OverallScore
		var err error
		snapshot, err = json.Marshal(summary.SelectedBullets)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal bullet snapshot: %w", err)
		}
	}

	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO applications (company, role_title, job_url, status, match_score, selected_bullets)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		company, roleTitle, jobURL, StatusAnalyzed, score, snapshot,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// UpdateStatus moves an application through the pipeline.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s not found", id)
	}
	return nil
}

// ListApplications returns applications ordered newest first,
// optionally filtered by status.
func (s *Store) ListApplications(ctx context.Context, status string) ([]Application, error) {
	query := `SELECT id, company, role_title, COALESCE(job_url, ''), status, match_score, created_at, updated_at
	          FROM applications`
	args := []any{}
	if status != "" {
		if !validStatus(status) {
			return nil, fmt.Errorf("invalid status %q", status)
		}
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.Company, &app.RoleTitle, &app.JobURL,
			&app.Status, &app.MatchScore, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}
	return apps, nil
}

func validStatus(status string) bool {
	switch status {
	case StatusAnalyzed, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}
