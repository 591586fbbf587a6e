package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/ports"
)

const analysesTable = "regulation_analyses"

const schemaDDL = `CREATE TABLE IF NOT EXISTS regulation_analyses (
    id                           TEXT PRIMARY KEY,
    title                        TEXT NOT NULL,
    severity_score               INTEGER NOT NULL,
    regulation_type              TEXT NOT NULL,
    business_impact_areas        TEXT[] NOT NULL,
    estimated_penalty            DOUBLE PRECISION NOT NULL DEFAULT 0,
    implementation_timeline_days INTEGER NOT NULL,
    plain_english_summary        TEXT NOT NULL,
    business_impact_summary      TEXT NOT NULL,
    key_requirements             TEXT[] NOT NULL DEFAULT '{}',
    action_items                 JSONB NOT NULL DEFAULT '[]',
    compliance_deadlines         JSONB NOT NULL DEFAULT '[]',
    confidence                   DOUBLE PRECISION NOT NULL,
    warnings                     TEXT[] NOT NULL DEFAULT '{}',
    original_url                 TEXT NOT NULL,
    source                       TEXT NOT NULL DEFAULT '',
    published_at                 TIMESTAMPTZ NOT NULL,
    processed_at                 TIMESTAMPTZ NOT NULL,
    updated_at                   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var analysisColumns = []string{
	"id",
	"title",
	"severity_score",
	"regulation_type",
	"business_impact_areas",
	"estimated_penalty",
	"implementation_timeline_days",
	"plain_english_summary",
	"business_impact_summary",
	"key_requirements",
	"action_items",
	"compliance_deadlines",
	"confidence",
	"warnings",
	"original_url",
	"source",
	"published_at",
	"processed_at",
}

const upsertSuffix = `ON CONFLICT (id) DO UPDATE
SET title = EXCLUDED.title,
    severity_score = EXCLUDED.severity_score,
    regulation_type = EXCLUDED.regulation_type,
    business_impact_areas = EXCLUDED.business_impact_areas,
    estimated_penalty = EXCLUDED.estimated_penalty,
    implementation_timeline_days = EXCLUDED.implementation_timeline_days,
    plain_english_summary = EXCLUDED.plain_english_summary,
    business_impact_summary = EXCLUDED.business_impact_summary,
    key_requirements = EXCLUDED.key_requirements,
    action_items = EXCLUDED.action_items,
    compliance_deadlines = EXCLUDED.compliance_deadlines,
    confidence = EXCLUDED.confidence,
    warnings = EXCLUDED.warnings,
    original_url = EXCLUDED.original_url,
    source = EXCLUDED.source,
    published_at = EXCLUDED.published_at,
    processed_at = EXCLUDED.processed_at,
    updated_at = NOW()`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists analyses into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.AnalysisRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// OpenPostgres opens and pings a lib/pq connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the analyses table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Upsert inserts the analysis or replaces the stored row with the same id.
func (r *PostgresRepository) Upsert(ctx context.Context, analysis domain.RegulationAnalysis) error {
	query, args, err := upsertQuery(analysis)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert analysis %s: %w", analysis.ID, err)
	}
	return nil
}

// Get loads one analysis by id or returns domain.ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (domain.RegulationAnalysis, error) {
	query, args, err := selectQuery().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.RegulationAnalysis{}, fmt.Errorf("build select: %w", err)
	}

	a, err := scanAnalysis(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RegulationAnalysis{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.RegulationAnalysis{}, fmt.Errorf("get analysis %s: %w", id, err)
	}
	return a, nil
}

// GetAll returns every stored analysis, most severe and most recent first.
func (r *PostgresRepository) GetAll(ctx context.Context) ([]domain.RegulationAnalysis, error) {
	query, args, err := selectQuery().OrderBy("severity_score DESC", "processed_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	var result []domain.RegulationAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		result = append(result, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

func upsertQuery(a domain.RegulationAnalysis) (string, []interface{}, error) {
	actions, err := json.Marshal(nonNil(a.ActionItems))
	if err != nil {
		return "", nil, fmt.Errorf("encode action items: %w", err)
	}
	deadlines, err := json.Marshal(nonNil(a.ComplianceDeadlines))
	if err != nil {
		return "", nil, fmt.Errorf("encode deadlines: %w", err)
	}

	areas := make([]string, len(a.BusinessImpactAreas))
	for i, area := range a.BusinessImpactAreas {
		areas[i] = string(area)
	}

	query, args, err := psql.Insert(analysesTable).
		Columns(analysisColumns...).
		Values(
			a.ID,
			a.Title,
			a.SeverityScore,
			string(a.RegulationType),
			pq.StringArray(areas),
			a.EstimatedPenalty,
			a.ImplementationTimelineDays,
			a.PlainEnglishSummary,
			a.BusinessImpactSummary,
			pq.StringArray(nonNil(a.KeyRequirements)),
			string(actions),
			string(deadlines),
			a.Confidence,
			pq.StringArray(nonNil(a.Warnings)),
			a.OriginalURL,
			a.Source,
			a.PublishedAt,
			a.ProcessedAt,
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert: %w", err)
	}
	return query, args, nil
}

func selectQuery() sq.SelectBuilder {
	return psql.Select(analysisColumns...).From(analysesTable)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (domain.RegulationAnalysis, error) {
	var (
		a         domain.RegulationAnalysis
		regType   string
		areas     pq.StringArray
		reqs      pq.StringArray
		warnings  pq.StringArray
		actions   []byte
		deadlines []byte
	)

	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.SeverityScore,
		&regType,
		&areas,
		&a.EstimatedPenalty,
		&a.ImplementationTimelineDays,
		&a.PlainEnglishSummary,
		&a.BusinessImpactSummary,
		&reqs,
		&actions,
		&deadlines,
		&a.Confidence,
		&warnings,
		&a.OriginalURL,
		&a.Source,
		&a.PublishedAt,
		&a.ProcessedAt,
	); err != nil {
		return domain.RegulationAnalysis{}, err
	}

	a.RegulationType = domain.RegulationType(regType)
	impact := make([]domain.ImpactArea, len(areas))
	for i, v := range areas {
		impact[i] = domain.ImpactArea(v)
	}
	a.BusinessImpactAreas = domain.NewImpactAreas(impact...)
	a.KeyRequirements = []string(reqs)
	if len(warnings) > 0 {
		a.Warnings = []string(warnings)
	}

	if err := json.Unmarshal(actions, &a.ActionItems); err != nil {
		return domain.RegulationAnalysis{}, fmt.Errorf("decode action items: %w", err)
	}
	if err := json.Unmarshal(deadlines, &a.ComplianceDeadlines); err != nil {
		return domain.RegulationAnalysis{}, fmt.Errorf("decode deadlines: %w", err)
	}
	return a, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
