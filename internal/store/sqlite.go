package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"trade-planner/internal/models"
)

// SQLiteStore implements Store backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trade_plans (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		bias TEXT NOT NULL,
		timeframe TEXT NOT NULL,
		entry_price REAL NOT NULL,
		stop_price REAL NOT NULL,
		target_price REAL NOT NULL,
		invalidation_price REAL,
		risk_reward REAL NOT NULL,
		expected_move_pct REAL,
		max_loss_pct REAL,
		quality TEXT NOT NULL,
		vehicle TEXT NOT NULL,
		option_delta_low REAL,
		option_delta_high REAL,
		option_dte_min INTEGER,
		option_dte_max INTEGER,
		option_note TEXT,
		primary_signal TEXT,
		supporting_signals TEXT,
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_plans_symbol ON trade_plans(symbol);
	CREATE INDEX IF NOT EXISTS idx_plans_status ON trade_plans(status);

	CREATE TABLE IF NOT EXISTS suppressions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		code TEXT NOT NULL,
		message TEXT,
		quality TEXT,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_suppressions_symbol ON suppressions(symbol);

	CREATE TABLE IF NOT EXISTS watchlist (
		symbol TEXT PRIMARY KEY,
		added_at TIMESTAMP NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SavePlan saves a trade plan to the database.
func (s *SQLiteStore) SavePlan(ctx context.Context, plan *models.TradePlan) error {
	var deltaLow, deltaHigh sql.NullFloat64
	var dteMin, dteMax sql.NullInt64
	var note sql.NullString
	if plan.Option != nil {
		deltaLow = sql.NullFloat64{Float64: plan.Option.DeltaLow, Valid: true}
		deltaHigh = sql.NullFloat64{Float64: plan.Option.DeltaHigh, Valid: true}
		dteMin = sql.NullInt64{Int64: int64(plan.Option.DTEMin), Valid: true}
		dteMax = sql.NullInt64{Int64: int64(plan.Option.DTEMax), Valid: true}
		note = sql.NullString{String: plan.Option.Note, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trade_plans (
			id, symbol, bias, timeframe, entry_price, stop_price, target_price,
			invalidation_price, risk_reward, expected_move_pct, max_loss_pct,
			quality, vehicle, option_delta_low, option_delta_high,
			option_dte_min, option_dte_max, option_note,
			primary_signal, supporting_signals, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, plan.ID, plan.Symbol, plan.Bias, plan.Timeframe, plan.EntryPrice, plan.StopPrice,
		plan.TargetPrice, plan.InvalidationPrice, plan.RiskRewardRatio, plan.ExpectedMovePercent,
		plan.MaxLossPercent, plan.Quality, plan.Vehicle, deltaLow, deltaHigh,
		dteMin, dteMax, note, plan.PrimarySignal,
		strings.Join(plan.SupportingSignals, ","), plan.Status, plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save trade plan: %w", err)
	}
	return nil
}

// GetPlans retrieves trade plans matching the filter, newest first.
func (s *SQLiteStore) GetPlans(ctx context.Context, filter PlanFilter) ([]models.TradePlan, error) {
	query := `SELECT id, symbol, bias, timeframe, entry_price, stop_price, target_price,
		invalidation_price, risk_reward, expected_move_pct, max_loss_pct, quality, vehicle,
		option_delta_low, option_delta_high, option_dte_min, option_dte_max, option_note,
		primary_signal, supporting_signals, status, created_at
		FROM trade_plans WHERE 1=1`
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade plans: %w", err)
	}
	defer rows.Close()

	var plans []models.TradePlan
	for rows.Next() {
		var p models.TradePlan
		var deltaLow, deltaHigh sql.NullFloat64
		var dteMin, dteMax sql.NullInt64
		var note sql.NullString
		var supporting string

		if err := rows.Scan(&p.ID, &p.Symbol, &p.Bias, &p.Timeframe, &p.EntryPrice,
			&p.StopPrice, &p.TargetPrice, &p.InvalidationPrice, &p.RiskRewardRatio,
			&p.ExpectedMovePercent, &p.MaxLossPercent, &p.Quality, &p.Vehicle,
			&deltaLow, &deltaHigh, &dteMin, &dteMax, &note,
			&p.PrimarySignal, &supporting, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade plan: %w", err)
		}

		if deltaLow.Valid {
			p.Option = &models.OptionParams{
				DeltaLow:  deltaLow.Float64,
				DeltaHigh: deltaHigh.Float64,
				DTEMin:    int(dteMin.Int64),
				DTEMax:    int(dteMax.Int64),
				Note:      note.String,
			}
		}
		if supporting != "" {
			p.SupportingSignals = strings.Split(supporting, ",")
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdatePlanStatus updates the lifecycle status of a stored plan.
func (s *SQLiteStore) UpdatePlanStatus(ctx context.Context, planID string, status models.PlanStatus) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE trade_plans SET status = ? WHERE id = ?", status, planID)
	if err != nil {
		return fmt.Errorf("failed to update plan status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("plan %s not found", planID)
	}
	return nil
}

// SaveSuppressions records every suppression reason from a result.
func (s *SQLiteStore) SaveSuppressions(ctx context.Context, result *models.RiskAnalysisResult) error {
	if len(result.AllSuppressions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, reason := range result.AllSuppressions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO suppressions (symbol, code, message, quality, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, result.Symbol, reason.Code, reason.Message, result.Assessment.Quality, result.Assessment.Timestamp); err != nil {
			return fmt.Errorf("failed to save suppression: %w", err)
		}
	}
	return tx.Commit()
}

// GetSuppressions returns recorded suppressions, newest first.
func (s *SQLiteStore) GetSuppressions(ctx context.Context, symbol string, limit int) ([]SuppressionRecord, error) {
	query := "SELECT symbol, code, message, quality, created_at FROM suppressions WHERE 1=1"
	args := []interface{}{}
	if symbol != "" {
		query += " AND symbol = ?"
		args = append(args, symbol)
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppressions: %w", err)
	}
	defer rows.Close()

	var records []SuppressionRecord
	for rows.Next() {
		var r SuppressionRecord
		if err := rows.Scan(&r.Symbol, &r.Code, &r.Message, &r.Quality, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suppression: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// AddToWatchlist adds a symbol to the watchlist.
func (s *SQLiteStore) AddToWatchlist(ctx context.Context, symbol string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO watchlist (symbol, added_at) VALUES (?, ?)",
		symbol, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add to watchlist: %w", err)
	}
	return nil
}

// RemoveFromWatchlist removes a symbol from the watchlist.
func (s *SQLiteStore) RemoveFromWatchlist(ctx context.Context, symbol string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM watchlist WHERE symbol = ?", symbol)
	if err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	return nil
}

// GetWatchlist returns all watched symbols in alphabetical order.
func (s *SQLiteStore) GetWatchlist(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT symbol FROM watchlist ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist: %w", err)
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
