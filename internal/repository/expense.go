package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/expense-scanner/internal/entity"
)

// ExpenseRepository is what the pipeline needs from the history
// store: inserts for confirmed expenses and the read paths that feed
// duplicate detection, merchant matching, and category prediction.
type ExpenseRepository interface {
	Insert(ctx context.Context, e *entity.Expense) error
	// HashExists reports whether any stored expense carries the digest.
	HashExists(ctx context.Context, hashHex string) (bool, error)
	// Merchants returns the distinct merchant names in history.
	// Recomputed on every call rather than maintained incrementally;
	// the corpus doubles as the autocomplete source.
	Merchants(ctx context.Context) ([]string, error)
	// CategoriesForMerchant returns every category assignment for the
	// merchant, case-insensitive exact match, in insertion order.
	CategoriesForMerchant(ctx context.Context, merchant string) ([]string, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.Expense, error)
}

type expenseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewExpenseRepository(db *sql.DB, logger *slog.Logger) ExpenseRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &expenseRepository{db: db, logger: logger}
}

func (r *expenseRepository) Insert(ctx context.Context, e *entity.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, merchant, category, amount, tx_date, notes, file_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.Merchant, e.Category, e.Amount,
		e.TxDate.Format("2006-01-02"), e.Notes, e.FileHash,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to insert expense", "merchant", e.Merchant, "error", err)
		return fmt.Errorf("insert expense: %w", err)
	}
	r.logger.Info("expense saved",
		"id", e.ID, "merchant", e.Merchant, "amount", e.Amount, "tx_date", e.TxDate.Format("2006-01-02"))
	return nil
}

func (r *expenseRepository) HashExists(ctx context.Context, hashHex string) (bool, error) {
	if hashHex == "" {
		return false, nil
	}
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM expenses WHERE file_hash = ? LIMIT 1`, hashHex).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup file hash: %w", err)
	}
	return true, nil
}

func (r *expenseRepository) Merchants(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT merchant FROM expenses WHERE merchant != '' ORDER BY merchant`)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var merchants []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		merchants = append(merchants, m)
	}
	return merchants, rows.Err()
}

func (r *expenseRepository) CategoriesForMerchant(ctx context.Context, merchant string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category FROM expenses WHERE merchant = ? COLLATE NOCASE AND category != '' ORDER BY created_at`,
		merchant)
	if err != nil {
		return nil, fmt.Errorf("list categories for merchant: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *expenseRepository) List(ctx context.Context, from, to *time.Time) ([]*entity.Expense, error) {
	q := `SELECT id, merchant, category, amount, tx_date, notes, file_hash, created_at FROM expenses`
	var args []any
	var conds []string
	if from != nil {
		conds = append(conds, "tx_date >= ?")
		args = append(args, from.Format("2006-01-02"))
	}
	if to != nil {
		conds = append(conds, "tx_date <= ?")
		args = append(args, to.Format("2006-01-02"))
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY tx_date"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Expense
	for rows.Next() {
		var (
			e         entity.Expense
			id        string
			txDate    string
			createdAt string
		)
		if err := rows.Scan(&id, &e.Merchant, &e.Category, &e.Amount, &txDate, &e.Notes, &e.FileHash, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse expense id: %w", err)
		}
		if e.TxDate, err = time.Parse("2006-01-02", txDate); err != nil {
			return nil, fmt.Errorf("parse tx_date: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
