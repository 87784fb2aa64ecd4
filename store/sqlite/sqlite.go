// Package sqlite stores trade and banking ledgers in a SQLite database.
//
// A database is an alternative ledger source to CSV or JSON exports: records
// are imported once, then read back as wrapped.TradeLedger or
// wrapped.BankingLedger whose source is "sqlite:<path>".
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/etnz/wrapped"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// timestampFormat is the storage format of timestamps. It keeps the offset of
// the record, insights read hours and days in the zone they were booked in.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a ledger database.
type Store struct {
	// Logger receives import events, logrus' standard logger if nil.
	Logger logrus.FieldLogger

	db   *sql.DB
	path string
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: filepath.Clean(path)}
	if err := s.migrate(); err != nil {
		return nil, errors.Join(fmt.Errorf("sqlite: migrating %q: %w", path, err), db.Close())
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Source is the ledger source identity of the records read from this store.
func (s *Store) Source() string { return "sqlite:" + s.path }

func (s *Store) log() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func (s *Store) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			executed_at TEXT NOT NULL,
			isin TEXT NOT NULL,
			direction TEXT NOT NULL,
			execution_size TEXT NOT NULL,
			execution_price TEXT NOT NULL,
			execution_fee TEXT NOT NULL,
			type TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS trades_user ON trades (user_id);`,
		`CREATE TABLE IF NOT EXISTS banking (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			booking_date TEXT NOT NULL,
			amount TEXT NOT NULL,
			side TEXT NOT NULL,
			type TEXT NOT NULL,
			currency TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS banking_user ON banking (user_id);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return err
		}
	}
	return nil
}

// insert runs one prepared statement per record in a single transaction.
// Nothing is inserted if any record fails.
func insert[T any](ctx context.Context, db *sql.DB, query string, records []T, args func(T) []any) (err error) {
	if len(records) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err = stmt.ExecContext(ctx, args(r)...); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ImportTrades appends trades to the database.
func (s *Store) ImportTrades(ctx context.Context, trades []wrapped.Trade) error {
	start := time.Now()
	err := insert(ctx, s.db, `
		INSERT INTO trades (
			user_id, executed_at, isin, direction, execution_size, execution_price, execution_fee, type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, trades, func(t wrapped.Trade) []any {
		return []any{
			t.User,
			t.ExecutedAt.Format(timestampFormat),
			t.ISIN,
			string(t.Direction),
			t.Size.String(),
			t.Price.String(),
			t.Fee.String(),
			string(t.Type),
		}
	})
	if err != nil {
		return fmt.Errorf("sqlite: importing trades: %w", err)
	}
	s.log().WithFields(logrus.Fields{"source": s.Source(), "rows": len(trades), "duration": time.Since(start)}).Info("trades imported")
	return nil
}

// ImportBanking appends banking transactions to the database.
func (s *Store) ImportBanking(ctx context.Context, txs []wrapped.BankingTransaction) error {
	start := time.Now()
	err := insert(ctx, s.db, `
		INSERT INTO banking (
			user_id, booking_date, amount, side, type, currency
		) VALUES (?, ?, ?, ?, ?, ?)
	`, txs, func(t wrapped.BankingTransaction) []any {
		return []any{
			t.User,
			t.BookingDate.Format(timestampFormat),
			t.Amount.String(),
			string(t.Side),
			t.Type,
			t.Currency,
		}
	})
	if err != nil {
		return fmt.Errorf("sqlite: importing banking transactions: %w", err)
	}
	s.log().WithFields(logrus.Fields{"source": s.Source(), "rows": len(txs), "duration": time.Since(start)}).Info("banking transactions imported")
	return nil
}

// Trades reads all the trades back, in import order.
func (s *Store) Trades(ctx context.Context) (*wrapped.TradeLedger, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, executed_at, isin, direction, execution_size, execution_price, execution_fee, type
		FROM trades ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading trades: %w", err)
	}
	defer rows.Close()

	var trades []wrapped.Trade
	for rows.Next() {
		var t wrapped.Trade
		var executedAt, direction, size, price, fee, typ string
		if err := rows.Scan(&t.User, &executedAt, &t.ISIN, &direction, &size, &price, &fee, &typ); err != nil {
			return nil, fmt.Errorf("sqlite: reading trades: %w", err)
		}
		if t.ExecutedAt, err = time.Parse(timestampFormat, executedAt); err != nil {
			return nil, fmt.Errorf("sqlite: trade %d: %w: %w", len(trades), wrapped.ErrMalformedRecord, err)
		}
		if t.Direction, err = wrapped.ParseDirection(direction); err != nil {
			return nil, fmt.Errorf("sqlite: trade %d: %w: %w", len(trades), wrapped.ErrMalformedRecord, err)
		}
		if t.Size, t.Price, t.Fee, err = decimals(size, price, fee); err != nil {
			return nil, fmt.Errorf("sqlite: trade %d: %w: %w", len(trades), wrapped.ErrMalformedRecord, err)
		}
		t.Type = wrapped.TradeType(typ)
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: reading trades: %w", err)
	}
	return wrapped.NewTradeLedger(s.Source(), trades)
}

// Banking reads all the banking transactions back, in import order.
func (s *Store) Banking(ctx context.Context) (*wrapped.BankingLedger, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, booking_date, amount, side, type, currency
		FROM banking ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading banking transactions: %w", err)
	}
	defer rows.Close()

	var txs []wrapped.BankingTransaction
	for rows.Next() {
		var t wrapped.BankingTransaction
		var bookingDate, amount, side string
		if err := rows.Scan(&t.User, &bookingDate, &amount, &side, &t.Type, &t.Currency); err != nil {
			return nil, fmt.Errorf("sqlite: reading banking transactions: %w", err)
		}
		if t.BookingDate, err = time.Parse(timestampFormat, bookingDate); err != nil {
			return nil, fmt.Errorf("sqlite: banking transaction %d: %w: %w", len(txs), wrapped.ErrMalformedRecord, err)
		}
		if t.Side, err = wrapped.ParseSide(side); err != nil {
			return nil, fmt.Errorf("sqlite: banking transaction %d: %w: %w", len(txs), wrapped.ErrMalformedRecord, err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("sqlite: banking transaction %d: %w: %w", len(txs), wrapped.ErrMalformedRecord, err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: reading banking transactions: %w", err)
	}
	return wrapped.NewBankingLedger(s.Source(), txs)
}

// decimals parses the three stored decimals of a trade.
func decimals(size, price, fee string) (s, p, f decimal.Decimal, err error) {
	if s, err = decimal.NewFromString(size); err != nil {
		return
	}
	if p, err = decimal.NewFromString(price); err != nil {
		return
	}
	f, err = decimal.NewFromString(fee)
	return
}
