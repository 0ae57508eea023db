package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/models"
)

const createBookingsTable = `CREATE TABLE IF NOT EXISTS bookings (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL,
	time_slot TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

type BookingSQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite abre (ou cria) o arquivo e garante a tabela bookings.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	if path == ":memory:" {
		dsn = "file::memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(createBookingsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

func NewBookingSQLiteRepository(db *sql.DB) *BookingSQLiteRepository {
	return &BookingSQLiteRepository{db: db}
}

func (r *BookingSQLiteRepository) List(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT seq, id, name, email, phone, message, date, time_slot, created_at
		FROM bookings
		ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		var (
			b       models.Booking
			created string
		)
		if err := rows.Scan(
			&b.Seq, &b.ID, &b.Name, &b.Email, &b.Phone,
			&b.Message, &b.Date, &b.TimeSlot, &created,
		); err != nil {
			return nil, err
		}

		b.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("%w: created_at %q", domain.ErrStoreCorrupt, created)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

const insertBooking = `
	INSERT INTO bookings (id, name, email, phone, message, date, time_slot, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, b *models.Booking) error {
	res, err := db.ExecContext(ctx, insertBooking,
		b.ID, b.Name, b.Email, b.Phone, b.Message,
		b.Date, b.TimeSlot, b.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	if seq, err := res.LastInsertId(); err == nil {
		b.Seq = uint(seq)
	}
	return nil
}

func (r *BookingSQLiteRepository) Append(ctx context.Context, b *models.Booking) error {
	return insert(ctx, r.db, b)
}

// AppendIfSlotFree roda checagem e insert na mesma transação; com uma única
// conexão aberta as transações ficam serializadas.
func (r *BookingSQLiteRepository) AppendIfSlotFree(ctx context.Context, b *models.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE date = ? AND time_slot = ?`,
		b.Date, b.TimeSlot,
	).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrSlotConflict
	}

	if err := insert(ctx, tx, b); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *BookingSQLiteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ domain.Repository = (*BookingSQLiteRepository)(nil)
