package out

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"readinglist/internal/modules/readinglist/domain"
	listout "readinglist/internal/modules/readinglist/port/out"
	"readinglist/internal/platform/config"
	"readinglist/internal/platform/database"
	apperrors "readinglist/internal/platform/errors"
)

type SQLEntryStore struct {
	db *database.DB
}

func NewSQLEntryStore(db *database.DB) listout.EntryStore {
	return &SQLEntryStore{db: db}
}

// authorsExpr aggregates a book's author names into one column.
func (s *SQLEntryStore) authorsExpr() string {
	agg := `GROUP_CONCAT(a.full_name, ', ' ORDER BY a.full_name)`
	if s.db.Dialect() == config.DriverPostgres {
		agg = `string_agg(a.full_name, ', ' ORDER BY a.full_name)`
	}
	return `(SELECT ` + agg + ` FROM book_authors AS ba
    JOIN authors AS a ON a.id = ba.author_id
    WHERE ba.book_isbn = b.isbn)`
}

func (s *SQLEntryStore) Entries(ctx context.Context, filter listout.EntryFilter) ([]domain.Entry, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		where = append(where, "ub.reading_status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.RatedOnly {
		where = append(where, "ub.personal_rating IS NOT NULL")
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ub.id, ub.book_isbn, ub.reading_status, ub.personal_rating, ub.personal_notes,
  ub.date_started, ub.updated_at, b.title, ` + s.authorsExpr() + `, b.pages
FROM user_books AS ub
JOIN books AS b ON b.isbn = ub.book_isbn`)
	if len(where) > 0 {
		sb.WriteString("\nWHERE " + strings.Join(where, " AND "))
	}
	switch filter.Order {
	case listout.OrderRating:
		sb.WriteString("\nORDER BY CASE WHEN ub.personal_rating IS NULL THEN 1 ELSE 0 END, ub.personal_rating DESC, ub.updated_at DESC, ub.id DESC")
	default:
		sb.WriteString("\nORDER BY ub.updated_at DESC, ub.id DESC")
	}
	if filter.Limit > 0 {
		sb.WriteString("\nLIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, database.Classify(err, "query reading list")
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, database.Classify(err, "scan reading list entry")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify(err, "iterate reading list")
	}
	return out, nil
}

func (s *SQLEntryStore) Insert(ctx context.Context, isbn string, status domain.Status, at time.Time) (int64, error) {
	var id int64
	stamp := database.Timestamp(at)
	err := s.db.QueryRow(ctx, `
INSERT INTO user_books (book_isbn, reading_status, date_started, updated_at)
VALUES (?, ?, ?, ?)
RETURNING id`, isbn, string(status), stamp, stamp).Scan(&id)
	if err != nil {
		return 0, database.Classify(err, fmt.Sprintf("list book %s", isbn))
	}
	return id, nil
}

func (s *SQLEntryStore) UpdateStatus(ctx context.Context, id int64, status domain.Status, at time.Time) error {
	stamp := database.Timestamp(at)
	query := `UPDATE user_books SET reading_status = ?, updated_at = ? WHERE id = ?`
	args := []any{string(status), stamp, id}
	if status == domain.StatusCurrentlyReading {
		query = `UPDATE user_books SET reading_status = ?, updated_at = ?, date_started = ? WHERE id = ?`
		args = []any{string(status), stamp, stamp, id}
	}
	res, err := s.db.Exec(ctx, query, args...)
	return s.affected(res, err, fmt.Sprintf("update entry %d status", id))
}

func (s *SQLEntryStore) Rate(ctx context.Context, id int64, rating int, notes *string, at time.Time) error {
	query := `UPDATE user_books SET personal_rating = ?, updated_at = ? WHERE id = ?`
	args := []any{rating, database.Timestamp(at), id}
	if notes != nil {
		query = `UPDATE user_books SET personal_rating = ?, personal_notes = ?, updated_at = ? WHERE id = ?`
		args = []any{rating, sql.NullString{String: *notes, Valid: *notes != ""}, database.Timestamp(at), id}
	}
	res, err := s.db.Exec(ctx, query, args...)
	return s.affected(res, err, fmt.Sprintf("rate entry %d", id))
}

func (s *SQLEntryStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.Exec(ctx, `DELETE FROM user_books WHERE id = ?`, id)
	return s.affected(res, err, fmt.Sprintf("remove entry %d", id))
}

// affected turns an update that touched no row into ErrNotFound.
func (s *SQLEntryStore) affected(res sql.Result, err error, op string) error {
	if err != nil {
		return database.Classify(err, op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return database.Classify(err, op)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return nil
}

func scanEntry(rows *sql.Rows) (domain.Entry, error) {
	var (
		e                domain.Entry
		status           string
		rating, pages    sql.NullInt64
		notes, authors   sql.NullString
		started, updated string
	)
	if err := rows.Scan(&e.ID, &e.ISBN, &status, &rating, &notes, &started, &updated, &e.Title, &authors, &pages); err != nil {
		return domain.Entry{}, err
	}
	var err error
	if e.DateStarted, err = database.ParseTime(started); err != nil {
		return domain.Entry{}, fmt.Errorf("entry %d date_started: %w", e.ID, err)
	}
	if e.UpdatedAt, err = database.ParseTime(updated); err != nil {
		return domain.Entry{}, fmt.Errorf("entry %d updated_at: %w", e.ID, err)
	}
	e.Status = domain.Status(status)
	e.Notes = notes.String
	e.Authors = authors.String
	if rating.Valid {
		v := int(rating.Int64)
		e.Rating = &v
	}
	if pages.Valid {
		v := int(pages.Int64)
		e.Pages = &v
	}
	return e, nil
}
