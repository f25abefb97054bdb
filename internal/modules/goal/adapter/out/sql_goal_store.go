package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"readinglist/internal/modules/goal/domain"
	goalout "readinglist/internal/modules/goal/port/out"
	"readinglist/internal/platform/database"
	apperrors "readinglist/internal/platform/errors"
)

const goalColumns = `rg.id, rg.goal_name, rg.description, rg.start_date, rg.deadline, rg.target_books, rg.target_pages, rg.is_completed`

type SQLGoalStore struct {
	db *database.DB
}

func NewSQLGoalStore(db *database.DB) goalout.GoalStore {
	return &SQLGoalStore{db: db}
}

func (s *SQLGoalStore) ActiveGoals(ctx context.Context) ([]domain.Goal, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+goalColumns+`
FROM reading_goals AS rg
WHERE rg.is_completed = ?
ORDER BY rg.deadline ASC, rg.id ASC`, false)
	if err != nil {
		return nil, database.Classify(err, "query active goals")
	}
	return collectGoals(rows)
}

func (s *SQLGoalStore) ProgressCounts(ctx context.Context, goalID int64) (domain.Goal, int, int, error) {
	const stmt = `
SELECT ` + goalColumns + `,
  COUNT(gb.book_isbn) AS books_added,
  COALESCE(SUM(COALESCE(b.pages, 0)), 0) AS total_pages
FROM reading_goals AS rg
LEFT JOIN goal_books AS gb ON gb.goal_id = rg.id
LEFT JOIN books AS b ON b.isbn = gb.book_isbn
WHERE rg.id = ?
GROUP BY rg.id, rg.goal_name, rg.description, rg.start_date, rg.deadline,
  rg.target_books, rg.target_pages, rg.is_completed`
	var booksAdded, totalPages int
	goal, err := scanGoal(s.db.QueryRow(ctx, stmt, goalID), &booksAdded, &totalPages)
	if err != nil {
		return domain.Goal{}, 0, 0, database.Classify(err, fmt.Sprintf("goal %d progress", goalID))
	}
	return goal, booksAdded, totalPages, nil
}

func (s *SQLGoalStore) Create(ctx context.Context, goal domain.Goal) (int64, error) {
	const stmt = `
INSERT INTO reading_goals (goal_name, description, start_date, deadline, target_books, target_pages, is_completed)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`
	var id int64
	err := s.db.QueryRow(ctx, stmt,
		goal.Name,
		nullString(goal.Description),
		database.Date(goal.StartDate),
		database.Date(goal.Deadline),
		nullInt(goal.TargetBooks),
		nullInt(goal.TargetPages),
		goal.Completed,
	).Scan(&id)
	if err != nil {
		return 0, database.Classify(err, "insert goal")
	}
	return id, nil
}

func (s *SQLGoalStore) AddBook(ctx context.Context, goalID int64, isbn string) error {
	_, err := s.db.Exec(ctx, `INSERT INTO goal_books (goal_id, book_isbn) VALUES (?, ?)`, goalID, isbn)
	if err != nil {
		return database.Classify(err, fmt.Sprintf("link book %s to goal %d", isbn, goalID))
	}
	return nil
}

func (s *SQLGoalStore) MarkComplete(ctx context.Context, goalID int64) error {
	res, err := s.db.Exec(ctx, `UPDATE reading_goals SET is_completed = ? WHERE id = ?`, true, goalID)
	if err != nil {
		return database.Classify(err, fmt.Sprintf("complete goal %d", goalID))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return database.Classify(err, fmt.Sprintf("complete goal %d", goalID))
	}
	if n == 0 {
		return fmt.Errorf("goal %d: %w", goalID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *SQLGoalStore) DueBetween(ctx context.Context, from, to time.Time) ([]domain.Goal, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+goalColumns+`
FROM reading_goals AS rg
WHERE rg.is_completed = ? AND rg.deadline >= ? AND rg.deadline <= ?
ORDER BY rg.deadline ASC, rg.id ASC`, false, database.Date(from), database.Date(to))
	if err != nil {
		return nil, database.Classify(err, "query upcoming goals")
	}
	return collectGoals(rows)
}

func (s *SQLGoalStore) Books(ctx context.Context, goalID int64) ([]domain.GoalBook, error) {
	rows, err := s.db.Query(ctx, `
SELECT b.isbn, b.title, b.pages
FROM goal_books AS gb
JOIN books AS b ON b.isbn = gb.book_isbn
WHERE gb.goal_id = ?
ORDER BY b.title`, goalID)
	if err != nil {
		return nil, database.Classify(err, fmt.Sprintf("query goal %d books", goalID))
	}
	defer rows.Close()

	var out []domain.GoalBook
	for rows.Next() {
		var (
			b     domain.GoalBook
			pages sql.NullInt64
		)
		if err := rows.Scan(&b.ISBN, &b.Title, &pages); err != nil {
			return nil, database.Classify(err, "scan goal book")
		}
		b.Pages = intPtr(pages)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify(err, "iterate goal books")
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner, extra ...any) (domain.Goal, error) {
	var (
		g               domain.Goal
		desc            sql.NullString
		start, deadline string
		books, pages    sql.NullInt64
	)
	dest := append([]any{&g.ID, &g.Name, &desc, &start, &deadline, &books, &pages, &g.Completed}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.Goal{}, err
	}
	var err error
	if g.StartDate, err = database.ParseTime(start); err != nil {
		return domain.Goal{}, fmt.Errorf("goal %d start date: %w", g.ID, err)
	}
	if g.Deadline, err = database.ParseTime(deadline); err != nil {
		return domain.Goal{}, fmt.Errorf("goal %d deadline: %w", g.ID, err)
	}
	g.Description = desc.String
	g.TargetBooks = intPtr(books)
	g.TargetPages = intPtr(pages)
	return g, nil
}

func collectGoals(rows *sql.Rows) ([]domain.Goal, error) {
	defer rows.Close()
	var out []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, database.Classify(err, "scan goal")
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify(err, "iterate goals")
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
