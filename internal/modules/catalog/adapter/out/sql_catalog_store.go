package out

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"readinglist/internal/modules/catalog/domain"
	catalogout "readinglist/internal/modules/catalog/port/out"
	"readinglist/internal/platform/database"
)

const (
	bookColumns     = `b.isbn, b.title, b.publication_year, b.pages, b.description, b.added_at`
	completedStatus = "completed"
)

type SQLCatalogStore struct {
	db *database.DB
}

func NewSQLCatalogStore(db *database.DB) catalogout.CatalogStore {
	return &SQLCatalogStore{db: db}
}

func (s *SQLCatalogStore) FindBooks(ctx context.Context, filter catalogout.BookFilter) ([]domain.Book, error) {
	var (
		where []string
		args  []any
	)
	if term := strings.TrimSpace(filter.Term); term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		where = append(where, `(LOWER(b.title) LIKE ? ESCAPE '\'
  OR LOWER(b.isbn) LIKE ? ESCAPE '\'
  OR EXISTS (
    SELECT 1 FROM book_authors AS ba
    JOIN authors AS a ON a.id = ba.author_id
    WHERE ba.book_isbn = b.isbn AND LOWER(a.full_name) LIKE ? ESCAPE '\'))`)
		args = append(args, pattern, pattern, pattern)
	}
	if filter.SubjectID != 0 {
		where = append(where, `EXISTS (SELECT 1 FROM book_subjects AS bs WHERE bs.book_isbn = b.isbn AND bs.subject_id = ?)`)
		args = append(args, filter.SubjectID)
	}
	if filter.AuthorID != 0 {
		where = append(where, `EXISTS (SELECT 1 FROM book_authors AS ba WHERE ba.book_isbn = b.isbn AND ba.author_id = ?)`)
		args = append(args, filter.AuthorID)
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + bookColumns + "\nFROM books AS b")
	if len(where) > 0 {
		sb.WriteString("\nWHERE " + strings.Join(where, "\n  AND "))
	}
	if filter.Recent {
		sb.WriteString("\nORDER BY b.added_at DESC, b.isbn ASC")
	} else {
		sb.WriteString("\nORDER BY b.title ASC, b.isbn ASC")
	}
	if filter.Limit > 0 {
		sb.WriteString("\nLIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, database.Classify(err, "query books")
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *SQLCatalogStore) GetBook(ctx context.Context, isbn string) (domain.Book, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books AS b WHERE b.isbn = ?`, isbn)
	book, err := scanBook(row)
	if err != nil {
		return domain.Book{}, database.Classify(err, fmt.Sprintf("book %s", isbn))
	}
	books := []domain.Book{book}
	if err := s.attach(ctx, books); err != nil {
		return domain.Book{}, err
	}
	return books[0], nil
}

func (s *SQLCatalogStore) InsertBook(ctx context.Context, book domain.Book) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO books (isbn, title, publication_year, pages, description, added_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		book.ISBN,
		book.Title,
		nullInt(book.PublicationYear),
		nullInt(book.Pages),
		sql.NullString{String: book.Description, Valid: book.Description != ""},
		database.Timestamp(book.AddedAt),
	)
	if err != nil {
		return database.Classify(err, fmt.Sprintf("insert book %s", book.ISBN))
	}
	return nil
}

func (s *SQLCatalogStore) EnsureAuthor(ctx context.Context, name string) (int64, error) {
	return s.ensure(ctx, "authors", "full_name", name)
}

func (s *SQLCatalogStore) EnsureSubject(ctx context.Context, name string) (int64, error) {
	return s.ensure(ctx, "subjects", "subject_name", name)
}

func (s *SQLCatalogStore) ensure(ctx context.Context, table, column, name string) (int64, error) {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?) ON CONFLICT (%s) DO NOTHING`, table, column, column), name)
	if err != nil {
		return 0, database.Classify(err, "insert "+table)
	}
	var id int64
	if err := s.db.QueryRow(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE %s = ?`, table, column), name).Scan(&id); err != nil {
		return 0, database.Classify(err, "lookup "+table)
	}
	return id, nil
}

func (s *SQLCatalogStore) LinkAuthor(ctx context.Context, isbn string, authorID int64) error {
	_, err := s.db.Exec(ctx, `INSERT INTO book_authors (book_isbn, author_id) VALUES (?, ?)`, isbn, authorID)
	return database.Classify(err, fmt.Sprintf("link author %d to %s", authorID, isbn))
}

func (s *SQLCatalogStore) LinkSubject(ctx context.Context, isbn string, subjectID int64) error {
	_, err := s.db.Exec(ctx, `INSERT INTO book_subjects (book_isbn, subject_id) VALUES (?, ?)`, isbn, subjectID)
	return database.Classify(err, fmt.Sprintf("link subject %d to %s", subjectID, isbn))
}

func (s *SQLCatalogStore) Authors(ctx context.Context, nameLike string) ([]domain.Author, error) {
	query := `SELECT id, full_name FROM authors`
	var args []any
	if nameLike = strings.TrimSpace(nameLike); nameLike != "" {
		query += ` WHERE LOWER(full_name) LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(strings.ToLower(nameLike))+"%")
	}
	query += ` ORDER BY full_name`
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(err, "query authors")
	}
	defer rows.Close()
	var out []domain.Author
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, database.Classify(err, "scan author")
		}
		out = append(out, a)
	}
	return out, database.Classify(rows.Err(), "iterate authors")
}

func (s *SQLCatalogStore) Subjects(ctx context.Context) ([]domain.Subject, error) {
	rows, err := s.db.Query(ctx, `SELECT id, subject_name FROM subjects ORDER BY subject_name`)
	if err != nil {
		return nil, database.Classify(err, "query subjects")
	}
	defer rows.Close()
	var out []domain.Subject
	for rows.Next() {
		var sub domain.Subject
		if err := rows.Scan(&sub.ID, &sub.Name); err != nil {
			return nil, database.Classify(err, "scan subject")
		}
		out = append(out, sub)
	}
	return out, database.Classify(rows.Err(), "iterate subjects")
}

func (s *SQLCatalogStore) MostReadAuthors(ctx context.Context, limit int) ([]domain.Tally, error) {
	rows, err := s.db.Query(ctx, `
SELECT a.id, a.full_name, COUNT(*) AS n
FROM authors AS a
JOIN book_authors AS ba ON ba.author_id = a.id
JOIN user_books AS ub ON ub.book_isbn = ba.book_isbn
WHERE ub.reading_status = ?
GROUP BY a.id, a.full_name
ORDER BY n DESC, a.full_name ASC
LIMIT ?`, completedStatus, limit)
	if err != nil {
		return nil, database.Classify(err, "query most read authors")
	}
	return collectTallies(rows)
}

func (s *SQLCatalogStore) SubjectBookCounts(ctx context.Context) ([]domain.Tally, error) {
	rows, err := s.db.Query(ctx, `
SELECT s.id, s.subject_name, COUNT(bs.book_isbn) AS n
FROM subjects AS s
LEFT JOIN book_subjects AS bs ON bs.subject_id = s.id
GROUP BY s.id, s.subject_name
ORDER BY s.subject_name ASC`)
	if err != nil {
		return nil, database.Classify(err, "query subject counts")
	}
	return collectTallies(rows)
}

func (s *SQLCatalogStore) TopListedSubjects(ctx context.Context, limit int) ([]domain.Tally, error) {
	rows, err := s.db.Query(ctx, `
SELECT s.id, s.subject_name, COUNT(*) AS n
FROM subjects AS s
JOIN book_subjects AS bs ON bs.subject_id = s.id
JOIN user_books AS ub ON ub.book_isbn = bs.book_isbn
GROUP BY s.id, s.subject_name
ORDER BY n DESC, s.subject_name ASC
LIMIT ?`, limit)
	if err != nil {
		return nil, database.Classify(err, "query top subjects")
	}
	return collectTallies(rows)
}

// attach fills Authors and Subjects for books in two queries.
func (s *SQLCatalogStore) attach(ctx context.Context, books []domain.Book) error {
	if len(books) == 0 {
		return nil
	}
	index := make(map[string]int, len(books))
	args := make([]any, 0, len(books))
	for i, b := range books {
		index[b.ISBN] = i
		args = append(args, b.ISBN)
	}
	in := strings.TrimSuffix(strings.Repeat("?, ", len(books)), ", ")

	relations := []struct {
		query string
		add   func(b *domain.Book, name string)
	}{
		{
			query: `SELECT ba.book_isbn, a.full_name FROM book_authors AS ba
JOIN authors AS a ON a.id = ba.author_id
WHERE ba.book_isbn IN (` + in + `) ORDER BY a.full_name`,
			add: func(b *domain.Book, name string) { b.Authors = append(b.Authors, name) },
		},
		{
			query: `SELECT bs.book_isbn, s.subject_name FROM book_subjects AS bs
JOIN subjects AS s ON s.id = bs.subject_id
WHERE bs.book_isbn IN (` + in + `) ORDER BY s.subject_name`,
			add: func(b *domain.Book, name string) { b.Subjects = append(b.Subjects, name) },
		},
	}
	for _, rel := range relations {
		rows, err := s.db.Query(ctx, rel.query, args...)
		if err != nil {
			return database.Classify(err, "query book relations")
		}
		for rows.Next() {
			var isbn, name string
			if err := rows.Scan(&isbn, &name); err != nil {
				rows.Close()
				return database.Classify(err, "scan book relation")
			}
			if i, ok := index[isbn]; ok {
				rel.add(&books[i], name)
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return database.Classify(err, "iterate book relations")
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (domain.Book, error) {
	var (
		b           domain.Book
		year, pages sql.NullInt64
		desc        sql.NullString
		added       string
	)
	if err := row.Scan(&b.ISBN, &b.Title, &year, &pages, &desc, &added); err != nil {
		return domain.Book{}, err
	}
	addedAt, err := database.ParseTime(added)
	if err != nil {
		return domain.Book{}, fmt.Errorf("book %s added_at: %w", b.ISBN, err)
	}
	b.AddedAt = addedAt
	b.PublicationYear = intPtr(year)
	b.Pages = intPtr(pages)
	b.Description = desc.String
	return b, nil
}

func collectBooks(rows *sql.Rows) ([]domain.Book, error) {
	defer rows.Close()
	var out []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, database.Classify(err, "scan book")
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify(err, "iterate books")
	}
	return out, nil
}

func collectTallies(rows *sql.Rows) ([]domain.Tally, error) {
	defer rows.Close()
	var out []domain.Tally
	for rows.Next() {
		var t domain.Tally
		if err := rows.Scan(&t.ID, &t.Name, &t.Count); err != nil {
			return nil, database.Classify(err, "scan tally")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify(err, "iterate tallies")
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

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
