package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"

	"github.com/cenkalti/backoff/v5"
)

const (
	tableAuthors string = "authors"
	tableBooks   string = "books"
)

type Sql interface {
	AuthorsList(ctx context.Context) ([]*data.Author, error)
	AuthorRead(ctx context.Context, id int64) (*data.Author, error)
	AuthorCreate(ctx context.Context, authorPartial data.AuthorPartial) (*data.Author, error)
	AuthorUpdate(ctx context.Context, id int64, authorPartial data.AuthorPartial) (*data.Author, error)
	AuthorDelete(ctx context.Context, id int64) error
	BooksList(ctx context.Context) ([]*data.Book, error)
	BookRead(ctx context.Context, id int64) (*data.Book, error)
	BookCreate(ctx context.Context, bookPartial data.BookPartial) (*data.Book, error)
	BookUpdate(ctx context.Context, id int64, bookPartial data.BookPartial) (*data.Book, error)
	BookDelete(ctx context.Context, id int64) error
}

type mySql struct {
	sync.RWMutex
	config struct {
		Hostname       string        `json:"hostname"`
		Port           string        `json:"port"`
		Username       string        `json:"username"`
		Password       string        `json:"password"`
		Database       string        `json:"database"`
		ConnectTimeout time.Duration `json:"connect_timeout"`
		QueryTimeout   time.Duration `json:"query_timeout"`
	}
	*sql.DB
	utilities.Logger
	opened bool
}

func NewMySql(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Sql
} {
	m := &mySql{Logger: utilities.NewLogger()}
	for _, parameter := range parameters {
		switch v := parameter.(type) {
		case utilities.Logger:
			m.Logger = v
		}
	}
	return m
}

func (s *mySql) Configure(envs map[string]string) error {
	s.config.ConnectTimeout = 30 * time.Second
	if databaseHost := envs["DATABASE_HOST"]; databaseHost != "" {
		s.config.Hostname = databaseHost
	}
	if databasePort := envs["DATABASE_PORT"]; databasePort != "" {
		s.config.Port = databasePort
	}
	if database := envs["DATABASE_NAME"]; database != "" {
		s.config.Database = database
	}
	if username := envs["DATABASE_USER"]; username != "" {
		s.config.Username = username
	}
	if password := envs["DATABASE_PASSWORD"]; password != "" {
		s.config.Password = password
	}
	if _, ok := envs["DATABASE_CONNECT_TIMEOUT"]; ok {
		i, _ := strconv.ParseInt(envs["DATABASE_CONNECT_TIMEOUT"], 10, 64)
		s.config.ConnectTimeout = time.Duration(i) * time.Second
	}
	if _, ok := envs["DATABASE_QUERY_TIMEOUT"]; ok {
		i, _ := strconv.ParseInt(envs["DATABASE_QUERY_TIMEOUT"], 10, 64)
		s.config.QueryTimeout = time.Duration(i) * time.Second
	}
	return nil
}

func (s *mySql) Open(ctx context.Context) error {
	//parseTime is required so DATE/DATETIME columns scan into time.Time;
	// clientFoundRows makes RowsAffected count matched rows so an update
	// that changes nothing isn't mistaken for a missing row
	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&clientFoundRows=true",
		s.config.Username, s.config.Password, s.config.Hostname,
		s.config.Port, s.config.Database)
	db, err := sql.Open("mysql", dataSourceName)
	if err != nil {
		return err
	}
	//the database regularly comes up after the service does, so ping
	// with exponential backoff until it's reachable or the connect
	// timeout elapses
	if _, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, db.PingContext(ctx)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(s.config.ConnectTimeout)); err != nil {
		return err
	}
	s.DB = db
	if err := s.ensureTables(ctx); err != nil {
		return err
	}
	s.opened = true
	return nil
}

func (s *mySql) Close(ctx context.Context) error {
	if !s.opened {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		s.Error(ctx, "error while closing sql: %s", err)
	}
	s.opened = false
	return nil
}

func (s *mySql) AuthorsList(ctx context.Context) ([]*data.Author, error) {
	//non-nil so an empty table serializes as [] rather than null
	authors := []*data.Author{}

	query := fmt.Sprintf(`SELECT id, name, birthday, bio, created_at,
		updated_at FROM %s ORDER BY id;`, tableAuthors)
	rows, err := s.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		author, err := authorScan(rows.Scan)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

func (s *mySql) AuthorRead(ctx context.Context, id int64) (*data.Author, error) {
	query := fmt.Sprintf(`SELECT id, name, birthday, bio, created_at,
		updated_at FROM %s WHERE id = ?;`, tableAuthors)
	row := s.QueryRowContext(ctx, query, id)
	author, err := authorScan(row.Scan)
	if err != nil {
		return nil, translateError(err, "author", id)
	}
	return author, nil
}

func (s *mySql) AuthorCreate(ctx context.Context, authorPartial data.AuthorPartial) (*data.Author, error) {
	var columns, values []string
	var args []any

	if authorPartial.Name != nil {
		args = append(args, authorPartial.Name)
		columns = append(columns, "name")
		values = append(values, "?")
	}
	if authorPartial.Birthday != nil {
		args = append(args, authorPartial.Birthday)
		columns = append(columns, "birthday")
		values = append(values, "?")
	}
	if authorPartial.Bio != nil {
		args = append(args, authorPartial.Bio)
		columns = append(columns, "bio")
		values = append(values, "?")
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableAuthors,
		strings.Join(columns, ","), strings.Join(values, ","))
	result, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "author", 0)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.AuthorRead(ctx, id)
}

func (s *mySql) AuthorUpdate(ctx context.Context, id int64, authorPartial data.AuthorPartial) (*data.Author, error) {
	var args []any
	var updates []string

	if authorPartial.Name != nil {
		args = append(args, authorPartial.Name)
		updates = append(updates, "name = ?")
	}
	if authorPartial.Birthday != nil {
		args = append(args, authorPartial.Birthday)
		updates = append(updates, "birthday = ?")
	}
	if authorPartial.Bio != nil {
		args = append(args, authorPartial.Bio)
		updates = append(updates, "bio = ?")
	}
	//updated_at is assigned explicitly so it advances even when the
	// submitted fields match the stored row
	updates = append(updates, "updated_at = CURRENT_TIMESTAMP(3)")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", tableAuthors,
		strings.Join(updates, ","))
	args = append(args, id)
	result, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "author", id)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, data.NewNotFoundError("author", id)
	}
	return s.AuthorRead(ctx, id)
}

func (s *mySql) AuthorDelete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?;`, tableAuthors)
	result, err := s.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "author", id)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return data.NewNotFoundError("author", id)
	}
	return nil
}

func (s *mySql) BooksList(ctx context.Context) ([]*data.Book, error) {
	//non-nil so an empty table serializes as [] rather than null
	books := []*data.Book{}

	query := fmt.Sprintf(`SELECT b.id, b.title, b.description,
		b.release_date, b.pages, b.author_id, a.name, b.created_at,
		b.updated_at FROM %s b LEFT JOIN %s a ON a.id = b.author_id
		ORDER BY b.id;`, tableBooks, tableAuthors)
	rows, err := s.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		book, err := bookScan(rows.Scan)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (s *mySql) BookRead(ctx context.Context, id int64) (*data.Book, error) {
	query := fmt.Sprintf(`SELECT b.id, b.title, b.description,
		b.release_date, b.pages, b.author_id, a.name, b.created_at,
		b.updated_at FROM %s b LEFT JOIN %s a ON a.id = b.author_id
		WHERE b.id = ?;`, tableBooks, tableAuthors)
	row := s.QueryRowContext(ctx, query, id)
	book, err := bookScan(row.Scan)
	if err != nil {
		return nil, translateError(err, "book", id)
	}
	return book, nil
}

func (s *mySql) BookCreate(ctx context.Context, bookPartial data.BookPartial) (*data.Book, error) {
	var columns, values []string
	var args []any

	if bookPartial.Title != nil {
		args = append(args, bookPartial.Title)
		columns = append(columns, "title")
		values = append(values, "?")
	}
	if bookPartial.Description != nil {
		args = append(args, bookPartial.Description)
		columns = append(columns, "description")
		values = append(values, "?")
	}
	if bookPartial.ReleaseDate != nil {
		args = append(args, bookPartial.ReleaseDate)
		columns = append(columns, "release_date")
		values = append(values, "?")
	}
	if bookPartial.Pages != nil {
		args = append(args, bookPartial.Pages)
		columns = append(columns, "pages")
		values = append(values, "?")
	}
	if bookPartial.AuthorId != nil {
		args = append(args, bookPartial.AuthorId)
		columns = append(columns, "author_id")
		values = append(values, "?")
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableBooks,
		strings.Join(columns, ","), strings.Join(values, ","))
	result, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "book", 0)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.BookRead(ctx, id)
}

func (s *mySql) BookUpdate(ctx context.Context, id int64, bookPartial data.BookPartial) (*data.Book, error) {
	var args []any
	var updates []string

	if bookPartial.Title != nil {
		args = append(args, bookPartial.Title)
		updates = append(updates, "title = ?")
	}
	if bookPartial.Description != nil {
		args = append(args, bookPartial.Description)
		updates = append(updates, "description = ?")
	}
	if bookPartial.ReleaseDate != nil {
		args = append(args, bookPartial.ReleaseDate)
		updates = append(updates, "release_date = ?")
	}
	if bookPartial.Pages != nil {
		args = append(args, bookPartial.Pages)
		updates = append(updates, "pages = ?")
	}
	if bookPartial.AuthorId != nil {
		args = append(args, bookPartial.AuthorId)
		updates = append(updates, "author_id = ?")
	}
	updates = append(updates, "updated_at = CURRENT_TIMESTAMP(3)")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", tableBooks,
		strings.Join(updates, ","))
	args = append(args, id)
	result, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "book", id)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, data.NewNotFoundError("book", id)
	}
	return s.BookRead(ctx, id)
}

func (s *mySql) BookDelete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?;`, tableBooks)
	result, err := s.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err, "book", id)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return data.NewNotFoundError("book", id)
	}
	return nil
}
