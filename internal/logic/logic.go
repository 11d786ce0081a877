package logic

import (
	"context"
	"strconv"
	"sync"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/cache"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/sql"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"
)

const (
	counterAuthors string = "authors"
	counterBooks   string = "books"
)

// Logic owns the reload-after-write contract: every mutation persists,
// invalidates the affected caches and hands back the freshly loaded
// collection so clients never have to merge state locally
type Logic interface {
	AuthorsList(ctx context.Context) ([]*data.Author, error)
	AuthorCreate(ctx context.Context, authorPartial data.AuthorPartial) ([]*data.Author, error)
	AuthorUpdate(ctx context.Context, id int64, authorPartial data.AuthorPartial) ([]*data.Author, error)
	AuthorDelete(ctx context.Context, id int64) ([]*data.Author, error)
	BooksList(ctx context.Context) ([]*data.Book, error)
	BookCreate(ctx context.Context, bookPartial data.BookPartial) ([]*data.Book, error)
	BookUpdate(ctx context.Context, id int64, bookPartial data.BookPartial) ([]*data.Book, error)
	BookDelete(ctx context.Context, id int64) ([]*data.Book, error)
}

type logic struct {
	sync.RWMutex
	sql.Sql
	cache  cache.Cache
	config struct {
		cacheEnabled   bool
		mutateDisabled bool
	}
	utilities.Logger
	utilities.Counter
}

func NewLogic(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Logic
} {
	l := &logic{Logger: utilities.NewLogger()}
	for _, parameter := range parameters {
		switch v := parameter.(type) {
		case sql.Sql:
			l.Sql = v
		case cache.Cache:
			l.cache = v
		case utilities.Counter:
			l.Counter = v
		case utilities.Logger:
			l.Logger = v
		}
	}
	return l
}

func (l *logic) Configure(envs map[string]string) error {
	l.Lock()
	defer l.Unlock()

	if cacheEnabled, ok := envs["LOGIC_CACHE_ENABLED"]; ok {
		l.config.cacheEnabled, _ = strconv.ParseBool(cacheEnabled)
	}
	if mutateDisabled, ok := envs["MUTATE_DISABLED"]; ok {
		l.config.mutateDisabled, _ = strconv.ParseBool(mutateDisabled)
	}
	if l.config.cacheEnabled && l.cache == nil {
		l.config.cacheEnabled = false
	}
	return nil
}

func (l *logic) Open(ctx context.Context) error {
	if l.config.cacheEnabled {
		l.Info(ctx, "logic: collection cache enabled")
	}
	return nil
}

func (l *logic) Close(ctx context.Context) error {
	return nil
}

func (l *logic) incrementHit(key string) {
	if l.Counter != nil {
		l.Counter.IncrementHit(key)
	}
}

func (l *logic) incrementMiss(key string) {
	if l.Counter != nil {
		l.Counter.IncrementMiss(key)
	}
}

// invalidateAuthors drops both collections: book dtos carry the
// author's name from a read-time join, so author mutations can
// change what a cached book collection would render
func (l *logic) invalidateAuthors(ctx context.Context) {
	if !l.config.cacheEnabled {
		return
	}
	if err := l.cache.AuthorsDelete(ctx); err != nil {
		l.Error(ctx, "error while invalidating cached authors: %s", err)
	}
	if err := l.cache.BooksDelete(ctx); err != nil {
		l.Error(ctx, "error while invalidating cached books: %s", err)
	}
}

func (l *logic) invalidateBooks(ctx context.Context) {
	if !l.config.cacheEnabled {
		return
	}
	if err := l.cache.BooksDelete(ctx); err != nil {
		l.Error(ctx, "error while invalidating cached books: %s", err)
	}
}

func (l *logic) AuthorsList(ctx context.Context) ([]*data.Author, error) {
	if l.config.cacheEnabled {
		authors, err := l.cache.AuthorsRead(ctx)
		if err == nil {
			l.incrementHit(counterAuthors)
			return authors, nil
		}
		l.incrementMiss(counterAuthors)
		l.Trace(ctx, "error while reading authors from cache: %s", err)
	}
	authors, err := l.Sql.AuthorsList(ctx)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.AuthorsWrite(ctx, authors...); err != nil {
			l.Error(ctx, "error while writing authors to cache: %s", err)
		}
	}
	return authors, nil
}

func (l *logic) AuthorCreate(ctx context.Context, authorPartial data.AuthorPartial) ([]*data.Author, error) {
	if l.config.mutateDisabled {
		return nil, data.NewError(data.ErrorKindValidation, "mutation disabled")
	}
	author, err := l.Sql.AuthorCreate(ctx, authorPartial)
	if err != nil {
		return nil, err
	}
	l.Trace(ctx, "created author: %d", author.Id)
	l.invalidateAuthors(ctx)
	return l.AuthorsList(ctx)
}

func (l *logic) AuthorUpdate(ctx context.Context, id int64, authorPartial data.AuthorPartial) ([]*data.Author, error) {
	if l.config.mutateDisabled {
		return nil, data.NewError(data.ErrorKindValidation, "mutation disabled")
	}
	author, err := l.Sql.AuthorUpdate(ctx, id, authorPartial)
	if err != nil {
		return nil, err
	}
	l.Trace(ctx, "updated author: %d", author.Id)
	l.invalidateAuthors(ctx)
	return l.AuthorsList(ctx)
}

func (l *logic) AuthorDelete(ctx context.Context, id int64) ([]*data.Author, error) {
	if l.config.mutateDisabled {
		return nil, data.NewError(data.ErrorKindValidation, "mutation disabled")
	}
	if err := l.Sql.AuthorDelete(ctx, id); err != nil {
		return nil, err
	}
	l.Trace(ctx, "deleted author: %d", id)
	l.invalidateAuthors(ctx)
	return l.AuthorsList(ctx)
}

func (l *logic) BooksList(ctx context.Context) ([]*data.Book, error) {
	if l.config.cacheEnabled {
		books, err := l.cache.BooksRead(ctx)
		if err == nil {
			l.incrementHit(counterBooks)
			return books, nil
		}
		l.incrementMiss(counterBooks)
		l.Trace(ctx, "error while reading books from cache: %s", err)
	}
	books, err := l.Sql.BooksList(ctx)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.BooksWrite(ctx, books...); err != nil {
			l.Error(ctx, "error while writing books to cache: %s", err)
		}
	}
	return books, nil
}

func (l *logic) BookCreate(ctx context.Context, bookPartial data.BookPartial) ([]*data.Book, error) {
	if l.config.mutateDisabled {
		return nil, data.NewError(data.ErrorKindValidation, "mutation disabled")
	}
	book, err := l.Sql.BookCreate(ctx, bookPartial)
	if err != nil {
		return nil, err
	}
	l.Trace(ctx, "created book: %d", book.Id)
	l.invalidateBooks(ctx)
	return l.BooksList(ctx)
}

func (l *logic) BookUpdate(ctx context.Context, id int64, bookPartial data.BookPartial) ([]*data.Book, error) {
	if l.config.mutateDisabled {
		return nil, data.NewError(data.ErrorKindValidation, "mutation disabled")
	}
	book, err := l.Sql.BookUpdate(ctx, id, bookPartial)
	if err != nil {
		return nil, err
	}
	l.Trace(ctx, "updated book: %d", book.Id)
	l.invalidateBooks(ctx)
	return l.BooksList(ctx)
}

func (l *logic) BookDelete(ctx context.Context, id int64) ([]*data.Book, error) {
	if l.config.mutateDisabled {
		return nil, data.NewError(data.ErrorKindValidation, "mutation disabled")
	}
	if err := l.Sql.BookDelete(ctx, id); err != nil {
		return nil, err
	}
	l.Trace(ctx, "deleted book: %d", id)
	l.invalidateBooks(ctx)
	return l.BooksList(ctx)
}
