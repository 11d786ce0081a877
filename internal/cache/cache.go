package cache

import (
	"context"
	"errors"

	"github.com/antonio-alexander/go-books-admin/internal/data"
)

var (
	ErrAuthorsNotCached = errors.New("authors not cached")
	ErrBooksNotCached   = errors.New("books not cached")
)

// Cache holds whole collections rather than individual records: the
// api always returns the full collection, so that's the unit of
// caching and the unit of invalidation
type Cache interface {
	AuthorsRead(ctx context.Context) ([]*data.Author, error)
	AuthorsWrite(ctx context.Context, authors ...*data.Author) error
	AuthorsDelete(ctx context.Context) error
	BooksRead(ctx context.Context) ([]*data.Book, error)
	BooksWrite(ctx context.Context, books ...*data.Book) error
	BooksDelete(ctx context.Context) error
}

func copyAuthor(a *data.Author) *data.Author {
	author := &data.Author{}
	*author = *a
	return author
}

func copyBook(b *data.Book) *data.Book {
	book := &data.Book{}
	*book = *b
	return book
}
