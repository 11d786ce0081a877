package cache

import (
	"context"
	"sync"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"
)

type memoryCache struct {
	sync.RWMutex
	authors []*data.Author
	books   []*data.Book
	utilities.Logger
}

func NewMemory(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Cache
} {
	c := &memoryCache{Logger: utilities.NewLogger()}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			c.Logger = p
		}
	}
	return c
}

func (c *memoryCache) Configure(envs map[string]string) error {
	return nil
}

func (c *memoryCache) Open(ctx context.Context) error {
	return nil
}

func (c *memoryCache) Close(ctx context.Context) error {
	return nil
}

func (c *memoryCache) Clear(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	c.authors, c.books = nil, nil
	return nil
}

func (c *memoryCache) AuthorsRead(ctx context.Context) ([]*data.Author, error) {
	c.RLock()
	defer c.RUnlock()

	if c.authors == nil {
		return nil, ErrAuthorsNotCached
	}
	authors := make([]*data.Author, 0, len(c.authors))
	for _, author := range c.authors {
		authors = append(authors, copyAuthor(author))
	}
	return authors, nil
}

func (c *memoryCache) AuthorsWrite(ctx context.Context, authors ...*data.Author) error {
	c.Lock()
	defer c.Unlock()

	c.authors = make([]*data.Author, 0, len(authors))
	for _, author := range authors {
		c.authors = append(c.authors, copyAuthor(author))
	}
	return nil
}

func (c *memoryCache) AuthorsDelete(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	c.authors = nil
	return nil
}

func (c *memoryCache) BooksRead(ctx context.Context) ([]*data.Book, error) {
	c.RLock()
	defer c.RUnlock()

	if c.books == nil {
		return nil, ErrBooksNotCached
	}
	books := make([]*data.Book, 0, len(c.books))
	for _, book := range c.books {
		books = append(books, copyBook(book))
	}
	return books, nil
}

func (c *memoryCache) BooksWrite(ctx context.Context, books ...*data.Book) error {
	c.Lock()
	defer c.Unlock()

	c.books = make([]*data.Book, 0, len(books))
	for _, book := range books {
		c.books = append(c.books, copyBook(book))
	}
	return nil
}

func (c *memoryCache) BooksDelete(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	c.books = nil
	return nil
}
