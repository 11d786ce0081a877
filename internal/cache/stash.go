package cache

import (
	"context"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"

	"github.com/antonio-alexander/go-stash"
)

type stashCache struct {
	logger utilities.Logger
	stash  interface {
		stash.Configurer
		stash.Parameterizer
		stash.Initializer
		stash.Shutdowner
	}
	stash.Stasher
}

func NewStash(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Cache
} {
	c := &stashCache{}
	for _, p := range parameters {
		switch p := p.(type) {
		case utilities.Logger:
			c.logger = p
		case interface {
			stash.Configurer
			stash.Parameterizer
			stash.Initializer
			stash.Shutdowner
			stash.Stasher
		}:
			c.stash = p
			c.Stasher = p
		}
	}
	if c.stash != nil {
		c.stash.SetParameters(parameters...)
	}
	return c
}

func (c *stashCache) Error(ctx context.Context, format string, v ...any) {
	if c.logger != nil {
		c.logger.Error(ctx, format, v...)
	}
}

func (c *stashCache) Trace(ctx context.Context, format string, v ...any) {
	if c.logger != nil {
		c.logger.Trace(ctx, format, v...)
	}
}

func (c *stashCache) Configure(envs map[string]string) error {
	if c.stash != nil {
		if err := c.stash.Configure(envs); err != nil {
			return err
		}
	}
	return nil
}

func (c *stashCache) Open(ctx context.Context) error {
	if c.stash != nil {
		return c.stash.Initialize()
	}
	return nil
}

func (c *stashCache) Close(ctx context.Context) error {
	if c.stash != nil {
		return c.stash.Shutdown()
	}
	return nil
}

func (c *stashCache) Clear(ctx context.Context) error {
	return c.Stasher.Clear()
}

func (c *stashCache) AuthorsRead(ctx context.Context) ([]*data.Author, error) {
	authors := data.AuthorList{}
	if err := c.Stasher.Read(keyAuthors, &authors); err != nil {
		c.Trace(ctx, "cache miss for authors")
		return nil, ErrAuthorsNotCached
	}
	c.Trace(ctx, "cache hit for authors")
	return authors, nil
}

func (c *stashCache) AuthorsWrite(ctx context.Context, authors ...*data.Author) error {
	authorList := data.AuthorList(authors)
	if _, err := c.Stasher.Write(keyAuthors, &authorList); err != nil {
		c.Error(ctx, "error while writing authors: %s", err)
		return err
	}
	c.Trace(ctx, "cached authors: %d", len(authors))
	return nil
}

func (c *stashCache) AuthorsDelete(ctx context.Context) error {
	if err := c.Stasher.Delete(keyAuthors); err != nil {
		c.Trace(ctx, "error while evicting authors: %s", err)
	}
	return nil
}

func (c *stashCache) BooksRead(ctx context.Context) ([]*data.Book, error) {
	books := data.BookList{}
	if err := c.Stasher.Read(keyBooks, &books); err != nil {
		c.Trace(ctx, "cache miss for books")
		return nil, ErrBooksNotCached
	}
	c.Trace(ctx, "cache hit for books")
	return books, nil
}

func (c *stashCache) BooksWrite(ctx context.Context, books ...*data.Book) error {
	bookList := data.BookList(books)
	if _, err := c.Stasher.Write(keyBooks, &bookList); err != nil {
		c.Error(ctx, "error while writing books: %s", err)
		return err
	}
	c.Trace(ctx, "cached books: %d", len(books))
	return nil
}

func (c *stashCache) BooksDelete(ctx context.Context) error {
	if err := c.Stasher.Delete(keyBooks); err != nil {
		c.Trace(ctx, "error while evicting books: %s", err)
	}
	return nil
}
