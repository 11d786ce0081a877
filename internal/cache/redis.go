package cache

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"

	"github.com/redis/go-redis/v9"
)

const (
	keyAuthors string = "authors"
	keyBooks   string = "books"
)

type redisCache struct {
	redisClient *redis.Client
	config      struct {
		address  string
		port     string
		password string
		database int
		timeout  time.Duration
		ttl      time.Duration
	}
	utilities.Logger
}

func NewRedis(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Cache
} {
	c := &redisCache{Logger: utilities.NewLogger()}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			c.Logger = p
		}
	}
	return c
}

func (c *redisCache) Configure(envs map[string]string) error {
	c.config.timeout = 10 * time.Second
	if redisAddress, ok := envs["REDIS_ADDRESS"]; ok {
		c.config.address = redisAddress
	}
	if redisPort, ok := envs["REDIS_PORT"]; ok {
		c.config.port = redisPort
	}
	if redisPassword, ok := envs["REDIS_PASSWORD"]; ok {
		c.config.password = redisPassword
	}
	if redisDatabase, ok := envs["REDIS_DATABASE"]; ok {
		i, _ := strconv.ParseInt(redisDatabase, 10, 64)
		c.config.database = int(i)
	}
	if redisTimeout, ok := envs["REDIS_TIMEOUT"]; ok {
		i, _ := strconv.ParseInt(redisTimeout, 10, 64)
		c.config.timeout = time.Duration(i) * time.Second
	}
	if cacheTtl, ok := envs["CACHE_TTL"]; ok {
		i, _ := strconv.ParseInt(cacheTtl, 10, 64)
		c.config.ttl = time.Duration(i) * time.Second
	}
	return nil
}

func (c *redisCache) Open(ctx context.Context) error {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(c.config.address, c.config.port),
		Password: c.config.password,
		DB:       c.config.database,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	c.redisClient = redisClient
	return nil
}

func (c *redisCache) Close(ctx context.Context) error {
	if c.redisClient == nil {
		return nil
	}
	if err := c.redisClient.Close(); err != nil {
		c.Error(ctx, "error while closing redis client: %s", err)
	}
	return nil
}

func (c *redisCache) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	if _, err := c.redisClient.Del(ctx, keyAuthors, keyBooks).Result(); err != nil {
		return err
	}
	return nil
}

func (c *redisCache) AuthorsRead(ctx context.Context) ([]*data.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	value, err := c.redisClient.Get(ctx, keyAuthors).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAuthorsNotCached
		}
		return nil, err
	}
	authors := data.AuthorList{}
	if err := authors.UnmarshalBinary([]byte(value)); err != nil {
		return nil, err
	}
	return authors, nil
}

func (c *redisCache) AuthorsWrite(ctx context.Context, authors ...*data.Author) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	authorList := data.AuthorList(authors)
	bytes, err := authorList.MarshalBinary()
	if err != nil {
		return err
	}
	return c.redisClient.Set(ctx, keyAuthors, string(bytes), c.config.ttl).Err()
}

func (c *redisCache) AuthorsDelete(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	return c.redisClient.Del(ctx, keyAuthors).Err()
}

func (c *redisCache) BooksRead(ctx context.Context) ([]*data.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	value, err := c.redisClient.Get(ctx, keyBooks).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBooksNotCached
		}
		return nil, err
	}
	books := data.BookList{}
	if err := books.UnmarshalBinary([]byte(value)); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *redisCache) BooksWrite(ctx context.Context, books ...*data.Book) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	bookList := data.BookList(books)
	bytes, err := bookList.MarshalBinary()
	if err != nil {
		return err
	}
	return c.redisClient.Set(ctx, keyBooks, string(bytes), c.config.ttl).Err()
}

func (c *redisCache) BooksDelete(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()
	return c.redisClient.Del(ctx, keyBooks).Err()
}
