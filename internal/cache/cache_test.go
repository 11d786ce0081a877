package cache_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/cache"
	"github.com/antonio-alexander/go-books-admin/internal/data"

	"github.com/stretchr/testify/assert"
)

var envs = map[string]string{
	"REDIS_ADDRESS": "localhost",
	"REDIS_PORT":    "6379",
	"REDIS_TIMEOUT": "10",
}

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type cacheTest struct {
	cache interface {
		internal.Configurer
		internal.Opener
		internal.Clearer
		cache.Cache
	}
}

func newCacheTest(cacheType string) *cacheTest {
	c := &cacheTest{}
	switch cacheType {
	case "memory":
		c.cache = cache.NewMemory()
	case "redis":
		c.cache = cache.NewRedis()
	}
	return c
}

func (c *cacheTest) TestCache(t *testing.T) {
	//create collections
	authors := []*data.Author{
		{
			Id:       1,
			Name:     internal.GenerateId()[:16],
			Birthday: data.NewDate(1929, time.October, 21),
		},
		{
			Id:   2,
			Name: internal.GenerateId()[:16],
			Bio:  internal.GenerateId(),
		},
	}
	books := []*data.Book{
		{
			Id:          1,
			Title:       internal.GenerateId()[:16],
			ReleaseDate: data.NewDate(1974, time.May, 1),
			Pages:       341,
			AuthorId:    1,
			AuthorName:  authors[0].Name,
		},
	}

	//create context
	ctx := context.TODO()

	//clear cache
	err := c.cache.Clear(ctx)
	assert.Nil(t, err)

	// neither collection cached after a clear
	authorsRead, err := c.cache.AuthorsRead(ctx)
	assert.NotNil(t, err)
	assert.Nil(t, authorsRead)
	booksRead, err := c.cache.BooksRead(ctx)
	assert.NotNil(t, err)
	assert.Nil(t, booksRead)

	// write authors
	err = c.cache.AuthorsWrite(ctx, authors...)
	assert.Nil(t, err)

	// read authors
	authorsRead, err = c.cache.AuthorsRead(ctx)
	assert.Nil(t, err)
	assert.Len(t, authorsRead, len(authors))
	for i, author := range authors {
		assert.Equal(t, author.Id, authorsRead[i].Id)
		assert.Equal(t, author.Name, authorsRead[i].Name)
		assert.Equal(t, author.Bio, authorsRead[i].Bio)
		assert.Equal(t, author.Birthday.String(), authorsRead[i].Birthday.String())
	}

	// an empty collection is still a cached collection
	err = c.cache.BooksWrite(ctx)
	assert.Nil(t, err)
	booksRead, err = c.cache.BooksRead(ctx)
	assert.Nil(t, err)
	assert.Empty(t, booksRead)

	// write books
	err = c.cache.BooksWrite(ctx, books...)
	assert.Nil(t, err)
	booksRead, err = c.cache.BooksRead(ctx)
	assert.Nil(t, err)
	assert.Len(t, booksRead, len(books))
	assert.Equal(t, books[0].Title, booksRead[0].Title)
	assert.Equal(t, books[0].AuthorName, booksRead[0].AuthorName)

	// delete authors, books remain
	err = c.cache.AuthorsDelete(ctx)
	assert.Nil(t, err)
	authorsRead, err = c.cache.AuthorsRead(ctx)
	assert.NotNil(t, err)
	assert.Nil(t, authorsRead)
	booksRead, err = c.cache.BooksRead(ctx)
	assert.Nil(t, err)
	assert.Len(t, booksRead, len(books))

	// clear drops everything
	err = c.cache.Clear(ctx)
	assert.Nil(t, err)
	booksRead, err = c.cache.BooksRead(ctx)
	assert.NotNil(t, err)
	assert.Nil(t, booksRead)
}

func testCache(t *testing.T, cacheType string) {
	c := newCacheTest(cacheType)

	ctx := context.TODO()
	err := c.cache.Configure(envs)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to configure cache")
	}
	err = c.cache.Open(ctx)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to open cache")
	}
	defer func() {
		if err := c.cache.Close(ctx); err != nil {
			t.Logf("error while closing cache: %s", err)
		}
	}()
	t.Run("Cache", c.TestCache)
}

func TestCacheMemory(t *testing.T) {
	testCache(t, "memory")
}

func TestCacheRedis(t *testing.T) {
	testCache(t, "redis")
}
