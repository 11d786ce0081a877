package logic_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/cache"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/logic"
	"github.com/antonio-alexander/go-books-admin/internal/sql"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"

	"github.com/stretchr/testify/assert"
)

var (
	envs = map[string]string{
		//sql
		"DATABASE_HOST":          "localhost",
		"DATABASE_PORT":          "3306",
		"DATABASE_NAME":          "books_admin",
		"DATABASE_USER":          "mysql",
		"DATABASE_PASSWORD":      "mysql",
		"DATABASE_QUERY_TIMEOUT": "10",

		//cache
		"REDIS_ADDRESS": "localhost",
		"REDIS_PORT":    "6379",
		"REDIS_TIMEOUT": "10",

		//logic
		"LOGIC_CACHE_ENABLED": "true",
		"MUTATE_DISABLED":     "false",
	}
)

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type logicTest struct {
	sql interface {
		internal.Configurer
		internal.Opener
		sql.Sql
	}
	cache interface {
		internal.Configurer
		internal.Opener
		internal.Clearer
		cache.Cache
	}
	logic interface {
		internal.Configurer
		internal.Opener
	}
	counter utilities.Counter
	logic.Logic
}

func newLogicTest(cacheType string) *logicTest {
	var c interface {
		internal.Opener
		internal.Configurer
		internal.Clearer
		cache.Cache
	}

	sql := sql.NewMySql()
	switch cacheType {
	case "memory":
		c = cache.NewMemory()
	case "redis":
		c = cache.NewRedis()
	}
	counter := utilities.NewCounter()
	logic := logic.NewLogic(sql, c, counter)
	return &logicTest{
		sql:     sql,
		cache:   c,
		counter: counter,
		logic:   logic,
		Logic:   logic,
	}
}

func (l *logicTest) Configure(envs map[string]string) error {
	if err := l.sql.Configure(envs); err != nil {
		return err
	}
	if err := l.cache.Configure(envs); err != nil {
		return err
	}
	if err := l.logic.Configure(envs); err != nil {
		return err
	}
	return nil
}

func (l *logicTest) Open(ctx context.Context) error {
	if err := l.sql.Open(ctx); err != nil {
		return err
	}
	if err := l.cache.Open(ctx); err != nil {
		return err
	}
	if err := l.logic.Open(ctx); err != nil {
		return err
	}
	return nil
}

func (l *logicTest) Close(ctx context.Context) error {
	if err := l.sql.Close(ctx); err != nil {
		return err
	}
	if err := l.cache.Close(ctx); err != nil {
		return err
	}
	if err := l.logic.Close(ctx); err != nil {
		return err
	}
	return nil
}

func (l *logicTest) TestAuthors(t *testing.T) {
	// generate context
	ctx := context.TODO()

	// every mutation returns the reloaded collection
	name := internal.GenerateId()[:16]
	birthday, bio := data.NewDate(1929, time.October, 21), internal.GenerateId()
	authors, err := l.AuthorCreate(ctx, data.AuthorPartial{
		Name:     &name,
		Birthday: &birthday,
		Bio:      &bio,
	})
	assert.Nil(t, err)
	var authorCreated *data.Author
	for _, author := range authors {
		if author.Name == name {
			authorCreated = author
		}
	}
	if !assert.NotNil(t, authorCreated) {
		assert.FailNow(t, "created author not in reloaded collection")
	}
	authorId := authorCreated.Id
	defer func(authorId int64) {
		_, _ = l.AuthorDelete(ctx, authorId)
	}(authorId)
	assert.Equal(t, bio, authorCreated.Bio)
	assert.Equal(t, birthday.String(), authorCreated.Birthday.String())

	// a list after a mutation is a cache miss then a hit
	_, err = l.AuthorsList(ctx)
	assert.Nil(t, err)
	hits, misses := l.counter.Read("authors")
	assert.NotZero(t, misses)
	_, err = l.AuthorsList(ctx)
	assert.Nil(t, err)
	hitsAfter, _ := l.counter.Read("authors")
	assert.Greater(t, hitsAfter, hits)

	// update the author
	updatedName := internal.GenerateId()[:16]
	authors, err = l.AuthorUpdate(ctx, authorId, data.AuthorPartial{
		Name:     &updatedName,
		Birthday: &birthday,
		Bio:      &bio,
	})
	assert.Nil(t, err)
	var authorUpdated *data.Author
	for _, author := range authors {
		if author.Id == authorId {
			authorUpdated = author
		}
	}
	if !assert.NotNil(t, authorUpdated) {
		assert.FailNow(t, "updated author not in reloaded collection")
	}
	assert.Equal(t, updatedName, authorUpdated.Name)
	assert.True(t, authorUpdated.UpdatedAt.After(authorCreated.UpdatedAt))

	// update an unknown author
	_, err = l.AuthorUpdate(ctx, -1, data.AuthorPartial{
		Name:     &updatedName,
		Birthday: &birthday,
	})
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindNotFound, data.KindOf(err))

	// delete the author
	authors, err = l.AuthorDelete(ctx, authorId)
	assert.Nil(t, err)
	for _, author := range authors {
		assert.NotEqual(t, authorId, author.Id)
	}

	// delete the author again
	_, err = l.AuthorDelete(ctx, authorId)
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindNotFound, data.KindOf(err))
}

func (l *logicTest) TestBooks(t *testing.T) {
	// generate context
	ctx := context.TODO()

	// create an author to attribute books to
	name := internal.GenerateId()[:16]
	birthday := data.NewDate(1926, time.April, 28)
	authors, err := l.AuthorCreate(ctx, data.AuthorPartial{
		Name:     &name,
		Birthday: &birthday,
	})
	assert.Nil(t, err)
	var authorId int64
	for _, author := range authors {
		if author.Name == name {
			authorId = author.Id
		}
	}
	if !assert.NotZero(t, authorId) {
		assert.FailNow(t, "created author not in reloaded collection")
	}
	defer func(authorId int64) {
		_, _ = l.AuthorDelete(ctx, authorId)
	}(authorId)

	// create a book
	title := internal.GenerateId()[:16]
	releaseDate, pages := data.NewDate(1960, time.July, 11), int64(281)
	books, err := l.BookCreate(ctx, data.BookPartial{
		Title:       &title,
		ReleaseDate: &releaseDate,
		Pages:       &pages,
		AuthorId:    &authorId,
	})
	assert.Nil(t, err)
	var bookCreated *data.Book
	for _, book := range books {
		if book.Title == title {
			bookCreated = book
		}
	}
	if !assert.NotNil(t, bookCreated) {
		assert.FailNow(t, "created book not in reloaded collection")
	}
	bookId := bookCreated.Id
	defer func(bookId int64) {
		_, _ = l.BookDelete(ctx, bookId)
	}(bookId)

	// the book carries its author's name from the join
	assert.Equal(t, name, bookCreated.AuthorName)

	// a book can't reference an unknown author
	unknownAuthorId := int64(1) << 40
	_, err = l.BookCreate(ctx, data.BookPartial{
		Title:       &title,
		ReleaseDate: &releaseDate,
		Pages:       &pages,
		AuthorId:    &unknownAuthorId,
	})
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindValidation, data.KindOf(err))

	// the author can't be deleted while the book references it
	_, err = l.AuthorDelete(ctx, authorId)
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindConflict, data.KindOf(err))

	// an author mutation invalidates the cached books
	_, err = l.BooksList(ctx)
	assert.Nil(t, err)
	updatedName := internal.GenerateId()[:16]
	_, err = l.AuthorUpdate(ctx, authorId, data.AuthorPartial{
		Name:     &updatedName,
		Birthday: &birthday,
	})
	assert.Nil(t, err)
	books, err = l.BooksList(ctx)
	assert.Nil(t, err)
	for _, book := range books {
		if book.Id == bookId {
			assert.Equal(t, updatedName, book.AuthorName)
		}
	}

	// delete the book, then the author
	books, err = l.BookDelete(ctx, bookId)
	assert.Nil(t, err)
	for _, book := range books {
		assert.NotEqual(t, bookId, book.Id)
	}
	_, err = l.AuthorDelete(ctx, authorId)
	assert.Nil(t, err)
}

func testLogic(t *testing.T, cacheType string) {
	l := newLogicTest(cacheType)

	ctx := context.TODO()
	err := l.Configure(envs)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to configure logicTest")
	}
	err = l.Open(ctx)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to open logicTest")
	}
	defer func() {
		if err := l.Close(ctx); err != nil {
			t.Logf("error while closing logicTest: %s", err)
		}
	}()
	t.Run("Authors", l.TestAuthors)
	t.Run("Books", l.TestBooks)
}

func TestLogicMemory(t *testing.T) {
	testLogic(t, "memory")
}

func TestLogicRedis(t *testing.T) {
	testLogic(t, "redis")
}
