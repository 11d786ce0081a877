package sql_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/sql"

	"github.com/stretchr/testify/assert"
)

var (
	envs = map[string]string{
		"DATABASE_HOST":          "localhost",
		"DATABASE_PORT":          "3306",
		"DATABASE_NAME":          "books_admin",
		"DATABASE_USER":          "mysql",
		"DATABASE_PASSWORD":      "mysql",
		"DATABASE_QUERY_TIMEOUT": "10",
	}
)

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type sqlTest struct {
	sql interface {
		internal.Opener
		internal.Configurer
	}
	sql.Sql
}

func newSqlTest() *sqlTest {
	sql := sql.NewMySql()
	return &sqlTest{
		sql: sql,
		Sql: sql,
	}
}

func (s *sqlTest) TestAuthors(t *testing.T) {
	// generate context
	ctx := context.TODO()

	// create author
	name := internal.GenerateId()[:16]
	birthday, bio := data.NewDate(1929, time.October, 21), internal.GenerateId()
	authorCreated, err := s.AuthorCreate(ctx, data.AuthorPartial{
		Name:     &name,
		Birthday: &birthday,
		Bio:      &bio,
	})
	assert.Nil(t, err)
	assert.NotNil(t, authorCreated)
	assert.NotZero(t, authorCreated.Id)
	assert.Equal(t, name, authorCreated.Name)
	assert.Equal(t, bio, authorCreated.Bio)
	assert.Equal(t, birthday.String(), authorCreated.Birthday.String())
	assert.False(t, authorCreated.CreatedAt.IsZero())
	authorId := authorCreated.Id
	defer func(authorId int64) {
		_ = s.AuthorDelete(ctx, authorId)
	}(authorId)

	// read author
	authorRead, err := s.AuthorRead(ctx, authorId)
	assert.Nil(t, err)
	assert.NotNil(t, authorRead)
	assert.Equal(t, authorCreated.Id, authorRead.Id)
	assert.Equal(t, authorCreated.Name, authorRead.Name)

	// list authors
	authors, err := s.AuthorsList(ctx)
	assert.Nil(t, err)
	assert.NotEmpty(t, authors)
	var found bool
	for _, author := range authors {
		if author.Id == authorId {
			found = true
		}
	}
	assert.True(t, found)

	// update author, updated_at must move forward
	updatedName := internal.GenerateId()[:16]
	authorUpdated, err := s.AuthorUpdate(ctx, authorId, data.AuthorPartial{
		Name:     &updatedName,
		Birthday: &birthday,
		Bio:      &bio,
	})
	assert.Nil(t, err)
	assert.NotNil(t, authorUpdated)
	assert.Equal(t, updatedName, authorUpdated.Name)
	assert.True(t, authorUpdated.UpdatedAt.After(authorCreated.UpdatedAt))

	// an identical immediate re-update still matches the row
	authorUpdated, err = s.AuthorUpdate(ctx, authorId, data.AuthorPartial{
		Name:     &updatedName,
		Birthday: &birthday,
		Bio:      &bio,
	})
	assert.Nil(t, err)
	assert.NotNil(t, authorUpdated)

	// update an unknown author
	_, err = s.AuthorUpdate(ctx, -1, data.AuthorPartial{
		Name:     &updatedName,
		Birthday: &birthday,
	})
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindNotFound, data.KindOf(err))

	// delete author
	err = s.AuthorDelete(ctx, authorId)
	assert.Nil(t, err)

	// read author again
	authorRead, err = s.AuthorRead(ctx, authorId)
	assert.NotNil(t, err)
	assert.Nil(t, authorRead)
	assert.Equal(t, data.ErrorKindNotFound, data.KindOf(err))

	// delete author again
	err = s.AuthorDelete(ctx, authorId)
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindNotFound, data.KindOf(err))
}

func (s *sqlTest) TestBooks(t *testing.T) {
	// generate context
	ctx := context.TODO()

	// create author
	name := internal.GenerateId()[:16]
	birthday := data.NewDate(1926, time.April, 28)
	authorCreated, err := s.AuthorCreate(ctx, data.AuthorPartial{
		Name:     &name,
		Birthday: &birthday,
	})
	assert.Nil(t, err)
	authorId := authorCreated.Id
	defer func(authorId int64) {
		_ = s.AuthorDelete(ctx, authorId)
	}(authorId)

	// create book
	title := internal.GenerateId()[:16]
	description := internal.GenerateId()
	releaseDate, pages := data.NewDate(1960, time.July, 11), int64(281)
	bookCreated, err := s.BookCreate(ctx, data.BookPartial{
		Title:       &title,
		Description: &description,
		ReleaseDate: &releaseDate,
		Pages:       &pages,
		AuthorId:    &authorId,
	})
	assert.Nil(t, err)
	assert.NotNil(t, bookCreated)
	assert.NotZero(t, bookCreated.Id)
	assert.Equal(t, title, bookCreated.Title)
	assert.Equal(t, description, bookCreated.Description)
	assert.Equal(t, pages, bookCreated.Pages)
	assert.Equal(t, authorId, bookCreated.AuthorId)
	bookId := bookCreated.Id
	defer func(bookId int64) {
		_ = s.BookDelete(ctx, bookId)
	}(bookId)

	// the dto carries the author's name from the join
	assert.Equal(t, name, bookCreated.AuthorName)
	bookRead, err := s.BookRead(ctx, bookId)
	assert.Nil(t, err)
	assert.Equal(t, name, bookRead.AuthorName)

	// a book can't reference an unknown author
	unknownAuthorId := int64(1) << 40
	_, err = s.BookCreate(ctx, data.BookPartial{
		Title:       &title,
		ReleaseDate: &releaseDate,
		Pages:       &pages,
		AuthorId:    &unknownAuthorId,
	})
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindValidation, data.KindOf(err))

	// the author can't be deleted while the book references it
	err = s.AuthorDelete(ctx, authorId)
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindConflict, data.KindOf(err))

	// update book
	updatedTitle := internal.GenerateId()[:16]
	updatedPages := int64(304)
	bookUpdated, err := s.BookUpdate(ctx, bookId, data.BookPartial{
		Title:       &updatedTitle,
		Description: &description,
		ReleaseDate: &releaseDate,
		Pages:       &updatedPages,
		AuthorId:    &authorId,
	})
	assert.Nil(t, err)
	assert.NotNil(t, bookUpdated)
	assert.Equal(t, updatedTitle, bookUpdated.Title)
	assert.Equal(t, updatedPages, bookUpdated.Pages)
	assert.True(t, bookUpdated.UpdatedAt.After(bookCreated.UpdatedAt))

	// re-submitting identical fields immediately is still a successful
	// update, not a not-found
	bookUpdated, err = s.BookUpdate(ctx, bookId, data.BookPartial{
		Title:       &updatedTitle,
		Description: &description,
		ReleaseDate: &releaseDate,
		Pages:       &updatedPages,
		AuthorId:    &authorId,
	})
	assert.Nil(t, err)
	assert.NotNil(t, bookUpdated)
	assert.Equal(t, updatedTitle, bookUpdated.Title)

	// list books
	books, err := s.BooksList(ctx)
	assert.Nil(t, err)
	var found bool
	for _, book := range books {
		if book.Id == bookId {
			found = true
			assert.Equal(t, name, book.AuthorName)
		}
	}
	assert.True(t, found)

	// delete book, then the author deletes cleanly
	err = s.BookDelete(ctx, bookId)
	assert.Nil(t, err)
	err = s.BookDelete(ctx, bookId)
	assert.NotNil(t, err)
	assert.Equal(t, data.ErrorKindNotFound, data.KindOf(err))
	err = s.AuthorDelete(ctx, authorId)
	assert.Nil(t, err)
}

func testSql(t *testing.T) {
	s := newSqlTest()

	ctx := context.TODO()
	err := s.sql.Configure(envs)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to configure sqlTest")
	}
	err = s.sql.Open(ctx)
	if !assert.Nil(t, err) {
		assert.FailNow(t, "unable to open sqlTest")
	}
	defer func() {
		_ = s.sql.Close(ctx)
	}()
	t.Run("Authors", s.TestAuthors)
	t.Run("Books", s.TestBooks)
}

func TestSql(t *testing.T) {
	testSql(t)
}
