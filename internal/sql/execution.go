package sql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/antonio-alexander/go-books-admin/internal/data"

	"github.com/go-sql-driver/mysql"
)

// mysql server error numbers for referential integrity failures
const (
	mysqlErrRowReferenced   uint16 = 1451 //parent row restricted by child rows
	mysqlErrNoReferencedRow uint16 = 1452 //child row points at a missing parent
)

const schemaAuthors = `CREATE TABLE IF NOT EXISTS authors (
	id BIGINT NOT NULL AUTO_INCREMENT,
	name VARCHAR(255) NOT NULL,
	birthday DATE NOT NULL,
	bio TEXT,
	created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	PRIMARY KEY (id)
) ENGINE=InnoDB;`

const schemaBooks = `CREATE TABLE IF NOT EXISTS books (
	id BIGINT NOT NULL AUTO_INCREMENT,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	release_date DATE NOT NULL,
	pages INT NOT NULL,
	author_id BIGINT NOT NULL,
	created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	PRIMARY KEY (id),
	CONSTRAINT fk_books_author FOREIGN KEY (author_id)
		REFERENCES authors (id) ON DELETE RESTRICT ON UPDATE RESTRICT
) ENGINE=InnoDB;`

func (s *mySql) ensureTables(ctx context.Context) error {
	for _, schema := range []string{schemaAuthors, schemaBooks} {
		if _, err := s.ExecContext(ctx, schema); err != nil {
			return err
		}
	}
	return nil
}

// translateError maps storage failures onto the api's error taxonomy;
// anything unrecognized passes through as an internal error
func translateError(err error, entity string, id int64) error {
	var mysqlErr *mysql.MySQLError

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return data.NewNotFoundError(entity, id)
	case errors.As(err, &mysqlErr):
		switch mysqlErr.Number {
		case mysqlErrNoReferencedRow:
			return data.NewError(data.ErrorKindValidation,
				"field authorId must reference an existing author")
		case mysqlErrRowReferenced:
			return data.NewError(data.ErrorKindConflict,
				"author is referenced by existing books")
		}
	}
	return err
}

func authorScan(scan func(...any) error) (*data.Author, error) {
	var bio sql.NullString

	author := &data.Author{}
	if err := scan(&author.Id, &author.Name, &author.Birthday,
		&bio, &author.CreatedAt, &author.UpdatedAt); err != nil {
		return nil, err
	}
	author.Bio = bio.String
	return author, nil
}

func bookScan(scan func(...any) error) (*data.Book, error) {
	var description sql.NullString

	book := &data.Book{}
	if err := scan(&book.Id, &book.Title, &description,
		&book.ReleaseDate, &book.Pages, &book.AuthorId,
		&book.AuthorName, &book.CreatedAt, &book.UpdatedAt); err != nil {
		return nil, err
	}
	book.Description = description.String
	return book, nil
}
