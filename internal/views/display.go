package views

import (
	"time"

	"github.com/antonio-alexander/go-books-admin/internal/data"
)

// the dashboard renders every date as DD/MM/YYYY
const displayDateLayout = "02/01/2006"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

type AuthorRow struct {
	Id        int64
	Name      string
	Birthday  string
	Bio       string
	CreatedAt string
	UpdatedAt string
}

// AuthorRows derives the display projection of the author collection;
// it's a pure function of the collection, never of view state
func AuthorRows(authors []*data.Author) []AuthorRow {
	rows := make([]AuthorRow, 0, len(authors))
	for _, author := range authors {
		rows = append(rows, AuthorRow{
			Id:        author.Id,
			Name:      author.Name,
			Birthday:  formatDate(author.Birthday.Time),
			Bio:       author.Bio,
			CreatedAt: formatDate(author.CreatedAt),
			UpdatedAt: formatDate(author.UpdatedAt),
		})
	}
	return rows
}

type BookRow struct {
	Id          int64
	Title       string
	Author      string
	Description string
	ReleaseDate string
	Pages       int64
	CreatedAt   string
	UpdatedAt   string
}

func BookRows(books []*data.Book) []BookRow {
	rows := make([]BookRow, 0, len(books))
	for _, book := range books {
		rows = append(rows, BookRow{
			Id:          book.Id,
			Title:       book.Title,
			Author:      book.AuthorName,
			Description: book.Description,
			ReleaseDate: formatDate(book.ReleaseDate.Time),
			Pages:       book.Pages,
			CreatedAt:   formatDate(book.CreatedAt),
			UpdatedAt:   formatDate(book.UpdatedAt),
		})
	}
	return rows
}
