package views

import "github.com/antonio-alexander/go-books-admin/internal/data"

type SeriesPoint struct {
	Label string
	Value int64
}

// BooksPerAuthor derives the per-author book count series from the
// in-memory collection; there's no server side aggregation endpoint.
// Labels appear in the order the author first occurs in the collection
func BooksPerAuthor(books []*data.Book) []SeriesPoint {
	var series []SeriesPoint

	indexes := make(map[string]int)
	for _, book := range books {
		index, found := indexes[book.AuthorName]
		if !found {
			indexes[book.AuthorName] = len(series)
			series = append(series, SeriesPoint{Label: book.AuthorName})
			index = len(series) - 1
		}
		series[index].Value++
	}
	return series
}

func PagesPerBook(books []*data.Book) []SeriesPoint {
	series := make([]SeriesPoint, 0, len(books))
	for _, book := range books {
		series = append(series, SeriesPoint{
			Label: book.Title,
			Value: book.Pages,
		})
	}
	return series
}
