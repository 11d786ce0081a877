package views

import (
	"context"
	"sync"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal/data"
)

// BannerDuration is how long a success/error banner remains visible
// before a view should auto dismiss it
const BannerDuration = 5 * time.Second

type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerSuccess
	BannerError
)

type Banner struct {
	Kind     BannerKind
	Message  string
	Deadline time.Time
}

func newBanner(kind BannerKind, message string) Banner {
	return Banner{
		Kind:     kind,
		Message:  message,
		Deadline: time.Now().Add(BannerDuration),
	}
}

func (b Banner) Visible(now time.Time) bool {
	return b.Kind != BannerNone && now.Before(b.Deadline)
}

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
)

// AuthorStore is the single source of truth for the author collection:
// views read snapshots and dispatch intents, the store applies the
// server's returned collection wholesale, so there's no local merging
// and no stale partial state
type AuthorStore struct {
	sync.RWMutex
	authors     []*data.Author
	status      Status
	banner      Banner
	subscribers []chan struct{}
}

func NewAuthorStore() *AuthorStore {
	return &AuthorStore{}
}

func (s *AuthorStore) Authors() []*data.Author {
	s.RLock()
	defer s.RUnlock()

	authors := make([]*data.Author, len(s.authors))
	copy(authors, s.authors)
	return authors
}

func (s *AuthorStore) Status() Status {
	s.RLock()
	defer s.RUnlock()

	return s.status
}

func (s *AuthorStore) Banner() Banner {
	s.RLock()
	defer s.RUnlock()

	return s.banner
}

// Subscribe returns a channel that receives a (coalesced) signal
// whenever the store changes
func (s *AuthorStore) Subscribe() <-chan struct{} {
	s.Lock()
	defer s.Unlock()

	subscriber := make(chan struct{}, 1)
	s.subscribers = append(s.subscribers, subscriber)
	return subscriber
}

func (s *AuthorStore) notify() {
	for _, subscriber := range s.subscribers {
		select {
		case subscriber <- struct{}{}:
		default:
		}
	}
}

// Replace applies a freshly fetched collection, e.g. on mount
func (s *AuthorStore) Replace(authors []*data.Author) {
	s.Lock()
	defer s.Unlock()

	s.authors = authors
	s.notify()
}

// Submit runs a mutation intent; while it's in flight the store
// reports StatusSubmitting and concurrent submissions are refused.
// The server's response is the post-mutation source of truth
func (s *AuthorStore) Submit(ctx context.Context,
	intent func(ctx context.Context) (*data.AuthorsResponse, error)) error {
	s.Lock()
	if s.status == StatusSubmitting {
		s.Unlock()
		return data.NewError(data.ErrorKindConflict,
			"a submission is already in progress")
	}
	s.status = StatusSubmitting
	s.notify()
	s.Unlock()

	response, err := intent(ctx)

	s.Lock()
	defer s.Unlock()
	s.status = StatusIdle
	if err != nil {
		s.banner = newBanner(BannerError, err.Error())
		s.notify()
		return err
	}
	s.authors = response.Authors
	s.banner = newBanner(BannerSuccess, response.Message)
	s.notify()
	return nil
}

// BookStore mirrors AuthorStore for the book collection
type BookStore struct {
	sync.RWMutex
	books       []*data.Book
	status      Status
	banner      Banner
	subscribers []chan struct{}
}

func NewBookStore() *BookStore {
	return &BookStore{}
}

func (s *BookStore) Books() []*data.Book {
	s.RLock()
	defer s.RUnlock()

	books := make([]*data.Book, len(s.books))
	copy(books, s.books)
	return books
}

func (s *BookStore) Status() Status {
	s.RLock()
	defer s.RUnlock()

	return s.status
}

func (s *BookStore) Banner() Banner {
	s.RLock()
	defer s.RUnlock()

	return s.banner
}

func (s *BookStore) Subscribe() <-chan struct{} {
	s.Lock()
	defer s.Unlock()

	subscriber := make(chan struct{}, 1)
	s.subscribers = append(s.subscribers, subscriber)
	return subscriber
}

func (s *BookStore) notify() {
	for _, subscriber := range s.subscribers {
		select {
		case subscriber <- struct{}{}:
		default:
		}
	}
}

func (s *BookStore) Replace(books []*data.Book) {
	s.Lock()
	defer s.Unlock()

	s.books = books
	s.notify()
}

func (s *BookStore) Submit(ctx context.Context,
	intent func(ctx context.Context) (*data.BooksResponse, error)) error {
	s.Lock()
	if s.status == StatusSubmitting {
		s.Unlock()
		return data.NewError(data.ErrorKindConflict,
			"a submission is already in progress")
	}
	s.status = StatusSubmitting
	s.notify()
	s.Unlock()

	response, err := intent(ctx)

	s.Lock()
	defer s.Unlock()
	s.status = StatusIdle
	if err != nil {
		s.banner = newBanner(BannerError, err.Error())
		s.notify()
		return err
	}
	s.books = response.Books
	s.banner = newBanner(BannerSuccess, response.Message)
	s.notify()
	return nil
}
