package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/client"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"
	"github.com/antonio-alexander/go-books-admin/internal/views"

	"github.com/pkg/errors"
)

var (
	Version   string
	GitCommit string
	GitBranch string
)

func init() {
	if Version = data.Version; Version == "" {
		Version = "<no_version_provided>"
	}
	if GitCommit = data.GitCommit; GitCommit == "" {
		GitCommit = "<no_git_commit>"
	}
	if GitBranch = data.GitBranch; GitBranch == "" {
		GitBranch = "<no_git_branch>"
	}
}

func main() {
	args := os.Args[1:]
	envs := make(map[string]string)
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, syscall.SIGINT, syscall.SIGTERM)
	if err := Main(args, envs, osSignal); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Exit(1)
	}
}

// walk an author and a book through the full lifecycle the way the
// dashboard would, driving all mutations through the view stores so
// the reload-after-write contract is exercised end to end
func scenarioAdminFlow(ctx context.Context, envs map[string]string, logger utilities.Logger,
	clients ...client.Client) error {
	const correlationId string = "scenario_admin_flow"

	if len(clients) < 1 {
		return errors.New("not enough clients provided")
	}
	client := clients[0]

	//generate context
	ctx = internal.CtxWithCorrelationId(ctx, correlationId)

	//seed the stores from the live collections
	authorStore, bookStore := views.NewAuthorStore(), views.NewBookStore()
	authors, err := client.AuthorsList(ctx)
	if err != nil {
		return err
	}
	authorStore.Replace(authors)
	books, err := client.BooksList(ctx)
	if err != nil {
		return err
	}
	bookStore.Replace(books)
	logger.Info(ctx, "seeded stores with %d authors and %d books",
		len(authors), len(books))

	// create author
	name := "scenario " + internal.GenerateId()[:8]
	birthday, bio := data.NewDate(1964, time.October, 23), "created by scenario"
	if err := authorStore.Submit(ctx, func(ctx context.Context) (*data.AuthorsResponse, error) {
		return client.AuthorCreate(ctx, data.AuthorPartial{
			Name:     &name,
			Birthday: &birthday,
			Bio:      &bio,
		})
	}); err != nil {
		return err
	}
	var authorId int64
	for _, author := range authorStore.Authors() {
		if author.Name == name {
			authorId = author.Id
		}
	}
	if authorId == 0 {
		return errors.New("created author not found in reloaded collection")
	}
	logger.Info(ctx, "created author: %d (%s)", authorId, authorStore.Banner().Message)

	// create book attributed to the author
	title := "scenario " + internal.GenerateId()[:8]
	releaseDate, pages := data.NewDate(2001, time.June, 12), int64(320)
	if err := bookStore.Submit(ctx, func(ctx context.Context) (*data.BooksResponse, error) {
		return client.BookCreate(ctx, data.BookPartial{
			Title:       &title,
			ReleaseDate: &releaseDate,
			Pages:       &pages,
			AuthorId:    &authorId,
		})
	}); err != nil {
		return err
	}
	var bookId int64
	for _, book := range bookStore.Books() {
		if book.Title == title {
			bookId = book.Id
		}
	}
	if bookId == 0 {
		return errors.New("created book not found in reloaded collection")
	}
	logger.Info(ctx, "created book: %d (%s)", bookId, bookStore.Banner().Message)

	//deleting the author must be refused while the book references it
	if err := authorStore.Submit(ctx, func(ctx context.Context) (*data.AuthorsResponse, error) {
		return client.AuthorDelete(ctx, authorId)
	}); err == nil {
		return errors.New("author delete succeeded while a book still references it")
	}
	logger.Info(ctx, "author delete refused: %s", authorStore.Banner().Message)

	// update the book, then show the rows and aggregates
	pages = 352
	if err := bookStore.Submit(ctx, func(ctx context.Context) (*data.BooksResponse, error) {
		return client.BookUpdate(ctx, bookId, data.BookPartial{
			Title:       &title,
			ReleaseDate: &releaseDate,
			Pages:       &pages,
			AuthorId:    &authorId,
		})
	}); err != nil {
		return err
	}
	for _, row := range views.BookRows(bookStore.Books()) {
		logger.Debug(ctx, "book row: %+v", row)
	}
	for _, point := range views.BooksPerAuthor(bookStore.Books()) {
		logger.Info(ctx, "books per author: %s=%d", point.Label, point.Value)
	}

	// delete book then author
	if err := bookStore.Submit(ctx, func(ctx context.Context) (*data.BooksResponse, error) {
		return client.BookDelete(ctx, bookId)
	}); err != nil {
		return err
	}
	logger.Info(ctx, "deleted book: %d (%s)", bookId, bookStore.Banner().Message)
	if err := authorStore.Submit(ctx, func(ctx context.Context) (*data.AuthorsResponse, error) {
		return client.AuthorDelete(ctx, authorId)
	}); err != nil {
		return err
	}
	logger.Info(ctx, "deleted author: %d (%s)", authorId, authorStore.Banner().Message)

	//read health
	health, err := client.Health(ctx)
	if err != nil {
		logger.Error(ctx, "error while reading health: %s", err)
		return nil
	}
	logger.Info(ctx, "health: %s (%s)", health.Status, health.AvailabilityZone)
	return nil
}

// determine hit/miss ratio for the authors collection with
// concurrent readers while a writer invalidates the cache
func scenarioCacheRatio(ctx context.Context, envs map[string]string, logger utilities.Logger,
	clients ...client.Client) error {
	const correlationId string = "scenario_cache_ratio"
	const minClients int = 2

	var readInterval time.Duration = time.Second
	var updateInterval time.Duration = 2 * time.Second
	var scenarioDuration time.Duration = 10 * time.Second
	var wg sync.WaitGroup

	if s := envs["SCENARIO_READ_INTERVAL"]; s != "" {
		i, _ := strconv.Atoi(s)
		readInterval = time.Duration(i) * time.Second
	}
	if s := envs["SCENARIO_UPDATE_INTERVAL"]; s != "" {
		i, _ := strconv.Atoi(s)
		updateInterval = time.Duration(i) * time.Second
	}
	if s := envs["SCENARIO_DURATION"]; s != "" {
		i, _ := strconv.Atoi(s)
		scenarioDuration = time.Duration(i) * time.Second
	}
	if len(clients) < minClients {
		return errors.New("not enough clients provided")
	}

	//generate context
	ctx = internal.CtxWithCorrelationId(ctx, correlationId)

	// create author using the first client
	name := "scenario " + internal.GenerateId()[:8]
	birthday := data.NewDate(1926, time.April, 28)
	response, err := clients[0].AuthorCreate(ctx, data.AuthorPartial{
		Name:     &name,
		Birthday: &birthday,
	})
	if err != nil {
		return err
	}
	var authorId int64
	for _, author := range response.Authors {
		if author.Name == name {
			authorId = author.Id
		}
	}
	defer func(authorId int64) {
		_, _ = clients[0].AuthorDelete(ctx, authorId)
		logger.Info(ctx, "deleted author: %d", authorId)
	}(authorId)
	logger.Info(ctx, "created author: %d", authorId)

	//generate start/stop channels
	start, stop := make(chan struct{}), make(chan struct{})

	//create writer go routine
	wg.Add(1)
	go func(ctx context.Context, client client.Client) {
		defer wg.Done()
		ctx = internal.CtxWithCorrelationId(ctx, correlationId)
		bio := internal.GenerateId()
		updateAuthorFx := func(ctx context.Context) error {
			if _, err := client.AuthorUpdate(ctx, authorId,
				data.AuthorPartial{
					Name:     &name,
					Birthday: &birthday,
					Bio:      &bio,
				}); err != nil {
				return err
			}
			return nil
		}
		tUpdate := time.NewTicker(updateInterval)
		defer tUpdate.Stop()
		<-start
		for {
			select {
			case <-stop:
				return
			case <-tUpdate.C:
				if err := updateAuthorFx(ctx); err != nil {
					logger.Error(ctx, "error while updating author: %s", err)
				}
			}
		}
	}(ctx, clients[0])

	//create reader go routines
	for i := 1; i < len(clients); i++ {
		wg.Add(1)
		go func(ctx context.Context, clientNumber int, client client.Client) {
			defer wg.Done()

			correlationId := fmt.Sprintf("scenario_cache_ratio_%d", clientNumber)
			ctx = internal.CtxWithCorrelationId(ctx, correlationId)
			readAuthorsFx := func(ctx context.Context) error {
				if _, err := client.AuthorsList(ctx); err != nil {
					return err
				}
				return nil
			}
			tRead := time.NewTicker(readInterval)
			defer tRead.Stop()
			<-start
			for {
				select {
				case <-stop:
					return
				case <-tRead.C:
					if err := readAuthorsFx(ctx); err != nil {
						logger.Error(ctx, "error while reading authors: %s", err)
					}
				}
			}
		}(ctx, i, clients[i])
	}

	//clear cache counters and start the go routines
	if err := clients[0].CacheClear(ctx); err != nil {
		return err
	}
	if err := clients[0].CountersClear(ctx); err != nil {
		return err
	}
	close(start)

	//allow go routines to run
	<-time.After(scenarioDuration)

	//stop go routines
	close(stop)
	wg.Wait()

	//use initial client to get hit/miss ratios from server
	cacheCounters, err := clients[0].CountersRead(ctx)
	if err != nil {
		return err
	}
	hit := cacheCounters.CounterHits["authors"]
	miss := cacheCounters.CounterMisses["authors"]
	total := hit + miss
	logger.Info(ctx, "cache hit miss ratio (%d/%d): %0.2f%%",
		hit, total, float64(hit)/float64(total)*100)

	return nil
}

func Main(args []string, envs map[string]string, osSignal chan (os.Signal)) error {
	var clients []client.Client
	var wg sync.WaitGroup

	//create context
	ctx, cancel := internal.LaunchContext(&wg, osSignal)
	defer cancel()

	// create logger
	logger := utilities.NewLogger()
	_ = logger.Configure(envs)

	//print version info
	logger.Info(ctx, "scenarios: go-books-admin v%s (%s) built from: %s",
		Version, GitCommit, GitBranch)

	nClients, _ := strconv.Atoi(envs["N_CLIENTS"])
	if nClients <= 0 {
		nClients = 1
	}
	for range nClients {
		//create client
		client := client.NewClient(logger)
		if err := client.Configure(envs); err != nil {
			return err
		}
		if err := client.Open(ctx); err != nil {
			return err
		}
		defer func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Error(ctx, "error while closing client: %s", err)
			}
		}()
		clients = append(clients, client)
	}

	// execute scenario
	switch scenario := envs["SCENARIO"]; scenario {
	default:
		return errors.Errorf("unsupported scenario: %s", scenario)
	case "admin_flow":
		logger.Info(ctx, "executing %s scenario", scenario)
		if err := scenarioAdminFlow(ctx, envs, logger, clients...); err != nil {
			logger.Error(ctx, "error while executing %s scenario: %s", scenario, err)
		}
	case "cache_ratio":
		logger.Info(ctx, "executing %s scenario", scenario)
		if err := scenarioCacheRatio(ctx, envs, logger, clients...); err != nil {
			logger.Error(ctx, "error while executing %s scenario: %s", scenario, err)
		}
	}
	cancel()
	wg.Wait()
	return nil
}
