package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/logic"
	"github.com/antonio-alexander/go-books-admin/internal/metadata"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
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

type service struct {
	sync.RWMutex
	sync.WaitGroup
	config struct {
		address          string
		port             string
		shutdownTimeout  time.Duration
		allowedOrigins   []string
		allowedMethods   []string
		allowedHeaders   []string
		allowCredentials bool
		corsDisabled     bool
		corsDebug        bool
		timersEnabled    bool
	}
	ctx    context.Context
	cancel context.CancelFunc
	*mux.Router
	*http.Server
	cache internal.Clearer
	utilities.Logger
	utilities.Counter
	utilities.Timers
	logic.Logic
	metadata.Metadata
}

func NewService(parameters ...any) interface {
	internal.Configurer
	internal.Opener
} {
	router := mux.NewRouter()
	s := &service{
		Router: router,
		Server: &http.Server{
			Handler: router,
		},
		Logger: utilities.NewLogger(),
	}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case internal.Clearer:
			s.cache = p
		case logic.Logic:
			s.Logic = p
		case metadata.Metadata:
			s.Metadata = p
		case utilities.Counter:
			s.Counter = p
		case utilities.Timers:
			s.Timers = p
		case utilities.Logger:
			s.Logger = p
		}
	}
	return s
}

func (s *service) launchServer() error {
	started := make(chan struct{})
	chErr := make(chan error, 1)
	s.Add(1)
	go func() {
		defer s.WaitGroup.Done()
		defer close(chErr)

		if !s.config.corsDisabled {
			s.Server.Handler = cors.New(cors.Options{
				AllowedOrigins:   s.config.allowedOrigins,
				AllowCredentials: s.config.allowCredentials,
				AllowedMethods:   s.config.allowedMethods,
				AllowedHeaders:   s.config.allowedHeaders,
				Debug:            s.config.corsDebug,
			}).Handler(s.Router)
		}
		close(started)
		if err := s.Server.ListenAndServe(); err != nil {
			chErr <- err
		}
	}()
	<-started
	select {
	case err := <-chErr:
		//KIM: this catches a server that closes immediately after
		// starting, e.g. when the port is already in use
		return err
	case <-time.After(time.Second):
		address := net.JoinHostPort(s.config.address, s.config.port)
		s.Info(s.ctx, "started server: %s", address)
		return nil
	}
}

func (s *service) timer(ctx context.Context, group string) func() {
	if !s.config.timersEnabled || s.Timers == nil {
		return func() {}
	}
	timerIndex := s.Timers.Start(group)
	return func() {
		elapsedTime := s.Timers.Stop(group, timerIndex)
		s.Trace(ctx, "%s took %v", group,
			time.Duration(elapsedTime)*time.Nanosecond)
	}
}

func (s *service) endpointDefault() func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		fmt.Fprintf(writer,
			"go-books-admin\n"+
				"Version: \"%s\"\n"+
				"Git Commit: \"%s\"\n"+
				"Git Branch: \"%s\"\n",
			Version, GitCommit, GitBranch)
	}
}

func (s *service) endpointAuthorsList(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "authors_list")()
	authors, err := s.AuthorsList(ctx)
	if err != nil {
		s.Error(ctx, "error while listing authors: %s", err)
		handleResponse(writer, err, 0, nil)
		return
	}
	handleResponse(writer, nil, http.StatusOK, &data.AuthorsResponse{
		Authors: authors,
	})
	s.Trace(ctx, "executed authors_list: %d", len(authors))
}

func (s *service) endpointAuthorCreate(writer http.ResponseWriter, request *http.Request) {
	var authorPartial data.AuthorPartial

	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "author_create")()
	bytes, err := io.ReadAll(request.Body)
	defer request.Body.Close()
	if err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	if err := json.Unmarshal(bytes, &authorPartial); err != nil {
		handleResponse(writer, data.NewError(data.ErrorKindValidation,
			"invalid request payload: %s", err), 0, nil)
		return
	}
	if err := authorPartial.Validate(); err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	authors, err := s.AuthorCreate(ctx, authorPartial)
	if err != nil {
		s.Error(ctx, "error while creating author: %s", err)
		handleResponse(writer, err, 0, nil)
		return
	}
	handleResponse(writer, nil, http.StatusCreated, &data.AuthorsResponse{
		Authors: authors,
		Message: "Author created successfully",
	})
	s.Trace(ctx, "executed author_create")
}

func (s *service) endpointAuthorUpdate(writer http.ResponseWriter, request *http.Request) {
	var authorPartial data.AuthorPartial

	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "author_update")()
	id, err := idFromPath(mux.Vars(request))
	if err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	bytes, err := io.ReadAll(request.Body)
	defer request.Body.Close()
	if err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	if err := json.Unmarshal(bytes, &authorPartial); err != nil {
		handleResponse(writer, data.NewError(data.ErrorKindValidation,
			"invalid request payload: %s", err), 0, nil)
		return
	}
	if err := authorPartial.Validate(); err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	authors, err := s.AuthorUpdate(ctx, id, authorPartial)
	if err != nil {
		s.Error(ctx, "error while updating author (%d): %s", id, err)
		handleResponse(writer, err, 0, nil)
		return
	}
	handleResponse(writer, nil, http.StatusOK, &data.AuthorsResponse{
		Authors: authors,
		Message: "Author updated successfully",
	})
	s.Trace(ctx, "executed author_update: %d", id)
}

func (s *service) endpointAuthorDelete(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "author_delete")()
	id, err := idFromPath(mux.Vars(request))
	if err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	authors, err := s.AuthorDelete(ctx, id)
	if err != nil {
		s.Error(ctx, "error while deleting author (%d): %s", id, err)
		handleResponse(writer, err, 0, nil)
		return
	}
	handleResponse(writer, nil, http.StatusOK, &data.AuthorsResponse{
		Authors: authors,
		Message: "Author deleted successfully",
	})
	s.Trace(ctx, "executed author_delete: %d", id)
}

func (s *service) endpointBooksList(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "books_list")()
	books, err := s.BooksList(ctx)
	if err != nil {
		s.Error(ctx, "error while listing books: %s", err)
		handleResponse(writer, err, 0, nil)
		return
	}
	handleResponse(writer, nil, http.StatusOK, &data.BooksResponse{
		Books: books,
	})
	s.Trace(ctx, "executed books_list: %d", len(books))
}

func (s *service) endpointBookCreate(writer http.ResponseWriter, request *http.Request) {
	var bookPartial data.BookPartial

	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "book_create")()
	bytes, err := io.ReadAll(request.Body)
	defer request.Body.Close()
	if err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	if err := json.Unmarshal(bytes, &bookPartial); err != nil {
		handleResponse(writer, data.NewError(data.ErrorKindValidation,
			"invalid request payload: %s", err), 0, nil)
		return
	}
	if err := bookPartial.Validate(); err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	books, err := s.BookCreate(ctx, bookPartial)
	if err != nil {
		s.Error(ctx, "error while creating book: %s", err)
		handleResponse(writer, err, 0, nil)
		return
	}
	handleResponse(writer, nil, http.StatusCreated, &data.BooksResponse{
		Books:   books,
		Message: "Book created successfully",
	})
	s.Trace(ctx, "executed book_create")
}

func (s *service) endpointBookUpdate(writer http.ResponseWriter, request *http.Request) {
	var bookPartial data.BookPartial

	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "book_update")()
	id, err := idFromPath(mux.Vars(request))
	if err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	bytes, err := io.ReadAll(request.Body)
	defer request.Body.Close()
	if err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	if err := json.Unmarshal(bytes, &bookPartial); err != nil {
		handleResponse(writer, data.NewError(data.ErrorKindValidation,
			"invalid request payload: %s", err), 0, nil)
		return
	}
	if err := bookPartial.Validate(); err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	books, err := s.BookUpdate(ctx, id, bookPartial)
	if err != nil {
		s.Error(ctx, "error while updating book (%d): %s", id, err)
		handleResponse(writer, err, 0, nil)
		return
	}
	handleResponse(writer, nil, http.StatusOK, &data.BooksResponse{
		Books:   books,
		Message: "Book updated successfully",
	})
	s.Trace(ctx, "executed book_update: %d", id)
}

func (s *service) endpointBookDelete(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "book_delete")()
	id, err := idFromPath(mux.Vars(request))
	if err != nil {
		handleResponse(writer, err, 0, nil)
		return
	}
	books, err := s.BookDelete(ctx, id)
	if err != nil {
		s.Error(ctx, "error while deleting book (%d): %s", id, err)
		handleResponse(writer, err, 0, nil)
		return
	}
	handleResponse(writer, nil, http.StatusOK, &data.BooksResponse{
		Books:   books,
		Message: "Book deleted successfully",
	})
	s.Trace(ctx, "executed book_delete: %d", id)
}

func (s *service) endpointHealth(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	defer s.timer(ctx, "health")()
	if s.Metadata == nil {
		writer.Header().Set(data.HeaderAvailabilityZone,
			data.UnknownAvailabilityZone)
		writeResponse(writer, http.StatusInternalServerError,
			&data.HealthResponse{
				Status:  data.HealthStatusError,
				Message: "Unable to retrieve instance metadata",
			})
		return
	}
	instanceMetadata, err := s.InstanceMetadata(ctx)
	if err != nil {
		s.Error(ctx, "error while fetching instance metadata: %s", err)
		writer.Header().Set(data.HeaderAvailabilityZone,
			data.UnknownAvailabilityZone)
		writeResponse(writer, http.StatusInternalServerError,
			&data.HealthResponse{
				Status:  data.HealthStatusError,
				Message: "Unable to retrieve instance metadata",
			})
		return
	}
	writer.Header().Set(data.HeaderAvailabilityZone,
		instanceMetadata.AvailabilityZone)
	writeResponse(writer, http.StatusOK, &data.HealthResponse{
		Status:           data.HealthStatusHealthy,
		AvailabilityZone: instanceMetadata.AvailabilityZone,
		InstanceId:       instanceMetadata.InstanceId,
		PublicIp:         instanceMetadata.PublicIp,
	})
	s.Trace(ctx, "executed health: %s", instanceMetadata.AvailabilityZone)
}

func (s *service) endpointCacheClear(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			handleResponse(writer, err, 0, nil)
			return
		}
		s.Trace(ctx, "executed cache_clear")
	}
	handleResponse(writer, nil, 0, nil)
}

func (s *service) endpointCountersRead(writer http.ResponseWriter, _ *http.Request) {
	handleResponse(writer, nil, http.StatusOK, s.Counter.ReadAll())
}

func (s *service) endpointCountersClear(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	s.Counter.Reset()
	handleResponse(writer, nil, 0, nil)
	s.Trace(ctx, "executed counters_clear")
}

func (s *service) endpointTimersRead(writer http.ResponseWriter, _ *http.Request) {
	handleResponse(writer, nil, http.StatusOK, s.Timers.ReadAll())
}

func (s *service) endpointTimersClear(writer http.ResponseWriter, request *http.Request) {
	ctx := internal.CtxWithCorrelationId(request.Context(),
		getCorrelationId(request))
	s.Timers.Clear()
	handleResponse(writer, nil, 0, nil)
	s.Trace(ctx, "executed timers_clear")
}

func (s *service) buildRoutes() {
	s.Router.HandleFunc("/", s.endpointDefault())
	s.Router.HandleFunc(data.RouteHealth, s.endpointHealth)
	s.Router.HandleFunc(data.RouteAuthors, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointAuthorsList(w, r)
		case http.MethodPost:
			s.endpointAuthorCreate(w, r)
		}
	})
	s.Router.HandleFunc(data.RouteAuthorsId, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodPut:
			s.endpointAuthorUpdate(w, r)
		case http.MethodDelete:
			s.endpointAuthorDelete(w, r)
		}
	})
	s.Router.HandleFunc(data.RouteBooks, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointBooksList(w, r)
		case http.MethodPost:
			s.endpointBookCreate(w, r)
		}
	})
	s.Router.HandleFunc(data.RouteBooksId, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodPut:
			s.endpointBookUpdate(w, r)
		case http.MethodDelete:
			s.endpointBookDelete(w, r)
		}
	})
	s.Router.HandleFunc(data.RouteCounters, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointCountersRead(w, r)
		case http.MethodDelete:
			s.endpointCountersClear(w, r)
		}
	})
	s.Router.HandleFunc(data.RouteCache, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodDelete:
			s.endpointCacheClear(w, r)
		}
	})
	s.Router.HandleFunc(data.RouteTimers, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			s.endpointTimersRead(w, r)
		case http.MethodDelete:
			s.endpointTimersClear(w, r)
		}
	})
}

func (s *service) Configure(envs map[string]string) error {
	if address, ok := envs["SERVICE_ADDRESS"]; ok {
		s.config.address = address
	}
	if port, ok := envs["SERVICE_PORT"]; ok {
		s.config.port = port
	}
	if shutdownTimeoutString, ok := envs["SERVICE_SHUTDOWN_TIMEOUT"]; ok {
		if shutdownTimeoutInt, err := strconv.Atoi(shutdownTimeoutString); err == nil {
			if timeout := time.Duration(shutdownTimeoutInt) * time.Second; timeout > 0 {
				s.config.shutdownTimeout = timeout
			}
		}
	}
	if allowCredentialsString, ok := envs["SERVICE_CORS_ALLOW_CREDENTIALS"]; ok {
		if allowCredentials, err := strconv.ParseBool(allowCredentialsString); err == nil {
			s.config.allowCredentials = allowCredentials
		}
	}
	if allowedOrigins, ok := envs["SERVICE_CORS_ALLOWED_ORIGINS"]; ok {
		s.config.allowedOrigins = strings.Split(allowedOrigins, ",")
	}
	if allowedMethods, ok := envs["SERVICE_CORS_ALLOWED_METHODS"]; ok {
		s.config.allowedMethods = strings.Split(allowedMethods, ",")
	}
	if allowedHeaders, ok := envs["SERVICE_CORS_ALLOWED_HEADERS"]; ok {
		s.config.allowedHeaders = strings.Split(allowedHeaders, ",")
	}
	if corsDisabledString, ok := envs["SERVICE_CORS_DISABLED"]; ok {
		if corsDisabled, err := strconv.ParseBool(corsDisabledString); err == nil {
			s.config.corsDisabled = corsDisabled
		}
	}
	if corsDebug, ok := envs["SERVICE_CORS_DEBUG"]; ok {
		if corsDebug, err := strconv.ParseBool(corsDebug); err == nil {
			s.config.corsDebug = corsDebug
		}
	}
	if timersEnabled := envs["SERVICE_TIMERS_ENABLED"]; timersEnabled != "" {
		s.config.timersEnabled, _ = strconv.ParseBool(timersEnabled)
	}
	return nil
}

func (s *service) Open(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.Server.Addr = net.JoinHostPort(s.config.address, s.config.port)
	s.buildRoutes()
	if err := s.launchServer(); err != nil {
		return err
	}
	return nil
}

func (s *service) Close(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if s.config.shutdownTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.config.shutdownTimeout)
		defer cancel()
	}
	if err := s.Server.Shutdown(ctx); err != nil {
		s.Error(ctx, "error while shutting down the server: %s", err)
	}
	s.cancel()
	s.Wait()
	return nil
}
