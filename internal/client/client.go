package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/antonio-alexander/go-books-admin/internal"
	"github.com/antonio-alexander/go-books-admin/internal/data"
	"github.com/antonio-alexander/go-books-admin/internal/utilities"

	"github.com/pkg/errors"
)

// Client is the one place requests, timeouts and error mapping are
// implemented; the server's message text surfaces verbatim so a
// frontend can show it in a banner unmodified
type Client interface {
	AuthorsList(ctx context.Context) ([]*data.Author, error)
	AuthorCreate(ctx context.Context, authorPartial data.AuthorPartial) (*data.AuthorsResponse, error)
	AuthorUpdate(ctx context.Context, id int64, authorPartial data.AuthorPartial) (*data.AuthorsResponse, error)
	AuthorDelete(ctx context.Context, id int64) (*data.AuthorsResponse, error)
	BooksList(ctx context.Context) ([]*data.Book, error)
	BookCreate(ctx context.Context, bookPartial data.BookPartial) (*data.BooksResponse, error)
	BookUpdate(ctx context.Context, id int64, bookPartial data.BookPartial) (*data.BooksResponse, error)
	BookDelete(ctx context.Context, id int64) (*data.BooksResponse, error)
	Health(ctx context.Context) (*data.HealthResponse, error)
	CacheClear(ctx context.Context) error
	CountersRead(ctx context.Context) (*data.CacheCounters, error)
	CountersClear(ctx context.Context) error
	TimersRead(ctx context.Context) (*data.Timers, error)
	TimersClear(ctx context.Context) error
}

type client struct {
	sync.RWMutex
	config struct {
		protocol   string
		address    string
		port       string
		timeout    int64
		sslCaFile  string
		sslCrtFile string
		sslKeyFile string
	}
	address string
	utilities.Logger
	*http.Client
}

func NewClient(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Client
} {
	c := &client{
		Client: &http.Client{},
		Logger: utilities.NewLogger(),
	}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			c.Logger = p
		}
	}
	return c
}

func (c *client) doRequest(ctx context.Context, uri, method string, item []byte) ([]byte, error) {
	var body io.Reader

	if item != nil {
		body = bytes.NewBuffer(item)
	}
	request, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, err
	}
	request.Header.Add("Content-Type", "application/json")
	request.Header.Add("Correlation-Id", internal.CorrelationIdFromCtx(ctx))
	response, err := c.Do(request)
	if err != nil {
		return nil, err
	}
	bytes, err := io.ReadAll(response.Body)
	defer response.Body.Close()
	if err != nil {
		return nil, err
	}
	switch response.StatusCode {
	default:
		var errorResponse data.ErrorResponse

		if err := json.Unmarshal(bytes, &errorResponse); err != nil ||
			errorResponse.Message == "" {
			return nil, errors.Errorf("status code: %d; %s",
				response.StatusCode, string(bytes))
		}
		return nil, errors.New(errorResponse.Message)
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return bytes, nil
	}
}

func (c *client) Configure(envs map[string]string) error {
	c.config.protocol = "http"
	if address, ok := envs["CLIENT_ADDRESS"]; ok {
		c.config.address = address
	}
	if port, ok := envs["CLIENT_PORT"]; ok {
		c.config.port = port
	}
	if protocol, ok := envs["CLIENT_PROTOCOL"]; ok && protocol != "" {
		c.config.protocol = protocol
	}
	if timeout, ok := envs["CLIENT_TIMEOUT"]; ok {
		i, err := strconv.ParseInt(timeout, 10, 64)
		if err != nil {
			return err
		}
		c.config.timeout = i
	}
	if sslCaFile, ok := envs["SSL_CA_FILE"]; ok {
		c.config.sslCaFile = sslCaFile
	}
	if sslKeyFile, ok := envs["SSL_KEY_FILE"]; ok {
		c.config.sslKeyFile = sslKeyFile
	}
	if sslCrtFile, ok := envs["SSL_CRT_FILE"]; ok {
		c.config.sslCrtFile = sslCrtFile
	}
	return nil
}

func (c *client) Open(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	switch c.config.protocol {
	default:
		return errors.Errorf("unsupported protocol: %s", c.config.protocol)
	case "http", "https":
		c.address = fmt.Sprintf("%s://%s", c.config.protocol,
			net.JoinHostPort(c.config.address, c.config.port))
	}
	c.Client.Timeout = time.Duration(c.config.timeout) * time.Second
	transport, err := getTlsConfig(c.config.sslCaFile, c.config.sslCrtFile,
		c.config.sslKeyFile)
	if err != nil {
		return err
	}
	c.Client.Transport = transport
	return nil
}

func (c *client) Close(ctx context.Context) error {
	return nil
}

func (c *client) AuthorsList(ctx context.Context) ([]*data.Author, error) {
	uri := c.address + data.RouteAuthors
	bytes, err := c.doRequest(ctx, uri, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	response := &data.AuthorsResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response.Authors, nil
}

func (c *client) AuthorCreate(ctx context.Context, authorPartial data.AuthorPartial) (*data.AuthorsResponse, error) {
	bytes, err := json.Marshal(&authorPartial)
	if err != nil {
		return nil, err
	}
	uri := c.address + data.RouteAuthors
	bytes, err = c.doRequest(ctx, uri, http.MethodPost, bytes)
	if err != nil {
		return nil, err
	}
	response := &data.AuthorsResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) AuthorUpdate(ctx context.Context, id int64, authorPartial data.AuthorPartial) (*data.AuthorsResponse, error) {
	bytes, err := json.Marshal(&authorPartial)
	if err != nil {
		return nil, err
	}
	uri := fmt.Sprintf(c.address+data.RouteAuthorsIdf, id)
	bytes, err = c.doRequest(ctx, uri, http.MethodPut, bytes)
	if err != nil {
		return nil, err
	}
	response := &data.AuthorsResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) AuthorDelete(ctx context.Context, id int64) (*data.AuthorsResponse, error) {
	uri := fmt.Sprintf(c.address+data.RouteAuthorsIdf, id)
	bytes, err := c.doRequest(ctx, uri, http.MethodDelete, nil)
	if err != nil {
		return nil, err
	}
	response := &data.AuthorsResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) BooksList(ctx context.Context) ([]*data.Book, error) {
	uri := c.address + data.RouteBooks
	bytes, err := c.doRequest(ctx, uri, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	response := &data.BooksResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response.Books, nil
}

func (c *client) BookCreate(ctx context.Context, bookPartial data.BookPartial) (*data.BooksResponse, error) {
	bytes, err := json.Marshal(&bookPartial)
	if err != nil {
		return nil, err
	}
	uri := c.address + data.RouteBooks
	bytes, err = c.doRequest(ctx, uri, http.MethodPost, bytes)
	if err != nil {
		return nil, err
	}
	response := &data.BooksResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) BookUpdate(ctx context.Context, id int64, bookPartial data.BookPartial) (*data.BooksResponse, error) {
	bytes, err := json.Marshal(&bookPartial)
	if err != nil {
		return nil, err
	}
	uri := fmt.Sprintf(c.address+data.RouteBooksIdf, id)
	bytes, err = c.doRequest(ctx, uri, http.MethodPut, bytes)
	if err != nil {
		return nil, err
	}
	response := &data.BooksResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) BookDelete(ctx context.Context, id int64) (*data.BooksResponse, error) {
	uri := fmt.Sprintf(c.address+data.RouteBooksIdf, id)
	bytes, err := c.doRequest(ctx, uri, http.MethodDelete, nil)
	if err != nil {
		return nil, err
	}
	response := &data.BooksResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response, nil
}

// Health parses the body on failure too: the sentinel values are part
// of the contract and the dashboard displays them
func (c *client) Health(ctx context.Context) (*data.HealthResponse, error) {
	uri := c.address + data.RouteHealth
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Add("Correlation-Id", internal.CorrelationIdFromCtx(ctx))
	httpResponse, err := c.Do(request)
	if err != nil {
		return nil, err
	}
	bytes, err := io.ReadAll(httpResponse.Body)
	defer httpResponse.Body.Close()
	if err != nil {
		return nil, err
	}
	response := &data.HealthResponse{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	if httpResponse.StatusCode != http.StatusOK {
		return response, errors.Errorf("status code: %d; %s",
			httpResponse.StatusCode, response.Message)
	}
	return response, nil
}

func (c *client) CacheClear(ctx context.Context) error {
	uri := c.address + data.RouteCache
	if _, err := c.doRequest(ctx, uri, http.MethodDelete, nil); err != nil {
		return err
	}
	return nil
}

func (c *client) CountersRead(ctx context.Context) (*data.CacheCounters, error) {
	uri := c.address + data.RouteCounters
	bytes, err := c.doRequest(ctx, uri, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	response := &data.CacheCounters{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) CountersClear(ctx context.Context) error {
	uri := c.address + data.RouteCounters
	if _, err := c.doRequest(ctx, uri, http.MethodDelete, nil); err != nil {
		return err
	}
	return nil
}

func (c *client) TimersRead(ctx context.Context) (*data.Timers, error) {
	uri := c.address + data.RouteTimers
	bytes, err := c.doRequest(ctx, uri, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	response := &data.Timers{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) TimersClear(ctx context.Context) error {
	uri := c.address + data.RouteTimers
	if _, err := c.doRequest(ctx, uri, http.MethodDelete, nil); err != nil {
		return err
	}
	return nil
}
