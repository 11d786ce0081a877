package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/antonio-alexander/go-books-admin/internal/client"
	"github.com/antonio-alexander/go-books-admin/internal/data"

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

func authorPartialFromEnvs(envs map[string]string) (data.AuthorPartial, error) {
	authorPartial := data.AuthorPartial{}
	if name, ok := envs["AUTHOR_NAME"]; ok {
		authorPartial.Name = &name
	}
	if birthday, ok := envs["AUTHOR_BIRTHDAY"]; ok {
		date, err := data.ParseDate(birthday)
		if err != nil {
			return authorPartial, err
		}
		authorPartial.Birthday = &date
	}
	if bio, ok := envs["AUTHOR_BIO"]; ok {
		authorPartial.Bio = &bio
	}
	return authorPartial, nil
}

func bookPartialFromEnvs(envs map[string]string) (data.BookPartial, error) {
	bookPartial := data.BookPartial{}
	if title, ok := envs["BOOK_TITLE"]; ok {
		bookPartial.Title = &title
	}
	if description, ok := envs["BOOK_DESCRIPTION"]; ok {
		bookPartial.Description = &description
	}
	if releaseDate, ok := envs["BOOK_RELEASE_DATE"]; ok {
		date, err := data.ParseDate(releaseDate)
		if err != nil {
			return bookPartial, err
		}
		bookPartial.ReleaseDate = &date
	}
	if pages, ok := envs["BOOK_PAGES"]; ok {
		i, err := strconv.ParseInt(pages, 10, 64)
		if err != nil {
			return bookPartial, err
		}
		bookPartial.Pages = &i
	}
	if authorId, ok := envs["BOOK_AUTHOR_ID"]; ok {
		i, err := strconv.ParseInt(authorId, 10, 64)
		if err != nil {
			return bookPartial, err
		}
		bookPartial.AuthorId = &i
	}
	return bookPartial, nil
}

func printJson(item any) error {
	bytes, err := json.MarshalIndent(item, "", " ")
	if err != nil {
		return err
	}
	fmt.Println(string(bytes))
	return nil
}

func Main(args []string, envs map[string]string, osSignal chan (os.Signal)) error {
	fmt.Printf("client: go-books-admin v%s (%s) built from: %s\n",
		Version, GitCommit, GitBranch)

	//create client
	client := client.NewClient()
	if err := client.Configure(envs); err != nil {
		return err
	}
	if err := client.Open(context.Background()); err != nil {
		return err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			fmt.Printf("error while closing client: %s\n", err)
		}
	}()

	// execute command
	ctx, command := context.Background(), envs["COMMAND"]
	id, _ := strconv.ParseInt(envs["ID"], 10, 64)
	switch command {
	default:
		return errors.Errorf("unsupported command: %s", command)
	case "authors_list":
		authors, err := client.AuthorsList(ctx)
		if err != nil {
			return err
		}
		return printJson(authors)
	case "author_create":
		authorPartial, err := authorPartialFromEnvs(envs)
		if err != nil {
			return err
		}
		response, err := client.AuthorCreate(ctx, authorPartial)
		if err != nil {
			return err
		}
		return printJson(response)
	case "author_update":
		authorPartial, err := authorPartialFromEnvs(envs)
		if err != nil {
			return err
		}
		response, err := client.AuthorUpdate(ctx, id, authorPartial)
		if err != nil {
			return err
		}
		return printJson(response)
	case "author_delete":
		response, err := client.AuthorDelete(ctx, id)
		if err != nil {
			return err
		}
		return printJson(response)
	case "books_list":
		books, err := client.BooksList(ctx)
		if err != nil {
			return err
		}
		return printJson(books)
	case "book_create":
		bookPartial, err := bookPartialFromEnvs(envs)
		if err != nil {
			return err
		}
		response, err := client.BookCreate(ctx, bookPartial)
		if err != nil {
			return err
		}
		return printJson(response)
	case "book_update":
		bookPartial, err := bookPartialFromEnvs(envs)
		if err != nil {
			return err
		}
		response, err := client.BookUpdate(ctx, id, bookPartial)
		if err != nil {
			return err
		}
		return printJson(response)
	case "book_delete":
		response, err := client.BookDelete(ctx, id)
		if err != nil {
			return err
		}
		return printJson(response)
	case "health":
		health, err := client.Health(ctx)
		if err != nil {
			return err
		}
		return printJson(health)
	}
}
