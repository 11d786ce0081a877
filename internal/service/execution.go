package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/antonio-alexander/go-books-admin/internal/data"
)

func idFromPath(pathVariables map[string]string) (int64, error) {
	id, err := strconv.ParseInt(pathVariables[data.PathId], 10, 64)
	if err != nil {
		return 0, data.NewError(data.ErrorKindValidation,
			"invalid id: %q", pathVariables[data.PathId])
	}
	return id, nil
}

func getCorrelationId(request *http.Request) string {
	return request.Header.Get("Correlation-Id")
}

func statusFromError(err error) int {
	switch data.KindOf(err) {
	default:
		return http.StatusInternalServerError
	case data.ErrorKindValidation:
		return http.StatusBadRequest
	case data.ErrorKindNotFound:
		return http.StatusNotFound
	case data.ErrorKindConflict:
		return http.StatusConflict
	}
}

// messageFromError keeps storage internals out of responses; only
// errors from the api's own taxonomy surface verbatim
func messageFromError(err error) string {
	if data.KindOf(err) == data.ErrorKindInternal {
		return "unexpected error while processing request"
	}
	return err.Error()
}

func writeResponse(writer http.ResponseWriter, statusCode int, item any) {
	bytes, err := json.Marshal(item)
	if err != nil {
		fmt.Printf("error handling response: %s\n", err)
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	if _, err := writer.Write(bytes); err != nil {
		fmt.Printf("error handling response: %s\n", err)
	}
}

func handleResponse(writer http.ResponseWriter, err error, statusCode int, item any) {
	if err != nil {
		writeResponse(writer, statusFromError(err),
			&data.ErrorResponse{Message: messageFromError(err)})
		return
	}
	if item == nil {
		writer.WriteHeader(http.StatusNoContent)
		return
	}
	writeResponse(writer, statusCode, item)
}
