package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var (
	ErrUnauthorized = errors.New("github: unauthorized")
	ErrNotFound     = errors.New("github: not found")
	ErrConflict     = errors.New("github: conflict")
)

type apiError struct {
	Message string `json:"message"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	msg := apiMessage(resp)

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case http.StatusUnprocessableEntity:
		// A stale or missing sha on PUT comes back as 422.
		if strings.Contains(strings.ToLower(msg), "sha") {
			return fmt.Errorf("%w: %s", ErrConflict, msg)
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), msg)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), msg)
	}
}

func apiMessage(resp *resty.Response) string {
	if e, ok := resp.Error().(*apiError); ok && e.Message != "" {
		return e.Message
	}
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		return http.StatusText(resp.StatusCode())
	}
	return body
}
