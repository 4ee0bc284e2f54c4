package content

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// LoadError reports a content resource that is missing or not valid JSON.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load content %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader fetches the content resource. Sources starting with http:// or
// https:// are fetched over HTTP with a cache-busting query parameter;
// anything else is read from disk.
type Loader struct {
	Source string

	client *resty.Client
	now    func() time.Time
}

// NewLoader creates a Loader for source.
func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Loader{
		Source: source,
		client: resty.New().SetTimeout(timeout),
		now:    time.Now,
	}
}

func (l *Loader) remote() bool {
	return strings.HasPrefix(l.Source, "http://") || strings.HasPrefix(l.Source, "https://")
}

// Raw returns the unparsed resource bytes.
func (l *Loader) Raw(ctx context.Context) ([]byte, error) {
	if !l.remote() {
		b, err := os.ReadFile(l.Source)
		if err != nil {
			return nil, &LoadError{Source: l.Source, Err: err}
		}
		return b, nil
	}
	resp, err := l.client.R().
		SetContext(ctx).
		SetQueryParam("t", strconv.FormatInt(l.now().UnixNano(), 10)).
		SetHeader("Cache-Control", "no-cache").
		Get(l.Source)
	if err != nil {
		return nil, &LoadError{Source: l.Source, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &LoadError{Source: l.Source, Err: fmt.Errorf("http %d", resp.StatusCode())}
	}
	return resp.Body(), nil
}

// Load fetches and parses the document.
func (l *Loader) Load(ctx context.Context) (*Document, error) {
	b, err := l.Raw(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(b)
	if err != nil {
		return nil, &LoadError{Source: l.Source, Err: err}
	}
	return doc, nil
}
