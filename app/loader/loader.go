package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"portfolio/app/models"
	"portfolio/app/page"
	"portfolio/app/render"
)

// DefaultEndpoint is where the blog API lives on a local install.
const DefaultEndpoint = "http://localhost:8080/api/blogposts"

// Failure kinds. Every one of them sends the loader down the fallback path.
var (
	ErrTransport = errors.New("blog api unreachable")
	ErrStatus    = errors.New("blog api returned an error status")
	ErrMalformed = errors.New("blog api returned malformed json")
	ErrNotArray  = errors.New("blog api did not return a list")
	ErrEmpty     = errors.New("no blog posts found")
)

// Outcome says which path a load took.
type Outcome int

const (
	Loaded Outcome = iota
	Empty
	TransportError
)

func (o Outcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case Empty:
		return "empty"
	case TransportError:
		return "transport_error"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// LoadError carries the failure kind plus the underlying cause.
type LoadError struct {
	Kind   error
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%v: %d", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Loader fetches post summaries from the blog API and renders them.
type Loader struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient replaces the HTTP client. The client is copied, so later
// options never modify the caller's value.
func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// New builds a loader for endpoint. An empty endpoint means DefaultEndpoint.
func New(endpoint string, opts ...Option) *Loader {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	l := &Loader{
		client:   &http.Client{},
		endpoint: endpoint,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = &http.Client{}
	}
	client := *l.client
	if l.timeout > 0 {
		client.Timeout = l.timeout
	}
	l.client = &client
	return l
}

// Endpoint returns the URL the loader requests.
func (l *Loader) Endpoint() string {
	return l.endpoint
}

// Fetch issues a single GET and returns the decoded list. Any element that
// does not decode as a post summary comes back as an empty summary so the
// list length always matches the response.
func (l *Loader) Fetch(ctx context.Context) ([]models.PostSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, &LoadError{Kind: ErrTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{Kind: ErrTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &LoadError{Kind: ErrStatus, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Kind: ErrTransport, Err: err}
	}
	return decodeSummaries(body)
}

func decodeSummaries(body []byte) ([]models.PostSummary, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &LoadError{Kind: ErrMalformed, Err: err}
	}
	if _, ok := raw.([]any); !ok {
		return nil, &LoadError{Kind: ErrNotArray}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &LoadError{Kind: ErrMalformed, Err: err}
	}
	if len(items) == 0 {
		return nil, &LoadError{Kind: ErrEmpty}
	}

	posts := make([]models.PostSummary, len(items))
	for i, item := range items {
		posts[i] = decodeLenient(item)
	}
	return posts, nil
}

// decodeLenient keeps whichever fields decode. Numbers and booleans are
// shown as written. Missing, null, object and array values become empty.
func decodeLenient(item json.RawMessage) models.PostSummary {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(item), &fields); err != nil {
		return models.PostSummary{}
	}
	str := func(key string) string {
		v, ok := fields[key]
		if !ok {
			return ""
		}
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		var val any
		if err := dec.Decode(&val); err != nil {
			return ""
		}
		switch x := val.(type) {
		case string:
			return x
		case json.Number:
			return x.String()
		case bool:
			return strconv.FormatBool(x)
		}
		return ""
	}
	return models.PostSummary{
		Title:         str("title"),
		Category:      str("category"),
		DatePublished: str("date_published"),
		LastUpdated:   str("last_updated"),
	}
}

// Load fetches posts into doc's container. On failure it alerts the reader
// and renders the fallback sample list instead. The loading indicator is
// hidden once rendering is done on either path. The returned error is the
// fetch failure, already surfaced through doc.Alert.
func (l *Loader) Load(ctx context.Context, doc *page.Document) (Outcome, error) {
	container := doc.ElementByID(page.ContainerID)
	loading := doc.ElementByID(page.LoadingID)

	posts, err := l.Fetch(ctx)
	outcome := Loaded
	if err != nil {
		outcome = Classify(err)
		doc.Alert(err.Error())
		posts = models.FallbackPosts()
	}

	render.RenderPosts(container, posts)
	if loading != nil {
		loading.Hide()
	}
	return outcome, err
}

// Classify maps a fetch error onto an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Loaded
	case errors.Is(err, ErrEmpty):
		return Empty
	default:
		return TransportError
	}
}
