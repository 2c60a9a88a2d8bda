package page

import (
	"html/template"
	"strings"
	"sync"
)

// Element IDs the site's page markup relies on.
const (
	LoadingID   = "loading-buffer"
	ContainerID = "blogpost-div"
	AgeID       = "age"
)

// Element is one addressable node of a page. Content is append-only.
type Element struct {
	ID     string
	mu     sync.Mutex
	inner  strings.Builder
	hidden bool
}

// AppendHTML adds markup to the end of the element.
func (e *Element) AppendHTML(h template.HTML) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inner.WriteString(string(h))
}

// SetText replaces the element content with escaped text.
func (e *Element) SetText(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inner.Reset()
	e.inner.WriteString(template.HTMLEscapeString(s))
}

// Hide marks the element as not displayed.
func (e *Element) Hide() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hidden = true
}

func (e *Element) Hidden() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hidden
}

// HTML returns the element content. It was escaped when written.
func (e *Element) HTML() template.HTML {
	e.mu.Lock()
	defer e.mu.Unlock()
	return template.HTML(e.inner.String())
}

// Document is a server-side stand-in for the page a browser would hold:
// elements addressed by ID plus the alerts raised while it was built.
type Document struct {
	mu       sync.Mutex
	elements map[string]*Element
	alerts   []string
}

// New creates a document holding the given element IDs. With no IDs it
// holds the loading indicator, the post container and the age target.
func New(ids ...string) *Document {
	if len(ids) == 0 {
		ids = []string{LoadingID, ContainerID, AgeID}
	}
	d := &Document{elements: make(map[string]*Element, len(ids))}
	for _, id := range ids {
		d.elements[id] = &Element{ID: id}
	}
	return d
}

// ElementByID returns the element or nil when the page has none.
func (d *Document) ElementByID(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elements[id]
}

// Alert records a notification the reader must see.
func (d *Document) Alert(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, msg)
}

// Alerts returns the recorded notifications in order.
func (d *Document) Alerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.alerts))
	copy(out, d.alerts)
	return out
}
