package render

import (
	"bytes"
	"html/template"

	"portfolio/app/models"
	"portfolio/app/page"
)

var postFragment = template.Must(template.New("post").Parse(`
<div class="blogpost-short">
	<p class="title">{{.Title}}</p>
	<p class="metadata">{{.Category}}, {{.DatePublished}}</p>
</div>
`))

// Fragment returns the escaped markup for one post summary.
func Fragment(p models.PostSummary) (template.HTML, error) {
	var buf bytes.Buffer
	if err := postFragment.Execute(&buf, p); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderPost appends the post's fragment to container. A nil container is
// ignored.
func RenderPost(container *page.Element, p models.PostSummary) {
	if container == nil {
		return
	}
	// Executing a fixed template over plain strings cannot fail.
	h, err := Fragment(p)
	if err != nil {
		return
	}
	container.AppendHTML(h)
}

// RenderPosts appends every post in order.
func RenderPosts(container *page.Element, posts []models.PostSummary) {
	for _, p := range posts {
		RenderPost(container, p)
	}
}
