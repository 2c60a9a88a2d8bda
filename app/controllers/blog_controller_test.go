package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio/app/models"
	"portfolio/app/repositories/mock"
	"portfolio/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"title": "Test Post",
	"thumbnail": "/img/t.png",
	"category": "education",
	"date_published": "October 28 2025",
	"last_updated": "October 28 2025",
	"description": "A test post",
	"markdown": "# Test"
}`

func setupTestBlogController(t *testing.T) (*mux.Router, *mock.BlogPostRepository) {
	t.Helper()
	repo := mock.NewBlogPostRepository()
	controller := NewBlogController(services.NewBlogService(repo))

	router := mux.NewRouter()
	router.HandleFunc("/api/blogposts", controller.Index).Methods("GET")
	router.HandleFunc("/api/blogposts/summaries", controller.Summaries).Methods("GET")
	router.HandleFunc("/api/blogposts/post", controller.Create).Methods("POST")
	router.HandleFunc("/api/blogposts/edit", controller.Edit).Methods("POST")
	router.HandleFunc("/api/blogposts/get", controller.Show).Methods("GET")
	router.HandleFunc("/api/blogposts/search", controller.Search).Methods("GET")
	router.HandleFunc("/api/deleteall", controller.DeleteAll).Methods("POST")
	return router, repo
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestBlogController(t *testing.T) {
	router, _ := setupTestBlogController(t)

	t.Run("empty list is an empty array", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/blogposts", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("create post", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/blogposts/post", validPayload)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			InsertedID int             `json:"inserted_id"`
			Document   models.BlogPost `json:"document"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.InsertedID)
		assert.Equal(t, 1, resp.Document.ID)
		assert.Equal(t, "Test Post", resp.Document.Title)
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/blogposts/post", `{"title":"only a title"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "missing required blog fields")
	})

	t.Run("create rejects bad json", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/blogposts/post", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w), "invalid JSON")
	})

	t.Run("list returns summaries fields", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/blogposts", "")
		require.Equal(t, http.StatusOK, w.Code)

		var list []models.PostSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, models.PostSummary{
			Title:         "Test Post",
			Category:      "education",
			DatePublished: "October 28 2025",
			LastUpdated:   "October 28 2025",
		}, list[0])
	})

	t.Run("summaries drop the body fields", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/blogposts/summaries", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"title":"Test Post","category":"education","date_published":"October 28 2025","last_updated":"October 28 2025"}]`, w.Body.String())
	})

	t.Run("get post", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/blogposts/get?id=1", "")
		require.Equal(t, http.StatusOK, w.Code)
		var post models.BlogPost
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, "Test Post", post.Title)
	})

	t.Run("get errors", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/blogposts/get", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "id query param required", decodeError(t, w))

		w = do(router, http.MethodGet, "/api/blogposts/get?id=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid id", decodeError(t, w))

		w = do(router, http.MethodGet, "/api/blogposts/get?id=99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "post not found", decodeError(t, w))
	})

	t.Run("edit post", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/blogposts/edit", `{"id": 1, "title": "Edited", "category": ""}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"modified_count": 1}`, w.Body.String())

		w = do(router, http.MethodGet, "/api/blogposts/get?id=1", "")
		var post models.BlogPost
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, "Edited", post.Title)
		assert.Equal(t, "education", post.Category)
	})

	t.Run("edit accepts string id", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/blogposts/edit", `{"id": "1", "description": "new"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("modified_count counts the post once", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/blogposts/edit", `{"id": 1, "title": "Edited again", "category": "go", "markdown": "# new"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"modified_count": 1}`, w.Body.String())
	})

	t.Run("unchanged values report zero modified", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/blogposts/edit", `{"id": 1, "title": "Edited again"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"modified_count": 0}`, w.Body.String())
	})

	t.Run("edit errors", func(t *testing.T) {
		tests := []struct {
			name   string
			body   string
			status int
			msg    string
		}{
			{name: "bad json", body: `nope`, status: http.StatusBadRequest, msg: "invalid JSON"},
			{name: "no id", body: `{"title":"x"}`, status: http.StatusBadRequest, msg: "id is required"},
			{name: "bad id", body: `{"id": 1.5, "title":"x"}`, status: http.StatusBadRequest, msg: "invalid id"},
			{name: "no fields", body: `{"id": 1}`, status: http.StatusBadRequest, msg: "no valid fields provided to update; provide at least one"},
			{name: "unknown post", body: `{"id": 50, "title":"x"}`, status: http.StatusNotFound, msg: "post not found"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := do(router, http.MethodPost, "/api/blogposts/edit", tt.body)
				assert.Equal(t, tt.status, w.Code)
				assert.Equal(t, tt.msg, decodeError(t, w))
			})
		}
	})

	t.Run("search", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/blogposts/search?q=edit", "")
		require.Equal(t, http.StatusOK, w.Code)
		var posts []models.BlogPost
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		assert.Len(t, posts, 1)

		w = do(router, http.MethodGet, "/api/blogposts/search?q=zzz", "")
		assert.JSONEq(t, `[]`, w.Body.String())

		w = do(router, http.MethodGet, "/api/blogposts/search", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "q query param required", decodeError(t, w))
	})

	t.Run("delete all", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/deleteall", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"all blogposts deleted successfully","deleted_count":1}`, w.Body.String())

		w = do(router, http.MethodGet, "/api/blogposts", "")
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestBlogControllerStoreFailure(t *testing.T) {
	router, repo := setupTestBlogController(t)
	repo.Err = assert.AnError

	w := do(router, http.MethodGet, "/api/blogposts", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeError(t, w), "error fetching blog posts")

	w = do(router, http.MethodPost, "/api/blogposts/post", validPayload)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int
		ok   bool
	}{
		{in: float64(3), want: 3, ok: true},
		{in: "12", want: 12, ok: true},
		{in: float64(0), ok: false},
		{in: float64(-1), ok: false},
		{in: float64(2.5), ok: false},
		{in: "", ok: false},
		{in: "x1", ok: false},
		{in: true, ok: false},
		{in: nil, ok: false},
	}
	for _, tt := range tests {
		got, ok := parseID(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}
