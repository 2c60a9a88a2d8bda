package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"
)

// BlogController serves the blog post JSON API
type BlogController struct {
	blogService *services.BlogService
}

// NewBlogController creates a new BlogController
func NewBlogController(service *services.BlogService) *BlogController {
	return &BlogController{blogService: service}
}

// Index returns every post as a JSON array
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := bc.blogService.ListPosts(r.Context())
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Summaries returns every post reduced to the fields the blog list shows
func (bc *BlogController) Summaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := bc.blogService.ListSummaries(r.Context())
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, summaries)
}

// Create stores a new post from a JSON body
func (bc *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.BlogPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := bc.blogService.AddPost(r.Context(), &post); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrInvalidPost) {
			status = http.StatusBadRequest
		}
		sendError(w, err.Error(), status)
		return
	}

	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"inserted_id": post.ID,
		"document":    post,
	})
}

// Edit applies a partial update. The body carries the post id plus the
// fields to change.
func (bc *BlogController) Edit(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		sendError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	rawID, ok := payload["id"]
	if !ok {
		sendError(w, "id is required", http.StatusBadRequest)
		return
	}
	id, ok := parseID(rawID)
	if !ok {
		sendError(w, "invalid id", http.StatusBadRequest)
		return
	}
	delete(payload, "id")

	modified, err := bc.blogService.EditPost(r.Context(), id, payload)
	switch {
	case errors.Is(err, models.ErrNoUpdates):
		sendError(w, "no valid fields provided to update; provide at least one", http.StatusBadRequest)
		return
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, "post not found", http.StatusNotFound)
		return
	case err != nil:
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"modified_count": modified,
	})
}

// Show returns one post selected by the id query parameter
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		sendError(w, "id query param required", http.StatusBadRequest)
		return
	}
	id, ok := parseID(idStr)
	if !ok {
		sendError(w, "invalid id", http.StatusBadRequest)
		return
	}

	post, err := bc.blogService.GetPost(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Search returns posts matching the q query parameter
func (bc *BlogController) Search(w http.ResponseWriter, r *http.Request) {
	results, err := bc.blogService.Search(r.Context(), r.URL.Query().Get("q"))
	if errors.Is(err, services.ErrQueryRequired) {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, results)
}

// DeleteAll removes every post
func (bc *BlogController) DeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := bc.blogService.DeleteAll(r.Context())
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "all blogposts deleted successfully",
		"deleted_count": count,
	})
}

// parseID accepts a positive integer given as a JSON number or a string.
func parseID(v interface{}) (int, bool) {
	switch id := v.(type) {
	case float64:
		if id < 1 || id != float64(int(id)) {
			return 0, false
		}
		return int(id), true
	case string:
		n, err := strconv.Atoi(id)
		if err != nil || n < 1 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Helper functions for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}
