package routes

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"portfolio/app/controllers"
	"portfolio/app/middleware"

	"github.com/gorilla/mux"
)

// Deps holds everything the router dispatches to.
type Deps struct {
	Blog           *controllers.BlogController
	Pages          *controllers.PageController
	StaticDir      string
	AdminTokenHash string
}

// SetupRoutes defines the application's routes. CORS wraps the router so
// preflight requests are answered before method matching.
func SetupRoutes(d Deps) http.Handler {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.NotFoundHandler = http.HandlerFunc(notFound)

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.NotFoundHandler = http.HandlerFunc(notFound)

	admin := middleware.AdminOnly(d.AdminTokenHash)

	api.HandleFunc("/blogposts", d.Blog.Index).Methods("GET")
	api.HandleFunc("/blogposts/summaries", d.Blog.Summaries).Methods("GET")
	api.HandleFunc("/blogposts/get", d.Blog.Show).Methods("GET")
	api.HandleFunc("/blogposts/search", d.Blog.Search).Methods("GET")
	api.Handle("/blogposts/post", admin(http.HandlerFunc(d.Blog.Create))).Methods("POST")
	api.Handle("/blogposts/edit", admin(http.HandlerFunc(d.Blog.Edit))).Methods("POST")
	api.Handle("/deleteall", admin(http.HandlerFunc(d.Blog.DeleteAll))).Methods("POST")

	// Web routes
	if d.Pages != nil {
		router.HandleFunc("/", d.Pages.Home).Methods("GET", "HEAD")
		router.HandleFunc("/blog", d.Pages.Blog).Methods("GET", "HEAD")
	}

	// Serve static files
	if d.StaticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir))))
	}

	return middleware.CORS(router)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		return
	}
	http.NotFound(w, r)
}

// StartServer serves handler on addr until ctx is cancelled, then shuts
// down gracefully.
func StartServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
