package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"portfolio/app/controllers"
	"portfolio/app/loader"
	"portfolio/app/models"
	"portfolio/app/repositories"
	"portfolio/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

const testViewsDir = "../views"

func setupTestStatic(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "style.css"), []byte("body { background: #f0f0f0; }"), 0644))
	return dir
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// testApp is the full router served over a real listener, so the blog page
// loader fetches from the same API it renders.
type testApp struct {
	handler http.Handler
	server  *httptest.Server
	service *services.BlogService
}

func setupTestApp(t *testing.T, adminHash string) *testApp {
	t.Helper()
	app := &testApp{}
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.handler.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)

	repo := repositories.NewBadgerBlogPostRepository(setupTestDB(t))
	app.service = services.NewBlogService(repo)

	pages, err := controllers.NewPageController(
		loader.New(app.server.URL+"/api/blogposts", loader.WithTimeout(2*time.Second)),
		testViewsDir,
	)
	require.NoError(t, err)
	pages.SetClock(func() time.Time { return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC) })

	app.handler = SetupRoutes(Deps{
		Blog:           controllers.NewBlogController(app.service),
		Pages:          pages,
		StaticDir:      setupTestStatic(t),
		AdminTokenHash: adminHash,
	})
	return app
}

func setupTestData(t *testing.T, app *testApp, titles ...string) {
	for _, title := range titles {
		post := &models.BlogPost{
			Title:         title,
			Thumbnail:     "/static/img/thumb.png",
			Category:      "education",
			DatePublished: "October 28 2025",
			LastUpdated:   "October 28 2025",
			Description:   "About " + title,
			Markdown:      "# " + title,
		}
		require.NoError(t, app.service.AddPost(context.Background(), post))
	}
}
