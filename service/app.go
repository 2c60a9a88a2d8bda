package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"portfolio/app/config"
	"portfolio/app/controllers"
	"portfolio/app/loader"
	"portfolio/app/repositories"
	"portfolio/app/routes"
	"portfolio/app/services"
)

// RunAppServer starts the site and blog API and blocks until SIGINT or
// SIGTERM. It returns the process exit code.
func RunAppServer(cfg config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Printf("Failed to open %s store: %v", cfg.Store, err)
		return 1
	}
	defer closeStore()

	pages, err := controllers.NewPageController(
		loader.New(cfg.BlogAPIURL, loader.WithTimeout(cfg.FetchTimeout)),
		cfg.ViewsDir,
	)
	if err != nil {
		log.Printf("Failed to load templates from %s: %v", cfg.ViewsDir, err)
		return 1
	}

	router := routes.SetupRoutes(routes.Deps{
		Blog:           controllers.NewBlogController(services.NewBlogService(repo)),
		Pages:          pages,
		StaticDir:      cfg.StaticDir,
		AdminTokenHash: cfg.AdminTokenHash,
	})

	log.Printf("Starting portfolio server on %s (%s store)", cfg.Addr(), cfg.Store)
	if err := routes.StartServer(ctx, cfg.Addr(), router); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

// openStore opens the repository selected by cfg.Store. The returned func
// releases it.
func openStore(ctx context.Context, cfg config.Config) (repositories.BlogPostRepository, func(), error) {
	switch cfg.Store {
	case "badger":
		db, err := repositories.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewBadgerBlogPostRepository(db), func() { db.Close() }, nil
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, nil, fmt.Errorf("MONGO_URI is required for the mongo store")
		}
		client, err := repositories.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewMongoBlogPostRepository(client.Database(cfg.MongoDB))
		return repo, func() { client.Disconnect(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
