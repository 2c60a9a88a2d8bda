package service

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"portfolio/app/age"
	"portfolio/app/config"
	"portfolio/app/controllers"
	"portfolio/app/loader"
)

// RunRender loads one page against the blog API and writes its HTML to
// stdout. Alerts raised while loading go to stderr.
func RunRender(cfg config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	api := fs.String("api", cfg.BlogAPIURL, "blog API endpoint")
	name := fs.String("page", "blog", "page to render (blog or index)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	l := loader.New(*api, loader.WithTimeout(cfg.FetchTimeout))
	pages, err := controllers.NewPageController(l, cfg.ViewsDir)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load templates: %v\n", err)
		return 1
	}

	title := "Blog"
	if *name == "index" {
		title = "Home"
	}
	res, err := pages.Render(context.Background(), stdout, *name, title)
	if res.LoadErr != nil {
		fmt.Fprintf(stderr, "alert: %v (from %s)\n", res.LoadErr, l.Endpoint())
	}
	if err != nil {
		fmt.Fprintf(stderr, "Render failed: %v\n", err)
		return 1
	}
	return 0
}

// RunAge prints the current age, or the age on --date.
func RunAge(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("age", flag.ContinueOnError)
	fs.SetOutput(stderr)
	date := fs.String("date", "", "date to compute the age on (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	now := time.Now()
	if *date != "" {
		d, err := time.Parse("2006-01-02", *date)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid date %q: expected YYYY-MM-DD\n", *date)
			return 1
		}
		now = d
	}
	fmt.Fprintln(stdout, age.Calculate(age.Birthday, now))
	return 0
}
