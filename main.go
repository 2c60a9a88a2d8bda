package main

import (
	"fmt"
	"os"
	"strings"

	"portfolio/app/config"
	"portfolio/service"
)

const CliVersion = "1.0.0"

// exit is swapped out by tests
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to a subcommand and exits with its status.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	args := os.Args[2:]
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("portfolio version %s\n", CliVersion)
	case "serve":
		exit(service.RunAppServer(config.Load()))
	case "render":
		exit(service.RunRender(config.Load(), args, os.Stdout, os.Stderr))
	case "age":
		exit(service.RunAge(args, os.Stdout, os.Stderr))
	case "db":
		service.Configure(config.Load())
		exit(service.HandleCommand(args))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: portfolio <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the site and blog API (configured from env / .env).
  render [--api URL] [--page blog|index]
                                 Load a page once against the blog API and print its HTML.
  age [--date YYYY-MM-DD]        Print the age shown on the home page.
  db <init|clean|backup|restore <file>>
                                 Maintain the badger blog database.
`
	fmt.Println(helpText)
}
