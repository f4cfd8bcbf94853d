package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"texttovideo/archive"
	"texttovideo/client"
	"texttovideo/config"
	"texttovideo/delivery"
	"texttovideo/events"
	"texttovideo/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	os.Exit(run())
}

// run holds the program so deferred cleanup happens before main exits
func run() int {
	cfg := config.Load()

	// Parse command-line flags
	apiURL := flag.String("url", cfg.APIURL, "Text-to-video API URL")
	maxChars := flag.Int("max-chars", cfg.MaxChars, "Maximum characters in the text field")
	downloadDir := flag.String("out", cfg.DownloadDir, "Directory for downloaded videos")
	flag.Parse()

	// The TUI owns the terminal, so logs go to a file or nowhere
	if cfg.Debug {
		f, err := tea.LogToFile("debug.log", "ttv")
		if err != nil {
			fmt.Printf("Error opening debug log: %v\n", err)
			return 1
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx := context.Background()

	archiver, err := archive.FromConfig(ctx, cfg)
	if err != nil {
		log.Printf("⚠️  Archiving disabled: %v", err)
	}

	publisher, err := events.FromConfig(cfg)
	if err != nil {
		log.Printf("⚠️  Events disabled: %v", err)
		publisher = events.NopPublisher{}
	}
	defer publisher.Close()

	c := client.NewClient(*apiURL)

	m := tui.NewModel(tui.Deps{
		Client:   c,
		Saver:    delivery.New(c, *downloadDir, archiver, publisher),
		Events:   publisher,
		MaxChars: *maxChars,
	})

	// Create the tea program
	program := tea.NewProgram(m, tea.WithAltScreen())

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	// Run the program
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		return 1
	}
	return 0
}
