package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handiism/xkcd-downloader/internal/config"
	"github.com/handiism/xkcd-downloader/internal/download"
)

func main() {
	defaults := config.DefaultSettings()

	// Command line flags
	var (
		outputDir   string
		startPage   int
		endPage     int
		maxParallel = flag.Int("max-parallel", defaults.MaxParallel, "Number of pages fetched in parallel")
		configFlag  = flag.String("config", "", "Path to config file (JSON or YAML)")
		siteFlag    = flag.String("site", defaults.SiteURL, "Site to download from")
		retriesFlag = flag.Int("retries", defaults.RetryAttempts, "Attempts per request on network errors")
		maxSizeFlag = flag.Int("max-size", 0, "Downscale images larger than this many pixels (0 = keep original)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)
	flag.StringVar(&outputDir, "output-dir", defaults.OutputDir, "Output directory")
	flag.StringVar(&outputDir, "o", defaults.OutputDir, "Output directory (shorthand)")
	flag.IntVar(&startPage, "start-page", defaults.StartPage, "First page to download")
	flag.IntVar(&startPage, "s", defaults.StartPage, "First page to download (shorthand)")
	flag.IntVar(&endPage, "end-page", 0, "Last page to download (0 = latest)")
	flag.IntVar(&endPage, "e", 0, "Last page to download (shorthand)")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "xkcd-get - Download xkcd comics")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  xkcd-get [options]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For interactive mode, use: xkcd-tui")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load config: file, then environment, then explicit flags
	settings := defaults
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output-dir", "o":
			settings.OutputDir = outputDir
		case "start-page", "s":
			settings.StartPage = startPage
		case "end-page", "e":
			settings.EndPage = endPage
		case "max-parallel":
			settings.MaxParallel = *maxParallel
		case "site":
			settings.SiteURL = *siteFlag
		case "retries":
			settings.RetryAttempts = *retriesFlag
		case "max-size":
			settings.MaxImageSize = *maxSizeFlag
		}
	})

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nCtrl-C pressed. Bailing out...")
		cancel()
	}()

	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("xkcd downloader")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	start := time.Now()
	summary, err := manager.Run(ctx, settings.ExpandOutputDir(), settings.Range())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Done in %s: %d saved, %d skipped, %d failed of %d pages\n",
		time.Since(start).Round(time.Millisecond), summary.Saved, summary.Skipped, summary.Failed, summary.Total)
}
