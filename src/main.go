package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"iconforge/src/config"
	"iconforge/src/icons"
	"iconforge/src/watcher"
)

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1
	exitNotFound = 2
)

type options struct {
	configPath string
	envFile    string
	outDir     string
	sizes      string
	fit        string
	filter     string
	favicon    bool
	watch      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("iconforge", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	fs.StringVar(&opts.envFile, "env", ".env", "file with ICONFORGE_* overrides, ignored if missing")
	fs.StringVar(&opts.outDir, "out", "", "output directory (default public/icons)")
	fs.StringVar(&opts.sizes, "sizes", "", "comma separated icon sizes (default 16,48,128)")
	fs.StringVar(&opts.fit, "fit", "", "stretch or contain")
	fs.StringVar(&opts.filter, "filter", "", "resampling filter: "+strings.Join(config.Filters, ", "))
	fs.BoolVar(&opts.favicon, "favicon", false, "also bundle the icons into a favicon.ico")
	fs.BoolVar(&opts.watch, "watch", false, "regenerate icons whenever the base image changes")
	fs.Usage = func() {
		fmt.Fprintln(stdout, "Usage: iconforge [flags] path/to/icon128.png")
		fmt.Fprintln(stdout, "\nExample: iconforge public/icons/icon128.png")
		fmt.Fprintln(stdout, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return exitFailure
	}

	gen := icons.NewGenerator(cfg)

	if fs.NArg() == 0 {
		if opts.watch {
			log.Printf("-watch needs a base image path")
			return exitFailure
		}
		fs.Usage()
		fmt.Fprintln(stdout, "\nNo base image given, creating placeholder icons...")
		result, err := gen.Placeholders()
		return exitCode(result, err)
	}

	basePath := fs.Arg(0)
	result, err := gen.FromPath(basePath)
	if err != nil {
		log.Printf("Icon generation failed: %v", err)
	}
	if !opts.watch {
		if err == nil {
			fmt.Fprintln(stdout, "\nDone! Icons generated successfully.")
		}
		return exitCode(result, err)
	}

	return watch(gen, basePath, cfg)
}

// loadConfig layers defaults, config file, environment and flags
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.LoadEnv(opts.envFile); err != nil {
		return nil, err
	}

	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.sizes != "" {
		sizes, err := config.ParseSizes(opts.sizes)
		if err != nil {
			return nil, fmt.Errorf("-sizes: %w", err)
		}
		cfg.Sizes = sizes
	}
	if opts.fit != "" {
		cfg.Resize.Fit = strings.ToLower(opts.fit)
	}
	if opts.filter != "" {
		cfg.Resize.Filter = strings.ToLower(opts.filter)
	}
	if opts.favicon {
		cfg.Favicon.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func watch(gen *icons.Generator, basePath string, cfg *config.Config) int {
	w, err := watcher.NewWatcher(gen, basePath, cfg.Debounce())
	if err != nil {
		log.Printf("Failed to create watcher: %v", err)
		return exitFailure
	}

	if err := w.Start(); err != nil {
		log.Printf("Failed to start watcher: %v", err)
		w.Stop()
		return exitFailure
	}

	log.Println("Press Ctrl+C to stop")

	go func() {
		for event := range w.Events() {
			if event.Type == watcher.EventDeleted {
				log.Printf("Waiting for %s to come back", event.FilePath)
				continue
			}
			if event.Err == nil {
				log.Printf("✅ Regenerated %d icons", len(event.Result.Icons))
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	if err := w.Stop(); err != nil {
		log.Printf("Failed to stop watcher: %v", err)
		return exitFailure
	}
	return exitOK
}

func exitCode(result icons.Result, err error) int {
	if err == nil {
		return exitOK
	}
	if result.Outcome == icons.InputNotFound {
		return exitNotFound
	}
	return exitFailure
}
