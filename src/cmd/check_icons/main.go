package main

import (
	"fmt"
	"log"
	"os"

	"iconforge/src/config"
	"iconforge/src/icons"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.LoadEnv(".env"); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	fmt.Printf("Checking %d icons in %s\n", len(cfg.Sizes), cfg.Output.Dir)

	if err := icons.Verify(cfg); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Println("✅ All icons present with the expected dimensions")
}
