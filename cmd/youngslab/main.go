package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chrissnell/youngslab/internal/app"
	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/internal/log"
	"github.com/chrissnell/youngslab/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to the YAML configuration file. Built-in defaults are used when the file does not exist.")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("youngslab %s\n", constants.Version)
		os.Exit(0)
	}

	// Load configuration
	provider, cfgData, err := loadConfig(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	err = log.InitWithFile(*debug || cfgData.Logging.Debug, log.FileOptions{
		Path:       cfgData.Logging.File,
		MaxSizeMB:  cfgData.Logging.MaxSizeMB,
		MaxBackups: cfgData.Logging.MaxBackups,
		MaxAgeDays: cfgData.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Create and run the application
	application := app.New(provider, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func loadConfig(cfgFile string) (config.ConfigProvider, *config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "%s not found; using built-in defaults\n", filename)
		cfgData := config.Default()
		return config.NewStaticProvider(cfgData), cfgData, nil
	}

	provider := config.NewYAMLProvider(filename)
	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return provider, cfgData, nil
}
