package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vamap91/ROADMAP/internal/adapters/repository"
	"github.com/Vamap91/ROADMAP/internal/domain/entities"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/config"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/logger"
	"github.com/Vamap91/ROADMAP/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Roadmap API server",
		Long:  "Start the Roadmap API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	var force bool

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the example dataset to the configured backing file",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(force)
		},
	}
	seedCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing backing file")

	return seedCmd
}

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var output string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the current record set as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			runExport(output)
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default: stdout)")

	return exportCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Roadmap version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Roadmap v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Starting Roadmap API server",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
			"projects_path", cfg.Storage.ProjectsPath,
		)

		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited gracefully")
}

func runSeed(force bool) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	path := cfg.Storage.ProjectsPath
	if _, err := os.Stat(path); err == nil && !force {
		log.Fatalf("Backing file %s already exists (use --force to overwrite)", path)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing backing file: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	// Opening the repository against a missing file seeds and persists it
	repo, err := repository.NewProjectRepository(path, appLogger)
	if err != nil {
		log.Fatalf("Failed to seed backing file: %v", err)
	}

	records, err := repo.List(context.Background())
	if err != nil {
		log.Fatalf("Failed to read seeded records: %v", err)
	}

	fmt.Printf("Seeded %d example projects into %s\n", len(records), path)
}

func runExport(output string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	repo, err := repository.NewProjectRepository(cfg.Storage.ProjectsPath, appLogger)
	if err != nil {
		log.Fatalf("Failed to open project store: %v", err)
	}

	records, err := repo.List(context.Background())
	if err != nil {
		log.Fatalf("Failed to list projects: %v", err)
	}

	data, err := entities.MarshalProjectsCSV(records)
	if err != nil {
		log.Fatalf("Failed to encode projects: %v", err)
	}

	if output == "" {
		os.Stdout.Write(data)
		return
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", output, err)
	}
	fmt.Printf("Exported %d projects to %s\n", len(records), output)
}
