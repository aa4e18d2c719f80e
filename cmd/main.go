package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"movie-catalogue/internal/config"
	"movie-catalogue/internal/database"
	"movie-catalogue/internal/models"
	"movie-catalogue/internal/repository"
	"movie-catalogue/internal/services"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	loadEnvFile()
	log := setupLogger()

	rootCmd := &cobra.Command{
		Use:           "catalogue",
		Short:         "Movie catalogue store administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newMigrateCmd(log))
	rootCmd.AddCommand(newReportCmd(log))

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

func newMigrateCmd(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalogue schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect(log)
			if err != nil {
				return err
			}
			defer closeDB(db, log)

			// Connect already ran the migration; reaching this point
			// means the schema is in place.
			log.Info("Catalogue schema is up to date")
			return nil
		},
	}
}

func newReportCmd(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the rating activity report",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect(log)
			if err != nil {
				return err
			}
			defer closeDB(db, log)

			movieRepo := repository.NewMovieRepository(db)
			ratingRepo := repository.NewRatingRepository(db)
			reportService := services.NewReportService(movieRepo, ratingRepo, log)

			ctx := cmd.Context()

			percentage, err := reportService.UsersWithoutHighRating(ctx)
			switch {
			case errors.Is(err, models.ErrNoRatings):
				fmt.Println("No ratings recorded yet; the report is empty.")
				return nil
			case err != nil:
				return err
			}

			fmt.Printf("Users without any rating of %.1f or higher: %.2f%%\n",
				models.HighRatingThreshold, percentage)

			topRated, err := reportService.TopRatedMovies(ctx)
			if err != nil {
				return err
			}
			if len(topRated) > 0 {
				fmt.Println("\nTop rated movies (IMDB rating >= 8.0):")
				for _, movie := range topRated {
					fmt.Printf("  %.1f  %s\n", *movie.ImdbRating, movie.OriginalTitle)
				}
			}

			activity, err := reportService.UserActivitySummary(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("\nActive raters: %d\n", len(activity))
			return nil
		},
	}
}

func connect(log *logrus.Logger) (*database.Database, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func closeDB(db *database.Database, log *logrus.Logger) {
	if err := db.Close(); err != nil {
		log.Errorf("Error closing database connection: %v", err)
	}
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err != nil {
		defaultEnvFile := filepath.Join(execDir, "envs", ".env")
		if err := godotenv.Load(defaultEnvFile); err == nil {
			log.Infof("Environment loaded from default file %s", defaultEnvFile)
		}
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}
}
