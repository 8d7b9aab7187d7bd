package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/iconcile/expense-backend/internal/models"
	"github.com/iconcile/expense-backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Amounts are plain JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg("environment variable API_URL must be a valid URL")
	}

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err = os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		dsn = "data/expenses.db?_pragma=foreign_keys(1)"
	}

	// Connect to the database
	err = models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, err := router.Config(baseURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
