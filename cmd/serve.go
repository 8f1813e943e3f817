package cmd

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solarsim/solarsim/api"
)

var servePort string

// serveCmd exposes the engine over HTTP for interactive scenario analysis.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err == nil {
			logrus.SetLevel(level)
		}
		if os.Getenv("API_ENV") == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := api.NewRouter()
		logrus.Infof("API listening on :%s", servePort)
		if err := router.Run(":" + servePort); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
	serveCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(serveCmd)
}
