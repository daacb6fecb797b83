package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Start the HTTP server with the browser UI for creating documents
and learning reference material. Blocks until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if webServer == nil {
		return errors.New("web server not configured")
	}

	port := serverPort
	if servePort > 0 {
		port = servePort
	}

	return webServer.Listen(port)
}
