package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studydeck/internal/adapters/driving/httpapi"
)

var (
	serveAddr    string
	serveOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API",
	Long: `Start an HTTP server exposing study sessions under /api/sessions.

Each session is independent and holds its own files, results and chat
history in memory. A session runs one action at a time; a second request
while one is running gets 409 Conflict.`,
	Annotations: llmAnnotation(),
	RunE:        runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "cors-origin", nil, "browser origin allowed to call the API (repeatable)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ports := &httpapi.Ports{
		Sessions: sessionService,
		Ingest:   ingestService,
		Study:    studyService,
		Chat:     chatService,
		Deck:     deckService,
		Export:   exportService,
	}

	server, err := httpapi.NewServer(ports, httpapi.Options{AllowedOrigins: serveOrigins})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "REST API listening on %s\n", serveAddr)
	return server.Run(cmd.Context(), serveAddr)
}
