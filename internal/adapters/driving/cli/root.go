// Package cli implements the studydeck command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// annotationNeedsLLM marks commands that talk to the model.
const annotationNeedsLLM = "needs-llm"

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services bound for the current invocation.
var (
	settingsService driving.SettingsService
	ingestService   driving.IngestService
	studyService    driving.StudyService
	chatService     driving.ChatService
	deckService     driving.DeckService
	exportService   driving.ExportService
	sessionService  driving.SessionService
	closeServices   func()
)

// Options are the global flag values passed to the bootstrap function.
type Options struct {
	// ConfigDir overrides the default configuration directory.
	ConfigDir string

	// NeedsLLM is true when the command will call the model. The bootstrap
	// function must fail with domain.ErrMissingCredential when no key is set.
	NeedsLLM bool
}

// Services is the set of driving ports used by the commands.
// Fields other than Settings may be nil when the command does not need them.
type Services struct {
	Settings driving.SettingsService
	Ingest   driving.IngestService
	Study    driving.StudyService
	Chat     driving.ChatService
	Deck     driving.DeckService
	Export   driving.ExportService
	Sessions driving.SessionService

	// Close releases resources held by the services. May be nil.
	Close func()
}

// BootstrapFunc builds the services for one invocation.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var bootstrap BootstrapFunc

// SetBootstrap installs the function that wires services before each command.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices binds services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	settingsService = s.Settings
	ingestService = s.Ingest
	studyService = s.Study
	chatService = s.Chat
	deckService = s.Deck
	exportService = s.Export
	sessionService = s.Sessions
	closeServices = s.Close
}

var rootCmd = &cobra.Command{
	Use:   "studydeck",
	Short: "Turn study material into summaries, sections and slide decks",
	Long: `studydeck reads lecture notes, papers, slides, spreadsheets and recordings
and uses a language model to summarise them, split them into sections,
explain each section, answer questions and build a slide deck.

Set ANTHROPIC_API_KEY, GEMINI_API_KEY or OPENAI_API_KEY (or put it in a .env
file) before running commands that talk to the model.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.studydeck)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.Debug("running %s", cmd.CommandPath())

	if bootstrap == nil {
		return nil
	}

	services, err := bootstrap(cmd.Context(), Options{
		ConfigDir: configDir,
		NeedsLLM:  needsLLM(cmd),
	})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices != nil {
		closeServices()
		closeServices = nil
	}
	return nil
}

// needsLLM reports whether cmd or one of its parents is marked as calling the model.
func needsLLM(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNeedsLLM] == "true" {
			return true
		}
	}
	return false
}

func llmAnnotation() map[string]string {
	return map[string]string{annotationNeedsLLM: "true"}
}

func requireService(svc any, name string) error {
	if svc == nil {
		return fmt.Errorf("%s service not configured", name)
	}
	return nil
}

// errNoInput is returned when a command needing files gets none.
var errNoInput = errors.New("no input files given")
