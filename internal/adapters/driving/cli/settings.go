package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, limits and deck defaults.

Settings live in config.toml under the configuration directory. API keys
from the environment or a .env file take precedence over stored keys.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one setting",
	Long: `Set one dotted configuration key, for example:

  studydeck settings set llm.provider gemini
  studydeck settings set llm.requests_per_minute 20
  studydeck settings set chat.window 8
  studydeck settings set deck.author "Dr. Rivera"`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Choose an LLM provider and store its API key",
	Long:  `Interactively choose the LLM provider and model and enter the API key without echo.`,
	RunE:  runSettingsSetKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	printKey(cmd, settings.LLM.APIKey, settings.LLM.Provider)
	cmd.Printf("  Max output tokens: %d\n", settings.LLM.MaxOutputTokens)
	cmd.Printf("  Timeout: %ds\n", settings.LLM.TimeoutSeconds)
	if settings.LLM.RequestsPerMinute > 0 {
		cmd.Printf("  Requests per minute: %d\n", settings.LLM.RequestsPerMinute)
	} else {
		cmd.Printf("  Requests per minute: unlimited\n")
	}
	cmd.Println()

	cmd.Println("[Transcription]")
	cmd.Printf("  Provider: %s\n", settings.Transcription.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Transcription.Model)
	printKey(cmd, settings.Transcription.APIKey, settings.Transcription.Provider)
	cmd.Println()

	cmd.Println("[Limits] (characters sent per task)")
	cmd.Printf("  Summary: %d\n", settings.Limits.SummaryChars)
	cmd.Printf("  Sections: %d\n", settings.Limits.SectionsChars)
	cmd.Printf("  Analysis: %d\n", settings.Limits.AnalysisChars)
	cmd.Printf("  Chat: %d\n", settings.Limits.ChatChars)
	cmd.Printf("  Deck: %d\n", settings.Limits.DeckChars)
	cmd.Printf("  Key concepts: %d\n", settings.Limits.ConceptsChars)
	cmd.Println()

	cmd.Println("[Chat]")
	cmd.Printf("  Window: %d turns\n", settings.ChatWindow)
	cmd.Println()

	cmd.Println("[Deck]")
	cmd.Printf("  Slides: %d\n", settings.Deck.Slides)
	if settings.Deck.Author != "" {
		cmd.Printf("  Author: %s\n", settings.Deck.Author)
	}
	cmd.Println()

	if settings.LogFile != "" {
		cmd.Println("[Log]")
		cmd.Printf("  File: %s\n", settings.LogFile)
		cmd.Println()
	}

	if err := settingsService.RequireCredential(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func printKey(cmd *cobra.Command, key string, provider domain.AIProvider) {
	if key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
		return
	}
	cmd.Printf("  API Key: (not set, use %s)\n", provider.EnvVar())
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	value := args[1]
	if strings.HasSuffix(args[0], "api_key") {
		value = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", args[0], value)
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	return configureLLMProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	cmd.Printf("Enter API key (or leave empty to use %s): ", selectedProvider.EnvVar())
	apiKey := readPassword(cmd.InOrStdin(), reader)
	cmd.Println()

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	if err := settingsService.RequireCredential(); err != nil {
		cmd.Printf("Saved, but %v\n", err)
		return nil
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal and falls back to reader.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
