package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat <files...>",
	Short: "Open the interactive study console",
	Long: `Load study material and open a terminal console for questions.

Type a question and press enter, or use a command:
  /summary       summarise the material
  /sections      split the material into sections
  /analyse N     explain section N in depth
  /concepts      list key concepts
  /sources       list loaded files
  /reset         drop all material and history
  /quit          leave`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: llmAnnotation(),
	RunE:        runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in console: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	sess, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	ports := &tui.Ports{
		Study:  studyService,
		Chat:   chatService,
		Ingest: ingestService,
	}
	app, err := tui.NewApp(ports, sess)
	if err != nil {
		return fmt.Errorf("failed to create console: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}
