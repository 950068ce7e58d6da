package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/logger"
)

var (
	outPath      string
	analyseIndex int
)

var summaryCmd = &cobra.Command{
	Use:         "summary <files...>",
	Short:       "Summarise study material",
	Long:        `Summarise one or more files. The summary gets longer as the material grows.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: llmAnnotation(),
	RunE:        runSummary,
}

var sectionsCmd = &cobra.Command{
	Use:         "sections <files...>",
	Short:       "Split study material into sections",
	Args:        cobra.MinimumNArgs(1),
	Annotations: llmAnnotation(),
	RunE:        runSections,
}

var analyseCmd = &cobra.Command{
	Use:     "analyse <files...>",
	Aliases: []string{"analyze"},
	Short:   "Explain one section in depth",
	Long: `Detect the sections of the material and write a detailed analysis of one
of them. Use 'studydeck sections' first to see the section numbers.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: llmAnnotation(),
	RunE:        runAnalyse,
}

var conceptsCmd = &cobra.Command{
	Use:         "concepts <files...>",
	Short:       "List the key concepts with simple definitions",
	Args:        cobra.MinimumNArgs(1),
	Annotations: llmAnnotation(),
	RunE:        runConcepts,
}

var askCmd = &cobra.Command{
	Use:         "ask <question> <files...>",
	Short:       "Ask one question about study material",
	Args:        cobra.MinimumNArgs(2),
	Annotations: llmAnnotation(),
	RunE:        runAsk,
}

func init() {
	for _, c := range []*cobra.Command{summaryCmd, sectionsCmd, analyseCmd, conceptsCmd, askCmd} {
		c.Flags().StringVarP(&outPath, "out", "o", "", "write Markdown to this file instead of stdout")
		rootCmd.AddCommand(c)
	}
	analyseCmd.Flags().IntVarP(&analyseIndex, "section", "s", 1, "section number to analyse")
}

func runSummary(cmd *cobra.Command, args []string) error {
	if err := requireService(studyService, "study"); err != nil {
		return err
	}
	sess, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	if _, err := studyService.Summarise(cmd.Context(), sess); err != nil {
		return fmt.Errorf("summarise: %w", err)
	}
	return emitMarkdown(cmd, func() (*domain.Artifact, error) { return exportService.Summary(sess) }, sess.Summary())
}

func runSections(cmd *cobra.Command, args []string) error {
	if err := requireService(studyService, "study"); err != nil {
		return err
	}
	sess, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	sections, err := studyService.DetectSections(cmd.Context(), sess)
	if err != nil {
		return fmt.Errorf("detect sections: %w", err)
	}
	return writeOutput(cmd, formatSections(sections))
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	if err := requireService(studyService, "study"); err != nil {
		return err
	}
	if analyseIndex < 1 {
		return fmt.Errorf("%w: --section must be 1 or more", domain.ErrInvalidInput)
	}
	sess, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	if _, err := studyService.DetectSections(cmd.Context(), sess); err != nil {
		return fmt.Errorf("detect sections: %w", err)
	}
	analysis, err := studyService.AnalyseSection(cmd.Context(), sess, analyseIndex)
	if err != nil {
		return fmt.Errorf("analyse section %d: %w", analyseIndex, err)
	}
	return emitMarkdown(cmd, func() (*domain.Artifact, error) { return exportService.Analysis(sess, analyseIndex) }, analysis)
}

func runConcepts(cmd *cobra.Command, args []string) error {
	if err := requireService(studyService, "study"); err != nil {
		return err
	}
	sess, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	table, err := studyService.KeyConcepts(cmd.Context(), sess)
	if err != nil {
		return fmt.Errorf("key concepts: %w", err)
	}
	return emitMarkdown(cmd, func() (*domain.Artifact, error) { return exportService.KeyConcepts(sess) }, table)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := requireService(chatService, "chat"); err != nil {
		return err
	}
	question := strings.TrimSpace(args[0])
	if question == "" {
		return fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	sess, err := loadSession(cmd, args[1:])
	if err != nil {
		return err
	}

	answer, err := chatService.Ask(cmd.Context(), sess, question)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	return emitMarkdown(cmd, func() (*domain.Artifact, error) { return exportService.Transcript(sess) }, answer)
}

// loadSession reads paths into a fresh session. Per-file problems are
// printed as warnings; a session with no sources is an error.
func loadSession(cmd *cobra.Command, paths []string) (*domain.Session, error) {
	if err := requireService(ingestService, "ingest"); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errNoInput
	}

	files := make([]domain.RawFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, domain.RawFile{
			Name:     filepath.Base(p),
			MIMEType: mime.TypeByExtension(filepath.Ext(p)),
			Content:  data,
		})
	}

	sess := domain.NewSession(uuid.New().String())
	report, err := ingestService.AddFiles(cmd.Context(), sess, files)
	if err != nil {
		return nil, fmt.Errorf("importing files: %w", err)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.File, w.Reason)
	}
	if len(sess.Sources()) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	corpus := sess.Corpus()
	logger.Info("loaded %d sources (%d pages, %d characters)", corpus.SourceCount, corpus.TotalUnits, corpus.TotalChars)
	return sess, nil
}

// emitMarkdown prints text, or writes the export artifact when --out is set.
func emitMarkdown(cmd *cobra.Command, export func() (*domain.Artifact, error), text string) error {
	if outPath == "" || exportService == nil {
		return writeOutput(cmd, text)
	}
	artifact, err := export()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return writeFile(cmd, outPath, artifact.Data)
}

// writeOutput prints text, or writes it verbatim to --out.
func writeOutput(cmd *cobra.Command, text string) error {
	if outPath == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
		return err
	}
	return writeFile(cmd, outPath, []byte(text))
}

func writeFile(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func formatSections(sections []domain.Section) string {
	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "%d. %s (pages %d-%d)", s.Index, s.Title, s.StartUnit, s.EndUnit)
		if s.SourceName != "" {
			fmt.Fprintf(&b, " [%s]", s.SourceName)
		}
		b.WriteString("\n")
		if s.ShortDescription != "" {
			fmt.Fprintf(&b, "   %s\n", s.ShortDescription)
		}
	}
	return b.String()
}
