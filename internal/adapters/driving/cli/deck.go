package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

var (
	deckSlides int
	deckOut    string
	deckPDF    bool
	deckTitle  string
	deckAuthor string
	deckFocus  string
)

var deckCmd = &cobra.Command{
	Use:   "deck <files...>",
	Short: "Build a slide deck from study material",
	Long: `Ask the model to plan a slide deck and write it as a PowerPoint file.

With --pdf the deck is also converted to PDF with LibreOffice, which must be
installed and on PATH as 'soffice'.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: llmAnnotation(),
	RunE:        runDeck,
}

func init() {
	deckCmd.Flags().IntVarP(&deckSlides, "slides", "n", 0, "number of slides (3-20, default from settings)")
	deckCmd.Flags().StringVarP(&deckOut, "out", "o", "deck.pptx", "output file")
	deckCmd.Flags().BoolVar(&deckPDF, "pdf", false, "also write a PDF next to the deck")
	deckCmd.Flags().StringVar(&deckTitle, "title", "", "deck title (default chosen by the model)")
	deckCmd.Flags().StringVar(&deckAuthor, "author", "", "author shown on the title slide")
	deckCmd.Flags().StringVar(&deckFocus, "focus", "", "topic or section to focus on")
	rootCmd.AddCommand(deckCmd)
}

func runDeck(cmd *cobra.Command, args []string) error {
	if err := requireService(deckService, "deck"); err != nil {
		return err
	}
	if deckSlides != 0 && (deckSlides < domain.MinDeckSlides || deckSlides > domain.MaxDeckSlides) {
		return fmt.Errorf("%w: --slides must be between %d and %d",
			domain.ErrInvalidInput, domain.MinDeckSlides, domain.MaxDeckSlides)
	}
	sess, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	spec, err := deckService.Plan(cmd.Context(), sess, domain.DeckOptions{
		Slides: deckSlides,
		Title:  deckTitle,
		Author: deckAuthor,
		Focus:  deckFocus,
	})
	if err != nil {
		return fmt.Errorf("plan deck: %w", err)
	}

	deck, err := deckService.Build(spec)
	if err != nil {
		return fmt.Errorf("build deck: %w", err)
	}
	if err := writeFile(cmd, deckOut, deck.Data); err != nil {
		return err
	}

	if !deckPDF {
		return nil
	}
	pdf, err := deckService.RenderPDF(cmd.Context(), deck)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return writeFile(cmd, pdfPath(deckOut), pdf.Data)
}

// pdfPath swaps the extension of a deck path for .pdf.
func pdfPath(deckPath string) string {
	return strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + ".pdf"
}
