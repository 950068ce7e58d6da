package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
)

type mockSettings struct {
	settings       *domain.AppSettings
	SetFunc        func(key, value string) error
	RequireErr     error
	setProvider    domain.AIProvider
	setProviderKey string
}

var _ driving.SettingsService = (*mockSettings)(nil)

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	if m.settings == nil {
		s := domain.DefaultAppSettings()
		m.settings = &s
	}
	return m.settings, nil
}

func (m *mockSettings) Save(s *domain.AppSettings) error {
	m.settings = s
	return nil
}

func (m *mockSettings) SetLLMProvider(provider domain.AIProvider, _, apiKey string) error {
	m.setProvider = provider
	m.setProviderKey = apiKey
	return nil
}

func (m *mockSettings) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

func (m *mockSettings) RequireCredential() error { return m.RequireErr }

func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettings) ValidateLLMConfig() error { return nil }

type mockIngest struct{}

var _ driving.IngestService = (*mockIngest)(nil)

func (m *mockIngest) AddFiles(_ context.Context, sess *domain.Session, files []domain.RawFile) (*domain.ImportReport, error) {
	report := &domain.ImportReport{}
	for _, f := range files {
		if f.Extension() == ".bin" {
			report.Warn(f.Name, domain.ErrUnsupportedFormat.Error())
			continue
		}
		src := domain.NewSource("id-"+f.Name, f.Name, domain.SourceKindText, string(f.Content), 0)
		sess.AddSource(src)
		report.Added = append(report.Added, src)
	}
	return report, nil
}

func (m *mockIngest) AddText(context.Context, *domain.Session, string, string) (*domain.Source, error) {
	return nil, nil
}

func (m *mockIngest) RemoveSource(*domain.Session, string) error { return nil }

func (m *mockIngest) Reset(sess *domain.Session) { sess.Reset() }

func (m *mockIngest) SupportedExtensions() []string { return []string{".txt"} }

type mockStudy struct {
	analysedIndex int
}

var _ driving.StudyService = (*mockStudy)(nil)

func (m *mockStudy) Summarise(_ context.Context, sess *domain.Session) (string, error) {
	sess.SetSummary("A short summary.")
	return "A short summary.", nil
}

func (m *mockStudy) DetectSections(_ context.Context, sess *domain.Session) ([]domain.Section, error) {
	sections := []domain.Section{
		{Index: 1, Title: "Basics", StartUnit: 1, EndUnit: 1, ShortDescription: "Core ideas", SourceName: "notes.txt"},
		{Index: 2, Title: "Advanced", StartUnit: 1, EndUnit: 1},
	}
	sess.SetSections(sections)
	return sections, nil
}

func (m *mockStudy) AnalyseSection(_ context.Context, sess *domain.Session, index int) (string, error) {
	if _, ok := sess.Section(index); !ok {
		return "", domain.ErrNotFound
	}
	m.analysedIndex = index
	sess.SetAnalysis(index, "Deep dive.")
	return "Deep dive.", nil
}

func (m *mockStudy) KeyConcepts(_ context.Context, sess *domain.Session) (string, error) {
	sess.SetKeyConcepts("| Concept | Simplified definition | Example / analogy |")
	return sess.KeyConcepts(), nil
}

type mockChat struct{}

var _ driving.ChatService = (*mockChat)(nil)

func (m *mockChat) Ask(_ context.Context, sess *domain.Session, question string) (string, error) {
	sess.AppendExchange(question, "Because.")
	return "Because.", nil
}

type mockDeck struct {
	opts     domain.DeckOptions
	rendered bool
}

var _ driving.DeckService = (*mockDeck)(nil)

func (m *mockDeck) Plan(_ context.Context, _ *domain.Session, opts domain.DeckOptions) (*domain.SlideDeckSpec, error) {
	m.opts = opts
	return &domain.SlideDeckSpec{Title: "Deck"}, nil
}

func (m *mockDeck) Build(*domain.SlideDeckSpec) (*domain.Artifact, error) {
	return &domain.Artifact{FileName: "deck.pptx", Data: []byte("PPTX")}, nil
}

func (m *mockDeck) RenderPDF(context.Context, *domain.Artifact) (*domain.Artifact, error) {
	m.rendered = true
	return &domain.Artifact{FileName: "deck.pdf", Data: []byte("PDF")}, nil
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, services *Services, args ...string) (string, string, error) {
	t.Helper()

	SetBootstrap(func(context.Context, Options) (*Services, error) {
		return services, nil
	})
	t.Cleanup(func() {
		SetBootstrap(nil)
		SetServices(nil)
		outPath = ""
		analyseIndex = 1
		deckSlides = 0
		deckOut = "deck.pptx"
		deckPDF = false
		deckTitle = ""
		deckAuthor = ""
		deckFocus = ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func testServices() *Services {
	return &Services{
		Settings: &mockSettings{},
		Ingest:   &mockIngest{},
		Study:    &mockStudy{},
		Chat:     &mockChat{},
		Deck:     &mockDeck{},
	}
}
