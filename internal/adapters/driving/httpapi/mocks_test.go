package httpapi

import (
	"context"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
)

type mockIngest struct {
	AddFilesFunc func(ctx context.Context, sess *domain.Session, files []domain.RawFile) (*domain.ImportReport, error)
}

var _ driving.IngestService = (*mockIngest)(nil)

func (m *mockIngest) AddFiles(ctx context.Context, sess *domain.Session, files []domain.RawFile) (*domain.ImportReport, error) {
	if m.AddFilesFunc != nil {
		return m.AddFilesFunc(ctx, sess, files)
	}
	report := &domain.ImportReport{}
	for _, f := range files {
		if len(f.Content) == 0 {
			report.Warn(f.Name, domain.ErrEmptyExtraction.Error())
		}
		src := domain.NewSource("id-"+f.Name, f.Name, domain.SourceKindText, string(f.Content), 0)
		sess.AddSource(src)
		report.Added = append(report.Added, src)
	}
	return report, nil
}

func (m *mockIngest) AddText(_ context.Context, sess *domain.Session, label, text string) (*domain.Source, error) {
	if text == "" {
		return nil, domain.ErrInvalidInput
	}
	src := domain.NewSource("text-1", label, domain.SourceKindText, text, 0)
	sess.AddSource(src)
	return &src, nil
}

func (m *mockIngest) RemoveSource(sess *domain.Session, id string) error {
	return sess.RemoveSource(id)
}

func (m *mockIngest) Reset(sess *domain.Session) {
	sess.Reset()
}

func (m *mockIngest) SupportedExtensions() []string {
	return []string{".txt"}
}

type mockStudy struct {
	SummariseFunc      func(ctx context.Context, sess *domain.Session) (string, error)
	DetectSectionsFunc func(ctx context.Context, sess *domain.Session) ([]domain.Section, error)
	AnalyseSectionFunc func(ctx context.Context, sess *domain.Session, index int) (string, error)
	KeyConceptsFunc    func(ctx context.Context, sess *domain.Session) (string, error)
}

var _ driving.StudyService = (*mockStudy)(nil)

func (m *mockStudy) Summarise(ctx context.Context, sess *domain.Session) (string, error) {
	if m.SummariseFunc != nil {
		return m.SummariseFunc(ctx, sess)
	}
	sess.SetSummary("summary")
	return "summary", nil
}

func (m *mockStudy) DetectSections(ctx context.Context, sess *domain.Session) ([]domain.Section, error) {
	if m.DetectSectionsFunc != nil {
		return m.DetectSectionsFunc(ctx, sess)
	}
	return []domain.Section{}, nil
}

func (m *mockStudy) AnalyseSection(ctx context.Context, sess *domain.Session, index int) (string, error) {
	if m.AnalyseSectionFunc != nil {
		return m.AnalyseSectionFunc(ctx, sess, index)
	}
	return "analysis", nil
}

func (m *mockStudy) KeyConcepts(ctx context.Context, sess *domain.Session) (string, error) {
	if m.KeyConceptsFunc != nil {
		return m.KeyConceptsFunc(ctx, sess)
	}
	return "concepts", nil
}

type mockChat struct {
	AskFunc func(ctx context.Context, sess *domain.Session, question string) (string, error)
}

var _ driving.ChatService = (*mockChat)(nil)

func (m *mockChat) Ask(ctx context.Context, sess *domain.Session, question string) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, sess, question)
	}
	sess.AppendExchange(question, "answer")
	return "answer", nil
}

type mockDeck struct {
	PlanFunc      func(ctx context.Context, sess *domain.Session, opts domain.DeckOptions) (*domain.SlideDeckSpec, error)
	RenderPDFFunc func(ctx context.Context, deck *domain.Artifact) (*domain.Artifact, error)
}

var _ driving.DeckService = (*mockDeck)(nil)

func (m *mockDeck) Plan(ctx context.Context, sess *domain.Session, opts domain.DeckOptions) (*domain.SlideDeckSpec, error) {
	if m.PlanFunc != nil {
		return m.PlanFunc(ctx, sess, opts)
	}
	return &domain.SlideDeckSpec{Title: "Deck"}, nil
}

func (m *mockDeck) Build(_ *domain.SlideDeckSpec) (*domain.Artifact, error) {
	return &domain.Artifact{
		FileName:    "deck.pptx",
		ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		Data:        []byte("PK\x03\x04"),
	}, nil
}

func (m *mockDeck) RenderPDF(ctx context.Context, deck *domain.Artifact) (*domain.Artifact, error) {
	if m.RenderPDFFunc != nil {
		return m.RenderPDFFunc(ctx, deck)
	}
	return &domain.Artifact{FileName: "deck.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}, nil
}
