package mcp

import (
	"context"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	AddFilesFunc func(ctx context.Context, sess *domain.Session, files []domain.RawFile) (*domain.ImportReport, error)
	resets       int
}

var _ driving.IngestService = (*mockIngestService)(nil)

func (m *mockIngestService) AddFiles(
	ctx context.Context,
	sess *domain.Session,
	files []domain.RawFile,
) (*domain.ImportReport, error) {
	if m.AddFilesFunc != nil {
		return m.AddFilesFunc(ctx, sess, files)
	}
	report := &domain.ImportReport{}
	for i, f := range files {
		src := domain.NewSource(f.Name+"-"+string(rune('a'+i)), f.Name, domain.SourceKindText, string(f.Content), 0)
		sess.AddSource(src)
		report.Added = append(report.Added, src)
	}
	return report, nil
}

func (m *mockIngestService) AddText(_ context.Context, _ *domain.Session, _, _ string) (*domain.Source, error) {
	return nil, nil
}

func (m *mockIngestService) RemoveSource(sess *domain.Session, id string) error {
	return sess.RemoveSource(id)
}

func (m *mockIngestService) Reset(sess *domain.Session) {
	m.resets++
	sess.Reset()
}

func (m *mockIngestService) SupportedExtensions() []string {
	return []string{".txt"}
}

// mockStudyService is a mock implementation of driving.StudyService.
type mockStudyService struct {
	SummariseFunc      func(ctx context.Context, sess *domain.Session) (string, error)
	DetectSectionsFunc func(ctx context.Context, sess *domain.Session) ([]domain.Section, error)
	AnalyseSectionFunc func(ctx context.Context, sess *domain.Session, index int) (string, error)
	KeyConceptsFunc    func(ctx context.Context, sess *domain.Session) (string, error)
}

var _ driving.StudyService = (*mockStudyService)(nil)

func (m *mockStudyService) Summarise(ctx context.Context, sess *domain.Session) (string, error) {
	if m.SummariseFunc != nil {
		return m.SummariseFunc(ctx, sess)
	}
	return "", nil
}

func (m *mockStudyService) DetectSections(ctx context.Context, sess *domain.Session) ([]domain.Section, error) {
	if m.DetectSectionsFunc != nil {
		return m.DetectSectionsFunc(ctx, sess)
	}
	return nil, nil
}

func (m *mockStudyService) AnalyseSection(ctx context.Context, sess *domain.Session, index int) (string, error) {
	if m.AnalyseSectionFunc != nil {
		return m.AnalyseSectionFunc(ctx, sess, index)
	}
	return "", nil
}

func (m *mockStudyService) KeyConcepts(ctx context.Context, sess *domain.Session) (string, error) {
	if m.KeyConceptsFunc != nil {
		return m.KeyConceptsFunc(ctx, sess)
	}
	return "", nil
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	AskFunc func(ctx context.Context, sess *domain.Session, question string) (string, error)
}

var _ driving.ChatService = (*mockChatService)(nil)

func (m *mockChatService) Ask(ctx context.Context, sess *domain.Session, question string) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, sess, question)
	}
	return "", nil
}

// mockDeckService is a mock implementation of driving.DeckService.
type mockDeckService struct {
	PlanFunc  func(ctx context.Context, sess *domain.Session, opts domain.DeckOptions) (*domain.SlideDeckSpec, error)
	BuildFunc func(spec *domain.SlideDeckSpec) (*domain.Artifact, error)
}

var _ driving.DeckService = (*mockDeckService)(nil)

func (m *mockDeckService) Plan(
	ctx context.Context,
	sess *domain.Session,
	opts domain.DeckOptions,
) (*domain.SlideDeckSpec, error) {
	if m.PlanFunc != nil {
		return m.PlanFunc(ctx, sess, opts)
	}
	return &domain.SlideDeckSpec{Title: "Deck"}, nil
}

func (m *mockDeckService) Build(spec *domain.SlideDeckSpec) (*domain.Artifact, error) {
	if m.BuildFunc != nil {
		return m.BuildFunc(spec)
	}
	return &domain.Artifact{FileName: "deck.pptx", Data: []byte("PK")}, nil
}

func (m *mockDeckService) RenderPDF(_ context.Context, _ *domain.Artifact) (*domain.Artifact, error) {
	return nil, domain.ErrRenderFailed
}

func newTestPorts() *Ports {
	return &Ports{
		Ingest: &mockIngestService{},
		Study:  &mockStudyService{},
		Chat:   &mockChatService{},
	}
}
