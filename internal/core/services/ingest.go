package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/core/ports/driving"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultTextLabel names pasted text that arrives without a label.
const DefaultTextLabel = "Pasted text"

// IngestService turns uploaded files and pasted text into Sources.
type IngestService struct {
	registry driven.ExtractorRegistry
	cache    driven.ExtractionCache
}

// NewIngestService creates a new ingest service.
// The cache parameter is optional (can be nil).
func NewIngestService(registry driven.ExtractorRegistry, cache driven.ExtractionCache) *IngestService {
	return &IngestService{
		registry: registry,
		cache:    cache,
	}
}

// AddFiles extracts every file and adds the results to the session in order.
// Unsupported or failing files are skipped with a warning; a file with no
// text is added and also reported. The batch always runs to the end unless
// ctx is cancelled.
func (s *IngestService) AddFiles(
	ctx context.Context, sess *domain.Session, files []domain.RawFile,
) (*domain.ImportReport, error) {
	if sess == nil {
		return nil, fmt.Errorf("nil session: %w", domain.ErrInvalidInput)
	}

	logger.Section("Import")
	report := &domain.ImportReport{}

	for i := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		raw := &files[i]
		src, err := s.process(ctx, raw)
		if err != nil {
			reason := err.Error()
			if errors.Is(err, domain.ErrUnsupportedFormat) {
				reason = fmt.Sprintf("unsupported file format %q", raw.Extension())
			}
			logger.Warn("Skipping %s: %s", raw.Name, reason)
			report.Warn(raw.Name, reason)
			continue
		}

		if src.IsEmpty() {
			logger.Warn("%s: %v", raw.Name, domain.ErrEmptyExtraction)
			report.Warn(raw.Name, domain.ErrEmptyExtraction.Error())
		}

		sess.AddSource(*src)
		report.Added = append(report.Added, *src)
		logger.Debug("Added %s (%s, %d unit(s), %d chars)", src.Name, src.Kind, src.UnitCount, src.CharCount())
	}

	logger.Info("Imported %d of %d file(s)", report.AddedCount(), len(files))
	return report, nil
}

// process extracts one file. It returns an error wrapping
// domain.ErrUnsupportedFormat when no extractor handles the file.
func (s *IngestService) process(ctx context.Context, raw *domain.RawFile) (*domain.Source, error) {
	extractor, err := s.registry.Lookup(raw)
	if err != nil {
		return nil, err
	}

	key := cacheKey(raw)
	result, hit := s.cachedResult(key)
	if hit {
		logger.Debug("Extraction cache hit for %s", raw.Name)
	} else {
		result, err = extractor.Extract(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", raw.Name, err)
		}
		if s.cache != nil {
			s.cache.Put(key, result)
		}
	}

	src := domain.NewSource(uuid.New().String(), raw.Name, extractor.Kind(), result.Text, result.Pages)
	return &src, nil
}

func (s *IngestService) cachedResult(key string) (*driven.ExtractResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func cacheKey(raw *domain.RawFile) string {
	sum := sha256.Sum256(raw.Content)
	return hex.EncodeToString(sum[:]) + raw.Extension()
}

// AddText adds pasted text as a Text Source.
func (s *IngestService) AddText(
	_ context.Context, sess *domain.Session, label, text string,
) (*domain.Source, error) {
	if sess == nil {
		return nil, fmt.Errorf("nil session: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text: %w", domain.ErrInvalidInput)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultTextLabel
	}

	src := domain.NewSource(uuid.New().String(), label, domain.SourceKindText,
		strings.ToValidUTF8(text, "\uFFFD"), 0)
	sess.AddSource(src)
	logger.Debug("Added pasted text %q (%d unit(s))", label, src.UnitCount)
	return &src, nil
}

// RemoveSource removes one Source by ID.
func (s *IngestService) RemoveSource(sess *domain.Session, id string) error {
	if sess == nil {
		return fmt.Errorf("nil session: %w", domain.ErrInvalidInput)
	}
	return sess.RemoveSource(id)
}

// Reset clears every Source and derived artifact.
func (s *IngestService) Reset(sess *domain.Session) {
	if sess != nil {
		sess.Reset()
	}
}

// SupportedExtensions lists the file extensions that can be imported.
func (s *IngestService) SupportedExtensions() []string {
	return s.registry.Extensions()
}
