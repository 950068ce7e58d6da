package httpapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// multipartMemory is the part of a multipart upload kept in memory.
const multipartMemory = 32 << 20

type sessionCreated struct {
	ID string `json:"id"`
}

type sourceView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Pages     int       `json:"pages"`
	Paginated bool      `json:"paginated"`
	Chars     int       `json:"chars"`
	AddedAt   time.Time `json:"added_at"`
}

type sessionView struct {
	ID         string           `json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	Sources    []sourceView     `json:"sources"`
	TotalPages int              `json:"total_pages"`
	HasSummary bool             `json:"has_summary"`
	Sections   []domain.Section `json:"sections"`
	Analysed   []int            `json:"analysed"`
	HasDeck    bool             `json:"has_deck"`
	Turns      int              `json:"turns"`
}

type importView struct {
	Added    []sourceView           `json:"added"`
	Warnings []domain.ImportWarning `json:"warnings"`
}

type textRequest struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type deckRequest struct {
	Slides int    `json:"slides"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Focus  string `json:"focus"`
	Format string `json:"format"`
}

type markdownView struct {
	Markdown string `json:"markdown"`
}

type answerView struct {
	Answer string `json:"answer"`
}

type sectionsView struct {
	Sections []domain.Section `json:"sections"`
}

func toSourceView(src domain.Source) sourceView {
	return sourceView{
		ID:        src.ID,
		Name:      src.Name,
		Kind:      src.Kind.String(),
		Pages:     src.UnitCount,
		Paginated: src.Paginated,
		Chars:     src.CharCount(),
		AddedAt:   src.AddedAt,
	}
}

func toSessionView(sess *domain.Session) sessionView {
	view := sessionView{
		ID:         sess.ID,
		CreatedAt:  sess.CreatedAt,
		Sources:    make([]sourceView, 0, len(sess.Sources())),
		TotalPages: sess.Corpus().TotalUnits,
		HasSummary: sess.Summary() != "",
		Sections:   sess.Sections(),
		Analysed:   []int{},
		HasDeck:    sess.Deck() != nil,
		Turns:      len(sess.Turns()),
	}
	for _, src := range sess.Sources() {
		view.Sources = append(view.Sources, toSourceView(src))
	}
	for _, sec := range view.Sections {
		if _, ok := sess.Analysis(sec.Index); ok {
			view.Analysed = append(view.Analysed, sec.Index)
		}
	}
	return view
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.ports.Sessions.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionCreated{ID: id})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.ports.Sessions.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	var view sessionView
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		view = toSessionView(sess)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.ports.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) uploadFiles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, fmt.Errorf("%w: reading upload: %w", domain.ErrInvalidInput, err))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	var headers []*multipart.FileHeader
	headers = append(headers, r.MultipartForm.File["files"]...)
	headers = append(headers, r.MultipartForm.File["file"]...)
	if len(headers) == 0 {
		writeError(w, fmt.Errorf("%w: no files in form field \"files\"", domain.ErrInvalidInput))
		return
	}

	files := make([]domain.RawFile, 0, len(headers))
	for _, h := range headers {
		raw, err := readPart(h)
		if err != nil {
			writeError(w, err)
			return
		}
		files = append(files, raw)
	}

	var view importView
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		report, err := s.ports.Ingest.AddFiles(r.Context(), sess, files)
		if err != nil {
			return err
		}
		view.Added = make([]sourceView, 0, len(report.Added))
		for _, src := range report.Added {
			view.Added = append(view.Added, toSourceView(src))
		}
		view.Warnings = report.Warnings
		if view.Warnings == nil {
			view.Warnings = []domain.ImportWarning{}
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func readPart(h *multipart.FileHeader) (domain.RawFile, error) {
	f, err := h.Open()
	if err != nil {
		return domain.RawFile{}, fmt.Errorf("opening %s: %w", h.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.RawFile{}, fmt.Errorf("reading %s: %w", h.Filename, err)
	}
	return domain.RawFile{
		Name:     h.Filename,
		MIMEType: h.Header.Get("Content-Type"),
		Content:  data,
	}, nil
}

func (s *Server) addText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var view sourceView
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		src, err := s.ports.Ingest.AddText(r.Context(), sess, req.Label, req.Text)
		if err != nil {
			return err
		}
		view = toSourceView(*src)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) removeSource(w http.ResponseWriter, r *http.Request) {
	sourceID := chi.URLParam(r, "sourceID")
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		return s.ports.Ingest.RemoveSource(sess, sourceID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		s.ports.Ingest.Reset(sess)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) summarise(w http.ResponseWriter, r *http.Request) {
	var out markdownView
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		summary, err := s.ports.Study.Summarise(r.Context(), sess)
		out.Markdown = summary
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) detectSections(w http.ResponseWriter, r *http.Request) {
	var out sectionsView
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		sections, err := s.ports.Study.DetectSections(r.Context(), sess)
		out.Sections = sections
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) analyseSection(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 1 {
		writeError(w, fmt.Errorf("%w: section index must be a positive integer", domain.ErrInvalidInput))
		return
	}

	var out markdownView
	err = s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		analysis, err := s.ports.Study.AnalyseSection(r.Context(), sess, index)
		out.Markdown = analysis
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) keyConcepts(w http.ResponseWriter, r *http.Request) {
	var out markdownView
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		table, err := s.ports.Study.KeyConcepts(r.Context(), sess)
		out.Markdown = table
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, fmt.Errorf("%w: question is required", domain.ErrInvalidInput))
		return
	}

	var out answerView
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		answer, err := s.ports.Chat.Ask(r.Context(), sess, req.Question)
		out.Answer = answer
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deck(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Format != "" && req.Format != "pptx" && req.Format != "pdf" {
		writeError(w, fmt.Errorf("%w: format must be pptx or pdf", domain.ErrInvalidInput))
		return
	}

	var artifact *domain.Artifact
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		spec, err := s.ports.Deck.Plan(r.Context(), sess, domain.DeckOptions{
			Slides: req.Slides,
			Title:  req.Title,
			Author: req.Author,
			Focus:  req.Focus,
		})
		if err != nil {
			return err
		}
		artifact, err = s.ports.Deck.Build(spec)
		if err != nil {
			return err
		}
		if req.Format == "pdf" {
			artifact, err = s.ports.Deck.RenderPDF(r.Context(), artifact)
		}
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, artifact)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "artifact")

	var artifact *domain.Artifact
	err := s.ports.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(sess *domain.Session) error {
		var err error
		switch {
		case name == "summary":
			artifact, err = s.ports.Export.Summary(sess)
		case name == "concepts":
			artifact, err = s.ports.Export.KeyConcepts(sess)
		case name == "transcript":
			artifact, err = s.ports.Export.Transcript(sess)
		case strings.HasPrefix(name, "section-"):
			index, convErr := strconv.Atoi(strings.TrimPrefix(name, "section-"))
			if convErr != nil || index < 1 {
				return fmt.Errorf("export %s: %w", name, domain.ErrNotFound)
			}
			artifact, err = s.ports.Export.Analysis(sess, index)
		default:
			return fmt.Errorf("export %s: %w", name, domain.ErrNotFound)
		}
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, artifact)
}
