package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studydeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/studydeck/internal/core/domain"
	"github.com/custodia-labs/studydeck/internal/core/services"
)

func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	store, err := memory.NewSessionStore(0)
	require.NoError(t, err)
	return &Ports{
		Sessions: services.NewSessionService(store),
		Ingest:   &mockIngest{},
		Study:    &mockStudy{},
		Chat:     &mockChat{},
		Deck:     &mockDeck{},
		Export:   services.NewExportService(),
	}
}

func newTestServer(t *testing.T, ports *Ports) *httptest.Server {
	t.Helper()
	if ports == nil {
		ports = newTestPorts(t)
	}
	srv, err := NewServer(ports, Options{AllowedOrigins: []string{"http://localhost:5173"}})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, contentType string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/api/sessions", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[sessionCreated](t, resp)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func upload(t *testing.T, ts *httptest.Server, id string, files map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return do(t, http.MethodPost, ts.URL+"/api/sessions/"+id+"/files", mw.FormDataContentType(), buf.Bytes())
}

func TestNewServer_InvalidPorts(t *testing.T) {
	_, err := NewServer(nil, Options{})
	assert.ErrorIs(t, err, ErrInvalidPorts)

	ports := newTestPorts(t)
	ports.Deck = nil
	_, err = NewServer(ports, Options{})
	assert.ErrorIs(t, err, ErrMissingDeckService)
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t, nil)
	id := createSession(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/api/sessions", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[map[string][]string](t, resp)
	assert.Equal(t, []string{id}, list["sessions"])

	resp = do(t, http.MethodGet, ts.URL+"/api/sessions/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[sessionView](t, resp)
	assert.Equal(t, id, view.ID)
	assert.Empty(t, view.Sources)

	resp = do(t, http.MethodDelete, ts.URL+"/api/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[errorResponse](t, resp).Error, "not found")
}

func TestUploadFiles(t *testing.T) {
	ts := newTestServer(t, nil)
	id := createSession(t, ts)

	resp := upload(t, ts, id, map[string]string{"notes.txt": "cells divide", "scan.txt": ""})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[importView](t, resp)
	assert.Len(t, view.Added, 2)
	require.Len(t, view.Warnings, 1)
	assert.Equal(t, "scan.txt", view.Warnings[0].File)

	resp = do(t, http.MethodGet, ts.URL+"/api/sessions/"+id, "", nil)
	session := decode[sessionView](t, resp)
	assert.Len(t, session.Sources, 2)
}

func TestUploadFiles_NoFiles(t *testing.T) {
	ts := newTestServer(t, nil)
	id := createSession(t, ts)

	resp := upload(t, ts, id, map[string]string{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddTextAndRemoveSource(t *testing.T) {
	ts := newTestServer(t, nil)
	id := createSession(t, ts)

	resp := do(t, http.MethodPost, ts.URL+"/api/sessions/"+id+"/text", "application/json",
		[]byte(`{"label":"pasted","text":"Newton's laws"}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	src := decode[sourceView](t, resp)
	assert.Equal(t, "pasted", src.Name)
	assert.Equal(t, "text", src.Kind)

	resp = do(t, http.MethodDelete, ts.URL+"/api/sessions/"+id+"/sources/"+src.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, ts.URL+"/api/sessions/"+id+"/sources/"+src.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddText_BadJSON(t *testing.T) {
	ts := newTestServer(t, nil)
	id := createSession(t, ts)

	resp := do(t, http.MethodPost, ts.URL+"/api/sessions/"+id+"/text", "application/json", []byte(`{"label":`))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStudyEndpoints(t *testing.T) {
	ports := newTestPorts(t)
	ports.Study = &mockStudy{
		DetectSectionsFunc: func(_ context.Context, sess *domain.Session) ([]domain.Section, error) {
			sections := []domain.Section{{Index: 1, Title: "Intro", StartUnit: 1, EndUnit: 1}}
			sess.SetSections(sections)
			return sections, nil
		},
		AnalyseSectionFunc: func(_ context.Context, sess *domain.Session, index int) (string, error) {
			sess.SetAnalysis(index, "deep dive")
			return "deep dive", nil
		},
	}
	ts := newTestServer(t, ports)
	id := createSession(t, ts)
	base := ts.URL + "/api/sessions/" + id

	resp := do(t, http.MethodPost, base+"/summary", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "summary", decode[markdownView](t, resp).Markdown)

	resp = do(t, http.MethodPost, base+"/sections", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[sectionsView](t, resp).Sections, 1)

	resp = do(t, http.MethodPost, base+"/sections/1/analysis", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "deep dive", decode[markdownView](t, resp).Markdown)

	resp = do(t, http.MethodPost, base+"/sections/zero/analysis", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, base+"/concepts", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "concepts", decode[markdownView](t, resp).Markdown)

	resp = do(t, http.MethodGet, base, "", nil)
	view := decode[sessionView](t, resp)
	assert.True(t, view.HasSummary)
	assert.Equal(t, []int{1}, view.Analysed)
}

func TestStudyEndpoint_EmptyCorpus(t *testing.T) {
	ports := newTestPorts(t)
	ports.Study = &mockStudy{SummariseFunc: func(context.Context, *domain.Session) (string, error) {
		return "", domain.ErrEmptyCorpus
	}}
	ts := newTestServer(t, ports)
	id := createSession(t, ts)

	resp := do(t, http.MethodPost, ts.URL+"/api/sessions/"+id+"/summary", "", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestChat(t *testing.T) {
	ts := newTestServer(t, nil)
	id := createSession(t, ts)
	base := ts.URL + "/api/sessions/" + id

	resp := do(t, http.MethodPost, base+"/chat", "application/json", []byte(`{"question":"What is ATP?"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "answer", decode[answerView](t, resp).Answer)

	resp = do(t, http.MethodPost, base+"/chat", "application/json", []byte(`{"question":"  "}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/export/transcript.md", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.MarkdownContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "chat-transcript.md")
}

func TestDeck(t *testing.T) {
	var opts domain.DeckOptions
	ports := newTestPorts(t)
	ports.Deck = &mockDeck{PlanFunc: func(_ context.Context, _ *domain.Session, o domain.DeckOptions) (*domain.SlideDeckSpec, error) {
		opts = o
		return &domain.SlideDeckSpec{Title: "Deck"}, nil
	}}
	ts := newTestServer(t, ports)
	id := createSession(t, ts)
	base := ts.URL + "/api/sessions/" + id

	resp := do(t, http.MethodPost, base+"/deck", "application/json", []byte(`{"slides":5,"focus":"enzymes"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, opts.Slides)
	assert.Equal(t, "enzymes", opts.Focus)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "deck.pptx")

	resp = do(t, http.MethodPost, base+"/deck", "application/json", []byte(`{"format":"pdf"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodPost, base+"/deck", "application/json", []byte(`{"format":"key"}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeck_RenderFailure(t *testing.T) {
	ports := newTestPorts(t)
	ports.Deck = &mockDeck{RenderPDFFunc: func(context.Context, *domain.Artifact) (*domain.Artifact, error) {
		return nil, domain.ErrRenderFailed
	}}
	ts := newTestServer(t, ports)
	id := createSession(t, ts)

	resp := do(t, http.MethodPost, ts.URL+"/api/sessions/"+id+"/deck", "application/json", []byte(`{"format":"pdf"}`))

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, nil)
	id := createSession(t, ts)
	base := ts.URL + "/api/sessions/" + id

	resp := do(t, http.MethodGet, base+"/export/summary.md", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	do(t, http.MethodPost, base+"/summary", "", nil)

	resp = do(t, http.MethodGet, base+"/export/summary.md", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".md")

	resp = do(t, http.MethodGet, base+"/export/unknown.md", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/export/section-x.md", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReset(t *testing.T) {
	ts := newTestServer(t, nil)
	id := createSession(t, ts)
	upload(t, ts, id, map[string]string{"a.txt": "content"})

	resp := do(t, http.MethodPost, ts.URL+"/api/sessions/"+id+"/reset", "", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/sessions/"+id, "", nil)
	assert.Empty(t, decode[sessionView](t, resp).Sources)
}

func TestBusySession(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	ports := newTestPorts(t)
	ports.Study = &mockStudy{SummariseFunc: func(context.Context, *domain.Session) (string, error) {
		close(entered)
		<-release
		return "slow", nil
	}}
	ts := newTestServer(t, ports)
	id := createSession(t, ts)
	base := ts.URL + "/api/sessions/" + id

	var wg sync.WaitGroup
	wg.Add(1)
	var firstStatus int
	go func() {
		defer wg.Done()
		req, _ := http.NewRequest(http.MethodPost, base+"/summary", nil)
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			firstStatus = resp.StatusCode
			resp.Body.Close()
		}
	}()

	<-entered
	resp := do(t, http.MethodPost, base+"/concepts", "", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	close(release)
	wg.Wait()
	assert.Equal(t, http.StatusOK, firstStatus)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/sessions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrUnsupportedFormat, http.StatusBadRequest},
		{domain.ErrSessionBusy, http.StatusConflict},
		{domain.ErrMissingCredential, http.StatusServiceUnavailable},
		{domain.ErrMalformedResponse, http.StatusBadGateway},
		{domain.ErrSlideCountMismatch, http.StatusBadGateway},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.err.Error(), " ", "_"), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
