package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/studydeck/internal/core/ports/driven"
	"github.com/custodia-labs/studydeck/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// promptExt is the extension of prompt template files.
const promptExt = ".tmpl"

// PromptStore loads LLM prompt templates from user-editable files on disk.
// Missing or unreadable files fall back to the defaults given at construction.
//
// The directory is populated lazily on the first Load, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	defaults  map[string]string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
	watcher   *fsnotify.Watcher
}

// NewPromptStore creates a new file-based prompt store seeded with defaults.
// If promptDir is empty, defaults to ~/.studydeck/prompts/.
func NewPromptStore(promptDir string, defaults map[string]string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	seeded := make(map[string]string, len(defaults))
	for k, v := range defaults {
		seeded[k] = v
	}

	return &PromptStore{
		promptDir: promptDir,
		defaults:  seeded,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := s.defaults[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil || prompt == "" {
		if def, ok := s.defaults[name]; ok {
			return def, nil
		}
		if err == nil {
			err = os.ErrNotExist
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Watch reloads prompts whenever a template file in the directory changes,
// so edits apply to a running server or chat without a restart.
// It returns once the watcher is installed; watching stops when ctx is
// done or Close is called.
func (s *PromptStore) Watch(ctx context.Context) error {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return s.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := watcher.Add(s.promptDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.promptDir, err)
	}

	s.mu.Lock()
	if s.watcher != nil {
		s.mu.Unlock()
		watcher.Close()
		return nil
	}
	s.watcher = watcher
	s.mu.Unlock()

	go s.watch(ctx, watcher)
	return nil
}

// Close stops the watcher started by Watch.
func (s *PromptStore) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}

func (s *PromptStore) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if s.handleFsEvent(event) {
				logger.Debug("prompt %s changed, reloading", filepath.Base(event.Name))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("prompt watcher: %v", err)
		}
	}
}

// handleFsEvent drops the cache when a template file is written, created,
// removed or renamed. Reports whether the cache was dropped.
func (s *PromptStore) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != promptExt {
		return false
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	s.Reload()
	return true
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory, writes any missing default files
// and the README. Existing files are never overwritten.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range s.defaults {
		path := s.path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content+"\n"), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) path(name string) string {
	return filepath.Join(s.promptDir, name+promptExt)
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	names := make([]string, 0, len(s.defaults))
	for name := range s.defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# studydeck prompts\n\n")
	b.WriteString("Each file in this directory is a Go text/template used for one LLM task.\n\n")
	b.WriteString("## Files\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- `%s%s`\n", name, promptExt)
	}
	b.WriteString("\n## Customisation\n\n")
	b.WriteString("Edit any file to change how the assistant is instructed. Fields are written\n")
	b.WriteString("as `{{.Corpus}}`, `{{.Title}}` and so on; a template that references an\n")
	b.WriteString("unknown field fails to render. Delete a file to restore its default on the\n")
	b.WriteString("next run. The slide_deck and sections prompts must keep asking for the same\n")
	b.WriteString("JSON shape.\n")

	return os.WriteFile(path, []byte(b.String()), 0600)
}
