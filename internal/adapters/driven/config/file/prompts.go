// Package file provides file-backed configuration stores.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// indexFilename maps prompt names to files inside the prompt directory, so
// prompts can be renamed or shared without renaming vault-side files.
const indexFilename = "index.toml"

// promptIndex is the on-disk schema of index.toml.
type promptIndex struct {
	Prompts map[string]string `toml:"prompts"`
}

// PromptStore loads LLM prompts from user-editable files on disk, with
// fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor. This makes testing easier and avoids
// unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	index     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for
// new files.
var defaultPrompts = map[string]string{
	driven.PromptMorningCheckIn: `You are a focused personal planning assistant.
Below is today's primary vision objective. Write a short, encouraging plan
for the day: three concrete actions that move this objective forward, and
one thing to avoid. Keep it under 150 words.

Objective:
%s`,

	driven.PromptEveningCheckIn: `You are a thoughtful reflection partner.
Below is today's primary vision objective. Write three reflective questions
that help evaluate how the day served this objective, then a two-sentence
encouraging close. Keep it under 150 words.

Objective:
%s`,

	driven.PromptTweetIdeas: `You are a sharp, authentic writer who turns
raw journal entries into social posts in the author's own voice. Below is
today's journal entry. Draft five tweet ideas drawn from its themes. Keep
each under 280 characters, no hashtags, no emoji.

Journal entry:
%s`,

	driven.PromptEssayIdeas: `You are a thoughtful and creative writer who
generates insightful essay ideas from the content provided. Draw themes,
patterns and unique angles from the text below. Suggest 3-5 essay ideas,
each with a brief explanation of why it would be worth exploring.

Journal entry:
%s`,

	driven.PromptBookRecommendations: `You are a knowledgeable bibliophile
and literary curator. Recommend 4-6 books, fiction or non-fiction, that
would enrich the themes and questions in the journal entry below. For each
book give the title and author, a one-line description, and why it connects
to the entry.

Journal entry:
%s`,

	driven.PromptWeeklyPrayer: `You are a thoughtful, faithful spiritual
guide who composes heartfelt, personalised prayers. Based on the weekly
plan below, compose a prayer of 8-12 sentences that acknowledges the week
ahead and its challenges, asks God for guidance, strength and clarity,
expresses gratitude for opportunities to grow, and concludes with hope and
divine purpose.

Here is the weekly plan:
%s`,
}

// NewPromptStore creates a new file-based prompt store rooted at promptDir.
//
// The constructor does not perform any I/O - directory creation and file
// writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		return nil, fmt.Errorf("prompt directory is required")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory, default files and the
// index. Falls back to the embedded default if the file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
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
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
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

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory, default files and the index.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.loadIndex(); err != nil {
		s.initErr = err
	}
}

// loadIndex reads index.toml, writing a default one mapping every embedded
// prompt when missing.
func (s *PromptStore) loadIndex() error {
	path := filepath.Join(s.promptDir, indexFilename)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		idx := promptIndex{Prompts: make(map[string]string, len(defaultPrompts))}
		for name := range defaultPrompts {
			idx.Prompts[name] = name + ".txt"
		}
		out, err := toml.Marshal(idx)
		if err != nil {
			return fmt.Errorf("marshal prompt index: %w", err)
		}
		if err := os.WriteFile(path, out, 0600); err != nil {
			return fmt.Errorf("write prompt index: %w", err)
		}
		s.index = idx.Prompts
		return nil
	}
	if err != nil {
		return fmt.Errorf("read prompt index: %w", err)
	}

	var idx promptIndex
	if err := toml.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("parse prompt index: %w", err)
	}
	s.index = idx.Prompts
	return nil
}

// loadFromFile reads a prompt from disk, resolving its filename through the
// index.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	filename := name + ".txt"
	if mapped, ok := s.index[name]; ok && mapped != "" {
		filename = mapped
	}

	data, err := os.ReadFile(filepath.Join(s.promptDir, filename))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
