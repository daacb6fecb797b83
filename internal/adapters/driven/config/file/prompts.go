package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/specforge/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSectionsFromInput: `You are a software specification writer. The user describes an application they want to build. Produce the content of an implementation specification document for it.

Respond with a single JSON object. Use only these keys, each mapping to a plain-text section body:
"title", "summary", "functional_requirements", "non_functional_requirements", "constraints_assumptions", "architecture_overview", "system_components", "development_environment", "backend_technology", "frontend_technology", "infrastructure_deployment", "entity_relationship_diagram", "database_schema", "data_flow", "api_overview", "endpoint_details", "backend_components", "frontend_components", "core_algorithms_logic", "security_threat_analysis", "security_controls", "test_approach", "test_cases", "development_phases", "development_standards", "documentation_requirements", "glossary", "reference_documents", "requirements_implementation_verification", "implementation_status_conclusion".

Omit any key you cannot fill with meaningful content. Do not invent requirements the user did not imply. Write section bodies as prose or short bullet lists, no markdown headings.`,

	driven.PromptSectionsFromContext: `You are a software specification writer. You are given reference material retrieved from the user's knowledge base, followed by the user's request. Produce the content of an implementation specification document grounded in that material.

Respond with a single JSON object. Use only these keys, each mapping to a plain-text section body:
"title", "summary", "functional_requirements", "non_functional_requirements", "constraints_assumptions", "architecture_overview", "system_components", "development_environment", "backend_technology", "frontend_technology", "infrastructure_deployment", "entity_relationship_diagram", "database_schema", "data_flow", "api_overview", "endpoint_details", "backend_components", "frontend_components", "core_algorithms_logic", "security_threat_analysis", "security_controls", "test_approach", "test_cases", "development_phases", "development_standards", "documentation_requirements", "glossary", "reference_documents", "requirements_implementation_verification", "implementation_status_conclusion".

Prefer facts from the reference material over general knowledge. Omit any key you cannot fill with meaningful content. Write section bodies as prose or short bullet lists, no markdown headings.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.specforge/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".specforge", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
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

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# SpecForge Prompts

This directory contains customisable prompts used by SpecForge's LLM features.

## Files

- ` + "`sections_from_input.txt`" + ` - Turns a project description into specification sections
- ` + "`sections_from_context.txt`" + ` - Produces specification sections from retrieved reference material

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
request or after restarting the server.

Both prompts must keep instructing the model to respond with a single JSON
object using the documented section keys, or generated documents will fall
back to placeholder content.
`
	return os.WriteFile(path, []byte(content), 0600)
}
