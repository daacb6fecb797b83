package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/specforge/internal/core/domain"
	"github.com/custodia-labs/specforge/internal/core/ports/driven"
	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/logger"
)

// Ensure ParserService implements the interface.
var _ driving.ParserService = (*ParserService)(nil)

// ParserService turns free-text input into a resolved section mapping.
// With a language model it asks for the section JSON directly; without
// one, or when the model misbehaves, it falls back to label-based
// extraction. Either way the result is merged with the registry defaults
// so every canonical key is present.
type ParserService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewParserService creates a parser. llm may be nil for rule-based-only
// operation; prompts may be nil to use built-in instructions.
func NewParserService(llm driven.LLMService, prompts driven.PromptStore) *ParserService {
	return &ParserService{
		llm:     llm,
		prompts: prompts,
	}
}

// fallbackInputPrompt is used when no prompt store is configured.
const fallbackInputPrompt = `You are a software specification writer. The user describes an application they want to build. Respond with a single JSON object mapping specification section keys to plain-text section bodies. Omit keys you cannot fill.`

// Parse extracts section content from input. Never fails: an unreachable
// or misbehaving model degrades to rule-based extraction, and the result
// always contains every canonical key.
func (s *ParserService) Parse(ctx context.Context, input string) domain.SectionMapping {
	if s.llm != nil {
		if sections, ok := s.parseWithLLM(ctx, input); ok {
			return domain.Merge(sections)
		}
	}

	return domain.Merge(extractLabelled(input))
}

// parseWithLLM asks the model for the section JSON.
func (s *ParserService) parseWithLLM(ctx context.Context, input string) (domain.SectionMapping, bool) {
	system := loadPrompt(s.prompts, driven.PromptSectionsFromInput, fallbackInputPrompt)

	response, err := s.llm.Complete(ctx, system, input, driven.CompleteOptions{
		JSONObject:  true,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("parser: completion failed, using rule-based extraction: %v", err)
		return nil, false
	}

	sections, err := domain.ParseSectionJSON([]byte(response))
	if err != nil {
		logger.Warn("parser: invalid section JSON, using rule-based extraction: %v", err)
		return nil, false
	}

	return sections, true
}

// Label synonyms recognised by rule-based extraction. Each pattern matches
// a line that introduces the section, with optional inline content after
// the separator. The separator is mandatory so prose that merely starts
// with a label word ("Overview of the system") does not open a section.
var labelPatterns = []struct {
	key     string
	pattern *regexp.Regexp
}{
	{domain.KeyTitle, regexp.MustCompile(`(?i)^\s*(?:title|name|project(?:\s+name)?)\s*[:\-]\s*(.+)$`)},
	{"summary", regexp.MustCompile(`(?i)^\s*(?:summary|overview|description)\s*[:\-]\s*(.*)$`)},
	{"functional_requirements", regexp.MustCompile(`(?i)^\s*(?:functional\s+requirements?|key\s+features?|features?)\s*[:\-]\s*(.*)$`)},
	{"non_functional_requirements", regexp.MustCompile(`(?i)^\s*(?:non[\s\-]functional\s+requirements?|quality\s+attributes?)\s*[:\-]\s*(.*)$`)},
	{"architecture_overview", regexp.MustCompile(`(?i)^\s*(?:architecture|architecture\s+overview|system\s+design)\s*[:\-]\s*(.*)$`)},
}

// extractLabelled scans input for labelled blocks. A label line opens a
// section; following lines belong to it until the next label. Input with
// no recognised labels becomes the summary, titled from its first line.
func extractLabelled(input string) domain.SectionMapping {
	sections := make(domain.SectionMapping)
	lines := strings.Split(input, "\n")

	current := ""
	var block []string

	flush := func() {
		if current == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(block, "\n"))
		if text != "" && sections[current] == "" {
			sections[current] = text
		}
		block = nil
	}

	for _, line := range lines {
		matched := false
		for _, lp := range labelPatterns {
			m := lp.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			// Title labels are single-line, not blocks.
			if lp.key == domain.KeyTitle {
				if sections[domain.KeyTitle] == "" {
					sections[domain.KeyTitle] = strings.TrimSpace(m[1])
				}
				matched = true
				break
			}

			flush()
			current = lp.key
			if rest := strings.TrimSpace(m[1]); rest != "" {
				block = append(block, rest)
			}
			matched = true
			break
		}
		if !matched && current != "" {
			block = append(block, line)
		}
	}
	flush()

	// Unlabelled input still has to produce something useful.
	if sections["summary"] == "" && strings.TrimSpace(input) != "" {
		sections["summary"] = strings.TrimSpace(input)
	}
	if sections[domain.KeyTitle] == "" {
		sections[domain.KeyTitle] = firstLineTitle(input)
	}

	return sections
}

// maxDerivedTitleLen keeps titles derived from body text readable.
const maxDerivedTitleLen = 80

// firstLineTitle derives a title from the first non-empty line of input.
func firstLineTitle(input string) string {
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > maxDerivedTitleLen {
			line = strings.TrimSpace(line[:maxDerivedTitleLen])
		}
		return line
	}
	return ""
}

// loadPrompt loads a prompt from the store, falling back to the default
// if unavailable.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
