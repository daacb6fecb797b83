package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptSectionsFromInput is the system instruction for turning free
	// user input into the section JSON. No format placeholders.
	PromptSectionsFromInput = "sections_from_input"

	// PromptSectionsFromContext is the system instruction for producing
	// the section JSON from retrieved reference material plus the user
	// query. No format placeholders.
	PromptSectionsFromContext = "sections_from_context"
)
