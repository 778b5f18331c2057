package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names.
const (
	// PromptStudyGuide instructs the model to build a study guide.
	// The template expects a single %s placeholder for the document text.
	PromptStudyGuide = "study_guide"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use the built-in default prompts.
	SetPromptStore(store PromptStore)
}

// DefaultStudyGuidePrompt is the built-in PromptStudyGuide template.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const DefaultStudyGuidePrompt = `Based on the following document text, act as an expert educational content creator and curriculum designer.
Generate a comprehensive study guide. The guide must include the following sections in this exact order:
1. Flashcards: Key terms and their definitions.
2. MCQs: Multiple choice questions with 4 options and a correct answer. These should cover a range of difficulties.
3. Fill in the blanks: Sentences with a key word or phrase missing. Use "___" to represent the blank.
4. What is this called?: Provide a definition or description and ask for the corresponding term.
5. Definition: Provide a term and ask for its definition.
6. Programming questions: Generate a generous number of programming questions if the document contains any code snippets, algorithms, technical specifications, or discusses software development concepts. These questions should involve code analysis, debugging, or writing small code snippets. If the topic is not technical at all, this array must be empty.
7. 30-min Exam Sheet: Create a challenging exam of 10-15 questions suitable for a 30-minute test. These exam questions must be more difficult and in-depth than the practice questions in the sections above. They should test for deeper understanding, application of concepts, and synthesis of information from different parts of the document. Include a mix of question types, prioritizing those that require critical thinking and problem-solving. Some questions in the exam can be completely new and not derived from the earlier sections.

Here is the document text:
---
%s
---`
