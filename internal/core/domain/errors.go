package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction errors.

	// ErrUnsupportedFormat indicates a document whose extension or MIME type
	// is not one of the accepted formats.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrReadFailure indicates the document's byte stream could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrParseFailure indicates a format-specific parser rejected the content.
	ErrParseFailure = errors.New("parse failure")

	// Generation errors.

	// ErrGenerationFailure indicates the model call failed or returned
	// output that does not conform to the study guide schema.
	ErrGenerationFailure = errors.New("generation failure")

	// ErrValidationFailure indicates missing input: no document selected
	// or no text extracted.
	ErrValidationFailure = errors.New("validation failure")

	// ErrGenerationInProgress indicates a pipeline is already running.
	ErrGenerationInProgress = errors.New("generation in progress")

	// ErrLLMUnavailable indicates the model provider is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// User-facing messages shown when a failure of the given kind is displayed.
const (
	MsgNoFileSelected   = "Please select a file first."
	MsgUnsupportedFile  = "Unsupported file type. Please upload a .pdf, .docx, .md, or .txt file."
	MsgReadFailure      = "Failed to read file."
	MsgPDFParseFailure  = "Error parsing PDF file. It might be corrupted or password-protected."
	MsgDOCXParseFailure = "Error parsing DOCX file."
	MsgEmptyText        = "Could not extract text from the file. It might be empty or corrupted."
	MsgGeneration       = "Failed to generate study guide from the AI. " +
		"The content might be too complex or the service may be temporarily unavailable."
	MsgUnknown = "An unknown error occurred during generation."
)

// Failure is an error with a message fit for display to the user.
// Error returns only the message; the diagnostic cause is kept in Err
// for logging. errors.Is matches both the Kind and the cause chain.
type Failure struct {
	// Kind is one of the sentinel errors above.
	Kind error

	// Message is the user-facing summary.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// NewFailure creates a Failure of the given kind.
func NewFailure(kind error, message string, cause error) *Failure {
	return &Failure{Kind: kind, Message: message, Err: cause}
}

// Error implements error.
func (f *Failure) Error() string {
	if f.Message != "" {
		return f.Message
	}
	if f.Kind != nil {
		return f.Kind.Error()
	}
	return MsgUnknown
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (f *Failure) Unwrap() []error {
	errs := make([]error, 0, 2)
	if f.Kind != nil {
		errs = append(errs, f.Kind)
	}
	if f.Err != nil {
		errs = append(errs, f.Err)
	}
	return errs
}

// Cause returns the diagnostic detail for logs.
func (f *Failure) Cause() string {
	if f.Err == nil {
		return f.Error()
	}
	return f.Err.Error()
}

// UserMessage returns the message to display for err.
// Failures show their own message rather than the wrapped chain.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnknown
}
