// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/studybuddy/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewUpload is the file picker and generate view.
	ViewUpload ViewType = iota
	// ViewGuide is the tabbed study guide view.
	ViewGuide
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewUpload:
		return "upload"
	case ViewGuide:
		return "guide"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FileChosen is sent when the user picks a file in the file picker.
type FileChosen struct {
	Path string
}

// FileRejected is sent when the picked file cannot be selected.
type FileRejected struct {
	Path string
	Err  error
}

// GenerateRequested asks the app to run the pipeline on the selected file.
type GenerateRequested struct{}

// GuideGenerated carries the pipeline result back to the model.
type GuideGenerated struct {
	Guide *domain.StudyGuide
	Err   error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
