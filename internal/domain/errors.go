package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no analysis has the given id.
var ErrNotFound = errors.New("analysis not found")

// ErrorKind distinguishes the failure families of the analysis pipeline.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindTranslation ErrorKind = "translation"
	KindInternal    ErrorKind = "internal"
)

// Validated fields of a FeedItem.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLink        = "link"
	FieldPublishedAt = "publishedAt"
)

// AnalysisError is a structured pipeline failure.
type AnalysisError struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *AnalysisError) Error() string {
	return e.Message
}

// ValidationError reports a missing or malformed feed item field.
func ValidationError(field, message string) *AnalysisError {
	return &AnalysisError{Kind: KindValidation, Field: field, Message: message}
}

// TranslationError reports a translator failure that was replaced by the
// fallback translation.
func TranslationError(cause any) *AnalysisError {
	return &AnalysisError{Kind: KindTranslation, Message: fmt.Sprintf("translation failed: %v", cause)}
}

// InternalError reports an unexpected failure of the orchestrator itself.
func InternalError(cause any) *AnalysisError {
	return &AnalysisError{Kind: KindInternal, Message: fmt.Sprintf("analysis failed: %v", cause)}
}

// IsKind reports whether err is an AnalysisError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}
