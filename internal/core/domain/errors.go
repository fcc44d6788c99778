package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingService indicates the embedding service failed to produce a vector.
	// Ingestion skips the affected ticket and continues.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrVectorStore indicates the vector index rejected or failed an operation.
	ErrVectorStore = errors.New("vector store error")

	// ErrNothingToIngest indicates no ticket produced a vector record.
	ErrNothingToIngest = errors.New("no tickets were processed successfully")

	// Feature availability errors. The matching tool stays registered but
	// answers with an error until the missing settings are provided.

	// ErrWebSearchUnavailable indicates the web search provider is not configured.
	ErrWebSearchUnavailable = errors.New("web search unavailable")

	// ErrKnowledgeBaseUnavailable indicates the embedding service or vector index is not configured.
	ErrKnowledgeBaseUnavailable = errors.New("knowledge base unavailable")

	// ErrRequestAPIUnavailable indicates the helpdesk request API is not configured.
	ErrRequestAPIUnavailable = errors.New("request API unavailable")
)

// ValidationError describes a rejected tool argument.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	// Field is the argument name as seen by the caller.
	Field string

	// Message is the user-facing explanation.
	Message string
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RequestAPIError is returned when the helpdesk API answers with a non-success status
// or cannot be reached.
type RequestAPIError struct {
	// StatusCode is the HTTP status, or 0 for transport failures.
	StatusCode int

	// Message is the user-facing explanation.
	Message string

	// Details carries the decoded error body when the API returned JSON.
	Details map[string]any
}

func (e *RequestAPIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}
