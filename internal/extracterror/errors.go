// Package extracterror defines the error taxonomy for the extraction pipeline.
// The HTTP facade maps these onto the uniform failure payload; nothing below
// the facade writes HTTP responses.
package extracterror

import "fmt"

// UnreadablePDFError indicates the uploaded document could not be read at all:
// encrypted, corrupted, or carrying no extractable text layer. Terminal for
// the request, never retried.
type UnreadablePDFError struct {
	Filename string
	Reason   string
	Err      error
}

func (e *UnreadablePDFError) Error() string {
	return fmt.Sprintf("unreadable document '%s': %s", e.Filename, e.Reason)
}

func (e *UnreadablePDFError) Unwrap() error {
	return e.Err
}

// LLMUnavailableError indicates a transport-level failure talking to the
// hosted model: network error, timeout, or empty response. Retried once by
// the refiner, then reported.
type LLMUnavailableError struct {
	Model string
	Err   error
}

func (e *LLMUnavailableError) Error() string {
	return fmt.Sprintf("language model '%s' unavailable: %v", e.Model, e.Err)
}

func (e *LLMUnavailableError) Unwrap() error {
	return e.Err
}

// LLMSchemaError indicates the model answered but the answer could not be
// coerced into the transaction schema. Not retried; the affected rows are
// dropped and counted.
type LLMSchemaError struct {
	Reason string
}

func (e *LLMSchemaError) Error() string {
	return fmt.Sprintf("model response failed schema validation: %s", e.Reason)
}

// EmptyStatementError indicates the document yielded zero transactions, so
// there is no closing balance to report.
type EmptyStatementError struct {
	Filename string
}

func (e *EmptyStatementError) Error() string {
	if e.Filename == "" {
		return "no transactions found in statement"
	}
	return fmt.Sprintf("no transactions found in '%s'", e.Filename)
}

// BadRequestError indicates a malformed HTTP request: missing multipart field,
// empty file, oversized upload. Mapped to HTTP 400.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("bad request: %s", e.Reason)
}
