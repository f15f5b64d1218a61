package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDocumentParse indicates a region document on disk is malformed.
	// Callers recover by treating the document as empty; the failure is
	// still logged so it is never silently dropped.
	ErrDocumentParse = errors.New("document parse failed")

	// ErrBadFilename indicates a legacy project filename does not follow
	// the "<facility-id> - <suffix> - <project-type> - <year>" convention.
	// Migration recovers with empty derived fields.
	ErrBadFilename = errors.New("unexpected filename format")

	// ErrAlreadyCanonical indicates migration input is already in the
	// canonical schema. Migration is single-pass; a second pass is
	// rejected rather than producing a degenerate record.
	ErrAlreadyCanonical = errors.New("record already canonical")

	// ErrNoCatchAll indicates a region configuration has no catch-all
	// region, which would make path routing partial.
	ErrNoCatchAll = errors.New("region configuration has no catch-all region")
)
