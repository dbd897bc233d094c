package hoodmatch

import "github.com/kailas-cloud/hoodmatch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrInvalidPreferences     = domain.ErrInvalidPreferences
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrInvalidDataset         = domain.ErrInvalidDataset
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrNotImplemented         = domain.ErrNotImplemented
)

// FieldError names the preference field that failed validation.
// Use errors.As() to extract it.
type FieldError = domain.FieldError
