package vetdex

import "github.com/kailas-cloud/vetdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyQuery            = domain.ErrEmptyQuery
	ErrInvalidCategory       = domain.ErrInvalidCategory
	ErrInvalidAnimal         = domain.ErrInvalidAnimal
	ErrDrugNotFound          = domain.ErrDrugNotFound
	ErrNormalizerUnavailable = domain.ErrNormalizerUnavailable
	ErrSearchFailed          = domain.ErrSearchFailed
	ErrCatalogEmpty          = domain.ErrCatalogEmpty
)
