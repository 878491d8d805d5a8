package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank drug name in a lookup or comparison.
	ErrEmptyQuery = errors.New("empty query")
	// ErrInvalidCategory signals an unknown information category.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidAnimal signals an unknown animal species.
	ErrInvalidAnimal = errors.New("invalid animal")
	// ErrDrugNotFound signals that no drug matched the query or name.
	ErrDrugNotFound = errors.New("drug not found")
	// ErrNormalizerUnavailable signals that the linguistic normalizer failed.
	ErrNormalizerUnavailable = errors.New("normalizer unavailable")
	// ErrSearchFailed signals a fault that prevented the catalog scan from completing.
	ErrSearchFailed = errors.New("search failed")
	// ErrCatalogEmpty signals a knowledge base without records.
	ErrCatalogEmpty = errors.New("catalog is empty")
)
