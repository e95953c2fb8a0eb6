package catalog

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMalformedCatalog = errors.New("malformed catalog entry")
	ErrDuplicateName    = errors.New("duplicate catalog name")
)
