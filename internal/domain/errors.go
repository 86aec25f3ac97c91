package domain

import "errors"

var ErrCatalogUnavailable = errors.New("catalog unavailable")
