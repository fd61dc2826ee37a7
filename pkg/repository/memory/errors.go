package memory

import "github.com/memoraid/memoraid/pkg/domain/model"

// ErrNotFound is returned when a record does not exist
var ErrNotFound = model.ErrNotFound
