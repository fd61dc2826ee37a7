package firestore

import "github.com/memoraid/memoraid/pkg/domain/model"

// ErrNotFound is returned when a document does not exist
var ErrNotFound = model.ErrNotFound
