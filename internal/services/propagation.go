// Package services implements the write-side coordination for the course
// directory: create/update/delete per entity, propagation of denormalized
// snapshots, and recalculation of derived aggregates.
package services

import (
	"errors"
	"net/http"

	"github.com/arangodb/go-driver/v2/arangodb/shared"
)

// propagationPatch narrows an update document to the fields of one snapshot
// allow-list. An empty result means the update touches nothing embedded at
// that site and the propagation is skipped entirely.
func propagationPatch(changes map[string]interface{}, allowed []string) map[string]interface{} {
	patch := map[string]interface{}{}
	for _, field := range allowed {
		if v, ok := changes[field]; ok {
			patch[field] = v
		}
	}
	return patch
}

// isUniqueViolation reports whether the store rejected a write because of a
// unique index.
func isUniqueViolation(err error) bool {
	var aerr shared.ArangoError
	if errors.As(err, &aerr) {
		return aerr.Code == http.StatusConflict || aerr.ErrorNum == 1210
	}
	return false
}
