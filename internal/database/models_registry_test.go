package database

import (
	"testing"

	modelspkg "datawalt/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesListing(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Listing); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Listing")
}
