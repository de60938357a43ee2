//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/gitpuller/internal/domain/entities"
)

func TestChangeSetIsEmpty(t *testing.T) {
	t.Parallel()

	t.Run("should be empty for a clean scan", func(t *testing.T) {
		t.Parallel()

		// when
		empty := entities.ChangeSet{}.IsEmpty()

		// then
		assert.True(t, empty)
	})

	t.Run("should not be empty when files were deleted locally", func(t *testing.T) {
		t.Parallel()

		// given
		changes := entities.ChangeSet{DeletedFiles: []string{"a.txt"}}

		// when
		empty := changes.IsEmpty()

		// then
		assert.False(t, empty)
	})
}
