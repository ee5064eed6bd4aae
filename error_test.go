package harvest_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abrsjh/harvest"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", harvest.ErrorCode(nil))
	})

	t.Run("harvest error", func(t *testing.T) {
		t.Parallel()
		err := harvest.Errorf(harvest.ENOTFOUND, "record not found")
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
	})

	t.Run("wrapped harvest error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", harvest.Errorf(harvest.EINVALID, "bad selector"))
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("non-harvest error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, harvest.EINTERNAL, harvest.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", harvest.ErrorMessage(nil))
	})

	t.Run("harvest error", func(t *testing.T) {
		t.Parallel()
		err := harvest.Errorf(harvest.EINVALID, "invalid URL: %q", "nope")
		assert.Equal(t, `invalid URL: "nope"`, harvest.ErrorMessage(err))
	})

	t.Run("non-harvest error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", harvest.ErrorMessage(errors.New("boom")))
	})
}
