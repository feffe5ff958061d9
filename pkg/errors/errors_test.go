package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/Ty9112/FabricationSample-sub002/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "material",
			Name:     "Copper",
		}
		assert.Equal(t, `material "Copper" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("service", "Supply Air")
		assert.Equal(t, `service "Supply Air" not found`, err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("profile", "Site A")
		wrapped := errors.Join(errors.New("discovery failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "databaseId",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field databaseId: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid package manifest",
		}
		assert.Equal(t, "validation failed: invalid package manifest", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	err := &pkgerrors.ConfigError{
		Component: "journal",
		Message:   "no data path configured",
	}
	assert.Contains(t, err.Error(), "journal")
	assert.Contains(t, err.Error(), "no data path configured")
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		base := errors.New("permission denied")
		err := pkgerrors.NewIOError("write", "/data/manifest.json", base)
		assert.Contains(t, err.Error(), "write")
		assert.Contains(t, err.Error(), "/data/manifest.json")
		assert.Equal(t, base, err.Unwrap())
	})

	t.Run("wrap helper returns nil on nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	})
}

func TestResourceError(t *testing.T) {
	base := errors.New("disk full")
	err := pkgerrors.NewResourceError("save", "item", "ELBOW-90", base)
	assert.Contains(t, err.Error(), "save")
	assert.Contains(t, err.Error(), "item")
	assert.Contains(t, err.Error(), "ELBOW-90")
	assert.ErrorIs(t, err, base)
}

func TestParseError(t *testing.T) {
	base := errors.New("unexpected token")
	err := pkgerrors.WrapParse("json", "package.json", base)
	assert.Contains(t, err.Error(), "json")
	assert.Contains(t, err.Error(), "package.json")
	assert.ErrorIs(t, err, base)
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, pkgerrors.IsCanceled(pkgerrors.ErrCanceled))
	assert.False(t, pkgerrors.IsCanceled(errors.New("other")))
}
