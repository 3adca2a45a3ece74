package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	s := NewStore()

	require.NoError(t, s.Save("conn-1", "s3cret"))

	got, err := s.Get("conn-1")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, s.Delete("conn-1"))
	_, err = s.Get("conn-1")
	assert.ErrorIs(t, err, ErrPasswordNotFound)
}

func TestStore_EmptyPasswordIsNotSaved(t *testing.T) {
	keyring.MockInit()
	s := NewStore()

	require.NoError(t, s.Save("conn-2", ""))

	_, err := s.Get("conn-2")
	assert.ErrorIs(t, err, ErrPasswordNotFound)
}

func TestStore_DeleteMissing(t *testing.T) {
	keyring.MockInit()

	assert.NoError(t, NewStore().Delete("never-saved"))
}
