package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := New(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		attempt  string
		wantErr  error
	}{
		{name: "matching password", password: "longpass1", attempt: "longpass1"},
		{name: "wrong password", password: "longpass1", attempt: "longpass2", wantErr: ErrMismatch},
		{name: "case matters", password: "LongPass1", attempt: "longpass1", wantErr: ErrMismatch},
		{name: "unicode password", password: "пароль-секрет", attempt: "пароль-секрет"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			err = h.Compare(hash, tt.attempt)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHasher_LongPasswordsAreNotTruncated(t *testing.T) {
	h := New(bcrypt.MinCost)

	prefix := strings.Repeat("a", 100)
	hash, err := h.Hash(prefix + "1")
	require.NoError(t, err)

	// Plain bcrypt would ignore everything past byte 72 and accept this.
	assert.ErrorIs(t, h.Compare(hash, prefix+"2"), ErrMismatch)
	assert.NoError(t, h.Compare(hash, prefix+"1"))
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	h := New(bcrypt.MinCost)

	first, err := h.Hash("longpass1")
	require.NoError(t, err)
	second, err := h.Hash("longpass1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_CostFallback(t *testing.T) {
	h := New(0)
	hash, err := h.Hash("longpass1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHasher_CompareMalformedHash(t *testing.T) {
	h := New(bcrypt.MinCost)

	err := h.Compare("not-a-bcrypt-hash", "longpass1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
