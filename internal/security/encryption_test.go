package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return []byte(strings.Repeat(string(b), 32))
}

func TestNewEncryptor(t *testing.T) {
	t.Run("accepts a 32-byte key", func(t *testing.T) {
		_, err := NewEncryptor(testKey('k'))
		assert.NoError(t, err)
	})

	t.Run("rejects other key lengths", func(t *testing.T) {
		for _, n := range []int{0, 16, 31, 33, 64} {
			_, err := NewEncryptor([]byte(strings.Repeat("k", n)))
			assert.Error(t, err, "key length %d", n)
		}
	})
}

func TestDocumentRoundTrip(t *testing.T) {
	enc, err := NewEncryptor(testKey('k'))
	require.NoError(t, err)

	t.Run("encrypt then decrypt returns the original", func(t *testing.T) {
		doc := []byte(`{"date":"2026-08-28","calories":1200,"water":5}`)

		stored, err := enc.EncryptDocument(doc)
		require.NoError(t, err)
		assert.NotEqual(t, string(doc), stored)

		decrypted, err := enc.DecryptDocument(stored)
		require.NoError(t, err)
		assert.Equal(t, doc, decrypted)
	})

	t.Run("same plaintext encrypts differently each time", func(t *testing.T) {
		doc := []byte(`{"name":"Friend"}`)

		first, err := enc.EncryptDocument(doc)
		require.NoError(t, err)
		second, err := enc.EncryptDocument(doc)
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "nonce must differ per encryption")
	})

	t.Run("empty document round-trips to empty", func(t *testing.T) {
		stored, err := enc.EncryptDocument(nil)
		require.NoError(t, err)
		assert.Empty(t, stored)

		decrypted, err := enc.DecryptDocument("")
		require.NoError(t, err)
		assert.Nil(t, decrypted)
	})
}

func TestDecryptFailures(t *testing.T) {
	enc, err := NewEncryptor(testKey('k'))
	require.NoError(t, err)

	t.Run("wrong key fails to authenticate", func(t *testing.T) {
		stored, err := enc.EncryptDocument([]byte(`{"water":3}`))
		require.NoError(t, err)

		other, err := NewEncryptor(testKey('x'))
		require.NoError(t, err)

		_, err = other.DecryptDocument(stored)
		assert.Error(t, err)
	})

	t.Run("tampered ciphertext fails to authenticate", func(t *testing.T) {
		stored, err := enc.EncryptDocument([]byte(`{"water":3}`))
		require.NoError(t, err)

		tampered := "A" + stored[1:]
		_, err = enc.DecryptDocument(tampered)
		assert.Error(t, err)
	})

	t.Run("garbage input fails cleanly", func(t *testing.T) {
		_, err := enc.DecryptDocument("not base64 at all!!!")
		assert.Error(t, err)

		_, err = enc.DecryptDocument("c2hvcnQ=")
		assert.Error(t, err, "ciphertext shorter than a nonce")
	})
}
