package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSigner_SignAndParse(t *testing.T) {
	t.Parallel()

	signer := NewSigner("super-secret")

	token, err := signer.Sign(42)
	require.NoError(t, err)

	userID, err := signer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), userID)
}

func TestSigner_TokensAreDistinct(t *testing.T) {
	t.Parallel()

	signer := NewSigner("super-secret")

	first, err := signer.Sign(7)
	require.NoError(t, err)
	second, err := signer.Sign(7)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestSigner_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewSigner("right-secret").Sign(1)
	require.NoError(t, err)

	_, err = NewSigner("wrong-secret").Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewSigner("k").Parse("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "1"})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSigner("k").Parse(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsNonNumericSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "abc"})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = NewSigner("k").Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
