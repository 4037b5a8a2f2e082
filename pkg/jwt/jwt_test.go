package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockorder-sync/pkg/jwt"
)

const (
	secret = "secret-de-prueba"
	issuer = "stockorder-sync"
)

func TestIssueYVerify_DevuelveOperador(t *testing.T) {
	tok, err := jwt.Issue(secret, issuer, jwt.Operator{ID: "u-1", Role: "purchase"}, time.Hour)
	require.NoError(t, err)

	op, err := jwt.Verify(secret, issuer, tok)
	require.NoError(t, err)
	assert.Equal(t, jwt.Operator{ID: "u-1", Role: "purchase"}, op)
}

func TestIssue_CadaTokenEsDistinto(t *testing.T) {
	op := jwt.Operator{ID: "u-1", Role: "sales"}
	a, err := jwt.Issue(secret, issuer, op, time.Hour)
	require.NoError(t, err)
	b, err := jwt.Issue(secret, issuer, op, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "el jti cambia en cada emisión")
}

func TestIssue_Validaciones(t *testing.T) {
	_, err := jwt.Issue("", issuer, jwt.Operator{ID: "u-1"}, time.Hour)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)

	_, err = jwt.Issue(secret, issuer, jwt.Operator{Role: "admin"}, time.Hour)
	assert.Error(t, err)
}

func TestVerify_Rechazos(t *testing.T) {
	valid, err := jwt.Issue(secret, issuer, jwt.Operator{ID: "u-1", Role: "admin"}, time.Hour)
	require.NoError(t, err)
	expired, err := jwt.Issue(secret, issuer, jwt.Operator{ID: "u-1", Role: "admin"}, -time.Minute)
	require.NoError(t, err)

	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{"sub": "u-1", "role": "admin"}).
		SignedString([]byte(secret))
	require.NoError(t, err)
	noSub, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
		"sub": "u-1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	cases := []struct {
		name, secret, issuer, token string
	}{
		{"expirado", secret, issuer, expired},
		{"secret incorrecto", "otro-secret", issuer, valid},
		{"emisor distinto", secret, "otro-emisor", valid},
		{"sin expiración", secret, "", noExp},
		{"sin sujeto", secret, "", noSub},
		{"algoritmo no permitido", secret, "", hs512},
		{"basura", secret, "", "no.es.un.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jwt.Verify(tc.secret, tc.issuer, tc.token)
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}

func TestVerify_SinEmisorNoLoExige(t *testing.T) {
	tok, err := jwt.Issue(secret, "cualquiera", jwt.Operator{ID: "u-1", Role: "pos"}, time.Hour)
	require.NoError(t, err)

	op, err := jwt.Verify(secret, "", tok)
	require.NoError(t, err)
	assert.Equal(t, "pos", op.Role)
}

func TestVerify_TokenSinRolEsValido(t *testing.T) {
	tok, err := jwt.Issue(secret, issuer, jwt.Operator{ID: "u-1"}, time.Hour)
	require.NoError(t, err)

	op, err := jwt.Verify(secret, issuer, tok)
	require.NoError(t, err)
	assert.Empty(t, op.Role)
}
