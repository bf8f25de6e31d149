package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parts-catalog/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateYParse_ConservaUsuarioYRol(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "bodeguero", "parts-catalog", 60)
	require.NoError(t, err)

	userID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "bodeguero", role)
}

func TestParse_Rechaza(t *testing.T) {
	expired, err := jwt.Generate(secret, "u-1", "admin", "parts-catalog", -1)
	require.NoError(t, err)
	valid, err := jwt.Generate(secret, "u-1", "admin", "parts-catalog", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, expired)
	assert.Error(t, err, "token expirado")

	_, _, err = jwt.Parse("otro-secreto", valid)
	assert.Error(t, err, "firma con otro secreto")

	_, _, err = jwt.Parse(secret, "no.es.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretoVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "admin", "parts-catalog", 60)
	assert.Error(t, err)
}
