package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikarpharma/suivi-stock/pkg/jwt"
)

const testSecret = "secret-de-test-suffisamment-long"

func TestGenerateParse_AllerRetour(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-42", "OPERATEUR", "suivi-stock", 30)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, "OPERATEUR", role)
}

func TestParse_MauvaisSecret(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-42", "ADMIN", "suivi-stock", 30)
	require.NoError(t, err)

	_, _, err = jwt.Parse("un-autre-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpire(t *testing.T) {
	// Expiration négative: le token est déjà expiré à l'émission.
	token, err := jwt.Generate(testSecret, "user-42", "ADMIN", "suivi-stock", -5)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_TokenMalForme(t *testing.T) {
	_, _, err := jwt.Parse(testSecret, "pas.un.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVide(t *testing.T) {
	_, err := jwt.Generate("", "user-42", "ADMIN", "suivi-stock", 30)
	assert.Error(t, err)

	_, _, err = jwt.Parse("", "peu-importe")
	assert.Error(t, err)
}
