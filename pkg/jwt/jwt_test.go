package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/reposicion-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "operador-1", "compras", "reposicion-api", 5)
	require.NoError(t, err)

	sub, role, err := pkgjwt.Parse("secreto", "reposicion-api", tok)
	require.NoError(t, err)
	assert.Equal(t, "operador-1", sub)
	assert.Equal(t, "compras", role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "operador-1", "compras", "reposicion-api", 5)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate("secreto", "operador-1", "compras", "reposicion-api", -5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro", "reposicion-api", tok)
	assert.Error(t, err, "firma incorrecta")

	_, _, err = pkgjwt.Parse("secreto", "otro-emisor", tok)
	assert.Error(t, err, "emisor distinto")

	_, _, err = pkgjwt.Parse("secreto", "reposicion-api", expired)
	assert.Error(t, err, "vencido")

	_, err = pkgjwt.Generate("", "x", "y", "z", 5)
	assert.Error(t, err)
}
