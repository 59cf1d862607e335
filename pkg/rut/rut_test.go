package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/temucosoft-retail/pkg/rut"
)

func TestCheck_RutsValidos(t *testing.T) {
	casos := []string{
		"11.111.111-1",
		"12345678-5",
		"20000003-K",
		"20000003-k",
		"14000000-0",
		"98765433",
	}
	for _, c := range casos {
		t.Run(c, func(t *testing.T) {
			assert.NoError(t, rut.Check(c))
			assert.True(t, rut.Validator{}.Validate(c))
		})
	}
}

func TestCheck_DigitoVerificadorIncorrecto(t *testing.T) {
	err := rut.Check("76543210-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "esperado 3")
}

func TestCheck_FormatoInvalido(t *testing.T) {
	for _, c := range []string{"", "1", "12K45678-5", "abc-1", "1234567890-1"} {
		assert.Error(t, rut.Check(c), c)
	}
}

func TestComputeDV(t *testing.T) {
	assert.Equal(t, byte('5'), rut.ComputeDV("12345678"))
	assert.Equal(t, byte('K'), rut.ComputeDV("20000003"))
	assert.Equal(t, byte('0'), rut.ComputeDV("14000000"))
}

func TestNormalize(t *testing.T) {
	got, err := rut.Normalize(" 76.543.210-5 ")
	require.NoError(t, err)
	assert.Equal(t, "76543210-5", got)

	got, err = rut.Normalize("20.000.003-k")
	require.NoError(t, err)
	assert.Equal(t, "20000003-K", got)
}
