package domain

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackingFormat = regexp.MustCompile(`^[A-Z0-9]+-\d{7}$`)

func TestGenerateTrackingNumber_Prefijo(t *testing.T) {
	tn := GenerateTrackingNumber("Books for Alice")
	assert.True(t, strings.HasPrefix(tn, "BOOKS-"), "prefijo debe ser la primera palabra en mayúsculas: %s", tn)

	tn = GenerateTrackingNumber("Boxes for Bob")
	assert.True(t, strings.HasPrefix(tn, "BOXES-"), "prefijo debe ser BOXES: %s", tn)
}

func TestGenerateTrackingNumber_Formato(t *testing.T) {
	for i := 0; i < 200; i++ {
		tn := GenerateTrackingNumber("Laptop gamer")
		assert.Regexp(t, trackingFormat, tn)
	}
}

func TestGenerateTrackingNumber_RangoDelSufijo(t *testing.T) {
	for i := 0; i < 200; i++ {
		tn := GenerateTrackingNumber("Zapatos deportivos")
		parts := strings.SplitN(tn, "-", 2)
		require.Len(t, parts, 2)
		n, err := strconv.Atoi(parts[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000000)
		assert.LessOrEqual(t, n, 9999999)
	}
}

func TestGenerateTrackingNumber_DescripcionVacia(t *testing.T) {
	// Sin palabras no hay prefijo derivable: se usa PKG como respaldo.
	tn := GenerateTrackingNumber("   ")
	assert.True(t, strings.HasPrefix(tn, "PKG-"), "descripción vacía usa prefijo PKG: %s", tn)
}
