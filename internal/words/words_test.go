package words

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"sol", "SOL"},
		{"  órbita ", "ORBITA"},
		{"pingüino", "PINGUINO"},
		{"niño", "NIÑO"},
		{"árbol", "ARBOL"},
		{"ñandú", "ÑANDU"},
		{"mañana", "MAÑANA"},
		{"n\u0303o", "ÑO"}, // decomposed ñ
		{"Canción", "CANCION"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("SOL"))
	assert.True(t, Valid("ÑANDU"))
	assert.False(t, Valid("SI"), "too short")
	assert.False(t, Valid("ELECTROCARDIOGRAMA"), "too long")
	assert.False(t, Valid("ARCO-IRIS"))
	assert.False(t, Valid("sol"), "must already be normalized")
}

func TestCleanDedupes(t *testing.T) {
	got := Clean([]string{"sol", "Sol", "sól", "a", "luna", "x-y-z"})
	assert.Equal(t, []string{"SOL", "LUNA"}, got)
}

func TestTake(t *testing.T) {
	got, err := Take([]string{"uno", "dos", "tres", "cuatro", "cinco", "seis", "siete"}, 6)
	require.NoError(t, err)
	assert.Equal(t, []string{"UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS"}, got)

	_, err = Take([]string{"uno", "dos", "a", "b"}, 12)
	assert.True(t, errors.Is(err, ErrNotEnough))
}

func TestPickFromEmbeddedList(t *testing.T) {
	t.Setenv("WORDS_FILE", "")
	require.NoError(t, Init())
	assert.GreaterOrEqual(t, Count(), PerRound)

	a, err := Pick(rand.New(rand.NewPCG(1, 2)), PerRound)
	require.NoError(t, err)
	assert.Len(t, a, PerRound)
	for _, w := range a {
		assert.True(t, Valid(w), w)
	}

	b, err := Pick(rand.New(rand.NewPCG(1, 2)), PerRound)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed picks the same words")
}
