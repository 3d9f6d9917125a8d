package voices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	v, ok := Lookup("ja-JP")
	assert.True(t, ok)
	assert.Equal(t, "Takumi", v.Name)
	assert.Equal(t, "Takumi (ja-JP)", v.Label())

	_, ok = Lookup("ru-RU")
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 8)
	assert.Equal(t, Default, all[0].Code)

	// Изменение копии не должно затрагивать исходный набор
	all[0].Name = "Changed"
	v, _ := Lookup(Default)
	assert.Equal(t, "Joanna", v.Name)
}

func TestIsSupported(t *testing.T) {
	for _, code := range []string{"en-US", "en-GB", "es-ES", "fr-FR", "de-DE", "it-IT", "ja-JP", "pt-BR"} {
		assert.True(t, IsSupported(code), code)
	}
	assert.False(t, IsSupported(""))
	assert.False(t, IsSupported("en-us"))
}
