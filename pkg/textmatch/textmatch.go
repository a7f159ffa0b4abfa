// Package textmatch compara textos ignorando mayúsculas y tildes
// ("Cámara" coincide con "camara"). Lo usan la búsqueda de productos y el historial.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normaliza s: NFD, elimina marcas diacríticas, NFC y case folding Unicode.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// Contains indica si needle aparece en alguno de los haystacks (sin distinguir mayúsculas ni tildes).
// Un needle vacío coincide siempre.
func Contains(needle string, haystacks ...string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	for _, h := range haystacks {
		if strings.Contains(Fold(h), n) {
			return true
		}
	}
	return false
}
