// Package invoice contiene las reglas puras sobre el número de factura: normalización
// y validación. No toca el almacenamiento.
package invoice

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// digitFolder pasa cualquier dígito decimal Unicode (persa ۰-۹, arábigo-índico ٠-٩,
// ancho completo, etc.) a su equivalente ASCII. Los lectores de código de barras con
// teclado persa emiten esos dígitos.
var digitFolder = runes.Map(func(r rune) rune {
	if r < 0x80 || !unicode.IsDigit(r) {
		return r
	}
	if v, ok := digitValue(r); ok {
		return '0' + v
	}
	return r
})

// Normalize recorta espacios alrededor, aplica NFKC y pliega dígitos a ASCII.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	out, _, err := transform.String(transform.Chain(norm.NFKC, digitFolder), trimmed)
	if err != nil {
		return trimmed
	}
	return out
}

// Validate exige un número no vacío compuesto solo por dígitos ASCII.
func Validate(number string) bool {
	if number == "" {
		return false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	return true
}

// digitValue valor numérico de un dígito decimal Unicode. Los bloques de dígitos
// decimales Unicode son contiguos y empiezan en un code point terminado en 0.
func digitValue(r rune) (rune, bool) {
	for zero := r; zero >= r-9; zero-- {
		if !unicode.IsDigit(zero) {
			return 0, false
		}
		if isZeroDigit(zero) {
			return r - zero, true
		}
	}
	return 0, false
}

func isZeroDigit(r rune) bool {
	return unicode.IsDigit(r) && !unicode.IsDigit(r-1)
}
