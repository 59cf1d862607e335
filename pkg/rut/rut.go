package rut

import (
	"fmt"
	"strings"
	"unicode"
)

// Validator implementa la validación de RUT chileno (módulo 11) para los casos de uso.
type Validator struct{}

// Validate indica si el RUT tiene un dígito verificador correcto.
func (Validator) Validate(taxID string) bool {
	return Check(taxID) == nil
}

// Check valida un RUT con o sin puntos y guion ("76.543.210-3", "76543210-3", "765432103").
// El dígito verificador puede ser K o k.
func Check(taxID string) error {
	body, dv, err := split(taxID)
	if err != nil {
		return err
	}
	expected := ComputeDV(body)
	if dv != expected {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %c, recibido %c", expected, dv)
	}
	return nil
}

// ComputeDV calcula el dígito verificador de la parte numérica del RUT.
// Pesos 2..7 de derecha a izquierda; 11 -> '0', 10 -> 'K'.
func ComputeDV(body string) byte {
	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + r)
	}
}

// Normalize devuelve el RUT en forma canónica "12345678-K" (sin puntos, DV en mayúscula).
func Normalize(taxID string) (string, error) {
	body, dv, err := split(taxID)
	if err != nil {
		return "", err
	}
	return body + "-" + string(dv), nil
}

func split(taxID string) (string, byte, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(taxID) {
		switch {
		case r >= '0' && r <= '9', r == 'k', r == 'K':
			b.WriteRune(unicode.ToUpper(r))
		case r == '.', r == '-', r == ' ':
		default:
			return "", 0, fmt.Errorf("rut: carácter inválido %q", r)
		}
	}
	clean := b.String()
	if len(clean) < 2 {
		return "", 0, fmt.Errorf("rut: demasiado corto")
	}
	body, dv := clean[:len(clean)-1], clean[len(clean)-1]
	if strings.ContainsRune(body, 'K') {
		return "", 0, fmt.Errorf("rut: K solo se admite como dígito verificador")
	}
	if len(body) > 9 {
		return "", 0, fmt.Errorf("rut: demasiados dígitos (%d)", len(body))
	}
	return body, dv, nil
}
