package ports

// TaxIDValidator valida el dígito verificador de un RUT.
type TaxIDValidator interface {
	Validate(taxID string) bool
}
