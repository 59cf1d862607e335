package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category categoría de producto (enumeración cerrada).
type Category string

const (
	CategoryAlimentos    Category = "ALIMENTOS"
	CategoryBebidas      Category = "BEBIDAS"
	CategorySnacks       Category = "SNACKS"
	CategoryLimpieza     Category = "LIMPIEZA"
	CategoryHigiene      Category = "HIGIENE"
	CategoryFarmacia     Category = "FARMACIA"
	CategoryTecnologia   Category = "TECNOLOGIA"
	CategoryHogar        Category = "HOGAR"
	CategoryJuguetes     Category = "JUGUETES"
	CategoryRopa         Category = "ROPA"
	CategoryDeportes     Category = "DEPORTES"
	CategoryJardin       Category = "JARDIN"
	CategoryMascotas     Category = "MASCOTAS"
	CategoryLibros       Category = "LIBROS"
	CategoryVehiculos    Category = "VEHICULOS"
	CategoryHerramientas Category = "HERRAMIENTAS"
	CategoryServicios    Category = "SERVICIOS"
	CategoryCongelados   Category = "CONGELADOS"
	CategoryFrescos      Category = "FRESCOS"
	CategoryOtros        Category = "OTROS"
)

// Categories lista de categorías válidas en el orden en que se muestran.
var Categories = []Category{
	CategoryAlimentos, CategoryBebidas, CategorySnacks, CategoryLimpieza, CategoryHigiene,
	CategoryFarmacia, CategoryTecnologia, CategoryHogar, CategoryJuguetes, CategoryRopa,
	CategoryDeportes, CategoryJardin, CategoryMascotas, CategoryLibros, CategoryVehiculos,
	CategoryHerramientas, CategoryServicios, CategoryCongelados, CategoryFrescos, CategoryOtros,
}

// IsValid indica si la categoría pertenece a la enumeración.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ParseCategory acepta la categoría sin importar mayúsculas ni tildes ("Jardín" -> JARDIN).
// Vacío se interpreta como OTROS.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOtros, true
	}
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		return "", false
	}
	c := Category(cases.Upper(language.Spanish).String(stripped))
	return c, c.IsValid()
}
