package domain

// Taxonomy categories. The order of Taxonomy is significant: it is the
// tie-break order for rule-based classification.
const (
	CategoryLabourInclusion    = "Inclusión laboral"
	CategoryVocationalTraining = "Formación profesional"
	CategoryRights             = "Derechos de infancia, juventud y mujeres"
	CategoryMigrantSupport     = "Acompañamiento a migrantes"
	CategoryCooperation        = "Cooperación internacional y desarrollo"
	CategoryTechnology         = "Uso de IA y aplicaciones informáticas en el tercer sector"

	categoryCount = 6
)

// CategoryUncategorized marks an event whose classification failed unexpectedly.
const CategoryUncategorized = "uncategorized"

// DefaultCategory is the generic placeholder a config-driven source assigns
// before classification. It is not a taxonomy value.
const DefaultCategory = "Tercer sector"

var taxonomy = [categoryCount]string{
	CategoryLabourInclusion,
	CategoryVocationalTraining,
	CategoryRights,
	CategoryMigrantSupport,
	CategoryCooperation,
	CategoryTechnology,
}

// Taxonomy returns the closed set of categories in declaration order.
// The returned slice is a copy.
func Taxonomy() []string {
	out := make([]string, len(taxonomy))
	copy(out, taxonomy[:])
	return out
}

// IsTaxonomyCategory reports whether c is one of the six taxonomy values.
// CategoryUncategorized and DefaultCategory are not taxonomy values.
func IsTaxonomyCategory(c string) bool {
	for _, t := range taxonomy {
		if t == c {
			return true
		}
	}
	return false
}

// CategoryByIndex maps a 1-based position in the taxonomy to its category.
func CategoryByIndex(n int) (string, bool) {
	if n < 1 || n > categoryCount {
		return "", false
	}
	return taxonomy[n-1], true
}
