// Package catalog holds the clinic's static table of common laboratory exams
// with their LOINC codes, display names, units and reference ranges. The
// table is read-only after process start and safe for concurrent use.
package catalog

import "strings"

// Entry describes one exam in the catalog.
type Entry struct {
	Key            string `json:"key"`
	Code           string `json:"codigo"`
	Name           string `json:"nombre"`
	Category       string `json:"categoria"`
	Unit           string `json:"unidad"`
	ReferenceRange string `json:"valor_referencia"`
}

// entries is declared in catalog order; ByCategory and Search preserve it.
var entries = []Entry{
	// Hematología
	{Key: "HEMOGRAMA_COMPLETO", Code: "58410-2", Name: "Hemograma Completo (CBC)", Category: "Hematología", Unit: "", ReferenceRange: "Ver valores individuales"},
	{Key: "HEMOGLOBINA", Code: "718-7", Name: "Hemoglobina", Category: "Hematología", Unit: "g/dL", ReferenceRange: "M: 13.5-17.5, F: 12.0-16.0"},
	{Key: "HEMATOCRITO", Code: "4544-3", Name: "Hematocrito", Category: "Hematología", Unit: "%", ReferenceRange: "M: 38.3-48.6, F: 35.5-44.9"},
	{Key: "LEUCOCITOS", Code: "6690-2", Name: "Leucocitos (Glóbulos Blancos)", Category: "Hematología", Unit: "10^3/µL", ReferenceRange: "4.5-11.0"},
	{Key: "PLAQUETAS", Code: "777-3", Name: "Plaquetas", Category: "Hematología", Unit: "10^3/µL", ReferenceRange: "150-400"},
	{Key: "VSG", Code: "30341-2", Name: "Velocidad de Sedimentación Globular (VSG)", Category: "Hematología", Unit: "mm/h", ReferenceRange: "M: 0-15, F: 0-20"},

	// Química Sanguínea
	{Key: "GLUCOSA", Code: "2345-7", Name: "Glucosa en Ayunas", Category: "Química Sanguínea", Unit: "mg/dL", ReferenceRange: "70-100"},
	{Key: "GLUCOSA_POSTPRANDIAL", Code: "1518-9", Name: "Glucosa Postprandial (2h)", Category: "Química Sanguínea", Unit: "mg/dL", ReferenceRange: "<140"},
	{Key: "HBA1C", Code: "4548-4", Name: "Hemoglobina Glicosilada (HbA1c)", Category: "Química Sanguínea", Unit: "%", ReferenceRange: "4.0-5.6"},
	{Key: "CREATININA", Code: "2160-0", Name: "Creatinina Sérica", Category: "Química Sanguínea", Unit: "mg/dL", ReferenceRange: "M: 0.7-1.3, F: 0.6-1.1"},
	{Key: "UREA", Code: "3094-0", Name: "Urea (BUN)", Category: "Química Sanguínea", Unit: "mg/dL", ReferenceRange: "7-20"},
	{Key: "ACIDO_URICO", Code: "3084-1", Name: "Ácido Úrico", Category: "Química Sanguínea", Unit: "mg/dL", ReferenceRange: "M: 3.4-7.0, F: 2.4-6.0"},

	// Perfil Lipídico
	{Key: "COLESTEROL_TOTAL", Code: "2093-3", Name: "Colesterol Total", Category: "Perfil Lipídico", Unit: "mg/dL", ReferenceRange: "<200"},
	{Key: "HDL", Code: "2085-9", Name: "Colesterol HDL", Category: "Perfil Lipídico", Unit: "mg/dL", ReferenceRange: "M: >40, F: >50"},
	{Key: "LDL", Code: "18262-6", Name: "Colesterol LDL (Calculado)", Category: "Perfil Lipídico", Unit: "mg/dL", ReferenceRange: "<100"},
	{Key: "TRIGLICERIDOS", Code: "2571-8", Name: "Triglicéridos", Category: "Perfil Lipídico", Unit: "mg/dL", ReferenceRange: "<150"},

	// Función Hepática
	{Key: "TGO_AST", Code: "1920-8", Name: "TGO (AST)", Category: "Función Hepática", Unit: "U/L", ReferenceRange: "M: 10-40, F: 9-32"},
	{Key: "TGP_ALT", Code: "1742-6", Name: "TGP (ALT)", Category: "Función Hepática", Unit: "U/L", ReferenceRange: "M: 10-55, F: 7-45"},
	{Key: "BILIRRUBINA_TOTAL", Code: "1975-2", Name: "Bilirrubina Total", Category: "Función Hepática", Unit: "mg/dL", ReferenceRange: "0.3-1.2"},
	{Key: "BILIRRUBINA_DIRECTA", Code: "1968-7", Name: "Bilirrubina Directa", Category: "Función Hepática", Unit: "mg/dL", ReferenceRange: "0.0-0.3"},
	{Key: "FOSFATASA_ALCALINA", Code: "6768-6", Name: "Fosfatasa Alcalina", Category: "Función Hepática", Unit: "U/L", ReferenceRange: "30-120"},

	// Electrolitos
	{Key: "SODIO", Code: "2951-2", Name: "Sodio Sérico", Category: "Electrolitos", Unit: "mmol/L", ReferenceRange: "136-145"},
	{Key: "POTASIO", Code: "2823-3", Name: "Potasio Sérico", Category: "Electrolitos", Unit: "mmol/L", ReferenceRange: "3.5-5.0"},
	{Key: "CLORO", Code: "2075-0", Name: "Cloro Sérico", Category: "Electrolitos", Unit: "mmol/L", ReferenceRange: "98-107"},
	{Key: "CALCIO", Code: "17861-6", Name: "Calcio Sérico", Category: "Electrolitos", Unit: "mg/dL", ReferenceRange: "8.5-10.5"},

	// Función Tiroidea
	{Key: "TSH", Code: "3016-3", Name: "TSH (Hormona Estimulante de Tiroides)", Category: "Función Tiroidea", Unit: "µIU/mL", ReferenceRange: "0.4-4.0"},
	{Key: "T4_LIBRE", Code: "3024-7", Name: "T4 Libre (Tiroxina)", Category: "Función Tiroidea", Unit: "ng/dL", ReferenceRange: "0.8-1.8"},
	{Key: "T3_TOTAL", Code: "3051-0", Name: "T3 Total (Triyodotironina)", Category: "Función Tiroidea", Unit: "ng/dL", ReferenceRange: "80-200"},

	// Otros
	{Key: "PCR", Code: "1988-5", Name: "Proteína C Reactiva (PCR)", Category: "Marcadores Inflamatorios", Unit: "mg/L", ReferenceRange: "<10"},
	{Key: "FERRITINA", Code: "2276-4", Name: "Ferritina", Category: "Hierro", Unit: "ng/mL", ReferenceRange: "M: 24-336, F: 11-307"},
	{Key: "VITAMINA_D", Code: "1989-3", Name: "Vitamina D (25-OH)", Category: "Vitaminas", Unit: "ng/mL", ReferenceRange: "30-100"},
	{Key: "VITAMINA_B12", Code: "2132-9", Name: "Vitamina B12", Category: "Vitaminas", Unit: "pg/mL", ReferenceRange: "200-900"},

	// Uroanálisis
	{Key: "UROANALISIS", Code: "24357-6", Name: "Uroanálisis Completo", Category: "Uroanálisis", Unit: "", ReferenceRange: "Ver valores individuales"},
	{Key: "UROCULTIVO", Code: "630-4", Name: "Urocultivo", Category: "Microbiología", Unit: "", ReferenceRange: "Negativo"},
}

// byCode indexes entries for outbound code lookups.
var byCode = func() map[string]Entry {
	idx := make(map[string]Entry, len(entries))
	for _, e := range entries {
		idx[e.Code] = e
	}
	return idx
}()

// ByCategory groups all entries by category, declaration order preserved
// within each category.
func ByCategory() map[string][]Entry {
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	return grouped
}

// Search returns entries whose name or LOINC code contains term,
// case-insensitively, in catalog-declaration order. An empty or unmatched
// term yields an empty result, never an error.
func Search(term string) []Entry {
	if term == "" {
		return nil
	}
	term = strings.ToLower(term)
	var results []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), term) || strings.Contains(strings.ToLower(e.Code), term) {
			results = append(results, e)
		}
	}
	return results
}

// Lookup finds an entry by its LOINC code. A miss is a normal outcome: the
// caller treats unknown codes as custom/local exams.
func Lookup(code string) (Entry, bool) {
	e, ok := byCode[code]
	return e, ok
}

// All returns the full catalog in declaration order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
