// Package presets maps named hashtag groups to their term lists.
// A resolved preset is treated identically to user-supplied terms.
package presets

import (
	"fmt"
	"sort"
)

var presets = map[string][]string{
	"fabry": {
		"#Fabry",
		"#FabryDisease",
		"#FabryAwareness",
		"#FabryHeroes",
		"#LivingWithFabry",
		"#FabryTreatment",
		"#FabryCommunity",
		"#EnfermedadDeFabry",
		"#FabryEspañol",
		"#FabryLatAm",
		"#DiagnósticoPrecozFabry",
		"#TratamientoFabry",
		"#VisibilidadFabry",
		"#VidaConFabry",
		"#HéroesFabry",
		"#MesDeConcienciaciónFabry",
		"#GenéticaFabry",
	},
	"glp1": {
		"#GLP1",
		"#GLP-1",
		"#Semaglutide",
		"#Ozempic",
		"#Wegovy",
		"#Mounjaro",
		"#Obesity",
		"#WeightLossJourney",
		"#ObesityTreatment",
		"#WeightManagement",
		"#GLP1Drugs",
		"#GLP1Medications",
		"#Obesidad",
		"#SaludMetabólica",
		"#EfectosSecundariosGLP1",
		"#MedicamentosObesidad",
	},
}

// Resolve returns the term list for a preset name.
func Resolve(name string) ([]string, error) {
	terms, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, Names())
	}
	// the table is shared; hand out a copy
	out := make([]string, len(terms))
	copy(out, terms)
	return out, nil
}

// Names lists the available preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
