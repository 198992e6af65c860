package poleemploi

// FilterRow is one flattened filter aggregate: the filter name, one of its
// possible values, and the result count for that value.
type FilterRow struct {
	Filtre         string `json:"filtre"`
	ValeurPossible string `json:"valeur_possible"`
	NbResultats    int    `json:"nb_resultats"`
}

// FlattenFilters reshapes the nested filtresPossibles aggregates into flat
// rows, one per (filter, value) pair, which is the shape tabular output and
// analysis want. Row order follows the remote ordering of filters and
// values.
func FlattenFilters(filtres []Filtre) []FilterRow {
	var rows []FilterRow
	for _, f := range filtres {
		for _, a := range f.Agregation {
			rows = append(rows, FilterRow{
				Filtre:         f.Filtre,
				ValeurPossible: a.ValeurPossible,
				NbResultats:    a.NbResultats,
			})
		}
	}
	return rows
}
