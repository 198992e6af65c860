package poleemploi

// SearchParams holds the string-keyed search criteria passed through to the
// remote service. Keys use the API's camelCase names (motsCles, departement,
// minCreationDate, range, ...). Unknown keys are forwarded untouched so new
// remote parameters work without a client update.
type SearchParams map[string]string

// Offre is a single job offer record from the search response.
type Offre struct {
	ID                  string       `json:"id"`
	Intitule            string       `json:"intitule"`
	Description         string       `json:"description,omitempty"`
	DateCreation        string       `json:"dateCreation,omitempty"`
	DateActualisation   string       `json:"dateActualisation,omitempty"`
	LieuTravail         *LieuTravail `json:"lieuTravail,omitempty"`
	RomeCode            string       `json:"romeCode,omitempty"`
	RomeLibelle         string       `json:"romeLibelle,omitempty"`
	AppellationLibelle  string       `json:"appellationlibelle,omitempty"`
	Entreprise          *Entreprise  `json:"entreprise,omitempty"`
	TypeContrat         string       `json:"typeContrat,omitempty"`
	TypeContratLibelle  string       `json:"typeContratLibelle,omitempty"`
	NatureContrat       string       `json:"natureContrat,omitempty"`
	ExperienceExige     string       `json:"experienceExige,omitempty"`
	ExperienceLibelle   string       `json:"experienceLibelle,omitempty"`
	Salaire             *Salaire     `json:"salaire,omitempty"`
	DureeTravailLibelle string       `json:"dureeTravailLibelle,omitempty"`
	Alternance          bool         `json:"alternance,omitempty"`
	NombrePostes        int          `json:"nombrePostes,omitempty"`
	SecteurActivite     string       `json:"secteurActivite,omitempty"`
	OrigineOffre        *Origine     `json:"origineOffre,omitempty"`
}

// LieuTravail holds the work location of an offer.
type LieuTravail struct {
	Libelle    string  `json:"libelle,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	CodePostal string  `json:"codePostal,omitempty"`
	Commune    string  `json:"commune,omitempty"`
}

// Entreprise holds the hiring company of an offer.
type Entreprise struct {
	Nom         string `json:"nom,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Salaire holds the salary description of an offer.
type Salaire struct {
	Libelle     string `json:"libelle,omitempty"`
	Commentaire string `json:"commentaire,omitempty"`
	Complement1 string `json:"complement1,omitempty"`
}

// Origine identifies where an offer was originally published.
type Origine struct {
	Origine    string `json:"origine,omitempty"`
	URLOrigine string `json:"urlOrigine,omitempty"`
}

// Filtre is one aggregate from the filtresPossibles section of a search
// response: a filter name with the per-value result counts.
type Filtre struct {
	Filtre     string       `json:"filtre"`
	Agregation []Agregation `json:"agregation"`
}

// Agregation is a single possible value of a filter and its result count.
type Agregation struct {
	ValeurPossible string `json:"valeurPossible"`
	NbResultats    int    `json:"nbResultats"`
}

// ContentRange is the pagination slice the remote service reported in the
// Content-Range response header.
type ContentRange struct {
	FirstIndex int `json:"first_index"`
	LastIndex  int `json:"last_index"`
	MaxResults int `json:"max_results"`
}

// SearchResult is the outcome of one search call: the offers, the available
// filter aggregates, and the pagination slice this response covers. It is
// built fresh per call; nothing is cached between calls.
type SearchResult struct {
	FiltresPossibles []Filtre     `json:"filtresPossibles"`
	Resultats        []Offre      `json:"resultats"`
	ContentRange     ContentRange `json:"Content-Range"`
}

// RefEntry is a single referentiel record: an abbreviation code and its full
// label. Entries keep the order the remote service returned them in.
type RefEntry struct {
	Code    string `json:"code"`
	Libelle string `json:"libelle"`
}
