package normalize

// Column aliases seen across federation result sheets. The first alias with a
// non-empty value wins.
var (
	LicenseAliases          = []string{"Licencia", "LICENCIA", "licencia", "Lic", "LIC", "lic"}
	SecondaryLicenseAliases = []string{"Lac", "LAC", "lac", "Licencia_1", "LICENCIA_1", "licencia_1"}
	RiderAliases            = []string{"Atleta", "Jinete", "NOMBRE JINETE", "nombre"}
	HorseAliases            = []string{"Caballo", "CABALLO", "caballo", "Cab", "CAB", "cab"}
	ClubAliases             = []string{"Club", "CLUB", "club"}
	RunningOrderAliases     = []string{"O.S.", "OS", "O S", "o.s.", "os"}
	RankAliases             = []string{"Cl", "CL", "cl", "Posicion"}
	ScoreAliases            = []string{"Puntos", "PUNTOS", "puntos", "Faltas"}
	TimeAliases             = []string{"Tiempo", "TIEMPO", "tiempo", "TIempo"}
	BibAliases              = []string{"Dorsal", "DORSAL", "dorsal", "No. caballo"}
	TotalAliases            = []string{"Total", "TOTAL", "total"}
)
