package zone

import "strings"

type cityRule struct {
	zone     Code
	keywords []string
}

type stateRule struct {
	names    []string
	cities   []cityRule
	fallback Code
}

// Rules are evaluated top to bottom; the first state whose name appears in the
// address wins, then its city rules are tried in order.
var stateRules = []stateRule{
	{
		names: []string{"SELANGOR"},
		cities: []cityRule{
			{"SGR02", []string{"SABAK", "KUALA SELANGOR"}},
			{"SGR03", []string{"KLANG", "KUALA LANGAT"}},
		},
		fallback: "SGR01",
	},
	{
		names: []string{"JOHOR"},
		cities: []cityRule{
			{"JHR01", []string{"PULAU AUR", "PEMANGGIL"}},
			{"JHR03", []string{"KLUANG", "PONTIAN"}},
			{"JHR04", []string{"BATU PAHAT", "MUAR", "SEGAMAT", "GEMAS", "TANGKAK"}},
		},
		fallback: "JHR02",
	},
	{names: []string{"MELAKA", "MALACCA"}, fallback: "MLK01"},
	{names: []string{"PULAU PINANG", "PENANG"}, fallback: "PNG01"},
	{names: []string{"PERLIS"}, fallback: "PLS01"},
	{
		names: []string{"KEDAH"},
		cities: []cityRule{
			{"KDH06", []string{"LANGKAWI"}},
			{"KDH07", []string{"GUNUNG JERAI"}},
			{"KDH02", []string{"KUALA MUDA", "SUNGAI PETANI", "YAN", "PENDANG"}},
			{"KDH03", []string{"PADANG TERAP", "SIK"}},
			{"KDH04", []string{"BALING"}},
			{"KDH05", []string{"BANDAR BAHARU", "KULIM"}},
		},
		fallback: "KDH01",
	},
	{
		names: []string{"KELANTAN"},
		cities: []cityRule{
			{"KTN03", []string{"GUA MUSANG", "GALAS", "BERTAM"}},
		},
		fallback: "KTN01",
	},
	{
		names: []string{"NEGERI SEMBILAN", "N. SEMBILAN", "N SEMBILAN"},
		cities: []cityRule{
			{"NGS01", []string{"TAMPIN", "JEMPOL"}},
		},
		fallback: "NGS02",
	},
	{
		names: []string{"PAHANG"},
		cities: []cityRule{
			{"PHG01", []string{"TIOMAN"}},
			{"PHG05", []string{"GENTING SEMPAH", "JANDA BAIK", "BUKIT TINGGI"}},
			{"PHG06", []string{"CAMERON", "GENTING HIGHLANDS", "BUKIT FRASER", "FRASER"}},
			{"PHG03", []string{"JERANTUT", "TEMERLOH", "MARAN", "BERA", "CHENOR", "JENGKA"}},
			{"PHG04", []string{"BENTONG", "LIPIS", "RAUB"}},
		},
		fallback: "PHG02",
	},
	{
		names: []string{"PERAK"},
		cities: []cityRule{
			{"PRK01", []string{"TAPAH", "SLIM RIVER", "TANJUNG MALIM"}},
			{"PRK03", []string{"LENGGONG", "PENGKALAN HULU", "GRIK", "GERIK"}},
			{"PRK04", []string{"TEMENGOR", "BELUM"}},
			{"PRK07", []string{"BUKIT LARUT"}},
			{"PRK06", []string{"SELAMA", "TAIPING", "BAGAN SERAI", "PARIT BUNTAR"}},
			{"PRK05", []string{"GAJAH", "TELUK INTAN", "BAGAN DATUK", "SERI ISKANDAR", "BERUAS", "PARIT", "LUMUT", "SITIAWAN", "PANGKOR"}},
		},
		fallback: "PRK02",
	},
	{
		names: []string{"SABAH"},
		cities: []cityRule{
			{"SBH06", []string{"KINABALU PARK", "GUNUNG KINABALU"}},
			{"SBH01", []string{"SANDAKAN", "SUKAU"}},
			{"SBH02", []string{"BELURAN", "TELUPID", "TELUPIT", "PINANGAH"}},
			{"SBH03", []string{"TAWAU", "KALABAKAN"}},
			{"SBH04", []string{"KUNAK", "LAHAD DATU", "SEMPORNA"}},
			{"SBH05", []string{"KUDAT", "KOTA MARUDU", "PITAS", "BANGGI"}},
			{"SBH08", []string{"KENINGAU", "TAMBUNAN", "NABAWAN", "PENSIANGAN"}},
			{"SBH09", []string{"SIPITANG", "MEMBAKUT", "BEAUFORT", "KUALA PENYU", "TENOM", "WESTON"}},
		},
		fallback: "SBH07",
	},
	{
		names: []string{"SARAWAK"},
		cities: []cityRule{
			{"SWK01", []string{"LIMBANG", "LAWAS", "TRUSAN"}},
			{"SWK02", []string{"MIRI", "NIAH", "BEKENU", "MARUDI"}},
			{"SWK03", []string{"BINTULU", "BELAGA", "TATAU", "SEBAUH"}},
			{"SWK04", []string{"SIBU", "MUKAH", "DALAT", "KANOWIT", "KAPIT"}},
			{"SWK05", []string{"SARIKEI", "MERADONG", "JULAU", "BINTANGOR"}},
			{"SWK06", []string{"SRI AMAN", "LUBOK ANTU", "BETONG", "SARATOK", "ROBAN"}},
			{"SWK07", []string{"SERIAN", "SIMUNJAN", "SAMARAHAN", "SEBUYAU"}},
		},
		fallback: "SWK08",
	},
	{
		names: []string{"TERENGGANU", "TRENGGANU"},
		cities: []cityRule{
			{"TRG02", []string{"BESUT", "SETIU"}},
			{"TRG03", []string{"HULU TERENGGANU", "KUALA BERANG"}},
			{"TRG04", []string{"DUNGUN", "KEMAMAN", "CHUKAI"}},
		},
		fallback: "TRG01",
	},
}

// Resolve maps a free-text state and city onto a zone. It never fails:
// unrecognised input resolves to Default.
func Resolve(state, city string) Code {
	s := strings.ToUpper(strings.TrimSpace(state))
	c := strings.ToUpper(strings.TrimSpace(city))

	// Federal territories can appear in either field.
	switch {
	case containsAny(s, "KUALA LUMPUR") || containsAny(c, "KUALA LUMPUR"):
		return "WLY01"
	case containsAny(s, "PUTRAJAYA") || containsAny(c, "PUTRAJAYA"):
		return "WLY01"
	case containsAny(s, "LABUAN") || containsAny(c, "LABUAN"):
		return "WLY02"
	}

	for _, rule := range stateRules {
		if !containsAny(s, rule.names...) {
			continue
		}
		for _, cr := range rule.cities {
			if c != "" && containsAny(c, cr.keywords...) {
				return cr.zone
			}
		}
		return rule.fallback
	}

	return Default
}

func containsAny(s string, subs ...string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
