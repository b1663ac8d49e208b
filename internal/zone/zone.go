// Package zone holds the fixed set of JAKIM prayer-time zones used across Malaysia
// and maps free-text addresses onto them.
package zone

import (
	"fmt"
	"sort"
	"strings"
)

// Code is an official JAKIM zone code such as "WLY01".
type Code string

// Default is used whenever an address cannot be matched to a zone (Kuala Lumpur).
const Default Code = "WLY01"

// Info describes a single zone.
type Info struct {
	Code        Code   `json:"code"`
	State       string `json:"state"`
	Description string `json:"description"`
}

var zones = map[Code]Info{
	"JHR01": {State: "Johor", Description: "Pulau Aur dan Pulau Pemanggil"},
	"JHR02": {State: "Johor", Description: "Johor Bahru, Kota Tinggi, Mersing, Kulai"},
	"JHR03": {State: "Johor", Description: "Kluang, Pontian"},
	"JHR04": {State: "Johor", Description: "Batu Pahat, Muar, Segamat, Gemas Johor, Tangkak"},

	"KDH01": {State: "Kedah", Description: "Kota Setar, Kubang Pasu, Pokok Sena"},
	"KDH02": {State: "Kedah", Description: "Kuala Muda, Yan, Pendang"},
	"KDH03": {State: "Kedah", Description: "Padang Terap, Sik"},
	"KDH04": {State: "Kedah", Description: "Baling"},
	"KDH05": {State: "Kedah", Description: "Bandar Baharu, Kulim"},
	"KDH06": {State: "Kedah", Description: "Langkawi"},
	"KDH07": {State: "Kedah", Description: "Gunung Jerai"},

	"KTN01": {State: "Kelantan", Description: "Bachok, Kota Bharu, Machang, Pasir Mas, Pasir Puteh, Tanah Merah, Tumpat, Kuala Krai, Mukim Chiku"},
	"KTN03": {State: "Kelantan", Description: "Gua Musang, Mukim Galas, Bertam"},

	"MLK01": {State: "Melaka", Description: "Seluruh Negeri Melaka"},

	"NGS01": {State: "Negeri Sembilan", Description: "Tampin, Jempol"},
	"NGS02": {State: "Negeri Sembilan", Description: "Jelebu, Kuala Pilah, Port Dickson, Rembau, Seremban"},

	"PHG01": {State: "Pahang", Description: "Pulau Tioman"},
	"PHG02": {State: "Pahang", Description: "Kuantan, Pekan, Rompin, Muadzam Shah"},
	"PHG03": {State: "Pahang", Description: "Jerantut, Temerloh, Maran, Bera, Chenor, Jengka"},
	"PHG04": {State: "Pahang", Description: "Bentong, Lipis, Raub"},
	"PHG05": {State: "Pahang", Description: "Genting Sempah, Janda Baik, Bukit Tinggi"},
	"PHG06": {State: "Pahang", Description: "Cameron Highlands, Genting Highlands, Bukit Fraser"},

	"PNG01": {State: "Pulau Pinang", Description: "Seluruh Negeri Pulau Pinang"},

	"PRK01": {State: "Perak", Description: "Tapah, Slim River, Tanjung Malim"},
	"PRK02": {State: "Perak", Description: "Kuala Kangsar, Sg. Siput, Ipoh, Batu Gajah, Kampar"},
	"PRK03": {State: "Perak", Description: "Lenggong, Pengkalan Hulu, Grik"},
	"PRK04": {State: "Perak", Description: "Temengor, Belum"},
	"PRK05": {State: "Perak", Description: "Kg Gajah, Teluk Intan, Bagan Datuk, Seri Iskandar, Beruas, Parit, Lumut, Sitiawan, Pulau Pangkor"},
	"PRK06": {State: "Perak", Description: "Selama, Taiping, Bagan Serai, Parit Buntar"},
	"PRK07": {State: "Perak", Description: "Bukit Larut"},

	"PLS01": {State: "Perlis", Description: "Kangar, Padang Besar, Arau"},

	"SBH01": {State: "Sabah", Description: "Bahagian Sandakan (Timur), Bukit Garam, Semawang, Temanggong, Tambisan, Bandar Sandakan, Sukau"},
	"SBH02": {State: "Sabah", Description: "Bahagian Sandakan (Barat), Pinangah, Terusan, Beluran, Kuamut, Telupit"},
	"SBH03": {State: "Sabah", Description: "Bahagian Tawau (Timur), Bandar Tawau, Balong, Merotai, Kalabakan"},
	"SBH04": {State: "Sabah", Description: "Bahagian Tawau (Barat), Kunak, Lahad Datu, Silabukan, Tungku, Sahabat, Semporna"},
	"SBH05": {State: "Sabah", Description: "Kudat, Kota Marudu, Pitas, Pulau Banggi, Bahagian Kudat"},
	"SBH06": {State: "Sabah", Description: "Gunung Kinabalu"},
	"SBH07": {State: "Sabah", Description: "Kota Kinabalu, Ranau, Kota Belud, Tuaran, Penampang, Papar, Putatan, Bahagian Pantai Barat"},
	"SBH08": {State: "Sabah", Description: "Pensiangan, Keningau, Tambunan, Nabawan, Bahagian Pendalaman"},
	"SBH09": {State: "Sabah", Description: "Sipitang, Membakut, Beaufort, Kuala Penyu, Weston, Tenom, Long Pasia, Bahagian Pendalaman"},

	"SWK01": {State: "Sarawak", Description: "Limbang, Lawas, Sundar, Trusan"},
	"SWK02": {State: "Sarawak", Description: "Miri, Niah, Bekenu, Sibuti, Marudi"},
	"SWK03": {State: "Sarawak", Description: "Pandan, Belaga, Suai, Tatau, Sebauh, Bintulu"},
	"SWK04": {State: "Sarawak", Description: "Sibu, Mukah, Dalat, Song, Igan, Oya, Balingian, Kanowit, Kapit"},
	"SWK05": {State: "Sarawak", Description: "Sarikei, Meradong, Julau, Rajang, Bitangor, Belawai"},
	"SWK06": {State: "Sarawak", Description: "Lubok Antu, Sri Aman, Roban, Debak, Kabong, Lingga, Engkelili, Betong, Spaoh, Pusa, Saratok"},
	"SWK07": {State: "Sarawak", Description: "Serian, Simunjan, Samarahan, Sebuyau, Meludam"},
	"SWK08": {State: "Sarawak", Description: "Kuching, Bau, Lundu, Sematan"},
	"SWK09": {State: "Sarawak", Description: "Zon Khas (Kampung Patarikan)"},

	"SGR01": {State: "Selangor", Description: "Gombak, Petaling, Sepang, Hulu Langat, Hulu Selangor, Rawang, S.Alam"},
	"SGR02": {State: "Selangor", Description: "Sabak Bernam, Kuala Selangor"},
	"SGR03": {State: "Selangor", Description: "Klang, Kuala Langat"},

	"TRG01": {State: "Terengganu", Description: "Kuala Terengganu, Marang, Kuala Nerus"},
	"TRG02": {State: "Terengganu", Description: "Besut, Setiu"},
	"TRG03": {State: "Terengganu", Description: "Hulu Terengganu"},
	"TRG04": {State: "Terengganu", Description: "Dungun, Kemaman"},

	"WLY01": {State: "Wilayah Persekutuan", Description: "Kuala Lumpur, Putrajaya"},
	"WLY02": {State: "Wilayah Persekutuan", Description: "Labuan"},
}

// All returns every zone ordered by code.
func All() []Info {
	out := make([]Info, 0, len(zones))
	for code, info := range zones {
		info.Code = code
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Lookup returns the zone description for code.
func Lookup(code Code) (Info, bool) {
	info, ok := zones[code]
	if !ok {
		return Info{}, false
	}
	info.Code = code
	return info, true
}

// Valid reports whether c is a known zone.
func (c Code) Valid() bool {
	_, ok := zones[c]
	return ok
}

func (c Code) String() string { return string(c) }

// Parse normalises s and checks it against the known zones.
func Parse(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown zone code %q", s)
	}
	return c, nil
}
