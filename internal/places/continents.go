package places

// UnknownContinent is the fallback for countries without a mapping and for
// placeholder province values in the snapshots.
const UnknownContinent = "Unknown"

// USCountry is the country name the snapshots use for the United States.
// Only rows of this country carry county (Admin2) detail.
const USCountry = "US"

// ContinentOf returns the continent for a country name as it appears in
// the JHU daily reports, or UnknownContinent when unmapped.
func ContinentOf(country string) string {
	if c, ok := countryContinent[country]; ok {
		return c
	}
	return UnknownContinent
}

// countryContinent maps daily-report country names to continents. Names
// follow the report spelling ("US", "Korea, South", "Congo (Kinshasa)"),
// not ISO names.
var countryContinent = map[string]string{
	// Africa
	"Algeria":                          "Africa",
	"Angola":                           "Africa",
	"Benin":                            "Africa",
	"Botswana":                         "Africa",
	"Burkina Faso":                     "Africa",
	"Burundi":                          "Africa",
	"Cabo Verde":                       "Africa",
	"Cameroon":                         "Africa",
	"Central African Republic":         "Africa",
	"Chad":                             "Africa",
	"Comoros":                          "Africa",
	"Congo (Brazzaville)":              "Africa",
	"Congo (Kinshasa)":                 "Africa",
	"Cote d'Ivoire":                    "Africa",
	"Djibouti":                         "Africa",
	"Egypt":                            "Africa",
	"Equatorial Guinea":                "Africa",
	"Eritrea":                          "Africa",
	"Eswatini":                         "Africa",
	"Ethiopia":                         "Africa",
	"Gabon":                            "Africa",
	"Gambia":                           "Africa",
	"Ghana":                            "Africa",
	"Guinea":                           "Africa",
	"Guinea-Bissau":                    "Africa",
	"Kenya":                            "Africa",
	"Lesotho":                          "Africa",
	"Liberia":                          "Africa",
	"Libya":                            "Africa",
	"Madagascar":                       "Africa",
	"Malawi":                           "Africa",
	"Mali":                             "Africa",
	"Mauritania":                       "Africa",
	"Mauritius":                        "Africa",
	"Morocco":                          "Africa",
	"Mozambique":                       "Africa",
	"Namibia":                          "Africa",
	"Niger":                            "Africa",
	"Nigeria":                          "Africa",
	"Rwanda":                           "Africa",
	"Sao Tome and Principe":            "Africa",
	"Senegal":                          "Africa",
	"Seychelles":                       "Africa",
	"Sierra Leone":                     "Africa",
	"Somalia":                          "Africa",
	"South Africa":                     "Africa",
	"South Sudan":                      "Africa",
	"Sudan":                            "Africa",
	"Tanzania":                         "Africa",
	"Togo":                             "Africa",
	"Tunisia":                          "Africa",
	"Uganda":                           "Africa",
	"Zambia":                           "Africa",
	"Zimbabwe":                         "Africa",

	// Asia
	"Afghanistan":          "Asia",
	"Armenia":              "Asia",
	"Azerbaijan":           "Asia",
	"Bahrain":              "Asia",
	"Bangladesh":           "Asia",
	"Bhutan":               "Asia",
	"Brunei":               "Asia",
	"Burma":                "Asia",
	"Cambodia":             "Asia",
	"China":                "Asia",
	"Mainland China":       "Asia",
	"Georgia":              "Asia",
	"India":                "Asia",
	"Indonesia":            "Asia",
	"Iran":                 "Asia",
	"Iraq":                 "Asia",
	"Israel":               "Asia",
	"Japan":                "Asia",
	"Jordan":               "Asia",
	"Kazakhstan":           "Asia",
	"Korea, North":         "Asia",
	"Korea, South":         "Asia",
	"Kuwait":               "Asia",
	"Kyrgyzstan":           "Asia",
	"Laos":                 "Asia",
	"Lebanon":              "Asia",
	"Malaysia":             "Asia",
	"Maldives":             "Asia",
	"Mongolia":             "Asia",
	"Nepal":                "Asia",
	"Oman":                 "Asia",
	"Pakistan":             "Asia",
	"Philippines":          "Asia",
	"Qatar":                "Asia",
	"Saudi Arabia":         "Asia",
	"Singapore":            "Asia",
	"Sri Lanka":            "Asia",
	"Syria":                "Asia",
	"Taiwan*":              "Asia",
	"Tajikistan":           "Asia",
	"Thailand":             "Asia",
	"Timor-Leste":          "Asia",
	"Turkey":               "Asia",
	"Turkmenistan":         "Asia",
	"United Arab Emirates": "Asia",
	"Uzbekistan":           "Asia",
	"Vietnam":              "Asia",
	"West Bank and Gaza":   "Asia",
	"Yemen":                "Asia",

	// Europe
	"Albania":                "Europe",
	"Andorra":                "Europe",
	"Austria":                "Europe",
	"Belarus":                "Europe",
	"Belgium":                "Europe",
	"Bosnia and Herzegovina": "Europe",
	"Bulgaria":               "Europe",
	"Croatia":                "Europe",
	"Cyprus":                 "Europe",
	"Czechia":                "Europe",
	"Denmark":                "Europe",
	"Estonia":                "Europe",
	"Finland":                "Europe",
	"France":                 "Europe",
	"Germany":                "Europe",
	"Greece":                 "Europe",
	"Holy See":               "Europe",
	"Hungary":                "Europe",
	"Iceland":                "Europe",
	"Ireland":                "Europe",
	"Italy":                  "Europe",
	"Kosovo":                 "Europe",
	"Latvia":                 "Europe",
	"Liechtenstein":          "Europe",
	"Lithuania":              "Europe",
	"Luxembourg":             "Europe",
	"Malta":                  "Europe",
	"Moldova":                "Europe",
	"Monaco":                 "Europe",
	"Montenegro":             "Europe",
	"Netherlands":            "Europe",
	"North Macedonia":        "Europe",
	"Norway":                 "Europe",
	"Poland":                 "Europe",
	"Portugal":               "Europe",
	"Romania":                "Europe",
	"Russia":                 "Europe",
	"San Marino":             "Europe",
	"Serbia":                 "Europe",
	"Slovakia":               "Europe",
	"Slovenia":               "Europe",
	"Spain":                  "Europe",
	"Sweden":                 "Europe",
	"Switzerland":            "Europe",
	"Ukraine":                "Europe",
	"United Kingdom":         "Europe",

	// North America
	"Antigua and Barbuda":              "North America",
	"Bahamas":                          "North America",
	"Barbados":                         "North America",
	"Belize":                           "North America",
	"Canada":                           "North America",
	"Costa Rica":                       "North America",
	"Cuba":                             "North America",
	"Dominica":                         "North America",
	"Dominican Republic":               "North America",
	"El Salvador":                      "North America",
	"Grenada":                          "North America",
	"Guatemala":                        "North America",
	"Haiti":                            "North America",
	"Honduras":                         "North America",
	"Jamaica":                          "North America",
	"Mexico":                           "North America",
	"Nicaragua":                        "North America",
	"Panama":                           "North America",
	"Saint Kitts and Nevis":            "North America",
	"Saint Lucia":                      "North America",
	"Saint Vincent and the Grenadines": "North America",
	"Trinidad and Tobago":              "North America",
	"US":                               "North America",
	"United States":                    "North America",

	// South America
	"Argentina": "South America",
	"Bolivia":   "South America",
	"Brazil":    "South America",
	"Chile":     "South America",
	"Colombia":  "South America",
	"Ecuador":   "South America",
	"Guyana":    "South America",
	"Paraguay":  "South America",
	"Peru":      "South America",
	"Suriname":  "South America",
	"Uruguay":   "South America",
	"Venezuela": "South America",

	// Oceania
	"Australia":        "Oceania",
	"Fiji":             "Oceania",
	"Kiribati":         "Oceania",
	"Marshall Islands": "Oceania",
	"Micronesia":       "Oceania",
	"Nauru":            "Oceania",
	"New Zealand":      "Oceania",
	"Palau":            "Oceania",
	"Papua New Guinea": "Oceania",
	"Samoa":            "Oceania",
	"Solomon Islands":  "Oceania",
	"Tonga":            "Oceania",
	"Tuvalu":           "Oceania",
	"Vanuatu":          "Oceania",

	// Cruise ships and other non-geographic reporting units stay Unknown
	// via the ContinentOf fallback (Diamond Princess, MS Zaandam, ...).
	"Antarctica": "Antarctica",
}
