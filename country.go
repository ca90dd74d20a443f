package folio

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// continents in the order they are checked, as UN M.49 regions.
var continents = []struct {
	name   string
	region language.Region
}{
	{"Africa", language.MustParseRegion("002")},
	{"Europe", language.MustParseRegion("150")},
	{"Asia", language.MustParseRegion("142")},
	{"Oceania", language.MustParseRegion("009")},
	{"South America", language.MustParseRegion("005")},
	// the rest of the Americas
	{"North America", language.MustParseRegion("019")},
	{"Antarctica", language.MustParseRegion("AQ")},
}

// CountryOf returns the English name and the continent of an ISO 3166
// alpha-2 country code. Unknown codes yield UnknownKey for both.
func CountryOf(code string) (name, continent string) {
	r, err := language.ParseRegion(code)
	if err != nil || !r.IsCountry() {
		return UnknownKey, UnknownKey
	}
	name = display.English.Regions().Name(r)
	if name == "" {
		name = UnknownKey
	}
	continent = UnknownKey
	for _, c := range continents {
		if c.region == r || c.region.Contains(r) {
			continent = c.name
			break
		}
	}
	return name, continent
}
