// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gender

import "strings"

type tier int

const (
	tierVeryHigh tier = iota
	tierHigh
	tierMedium
)

type endingRule struct {
	suffix string
	gender Gender
	tier   tier
}

// endingRules are evaluated in order. Longer and more reliable endings come
// first.
var endingRules = []endingRule{
	// Very high.
	{"schaft", Feminine, tierVeryHigh},
	{"heit", Feminine, tierVeryHigh},
	{"keit", Feminine, tierVeryHigh},
	{"ung", Feminine, tierVeryHigh},
	{"ion", Feminine, tierVeryHigh},
	{"tät", Feminine, tierVeryHigh},
	{"anz", Feminine, tierVeryHigh},
	{"enz", Feminine, tierVeryHigh},
	{"ie", Feminine, tierVeryHigh},
	{"ik", Feminine, tierVeryHigh},
	{"ur", Feminine, tierVeryHigh},
	{"chen", Neuter, tierVeryHigh},
	{"lein", Neuter, tierVeryHigh},
	{"ment", Neuter, tierVeryHigh},
	{"tum", Neuter, tierVeryHigh},
	{"um", Neuter, tierVeryHigh},
	{"ma", Neuter, tierVeryHigh},
	{"ismus", Masculine, tierVeryHigh},
	{"ling", Masculine, tierVeryHigh},

	// High.
	{"eur", Masculine, tierHigh},
	{"ant", Masculine, tierHigh},
	{"ist", Masculine, tierHigh},
	{"or", Masculine, tierHigh},

	// Medium.
	{"nis", Neuter, tierMedium},
	{"sal", Neuter, tierMedium},
	{"ei", Feminine, tierMedium},
	{"in", Feminine, tierMedium},
	{"ich", Masculine, tierMedium},
	{"ig", Masculine, tierMedium},
	{"us", Masculine, tierMedium},
	{"er", Masculine, tierMedium},
	{"el", Masculine, tierMedium},
	{"en", Masculine, tierMedium},
}

// terminalNouns are common nouns that keep their gender as the last part of
// a compound.
var terminalNouns = map[string]Gender{
	// Feminine.
	"frau": Feminine, "mutter": Feminine, "tochter": Feminine,
	"schwester": Feminine, "tante": Feminine, "königin": Feminine,
	"dame": Feminine, "stadt": Feminine, "straße": Feminine, "zeit": Feminine,
	"tür": Feminine, "hand": Feminine, "nacht": Feminine, "welt": Feminine,
	"schule": Feminine, "kirche": Feminine, "farbe": Feminine,
	"sprache": Feminine, "blume": Feminine, "katze": Feminine,
	"sonne": Feminine, "uhr": Feminine, "milch": Feminine, "wand": Feminine,
	"stunde": Feminine, "woche": Feminine, "lampe": Feminine,
	"reise": Feminine, "liebe": Feminine, "frage": Feminine,
	"karte": Feminine, "küche": Feminine, "arbeit": Feminine,

	// Masculine.
	"mann": Masculine, "vater": Masculine, "sohn": Masculine,
	"bruder": Masculine, "onkel": Masculine, "könig": Masculine,
	"herr": Masculine, "tag": Masculine, "baum": Masculine, "weg": Masculine,
	"tisch": Masculine, "stuhl": Masculine, "hund": Masculine,
	"garten": Masculine, "wagen": Masculine, "apfel": Masculine,
	"berg": Masculine, "fluss": Masculine, "platz": Masculine,
	"zug": Masculine, "markt": Masculine, "raum": Masculine,
	"schuh": Masculine, "arzt": Masculine, "freund": Masculine,
	"monat": Masculine, "schlüssel": Masculine,

	// Neuter.
	"haus": Neuter, "buch": Neuter, "kind": Neuter, "zimmer": Neuter,
	"auto": Neuter, "bett": Neuter, "bild": Neuter, "land": Neuter,
	"wasser": Neuter, "geld": Neuter, "jahr": Neuter, "spiel": Neuter,
	"fenster": Neuter, "tier": Neuter, "brot": Neuter, "glas": Neuter,
	"licht": Neuter, "wort": Neuter, "schiff": Neuter, "rad": Neuter,
	"mädchen": Neuter, "essen": Neuter,
}

// terminalNoun returns the longest known noun that word ends with. The part
// before the noun, if any, must be at least two runes long.
func terminalNoun(word string) (string, Gender, bool) {
	var (
		best string
		g    Gender
	)
	for noun, ng := range terminalNouns {
		if !strings.HasSuffix(word, noun) || len(noun) <= len(best) {
			continue
		}
		if rest := len([]rune(word)) - len([]rune(noun)); rest != 0 && rest < 2 {
			continue
		}
		best, g = noun, ng
	}
	return best, g, best != ""
}

type keyword struct {
	word   string
	gender Gender
}

// keywords mark a gender when contained anywhere in a word.
var keywords = []keyword{
	{"frau", Feminine},
	{"mutter", Feminine},
	{"tochter", Feminine},
	{"schwester", Feminine},
	{"tante", Feminine},
	{"königin", Feminine},
	{"prinzessin", Feminine},
	{"dame", Feminine},
	{"mann", Masculine},
	{"vater", Masculine},
	{"sohn", Masculine},
	{"bruder", Masculine},
	{"onkel", Masculine},
	{"könig", Masculine},
	{"prinz", Masculine},
	{"herr", Masculine},
}
