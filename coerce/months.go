// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coerce

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Month-name substitution tables, keyed by lowercase month name or
// abbreviation in the source locale, mapped to the English month name
// that the time layout parser understands. Legacy datasets routinely
// carry dates like "12 ene 2004"; expanding the month token first lets
// a single layout pattern parse them.

var monthsEnglish = map[string]string{
	"jan": "January", "feb": "February", "mar": "March",
	"apr": "April", "may": "May", "jun": "June",
	"jul": "July", "aug": "August", "sep": "September", "sept": "September",
	"oct": "October", "nov": "November", "dec": "December",
}

var monthsSpanish = map[string]string{
	"enero": "January", "ene": "January",
	"febrero": "February", "feb": "February",
	"marzo": "March", "mar": "March",
	"abril": "April", "abr": "April",
	"mayo": "May", "may": "May",
	"junio": "June", "jun": "June",
	"julio": "July", "jul": "July",
	"agosto": "August", "ago": "August",
	"septiembre": "September", "sep": "September",
	"octubre": "October", "oct": "October",
	"noviembre": "November", "nov": "November",
	"diciembre": "December", "dic": "December",
}

var monthsFrench = map[string]string{
	"janvier": "January", "janv": "January",
	"février": "February", "fevrier": "February", "févr": "February",
	"mars": "March",
	"avril": "April", "avr": "April",
	"mai": "May",
	"juin": "June",
	"juillet": "July", "juil": "July",
	"août": "August", "aout": "August",
	"septembre": "September", "sept": "September",
	"octobre": "October", "oct": "October",
	"novembre": "November", "nov": "November",
	"décembre": "December", "decembre": "December", "déc": "December",
}

var monthsGerman = map[string]string{
	"januar": "January", "jan": "January", "jän": "January",
	"februar": "February", "feb": "February",
	"märz": "March", "maerz": "March", "mrz": "March",
	"april": "April", "apr": "April",
	"mai": "May",
	"juni": "June",
	"juli": "July",
	"august": "August", "aug": "August",
	"september": "September", "sep": "September",
	"oktober": "October", "okt": "October",
	"november": "November", "nov": "November",
	"dezember": "December", "dez": "December",
}

var monthLocales = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
}

var monthTables = map[language.Tag]map[string]string{
	language.English: monthsEnglish,
	language.Spanish: monthsSpanish,
	language.French:  monthsFrench,
	language.German:  monthsGerman,
}

var monthMatcher = language.NewMatcher(monthLocales)

// monthsForLocale returns the month substitution table for the given
// locale, falling back to English for unsupported locales.
func monthsForLocale(tag language.Tag) map[string]string {
	_, idx, _ := monthMatcher.Match(tag)
	return monthTables[monthLocales[idx]]
}

// expandMonths replaces every letter run in s that matches a key of
// the given mapping (case-insensitively) with its English month name.
func expandMonths(s string, months map[string]string) string {
	var b strings.Builder
	b.Grow(len(s))
	rs := []rune(s)
	for i := 0; i < len(rs); {
		if !unicode.IsLetter(rs[i]) {
			b.WriteRune(rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && unicode.IsLetter(rs[j]) {
			j++
		}
		word := string(rs[i:j])
		if full, ok := months[strings.ToLower(word)]; ok {
			b.WriteString(full)
		} else {
			b.WriteString(word)
		}
		i = j
	}
	return b.String()
}
