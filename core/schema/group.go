package schema

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultSeparators split a PDF field name into its group prefix and the rest.
const DefaultSeparators = "._-"

// AutoGroup assigns ungrouped fields to groups derived from the prefix of
// their ID, the text before the first separator. A prefix becomes a group
// only when at least two ungrouped fields share it; a missing group is
// created with a humanized label. It returns the number of fields assigned.
func (d *Definition) AutoGroup(separators string) int {
	if separators == "" {
		separators = DefaultSeparators
	}

	var order []string
	members := map[string][]int{}
	for i, f := range d.Fields {
		if f.Group != "" {
			continue
		}
		prefix := groupPrefix(f.ID, separators)
		if prefix == "" {
			continue
		}
		if _, seen := members[prefix]; !seen {
			order = append(order, prefix)
		}
		members[prefix] = append(members[prefix], i)
	}

	assigned := 0
	for _, prefix := range order {
		idx := members[prefix]
		if len(idx) < 2 {
			continue
		}
		if d.Group(prefix) == nil {
			d.Groups = append(d.Groups, Group{ID: prefix, Label: Humanize(prefix)})
		}
		for _, i := range idx {
			d.Fields[i].Group = prefix
		}
		assigned += len(idx)
	}
	return assigned
}

// groupPrefix returns the part of id before the first separator, without
// array indices, or "" when id has no separator.
func groupPrefix(id, separators string) string {
	cut := strings.IndexAny(id, separators)
	if cut <= 0 {
		return ""
	}
	return strings.TrimSpace(arrayIndex.ReplaceAllString(id[:cut], ""))
}

// FillLabels gives every unlabelled field and group a label derived from its
// ID and returns how many labels were set.
func (d *Definition) FillLabels() int {
	n := 0
	for i := range d.Groups {
		if d.Groups[i].Label == "" {
			d.Groups[i].Label = Humanize(d.Groups[i].ID)
			n++
		}
	}
	for i := range d.Fields {
		if d.Fields[i].Label == "" {
			d.Fields[i].Label = Humanize(d.Fields[i].ID)
			n++
		}
	}
	return n
}

var arrayIndex = regexp.MustCompile(`\[\d*\]`)

// Humanize turns a machine name into a title-cased label:
//
//	applicant_firstName -> Applicant First Name
//	PDFFieldName        -> PDF Field Name
//	Page1[0].zip-code   -> Page1 Zip Code
//
// Words are split at separators and case changes; all-caps words are kept.
func Humanize(name string) string {
	name = arrayIndex.ReplaceAllString(norm.NFC.String(name), " ")
	runes := []rune(name)

	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	caser := cases.Title(language.Und)
	for i, w := range words {
		if !isAcronym(w) {
			words[i] = caser.String(w)
		}
	}
	return strings.Join(words, " ")
}

func isAcronym(w string) bool {
	letters := 0
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters > 1
}
