// This package renders published resource records as human-readable
// citation strings. Records arrive in two shapes: the current one nests
// creator names under a 'creatorable' object, the legacy one carries flat
// name fields on the creator itself. Both are handled by a single accessor
// so the compatibility seam stays in one place.
package citation

import (
	"fmt"
	"strings"

	"github.com/McNamara84/ernie-sub013/identifiers"
)

// a published record in either the current or the legacy shape
type Record struct {
	Creators  []Creator `json:"creators"`
	Titles    []Title   `json:"titles"`
	Year      int       `json:"year"`
	// legacy alias for Year
	PublicationYear int    `json:"publication_year"`
	Publisher       string `json:"publisher"`
	DOI             string `json:"doi"`
}

// a creator of a published record; either Creatorable is set (current
// shape) or the flat name fields are (legacy shape)
type Creator struct {
	Creatorable *Creatorable `json:"creatorable"`
	// legacy flat fields
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	InstitutionName string `json:"institution_name"`
}

// the nested name object of the current record shape
type Creatorable struct {
	Type       string `json:"type"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Name       string `json:"name"`
}

// a title of a published record
type Title struct {
	Title     string `json:"title"`
	TitleType string `json:"title_type"`
}

// Build renders a record as
//
//	<Creators> (<Year|n.d.>): <Title|Untitled>. <Publisher>. <DOI-URL|DOI not available>
//
// with missing parts replaced by their documented fallbacks.
func Build(record Record) string {
	return fmt.Sprintf("%s (%s): %s. %s. %s",
		creatorList(record.Creators),
		yearLabel(record),
		mainTitle(record.Titles),
		publisherLabel(record.Publisher),
		doiLabel(record.DOI))
}

// formats the creator list, joined by '; '; an empty list yields the
// literal 'Unknown Creator'
func creatorList(creators []Creator) string {
	names := make([]string, 0, len(creators))
	for _, creator := range creators {
		if name := creatorName(creator); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "Unknown Creator"
	}
	return strings.Join(names, "; ")
}

// creatorName is the single accessor for both record shapes: the current
// nested 'creatorable' object is tried first, then the legacy flat fields.
// Persons render as 'Family, Given' (or whichever part is present),
// institutions as their bare name.
func creatorName(creator Creator) string {
	if c := creator.Creatorable; c != nil {
		if name := personName(c.FamilyName, c.GivenName); name != "" {
			return name
		}
		return strings.TrimSpace(c.Name)
	}
	if creator.InstitutionName != "" {
		return strings.TrimSpace(creator.InstitutionName)
	}
	return personName(creator.LastName, creator.FirstName)
}

// renders 'Family, Given', dropping whichever part is absent
func personName(family, given string) string {
	family = strings.TrimSpace(family)
	given = strings.TrimSpace(given)
	switch {
	case family != "" && given != "":
		return family + ", " + given
	case family != "":
		return family
	}
	return given
}

// picks the main title, falling back to the first title, then 'Untitled'
func mainTitle(titles []Title) string {
	for _, title := range titles {
		if title.TitleType == "MainTitle" || title.TitleType == "main-title" {
			if title.Title != "" {
				return title.Title
			}
		}
	}
	if len(titles) > 0 && titles[0].Title != "" {
		return titles[0].Title
	}
	return "Untitled"
}

// the publication year, preferring the current 'year' field over the legacy
// 'publication_year', with 'n.d.' for undated records
func yearLabel(record Record) string {
	if record.Year != 0 {
		return fmt.Sprintf("%d", record.Year)
	}
	if record.PublicationYear != 0 {
		return fmt.Sprintf("%d", record.PublicationYear)
	}
	return "n.d."
}

func publisherLabel(publisher string) string {
	if publisher = strings.TrimSpace(publisher); publisher != "" {
		return publisher
	}
	return "Unknown Publisher"
}

// the resolver URL for the record's DOI, or the documented fallback text
func doiLabel(doi string) string {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return "DOI not available"
	}
	return "https://doi.org/" + identifiers.Normalize(doi, identifiers.Detect(doi))
}
