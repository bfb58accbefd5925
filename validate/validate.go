// This package enforces the cross-field invariants of a curated resource
// that cannot be expressed as single-field rules. All checks run on every
// call, so a curator sees every violation at once rather than fixing them
// one round-trip at a time.
package validate

import (
	"fmt"
	"strings"

	"github.com/McNamara84/ernie-sub013/config"
	"github.com/McNamara84/ernie-sub013/datacite"
)

// Errors maps dotted field paths ('authors.2.lastName') to the messages
// reported for that field. The paths mirror the array indexes of the
// submission, so a client can highlight the exact offending row.
type Errors map[string][]string

// Add appends a message for the given field path.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any violation was recorded.
func (e Errors) Any() bool {
	return len(e) > 0
}

// a single cross-field check; each check may record zero or more violations
type check func(resource datacite.Resource, errs Errors)

var checks = []check{
	checkTitles,
	checkLicenses,
	checkAuthors,
	checkContributors,
	checkDescriptions,
	checkDates,
	checkCoverages,
	checkRelatedIdentifiers,
}

// Resource runs every cross-field check against a normalized resource,
// returning all recorded violations. There is no short-circuiting.
func Resource(resource datacite.Resource) Errors {
	errs := make(Errors)
	for _, check := range checks {
		check(resource, errs)
	}
	return errs
}

// at least one title must carry the 'main-title' type
func checkTitles(resource datacite.Resource, errs Errors) {
	for _, title := range resource.Titles {
		if title.TitleType == "main-title" {
			return
		}
	}
	errs.Add("titles", "At least one main title is required.")
}

// at least one license must be selected
func checkLicenses(resource datacite.Resource, errs Errors) {
	if len(resource.Licenses) == 0 {
		errs.Add("licenses", "At least one license is required.")
	}
}

// authors must be present; persons need a family name, institutions a name,
// and contact persons a way to be contacted
func checkAuthors(resource datacite.Resource, errs Errors) {
	if len(resource.Authors) == 0 {
		errs.Add("authors", "At least one author is required.")
		return
	}
	for i, author := range resource.Authors {
		switch author.Type {
		case datacite.AgentTypeInstitution:
			if author.InstitutionName == "" {
				errs.Add(field("authors", i, "institutionName"),
					"An institution author requires an institution name.")
			}
		default:
			if author.LastName == "" {
				errs.Add(field("authors", i, "lastName"),
					"A person author requires a last name.")
			}
			if author.IsContact && author.Email == "" {
				errs.Add(field("authors", i, "email"),
					"A contact author requires an email address.")
			}
		}
	}
}

// contributors follow the author name rules and need at least one role
func checkContributors(resource datacite.Resource, errs Errors) {
	for i, contributor := range resource.Contributors {
		switch contributor.Type {
		case datacite.AgentTypeInstitution:
			if contributor.InstitutionName == "" {
				errs.Add(field("contributors", i, "institutionName"),
					"An institution contributor requires an institution name.")
			}
		default:
			if contributor.LastName == "" {
				errs.Add(field("contributors", i, "lastName"),
					"A person contributor requires a last name.")
			}
		}
		if len(contributor.Roles) == 0 {
			errs.Add(field("contributors", i, "roles"),
				"A contributor requires at least one role.")
		}
		for j, role := range contributor.Roles {
			if !vocabularyContains(config.Vocabularies.ContributorRoles, role) {
				errs.Add(fmt.Sprintf("contributors.%d.roles.%d", i, j),
					fmt.Sprintf("Unknown contributor role '%s'.", role))
			}
		}
	}
}

// at least one description must be an abstract with non-empty text, and
// every description type must come from the configured vocabulary
func checkDescriptions(resource datacite.Resource, errs Errors) {
	hasAbstract := false
	for i, description := range resource.Descriptions {
		if description.DescriptionType == "abstract" &&
			strings.TrimSpace(description.Description) != "" {
			hasAbstract = true
		}
		known := false
		for _, entry := range config.Vocabularies.DescriptionTypes {
			if entry.Slug == description.DescriptionType {
				known = true
				break
			}
		}
		if !known {
			errs.Add(field("descriptions", i, "descriptionType"),
				fmt.Sprintf("Unknown description type '%s'.", description.DescriptionType))
		}
	}
	if !hasAbstract {
		errs.Add("descriptions", "An abstract description is required.")
	}
}

// date types must come from the configured vocabulary
func checkDates(resource datacite.Resource, errs Errors) {
	for i, date := range resource.Dates {
		if !vocabularyContains(config.Vocabularies.DateTypes, date.DateType) {
			errs.Add(field("dates", i, "dateType"),
				fmt.Sprintf("Unknown date type '%s'.", date.DateType))
		}
	}
}

// polygon coverages need at least three vertices
func checkCoverages(resource datacite.Resource, errs Errors) {
	for i, coverage := range resource.SpatialTemporalCoverages {
		if coverage.Type == datacite.CoverageTypePolygon &&
			len(coverage.PolygonPoints) < 3 {
			errs.Add(field("spatialTemporalCoverages", i, "polygonPoints"),
				"A polygon requires at least three points.")
		}
	}
}

// relation and identifier types must come from the DataCite vocabularies
func checkRelatedIdentifiers(resource datacite.Resource, errs Errors) {
	for i, related := range resource.RelatedIdentifiers {
		if !vocabularyContains(config.Vocabularies.RelationTypes, related.RelationType) {
			errs.Add(field("relatedIdentifiers", i, "relationType"),
				fmt.Sprintf("Unknown relation type '%s'.", related.RelationType))
		}
		if !vocabularyContains(config.Vocabularies.IdentifierTypes, related.IdentifierType) {
			errs.Add(field("relatedIdentifiers", i, "identifierType"),
				fmt.Sprintf("Unknown identifier type '%s'.", related.IdentifierType))
		}
	}
}

// renders an indexed field path ('authors.2.lastName')
func field(collection string, index int, name string) string {
	return fmt.Sprintf("%s.%d.%s", collection, index, name)
}

func vocabularyContains(vocabulary []string, term string) bool {
	for _, entry := range vocabulary {
		if entry == term {
			return true
		}
	}
	return false
}
