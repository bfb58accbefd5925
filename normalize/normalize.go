// This package turns raw decoded submission payloads into normalized
// datacite.Resource values: strings are trimmed, empty or malformed entries
// are dropped, affiliations are deduplicated, and vocabulary terms are
// resolved to their canonical stored slugs.
//
// Malformed entries (non-objects where objects are expected) are skipped
// silently rather than reported; shape problems that matter to curators are
// caught afterwards by the validate package.
package normalize

import (
	"github.com/McNamara84/ernie-sub013/config"
	"github.com/McNamara84/ernie-sub013/datacite"
	"github.com/McNamara84/ernie-sub013/identifiers"
)

// Submission normalizes a raw decoded submission into a resource. The input
// is the body of a resource POST (or the equivalent mapped from an XML
// upload), decoded into generic JSON shapes.
func Submission(raw map[string]any) datacite.Resource {
	doi := Text(raw["doi"])
	if idType := identifiers.Detect(doi); idType == identifiers.TypeDOI {
		doi = identifiers.Normalize(doi, idType)
	}
	return datacite.Resource{
		DOI:                      doi,
		Year:                     Integer(raw["year"], 0),
		ResourceType:             Text(raw["resourceType"]),
		Version:                  Text(raw["version"]),
		Language:                 Text(raw["language"]),
		Titles:                   Titles(raw["titles"]),
		Licenses:                 Licenses(raw["licenses"]),
		Authors:                  Authors(raw["authors"]),
		Contributors:             Contributors(raw["contributors"]),
		Descriptions:             Descriptions(raw["descriptions"]),
		Dates:                    Dates(raw["dates"]),
		FreeKeywords:             FreeKeywords(raw["freeKeywords"]),
		ControlledKeywords:       ControlledKeywords(raw["controlledKeywords"]),
		SpatialTemporalCoverages: Coverages(raw["spatialTemporalCoverages"]),
		RelatedIdentifiers:       RelatedIdentifiers(raw["relatedIdentifiers"]),
		FundingReferences:        FundingReferences(raw["fundingReferences"]),
		MSLLaboratories:          Laboratories(raw["mslLaboratories"]),
	}
}

// Titles normalizes a raw title list. Entries without title text are
// dropped; title types are resolved against the title type vocabulary.
func Titles(v any) []datacite.Title {
	titles := make([]datacite.Title, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		title := Text(obj["title"])
		if title == "" {
			continue
		}
		titles = append(titles, datacite.Title{
			Title:     title,
			TitleType: TitleTypeSlug(Text(obj["titleType"])),
		})
	}
	return titles
}

// TitleTypeSlug resolves an incoming title type to its canonical stored
// slug: the input is kebab-cased and looked up against the configured title
// type vocabulary (matching either display names or slugs); unknown terms
// fall back to their kebab form.
func TitleTypeSlug(s string) string {
	kebab := Kebab(s)
	for _, entry := range config.Vocabularies.TitleTypes {
		if Kebab(entry.Name) == kebab || entry.Slug == kebab {
			return entry.Slug
		}
	}
	return kebab
}

// Licenses normalizes a raw license list to a deduplicated slice of SPDX
// identifiers, first occurrence first. Both bare strings and objects with
// an 'identifier' (or 'id') field are accepted.
func Licenses(v any) []string {
	licenses := make([]string, 0)
	seen := make(map[string]bool)
	for _, entry := range List(v) {
		var license string
		if obj, ok := Object(entry); ok {
			license = Text(obj["identifier"])
			if license == "" {
				license = Text(obj["id"])
			}
		} else {
			license = Text(entry)
		}
		if license == "" || seen[license] {
			continue
		}
		seen[license] = true
		licenses = append(licenses, license)
	}
	return licenses
}

// Affiliations normalizes a raw affiliation list, deduplicating by the
// composite (value, rorId) key. Matching is case-sensitive and the first
// occurrence wins, preserving insertion order.
func Affiliations(v any) []datacite.Affiliation {
	affiliations := make([]datacite.Affiliation, 0)
	seen := make(map[string]bool)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		affiliation := datacite.Affiliation{
			Value: Text(obj["value"]),
			RorID: Text(obj["rorId"]),
		}
		if affiliation.Value == "" {
			continue
		}
		key := affiliation.Value + "|" + affiliation.RorID
		if seen[key] {
			continue
		}
		seen[key] = true
		affiliations = append(affiliations, affiliation)
	}
	return affiliations
}

// agentType infers the person/institution discriminator for entries that
// don't state one
func agentType(obj map[string]any) string {
	agentType := Kebab(Text(obj["type"]))
	if agentType != datacite.AgentTypePerson && agentType != datacite.AgentTypeInstitution {
		if Text(obj["institutionName"]) != "" {
			return datacite.AgentTypeInstitution
		}
		return datacite.AgentTypePerson
	}
	return agentType
}

// Authors normalizes a raw author list. Entries stay in place even when
// required name fields are missing, so that validation can point at the
// offending row; only non-object entries are dropped. For persons that are
// not the point of contact, email and website are cleared regardless of the
// submitted values.
func Authors(v any) []datacite.Author {
	authors := make([]datacite.Author, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		author := datacite.Author{
			Type:         agentType(obj),
			ORCID:        Text(obj["orcid"]),
			Position:     Integer(obj["position"], len(authors)),
			Affiliations: Affiliations(obj["affiliations"]),
		}
		if author.Type == datacite.AgentTypeInstitution {
			author.InstitutionName = Text(obj["institutionName"])
		} else {
			author.FirstName = Text(obj["firstName"])
			author.LastName = Text(obj["lastName"])
			author.IsContact = Boolean(obj["isContact"])
			if author.IsContact {
				author.Email = Text(obj["email"])
				author.Website = Text(obj["website"])
			}
		}
		authors = append(authors, author)
	}
	return authors
}

// Contributors normalizes a raw contributor list, keeping malformed name
// shapes in place for the validator and dropping empty roles.
func Contributors(v any) []datacite.Contributor {
	contributors := make([]datacite.Contributor, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		contributor := datacite.Contributor{
			Type:         agentType(obj),
			ORCID:        Text(obj["orcid"]),
			Position:     Integer(obj["position"], len(contributors)),
			Affiliations: Affiliations(obj["affiliations"]),
		}
		if contributor.Type == datacite.AgentTypeInstitution {
			contributor.InstitutionName = Text(obj["institutionName"])
		} else {
			contributor.FirstName = Text(obj["firstName"])
			contributor.LastName = Text(obj["lastName"])
		}
		roles := make([]string, 0)
		for _, role := range List(obj["roles"]) {
			if r := Text(role); r != "" {
				roles = append(roles, r)
			}
		}
		contributor.Roles = roles
		contributors = append(contributors, contributor)
	}
	return contributors
}

// Descriptions normalizes a raw description list. Entries with an empty
// type or empty text are dropped; types are kebab-cased.
func Descriptions(v any) []datacite.Description {
	descriptions := make([]datacite.Description, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		description := datacite.Description{
			DescriptionType: Kebab(Text(obj["descriptionType"])),
			Description:     Text(obj["description"]),
		}
		if description.DescriptionType == "" || description.Description == "" {
			continue
		}
		descriptions = append(descriptions, description)
	}
	return descriptions
}

// Dates normalizes a raw date list. Entries without a date type are
// dropped.
func Dates(v any) []datacite.DateEntry {
	dates := make([]datacite.DateEntry, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		date := datacite.DateEntry{
			DateType:        Kebab(Text(obj["dateType"])),
			StartDate:       Text(obj["startDate"]),
			EndDate:         Text(obj["endDate"]),
			DateInformation: Text(obj["dateInformation"]),
		}
		if date.DateType == "" {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

// FreeKeywords normalizes a raw keyword list to deduplicated non-empty
// strings.
func FreeKeywords(v any) []string {
	keywords := make([]string, 0)
	seen := make(map[string]bool)
	for _, entry := range List(v) {
		keyword := Text(entry)
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		keywords = append(keywords, keyword)
	}
	return keywords
}

// ControlledKeywords normalizes a raw controlled-vocabulary keyword list.
// Entries without display text are dropped.
func ControlledKeywords(v any) []datacite.ControlledKeyword {
	keywords := make([]datacite.ControlledKeyword, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		keyword := datacite.ControlledKeyword{
			ID:         Text(obj["id"]),
			Text:       Text(obj["text"]),
			Vocabulary: Text(obj["vocabulary"]),
			Path:       Text(obj["path"]),
		}
		if keyword.Text == "" {
			continue
		}
		keywords = append(keywords, keyword)
	}
	return keywords
}

// Coverages normalizes a raw spatial/temporal coverage list. The geometry
// type is kebab-cased; polygon vertex counts are checked by the validator,
// not here.
func Coverages(v any) []datacite.SpatialTemporalCoverage {
	coverages := make([]datacite.SpatialTemporalCoverage, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		coverage := datacite.SpatialTemporalCoverage{
			Type:        Kebab(Text(obj["type"])),
			LatMin:      Text(obj["latMin"]),
			LatMax:      Text(obj["latMax"]),
			LonMin:      Text(obj["lonMin"]),
			LonMax:      Text(obj["lonMax"]),
			StartDate:   Text(obj["startDate"]),
			EndDate:     Text(obj["endDate"]),
			StartTime:   Text(obj["startTime"]),
			EndTime:     Text(obj["endTime"]),
			Timezone:    Text(obj["timezone"]),
			Description: Text(obj["description"]),
		}
		for _, point := range List(obj["polygonPoints"]) {
			pointObj, ok := Object(point)
			if !ok {
				continue
			}
			vertex := datacite.PolygonPoint{
				Latitude:  Text(pointObj["latitude"]),
				Longitude: Text(pointObj["longitude"]),
			}
			if vertex.Latitude == "" && vertex.Longitude == "" {
				continue
			}
			coverage.PolygonPoints = append(coverage.PolygonPoints, vertex)
		}
		coverages = append(coverages, coverage)
	}
	return coverages
}

// RelatedIdentifiers normalizes a raw related-identifier list. Entries with
// an empty identifier are dropped; identifiers without a stated type are
// classified, and DOIs are reduced to their bare form.
func RelatedIdentifiers(v any) []datacite.RelatedIdentifier {
	related := make([]datacite.RelatedIdentifier, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		identifier := Text(obj["identifier"])
		if identifier == "" {
			continue
		}
		idType := Text(obj["identifierType"])
		if idType == "" {
			idType = string(identifiers.Detect(identifier))
		}
		if idType == string(identifiers.TypeDOI) {
			identifier = identifiers.Normalize(identifier, identifiers.TypeDOI)
		}
		related = append(related, datacite.RelatedIdentifier{
			Identifier:     identifier,
			IdentifierType: idType,
			RelationType:   Text(obj["relationType"]),
			Position:       Integer(obj["position"], len(related)),
		})
	}
	return related
}

// FundingReferences normalizes a raw funding-reference list. Entries
// without a funder name are dropped.
func FundingReferences(v any) []datacite.FundingReference {
	references := make([]datacite.FundingReference, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		reference := datacite.FundingReference{
			FunderName:           Text(obj["funderName"]),
			FunderIdentifier:     Text(obj["funderIdentifier"]),
			FunderIdentifierType: Text(obj["funderIdentifierType"]),
			AwardNumber:          Text(obj["awardNumber"]),
			AwardURI:             Text(obj["awardUri"]),
			AwardTitle:           Text(obj["awardTitle"]),
		}
		if reference.FunderName == "" {
			continue
		}
		references = append(references, reference)
	}
	return references
}

// Laboratories normalizes a raw MSL laboratory list. Entries without a name
// are dropped.
func Laboratories(v any) []datacite.Laboratory {
	laboratories := make([]datacite.Laboratory, 0)
	for _, entry := range List(v) {
		obj, ok := Object(entry)
		if !ok {
			continue
		}
		laboratory := datacite.Laboratory{
			LabID:       Text(obj["labId"]),
			Name:        Text(obj["name"]),
			Affiliation: Text(obj["affiliation"]),
		}
		if laboratory.Name == "" {
			continue
		}
		laboratories = append(laboratories, laboratory)
	}
	return laboratories
}
