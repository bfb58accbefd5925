// This package serializes a normalized resource into the flat query-string
// representation used to carry curation state across page navigations.
// Most collections are flattened into bracketed keys
// ('authors[0][lastName]'); three complex collections (related works,
// funding references, MSL laboratories) are carried as JSON strings
// instead, matching the format the curation pages consume.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/McNamara84/ernie-sub013/datacite"
)

// BuildCurationQuery flattens a resource into query parameters. Keys with
// empty values are omitted entirely rather than emitted as empty strings.
// The resource type is resolved to its numeric id through the given
// resolver; when the resolver is nil or the lookup fails, the key is
// omitted and the rest of the query is still built.
func BuildCurationQuery(ctx context.Context, resource datacite.Resource,
	resolver *Resolver) map[string]string {

	params := make(map[string]string)
	put := func(key, value string) {
		if value != "" {
			params[key] = value
		}
	}

	put("doi", resource.DOI)
	if resource.Year != 0 {
		put("year", strconv.Itoa(resource.Year))
	}
	if resolver != nil {
		if id, ok := resolver.ResolveId(ctx, resource.ResourceType); ok {
			put("resourceType", strconv.Itoa(id))
		}
	}
	put("version", resource.Version)
	put("language", resource.Language)

	for i, title := range resource.Titles {
		put(key("titles", i, "title"), title.Title)
		put(key("titles", i, "titleType"), title.TitleType)
	}
	for i, license := range resource.Licenses {
		put(fmt.Sprintf("licenses[%d]", i), license)
	}
	for i, author := range resource.Authors {
		put(key("authors", i, "type"), author.Type)
		put(key("authors", i, "orcid"), author.ORCID)
		put(key("authors", i, "firstName"), author.FirstName)
		put(key("authors", i, "lastName"), author.LastName)
		put(key("authors", i, "institutionName"), author.InstitutionName)
		if author.IsContact {
			put(key("authors", i, "isContact"), "1")
			put(key("authors", i, "email"), author.Email)
			put(key("authors", i, "website"), author.Website)
		}
		put(key("authors", i, "position"), strconv.Itoa(author.Position))
		putAffiliations(put, "authors", i, author.Affiliations)
	}
	for i, contributor := range resource.Contributors {
		put(key("contributors", i, "type"), contributor.Type)
		put(key("contributors", i, "orcid"), contributor.ORCID)
		put(key("contributors", i, "firstName"), contributor.FirstName)
		put(key("contributors", i, "lastName"), contributor.LastName)
		put(key("contributors", i, "institutionName"), contributor.InstitutionName)
		put(key("contributors", i, "position"), strconv.Itoa(contributor.Position))
		for j, role := range contributor.Roles {
			put(fmt.Sprintf("contributors[%d][roles][%d]", i, j), role)
		}
		putAffiliations(put, "contributors", i, contributor.Affiliations)
	}
	for i, description := range resource.Descriptions {
		put(key("descriptions", i, "descriptionType"), description.DescriptionType)
		put(key("descriptions", i, "description"), description.Description)
	}
	for i, date := range resource.Dates {
		put(key("dates", i, "dateType"), date.DateType)
		put(key("dates", i, "startDate"), date.StartDate)
		put(key("dates", i, "endDate"), date.EndDate)
		put(key("dates", i, "dateInformation"), date.DateInformation)
	}
	for i, keyword := range resource.FreeKeywords {
		put(fmt.Sprintf("freeKeywords[%d]", i), keyword)
	}
	for i, keyword := range resource.ControlledKeywords {
		put(key("controlledKeywords", i, "id"), keyword.ID)
		put(key("controlledKeywords", i, "text"), keyword.Text)
		put(key("controlledKeywords", i, "vocabulary"), keyword.Vocabulary)
		put(key("controlledKeywords", i, "path"), keyword.Path)
	}
	for i, coverage := range resource.SpatialTemporalCoverages {
		put(key("coverages", i, "type"), coverage.Type)
		put(key("coverages", i, "latMin"), coverage.LatMin)
		put(key("coverages", i, "latMax"), coverage.LatMax)
		put(key("coverages", i, "lonMin"), coverage.LonMin)
		put(key("coverages", i, "lonMax"), coverage.LonMax)
		put(key("coverages", i, "startDate"), coverage.StartDate)
		put(key("coverages", i, "endDate"), coverage.EndDate)
		put(key("coverages", i, "startTime"), coverage.StartTime)
		put(key("coverages", i, "endTime"), coverage.EndTime)
		put(key("coverages", i, "timezone"), coverage.Timezone)
		put(key("coverages", i, "description"), coverage.Description)
		for j, point := range coverage.PolygonPoints {
			put(fmt.Sprintf("coverages[%d][polygonPoints][%d][latitude]", i, j), point.Latitude)
			put(fmt.Sprintf("coverages[%d][polygonPoints][%d][longitude]", i, j), point.Longitude)
		}
	}

	// these three collections travel as JSON strings, not bracketed keys
	putJson(put, "relatedWorks", resource.RelatedIdentifiers)
	putJson(put, "fundingReferences", resource.FundingReferences)
	putJson(put, "mslLaboratories", resource.MSLLaboratories)

	return params
}

// renders an indexed bracket key ('authors[0][lastName]')
func key(collection string, index int, name string) string {
	return fmt.Sprintf("%s[%d][%s]", collection, index, name)
}

func putAffiliations(put func(key, value string), collection string, index int,
	affiliations []datacite.Affiliation) {
	for j, affiliation := range affiliations {
		put(fmt.Sprintf("%s[%d][affiliations][%d][value]", collection, index, j),
			affiliation.Value)
		put(fmt.Sprintf("%s[%d][affiliations][%d][rorId]", collection, index, j),
			affiliation.RorID)
	}
}

// serializes a collection as a single JSON-string parameter, omitting the
// key when the collection is empty
func putJson[T any](put func(key, value string), name string, collection []T) {
	if len(collection) == 0 {
		return
	}
	data, err := json.Marshal(collection)
	if err != nil {
		return
	}
	put(name, string(data))
}
