// This package maps uploaded DataCite XML documents onto the raw submission
// shape consumed by the normalize package, so uploaded and hand-curated
// metadata flow through the same pipeline.
package uploads

import (
	"encoding/xml"
	"strings"

	"github.com/McNamara84/ernie-sub013/normalize"
)

// the DataCite kernel-4 elements we consume from an uploaded document
type xmlResource struct {
	XMLName    xml.Name `xml:"resource"`
	Identifier struct {
		Value          string `xml:",chardata"`
		IdentifierType string `xml:"identifierType,attr"`
	} `xml:"identifier"`
	Creators []struct {
		CreatorName struct {
			Value    string `xml:",chardata"`
			NameType string `xml:"nameType,attr"`
		} `xml:"creatorName"`
		GivenName       string `xml:"givenName"`
		FamilyName      string `xml:"familyName"`
		NameIdentifiers []struct {
			Value  string `xml:",chardata"`
			Scheme string `xml:"nameIdentifierScheme,attr"`
		} `xml:"nameIdentifier"`
		Affiliations []struct {
			Value      string `xml:",chardata"`
			Identifier string `xml:"affiliationIdentifier,attr"`
		} `xml:"affiliation"`
	} `xml:"creators>creator"`
	Titles []struct {
		Value     string `xml:",chardata"`
		TitleType string `xml:"titleType,attr"`
	} `xml:"titles>title"`
	PublicationYear string `xml:"publicationYear"`
	ResourceType    struct {
		General string `xml:"resourceTypeGeneral,attr"`
	} `xml:"resourceType"`
	Subjects []struct {
		Value         string `xml:",chardata"`
		SubjectScheme string `xml:"subjectScheme,attr"`
		ValueURI      string `xml:"valueURI,attr"`
	} `xml:"subjects>subject"`
	Contributors []struct {
		ContributorType string `xml:"contributorType,attr"`
		ContributorName struct {
			Value    string `xml:",chardata"`
			NameType string `xml:"nameType,attr"`
		} `xml:"contributorName"`
		GivenName    string `xml:"givenName"`
		FamilyName   string `xml:"familyName"`
		Affiliations []struct {
			Value      string `xml:",chardata"`
			Identifier string `xml:"affiliationIdentifier,attr"`
		} `xml:"affiliation"`
	} `xml:"contributors>contributor"`
	Dates []struct {
		Value           string `xml:",chardata"`
		DateType        string `xml:"dateType,attr"`
		DateInformation string `xml:"dateInformation,attr"`
	} `xml:"dates>date"`
	Language           string `xml:"language"`
	Version            string `xml:"version"`
	RelatedIdentifiers []struct {
		Value          string `xml:",chardata"`
		IdentifierType string `xml:"relatedIdentifierType,attr"`
		RelationType   string `xml:"relationType,attr"`
	} `xml:"relatedIdentifiers>relatedIdentifier"`
	Rights []struct {
		Value      string `xml:",chardata"`
		Identifier string `xml:"rightsIdentifier,attr"`
	} `xml:"rightsList>rights"`
	Descriptions []struct {
		Value           string `xml:",chardata"`
		DescriptionType string `xml:"descriptionType,attr"`
	} `xml:"descriptions>description"`
	GeoLocations []struct {
		Place string `xml:"geoLocationPlace"`
		Point *struct {
			Latitude  string `xml:"pointLatitude"`
			Longitude string `xml:"pointLongitude"`
		} `xml:"geoLocationPoint"`
		Box *struct {
			LatMin string `xml:"southBoundLatitude"`
			LatMax string `xml:"northBoundLatitude"`
			LonMin string `xml:"westBoundLongitude"`
			LonMax string `xml:"eastBoundLongitude"`
		} `xml:"geoLocationBox"`
		PolygonPoints []struct {
			Latitude  string `xml:"pointLatitude"`
			Longitude string `xml:"pointLongitude"`
		} `xml:"geoLocationPolygon>polygonPoint"`
	} `xml:"geoLocations>geoLocation"`
	FundingReferences []struct {
		FunderName       string `xml:"funderName"`
		FunderIdentifier struct {
			Value string `xml:",chardata"`
			Type  string `xml:"funderIdentifierType,attr"`
		} `xml:"funderIdentifier"`
		AwardNumber struct {
			Value    string `xml:",chardata"`
			AwardURI string `xml:"awardURI,attr"`
		} `xml:"awardNumber"`
		AwardTitle string `xml:"awardTitle"`
	} `xml:"fundingReferences>fundingReference"`
}

// Parse maps an uploaded DataCite XML document onto the raw submission
// shape. Failures carry explicit category/code pairs; maxBytes bounds the
// accepted document size.
func Parse(data []byte, maxBytes int64) (map[string]any, *UploadError) {
	if len(data) == 0 {
		return nil, &UploadError{Category: CategoryFile, Code: CodeFileMissing}
	}
	if int64(len(data)) > maxBytes {
		return nil, &UploadError{Category: CategoryFile, Code: CodeFileTooLarge}
	}

	var resource xmlResource
	if err := xml.Unmarshal(data, &resource); err != nil {
		return nil, &UploadError{Category: CategoryXML, Code: CodeMalformedXML}
	}

	raw := make(map[string]any)
	if resource.Identifier.IdentifierType == "" ||
		strings.EqualFold(resource.Identifier.IdentifierType, "DOI") {
		raw["doi"] = strings.TrimSpace(resource.Identifier.Value)
	}
	raw["year"] = strings.TrimSpace(resource.PublicationYear)
	raw["resourceType"] = resource.ResourceType.General
	raw["language"] = strings.TrimSpace(resource.Language)
	raw["version"] = strings.TrimSpace(resource.Version)

	titles := make([]any, 0, len(resource.Titles))
	for _, title := range resource.Titles {
		titleType := title.TitleType
		if titleType == "" {
			// DataCite marks the main title by omitting the type attribute
			titleType = "main-title"
		}
		titles = append(titles, map[string]any{
			"title":     strings.TrimSpace(title.Value),
			"titleType": titleType,
		})
	}
	raw["titles"] = titles

	authors := make([]any, 0, len(resource.Creators))
	for _, creator := range resource.Creators {
		author := make(map[string]any)
		if strings.EqualFold(creator.CreatorName.NameType, "Organizational") {
			author["type"] = "institution"
			author["institutionName"] = strings.TrimSpace(creator.CreatorName.Value)
		} else {
			author["type"] = "person"
			author["firstName"] = strings.TrimSpace(creator.GivenName)
			author["lastName"] = strings.TrimSpace(creator.FamilyName)
			if author["lastName"] == "" {
				family, given := splitInvertedName(creator.CreatorName.Value)
				author["lastName"] = family
				if author["firstName"] == "" {
					author["firstName"] = given
				}
			}
			for _, id := range creator.NameIdentifiers {
				if strings.EqualFold(id.Scheme, "ORCID") {
					author["orcid"] = strings.TrimSpace(id.Value)
				}
			}
		}
		author["affiliations"] = affiliationList(creator.Affiliations)
		authors = append(authors, author)
	}
	raw["authors"] = authors

	contributors := make([]any, 0, len(resource.Contributors))
	for _, entry := range resource.Contributors {
		contributor := make(map[string]any)
		if strings.EqualFold(entry.ContributorName.NameType, "Organizational") {
			contributor["type"] = "institution"
			contributor["institutionName"] = strings.TrimSpace(entry.ContributorName.Value)
		} else {
			contributor["type"] = "person"
			contributor["firstName"] = strings.TrimSpace(entry.GivenName)
			contributor["lastName"] = strings.TrimSpace(entry.FamilyName)
			if contributor["lastName"] == "" {
				family, given := splitInvertedName(entry.ContributorName.Value)
				contributor["lastName"] = family
				if contributor["firstName"] == "" {
					contributor["firstName"] = given
				}
			}
		}
		if entry.ContributorType != "" {
			contributor["roles"] = []any{entry.ContributorType}
		}
		contributor["affiliations"] = affiliationList(entry.Affiliations)
		contributors = append(contributors, contributor)
	}
	raw["contributors"] = contributors

	descriptions := make([]any, 0, len(resource.Descriptions))
	for _, description := range resource.Descriptions {
		descriptions = append(descriptions, map[string]any{
			"descriptionType": description.DescriptionType,
			"description":     strings.TrimSpace(description.Value),
		})
	}
	raw["descriptions"] = descriptions

	dates := make([]any, 0, len(resource.Dates))
	for _, date := range resource.Dates {
		start, end := normalize.ParseDateRange(date.Value)
		dates = append(dates, map[string]any{
			"dateType":        date.DateType,
			"startDate":       start,
			"endDate":         end,
			"dateInformation": date.DateInformation,
		})
	}
	raw["dates"] = dates

	freeKeywords := make([]any, 0)
	controlledKeywords := make([]any, 0)
	for _, subject := range resource.Subjects {
		if subject.SubjectScheme == "" {
			freeKeywords = append(freeKeywords, strings.TrimSpace(subject.Value))
		} else {
			controlledKeywords = append(controlledKeywords, map[string]any{
				"id":         subject.ValueURI,
				"text":       strings.TrimSpace(subject.Value),
				"vocabulary": subject.SubjectScheme,
			})
		}
	}
	raw["freeKeywords"] = freeKeywords
	raw["controlledKeywords"] = controlledKeywords

	coverages := make([]any, 0, len(resource.GeoLocations))
	for _, location := range resource.GeoLocations {
		coverage := map[string]any{"description": strings.TrimSpace(location.Place)}
		switch {
		case len(location.PolygonPoints) > 0:
			coverage["type"] = "polygon"
			points := make([]any, 0, len(location.PolygonPoints))
			for _, point := range location.PolygonPoints {
				points = append(points, map[string]any{
					"latitude":  strings.TrimSpace(point.Latitude),
					"longitude": strings.TrimSpace(point.Longitude),
				})
			}
			coverage["polygonPoints"] = points
		case location.Box != nil:
			coverage["type"] = "box"
			coverage["latMin"] = strings.TrimSpace(location.Box.LatMin)
			coverage["latMax"] = strings.TrimSpace(location.Box.LatMax)
			coverage["lonMin"] = strings.TrimSpace(location.Box.LonMin)
			coverage["lonMax"] = strings.TrimSpace(location.Box.LonMax)
		case location.Point != nil:
			coverage["type"] = "point"
			coverage["latMin"] = strings.TrimSpace(location.Point.Latitude)
			coverage["lonMin"] = strings.TrimSpace(location.Point.Longitude)
		default:
			continue
		}
		coverages = append(coverages, coverage)
	}
	raw["spatialTemporalCoverages"] = coverages

	related := make([]any, 0, len(resource.RelatedIdentifiers))
	for _, identifier := range resource.RelatedIdentifiers {
		related = append(related, map[string]any{
			"identifier":     strings.TrimSpace(identifier.Value),
			"identifierType": identifier.IdentifierType,
			"relationType":   identifier.RelationType,
		})
	}
	raw["relatedIdentifiers"] = related

	licenses := make([]any, 0, len(resource.Rights))
	for _, rights := range resource.Rights {
		license := rights.Identifier
		if license == "" {
			license = strings.TrimSpace(rights.Value)
		}
		licenses = append(licenses, license)
	}
	raw["licenses"] = licenses

	funding := make([]any, 0, len(resource.FundingReferences))
	for _, reference := range resource.FundingReferences {
		funding = append(funding, map[string]any{
			"funderName":           strings.TrimSpace(reference.FunderName),
			"funderIdentifier":     strings.TrimSpace(reference.FunderIdentifier.Value),
			"funderIdentifierType": reference.FunderIdentifier.Type,
			"awardNumber":          strings.TrimSpace(reference.AwardNumber.Value),
			"awardUri":             reference.AwardNumber.AwardURI,
			"awardTitle":           strings.TrimSpace(reference.AwardTitle),
		})
	}
	raw["fundingReferences"] = funding

	return raw, nil
}

// splits a 'Family, Given' creatorName into its parts
func splitInvertedName(name string) (family, given string) {
	name = strings.TrimSpace(name)
	if comma := strings.Index(name, ","); comma != -1 {
		return strings.TrimSpace(name[:comma]), strings.TrimSpace(name[comma+1:])
	}
	return name, ""
}

func affiliationList(affiliations []struct {
	Value      string `xml:",chardata"`
	Identifier string `xml:"affiliationIdentifier,attr"`
}) []any {
	list := make([]any, 0, len(affiliations))
	for _, affiliation := range affiliations {
		list = append(list, map[string]any{
			"value": strings.TrimSpace(affiliation.Value),
			"rorId": strings.TrimSpace(affiliation.Identifier),
		})
	}
	return list
}
