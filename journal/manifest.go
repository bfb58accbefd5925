package journal

import (
	"time"

	"github.com/frictionlessdata/datapackage-go/datapackage"

	"github.com/McNamara84/ernie-sub013/datacite"
)

// NewManifest builds a frictionless data-package manifest describing an
// accepted submission. The manifest carries the package-level metadata
// (title, keywords, licenses, contributors) so downstream consumers can
// work with the submission without decoding the full resource record.
func NewManifest(resource datacite.Resource) (*datapackage.Package, error) {
	contributors := make([]any, 0, len(resource.Authors))
	for _, author := range resource.Authors {
		contributor := map[string]any{"role": "author"}
		if author.Type == datacite.AgentTypeInstitution {
			contributor["title"] = author.InstitutionName
		} else {
			title := author.LastName
			if author.FirstName != "" {
				title = author.FirstName + " " + author.LastName
			}
			contributor["title"] = title
			if author.Email != "" {
				contributor["email"] = author.Email
			}
		}
		contributors = append(contributors, contributor)
	}

	keywords := make([]any, 0, len(resource.FreeKeywords))
	for _, keyword := range resource.FreeKeywords {
		keywords = append(keywords, keyword)
	}

	licenses := make([]any, 0, len(resource.Licenses))
	for _, license := range resource.Licenses {
		licenses = append(licenses, map[string]any{"name": license})
	}

	var title string
	for _, entry := range resource.Titles {
		if entry.TitleType == "main-title" {
			title = entry.Title
			break
		}
	}

	descriptor := map[string]any{
		"name":    "submission",
		"title":   title,
		"created": time.Now().Format(time.RFC3339),
		"profile": "data-package",
		"resources": []any{
			map[string]any{
				"name":   "metadata",
				"path":   "metadata.json",
				"format": "json",
			},
		},
	}
	if len(contributors) > 0 {
		descriptor["contributors"] = contributors
	}
	if len(keywords) > 0 {
		descriptor["keywords"] = keywords
	}
	if len(licenses) > 0 {
		descriptor["licenses"] = licenses
	}

	return datapackage.New(descriptor, ".")
}
