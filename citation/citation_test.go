package citation

// These tests verify the rendering of citation strings from published
// records in both the current and the legacy shape.
import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/McNamara84/ernie-sub013/datacite"
)

// tests whether a complete record in the current shape renders fully
func TestBuildCurrentShape(t *testing.T) {
	assert := assert.New(t)

	record := Record{
		Creators: []Creator{
			{Creatorable: &Creatorable{Type: "person", GivenName: "Ada", FamilyName: "Lovelace"}},
			{Creatorable: &Creatorable{Type: "institution", Name: "GFZ Potsdam"}},
		},
		Titles: []Title{
			{Title: "Nebentitel", TitleType: "subtitle"},
			{Title: "A Test Dataset", TitleType: "main-title"},
		},
		Year:      2025,
		Publisher: "GFZ Data Services",
		DOI:       "https://doi.org/10.5880/fidgeo.2025.072",
	}
	assert.Equal("Lovelace, Ada; GFZ Potsdam (2025): A Test Dataset. "+
		"GFZ Data Services. https://doi.org/10.5880/fidgeo.2025.072",
		Build(record))
}

// tests whether a record in the legacy shape (flat name fields, the
// publication_year alias) renders identically
func TestBuildLegacyShape(t *testing.T) {
	assert := assert.New(t)

	record := Record{
		Creators: []Creator{
			{FirstName: "Ada", LastName: "Lovelace"},
			{InstitutionName: "GFZ Potsdam"},
		},
		Titles: []Title{
			{Title: "A Test Dataset", TitleType: "MainTitle"},
		},
		PublicationYear: 2025,
		Publisher:       "GFZ Data Services",
		DOI:             "10.5880/fidgeo.2025.072",
	}
	assert.Equal("Lovelace, Ada; GFZ Potsdam (2025): A Test Dataset. "+
		"GFZ Data Services. https://doi.org/10.5880/fidgeo.2025.072",
		Build(record))
}

// tests whether every missing part is replaced by its documented fallback
func TestBuildFallbacks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Unknown Creator (n.d.): Untitled. Unknown Publisher. "+
		"DOI not available", Build(Record{}))
}

// tests whether a DOI that can't be classified passes through unchanged
// behind the resolver prefix
func TestBuildUnclassifiableDoi(t *testing.T) {
	assert := assert.New(t)

	record := Record{
		Creators:  []Creator{},
		Titles:    []Title{{Title: "T", TitleType: "MainTitle"}},
		Year:      2024,
		Publisher: "P",
		DOI:       "10.1/x", // registrant code too short for a DOI
	}
	assert.Equal("Unknown Creator (2024): T. P. https://doi.org/10.1/x",
		Build(record))
}

// tests whether single-part person names render without the separator
func TestBuildPartialNames(t *testing.T) {
	assert := assert.New(t)

	record := Record{
		Creators: []Creator{
			{Creatorable: &Creatorable{Type: "person", FamilyName: "Lovelace"}},
			{Creatorable: &Creatorable{Type: "person", GivenName: "Grace"}},
		},
		Titles: []Title{{Title: "T", TitleType: "main-title"}},
		Year:   2024,
	}
	assert.Equal("Lovelace; Grace (2024): T. Unknown Publisher. DOI not available",
		Build(record))
}

// tests whether the first title is used when no main title exists
func TestBuildTitleFallback(t *testing.T) {
	assert := assert.New(t)

	record := Record{
		Titles: []Title{{Title: "Nur ein Nebentitel", TitleType: "subtitle"}},
		Year:   2024,
	}
	assert.Equal("Unknown Creator (2024): Nur ein Nebentitel. Unknown Publisher. "+
		"DOI not available", Build(record))
}

// tests whether curated resources map onto the current record shape
func TestFromResource(t *testing.T) {
	assert := assert.New(t)

	resource := datacite.Resource{
		DOI:  "10.5880/fidgeo.2025.072",
		Year: 2025,
		Titles: []datacite.Title{
			{Title: "A Test Dataset", TitleType: "main-title"},
		},
		Authors: []datacite.Author{
			{Type: datacite.AgentTypePerson, FirstName: "Ada", LastName: "Lovelace"},
			{Type: datacite.AgentTypeInstitution, InstitutionName: "GFZ Potsdam"},
		},
	}
	record := FromResource(resource, "GFZ Data Services")
	assert.Equal("Lovelace, Ada; GFZ Potsdam (2025): A Test Dataset. "+
		"GFZ Data Services. https://doi.org/10.5880/fidgeo.2025.072",
		Build(record))
}
