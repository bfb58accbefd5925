package normalize

// These tests verify the normalization of raw submission payloads into
// resources.
import (
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/McNamara84/ernie-sub013/config"
	"github.com/McNamara84/ernie-sub013/datacite"
)

// a valid configuration (the vocabularies fall back to their defaults)
const normalizeConfig string = `
service:
  port: 8080
  max_connections: 100
  data_dir: /tmp
  secret: cGxlYXNlLWRvbid0LXVzZS10aGlzLWtleS0hISEhISE=
`

// This runs setup, runs all tests, and does breakdown.
func TestMain(m *testing.M) {
	err := config.Init([]byte(normalizeConfig))
	if err != nil {
		log.Panicf("Couldn't initialize configuration: %s", err)
	}
	os.Exit(m.Run())
}

// tests whether title types are resolved against the title type vocabulary,
// with unknown terms falling back to their kebab form
func TestTitleTypeSlug(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("main-title", TitleTypeSlug("Main Title"))
	assert.Equal("main-title", TitleTypeSlug("MainTitle"))
	assert.Equal("main-title", TitleTypeSlug("main-title"))
	assert.Equal("alternative-title", TitleTypeSlug("Alternative Title"))
	assert.Equal("some-unknown-type", TitleTypeSlug("Some Unknown Type"))
}

// tests whether titles without text are dropped and types are resolved
func TestTitles(t *testing.T) {
	assert := assert.New(t)

	titles := Titles([]any{
		map[string]any{"title": "  A Dataset  ", "titleType": "Main Title"},
		map[string]any{"title": "", "titleType": "Subtitle"},
		"not an object",
		map[string]any{"title": "Ein Datensatz", "titleType": "Translated Title"},
	})
	assert.Equal(2, len(titles))
	assert.Equal(datacite.Title{Title: "A Dataset", TitleType: "main-title"}, titles[0])
	assert.Equal(datacite.Title{Title: "Ein Datensatz", TitleType: "translated-title"}, titles[1])
}

// tests whether licenses accept both bare strings and objects, and are
// deduplicated first-occurrence-first
func TestLicenses(t *testing.T) {
	assert := assert.New(t)

	licenses := Licenses([]any{
		"CC-BY-4.0",
		map[string]any{"identifier": "MIT"},
		map[string]any{"id": "CC0-1.0"},
		"CC-BY-4.0",
		"",
	})
	assert.Equal([]string{"CC-BY-4.0", "MIT", "CC0-1.0"}, licenses)
}

// tests whether affiliations are deduplicated by the composite
// (value, rorId) key, first occurrence winning
func TestAffiliationsDeduplicate(t *testing.T) {
	assert := assert.New(t)

	affiliations := Affiliations([]any{
		map[string]any{"value": "GFZ Potsdam", "rorId": "https://ror.org/04z8jg394"},
		map[string]any{"value": "GFZ Potsdam", "rorId": "https://ror.org/04z8jg394"},
		// same name, different ROR id: a distinct affiliation
		map[string]any{"value": "GFZ Potsdam", "rorId": ""},
		// matching is case-sensitive
		map[string]any{"value": "gfz potsdam", "rorId": "https://ror.org/04z8jg394"},
		map[string]any{"value": ""},
	})
	assert.Equal(3, len(affiliations))
	assert.Equal("GFZ Potsdam", affiliations[0].Value)
	assert.Equal("https://ror.org/04z8jg394", affiliations[0].RorID)
	assert.Equal("", affiliations[1].RorID)
	assert.Equal("gfz potsdam", affiliations[2].Value)
}

// tests whether email and website are cleared for persons that are not the
// point of contact
func TestAuthorsContactGating(t *testing.T) {
	assert := assert.New(t)

	authors := Authors([]any{
		map[string]any{
			"type": "person", "firstName": "Ada", "lastName": "Lovelace",
			"email": "ada@example.com", "website": "https://example.com/ada",
		},
		map[string]any{
			"type": "person", "firstName": "Grace", "lastName": "Hopper",
			"isContact": "1", "email": "grace@example.com",
			"website": "https://example.com/grace",
		},
	})
	assert.Equal(2, len(authors))
	assert.False(authors[0].IsContact)
	assert.Equal("", authors[0].Email)
	assert.Equal("", authors[0].Website)
	assert.True(authors[1].IsContact)
	assert.Equal("grace@example.com", authors[1].Email)
	assert.Equal("https://example.com/grace", authors[1].Website)
}

// tests whether incomplete author entries stay in place for the validator
// while non-object entries are dropped, and whether missing positions fall
// back to the list index
func TestAuthorsKeepIncompleteEntries(t *testing.T) {
	assert := assert.New(t)

	authors := Authors([]any{
		map[string]any{"type": "person", "firstName": "Ada"},
		42,
		map[string]any{"type": "institution"},
	})
	assert.Equal(2, len(authors))
	assert.Equal("", authors[0].LastName)
	assert.Equal(0, authors[0].Position)
	assert.Equal(datacite.AgentTypeInstitution, authors[1].Type)
	assert.Equal("", authors[1].InstitutionName)
	assert.Equal(1, authors[1].Position)
}

// tests whether the person/institution discriminator is inferred for
// entries that don't state one
func TestAuthorsInferType(t *testing.T) {
	assert := assert.New(t)

	authors := Authors([]any{
		map[string]any{"institutionName": "GFZ Potsdam"},
		map[string]any{"lastName": "Lovelace"},
	})
	assert.Equal(datacite.AgentTypeInstitution, authors[0].Type)
	assert.Equal("GFZ Potsdam", authors[0].InstitutionName)
	assert.Equal(datacite.AgentTypePerson, authors[1].Type)
}

// tests whether contributor roles are trimmed and empty roles dropped
func TestContributors(t *testing.T) {
	assert := assert.New(t)

	contributors := Contributors([]any{
		map[string]any{
			"type": "person", "lastName": "Curie",
			"roles": []any{" DataCurator ", "", "Researcher"},
		},
	})
	assert.Equal(1, len(contributors))
	assert.Equal([]string{"DataCurator", "Researcher"}, contributors[0].Roles)
}

// tests whether descriptions with an empty type or empty text are dropped
func TestDescriptions(t *testing.T) {
	assert := assert.New(t)

	descriptions := Descriptions([]any{
		map[string]any{"descriptionType": "Abstract", "description": "An abstract."},
		map[string]any{"descriptionType": "", "description": "Orphaned text."},
		map[string]any{"descriptionType": "Methods", "description": ""},
	})
	assert.Equal(1, len(descriptions))
	assert.Equal("abstract", descriptions[0].DescriptionType)
}

// tests whether free keywords are deduplicated and empties dropped
func TestFreeKeywords(t *testing.T) {
	assert := assert.New(t)

	keywords := FreeKeywords([]any{"seismology", "", "geodesy", "seismology"})
	assert.Equal([]string{"seismology", "geodesy"}, keywords)
}

// tests whether related identifiers without a stated type are classified,
// and DOIs reduced to their bare form
func TestRelatedIdentifiers(t *testing.T) {
	assert := assert.New(t)

	related := RelatedIdentifiers([]any{
		map[string]any{
			"identifier":   "https://doi.org/10.5880/fidgeo.2021.010",
			"relationType": "IsSupplementTo",
		},
		map[string]any{
			"identifier":     "https://example.com/dataset",
			"identifierType": "URL",
			"relationType":   "References",
		},
		map[string]any{"identifier": "", "relationType": "Cites"},
	})
	assert.Equal(2, len(related))
	assert.Equal("10.5880/fidgeo.2021.010", related[0].Identifier)
	assert.Equal("DOI", related[0].IdentifierType)
	assert.Equal("URL", related[1].IdentifierType)
}

// tests whether a full submission is normalized end to end, including the
// DOI reduction at the top level
func TestSubmission(t *testing.T) {
	assert := assert.New(t)

	resource := Submission(map[string]any{
		"doi":          "https://doi.org/10.5880/fidgeo.2025.072",
		"year":         float64(2025), // as decoded from JSON
		"resourceType": "Dataset",
		"titles": []any{
			map[string]any{"title": "A Dataset", "titleType": "Main Title"},
		},
		"licenses": []any{"CC-BY-4.0"},
		"authors": []any{
			map[string]any{"type": "person", "lastName": "Ehrmann"},
		},
	})
	assert.Equal("10.5880/fidgeo.2025.072", resource.DOI)
	assert.Equal(2025, resource.Year)
	assert.Equal(1, len(resource.Titles))
	assert.Equal("main-title", resource.Titles[0].TitleType)
	assert.Equal([]string{"CC-BY-4.0"}, resource.Licenses)
	assert.Equal(1, len(resource.Authors))
	// collections absent from the payload normalize to empty, not nil
	assert.NotNil(resource.Contributors)
	assert.Equal(0, len(resource.Contributors))
}
