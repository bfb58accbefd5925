package query

// These tests verify the flattening of resources into curation query
// parameters.
import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/McNamara84/ernie-sub013/datacite"
)

// a test server serving a fixed resource-type list, counting its hits
func resourceTypeServer(hits *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			*hits++
			json.NewEncoder(w).Encode([]ResourceType{
				{Id: 1, Name: "Dataset", Slug: "dataset"},
				{Id: 2, Name: "Physical Object", Slug: "physical-object"},
			})
		}))
}

// tests whether scalar fields and bracketed collections are flattened, with
// empty values omitted entirely
func TestBuildCurationQuery(t *testing.T) {
	assert := assert.New(t)

	resource := datacite.Resource{
		DOI:      "10.5880/fidgeo.2025.072",
		Year:     2025,
		Language: "en",
		Titles: []datacite.Title{
			{Title: "A Test Dataset", TitleType: "main-title"},
		},
		Licenses: []string{"CC-BY-4.0"},
		Authors: []datacite.Author{
			{
				Type: datacite.AgentTypePerson, FirstName: "Ada",
				LastName: "Lovelace", Position: 0,
				Affiliations: []datacite.Affiliation{
					{Value: "GFZ Potsdam", RorID: "https://ror.org/04z8jg394"},
				},
			},
		},
	}
	params := BuildCurationQuery(context.Background(), resource, nil)

	assert.Equal("10.5880/fidgeo.2025.072", params["doi"])
	assert.Equal("2025", params["year"])
	assert.Equal("en", params["language"])
	assert.Equal("A Test Dataset", params["titles[0][title]"])
	assert.Equal("main-title", params["titles[0][titleType]"])
	assert.Equal("CC-BY-4.0", params["licenses[0]"])
	assert.Equal("Lovelace", params["authors[0][lastName]"])
	assert.Equal("GFZ Potsdam", params["authors[0][affiliations][0][value]"])
	assert.Equal("https://ror.org/04z8jg394", params["authors[0][affiliations][0][rorId]"])

	// empty values are omitted, not emitted as empty strings
	_, present := params["version"]
	assert.False(present)
	_, present = params["authors[0][institutionName]"]
	assert.False(present)
	// a nil resolver omits the resource type
	_, present = params["resourceType"]
	assert.False(present)
}

// tests whether contact flags and contact details appear only for contact
// authors
func TestBuildCurationQueryContacts(t *testing.T) {
	assert := assert.New(t)

	resource := datacite.Resource{
		Authors: []datacite.Author{
			{Type: datacite.AgentTypePerson, LastName: "Lovelace"},
			{
				Type: datacite.AgentTypePerson, LastName: "Hopper", Position: 1,
				IsContact: true, Email: "grace@example.com",
			},
		},
	}
	params := BuildCurationQuery(context.Background(), resource, nil)

	_, present := params["authors[0][isContact]"]
	assert.False(present)
	assert.Equal("1", params["authors[1][isContact]"])
	assert.Equal("grace@example.com", params["authors[1][email]"])
}

// tests whether related works, funding references and MSL laboratories
// travel as JSON strings rather than bracketed keys
func TestBuildCurationQueryJsonCollections(t *testing.T) {
	assert := assert.New(t)

	resource := datacite.Resource{
		RelatedIdentifiers: []datacite.RelatedIdentifier{
			{Identifier: "10.5880/a", IdentifierType: "DOI", RelationType: "Cites"},
		},
		FundingReferences: []datacite.FundingReference{
			{FunderName: "DFG", AwardNumber: "123"},
		},
	}
	params := BuildCurationQuery(context.Background(), resource, nil)

	var related []datacite.RelatedIdentifier
	assert.Nil(json.Unmarshal([]byte(params["relatedWorks"]), &related))
	assert.Equal(resource.RelatedIdentifiers, related)

	var funding []datacite.FundingReference
	assert.Nil(json.Unmarshal([]byte(params["fundingReferences"]), &funding))
	assert.Equal(resource.FundingReferences, funding)

	// empty collections are omitted
	_, present := params["mslLaboratories"]
	assert.False(present)

	_, present = params["relatedWorks[0][identifier]"]
	assert.False(present)
}

// tests whether the resolver maps resource type names to their numeric ids
func TestBuildCurationQueryResolvesResourceType(t *testing.T) {
	assert := assert.New(t)

	hits := 0
	server := resourceTypeServer(&hits)
	defer server.Close()
	resolver := NewResolver(server.URL, http.Client{})

	resource := datacite.Resource{ResourceType: "Dataset"}
	params := BuildCurationQuery(context.Background(), resource, resolver)
	assert.Equal("1", params["resourceType"])

	// an unknown type is omitted without failing the rest of the build
	resource = datacite.Resource{ResourceType: "Hologram", Language: "en"}
	params = BuildCurationQuery(context.Background(), resource, resolver)
	_, present := params["resourceType"]
	assert.False(present)
	assert.Equal("en", params["language"])
}

// tests whether the resolver caches the fetched list within the TTL window
// and refetches after a Reset
func TestResolverCaching(t *testing.T) {
	assert := assert.New(t)

	hits := 0
	server := resourceTypeServer(&hits)
	defer server.Close()
	resolver := NewResolver(server.URL, http.Client{})
	ctx := context.Background()

	id, ok := resolver.ResolveId(ctx, "Dataset")
	assert.True(ok)
	assert.Equal(1, id)
	// name, slug and kebab-case lookups all hit the cache
	id, ok = resolver.ResolveId(ctx, "physical-object")
	assert.True(ok)
	assert.Equal(2, id)
	id, ok = resolver.ResolveId(ctx, "PhysicalObject")
	assert.True(ok)
	assert.Equal(2, id)
	assert.Equal(1, hits)

	resolver.Reset()
	_, ok = resolver.ResolveId(ctx, "Dataset")
	assert.True(ok)
	assert.Equal(2, hits)
}

// tests whether concurrent callers during an in-flight fetch share a single
// request
func TestResolverInflightDeduplication(t *testing.T) {
	assert := assert.New(t)

	var hits atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				close(started)
			}
			<-release
			json.NewEncoder(w).Encode([]ResourceType{
				{Id: 1, Name: "Dataset", Slug: "dataset"},
			})
		}))
	defer server.Close()
	resolver := NewResolver(server.URL, http.Client{})
	ctx := context.Background()

	results := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := resolver.Types(ctx)
			results <- err
		}()
	}
	// let the remaining goroutines pile up behind the single blocked fetch
	<-started
	time.Sleep(50 * time.Millisecond)
	close(release)
	for i := 0; i < 4; i++ {
		assert.Nil(<-results)
	}
	assert.Equal(int32(1), hits.Load())
}

// tests whether fetch failures are reported without poisoning the cache
func TestResolverFetchFailure(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
	defer server.Close()
	resolver := NewResolver(server.URL, http.Client{})

	_, err := resolver.Types(context.Background())
	assert.NotNil(err)
	_, ok := resolver.ResolveId(context.Background(), "Dataset")
	assert.False(ok)
}
