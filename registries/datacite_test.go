package registries

// These tests verify DOI resolution against a stubbed DataCite REST API.
import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// the interesting attributes of a registered DOI, as DataCite serves them
const testDoiDocument string = `{
  "data": {
    "attributes": {
      "doi": "10.5880/fidgeo.2025.072",
      "titles": [{"title": "A Test Dataset"}],
      "creators": [
        {"name": "Lovelace, Ada"},
        {"givenName": "Grace", "familyName": "Hopper"}
      ],
      "publicationYear": 2025,
      "publisher": "GFZ Data Services",
      "types": {"resourceTypeGeneral": "Dataset"}
    }
  }
}`

// tests whether a registered DOI resolves to its metadata
func TestResolveDOI(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal("application/vnd.api+json", r.Header.Get("Accept"))
			w.Write([]byte(testDoiDocument))
		}))
	defer server.Close()
	registry := &DataCiteRegistry{URL: server.URL, Client: http.Client{}}

	metadata, err := registry.ResolveDOI(context.Background(),
		"https://doi.org/10.5880/fidgeo.2025.072")
	assert.Nil(err)
	assert.Equal("10.5880/fidgeo.2025.072", metadata.DOI)
	assert.Equal("A Test Dataset", metadata.Title)
	// a creator without a display name is assembled from its parts
	assert.Equal([]string{"Lovelace, Ada", "Hopper, Grace"}, metadata.Creators)
	assert.Equal(2025, metadata.Year)
	assert.Equal("GFZ Data Services", metadata.Publisher)
	assert.Equal("Dataset", metadata.ResourceType)
}

// tests whether identifiers that aren't DOIs are rejected before any
// request is made
func TestResolveDOIRejectsNonDois(t *testing.T) {
	assert := assert.New(t)

	registry := &DataCiteRegistry{URL: "http://localhost:1", Client: http.Client{}}
	_, err := registry.ResolveDOI(context.Background(), "11708/ABC-123")
	assert.NotNil(err)
	_, isInvalid := err.(*InvalidDOIError)
	assert.True(isInvalid)
}

// tests whether an unregistered DOI reports a not-found error
func TestResolveDOINotFound(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
	defer server.Close()
	registry := &DataCiteRegistry{URL: server.URL, Client: http.Client{}}

	_, err := registry.ResolveDOI(context.Background(), "10.5880/nope")
	assert.NotNil(err)
	_, isNotFound := err.(*DOINotFoundError)
	assert.True(isNotFound)
}

// tests whether registry outages are reported as unavailability
func TestResolveDOIUnavailable(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
	defer server.Close()
	registry := &DataCiteRegistry{URL: server.URL, Client: http.Client{}}

	_, err := registry.ResolveDOI(context.Background(), "10.5880/fidgeo.2025.072")
	assert.NotNil(err)
	_, isUnavailable := err.(*UnavailableError)
	assert.True(isUnavailable)
}
