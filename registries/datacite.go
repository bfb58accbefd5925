// This package talks to external PID registries on behalf of the curation
// service. Currently that means the DataCite REST API, which is consulted
// to resolve the metadata behind a DOI a curator wants to import.
package registries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/McNamara84/ernie-sub013/config"
	"github.com/McNamara84/ernie-sub013/identifiers"
)

// metadata resolved for a DOI from the registry
type DOIMetadata struct {
	// the bare DOI that was resolved
	DOI string `json:"doi"`
	// the main title of the registered resource
	Title string `json:"title"`
	// formatted names of the creators
	Creators []string `json:"creators"`
	// the publication year
	Year int `json:"year"`
	// the publisher of record
	Publisher string `json:"publisher"`
	// the general resource type
	ResourceType string `json:"resourceType"`
}

// DataCiteRegistry resolves DOIs against the DataCite REST API.
type DataCiteRegistry struct {
	// base URL for DOI lookups (e.g. https://api.datacite.org/dois)
	URL string
	// HTTP client used for lookups
	Client http.Client
}

// NewDataCiteRegistry constructs a registry client from the 'datacite'
// entry of the registries configuration.
func NewDataCiteRegistry() (*DataCiteRegistry, error) {
	registry, ok := config.Registries["datacite"]
	if !ok {
		return nil, &NotConfiguredError{Registry: "datacite"}
	}
	timeout := time.Duration(registry.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DataCiteRegistry{
		URL:    registry.URL,
		Client: SecureHttpClient(timeout),
	}, nil
}

// the shape of a DataCite REST API DOI document (only the attributes we
// consume)
type dataCiteDocument struct {
	Data struct {
		Attributes struct {
			DOI    string `json:"doi"`
			Titles []struct {
				Title string `json:"title"`
			} `json:"titles"`
			Creators []struct {
				Name       string `json:"name"`
				GivenName  string `json:"givenName"`
				FamilyName string `json:"familyName"`
			} `json:"creators"`
			PublicationYear int    `json:"publicationYear"`
			Publisher       string `json:"publisher"`
			Types           struct {
				ResourceTypeGeneral string `json:"resourceTypeGeneral"`
			} `json:"types"`
		} `json:"attributes"`
	} `json:"data"`
}

// ResolveDOI fetches the registered metadata for the given identifier,
// which may be decorated ('doi:...', 'https://doi.org/...').
func (registry *DataCiteRegistry) ResolveDOI(ctx context.Context,
	identifier string) (DOIMetadata, error) {

	var metadata DOIMetadata
	idType := identifiers.Detect(identifier)
	if idType != identifiers.TypeDOI {
		return metadata, &InvalidDOIError{Identifier: identifier}
	}
	doi := identifiers.Normalize(identifier, idType)

	lookupURL := strings.TrimSuffix(registry.URL, "/") + "/" + url.PathEscape(doi)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return metadata, err
	}
	req.Header.Set("Accept", "application/vnd.api+json")

	resp, err := registry.Client.Do(req)
	if err != nil {
		return metadata, &UnavailableError{Registry: "datacite", Message: err.Error()}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// pass-through (see below)
	case http.StatusNotFound:
		return metadata, &DOINotFoundError{DOI: doi}
	default:
		return metadata, &UnavailableError{
			Registry: "datacite",
			Message:  fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return metadata, err
	}
	var document dataCiteDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return metadata, err
	}

	attributes := document.Data.Attributes
	metadata.DOI = attributes.DOI
	if metadata.DOI == "" {
		metadata.DOI = doi
	}
	if len(attributes.Titles) > 0 {
		metadata.Title = attributes.Titles[0].Title
	}
	for _, creator := range attributes.Creators {
		name := creator.Name
		if name == "" && creator.FamilyName != "" {
			name = creator.FamilyName
			if creator.GivenName != "" {
				name += ", " + creator.GivenName
			}
		}
		if name != "" {
			metadata.Creators = append(metadata.Creators, name)
		}
	}
	metadata.Year = attributes.PublicationYear
	metadata.Publisher = attributes.Publisher
	metadata.ResourceType = attributes.Types.ResourceTypeGeneral
	return metadata, nil
}
