package datacite

/*
  - Represents a curated metadata record for a scholarly dataset.

The field vocabulary follows the DataCite metadata schema:

https://support.datacite.org/docs/datacite-metadata-schema-v44-mandatory-properties

A resource is constructed fresh from each submission, normalized in place,
validated, and handed to the journal. Required fields are:
- at least one title of type 'main-title'
- at least one description of type 'abstract'
- one or more authors
- one or more licenses
*/
type Resource struct {
	/*
	 * The DOI registered (or to be registered) for the resource, in bare
	 * '10.xxxx/suffix' form.
	 */
	DOI string `json:"doi"`
	/*
	 * The publication year of the resource.
	 */
	Year int `json:"year"`
	/*
	 * The general resource type, using values from the DataCite
	 * resourceTypeGeneral field.
	 */
	ResourceType string `json:"resourceType"`
	/*
	 * The version of the resource. This must be an absolute version, not a
	 * relative version like 'latest'.
	 */
	Version string `json:"version"`
	/*
	 * The primary language of the resource, using IETF BCP-47 notation.
	 */
	Language string `json:"language"`
	/*
	 * One or more titles for the resource.
	 */
	Titles []Title `json:"titles"`
	/*
	 * Usage licenses for the resource, given as SPDX license identifiers.
	 * Deduplicated, order-preserving.
	 */
	Licenses []string `json:"licenses"`
	/*
	 * The people and/or institutions who created the resource.
	 */
	Authors []Author `json:"authors"`
	/*
	 * Additional people and/or institutions who contributed to the resource,
	 * each with one or more DataCite/CRediT contributor roles.
	 */
	Contributors []Contributor `json:"contributors"`
	/*
	 * Textual descriptions of the resource (abstract, methods, ...).
	 */
	Descriptions []Description `json:"descriptions"`
	/*
	 * Lifecycle dates for the resource.
	 */
	Dates []DateEntry `json:"dates"`
	/*
	 * Uncontrolled keywords supplied by the curator.
	 */
	FreeKeywords []string `json:"freeKeywords"`
	/*
	 * Keywords drawn from controlled vocabularies (e.g. NASA GCMD).
	 */
	ControlledKeywords []ControlledKeyword `json:"controlledKeywords"`
	/*
	 * Geographic and temporal coverage of the resource.
	 */
	SpatialTemporalCoverages []SpatialTemporalCoverage `json:"spatialTemporalCoverages"`
	/*
	 * Other persistent identifiers related to the resource, with DataCite
	 * relation types.
	 */
	RelatedIdentifiers []RelatedIdentifier `json:"relatedIdentifiers"`
	/*
	 * Funding sources for the resource.
	 */
	FundingReferences []FundingReference `json:"fundingReferences"`
	/*
	 * EPOS Multi-Scale Laboratories in which the data was produced.
	 */
	MSLLaboratories []Laboratory `json:"mslLaboratories"`
}

/*
  - Represents the title or name of a resource and the type of that title.

The 'titleType' field holds a kebab-case slug resolved against the title type
vocabulary ('main-title', 'alternative-title', 'subtitle', ...).
*/
type Title struct {
	// a string used as a title for the resource
	Title string `json:"title"`
	// the kebab-case slug identifying the kind of title
	TitleType string `json:"titleType"`
}

// agent type discriminators for authors and contributors
const (
	AgentTypePerson      = "person"
	AgentTypeInstitution = "institution"
)

/*
  - Represents an organization with which an author or contributor is
    affiliated.

Where available, the affiliation carries a Research Organization Registry
identifier (https://ror.org).
*/
type Affiliation struct {
	// the display name of the organization
	Value string `json:"value"`
	// the ROR identifier for the organization, if known
	RorID string `json:"rorId,omitempty"`
}

/*
  - Represents a creator of the resource.

Authors are a tagged union on 'type': a person requires 'lastName', an
institution requires 'institutionName'. Contact persons ('isContact' true)
must carry a non-empty email; for all other persons the email and website
fields are cleared during normalization.
*/
type Author struct {
	// either 'person' or 'institution'
	Type string `json:"type"`
	// ORCID identifier for a person (https://orcid.org)
	ORCID string `json:"orcid,omitempty"`
	// the given name(s) of a person
	FirstName string `json:"firstName,omitempty"`
	// the family name(s) of a person
	LastName string `json:"lastName,omitempty"`
	// the full (unabbreviated) name of an institution
	InstitutionName string `json:"institutionName,omitempty"`
	// marks a person as the point of contact for the resource
	IsContact bool `json:"isContact,omitempty"`
	// contact email, only retained for contact persons
	Email string `json:"email,omitempty"`
	// contact website, only retained for contact persons
	Website string `json:"website,omitempty"`
	// ordering of the author within the author list
	Position int `json:"position"`
	// organizations with which the author is affiliated
	Affiliations []Affiliation `json:"affiliations"`
}

/*
  - Represents a contributor to the resource.

Contributors follow the same person/institution union as authors and carry
one or more roles from the DataCite and CRediT contributor role vocabularies:

https://support.datacite.org/docs/datacite-metadata-schema-v44-recommended-and-optional-properties#7a-contributortype

https://credit.niso.org
*/
type Contributor struct {
	// either 'person' or 'institution'
	Type string `json:"type"`
	// ORCID identifier for a person
	ORCID string `json:"orcid,omitempty"`
	// the given name(s) of a person
	FirstName string `json:"firstName,omitempty"`
	// the family name(s) of a person
	LastName string `json:"lastName,omitempty"`
	// the full name of an institution
	InstitutionName string `json:"institutionName,omitempty"`
	// roles played by the contributor when working on the resource
	Roles []string `json:"roles"`
	// ordering of the contributor within the contributor list
	Position int `json:"position"`
	// organizations with which the contributor is affiliated
	Affiliations []Affiliation `json:"affiliations"`
}

/*
 * Textual information about the resource being represented. The
 * 'descriptionType' field holds a kebab-case slug ('abstract', 'methods',
 * 'technical-info', ...).
 */
type Description struct {
	// the kebab-case slug identifying the kind of text
	DescriptionType string `json:"descriptionType"`
	// the text content of the informational element
	Description string `json:"description"`
}

/*
  - Represents an event in the lifecycle of a resource and the date (or date
    range) it occurred on.

See https://support.datacite.org/docs/datacite-metadata-schema-v44-recommended-and-optional-properties#8-date
for more information on the events.
*/
type DateEntry struct {
	// the nature of the resource-related event ('created', 'collected', ...)
	DateType string `json:"dateType"`
	// the date the event started, in YYYY-MM-DD form
	StartDate string `json:"startDate,omitempty"`
	// the date the event ended, in YYYY-MM-DD form (empty for single dates)
	EndDate string `json:"endDate,omitempty"`
	// free text with additional information about the date
	DateInformation string `json:"dateInformation,omitempty"`
}

// geometry discriminators for spatial coverage
const (
	CoverageTypePoint   = "point"
	CoverageTypeBox     = "box"
	CoverageTypePolygon = "polygon"
)

// a single vertex of a coverage polygon
type PolygonPoint struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

/*
  - Represents the geographic and temporal coverage of a resource.

The geometry is a tagged union on 'type': a point uses latMin/lonMin, a box
uses all four bounds, and a polygon requires at least three vertices.
Coordinates are kept in their submitted decimal string form.
*/
type SpatialTemporalCoverage struct {
	// one of 'point', 'box' or 'polygon'
	Type string `json:"type"`
	// coordinate bounds in decimal degrees
	LatMin string `json:"latMin,omitempty"`
	LatMax string `json:"latMax,omitempty"`
	LonMin string `json:"lonMin,omitempty"`
	LonMax string `json:"lonMax,omitempty"`
	// vertices for polygon coverages
	PolygonPoints []PolygonPoint `json:"polygonPoints,omitempty"`
	// temporal extent of the coverage
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	// IANA timezone name for the temporal extent
	Timezone string `json:"timezone,omitempty"`
	// free text describing the coverage
	Description string `json:"description,omitempty"`
}

/*
  - Represents a persistent identifier related to the resource.

The 'relationType' field takes values from the DataCite relation type
vocabulary:

https://support.datacite.org/docs/datacite-metadata-schema-v44-recommended-and-optional-properties#12b-relationtype
*/
type RelatedIdentifier struct {
	// the identifier itself, in its normalized form
	Identifier string `json:"identifier"`
	// the PID scheme of the identifier ('DOI', 'Handle', 'URL', ...)
	IdentifierType string `json:"identifierType"`
	// the relationship between the resource and the identified entity
	RelationType string `json:"relationType"`
	// ordering of the identifier within the list
	Position int `json:"position"`
}

/*
  - Represents a funding source for a resource, including the funding body
    and the grant awarded.

The 'funderName' field is required; all others are optional. Recommended
resources for funder identifiers include:
  - Research Organization Registry, http://ror.org
  - Crossref Funder Registry, https://www.crossref.org/services/funder-registry/
*/
type FundingReference struct {
	// the name of the funding body
	FunderName string `json:"funderName"`
	// persistent identifier for the funder
	FunderIdentifier string `json:"funderIdentifier,omitempty"`
	// the scheme of the funder identifier ('ROR', 'Crossref Funder ID', ...)
	FunderIdentifierType string `json:"funderIdentifierType,omitempty"`
	// code for the grant, assigned by the funder
	AwardNumber string `json:"awardNumber,omitempty"`
	// URL for the grant
	AwardURI string `json:"awardUri,omitempty"`
	// title for the grant
	AwardTitle string `json:"awardTitle,omitempty"`
}

/*
 * Represents a keyword drawn from a controlled vocabulary, e.g. a NASA GCMD
 * science keyword. The 'path' field holds the full hierarchy of the term,
 * delimited by ' > '.
 */
type ControlledKeyword struct {
	// the identifier of the term within its vocabulary
	ID string `json:"id"`
	// the display text of the term
	Text string `json:"text"`
	// the vocabulary the term belongs to ('gcmd-science-keywords', ...)
	Vocabulary string `json:"vocabulary"`
	// the full hierarchical path of the term
	Path string `json:"path,omitempty"`
}

/*
 * Represents an EPOS Multi-Scale Laboratory in which the dataset was
 * produced.
 */
type Laboratory struct {
	// the registered identifier of the laboratory
	LabID string `json:"labId"`
	// the display name of the laboratory
	Name string `json:"name"`
	// the institution hosting the laboratory
	Affiliation string `json:"affiliation,omitempty"`
}
