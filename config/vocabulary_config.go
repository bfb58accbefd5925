package config

// a resource type entry, mirroring the /api/v1/resource-types/ernie payload
type resourceTypeConfig struct {
	Id   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// a named vocabulary entry with its canonical stored slug
type vocabularyEntryConfig struct {
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// controlled vocabularies used by normalization and cross-field validation,
// all overridable via the config file
type vocabularyConfig struct {
	ResourceTypes    []resourceTypeConfig    `yaml:"resource_types"`
	TitleTypes       []vocabularyEntryConfig `yaml:"title_types"`
	DescriptionTypes []vocabularyEntryConfig `yaml:"description_types"`
	DateTypes        []string                `yaml:"date_types"`
	RelationTypes    []string                `yaml:"relation_types"`
	IdentifierTypes  []string                `yaml:"identifier_types"`
	ContributorRoles []string                `yaml:"contributor_roles"`
}

// fills in any vocabulary not given in the config file with the DataCite
// schema 4.4 defaults
func (v *vocabularyConfig) applyDefaults() {
	if len(v.ResourceTypes) == 0 {
		v.ResourceTypes = []resourceTypeConfig{
			{Id: 1, Name: "Dataset", Slug: "dataset"},
			{Id: 2, Name: "Software", Slug: "software"},
			{Id: 3, Name: "Text", Slug: "text"},
			{Id: 4, Name: "Collection", Slug: "collection"},
			{Id: 5, Name: "Model", Slug: "model"},
			{Id: 6, Name: "Image", Slug: "image"},
			{Id: 7, Name: "PhysicalObject", Slug: "physical-object"},
		}
	}
	if len(v.TitleTypes) == 0 {
		v.TitleTypes = []vocabularyEntryConfig{
			{Name: "Main Title", Slug: "main-title"},
			{Name: "Alternative Title", Slug: "alternative-title"},
			{Name: "Subtitle", Slug: "subtitle"},
			{Name: "Translated Title", Slug: "translated-title"},
			{Name: "Other", Slug: "other"},
		}
	}
	if len(v.DescriptionTypes) == 0 {
		v.DescriptionTypes = []vocabularyEntryConfig{
			{Name: "Abstract", Slug: "abstract"},
			{Name: "Methods", Slug: "methods"},
			{Name: "Series Information", Slug: "series-information"},
			{Name: "Table of Contents", Slug: "table-of-contents"},
			{Name: "Technical Info", Slug: "technical-info"},
			{Name: "Other", Slug: "other"},
		}
	}
	if len(v.DateTypes) == 0 {
		v.DateTypes = []string{
			"accepted", "available", "collected", "copyrighted", "created",
			"issued", "submitted", "updated", "valid", "withdrawn", "other",
		}
	}
	if len(v.RelationTypes) == 0 {
		v.RelationTypes = []string{
			"IsCitedBy", "Cites", "IsSupplementTo", "IsSupplementedBy",
			"IsContinuedBy", "Continues", "IsDescribedBy", "Describes",
			"HasMetadata", "IsMetadataFor", "HasVersion", "IsVersionOf",
			"IsNewVersionOf", "IsPreviousVersionOf", "IsPartOf", "HasPart",
			"IsPublishedIn", "IsReferencedBy", "References", "IsDocumentedBy",
			"Documents", "IsCompiledBy", "Compiles", "IsVariantFormOf",
			"IsOriginalFormOf", "IsIdenticalTo", "IsReviewedBy", "Reviews",
			"IsDerivedFrom", "IsSourceOf", "IsRequiredBy", "Requires",
			"IsObsoletedBy", "Obsoletes", "Collects", "IsCollectedBy",
		}
	}
	if len(v.IdentifierTypes) == 0 {
		v.IdentifierTypes = []string{
			"DOI", "Handle", "URL", "URN", "ARK", "arXiv", "bibcode", "EAN13",
			"EISSN", "IGSN", "ISBN", "ISSN", "ISTC", "LISSN", "LSID", "PMID",
			"PURL", "UPC", "w3id",
		}
	}
	if len(v.ContributorRoles) == 0 {
		v.ContributorRoles = []string{
			"ContactPerson", "DataCollector", "DataCurator", "DataManager",
			"Distributor", "Editor", "HostingInstitution", "Producer",
			"ProjectLeader", "ProjectManager", "ProjectMember",
			"RegistrationAgency", "RegistrationAuthority", "RelatedPerson",
			"Researcher", "ResearchGroup", "RightsHolder", "Sponsor",
			"Supervisor", "WorkPackageLeader", "Other",
		}
	}
}
