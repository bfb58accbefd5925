package config

// parameters for an external PID registry consulted during curation
// (e.g. the DataCite REST API used to resolve DOI metadata)
type registryConfig struct {
	// The base URL of the registry API.
	URL string `json:"url" yaml:"url"`
	// Request timeout in seconds (default 10).
	Timeout int `json:"timeout" yaml:"timeout"`
}
