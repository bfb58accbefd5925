package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// a type with service configuration parameters
type serviceConfig struct {
	// Port on which the service listens.
	Port int `json:"port" yaml:"port"`
	// Maximum number of allowed incoming connections.
	MaxConnections int `json:"maxConnections" yaml:"max_connections"`
	// Directory in which the submission journal lives.
	DataDirectory string `json:"dataDir" yaml:"data_dir"`
	// Base64-encoded fernet key used to verify bearer tokens.
	Secret string `json:"secret" yaml:"secret"`
	// Lifetime of bearer tokens in hours (0 disables the TTL check).
	TokenLifetime int `json:"tokenLifetime" yaml:"token_lifetime"`
	// Maximum accepted size of an uploaded XML document in bytes.
	MaxUploadBytes int64 `json:"maxUploadBytes" yaml:"max_upload_bytes"`
	// Publisher of record used when rendering citations.
	Publisher string `json:"publisher" yaml:"publisher"`
}

// global config variables
var Service serviceConfig
var Vocabularies vocabularyConfig
var Registries map[string]registryConfig

// This struct performs the unmarshalling from the YAML config file and then
// copies its fields to the globals above.
type configFile struct {
	Service      serviceConfig             `yaml:"service"`
	Vocabularies vocabularyConfig          `yaml:"vocabularies"`
	Registries   map[string]registryConfig `yaml:"registries"`
}

// This helper reads configuration data, returning an error indicating success
// or failure. All environment variables of the form ${ENV_VAR} are expanded.
func readConfig(bytes []byte) error {
	// Before we do anything else, expand any provided environment variables.
	bytes = []byte(os.ExpandEnv(string(bytes)))

	var conf configFile
	conf.Service.Port = 8080
	conf.Service.MaxConnections = 100
	conf.Service.MaxUploadBytes = 2 * 1024 * 1024
	conf.Service.Publisher = "ERNIE"
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		log.Printf("Couldn't parse configuration data: %s\n", err)
		return err
	}
	conf.Vocabularies.applyDefaults()

	// copy the config data into place
	Service = conf.Service
	Vocabularies = conf.Vocabularies
	Registries = conf.Registries

	return err
}

// This helper validates the given service parameters, returning an
// error indicating success or failure.
func validateServiceParameters(params serviceConfig) error {
	if params.Port < 0 || params.Port > 65535 {
		return fmt.Errorf("Invalid port: %d (must be 0-65535)", params.Port)
	}
	if params.MaxConnections <= 0 {
		return fmt.Errorf("Invalid maxConnections: %d (must be positive)",
			params.MaxConnections)
	}
	if params.MaxUploadBytes <= 0 {
		return fmt.Errorf("Invalid maxUploadBytes: %d (must be positive)",
			params.MaxUploadBytes)
	}
	return nil
}

// This helper validates the assembled configuration, returning an error that
// indicates success or failure.
func validateConfig() error {
	err := validateServiceParameters(Service)
	if err != nil {
		return err
	}

	// Bearer-token verification cannot work without a key.
	if Service.Secret == "" {
		return fmt.Errorf("No service secret was provided!")
	}

	// Do we have the vocabularies cross-field validation relies on?
	if len(Vocabularies.TitleTypes) == 0 {
		return fmt.Errorf("No title types were provided!")
	}
	if len(Vocabularies.ResourceTypes) == 0 {
		return fmt.Errorf("No resource types were provided!")
	}

	for name, registry := range Registries {
		if registry.URL == "" {
			return fmt.Errorf("Registry %s has no URL!", name)
		}
	}
	return nil
}

// Initializes the curation service configuration using the given YAML byte
// data.
func Init(yamlData []byte) error {

	// Read the configuration from our YAML file.
	err := readConfig(yamlData)
	if err != nil {
		return err
	}

	// Validate the configuration.
	err = validateConfig()
	return err
}
