package services

import (
	"context"
	"time"

	"github.com/McNamara84/ernie-sub013/datacite"
	"github.com/McNamara84/ernie-sub013/registries"
	"github.com/McNamara84/ernie-sub013/uploads"
	"github.com/McNamara84/ernie-sub013/validate"
)

// this type encodes a JSON object for responding to root queries
type ServiceInfoResponse struct {
	Name          string `json:"name" example:"ERNIE" doc:"The name of the service API"`
	Version       string `json:"version" example:"1.0.0" doc:"The version string (major.minor.patch)"`
	Uptime        int    `json:"uptime" example:"345600" doc:"The time the service has been up (seconds)"`
	Documentation string `json:"documentation" example:"/docs" doc:"The OpenAPI documentation endpoint"`
}

// a resource type entry as served to curation clients (GET)
type ResourceTypeResponse struct {
	Id   int    `json:"id" example:"1" doc:"the numeric id of the resource type"`
	Name string `json:"name" example:"Dataset" doc:"the display name of the resource type"`
	Slug string `json:"slug" example:"dataset" doc:"the canonical slug of the resource type"`
}

// a response for a resource submission (POST); carries either the accepted
// submission's identifiers or the field-keyed validation errors
type SubmissionResponse struct {
	// true if the submission was accepted
	Success bool `json:"success"`
	// UUID assigned to the accepted submission
	Id string `json:"id,omitempty"`
	// the bare DOI of the accepted resource
	Doi string `json:"doi,omitempty"`
	// a summary of a validation failure
	Message string `json:"message,omitempty"`
	// all validation errors, keyed by dotted field path
	Errors validate.Errors `json:"errors,omitempty"`
}

// a response for a journaled submission query (GET)
type RecordResponse struct {
	Id          string            `json:"id"`
	User        string            `json:"user"`
	Doi         string            `json:"doi,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
	Origin      string            `json:"origin"`
	Resource    datacite.Resource `json:"resource"`
}

// a response for a citation query (GET)
type CitationResponse struct {
	Citation string `json:"citation" doc:"the formatted citation string"`
}

// a response for a curation query-string build (GET)
type CurationQueryResponse struct {
	Params map[string]string `json:"params" doc:"flattened curation query parameters"`
}

// the body of a DOI validation request (POST)
type DOIValidationRequest struct {
	Doi string `json:"doi" example:"10.5880/fidgeo.2025.072" doc:"the DOI to resolve, bare or decorated"`
}

// a response for a DOI validation request (POST)
type DOIValidationResponse struct {
	// true if the DOI resolved at the registry
	Valid bool `json:"valid"`
	// the metadata registered for the DOI
	Metadata registries.DOIMetadata `json:"metadata"`
}

// a response for an XML upload (POST); on failure the error object carries
// the category/code of the rule that rejected the document
type UploadResponse struct {
	Success bool                 `json:"success"`
	Id      string               `json:"id,omitempty"`
	Doi     string               `json:"doi,omitempty"`
	Error   *uploads.UploadError `json:"error,omitempty"`
}

// CurationService defines the interface for our metadata curation service.
type CurationService interface {
	// Starts the service on the selected port, returning an error that indicates
	// success or failure.
	Start(port int) error
	// Gracefully shuts down the service without interrupting active connections.
	Shutdown(ctx context.Context) error
	// Closes down the service, freeing all resources.
	Close()
}
