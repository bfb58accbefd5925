package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/McNamara84/ernie-sub013/auth"
	"github.com/McNamara84/ernie-sub013/citation"
	"github.com/McNamara84/ernie-sub013/config"
	"github.com/McNamara84/ernie-sub013/core"
	"github.com/McNamara84/ernie-sub013/datacite"
	"github.com/McNamara84/ernie-sub013/journal"
	"github.com/McNamara84/ernie-sub013/normalize"
	"github.com/McNamara84/ernie-sub013/query"
	"github.com/McNamara84/ernie-sub013/registries"
	"github.com/McNamara84/ernie-sub013/uploads"
	"github.com/McNamara84/ernie-sub013/validate"
)

// This type implements the CurationService interface, providing the REST
// surface for curating and publishing scholarly-dataset metadata.
type prototype struct {
	// name of the service
	Name string
	// service version identifier
	Version string
	// time which the service was started
	StartTime time.Time
	// port on which the service currently runs
	Port int
	// router for REST endpoints
	Router *mux.Router
	// API wrapper
	API huma.API
	// HTTP server.
	Server *http.Server
	// resolver backing the curation query builder
	Resolver *query.Resolver
	// client for the DataCite registry (nil when not configured)
	Registry *registries.DataCiteRegistry
}

// authorize clients for the curation service, returning the caller's user
// name and an error describing any issue encountered
func authorize(authorizationHeader string) (string, error) {
	user, err := auth.Authorize(authorizationHeader)
	if err != nil {
		return "", huma.Error401Unauthorized(err.Error())
	}
	return user, nil
}

type ServiceInfoOutput struct {
	Body ServiceInfoResponse `doc:"information about the service itself"`
}

// handler method for root (no authorization needed for this one)
func (service *prototype) getRoot(ctx context.Context,
	input *struct{}) (*ServiceInfoOutput, error) {

	slog.Info("Querying root endpoint...")
	return &ServiceInfoOutput{
		Body: ServiceInfoResponse{
			Name:          service.Name,
			Version:       service.Version,
			Uptime:        int(core.Uptime()),
			Documentation: "/docs",
		},
	}, nil
}

type ResourceTypesOutput struct {
	Body []ResourceTypeResponse `doc:"The list of available resource types"`
}

// handler method for the resource-type reference list (no authorization:
// the list is public and consumed by the curation query builder)
func (service *prototype) getResourceTypes(ctx context.Context,
	input *struct{}) (*ResourceTypesOutput, error) {

	slog.Info("Querying resource types...")
	output := &ResourceTypesOutput{
		Body: make([]ResourceTypeResponse, 0),
	}
	for _, entry := range config.Vocabularies.ResourceTypes {
		output.Body = append(output.Body, ResourceTypeResponse{
			Id:   entry.Id,
			Name: entry.Name,
			Slug: entry.Slug,
		})
	}
	return output, nil
}

type SubmissionOutput struct {
	Body   SubmissionResponse `doc:"The accepted submission's identifiers, or the validation errors"`
	Status int
}

// handler method for submitting a resource for curation
func (service *prototype) createResource(ctx context.Context,
	input *struct {
		Authorization string          `header:"Authorization" doc:"Authorization header with fernet bearer token"`
		Body          json.RawMessage `doc:"The raw nested submission payload" contentType:"application/json"`
		ContentType   string          `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*SubmissionOutput, error) {

	user, err := authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(input.Body, &raw); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	resource := normalize.Submission(raw)
	if errs := validate.Resource(resource); errs.Any() {
		failure := validate.NewFailureResponse(errs)
		return &SubmissionOutput{
			Body: SubmissionResponse{
				Success: false,
				Message: failure.Message,
				Errors:  failure.Errors,
			},
			Status: http.StatusUnprocessableEntity,
		}, nil
	}

	record, err := service.recordSubmission(user, "curated", resource)
	if err != nil {
		return nil, err
	}
	return &SubmissionOutput{
		Body: SubmissionResponse{
			Success: true,
			Id:      record.Id.String(),
			Doi:     record.DOI,
		},
		Status: http.StatusCreated,
	}, nil
}

// records an accepted submission in the curation journal, attaching a
// data-package manifest where one can be built
func (service *prototype) recordSubmission(user, origin string,
	resource datacite.Resource) (journal.Record, error) {

	record := journal.Record{
		Id:          uuid.New(),
		User:        user,
		DOI:         resource.DOI,
		SubmittedAt: time.Now(),
		Origin:      origin,
		Resource:    resource,
	}
	manifest, err := journal.NewManifest(resource)
	if err != nil {
		// the record is still stored; the manifest is best-effort
		slog.Error(fmt.Sprintf("Couldn't build a manifest: %s", err.Error()))
	} else {
		record.Manifest = manifest
	}
	if err := journal.RecordSubmission(record); err != nil {
		return journal.Record{}, err
	}
	slog.Info(fmt.Sprintf("Recorded %s submission %s", origin, record.Id.String()))
	return record, nil
}

type RecordOutput struct {
	Body RecordResponse `doc:"The journaled record for the requested submission"`
}

// handler method for fetching a journaled submission
func (service *prototype) getResource(ctx context.Context,
	input *struct {
		Authorization string    `header:"Authorization" doc:"Authorization header with fernet bearer token"`
		Id            uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the requested submission"`
	}) (*RecordOutput, error) {

	_, err := authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	record, err := journal.Submission(input.Id)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &RecordOutput{
		Body: RecordResponse{
			Id:          record.Id.String(),
			User:        record.User,
			Doi:         record.DOI,
			SubmittedAt: record.SubmittedAt,
			Origin:      record.Origin,
			Resource:    record.Resource,
		},
	}, nil
}

type CitationOutput struct {
	Body CitationResponse `doc:"The formatted citation for the requested submission"`
}

// handler method for rendering a submission's citation
func (service *prototype) getCitation(ctx context.Context,
	input *struct {
		Authorization string    `header:"Authorization" doc:"Authorization header with fernet bearer token"`
		Id            uuid.UUID `path:"id" doc:"the UUID for the requested submission"`
	}) (*CitationOutput, error) {

	_, err := authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	record, err := journal.Submission(input.Id)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &CitationOutput{
		Body: CitationResponse{
			Citation: citation.Build(citation.FromResource(record.Resource,
				config.Service.Publisher)),
		},
	}, nil
}

type CurationQueryOutput struct {
	Body CurationQueryResponse `doc:"The flattened curation query for the requested submission"`
}

// handler method for building the curation query string of a submission
func (service *prototype) getCurationQuery(ctx context.Context,
	input *struct {
		Authorization string    `header:"Authorization" doc:"Authorization header with fernet bearer token"`
		Id            uuid.UUID `path:"id" doc:"the UUID for the requested submission"`
	}) (*CurationQueryOutput, error) {

	_, err := authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	record, err := journal.Submission(input.Id)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}
	return &CurationQueryOutput{
		Body: CurationQueryResponse{
			Params: query.BuildCurationQuery(ctx, record.Resource, service.Resolver),
		},
	}, nil
}

type DOIValidationOutput struct {
	Body DOIValidationResponse `doc:"The metadata registered for the requested DOI"`
}

// handler method for resolving a DOI against the registry
func (service *prototype) validateDoi(ctx context.Context,
	input *struct {
		Authorization string               `header:"Authorization" doc:"Authorization header with fernet bearer token"`
		Body          DOIValidationRequest `doc:"The DOI to resolve"`
		ContentType   string               `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*DOIValidationOutput, error) {

	_, err := authorize(input.Authorization)
	if err != nil {
		return nil, err
	}
	if service.Registry == nil {
		return nil, huma.Error503ServiceUnavailable("No DOI registry is configured")
	}

	slog.Info(fmt.Sprintf("Resolving DOI %s...", input.Body.Doi))
	metadata, err := service.Registry.ResolveDOI(ctx, input.Body.Doi)
	if err != nil {
		switch err.(type) {
		case *registries.DOINotFoundError, *registries.InvalidDOIError:
			return &DOIValidationOutput{
				Body: DOIValidationResponse{Valid: false},
			}, nil
		default:
			return nil, huma.Error502BadGateway(err.Error())
		}
	}
	return &DOIValidationOutput{
		Body: DOIValidationResponse{
			Valid:    true,
			Metadata: metadata,
		},
	}, nil
}

type UploadOutput struct {
	Body   UploadResponse `doc:"The accepted upload's identifiers, or a coded upload error"`
	Status int
}

// handler method for uploading a DataCite XML document
func (service *prototype) uploadXml(ctx context.Context,
	input *struct {
		Authorization string `header:"Authorization" doc:"Authorization header with fernet bearer token"`
		ContentType   string `header:"Content-Type" doc:"Content-Type header (must be an XML type)"`
		Filename      string `query:"filename" doc:"(Optional) the name of the uploaded file, for logging"`
		RawBody       []byte `doc:"The XML document" contentType:"application/xml"`
	}) (*UploadOutput, error) {

	user, err := authorize(input.Authorization)
	if err != nil {
		return nil, err
	}

	reject := func(uploadErr *uploads.UploadError) (*UploadOutput, error) {
		slog.Warn("Rejecting XML upload",
			"filename", input.Filename,
			"user", user,
			"category", string(uploadErr.Category),
			"code", string(uploadErr.Code),
			"field", uploadErr.Field)
		return &UploadOutput{
			Body:   UploadResponse{Success: false, Error: uploadErr},
			Status: http.StatusUnprocessableEntity,
		}, nil
	}

	if !strings.Contains(input.ContentType, "xml") {
		return reject(&uploads.UploadError{
			Category: uploads.CategoryFile,
			Code:     uploads.CodeWrongType,
		})
	}

	raw, uploadErr := uploads.Parse(input.RawBody, config.Service.MaxUploadBytes)
	if uploadErr != nil {
		return reject(uploadErr)
	}

	resource := normalize.Submission(raw)
	if errs := validate.Resource(resource); errs.Any() {
		field, row := firstViolation(errs)
		return reject(&uploads.UploadError{
			Category:   uploads.CategoryMetadata,
			Code:       uploads.CodeInvalid,
			Field:      field,
			Row:        row,
			Identifier: resource.DOI,
		})
	}

	record, err := service.recordSubmission(user, "uploaded", resource)
	if err != nil {
		return nil, err
	}
	return &UploadOutput{
		Body: UploadResponse{
			Success: true,
			Id:      record.Id.String(),
			Doi:     record.DOI,
		},
		Status: http.StatusCreated,
	}, nil
}

// picks the first violation (by field path order) and extracts its row
// index, if the path has one
func firstViolation(errs validate.Errors) (string, int) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	field := fields[0]
	row := 0
	if parts := strings.Split(field, "."); len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			row = n
		}
	}
	return field, row
}

// constructs a metadata curation service given our configuration
func NewCurationService() (CurationService, error) {

	// validate our configuration
	if len(config.Vocabularies.ResourceTypes) == 0 {
		return nil, fmt.Errorf("No resource types were specified.")
	}
	if config.Service.Secret == "" {
		return nil, fmt.Errorf("No service secret was specified.")
	}

	service := new(prototype)
	service.Name = "ERNIE metadata curation service"
	service.Version = core.Version
	service.Port = -1

	if _, ok := config.Registries["datacite"]; ok {
		registry, err := registries.NewDataCiteRegistry()
		if err != nil {
			return nil, err
		}
		service.Registry = registry
	}

	// set up routing
	service.Router = mux.NewRouter()
	service.API = humamux.New(service.Router, huma.DefaultConfig(service.Name, service.Version))
	api := service.API
	huma.Get(api, "/", service.getRoot)

	// API v1
	huma.Get(api, "/api/v1/resource-types/ernie", service.getResourceTypes)
	huma.Post(api, "/api/v1/resources", service.createResource)
	huma.Get(api, "/api/v1/resources/{id}", service.getResource)
	huma.Get(api, "/api/v1/resources/{id}/citation", service.getCitation)
	huma.Get(api, "/api/v1/resources/{id}/curation-query", service.getCurationQuery)
	huma.Post(api, "/api/validate-doi", service.validateDoi)
	huma.Post(api, "/api/v1/uploads/xml", service.uploadXml)

	return service, nil
}

// starts the curation service
func (service *prototype) Start(port int) error {
	slog.Info(fmt.Sprintf("Starting %s on port %d...", service.Name, port))
	slog.Info(fmt.Sprintf("(Accepting up to %d connections)", config.Service.MaxConnections))

	service.StartTime = time.Now()

	// create a listener that limits the number of incoming connections
	service.Port = port
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return err
	}
	defer listener.Close()
	listener = netutil.LimitListener(listener, config.Service.MaxConnections)

	// the query builder resolves resource types against our own reference
	// list endpoint, the same way browser clients do
	service.Resolver = query.NewResolver(
		fmt.Sprintf("http://localhost:%d/api/v1/resource-types/ernie", port),
		http.Client{Timeout: 5 * time.Second})

	// open the curation journal
	err = journal.Init()
	if err != nil {
		return err
	}

	// start the server
	service.Server = &http.Server{
		Handler: service.Router}
	err = service.Server.Serve(listener)

	// we don't report the server closing as an error
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

// gracefully shuts down the service without interrupting active connections
func (service *prototype) Shutdown(ctx context.Context) error {
	journal.Finalize()
	if service.Server != nil {
		return service.Server.Shutdown(ctx)
	}
	return nil
}

// closes down the service abruptly, freeing all resources
func (service *prototype) Close() {
	journal.Finalize()
	if service.Server != nil {
		service.Server.Close()
	}
}
