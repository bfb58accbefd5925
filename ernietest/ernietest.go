// This package contains testing utilities for the ERNIE curation service.
package ernietest

import (
	"log/slog"
	"os"

	"github.com/fernet/fernet-go"
)

// Enables DEBUG log messages for ERNIE's structured log (slog).
func EnableDebugLogging() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelDebug)
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
}

// GenerateSecret mints a fresh fernet key for use as a test service secret.
func GenerateSecret() string {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		panic(err)
	}
	return key.Encode()
}

// ValidSubmission returns a minimal raw submission payload that passes
// every cross-field check. Tests mutate the returned map to provoke the
// violation they are interested in.
func ValidSubmission() map[string]any {
	return map[string]any{
		"doi":          "10.5880/fidgeo.2025.072",
		"year":         2025,
		"resourceType": "Dataset",
		"language":     "en",
		"titles": []any{
			map[string]any{"title": "A Test Dataset", "titleType": "Main Title"},
		},
		"licenses": []any{"CC-BY-4.0"},
		"authors": []any{
			map[string]any{
				"type":      "person",
				"firstName": "Holger",
				"lastName":  "Ehrmann",
				"affiliations": []any{
					map[string]any{"value": "GFZ Potsdam", "rorId": "https://ror.org/04z8jg394"},
				},
			},
		},
		"descriptions": []any{
			map[string]any{"descriptionType": "Abstract", "description": "An abstract."},
		},
	}
}
