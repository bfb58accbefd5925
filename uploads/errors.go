package uploads

import (
	"fmt"
)

// the broad area an upload failure belongs to
type Category string

const (
	// the uploaded file itself was unacceptable
	CategoryFile Category = "file"
	// the file was accepted but its XML could not be parsed
	CategoryXML Category = "xml"
	// the XML parsed but the metadata it carries failed validation
	CategoryMetadata Category = "metadata"
)

// a machine-readable code identifying the exact rule that failed. Codes are
// attached at the point the rule fails, never inferred from message text.
type Code string

const (
	CodeFileMissing  Code = "file_missing"
	CodeFileTooLarge Code = "file_too_large"
	CodeWrongType    Code = "wrong_file_type"
	CodeMalformedXML Code = "malformed_xml"
	CodeInvalid      Code = "invalid_metadata"
)

// This error type carries everything a client needs to pinpoint an upload
// failure: the category and code of the failed rule, plus the field, row
// and identifier involved where applicable.
type UploadError struct {
	Category   Category `json:"category"`
	Code       Code     `json:"code"`
	Field      string   `json:"field,omitempty"`
	Row        int      `json:"row,omitempty"`
	Identifier string   `json:"identifier,omitempty"`
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("Upload failed (%s/%s)", e.Category, e.Code)
}
