package identifiers

// These tests verify the classification and normalization of raw
// identifier strings.
import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tests whether bare and decorated DOIs are classified as DOIs
func TestDetectDOI(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(TypeDOI, Detect("10.5880/fidgeo.2025.072"))
	assert.Equal(TypeDOI, Detect("doi:10.5880/fidgeo.2025.072"))
	assert.Equal(TypeDOI, Detect("DOI:10.5880/fidgeo.2025.072"))
	assert.Equal(TypeDOI, Detect("https://doi.org/10.5880/fidgeo.2025.072"))
	assert.Equal(TypeDOI, Detect("http://dx.doi.org/10.5880/fidgeo.2025.072"))
	assert.Equal(TypeDOI, Detect("  10.5880/fidgeo.2025.072  "))
}

// tests whether bare and decorated Handles are classified as Handles
func TestDetectHandle(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(TypeHandle, Detect("11708/ABC-123"))
	assert.Equal(TypeHandle, Detect("https://hdl.handle.net/11708/ABC-123"))
}

// tests whether http(s) URLs that are neither DOIs nor Handles are
// classified as URLs
func TestDetectURL(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(TypeURL, Detect("https://example.com/dataset"))
	assert.Equal(TypeURL, Detect("http://example.com"))
}

// tests whether strings matching no scheme fall through to Other
func TestDetectOther(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(TypeOther, Detect(""))
	assert.Equal(TypeOther, Detect("   "))
	// a DOI with a too-short registrant code
	assert.Equal(TypeOther, Detect("10.1/x"))
	// a Handle prefix with a whitespace-only suffix
	assert.Equal(TypeOther, Detect("11708/   "))
	// a URN is neither a DOI, a Handle, nor an http(s) URL
	assert.Equal(TypeOther, Detect("urn:nbn:de:kobv:b103-xyz"))
	assert.Equal(TypeOther, Detect("ftp://example.com/file"))
}

// tests whether DOI normalization strips resolver decorations and leaves
// everything else alone
func TestNormalize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("10.5880/fidgeo.2025.072",
		Normalize("https://doi.org/10.5880/fidgeo.2025.072", TypeDOI))
	assert.Equal("10.5880/fidgeo.2025.072",
		Normalize("doi:10.5880/fidgeo.2025.072", TypeDOI))
	assert.Equal("10.5880/fidgeo.2025.072",
		Normalize("10.5880/fidgeo.2025.072", TypeDOI))

	// non-DOIs pass through (trimmed) unchanged
	assert.Equal("https://hdl.handle.net/11708/ABC-123",
		Normalize("https://hdl.handle.net/11708/ABC-123", TypeHandle))
	assert.Equal("not-an-identifier", Normalize(" not-an-identifier ", TypeOther))
}
