package normalize

// These tests verify the date range and date-time helpers.
import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/McNamara84/ernie-sub013/datacite"
)

// tests whether date entries serialize in the DataCite interval convention
func TestSerializeDateRange(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("2024-01-01/2024-12-31", SerializeDateRange(datacite.DateEntry{
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	}))
	assert.Equal("2024-01-01", SerializeDateRange(datacite.DateEntry{
		StartDate: "2024-01-01",
	}))
	assert.Equal("/2024-12-31", SerializeDateRange(datacite.DateEntry{
		EndDate: "2024-12-31",
	}))
	assert.Equal("", SerializeDateRange(datacite.DateEntry{}))
}

// tests whether ParseDateRange inverts SerializeDateRange for every
// interval shape
func TestParseDateRange(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range []datacite.DateEntry{
		{StartDate: "2024-01-01", EndDate: "2024-12-31"},
		{StartDate: "2024-01-01"},
		{EndDate: "2024-12-31"},
		{},
	} {
		start, end := ParseDateRange(SerializeDateRange(entry))
		assert.Equal(entry.StartDate, start)
		assert.Equal(entry.EndDate, end)
	}

	start, end := ParseDateRange("  2024-06-15  ")
	assert.Equal("2024-06-15", start)
	assert.Equal("", end)
}

// tests whether date, time and timezone combine into the RFC 9557 suffix
// form
func TestBuildDateTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("2024-01-01T10:30:00[Europe/Berlin]",
		BuildDateTime("2024-01-01", "10:30:00", "Europe/Berlin"))
	assert.Equal("2024-01-01T10:30:00", BuildDateTime("2024-01-01", "10:30:00", ""))
	assert.Equal("2024-01-01[Europe/Berlin]",
		BuildDateTime("2024-01-01", "", "Europe/Berlin"))
	assert.Equal("2024-01-01", BuildDateTime("2024-01-01", "", ""))
	// without a date there is nothing to build
	assert.Equal("", BuildDateTime("", "10:30:00", "Europe/Berlin"))
}

// tests whether ParseDateTime inverts BuildDateTime for all part
// combinations
func TestParseDateTimeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	cases := []DateTimeParts{
		{Date: "2024-01-01", Time: "10:30:00", Timezone: "Europe/Berlin"},
		{Date: "2024-01-01", Time: "10:30:00"},
		{Date: "2024-01-01", Timezone: "Europe/Berlin"},
		{Date: "2024-01-01"},
	}
	for _, parts := range cases {
		s := BuildDateTime(parts.Date, parts.Time, parts.Timezone)
		assert.Equal(parts, ParseDateTime(s))
	}
	assert.Equal(DateTimeParts{}, ParseDateTime(""))
}
