package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/frictionlessdata/datapackage-go/datapackage"
	"github.com/frictionlessdata/datapackage-go/validator"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/McNamara84/ernie-sub013/config"
	"github.com/McNamara84/ernie-sub013/datacite"
)

// This is the curation journal, which records every accepted metadata
// submission. The journal is a table of submission records (one per
// accepted submission), each with a frictionless data-package manifest
// describing the submitted resource.

// a record storing all information relevant to an accepted submission
type Record struct {
	// UUID assigned to the submission
	Id uuid.UUID `json:"id"`
	// the authenticated user who submitted the resource
	User string `json:"user"`
	// the bare DOI of the submitted resource (may be empty for drafts)
	DOI string `json:"doi"`
	// time at which the submission was accepted
	SubmittedAt time.Time `json:"submitted_at"`
	// how the submission entered the system ("curated" or "uploaded")
	Origin string `json:"origin"`
	// the normalized, validated resource itself
	Resource datacite.Resource `json:"resource"`
	// manifest describing the submission's payload (stored separate from record)
	Manifest *datapackage.Package `json:"-"`
}

// initialize the curation journal
func Init() error {
	if !IsOpen() {
		go journalProcess()
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

// saves and closes the curation journal (if it's been opened)
func Finalize() error {
	if IsOpen() {
		channels_.Input.Shutdown <- struct{}{}
		closeChannels()
	}
	return nil
}

// returns true if the journal is open for writing, false if not
func IsOpen() bool {
	if channels_.Open { // has Init() been called?
		channels_.Input.CheckIfOpen <- struct{}{}
		select {
		case isOpen := <-channels_.Output.IsOpen:
			return isOpen
		case <-time.After(1 * time.Second): // after a second, we assume the goroutine has crashed
			closeChannels()
			return false
		}
	}
	return false
}

// records an accepted submission
// record: the record containing all submission information
func RecordSubmission(record Record) error {
	switch record.Origin {
	case "curated", "uploaded":
		// pass-through (see below)
	default:
		return &NewRecordError{
			Id:      record.Id,
			Message: fmt.Sprintf("Invalid origin: %s", record.Origin),
		}
	}

	if !IsOpen() {
		return &NotOpenError{}
	}

	channels_.Input.CreateRecord <- record
	return <-channels_.Output.Error
}

// retrieves the record for the submission with the given ID
func Submission(id uuid.UUID) (Record, error) {
	if !IsOpen() {
		return Record{}, &NotOpenError{}
	}
	channels_.Input.FetchRecord <- id
	select {
	case record := <-channels_.Output.Record:
		return record, nil
	case err := <-channels_.Output.Error:
		return Record{}, err
	}
}

// retrieves records for submissions accepted within the time range with the
// given (inclusive) bounds
// start: the beginning of the time period of interest
// stop: the end of the time period of interest
func Records(start, stop time.Time) ([]Record, error) {
	if !IsOpen() {
		return nil, &NotOpenError{}
	}
	channels_.Input.FetchRecords <- TimeRange{Start: start, Stop: stop}
	var records []Record
	var err error
	select {
	case records = <-channels_.Output.Records:
		return records, err
	case err = <-channels_.Output.Error:
		return records, err
	}
}

//-----------
// Internals
//-----------

// The journal gets its own goroutine so it doesn't bring down the entire
// service if it crashes. Here we define "input" channels (main process ->
// goroutine) and "output" channels (goroutine -> main process) for passing
// data back and forth

type TimeRange struct {
	Start, Stop time.Time
}

var channels_ struct {
	Open  bool // true if channels are open, false if not
	Input struct {
		CreateRecord chan Record    // for creating new records
		CheckIfOpen  chan struct{}  // for checking to see whether the database is open
		FetchRecord  chan uuid.UUID // for fetching a single record by ID
		FetchRecords chan TimeRange // for fetching records within a time range
		Shutdown     chan struct{}  // for shutting down the database
	}

	Output struct {
		Record  chan Record   // for returning single records
		Records chan []Record // for returning record lists
		Error   chan error    // for returning errors
		IsOpen  chan bool     // for answering queries about whether the database is open
	}
}

func journalProcess() {

	// open the database, creating the schema if necessary
	dbPath := filepath.Join(config.Service.DataDirectory, "curation_journal.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		channels_.Output.Error <- &CantOpenError{
			Message: err.Error(),
		}
	}

	// set up buckets for submission records, the ID index, and manifests
	db.Update(func(tx *bolt.Tx) error {
		for _, bucketName := range []string{"submissions", "ids", "manifests"} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucketName)); err != nil {
				return err
			}
		}
		return nil
	})

	openChannels()

	// handle requests
	running := true
	for running {
		select {

		case <-channels_.Input.CheckIfOpen:
			channels_.Output.IsOpen <- true // always true if this goroutine is running!

		case record := <-channels_.Input.CreateRecord:
			err := createRecord(db, record)
			channels_.Output.Error <- err

		case id := <-channels_.Input.FetchRecord:
			record, err := fetchRecord(db, id)
			if err != nil {
				channels_.Output.Error <- err
			} else {
				channels_.Output.Record <- record
			}

		case timeRange := <-channels_.Input.FetchRecords:
			records, err := fetchRecords(db, timeRange.Start, timeRange.Stop)
			if err != nil {
				channels_.Output.Error <- err
			} else {
				channels_.Output.Records <- records
			}

		case <-channels_.Input.Shutdown:
			err := db.Close()
			if err != nil {
				channels_.Output.Error <- &CantCloseError{
					Message: err.Error(),
				}
			}
			running = false
		}
	}
}

func openChannels() {
	channels_.Open = true
	channels_.Input.CreateRecord = make(chan Record)
	channels_.Input.CheckIfOpen = make(chan struct{})
	channels_.Input.FetchRecord = make(chan uuid.UUID)
	channels_.Input.FetchRecords = make(chan TimeRange)
	channels_.Input.Shutdown = make(chan struct{})
	channels_.Output.Record = make(chan Record)
	channels_.Output.Records = make(chan []Record)
	channels_.Output.Error = make(chan error)
	channels_.Output.IsOpen = make(chan bool)
}

func closeChannels() {
	channels_.Open = false
	close(channels_.Input.CreateRecord)
	close(channels_.Input.CheckIfOpen)
	close(channels_.Input.FetchRecord)
	close(channels_.Input.FetchRecords)
	close(channels_.Input.Shutdown)
	close(channels_.Output.Record)
	close(channels_.Output.Records)
	close(channels_.Output.Error)
	close(channels_.Output.IsOpen)
}

// Submission records are keyed by acceptance time plus UUID, so records
// accepted within the same second never collide and range scans stay
// time-ordered. Times are normalized to UTC so the keys sort lexically.
func submissionKey(record Record) string {
	return record.SubmittedAt.UTC().Format(time.RFC3339) + "|" + record.Id.String()
}

func createRecord(db *bolt.DB, record Record) error {
	timeKey := submissionKey(record)

	tx, err := db.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// store the submission record, indexing it by its acceptance time
	bucket := tx.Bucket([]byte("submissions"))

	jsonBytes, err := json.Marshal(&record)
	if err != nil {
		return &NewRecordError{Id: record.Id, Message: err.Error()}
	}
	err = bucket.Put([]byte(timeKey), jsonBytes)
	if err != nil {
		return err
	}

	// index the record's time key by its UUID so it can be fetched directly
	index := tx.Bucket([]byte("ids"))
	err = index.Put([]byte(record.Id.String()), []byte(timeKey))
	if err != nil {
		return err
	}

	// store the submission's manifest (indexed by UUID)
	if record.Manifest != nil {
		jsonManifest, err := json.Marshal(record.Manifest.Descriptor())
		if err != nil {
			return &NewRecordError{
				Id:      record.Id,
				Message: err.Error(),
			}
		}
		bucket := tx.Bucket([]byte("manifests"))
		bucket.Put([]byte(record.Id.String()), jsonManifest)
	}

	return tx.Commit()
}

func fetchRecord(db *bolt.DB, id uuid.UUID) (Record, error) {
	var record Record
	err := db.View(func(tx *bolt.Tx) error {
		timeKey := tx.Bucket([]byte("ids")).Get([]byte(id.String()))
		if timeKey == nil {
			return &RecordNotFoundError{Id: id}
		}
		v := tx.Bucket([]byte("submissions")).Get(timeKey)
		if v == nil {
			return &RecordNotFoundError{Id: id}
		}
		if err := json.Unmarshal(v, &record); err != nil {
			return &InvalidRecordError{Id: id, Message: err.Error()}
		}

		m := tx.Bucket([]byte("manifests")).Get([]byte(id.String()))
		if m != nil {
			var err error
			record.Manifest, err = datapackage.FromString(string(m),
				"manifest.json", validator.InMemoryLoader())
			if err != nil {
				return &InvalidRecordError{
					Id:      id,
					Message: "unable to retrieve manifest for submission",
				}
			}
		}
		return nil
	})
	return record, err
}

func fetchRecords(db *bolt.DB, start, stop time.Time) ([]Record, error) {
	records := make([]Record, 0)
	err := db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte("submissions")).Cursor()

		startTime := []byte(start.UTC().Format(time.RFC3339))
		stopTime := []byte(stop.UTC().Format(time.RFC3339))

		for k, v := c.Seek(startTime); k != nil; k, v = c.Next() {
			// compare only the time portion of the 'time|uuid' key, keeping
			// the stop bound inclusive
			timePart := k
			if bar := bytes.IndexByte(k, '|'); bar != -1 {
				timePart = k[:bar]
			}
			if bytes.Compare(timePart, stopTime) > 0 {
				break
			}
			var record Record
			err := json.Unmarshal(v, &record)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})

	return records, err
}
