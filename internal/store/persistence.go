package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrMalformed marks reservation data that could not be decoded.
// Callers use it to tell a corrupt file (continue with nothing loaded)
// from a read failure (report to the caller).
var ErrMalformed = errors.New("malformed reservation data")

// SeatRecord is the persisted form of one reserved seat, identified by
// its (row, number) pair within the reservation's screening.
type SeatRecord struct {
	Row    int `json:"row"`
	Number int `json:"number"`
}

// ReservationRecord is the persisted form of a reservation.  The
// screening is referenced by movie title, hall name and start time so
// it can be resolved against a freshly bootstrapped catalog after a
// reload; the screening object itself is never serialized.  Tickets
// are deliberately not persisted either — only the aggregate total and
// the seat list — which trades per-ticket price fidelity for a smaller
// format (reloaded tickets get an even split of the total).
//
// Fields:
//  ID           – reservation identifier, stable across round-trips.
//  CustomerName – name the booking was made under.
//  MovieTitle   – title of the screening's movie.
//  HallName     – name of the screening's hall.
//  DateTime     – screening start time, RFC 3339.
//  Seats        – reserved (row, number) pairs.
//  TotalPrice   – aggregate price at creation time.
//  Timestamp    – reservation creation time, RFC 3339.
type ReservationRecord struct {
	ID           string       `json:"id"`
	CustomerName string       `json:"customer_name"`
	MovieTitle   string       `json:"movie_title"`
	HallName     string       `json:"hall_name"`
	DateTime     string       `json:"date_time"`
	Seats        []SeatRecord `json:"seats"`
	TotalPrice   float64      `json:"total_price"`
	Timestamp    string       `json:"timestamp"`
}

// ReservationStore persists the full reservation collection.  Save is
// a whole-file rewrite, so its cost grows linearly with the total
// number of reservations; acceptable for a single-process cinema but a
// known scalability ceiling.
//
// Implementations: FileStore.
type ReservationStore interface {
	Save(records []ReservationRecord) error
	Load() ([]ReservationRecord, error)
}

// FileStore implements ReservationStore on a single JSON file.  The
// file holds one JSON array of reservation records, indented for easy
// inspection.  A missing file on load means zero reservations, not an
// error.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Save rewrites the whole file with the given records.  I/O errors are
// returned to the caller; the in-memory state the records came from is
// not touched, so a failed save leaves memory ahead of disk.
func (f *FileStore) Save(records []ReservationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if records == nil {
		records = []ReservationRecord{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode reservations: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

// Load reads every record from the file.  A missing file yields an
// empty slice and no error.  Malformed JSON is reported as an error
// wrapping ErrMalformed so the caller can decide to continue with
// nothing loaded; other read failures are returned as-is.
func (f *FileStore) Load() ([]ReservationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []ReservationRecord{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	var records []ReservationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %v: %w", f.Path, err, ErrMalformed)
	}
	return records, nil
}
