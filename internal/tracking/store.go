// Package tracking records location samples for a route in the background
// and keeps them in an append-only store.
package tracking

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/depeter/hipster/internal/places"
)

// Sample is one recorded position.
type Sample struct {
	RouteID string    `cbor:"1,keyasint"`
	Lat     float64   `cbor:"2,keyasint"`
	Lng     float64   `cbor:"3,keyasint"`
	Time    time.Time `cbor:"4,keyasint"`
}

func (s Sample) Coord() places.Coord {
	return places.Coord{Lat: s.Lat, Lng: s.Lng}
}

// Store is an append-only file of CBOR-encoded samples. Every Append is
// synced before it returns.
type Store struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// OpenStore opens or creates the store at path. A record cut short by a
// crash mid-write is dropped so later appends start on a record boundary.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := trimTail(f, path); err != nil {
		f.Close()
		return nil, err
	}
	return &Store{path: path, f: f}, nil
}

// trimTail truncates f after its last complete record and leaves the file
// offset there.
func trimTail(f *os.File, path string) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat store: %w", err)
	}

	var end int64
	dec := newDecoder(f)
	for {
		var sample Sample
		err := dec.Decode(&sample)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		end = int64(dec.NumBytesRead())
	}

	if end < info.Size() {
		log.Printf("Store: dropping %d bytes of truncated record in %s", info.Size()-end, path)
		if err := f.Truncate(end); err != nil {
			return fmt.Errorf("truncate store: %w", err)
		}
	}
	if _, err := f.Seek(end, io.SeekStart); err != nil {
		return fmt.Errorf("seek store: %w", err)
	}
	return nil
}

func (s *Store) Path() string { return s.path }

// Append writes samples in order.
func (s *Store) Append(samples ...Sample) error {
	if len(samples) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, sample := range samples {
		data, err := marshal(sample)
		if err != nil {
			return fmt.Errorf("encode sample: %w", err)
		}
		buf.Write(data)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return os.ErrClosed
	}
	if _, err := s.f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append: %w", err)
	}
	return s.f.Sync()
}

// Load returns the samples of one route in recorded order.
func (s *Store) Load(routeID string) ([]Sample, error) {
	var out []Sample
	err := s.scan(func(sample Sample) {
		if sample.RouteID == routeID {
			out = append(out, sample)
		}
	})
	return out, err
}

// Routes returns every route id in the order it was first recorded.
func (s *Store) Routes() ([]string, error) {
	var ids []string
	seen := make(map[string]bool)
	err := s.scan(func(sample Sample) {
		if !seen[sample.RouteID] {
			seen[sample.RouteID] = true
			ids = append(ids, sample.RouteID)
		}
	})
	return ids, err
}

// scan decodes every record. A truncated final record ends the scan without
// error; OpenStore removes it before the next append.
func (s *Store) scan(fn func(Sample)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read store: %w", err)
	}
	defer f.Close()

	dec := newDecoder(f)
	for {
		var sample Sample
		err := dec.Decode(&sample)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", s.path, err)
		}
		fn(sample)
	}
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
