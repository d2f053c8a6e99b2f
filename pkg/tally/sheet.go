package tally

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrNoSuchCounter = errors.New("no such counter")
	ErrCounterExists = errors.New("counter already exists")
	ErrInvalidName   = errors.New("invalid counter name")
)

type Counter struct {
	Name  string
	Value int64
}

// Sheet is an ordered list of uniquely named counters
type Sheet struct {
	Name     string
	counters []Counter
}

func NewSheet(name string, counters ...Counter) (*Sheet, error) {
	s := &Sheet{Name: name}
	for _, c := range counters {
		if err := s.Insert(len(s.counters), c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Clone returns an independent copy of the sheet
func (s *Sheet) Clone() *Sheet {
	return &Sheet{Name: s.Name, counters: s.Counters()}
}

// Counters returns a copy of all counters in display order
func (s *Sheet) Counters() []Counter {
	out := make([]Counter, len(s.counters))
	copy(out, s.counters)
	return out
}

func (s *Sheet) Len() int {
	return len(s.counters)
}

// Index returns the position of the counter with the given name, or -1
func (s *Sheet) Index(name string) int {
	for i, c := range s.counters {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (s *Sheet) Get(name string) (int64, error) {
	i := s.Index(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: '%s'", ErrNoSuchCounter, name)
	}
	return s.counters[i].Value, nil
}

func (s *Sheet) Set(name string, value int64) error {
	i := s.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: '%s'", ErrNoSuchCounter, name)
	}
	s.counters[i].Value = value
	return nil
}

// Insert adds a counter at the given position. Positions past the end append.
func (s *Sheet) Insert(index int, c Counter) error {
	if err := validName(c.Name); err != nil {
		return err
	}
	if s.Index(c.Name) >= 0 {
		return fmt.Errorf("%w: '%s'", ErrCounterExists, c.Name)
	}
	if index < 0 || index > len(s.counters) {
		index = len(s.counters)
	}
	s.counters = append(s.counters, Counter{})
	copy(s.counters[index+1:], s.counters[index:])
	s.counters[index] = c
	return nil
}

// Remove deletes the named counter and returns it together with its former position
func (s *Sheet) Remove(name string) (Counter, int, error) {
	i := s.Index(name)
	if i < 0 {
		return Counter{}, -1, fmt.Errorf("%w: '%s'", ErrNoSuchCounter, name)
	}
	c := s.counters[i]
	s.counters = append(s.counters[:i], s.counters[i+1:]...)
	return c, i, nil
}

func (s *Sheet) Rename(oldName, newName string) error {
	if err := validName(newName); err != nil {
		return err
	}
	i := s.Index(oldName)
	if i < 0 {
		return fmt.Errorf("%w: '%s'", ErrNoSuchCounter, oldName)
	}
	if oldName == newName {
		return nil
	}
	if s.Index(newName) >= 0 {
		return fmt.Errorf("%w: '%s'", ErrCounterExists, newName)
	}
	s.counters[i].Name = newName
	return nil
}

// Fingerprint returns a digest of the observable sheet state.
// Two sheets with equal names, counter order and values have equal fingerprints.
func (s *Sheet) Fingerprint() [blake2b.Size256]byte {
	h, _ := blake2b.New256(nil)
	writeString := func(v string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(v)))
		h.Write(n[:])
		h.Write([]byte(v))
	}
	writeString(s.Name)
	for _, c := range s.counters {
		writeString(c.Name)
		var v [8]byte
		binary.BigEndian.PutUint64(v[:], uint64(c.Value))
		h.Write(v[:])
	}
	var sum [blake2b.Size256]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func validName(name string) error {
	if len(name) == 0 || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	return nil
}
