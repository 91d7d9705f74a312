// Package repotest provides an in-memory implementation of the repository
// interfaces for service and handler tests. Its transactor snapshots the
// store on begin and restores it on rollback.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

type data struct {
	rooms             map[string]model.Room
	admissions        map[int64]model.Admission
	assignments       map[int64]model.RoomAssignment
	billing           map[int64]model.BillingItem
	labRequests       map[int64]model.LabRequest
	doctorAssignments map[int64]model.DoctorAssignment
	nextID            int64
}

func (d data) clone() data {
	c := data{
		rooms:             make(map[string]model.Room, len(d.rooms)),
		admissions:        make(map[int64]model.Admission, len(d.admissions)),
		assignments:       make(map[int64]model.RoomAssignment, len(d.assignments)),
		billing:           make(map[int64]model.BillingItem, len(d.billing)),
		labRequests:       make(map[int64]model.LabRequest, len(d.labRequests)),
		doctorAssignments: make(map[int64]model.DoctorAssignment, len(d.doctorAssignments)),
		nextID:            d.nextID,
	}
	for k, v := range d.rooms {
		c.rooms[k] = v
	}
	for k, v := range d.admissions {
		c.admissions[k] = v
	}
	for k, v := range d.assignments {
		c.assignments[k] = v
	}
	for k, v := range d.billing {
		c.billing[k] = v
	}
	for k, v := range d.labRequests {
		c.labRequests[k] = v
	}
	for k, v := range d.doctorAssignments {
		c.doctorAssignments[k] = v
	}
	return c
}

// Store is an in-memory database.
type Store struct {
	mu       sync.Mutex
	d        data
	failures map[string]error

	// PatientNames and DoctorNames feed the joined list views.
	PatientNames map[int64]string
	DoctorNames  map[int64]string

	// Locks records every row lock taken, in order.
	Locks []string
	// Commits and Rollbacks count finished transactions.
	Commits   int
	Rollbacks int
}

func NewStore() *Store {
	return &Store{
		d:            data{}.clone(),
		failures:     make(map[string]error),
		PatientNames: make(map[int64]string),
		DoctorNames:  make(map[int64]string),
	}
}

// FailOn makes the named operation (e.g. "rooms.set_status") return err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	return s.failures[op]
}

func (s *Store) id() int64 {
	s.d.nextID++
	return s.d.nextID
}

type txKey struct{}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

func requireTx(ctx context.Context, what string) error {
	if ctx.Value(txKey{}) == nil {
		return fmt.Errorf("lock %s: no transaction in context", what)
	}
	return nil
}

// Seed helpers.

func (s *Store) AddRoom(roomNo string, status model.RoomStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.rooms[roomNo] = model.Room{RoomNo: roomNo, CategoryID: 1, FloorID: 1, Status: status}
}

func (s *Store) AddAdmission(id, patientID int64, status model.AdmissionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.admissions[id] = model.Admission{
		ID: id, PatientID: patientID, DoctorID: 1, AdmittedAt: time.Now(), Status: status,
	}
	if id > s.d.nextID {
		s.d.nextID = id
	}
}

// Room returns a copy of the stored room.
func (s *Store) Room(roomNo string) (model.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.d.rooms[roomNo]
	return r, ok
}

// Admission returns a copy of the stored admission.
func (s *Store) Admission(id int64) (model.Admission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.d.admissions[id]
	return a, ok
}

// Assignments returns a copy of all stored assignments.
func (s *Store) Assignments() []model.RoomAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.RoomAssignment, 0, len(s.d.assignments))
	for _, a := range s.d.assignments {
		out = append(out, a)
	}
	return out
}

// OccupancyConsistent reports whether the set of Occupied rooms equals the
// set of rooms referenced by an assignment.
func (s *Store) OccupancyConsistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	referenced := make(map[string]int)
	for _, a := range s.d.assignments {
		referenced[a.RoomNo]++
	}
	for no, room := range s.d.rooms {
		n := referenced[no]
		if n > 1 || (n == 1) != room.Status.IsOccupied() {
			return false
		}
	}
	return true
}

var (
	_ repository.Transactor = (*Store)(nil)
)
