package store

import (
	"github.com/sadopc/absentee/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Op names a store mutation.
type Op string

const (
	OpAdd         Op = "add"
	OpUpdate      Op = "update"
	OpDelete      Op = "delete"
	OpClear       Op = "clear"
	OpSeed        Op = "seed"
	OpPlantAdd    Op = "plant_add"
	OpPlantRemove Op = "plant_remove"
)

// Change is delivered to subscribers after every committed mutation.
type Change struct {
	Op Op
	ID string
}

// Subscribe registers fn for change notifications. The returned func
// removes the subscription. fn runs synchronously on the writer's
// goroutine and must not call back into a blocking consumer.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(c Change) {
	metrics.StoreChangesTotal.WithLabelValues(string(c.Op)).Inc()
	logrus.WithFields(logrus.Fields{"op": c.Op, "id": c.ID}).Debug("store changed")

	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
