package scope

import "slices"

// jobTable holds the live job records of one scope with stable
// identity. Records are keyed by their insertion-order id; advance
// sweeps visit ids in ascending order. Because spawning is legal while
// a sweep is in progress (nested spawns), admission goes through a
// pending queue that the driver drains at sweep boundaries, so the
// live map is never mutated under iteration.
//
// All access is serialized by the owning scope's mutex.
type jobTable struct {
	records map[uint64]*jobRecord
	pending []*jobRecord
	lastID  uint64
}

func newJobTable() *jobTable {
	return &jobTable{records: make(map[uint64]*jobRecord)}
}

// assignID stamps rec with the next insertion-order id.
func (t *jobTable) assignID(rec *jobRecord) {
	t.lastID++
	rec.id = t.lastID
}

// stage queues rec for admission at the next sweep boundary.
func (t *jobTable) stage(rec *jobRecord) {
	t.pending = append(t.pending, rec)
}

// admit moves staged records into the live map.
func (t *jobTable) admit() {
	for _, rec := range t.pending {
		t.records[rec.id] = rec
	}
	clear(t.pending)
	t.pending = t.pending[:0]
}

// ready returns the ids of live records awaiting advancement in
// ascending order, skipping ids present in exclude.
func (t *jobTable) ready(exclude map[uint64]bool) []uint64 {
	ids := make([]uint64, 0, len(t.records))
	for id, rec := range t.records {
		if rec.ready && !exclude[id] {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (t *jobTable) remove(id uint64) { delete(t.records, id) }

// empty reports whether no record, live or staged, remains.
func (t *jobTable) empty() bool {
	return len(t.records) == 0 && len(t.pending) == 0
}

// discardAll transitions every held record to Discarded without
// advancing it and clears the table. It returns the discarded ids.
func (t *jobTable) discardAll() []uint64 {
	ids := make([]uint64, 0, len(t.records)+len(t.pending))
	drop := func(rec *jobRecord) {
		rec.state = jobDiscarded
		rec.step = nil
		rec.cx = nil
		rec.waiter = nil
		ids = append(ids, rec.id)
	}
	for id, rec := range t.records {
		drop(rec)
		delete(t.records, id)
	}
	for _, rec := range t.pending {
		drop(rec)
	}
	clear(t.pending)
	t.pending = t.pending[:0]
	slices.Sort(ids)
	return ids
}
