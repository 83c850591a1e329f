package webhook

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// recordLocks serializes applies per Airtable record id. Airtable gives no
// ordering guarantee between deliveries, so two notifications touching the
// same record may be processed concurrently; striping by record id keeps each
// read-modify-write of a response document self-contained.
type recordLocks struct {
	stripes [lockStripes]sync.Mutex
}

func newRecordLocks() *recordLocks {
	return &recordLocks{}
}

func (l *recordLocks) Lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))

	mu := &l.stripes[h.Sum32()%lockStripes]
	mu.Lock()

	return mu.Unlock
}
