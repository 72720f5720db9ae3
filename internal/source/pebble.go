package source

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

var recordPrefix = []byte("rec/")

// recordKey encodes seq big-endian so keys sort in append order.
func recordKey(seq uint64) []byte {
	k := make([]byte, len(recordPrefix)+8)
	copy(k, recordPrefix)
	binary.BigEndian.PutUint64(k[len(recordPrefix):], seq)
	return k
}

func recordPrefixEnd() []byte {
	end := append([]byte(nil), recordPrefix...)
	end[len(end)-1]++
	return end
}

type pebbleValue struct {
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

// Pebble pages records out of a Pebble key range. Keys are "rec/" followed
// by a big-endian sequence number.
type Pebble struct {
	db   *pebble.DB
	next uint64
	seq  int64
}

// OpenPebble opens (creating if needed) the database directory at dir.
func OpenPebble(dir string) (*Pebble, error) {
	db, err := openPebbleDB(dir)
	if err != nil {
		return nil, err
	}
	return &Pebble{db: db}, nil
}

func openPebbleDB(dir string) (*pebble.DB, error) {
	if dir == "" {
		return nil, errors.New("pebble source requires a path")
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble %s: %w", dir, err)
	}
	return db, nil
}

// LoadMore implements scroller.Loader.
func (p *Pebble) LoadMore(_ context.Context, count int) ([]Record, error) {
	it, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: recordKey(p.next),
		UpperBound: recordPrefixEnd(),
	})
	if err != nil {
		return nil, fmt.Errorf("new iterator: %w", err)
	}
	defer it.Close()

	records := make([]Record, 0, count)
	for valid := it.First(); valid && len(records) < count; valid = it.Next() {
		key := it.Key()
		if len(key) != len(recordPrefix)+8 {
			continue
		}
		var v pebbleValue
		if err := json.Unmarshal(it.Value(), &v); err != nil {
			return nil, fmt.Errorf("decode record %x: %w", key, err)
		}
		records = append(records, Record{
			Seq:       p.seq,
			Body:      v.Body,
			CreatedAt: time.Unix(v.CreatedAt, 0),
		})
		p.next = binary.BigEndian.Uint64(key[len(recordPrefix):]) + 1
		p.seq++
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (p *Pebble) Close() error {
	return p.db.Close()
}

// PebbleSeeder appends records after the last stored key of a database
// that stays open across batches.
type PebbleSeeder struct {
	db   *pebble.DB
	next uint64
}

// OpenPebbleSeeder opens the directory once and finds the next free key.
func OpenPebbleSeeder(dir string) (*PebbleSeeder, error) {
	db, err := openPebbleDB(dir)
	if err != nil {
		return nil, err
	}
	next, err := nextPebbleSeq(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &PebbleSeeder{db: db, next: next}, nil
}

// Count returns the number of stored records. Keys are dense from zero, so
// this is also the next key.
func (p *PebbleSeeder) Count() int64 { return int64(p.next) }

// Append writes bodies in one synced batch.
func (p *PebbleSeeder) Append(_ context.Context, bodies []string) error {
	b := p.db.NewBatch()
	defer b.Close()
	now := time.Now().Unix()
	for i, body := range bodies {
		val, err := json.Marshal(pebbleValue{Body: body, CreatedAt: now})
		if err != nil {
			return err
		}
		if err := b.Set(recordKey(p.next+uint64(i)), val, nil); err != nil {
			return err
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	p.next += uint64(len(bodies))
	return nil
}

func (p *PebbleSeeder) Close() error {
	return p.db.Close()
}

func nextPebbleSeq(db *pebble.DB) (uint64, error) {
	it, err := db.NewIter(&pebble.IterOptions{
		LowerBound: recordPrefix,
		UpperBound: recordPrefixEnd(),
	})
	if err != nil {
		return 0, err
	}
	defer it.Close()
	if !it.Last() {
		return 0, it.Error()
	}
	key := it.Key()
	if len(key) != len(recordPrefix)+8 {
		return 0, fmt.Errorf("unexpected key %x", key)
	}
	return binary.BigEndian.Uint64(key[len(recordPrefix):]) + 1, nil
}
