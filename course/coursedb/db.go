package coursedb

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/goleveldb/leveldb/util"
	"github.com/klauspost/compress/zstd"
)

const keyPrefix = "record/"

// Config holds the settings of a DB.
type Config struct {
	// Log is the Logger used by the DB. If nil, slog.Default() is used.
	Log *slog.Logger
	// Compression is the zstd level records are compressed with. If 0,
	// zstd.SpeedDefault is used.
	Compression zstd.EncoderLevel
}

// Open opens the DB in dir, creating it if it does not yet exist.
func (conf Config) Open(dir string) (*DB, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Compression == 0 {
		conf.Compression = zstd.SpeedDefault
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(conf.Compression))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	// Values are compressed with zstd already.
	ldb, err := leveldb.OpenFile(dir, &opt.Options{Compression: opt.NoCompression})
	if err != nil {
		_ = enc.Close()
		dec.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	db := &DB{conf: conf, log: conf.Log.With("subsystem", "coursedb"), ldb: ldb, enc: enc, dec: dec}
	db.log.Debug("Opened course database.", "dir", dir)
	return db, nil
}

// Open opens a DB in dir with the default Config.
func Open(dir string) (*DB, error) {
	return Config{}.Open(dir)
}

// DB implements Provider on top of LevelDB. Records are gob encoded and zstd
// compressed. DB is safe for concurrent use.
type DB struct {
	conf Config
	log  *slog.Logger

	mu     sync.RWMutex
	closed bool
	ldb    *leveldb.DB
	enc    *zstd.Encoder
	dec    *zstd.Decoder
}

var _ Provider = (*DB)(nil)

// Save stores r under r.Day.
func (db *DB) Save(r Record) error {
	if strings.TrimSpace(r.Day) == "" {
		return errors.New("save record: day must not be empty")
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(r); err != nil {
		return fmt.Errorf("save record %v: gob encode: %w", r.Day, err)
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return ErrProviderClosed
	}
	if err := db.ldb.Put(key(r.Day), db.enc.EncodeAll(buf.Bytes(), nil), nil); err != nil {
		return fmt.Errorf("save record %v: %w", r.Day, err)
	}
	return nil
}

// Load returns the record stored for day.
func (db *DB) Load(day string) (Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return Record{}, ErrProviderClosed
	}
	data, err := db.ldb.Get(key(day), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return Record{}, ErrRecordNotFound
	} else if err != nil {
		return Record{}, fmt.Errorf("load record %v: %w", day, err)
	}
	r, err := db.decode(data)
	if err != nil {
		return Record{}, fmt.Errorf("load record %v: %w", day, err)
	}
	return r, nil
}

// Records returns every stored record ordered by day. Records that cannot be
// decoded are logged and skipped.
func (db *DB) Records() ([]Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return nil, ErrProviderClosed
	}
	it := db.ldb.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer it.Release()

	var records []Record
	for it.Next() {
		r, err := db.decode(it.Value())
		if err != nil {
			db.log.Error("Skipping unreadable record.", "key", string(it.Key()), "err", err)
			continue
		}
		records = append(records, r)
	}
	if err := it.Error(); err != nil {
		return records, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Close closes the DB. Calling Close more than once returns ErrProviderClosed.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrProviderClosed
	}
	db.closed = true
	db.dec.Close()
	_ = db.enc.Close()
	if err := db.ldb.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

func (db *DB) decode(data []byte) (Record, error) {
	raw, err := db.dec.DecodeAll(data, nil)
	if err != nil {
		return Record{}, fmt.Errorf("zstd decode: %w", err)
	}
	var r Record
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&r); err != nil {
		return Record{}, fmt.Errorf("gob decode: %w", err)
	}
	return r, nil
}

func key(day string) []byte {
	return []byte(keyPrefix + day)
}
