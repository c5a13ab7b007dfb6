package loader

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var ErrRuleNotFound = errors.New("rule not found")

// DefaultBoltBucket is the bucket rules are read from when none is given.
const DefaultBoltBucket = "rules"

// FromBolt loads a rule stored as a value in a bbolt database. The database is
// opened read-only for the duration of each GetReader call, so a writer process can
// keep it open between reads.
type FromBolt struct {
	dbPath    string
	bucket    string
	key       string
	timeout   time.Duration
	sourceURL *url.URL
}

// NewFromBolt reads key from bucket in the database file at dbPath. An empty bucket
// means DefaultBoltBucket.
func NewFromBolt(dbPath, bucket, key string) (*FromBolt, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("%w: database path is empty", ErrInvalidPath)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: rule key is empty", ErrScriptNotAvailable)
	}
	if bucket == "" {
		bucket = DefaultBoltBucket
	}

	return &FromBolt{
		dbPath:  dbPath,
		bucket:  bucket,
		key:     key,
		timeout: time.Second,
		sourceURL: &url.URL{
			Scheme:   "bolt",
			Path:     dbPath,
			RawQuery: url.Values{"bucket": {bucket}, "key": {key}}.Encode(),
		},
	}, nil
}

// newFromBoltURL parses bolt:///path/to/db?bucket=rules&key=name.
func newFromBoltURL(u *url.URL) (*FromBolt, error) {
	q := u.Query()
	return NewFromBolt(u.Path, q.Get("bucket"), q.Get("key"))
}

func (l *FromBolt) String() string {
	return fmt.Sprintf("loader.FromBolt{DB: %s, Bucket: %s, Key: %s}", l.dbPath, l.bucket, l.key)
}

func (l *FromBolt) GetReader() (io.ReadCloser, error) {
	db, err := bolt.Open(l.dbPath, 0o600, &bolt.Options{Timeout: l.timeout, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, err)
	}
	defer db.Close()

	var content string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(l.bucket))
		if b == nil {
			return fmt.Errorf("%w: bucket %q does not exist", ErrRuleNotFound, l.bucket)
		}
		v := b.Get([]byte(l.key))
		if v == nil {
			return fmt.Errorf("%w: key %q in bucket %q", ErrRuleNotFound, l.key, l.bucket)
		}
		// v is only valid inside the transaction.
		content = string(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return io.NopCloser(strings.NewReader(content)), nil
}

func (l *FromBolt) GetSourceURL() *url.URL {
	return l.sourceURL
}

// StoreBoltRule writes rule source under key, creating the bucket when needed.
func StoreBoltRule(dbPath, bucket, key string, source []byte) error {
	if bucket == "" {
		bucket = DefaultBoltBucket
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), source)
	})
}
