package db

import (
	"errors"
	"fmt"
)

// CloseAndWrapOnError runs closer and joins its error into *err, so that a
// failing Close never hides the error the caller is already returning.
func CloseAndWrapOnError(closer func() error, err *error) {
	if closeErr := closer(); closeErr != nil {
		*err = errors.Join(*err, fmt.Errorf("close: %w", closeErr))
	}
}

// Stats counts the keys and value bytes stored under each bucket.
type Stats struct {
	Bucket Bucket
	Keys   uint64
	Bytes  uint64
}

// CollectStats walks the whole key space once and groups it by bucket prefix.
func CollectStats(database DB) ([]Stats, error) {
	byBucket := make(map[Bucket]*Stats)
	err := database.View(func(txn Transaction) (err error) {
		it, err := txn.NewIterator()
		if err != nil {
			return err
		}
		defer CloseAndWrapOnError(it.Close, &err)

		for it.Next() {
			key := it.Key()
			if len(key) == 0 {
				continue
			}
			val, err := it.Value()
			if err != nil {
				return err
			}
			b := Bucket(key[0])
			s, ok := byBucket[b]
			if !ok {
				s = &Stats{Bucket: b}
				byBucket[b] = s
			}
			s.Keys++
			s.Bytes += uint64(len(val))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := make([]Stats, 0, len(byBucket))
	for _, b := range Buckets() {
		if s, ok := byBucket[b]; ok {
			stats = append(stats, *s)
		}
	}
	return stats, nil
}
