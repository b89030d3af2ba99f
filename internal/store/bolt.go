package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	kvBucket       = []byte("kv")
	settingsBucket = []byte("settings")
)

// boltBackend keeps the same keyed blobs in a single bbolt file.
type boltBackend struct {
	db *bolt.DB
}

func openBolt(path string) (*boltBackend, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{kvBucket, settingsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return &boltBackend{db: db}, nil
}

func (b *boltBackend) Close() error {
	return b.db.Close()
}

func (b *boltBackend) get(bucket []byte, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (b *boltBackend) put(bucket []byte, key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), value)
	})
}

func (b *boltBackend) Get(key string) ([]byte, error) {
	return b.get(kvBucket, key)
}

func (b *boltBackend) Put(key string, value []byte) error {
	if err := b.put(kvBucket, key, value); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (b *boltBackend) Delete(key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(kvBucket).Delete([]byte(key))
	})
}

func (b *boltBackend) Keys() ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(kvBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

func (b *boltBackend) GetSetting(key string) (string, error) {
	v, err := b.get(settingsBucket, key)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return string(v), nil
}

func (b *boltBackend) SetSetting(key, value string) error {
	return b.put(settingsBucket, key, []byte(value))
}

func (b *boltBackend) SeedSettings(defaults map[string]string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(settingsBucket)
		for k, v := range defaults {
			if bkt.Get([]byte(k)) != nil {
				continue
			}
			if err := bkt.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *boltBackend) AllSettings() ([]Setting, error) {
	var settings []Setting
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).ForEach(func(k, v []byte) error {
			settings = append(settings, Setting{Key: string(k), Value: string(v)})
			return nil
		})
	})
	return settings, err
}
