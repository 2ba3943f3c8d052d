package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/nerdjerry/ai-projects/internal/domain"
)

var (
	bucketMessages = []byte("messages")
	bucketPosts    = []byte("posts")
)

// BoltStore persists chat history and approved social posts. The vector
// index is deliberately not stored here; it is rebuilt in memory each run.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketMessages, bucketPosts} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// AppendMessage appends one conversation turn under a monotonically
// increasing sequence key, preserving transcript order.
func (s *BoltStore) AppendMessage(msg domain.Message) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), data)
	})
}

func (s *BoltStore) ListMessages() ([]domain.Message, error) {
	var messages []domain.Message
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMessages).ForEach(func(k, v []byte) error {
			var msg domain.Message
			if err := json.Unmarshal(v, &msg); err != nil {
				return fmt.Errorf("corrupt message at key %x: %w", k, err)
			}
			messages = append(messages, msg)
			return nil
		})
	})
	return messages, err
}

func (s *BoltStore) ClearMessages() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketMessages); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketMessages)
		return err
	})
}

func (s *BoltStore) SavePost(post domain.SocialPost) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPosts)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		data, err := json.Marshal(post)
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), data)
	})
}

func (s *BoltStore) ListPosts() ([]domain.SocialPost, error) {
	var posts []domain.SocialPost
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPosts).ForEach(func(k, v []byte) error {
			var post domain.SocialPost
			if err := json.Unmarshal(v, &post); err != nil {
				return fmt.Errorf("corrupt post at key %x: %w", k, err)
			}
			posts = append(posts, post)
			return nil
		})
	})
	return posts, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// seqKey encodes a sequence number big-endian so byte order matches
// numeric order during bucket iteration.
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
