// Package oram implements a Path-ORAM-style oblivious storage engine: a
// client holding a position map and symmetric keys stores, retrieves, and
// deletes small data blocks on an untrusted in-memory Server while hiding
// which logical ID is touched and detecting tampering via HMAC.
package oram

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"

	"github.com/dor890/trustcore/internal/log"
	"github.com/dor890/trustcore/internal/metrics"
)

var logger = log.WithComponent("oram")

// positionEntry is the client-private record for one logical ID: the binary
// representation of its currently assigned leaf, and the HMAC integrity tag
// recorded at the last store.
type positionEntry struct {
	leafBits string
	tag      string
}

// Client owns the symmetric encryption key, the HMAC key, and the position
// map. It is not safe for concurrent use.
type Client struct {
	masterKey []byte
	encKey    []byte
	macKey    []byte
	position  map[int64]positionEntry
}

// NewClient generates a fresh random master secret and derives separate
// encryption and HMAC subkeys from it via HKDF-SHA256.
func NewClient() (*Client, error) {
	master := make([]byte, masterKeySize)
	if _, err := io.ReadFull(rand.Reader, master); err != nil {
		return nil, fmt.Errorf("oram: failed to generate master key: %w", err)
	}
	encKey, err := deriveSubkey(master, []byte("trustcore-oram-enc"))
	if err != nil {
		return nil, err
	}
	macKey, err := deriveSubkey(master, []byte("trustcore-oram-mac"))
	if err != nil {
		return nil, err
	}
	return &Client{
		masterKey: master,
		encKey:    encKey,
		macKey:    macKey,
		position:  make(map[int64]positionEntry),
	}, nil
}

// Store places data under id on the server. If the server's root bucket has
// never been initialized, every node is first filled with dummies.
func (c *Client) Store(server *Server, id int64, data string) error {
	if _, exists := c.position[id]; exists {
		return ErrIDExists
	}
	if server.Root().bucket == nil {
		if err := c.initializeServer(server); err != nil {
			return err
		}
	}

	tag := computeTag(c.macKey, id, data)
	leaf, err := randIntRange(server.leafMin, server.leafMax)
	if err != nil {
		return err
	}
	leafBits := strconv.FormatInt(int64(leaf), 2)
	c.position[id] = positionEntry{leafBits: leafBits, tag: tag}

	root := server.Root()
	idStr := strconv.FormatInt(id, 10)
	inserted := false
	for i, sl := range root.bucket {
		valPlain, err := aeadDecrypt(c.encKey, sl.value)
		if err != nil {
			return err
		}
		if isDummyValue(valPlain) {
			keyCt, err := aeadEncrypt(c.encKey, []byte(idStr))
			if err != nil {
				return err
			}
			valCt, err := aeadEncrypt(c.encKey, append([]byte{'1'}, data...))
			if err != nil {
				return err
			}
			root.bucket[i] = slot{key: keyCt, value: valCt}
			inserted = true
			break
		}
	}
	if !inserted {
		return ErrBucketFull
	}

	if err := encryptNode(root, c.encKey); err != nil {
		return err
	}
	if err := c.pushDown(server); err != nil {
		return err
	}

	metrics.ORAMStoreTotal.Inc()
	return nil
}

// Retrieve returns the data stored under id, or ("", nil) if id is unknown.
// A successful retrieve reassigns id to a fresh random leaf.
func (c *Client) Retrieve(server *Server, id int64) (string, error) {
	entry, ok := c.position[id]
	if !ok {
		return "", nil
	}

	data, found, err := c.locate(server, id, entry.leafBits)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}

	oldTag := entry.tag
	delete(c.position, id)

	if len(data) != DataLen {
		metrics.ORAMIntegrityFailureTotal.Inc()
		logger.Warn().Int64("id", id).Int("len", len(data)).Msg("invalid data length returned by server")
		return "", ErrInvalidDataLength
	}
	if computeTag(c.macKey, id, string(data)) != oldTag {
		metrics.ORAMIntegrityFailureTotal.Inc()
		logger.Warn().Int64("id", id).Msg("integrity tag mismatch")
		return "", ErrCorrupted
	}

	if err := c.Store(server, id, string(data)); err != nil {
		return "", fmt.Errorf("oram: failed to reinsert after retrieve: %w", err)
	}

	metrics.ORAMRetrieveTotal.Inc()
	return string(data), nil
}

// Delete removes and returns the data stored under id, without reinserting
// it. found is false if id is unknown.
func (c *Client) Delete(server *Server, id int64) (data string, found bool, err error) {
	entry, ok := c.position[id]
	if !ok {
		return "", false, nil
	}

	plain, found, err := c.locate(server, id, entry.leafBits)
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, nil
	}

	delete(c.position, id)
	metrics.ORAMDeleteTotal.Inc()
	return string(plain), true, nil
}

// locate walks root to leaf along the bits of leafBits (dropping the leading
// bit, which is always '1' and carries no routing information), scanning
// each visited bucket for id. On a hit it removes the entry and backfills a
// fresh dummy, returning the entry's decrypted payload with the leading
// real/dummy marker byte stripped.
func (c *Client) locate(server *Server, id int64, leafBits string) ([]byte, bool, error) {
	path := leafBits[1:]
	cur := server.Root()
	idStr := strconv.FormatInt(id, 10)

	for level := 0; level < len(path); level++ {
		for i, sl := range cur.bucket {
			keyPlain, err := aeadDecrypt(c.encKey, sl.key)
			if err != nil {
				return nil, false, err
			}
			if string(keyPlain) != idStr {
				continue
			}
			valPlain, err := aeadDecrypt(c.encKey, sl.value)
			if err != nil {
				return nil, false, err
			}
			dummy, err := freshDummySlot(c.encKey)
			if err != nil {
				return nil, false, err
			}
			cur.bucket[i] = dummy
			return valPlain[1:], true, nil
		}
		if path[level] == '0' {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return nil, false, nil
}

// initializeServer fills every node's bucket with BucketSize dummies. Called
// lazily on the first Store against a fresh server.
func (c *Client) initializeServer(server *Server) error {
	for level := 0; level <= server.Height(); level++ {
		for j := 0; j < server.NumNodesInLevel(level); j++ {
			node := server.NodeAt(level, j)
			bucket, err := fillBucketWithDummies(c.encKey)
			if err != nil {
				return err
			}
			node.bucket = bucket
		}
	}
	return nil
}
