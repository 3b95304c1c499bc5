package oram

import (
	"fmt"
	"strconv"

	"github.com/dor890/trustcore/internal/metrics"
)

// pushDown runs a full eviction pass: at the root, one node is selected; at
// every other level, two distinct nodes are selected. Two distinct slots
// from each selected node are pushed one level toward their assigned leaf
// (or a random direction, for dummies). This keeps every bucket at exactly
// BucketSize occupancy while moving real entries monotonically closer to
// their destination.
func (c *Client) pushDown(server *Server) error {
	for level := 0; level < server.Height(); level++ {
		if level == 0 {
			if err := c.randAndPush(server.Root(), level); err != nil {
				return err
			}
			continue
		}
		n := server.NumNodesInLevel(level)
		i1, i2, err := randDistinctPair(n)
		if err != nil {
			return err
		}
		if err := c.randAndPush(server.NodeAt(level, i1), level); err != nil {
			return err
		}
		if i2 != i1 {
			if err := c.randAndPush(server.NodeAt(level, i2), level); err != nil {
				return err
			}
		}
	}
	return nil
}

// randAndPush picks two distinct slots from node's bucket and pushes each
// one level down.
func (c *Client) randAndPush(node *Node, level int) error {
	i1, i2, err := randDistinctPair(len(node.bucket))
	if err != nil {
		return err
	}
	e1, e2 := node.bucket[i1], node.bucket[i2]
	if err := c.pushSelected(node, i1, e1, level); err != nil {
		return err
	}
	if i2 == i1 {
		return nil
	}
	if err := c.pushSelected(node, i2, e2, level); err != nil {
		return err
	}
	return nil
}

// pushSelected moves one bucket entry to the appropriate child, reusing its
// existing ciphertext, and backfills the vacated parent slot with a fresh
// dummy.
func (c *Client) pushSelected(node *Node, idx int, entry slot, level int) error {
	keyPlain, err := aeadDecrypt(c.encKey, entry.key)
	if err != nil {
		return err
	}
	valPlain, err := aeadDecrypt(c.encKey, entry.value)
	if err != nil {
		return err
	}

	var goRight bool
	if isDummyValue(valPlain) {
		bit, err := randBit()
		if err != nil {
			return err
		}
		goRight = bit == 1
	} else {
		id, err := strconv.ParseInt(string(keyPlain), 10, 64)
		if err != nil {
			return fmt.Errorf("oram: corrupt real bucket entry: %w", err)
		}
		pos, ok := c.position[id]
		if !ok {
			return fmt.Errorf("oram: real entry %d missing from position map", id)
		}
		path := pos.leafBits[1:]
		if level >= len(path) {
			return fmt.Errorf("oram: push-down level %d exceeds path length %d", level, len(path))
		}
		goRight = path[level] == '1'
	}

	var next *Node
	if goRight {
		next = node.right
	} else {
		next = node.left
	}

	dummy, err := freshDummySlot(c.encKey)
	if err != nil {
		return err
	}
	node.bucket[idx] = dummy

	for i, sl := range next.bucket {
		nextValPlain, err := aeadDecrypt(c.encKey, sl.value)
		if err != nil {
			return err
		}
		if isDummyValue(nextValPlain) {
			next.bucket[i] = entry
			metrics.ORAMEvictionMovesTotal.Inc()
			return nil
		}
	}
	return ErrBucketFull
}
