package oram

// slot is one (ciphertext-key, ciphertext-value) pair held in a bucket. Both
// fields are opaque to the server; only the client's encryption key can tell
// a real entry from a dummy.
type slot struct {
	key   []byte
	value []byte
}

// Node is a bucket of fixed capacity BucketSize, linked to its parent and
// two children. A nil bucket means the node has not yet been initialized
// with dummies.
type Node struct {
	parent *Node
	left   *Node
	right  *Node
	bucket []slot
}

// freshDummySlot builds one encrypted dummy slot: a random lowercase key and
// the fixed dummy plaintext "00000" (DummySentinel followed by DummyLen+1
// more sentinel bytes, matching the 5-byte literal used in the source).
func freshDummySlot(encKey []byte) (slot, error) {
	keyPlain, err := randLowercase(DummyLen)
	if err != nil {
		return slot{}, err
	}
	encKeyCt, err := aeadEncrypt(encKey, []byte(keyPlain))
	if err != nil {
		return slot{}, err
	}
	valCt, err := aeadEncrypt(encKey, dummyPlaintext())
	if err != nil {
		return slot{}, err
	}
	return slot{key: encKeyCt, value: valCt}, nil
}

// dummyPlaintext is the fixed 5-byte dummy value, all sentinel bytes.
func dummyPlaintext() []byte {
	return []byte{DummySentinel, DummySentinel, DummySentinel, DummySentinel, DummySentinel}
}

// isDummyValue reports whether a decrypted slot value is a dummy, i.e. its
// first byte is the sentinel.
func isDummyValue(plain []byte) bool {
	return len(plain) > 0 && plain[0] == DummySentinel
}

// fillBucketWithDummies returns a freshly encrypted bucket of BucketSize
// dummy slots.
func fillBucketWithDummies(encKey []byte) ([]slot, error) {
	bucket := make([]slot, BucketSize)
	for i := range bucket {
		s, err := freshDummySlot(encKey)
		if err != nil {
			return nil, err
		}
		bucket[i] = s
	}
	return bucket, nil
}

// encryptNode re-encrypts every slot in a node's bucket under a fresh nonce,
// so a freshly inserted entry is indistinguishable from the slots around it.
func encryptNode(node *Node, encKey []byte) error {
	newBucket := make([]slot, len(node.bucket))
	for i, sl := range node.bucket {
		keyPlain, err := aeadDecrypt(encKey, sl.key)
		if err != nil {
			return err
		}
		valPlain, err := aeadDecrypt(encKey, sl.value)
		if err != nil {
			return err
		}
		keyCt, err := aeadEncrypt(encKey, keyPlain)
		if err != nil {
			return err
		}
		valCt, err := aeadEncrypt(encKey, valPlain)
		if err != nil {
			return err
		}
		newBucket[i] = slot{key: keyCt, value: valCt}
	}
	node.bucket = newBucket
	return nil
}
