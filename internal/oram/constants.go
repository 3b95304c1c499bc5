package oram

// BucketSize is the fixed number of slots held by every node in the tree,
// real or dummy.
const BucketSize = 4

// DataLen is the fixed plaintext length, in bytes, of real stored values.
const DataLen = 4

// DummyLen is the fixed plaintext length, in bytes, of the random key of a
// dummy slot.
const DummyLen = 3

// DummySentinel is the first byte of every dummy value plaintext; real values
// start with '1' instead.
const DummySentinel byte = '0'
