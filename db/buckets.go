package db

import "slices"

// Bucket is a one byte key prefix. Pebble has no native buckets so every
// key in the store starts with one of these.
type Bucket byte

const (
	ChainHeight              Bucket = iota // uint64 height of the newest stored block
	BlockHeadersByNumber                   // Number -> Header
	BlockHeaderNumbersByHash               // Hash -> Number
	ReceiptsByBlockNumber                  // Number -> []TransactionReceipt
	SchemaVersion                          // uint64 on-disk layout version
)

var bucketNames = [...]string{
	ChainHeight:              "ChainHeight",
	BlockHeadersByNumber:     "BlockHeadersByNumber",
	BlockHeaderNumbersByHash: "BlockHeaderNumbersByHash",
	ReceiptsByBlockNumber:    "ReceiptsByBlockNumber",
	SchemaVersion:            "SchemaVersion",
}

// Buckets lists every known prefix in key order.
func Buckets() []Bucket {
	return []Bucket{ChainHeight, BlockHeadersByNumber, BlockHeaderNumbersByHash, ReceiptsByBlockNumber, SchemaVersion}
}

func (b Bucket) String() string {
	if int(b) < len(bucketNames) {
		return bucketNames[b]
	}
	return "Unknown"
}

// Key flattens a prefix and series of byte arrays into a single []byte.
func (b Bucket) Key(key ...[]byte) []byte {
	return append([]byte{byte(b)}, slices.Concat(key...)...)
}
