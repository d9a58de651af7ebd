package core

import (
	"encoding/binary"

	"github.com/NethermindEth/starkevents/core/felt"
	"github.com/NethermindEth/starkevents/db"
	"github.com/NethermindEth/starkevents/encoder"
)

func MarshalBlockNumber(blockNumber uint64) []byte {
	const blockNumberSize = 8

	numBytes := make([]byte, blockNumberSize)
	binary.BigEndian.PutUint64(numBytes, blockNumber)

	return numBytes
}

func GetChainHeight(txn db.Transaction) (uint64, error) {
	var height uint64
	err := txn.Get(db.ChainHeight.Key(), func(data []byte) error {
		height = binary.BigEndian.Uint64(data)
		return nil
	})
	return height, err
}

func WriteChainHeight(txn db.Transaction, height uint64) error {
	return txn.Set(db.ChainHeight.Key(), MarshalBlockNumber(height))
}

func GetBlockHeaderByNumber(txn db.Transaction, number uint64) (*Header, error) {
	var header *Header
	err := txn.Get(db.BlockHeadersByNumber.Key(MarshalBlockNumber(number)), func(data []byte) error {
		return encoder.Unmarshal(data, &header)
	})
	return header, err
}

func WriteBlockHeaderByNumber(txn db.Transaction, header *Header) error {
	data, err := encoder.Marshal(header)
	if err != nil {
		return err
	}
	return txn.Set(db.BlockHeadersByNumber.Key(MarshalBlockNumber(header.Number)), data)
}

func GetBlockHeaderNumberByHash(txn db.Transaction, hash *felt.Felt) (uint64, error) {
	var number uint64
	err := txn.Get(db.BlockHeaderNumbersByHash.Key(hash.Marshal()), func(data []byte) error {
		number = binary.BigEndian.Uint64(data)
		return nil
	})
	return number, err
}

func WriteBlockHeaderNumberByHash(txn db.Transaction, hash *felt.Felt, number uint64) error {
	return txn.Set(db.BlockHeaderNumbersByHash.Key(hash.Marshal()), MarshalBlockNumber(number))
}

// GetReceiptsByBlockNumber returns the receipts of a block in transaction order.
func GetReceiptsByBlockNumber(txn db.Transaction, number uint64) ([]*TransactionReceipt, error) {
	var receipts []*TransactionReceipt
	err := txn.Get(db.ReceiptsByBlockNumber.Key(MarshalBlockNumber(number)), func(data []byte) error {
		return encoder.Unmarshal(data, &receipts)
	})
	return receipts, err
}

func WriteReceiptsByBlockNumber(txn db.Transaction, number uint64, receipts []*TransactionReceipt) error {
	data, err := encoder.Marshal(receipts)
	if err != nil {
		return err
	}
	return txn.Set(db.ReceiptsByBlockNumber.Key(MarshalBlockNumber(number)), data)
}
