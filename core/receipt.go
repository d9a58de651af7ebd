package core

import (
	"github.com/NethermindEth/starkevents/core/felt"
)

type Event struct {
	From *felt.Felt   `cbor:"1,keyasint,omitempty"`
	Keys []*felt.Felt `cbor:"2,keyasint,omitempty"`
	Data []*felt.Felt `cbor:"3,keyasint,omitempty"`
}

// TransactionReceipt holds the events a transaction emitted, in emission order.
type TransactionReceipt struct {
	TransactionHash *felt.Felt `cbor:"1,keyasint,omitempty"`
	Events          []*Event   `cbor:"2,keyasint,omitempty"`
}
