// Package rpccore holds the error values shared by every RPC method.
package rpccore

import (
	"github.com/NethermindEth/starkevents/jsonrpc"
)

var (
	ErrBlockNotFound            = &jsonrpc.Error{Code: 24, Message: "Block not found"}
	ErrPageSizeTooBig           = &jsonrpc.Error{Code: 31, Message: "Requested page size is too big"}
	ErrNoBlock                  = &jsonrpc.Error{Code: 32, Message: "There are no blocks"}
	ErrInvalidContinuationToken = &jsonrpc.Error{Code: 33, Message: "The supplied continuation token is invalid or unknown"}
	ErrTooManyKeysInFilter      = &jsonrpc.Error{Code: 34, Message: "Too many keys provided in a filter"}
	ErrInvalidBlockRange        = jsonrpc.Err(jsonrpc.InvalidParams, "from_block is greater than to_block")
	ErrInternal                 = &jsonrpc.Error{Code: jsonrpc.InternalError, Message: "Internal error"}
)
