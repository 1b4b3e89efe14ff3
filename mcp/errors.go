package mcp

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/fwojciec/toolrun"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// wireError is the JSON-RPC error object as it appears on the wire.
type wireError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// convertError marks connection loss and JSON-RPC errors with the matching
// toolrun sentinels so callers can classify them without importing the SDK.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mcpsdk.ErrConnectionClosed) {
		return errors.Mark(err, toolrun.ErrConnectionClosed)
	}
	if _, ok := protocolError(err); ok {
		return errors.Mark(err, toolrun.ErrProtocol)
	}
	return err
}

// protocolError finds a JSON-RPC error in the chain. The SDK keeps its wire
// error type internal, so errors are recognized by their JSON encoding.
func protocolError(err error) (wireError, bool) {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		raw, mErr := json.Marshal(e)
		if mErr != nil {
			continue
		}
		var w wireError
		if json.Unmarshal(raw, &w) == nil && w.Code != 0 && w.Message != "" {
			return w, true
		}
	}
	return wireError{}, false
}
