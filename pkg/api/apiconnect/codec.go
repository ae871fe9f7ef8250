// Package apiconnect wires the cardplanner services onto Connect. Handlers
// and clients exchange the plain structs from package api using Codec.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// CodecName is registered under the Connect content subtype "json", so
// requests are sent as application/json.
const CodecName = "json"

// Codec marshals messages with encoding/json. It replaces Connect's default
// JSON codec, which only accepts protobuf messages.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// handlerOptions prepends the codec so callers can still add interceptors.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}
