// Package rpc holds what the gRPC client and server share: the JSON codec,
// service and method names, and request/response messages.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CodecName is the content-subtype the codec is registered under. Clients
// select it per call with grpc.CallContentSubtype; callers that do not (the
// standard health check, for one) keep the default proto codec.
const CodecName = "creatorhub-json"

// Codec marshals plain Go structs with encoding/json and protobuf messages
// with protojson.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

func (Codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(Codec{})
}
