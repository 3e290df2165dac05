// Package pubsub wraps the Kafka-backed message fabric the workers use
// to exchange replay, result, lobby and stats data: a partitioned,
// at-least-once broker carrying msgpack-encoded, source-routed
// envelopes (spec.md §4.5).
package pubsub

import (
	hmsgpack "github.com/hashicorp/go-msgpack/v2/codec"

	"github.com/islanddefense/w3g-platform/pkg/errs"
)

// Message is the envelope every topic carries: a typed payload plus a
// source-routed destination queue and optional debug metadata.
type Message[T any] struct {
	Data         T                 `codec:"data"`
	Destinations []string          `codec:"destinations"`
	Debug        map[string]string `codec:"debug,omitempty"`
}

var mh = func() *hmsgpack.MsgpackHandle {
	h := &hmsgpack.MsgpackHandle{}
	h.RawToString = true
	return h
}()

// Encode msgpack-serializes an envelope for wire transport.
func Encode[T any](msg Message[T]) ([]byte, error) {
	var buf []byte
	enc := hmsgpack.NewEncoderBytes(&buf, mh)
	if err := enc.Encode(msg); err != nil {
		return nil, errs.Serde(err, "encode envelope")
	}
	return buf, nil
}

// Decode msgpack-deserializes an envelope received from the broker.
func Decode[T any](data []byte) (Message[T], error) {
	var msg Message[T]
	dec := hmsgpack.NewDecoderBytes(data, mh)
	if err := dec.Decode(&msg); err != nil {
		return Message[T]{}, errs.Serde(err, "decode envelope")
	}
	return msg, nil
}
