package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/klauspost/compress/zstd"
)

// Shared stateless coders; EncodeAll and DecodeAll are safe for concurrent use.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// Encode renders a snapshot as zstd-compressed JSON.
func Encode(s game.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/4)), nil
}

// Decode reverses Encode. It only checks the encoding; game.Deserialize
// validates the content.
func Decode(data []byte) (game.Snapshot, error) {
	var s game.Snapshot
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return s, fmt.Errorf("decompress snapshot: %w: %w", game.ErrCorruptSnapshot, err)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("unmarshal snapshot: %w: %w", game.ErrCorruptSnapshot, err)
	}
	return s, nil
}
