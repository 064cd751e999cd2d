// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sweeps

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Raw submission payloads are kept verbatim for audit and replay, but a
// ward sweep body compresses roughly 10x, so they are zstd-framed at
// rest. Shared encoder/decoder via EncodeAll/DecodeAll; both are
// concurrency-safe in that mode.

var (
	payloadOnce sync.Once
	payloadEnc  *zstd.Encoder
	payloadDec  *zstd.Decoder
)

func payloadCodec() (*zstd.Encoder, *zstd.Decoder) {
	payloadOnce.Do(func() {
		// Both constructors only error on bad options; none are passed.
		payloadEnc, _ = zstd.NewWriter(nil)
		payloadDec, _ = zstd.NewReader(nil)
	})
	return payloadEnc, payloadDec
}

// CompressPayload frames a raw submission body for the events.data column.
func CompressPayload(raw []byte) []byte {
	enc, _ := payloadCodec()
	return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2))
}

// DecompressPayload recovers the raw submission body from a stored frame.
func DecompressPayload(data []byte) ([]byte, error) {
	_, dec := payloadCodec()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress event payload: %w", err)
	}
	return raw, nil
}
