package share

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/DuyDuc2014/l-ch/pkg/model"
)

// Prefix marks a Lich share code and carries the codec version. Codes
// are URL-safe so they can travel in a query string or a chat message.
const Prefix = "L1:"

// MaxEncodedLen caps accepted codes. A realistic planner state is a few
// kilobytes compressed; anything larger is malformed or hostile.
const MaxEncodedLen = 64 * 1024

// maxDecodedLen bounds the decompressed snapshot size.
const maxDecodedLen = 1 << 20

// Encode packs a state snapshot into a share code: JSON, deflate, then
// URL-safe base64 behind the version prefix. The snapshot is validated
// first so a code, once produced, always decodes cleanly.
func Encode(st *model.State) (string, error) {
	if err := st.Validate(); err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("init compressor: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compress state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("flush compressor: %w", err)
	}

	return Prefix + base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode unpacks a share code produced by Encode and validates the
// snapshot before returning it. Callers can hand the result straight to
// the store.
func Decode(code string) (*model.State, error) {
	code = strings.TrimSpace(code)
	if len(code) > MaxEncodedLen {
		return nil, fmt.Errorf("share code too long: %d bytes", len(code))
	}
	if !strings.HasPrefix(code, Prefix) {
		return nil, fmt.Errorf("not a lich share code: missing %q prefix", Prefix)
	}

	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(code, Prefix))
	if err != nil {
		return nil, fmt.Errorf("decode share code: %w", err)
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	defer zr.Close()
	raw, err := io.ReadAll(io.LimitReader(zr, maxDecodedLen+1))
	if err != nil {
		return nil, fmt.Errorf("decompress share code: %w", err)
	}
	if len(raw) > maxDecodedLen {
		return nil, fmt.Errorf("share code expands past %d bytes", maxDecodedLen)
	}

	var st model.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("invalid share code: %w", err)
	}
	return &st, nil
}
