package core

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sunerpy/requests/codec"
)

// Buffer pool tiers for reading a streaming body to completion. Most
// response bodies are small; pooling by size class avoids repeatedly
// growing a single shared buffer to the size of the largest response ever
// seen.
const (
	smallBufSize  = 4 * 1024
	mediumBufSize = 32 * 1024
	largeBufSize  = 256 * 1024
)

var (
	smallBufPool  = sync.Pool{New: func() any { return bytes.NewBuffer(make([]byte, 0, smallBufSize)) }}
	mediumBufPool = sync.Pool{New: func() any { return bytes.NewBuffer(make([]byte, 0, mediumBufSize)) }}
	largeBufPool  = sync.Pool{New: func() any { return bytes.NewBuffer(make([]byte, 0, largeBufSize)) }}
)

// readAllPooled reads r to completion, picking a pool tier from sizeHint (the
// declared Content-Length, or -1 if unknown) and falling back to a direct
// io.ReadAll beyond largeBufSize where pooling stops paying for itself.
func readAllPooled(r io.Reader, sizeHint int64) ([]byte, error) {
	var pool *sync.Pool
	switch {
	case sizeHint < 0 || sizeHint <= smallBufSize:
		pool = &smallBufPool
	case sizeHint <= mediumBufSize:
		pool = &mediumBufPool
	case sizeHint <= largeBufSize:
		pool = &largeBufPool
	default:
		return io.ReadAll(r)
	}
	buf := pool.Get().(*bytes.Buffer)
	buf.Reset()
	defer pool.Put(buf)
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// bodyKind tags which case of InMemoryBody is populated.
type bodyKind uint8

const (
	bodyEmpty bodyKind = iota
	bodyBytes
	bodyText
	bodyJSON
)

// canonicalJSON encodes JSON values with sorted object keys, so Equal and
// Hash see the same bytes for the same value on every call.
var canonicalJSON = codec.NewSonicCodecStd()

// InMemoryBody is a tagged union over exactly four cases: Empty, Bytes, Text,
// and Json. Only one payload field is populated per kind. It is cloneable,
// hashable, and serializable, which is what lets the pipeline replay a
// request and the recorder persist one to disk.
type InMemoryBody struct {
	kind  bodyKind
	bytes []byte
	text  string
	json  any
}

// EmptyBody returns the Empty case.
func EmptyBody() InMemoryBody { return InMemoryBody{kind: bodyEmpty} }

// BytesBody wraps a raw byte sequence.
func BytesBody(b []byte) InMemoryBody {
	cp := make([]byte, len(b))
	copy(cp, b)
	return InMemoryBody{kind: bodyBytes, bytes: cp}
}

// TextBody wraps a string.
func TextBody(s string) InMemoryBody { return InMemoryBody{kind: bodyText, text: s} }

// JSONBody wraps a dynamic JSON value. The value is not required to be an
// object - a bare string, number, array, or null is a representable body.
func JSONBody(v any) InMemoryBody { return InMemoryBody{kind: bodyJSON, json: v} }

// IsEmpty returns true for Empty, for zero-length Bytes/Text, and is always
// false for Json: a JSON value, even null, is a representable body.
func (b InMemoryBody) IsEmpty() bool {
	switch b.kind {
	case bodyEmpty:
		return true
	case bodyBytes:
		return len(b.bytes) == 0
	case bodyText:
		return b.text == ""
	case bodyJSON:
		return false
	default:
		return true
	}
}

// IsJSON reports whether the body is the Json case.
func (b InMemoryBody) IsJSON() bool { return b.kind == bodyJSON }

// JSONValue returns the raw JSON value and whether the body was the Json case.
func (b InMemoryBody) JSONValue() (any, bool) {
	if b.kind != bodyJSON {
		return nil, false
	}
	return b.json, true
}

// Clone returns a deep, independent copy.
func (b InMemoryBody) Clone() InMemoryBody {
	switch b.kind {
	case bodyBytes:
		return BytesBody(b.bytes)
	case bodyJSON:
		return InMemoryBody{kind: bodyJSON, json: cloneJSONValue(b.json)}
	default:
		return b
	}
}

func cloneJSONValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, val := range t {
			cp[k] = cloneJSONValue(val)
		}
		return cp
	case []any:
		cp := make([]any, len(t))
		for i, val := range t {
			cp[i] = cloneJSONValue(val)
		}
		return cp
	default:
		return t
	}
}

// Equal is case-sensitive structural equality. Bytes and Text never compare
// equal even when they encode the same octets: they carry different
// semantic intent.
func (b InMemoryBody) Equal(other InMemoryBody) bool {
	if b.kind != other.kind {
		return false
	}
	switch b.kind {
	case bodyEmpty:
		return true
	case bodyBytes:
		return bytes.Equal(b.bytes, other.bytes)
	case bodyText:
		return b.text == other.text
	case bodyJSON:
		lhs, err1 := canonicalJSON.Encode(b.json)
		rhs, err2 := canonicalJSON.Encode(other.json)
		if err1 != nil || err2 != nil {
			return false
		}
		return bytes.Equal(lhs, rhs)
	default:
		return false
	}
}

// Bytes returns the payload as a byte slice regardless of case.
func (b InMemoryBody) Bytes() ([]byte, error) {
	switch b.kind {
	case bodyEmpty:
		return nil, nil
	case bodyBytes:
		return b.bytes, nil
	case bodyText:
		return []byte(b.text), nil
	case bodyJSON:
		return codec.Marshal(b.json)
	default:
		return nil, nil
	}
}

// Text returns the payload decoded as UTF-8 text.
func (b InMemoryBody) Text() (string, error) {
	if b.kind == bodyText {
		return b.text, nil
	}
	data, err := b.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Hash writes a stable, kind-discriminated representation to h.
func (b InMemoryBody) Hash(h io.Writer) {
	switch b.kind {
	case bodyEmpty:
		h.Write([]byte{0})
	case bodyBytes:
		h.Write([]byte{1})
		h.Write(b.bytes)
	case bodyText:
		h.Write([]byte{2})
		h.Write([]byte(b.text))
	case bodyJSON:
		h.Write([]byte{3})
		data, _ := canonicalJSON.Encode(b.json)
		h.Write(data)
	}
}

// MarshalJSON serializes the body untagged: Empty -> absent (null), Text ->
// JSON string, Bytes -> JSON array of u8, Json -> the JSON value itself.
func (b InMemoryBody) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case bodyEmpty:
		return []byte("null"), nil
	case bodyText:
		return codec.Marshal(b.text)
	case bodyBytes:
		ints := make([]int, len(b.bytes))
		for i, v := range b.bytes {
			ints[i] = int(v)
		}
		return codec.Marshal(ints)
	case bodyJSON:
		return codec.Marshal(b.json)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON maps null to Empty, an array of integers 0-255 to Bytes, and
// a JSON string to Text; any other value, objects included, becomes Json.
func (b *InMemoryBody) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == "null" {
		*b = EmptyBody()
		return nil
	}
	var asBytes []byte
	if err := codec.Unmarshal(data, &asBytes); err == nil {
		// A byte array round-trips as a JSON array of small non-negative
		// integers; confirm that shape before committing to it, otherwise
		// a JSON array of larger numbers silently truncates into bytes.
		var ints []int
		if err2 := codec.Unmarshal(data, &ints); err2 == nil {
			ok := true
			for _, n := range ints {
				if n < 0 || n > 255 {
					ok = false
					break
				}
			}
			if ok {
				*b = BytesBody(asBytes)
				return nil
			}
		}
	}
	var asString string
	if err := codec.Unmarshal(data, &asString); err == nil {
		*b = TextBody(asString)
		return nil
	}
	var asJSON any
	if err := codec.Unmarshal(data, &asJSON); err != nil {
		return err
	}
	*b = JSONBody(asJSON)
	return nil
}

// Body is either an in-memory body or a streaming one read from the
// transport. Only the in-memory variant is cloneable; a streaming body is
// consumed exactly once.
type Body struct {
	mem        *InMemoryBody
	stream     io.ReadCloser
	streamSize int64
	consumed   bool
}

// NewInMemoryBody wraps an InMemoryBody as a Body.
func NewInMemoryBody(b InMemoryBody) Body { return Body{mem: &b} }

// NewStreamingBody wraps a not-yet-read stream of unknown size.
func NewStreamingBody(r io.ReadCloser) Body { return Body{stream: r, streamSize: -1} }

// NewStreamingBodyWithSize wraps a not-yet-read stream whose size is known
// in advance (typically the transport's Content-Length), letting
// materialization pick a close-fitting buffer instead of guessing.
func NewStreamingBodyWithSize(r io.ReadCloser, size int64) Body {
	return Body{stream: r, streamSize: size}
}

// IsStreaming reports whether the body has not yet been materialized.
func (b Body) IsStreaming() bool { return b.mem == nil && b.stream != nil }

// IsEmpty reports emptiness without consuming a streaming body when its
// size is already knowable as in-memory; streaming bodies of unknown size
// are treated as non-empty until materialized.
func (b Body) IsEmpty() bool {
	if b.mem != nil {
		return b.mem.IsEmpty()
	}
	return b.stream == nil
}

// Clone returns an independent copy. Only valid for in-memory bodies; it
// panics if called on a streaming body, since streaming bodies cannot be
// replayed without being read first.
func (b Body) Clone() Body {
	if b.mem == nil {
		panic("core: cannot clone a streaming body; materialize it first")
	}
	cloned := b.mem.Clone()
	return Body{mem: &cloned}
}

// InMemory materializes the body, reading a streaming body to completion
// exactly once. contentType directs how raw bytes are interpreted when the
// body is still streaming; it is ignored for an already in-memory body.
func (b *Body) InMemory(contentType string) (InMemoryBody, error) {
	if b.mem != nil {
		return *b.mem, nil
	}
	if b.stream == nil {
		empty := EmptyBody()
		b.mem = &empty
		return empty, nil
	}
	if b.consumed {
		return InMemoryBody{}, errAlreadyConsumed
	}
	defer b.stream.Close()
	data, err := readAllPooled(b.stream, b.streamSize)
	b.consumed = true
	if err != nil {
		return InMemoryBody{}, err
	}
	mem := MaterializeByContentType(data, contentType)
	b.mem = &mem
	b.stream = nil
	return mem, nil
}

// Reader returns an io.Reader over the body's current bytes without
// consuming a streaming body more than once; for an in-memory body this
// allocates a fresh reader each call so the body remains replayable.
func (b *Body) Reader() (io.Reader, error) {
	if b.mem != nil {
		data, err := b.mem.Bytes()
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	if b.stream == nil {
		return strings.NewReader(""), nil
	}
	return b.stream, nil
}

// Size returns the known size of an in-memory body, or -1 if the body is
// still streaming (unknown until materialized).
func (b Body) Size() int64 {
	if b.mem == nil {
		return -1
	}
	data, err := b.mem.Bytes()
	if err != nil {
		return -1
	}
	return int64(len(data))
}

// MaterializeByContentType parses an empty payload into Empty,
// "application/json" into Json, "application/octet-stream" into Bytes, and
// otherwise into Text if the payload is valid UTF-8, else Bytes. It is
// idempotent: re-applying it to the bytes of its own result with the same
// content type reproduces the same case.
func MaterializeByContentType(data []byte, contentType string) InMemoryBody {
	base := contentType
	if idx := strings.IndexByte(base, ';'); idx != -1 {
		base = base[:idx]
	}
	base = strings.TrimSpace(strings.ToLower(base))
	if len(data) == 0 {
		return EmptyBody()
	}
	switch base {
	case "application/json":
		var v any
		if err := codec.Unmarshal(data, &v); err == nil {
			return JSONBody(v)
		}
		return BytesBody(data)
	case "application/octet-stream":
		return BytesBody(data)
	default:
		if utf8.Valid(data) {
			return TextBody(string(data))
		}
		return BytesBody(data)
	}
}
