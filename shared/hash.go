package shared

import (
	"encoding/binary"
	"reflect"
	"unsafe"
)

// HashFn is a double hasher: it returns two effectively independent hash
// values for t, used as H0 and H1 by the table engine. A hasher that
// derives h1 from h0 by a cheap mix is acceptable; it will not violate
// safety, only raise collision rates.
type HashFn[T any] func(t T) (h0, h1 uint64)

// GetHasher returns a double hasher for Go's built-in ordered and string
// kinds, mirroring the teacher's GetHasher but producing two 64-bit
// hash values per key instead of one: two finalizer outputs for numeric
// kinds, two fnv1aModified passes for strings.
func GetHasher[Key any]() HashFn[Key] {
	var key Key
	kind := reflect.ValueOf(&key).Elem().Type().Kind()

	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(t Key) (uint64, uint64) {
			v := toUint64(t)
			return hashMix(v), hashMix(v ^ goldenGamma)
		}
	case reflect.Float32, reflect.Float64:
		return func(t Key) (uint64, uint64) {
			v := toUint64(t)
			return hashMix(v), hashMix(v ^ goldenGamma)
		}
	case reflect.String:
		return func(t Key) (uint64, uint64) {
			s := any(t).(string)
			b := []byte(s)
			h0 := fnv1aModified(b)
			h1 := fnv1aModified(append(b, 0xff))
			return h0, h1
		}
	default:
		panic("shared: unsupported key kind for GetHasher, provide a custom HashFn")
	}
}

// goldenGamma is Fibonacci hashing's multiplicative constant, used to
// decorrelate H1 from H0 for the same underlying 64-bit value.
const goldenGamma = 0x9E3779B97F4A7C15

func toUint64[T any](t T) uint64 {
	switch v := any(t).(type) {
	case int:
		return uint64(v)
	case int8:
		return uint64(v)
	case int16:
		return uint64(v)
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case uintptr:
		return uint64(v)
	case float32:
		return uint64(floatBitsFloat32(v))
	case float64:
		return floatBitsFloat64(v)
	default:
		panic("shared: unsupported numeric key kind")
	}
}

func floatBitsFloat32(f float32) uint32 {
	return *(*uint32)(unsafe.Pointer(&f))
}

func floatBitsFloat64(f float64) uint64 {
	return *(*uint64)(unsafe.Pointer(&f))
}

// hashMix implements MurmurHash3's 64-bit finalizer, the same mixer the
// teacher's hashQword uses.
func hashMix(key uint64) uint64 {
	key ^= key >> 33
	key *= 0xff51afd7ed558ccd
	key ^= key >> 33
	key *= 0xc4ceb9fe1a85ec53
	key ^= key >> 33
	return key
}

// fnv1aModified implements the same simplified, faster variant of fnv1a
// the teacher uses for string hashing.
func fnv1aModified(b []byte) uint64 {
	const prime64 = uint64(1099511628211)
	h := uint64(14695981039346656037)

	for len(b) >= 8 {
		x := binary.BigEndian.Uint32(b)
		b = b[4:]
		y := binary.BigEndian.Uint32(b)
		b = b[4:]
		z := (uint64(x) << 32) | uint64(y)
		h = (h ^ z) * prime64
	}

	if len(b) >= 4 {
		x := binary.BigEndian.Uint16(b)
		b = b[2:]
		y := binary.BigEndian.Uint16(b)
		b = b[2:]
		z := (uint64(x) << 16) | uint64(y)
		h = (h ^ z) * prime64
	}

	if len(b) >= 2 {
		h = (h ^ uint64(b[0]^b[1])) * prime64
		b = b[2:]
	}

	if len(b) > 0 {
		h = (h ^ uint64(b[0])) * prime64
	}

	return h
}
