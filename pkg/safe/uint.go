// Package safe provides helpers for safe numeric conversions with range checks.
package safe

import (
	"fmt"
	"math/big"
)

const uint256Bits = 256

// ParseUint256 parses a decimal digit string into an unsigned 256-bit integer.
// Negative values, non-decimal input and values above 2^256-1 are rejected.
func ParseUint256(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("value %q is not a decimal integer", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("value %q out of uint256 range", s)
	}
	if v.BitLen() > uint256Bits {
		return nil, fmt.Errorf("value %q out of uint256 range", s)
	}
	return v, nil
}

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint64, error) {
	switch value := any(v).(type) {
	case int:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
		return uint64(value), nil
	case int32:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
		return uint64(value), nil
	case int64:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
		return uint64(value), nil
	case uint:
		return uint64(value), nil
	case uint32:
		return uint64(value), nil
	case uint64:
		return value, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
