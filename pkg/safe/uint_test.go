package safe

import (
	"math/big"
	"strings"
	"testing"
)

func TestParseUint256(t *testing.T) {
	t.Parallel()

	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	tests := []struct {
		name    string
		input   string
		want    *big.Int
		wantErr bool
	}{
		{name: "zero", input: "0", want: big.NewInt(0)},
		{name: "small", input: "42", want: big.NewInt(42)},
		{name: "one ether in wei", input: "1000000000000000000", want: new(big.Int).SetUint64(1_000_000_000_000_000_000)},
		{name: "max uint256", input: maxUint256.String(), want: maxUint256},
		{name: "overflow", input: new(big.Int).Add(maxUint256, big.NewInt(1)).String(), wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "hex", input: "0x10", wantErr: true},
		{name: "garbage", input: "12a3", wantErr: true},
		{name: "whitespace", input: " 1", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseUint256(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Cmp(tt.want) != 0 {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUint64(t *testing.T) {
	t.Parallel()

	if got, err := Uint64(10); err != nil || got != 10 {
		t.Fatalf("Uint64(10) = %d, %v", got, err)
	}
	if got, err := Uint64(int64(0)); err != nil || got != 0 {
		t.Fatalf("Uint64(int64(0)) = %d, %v", got, err)
	}
	if got, err := Uint64(uint64(1 << 63)); err != nil || got != 1<<63 {
		t.Fatalf("Uint64(1<<63) = %d, %v", got, err)
	}
	if _, err := Uint64(-1); err == nil || !strings.Contains(err.Error(), "out of uint64 range") {
		t.Fatalf("expected range error, got %v", err)
	}
	if _, err := Uint64(int32(-5)); err == nil {
		t.Fatal("expected range error for negative int32")
	}
}
