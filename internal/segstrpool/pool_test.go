package segstrpool

import (
	"bytes"
	"testing"

	"github.com/coredump-go/idb0/internal/varint"
)

func buildPool(start, end uint32, strs [][]byte) []byte {
	var buf []byte
	buf = varint.EncodeDD(buf, start)
	buf = varint.EncodeDD(buf, end)
	for _, s := range strs {
		buf = varint.EncodeDD(buf, uint32(len(s)))
		buf = append(buf, s...)
	}
	return buf
}

func TestDecodePoolAssignsSequentialIndices(t *testing.T) {
	buf := buildPool(1, 4, [][]byte{[]byte("a"), []byte("bb"), []byte("ccc")})
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []String{{1, []byte("a")}, {2, []byte("bb")}, {3, []byte("ccc")}}
	if len(got) != len(want) {
		t.Fatalf("got %d strings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Index != want[i].Index || !bytes.Equal(got[i].Text, want[i].Text) {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodePoolEmptyRange(t *testing.T) {
	buf := buildPool(5, 5, nil)
	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no strings, got %d", len(got))
	}
}

func TestDecodePoolRejectsZeroStart(t *testing.T) {
	buf := buildPool(0, 1, [][]byte{[]byte("x")})
	if _, err := Decode(buf); err == nil {
		t.Fatalf("expected rejection of start index 0")
	}
}

func TestDecodePoolRejectsStartPastEnd(t *testing.T) {
	buf := buildPool(3, 1, nil)
	if _, err := Decode(buf); err == nil {
		t.Fatalf("expected rejection of start > end")
	}
}

func TestDecodePoolRejectsTrailingBytes(t *testing.T) {
	buf := buildPool(1, 2, [][]byte{[]byte("a")})
	buf = append(buf, 0xFF)
	if _, err := Decode(buf); err == nil {
		t.Fatalf("expected rejection of trailing bytes")
	}
}
