package key

import (
	"bytes"
	"testing"

	"github.com/coredump-go/idb0/internal/wordwidth"
)

func TestNetnodeNameKeyRoundTrip(t *testing.T) {
	k := NetnodeNameKey([]byte("$ segs"))
	name, ok := ParseNetnodeName(k)
	if !ok || string(name) != "$ segs" {
		t.Fatalf("ParseNetnodeName = %q, %v", name, ok)
	}
}

func TestAttrKeyRoundTripWithSubindex(t *testing.T) {
	for _, kind := range []wordwidth.Kind{wordwidth.Bits32, wordwidth.Bits64} {
		k := AttrKey(kind, 0x401000, 'S', 0x1000, true)
		addr, rest, ok := ParseAddress(kind, k)
		if !ok || addr != 0x401000 {
			t.Fatalf("kind=%v ParseAddress = %#x, %v", kind, addr, ok)
		}
		tag, sub, hasSub, ok := ParseTagSubindex(kind, rest)
		if !ok || tag != 'S' || !hasSub || sub != 0x1000 {
			t.Fatalf("kind=%v ParseTagSubindex = %c %#x %v %v", kind, tag, sub, hasSub, ok)
		}
	}
}

func TestAttrKeyRoundTripNoSubindex(t *testing.T) {
	k := AttrKey(wordwidth.Bits32, 0x401000, 'N', 0, false)
	addr, rest, ok := ParseAddress(wordwidth.Bits32, k)
	if !ok || addr != 0x401000 {
		t.Fatalf("ParseAddress = %#x, %v", addr, ok)
	}
	tag, _, hasSub, ok := ParseTagSubindex(wordwidth.Bits32, rest)
	if !ok || tag != 'N' || hasSub {
		t.Fatalf("ParseTagSubindex = %c, hasSub=%v, ok=%v", tag, hasSub, ok)
	}
}

// TestEmptyCommentKeyBytesExact reproduces §8 scenario 1: the exact byte
// layout of an empty comment at address 0x401000 under a 32-bit section.
func TestEmptyCommentKeyBytesExact(t *testing.T) {
	want := []byte{'.', 0x00, 0x40, 0x10, 0x00, 'S', 0x00, 0x00, 0x00, 0x00}
	got := AttrKey(wordwidth.Bits32, 0x401000, 'S', 0, true)
	if !bytes.Equal(got, want) {
		t.Fatalf("AttrKey = % x, want % x", got, want)
	}
}

func TestTagPrefixIsPrefixOfAttrKey(t *testing.T) {
	prefix := TagPrefix(wordwidth.Bits32, 7, 'A')
	full := AttrKey(wordwidth.Bits32, 7, 'A', 99, true)
	if !bytes.HasPrefix(full, prefix) {
		t.Fatalf("TagPrefix is not a prefix of AttrKey")
	}
}

func TestParseAddressRejectsWrongPrefix(t *testing.T) {
	if _, _, ok := ParseAddress(wordwidth.Bits32, []byte("Nfoo\x00")); ok {
		t.Fatalf("expected rejection of non-'.' key")
	}
}

func TestDecodeNetnodeIDWidths(t *testing.T) {
	v, ok := DecodeNetnodeID(wordwidth.Bits32, []byte{0x01, 0x00, 0x00, 0x00})
	if !ok || v != 1 {
		t.Fatalf("DecodeNetnodeID(32) = %v, %v", v, ok)
	}
	v, ok = DecodeNetnodeID(wordwidth.Bits64, []byte{0x02, 0, 0, 0, 0, 0, 0, 0})
	if !ok || v != 2 {
		t.Fatalf("DecodeNetnodeID(64) = %v, %v", v, ok)
	}
}
