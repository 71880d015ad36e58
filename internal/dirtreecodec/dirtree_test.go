package dirtreecodec

import (
	"bytes"
	"testing"

	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/varint"
)

func decodeU32Leaf(c *bufio0.Cursor) (uint32, error) {
	return varint.DecodeDD(c)
}

func encodeLeaf(v uint32) []byte {
	buf := varint.EncodeDD(nil, markerLeaf)
	buf = varint.EncodeDD(buf, v)
	return buf
}

func encodeDirectory(name []byte, children ...[]byte) []byte {
	buf := varint.EncodeDD(nil, markerDirectory)
	buf = varint.EncodeDD(buf, uint32(len(name)))
	buf = append(buf, name...)
	buf = varint.EncodeDD(buf, uint32(len(children)))
	for _, c := range children {
		buf = append(buf, c...)
	}
	return buf
}

func TestDecodeFlatLeaves(t *testing.T) {
	var buf []byte
	buf = append(buf, encodeLeaf(1)...)
	buf = append(buf, encodeLeaf(2)...)
	nodes, err := Decode(buf, decodeU32Leaf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(nodes) != 2 || nodes[0].Leaf != 1 || nodes[1].Leaf != 2 {
		t.Fatalf("got %+v", nodes)
	}
}

func TestDecodeNestedDirectory(t *testing.T) {
	inner := encodeDirectory([]byte("funcs"), encodeLeaf(42))
	buf := encodeDirectory([]byte("root"), inner, encodeLeaf(7))
	nodes, err := Decode(buf, decodeU32Leaf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(nodes) != 1 || nodes[0].IsLeaf {
		t.Fatalf("expected single top-level directory, got %+v", nodes)
	}
	root := nodes[0]
	if !bytes.Equal(root.Name, []byte("root")) || len(root.Children) != 2 {
		t.Fatalf("root = %+v", root)
	}
	if root.Children[0].IsLeaf || !bytes.Equal(root.Children[0].Name, []byte("funcs")) {
		t.Fatalf("first child = %+v", root.Children[0])
	}
	if root.Children[0].Children[0].Leaf != 42 {
		t.Fatalf("nested leaf = %+v", root.Children[0].Children[0])
	}
	if !root.Children[1].IsLeaf || root.Children[1].Leaf != 7 {
		t.Fatalf("second child = %+v", root.Children[1])
	}
}

func TestDecodeRejectsUnknownMarker(t *testing.T) {
	buf := varint.EncodeDD(nil, 5)
	if _, err := Decode(buf, decodeU32Leaf); err == nil {
		t.Fatalf("expected rejection of unknown marker")
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	buf := encodeLeaf(1)
	buf = append(buf, 0xFF)
	if _, err := Decode(buf, decodeU32Leaf); err == nil {
		t.Fatalf("expected rejection of trailing bytes")
	}
}

func TestDecodeEmptyForest(t *testing.T) {
	nodes, err := Decode(nil, decodeU32Leaf)
	if err != nil || len(nodes) != 0 {
		t.Fatalf("Decode(nil) = %+v, %v", nodes, err)
	}
}
