package id0

import (
	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/entrystore"
	"github.com/coredump-go/idb0/internal/key"
	"github.com/coredump-go/idb0/internal/wordwidth"
)

// resolveNetnodeID resolves a well-known netnode name to its numeric id
// (§4.3), grounded on original_source's netnode-by-name lookup: fetch
// 'N'+name+'\0', decode the value as a W-bit little-endian integer.
func resolveNetnodeID(store *entrystore.Store, kind wordwidth.Kind, name string) (uint64, error) {
	k := key.NetnodeNameKey([]byte(name))
	idx := store.FirstGE(k)
	entries := store.All()
	if idx >= len(entries) || string(entries[idx].Key) != string(k) {
		return 0, errNotFound("netnode " + name + " not found")
	}
	id, ok := key.DecodeNetnodeID(kind, entries[idx].Value)
	if !ok {
		return 0, newError(ErrKindCorrupt, "netnode "+name+": value too short for its id", nil)
	}
	return id, nil
}

// allSubkeys returns every record of (netnode, tag), in key order (§4.3).
func allSubkeys(store *entrystore.Store, kind wordwidth.Kind, netnode uint64, tag byte) []entrystore.Entry {
	prefix := key.TagPrefix(kind, netnode, tag)
	return store.RangeByPrefix(prefix)
}

// contiguousSubkeys returns the prefix of allSubkeys(netnode, tag) whose
// subindices run start, start+1, start+2, … without a gap; it stops at the
// first entry whose subindex does not match the expected next value (§4.3).
func contiguousSubkeys(store *entrystore.Store, kind wordwidth.Kind, netnode uint64, tag byte, start uint64) []entrystore.Entry {
	all := allSubkeys(store, kind, netnode, tag)
	prefixLen := key.KeyLenNetnodeTag(kind)
	width := key.Width(kind)

	want := start
	out := make([]entrystore.Entry, 0, len(all))
	for _, e := range all {
		suffix := e.Key[prefixLen:]
		if len(suffix) != width {
			break
		}
		c := bufio0.NewCursor(suffix)
		var sub uint64
		var err error
		switch width {
		case 4:
			var v uint32
			v, err = c.ReadU32BE()
			sub = uint64(v)
		default:
			sub, err = c.ReadU64BE()
		}
		if err != nil || sub != want {
			break
		}
		out = append(out, e)
		want++
	}
	return out
}
