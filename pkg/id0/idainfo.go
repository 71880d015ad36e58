package id0

import (
	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/entrystore"
	"github.com/coredump-go/idb0/internal/key"
	"github.com/coredump-go/idb0/internal/wordwidth"
)

// idaInfoNetnode is the well-known netnode holding the database's global
// parameter record (§6).
const idaInfoNetnode = "$ IDA info"

// Layout is the IDB parameter record's variant, selected by Version the
// same way §4.6's file-region decoder is version-gated: databases below
// format version 700 wrote the original (v1) layout.
type Layout int

const (
	LayoutV1 Layout = iota
	LayoutV2
)

// IDAInfo is the database's global parameter record. original_source's
// idainfo struct was not retrieved verbatim (no id0.rs module file in the
// pack — see DESIGN.md), so only its documented leading field, Version, is
// decoded; the remainder is kept as opaque Raw bytes rather than guessed
// at. Version is the only field address-info iteration actually needs
// (§6), so this does not block any operation in scope.
type IDAInfo struct {
	Layout  Layout
	Version uint16
	Raw     []byte
}

// idaInfo fetches and decodes the "$ IDA info" netnode's primary record.
// In practice this is the sup-value at subindex 0 of the netnode.
func idaInfo(store *entrystore.Store, kind wordwidth.Kind) (IDAInfo, error) {
	netnode, err := resolveNetnodeID(store, kind, idaInfoNetnode)
	if err != nil {
		return IDAInfo{}, err
	}
	recKey := key.AttrKey(kind, netnode, 'S', 0, true)
	entries := store.All()
	idx := store.FirstGE(recKey)
	if idx >= len(entries) || string(entries[idx].Key) != string(recKey) {
		return IDAInfo{}, errNotFound("$ IDA info record not found")
	}
	value := entries[idx].Value
	c := bufio0.NewCursor(value)
	version, err := c.ReadU16LE()
	if err != nil {
		return IDAInfo{}, newRecordError(ErrKindUnexpectedEOF, "$ IDA info: version field",
			Record{Netnode: netnode, Tag: 'S'}, err)
	}

	layout := LayoutV1
	if version >= 700 {
		layout = LayoutV2
	}
	return IDAInfo{Layout: layout, Version: version, Raw: c.Rest()}, nil
}
