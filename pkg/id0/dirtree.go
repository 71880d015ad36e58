package id0

import (
	"github.com/coredump-go/idb0/internal/bufio0"
	"github.com/coredump-go/idb0/internal/dirtreecodec"
	"github.com/coredump-go/idb0/internal/varint"
)

// Well-known dirtree netnode names (§6: "`$ dirtree/…` variants for each
// dirtree family"). original_source's dirtree.rs module was never retrieved
// verbatim (see internal/dirtreecodec's package doc and DESIGN.md), so these
// exact strings are drawn from the public IDA SDK's documented netnode
// naming convention rather than confirmed against the Rust source.
const (
	netnodeDirtreeNames              = "$ dirtree/names"
	netnodeDirtreeFuncs              = "$ dirtree/funcs"
	netnodeDirtreeTypes              = "$ dirtree/tinfos"
	netnodeDirtreeStructs            = "$ dirtree/structs"
	netnodeDirtreeEnums              = "$ dirtree/enums"
	netnodeDirtreeImports            = "$ dirtree/imports"
	netnodeDirtreeBreakpoints        = "$ dirtree/bpts"
	netnodeDirtreeBookmarksTiplace   = "$ dirtree/abookmarks_tiplace"
	netnodeDirtreeBookmarksStructPlc = "$ dirtree/abookmarks_structplace"
)

// DirTreeNode is a decoded dirtree entry: either a leaf carrying an
// ordinal/address value, or a named directory carrying its own children
// (§4.8).
type DirTreeNode = dirtreecodec.Node[uint64]

// dirTree fetches and decodes one well-known dirtree netnode, with its leaf
// payload read as a single packed address-sized value — every dirtree
// family in this parser's scope (names, function addresses, type/struct/enum
// ordinals, import indices, breakpoint addresses) uses that shape. Returns
// nil with no error when the netnode is absent: not every database
// populates every dirtree family.
func (s *Section) dirTree(name string) ([]DirTreeNode, error) {
	netnode, err := resolveNetnodeID(s.store, s.kind, name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	entries := allSubkeys(s.store, s.kind, netnode, 'S')
	var buf []byte
	for _, e := range entries {
		buf = append(buf, e.Value...)
	}
	kind := s.kind
	nodes, err := dirtreecodec.Decode(buf, func(c *bufio0.Cursor) (uint64, error) {
		return varint.DecodeUsize(c, kind)
	})
	if err != nil {
		return nil, newRecordError(ErrKindCorrupt, "dirtree "+name, Record{Netnode: netnode, Tag: 'S'}, err)
	}
	return nodes, nil
}

// DirTreeNames decodes the "named entities" dirtree.
func (s *Section) DirTreeNames() ([]DirTreeNode, error) { return s.dirTree(netnodeDirtreeNames) }

// DirTreeFunctionAddresses decodes the function-address dirtree.
func (s *Section) DirTreeFunctionAddresses() ([]DirTreeNode, error) {
	return s.dirTree(netnodeDirtreeFuncs)
}

// DirTreeTypeOrdinals decodes the local-type-ordinal dirtree.
func (s *Section) DirTreeTypeOrdinals() ([]DirTreeNode, error) { return s.dirTree(netnodeDirtreeTypes) }

// DirTreeStructOrdinals decodes the struct-ordinal dirtree.
func (s *Section) DirTreeStructOrdinals() ([]DirTreeNode, error) {
	return s.dirTree(netnodeDirtreeStructs)
}

// DirTreeEnumOrdinals decodes the enum-ordinal dirtree.
func (s *Section) DirTreeEnumOrdinals() ([]DirTreeNode, error) { return s.dirTree(netnodeDirtreeEnums) }

// DirTreeImportOrdinals decodes the import-index dirtree.
func (s *Section) DirTreeImportOrdinals() ([]DirTreeNode, error) {
	return s.dirTree(netnodeDirtreeImports)
}

// DirTreeBreakpoints decodes the breakpoint-address dirtree.
func (s *Section) DirTreeBreakpoints() ([]DirTreeNode, error) {
	return s.dirTree(netnodeDirtreeBreakpoints)
}

// DirTreeBookmarksTiplace decodes the "til place" bookmark dirtree.
func (s *Section) DirTreeBookmarksTiplace() ([]DirTreeNode, error) {
	return s.dirTree(netnodeDirtreeBookmarksTiplace)
}

// DirTreeBookmarksStructPlace decodes the "struct place" bookmark dirtree.
func (s *Section) DirTreeBookmarksStructPlace() ([]DirTreeNode, error) {
	return s.dirTree(netnodeDirtreeBookmarksStructPlc)
}
