package id0

import (
	"sort"

	"github.com/coredump-go/idb0/internal/entrystore"
	"github.com/coredump-go/idb0/internal/fileregion"
	"github.com/coredump-go/idb0/internal/key"
	"github.com/coredump-go/idb0/internal/segcodec"
	"github.com/coredump-go/idb0/internal/segstrpool"
)

// Well-known netnode names (§6).
const (
	netnodeSegs        = "$ segs"
	netnodeSegStrings  = "$ segstrings"
	netnodeFileRegions = "$ fileregions"
	netnodeFuncs       = "$ funcs"
	netnodeEntryPoints = "$ entry points"
	netnodeLoaderName  = "$ loader name"
	netnodeRoot        = "Root Node"
)

// Section is a parsed, read-only ID0 section. It is safe for concurrent
// use by multiple goroutines: all state is immutable after Open (§5).
type Section struct {
	store *entrystore.Store
	kind  Kind
}

// Open builds a Section from a section's full sorted entry list. entries
// must already be sorted by key (§6 Inputs); kind is the section's address
// width, read from the enclosing container.
func Open(entries []entrystore.Entry, kind Kind) (*Section, error) {
	if !kind.Valid() {
		return nil, newError(ErrKindCorrupt, "invalid word-width kind", nil)
	}
	store, err := entrystore.New(entries)
	if err != nil {
		return nil, newError(ErrKindCorrupt, "entries are not sorted", err)
	}
	return &Section{store: store, kind: kind}, nil
}

// Kind returns the section's address width.
func (s *Section) Kind() Kind { return s.kind }

// AllEntries returns every (key, value) pair in the section, in ascending
// key order (§8 invariant 1).
func (s *Section) AllEntries() []entrystore.Entry { return s.store.All() }

// IDAInfo decodes the "$ IDA info" netnode's global parameter record.
func (s *Section) IDAInfo() (IDAInfo, error) { return idaInfo(s.store, s.kind) }

// RootEntry is one attribute of the "Root Node" netnode, with its key
// reduced to the tag (and optional subindex) suffix.
type RootEntry struct {
	Tag      byte
	Subindex *uint64
	Value    []byte
}

// RootInfo returns every attribute stored on the "Root Node" netnode.
func (s *Section) RootInfo() ([]RootEntry, error) {
	netnode, err := resolveNetnodeID(s.store, s.kind, netnodeRoot)
	if err != nil {
		return nil, err
	}
	prefix := key.NetnodePrefix(s.kind, netnode)
	entries := s.store.RangeByPrefix(prefix)
	out := make([]RootEntry, 0, len(entries))
	for _, e := range entries {
		suffix := e.Key[len(prefix):]
		tag, sub, hasSub, ok := key.ParseTagSubindex(s.kind, suffix)
		if !ok {
			return nil, newRecordError(ErrKindCorrupt, "Root Node: malformed attribute key",
				Record{Netnode: netnode}, nil)
		}
		entry := RootEntry{Tag: tag, Value: e.Value}
		if hasSub {
			entry.Subindex = &sub
		}
		out = append(out, entry)
	}
	return out, nil
}

// LoaderName returns the names of the loader modules that opened this
// database, or nil if the "$ loader name" netnode is absent (an absent
// loader name is not an error — §7 Absence).
func (s *Section) LoaderName() ([]string, error) {
	netnode, err := resolveNetnodeID(s.store, s.kind, netnodeLoaderName)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	entries := contiguousSubkeys(s.store, s.kind, netnode, 'S', 0)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, string(e.Value))
	}
	return names, nil
}

// Segments decodes every record of the "$ segs" netnode, returned in
// ascending start-address order (§4.4).
func (s *Section) Segments() ([]Segment, error) {
	netnode, err := resolveNetnodeID(s.store, s.kind, netnodeSegs)
	if err != nil {
		return nil, err
	}
	entries := allSubkeys(s.store, s.kind, netnode, 'S')
	out := make([]Segment, 0, len(entries))
	for _, e := range entries {
		seg, err := segcodec.Decode(e.Value, s.kind)
		if err != nil {
			return nil, newRecordError(ErrKindCorrupt, "segment record", Record{Netnode: netnode, Tag: 'S'}, err)
		}
		out = append(out, seg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartEA < out[j].StartEA })
	return out, nil
}

// SegmentStrings decodes every pool record of the "$ segstrings" netnode,
// flattened into one index-ordered slice (§4.5).
func (s *Section) SegmentStrings() ([]segstrpool.String, error) {
	netnode, err := resolveNetnodeID(s.store, s.kind, netnodeSegStrings)
	if err != nil {
		return nil, err
	}
	entries := allSubkeys(s.store, s.kind, netnode, 'S')
	var out []segstrpool.String
	for _, e := range entries {
		strs, err := segstrpool.Decode(e.Value)
		if err != nil {
			return nil, newRecordError(ErrKindCorrupt, "segment string pool record", Record{Netnode: netnode, Tag: 'S'}, err)
		}
		out = append(out, strs...)
	}
	return out, nil
}

// SegmentName resolves a SegmentNameIdx (a Segment's Name or ClassID
// field) to its string, by walking the segment string pool until an entry
// whose index matches is found.
func (s *Section) SegmentName(idx uint64) (string, error) {
	strs, err := s.SegmentStrings()
	if err != nil {
		return "", err
	}
	for _, str := range strs {
		if uint64(str.Index) == idx {
			return string(str.Text), nil
		}
	}
	return "", errNotFound("segment string pool has no entry for index")
}

// FileRegions decodes every record of the "$ fileregions" netnode (§4.6).
// version must be the IDAInfo.Version value for this database.
func (s *Section) FileRegions(version uint16) ([]fileregion.Region, error) {
	netnode, err := resolveNetnodeID(s.store, s.kind, netnodeFileRegions)
	if err != nil {
		return nil, err
	}
	entries := allSubkeys(s.store, s.kind, netnode, 'S')
	out := make([]fileregion.Region, 0, len(entries))
	for _, e := range entries {
		r, err := fileregion.Decode(e.Value, version, s.kind)
		if err != nil {
			return nil, newRecordError(ErrKindCorrupt, "file region record", Record{Netnode: netnode, Tag: 'S'}, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func isNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == ErrKindNotFound
}
