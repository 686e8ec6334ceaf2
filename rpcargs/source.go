package rpcargs

import "fmt"

// SourceKind tells how a new torrent is introduced to the daemon.
type SourceKind int

// Source kinds.
const (
	_ SourceKind = iota
	// SourceFilename is a path on the daemon's filesystem, a URL or a magnet link.
	SourceFilename
	// SourceMetainfo is the base64 encoded content of a torrent file.
	SourceMetainfo
)

func (k SourceKind) String() string {
	switch k {
	case SourceFilename:
		return "filename"
	case SourceMetainfo:
		return "metainfo"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Source is a tagged torrent source. The zero value is invalid.
type Source struct {
	Kind  SourceKind
	Value string
}

// Filename returns a Source for a filename, URL or magnet link.
func Filename(s string) Source {
	return Source{Kind: SourceFilename, Value: s}
}

// Metainfo returns a Source for base64 encoded torrent file content.
func Metainfo(b64 string) Source {
	return Source{Kind: SourceMetainfo, Value: b64}
}

func (s Source) String() string {
	return s.Kind.String() + ":" + s.Value
}

// SourceArg includes a tagged Source under the key named by its kind.
// Untagged values and plain strings are omitted.
func SourceArg(v any) Result {
	var s Source
	switch t := v.(type) {
	case Source:
		s = t
	case *Source:
		if t == nil {
			return Omit
		}
		s = *t
	default:
		return Omit
	}
	switch s.Kind {
	case SourceFilename, SourceMetainfo:
	default:
		return Omit
	}
	if s.Value == "" {
		return Omit
	}
	return IncludeAs(s.Kind.String(), s.Value)
}
