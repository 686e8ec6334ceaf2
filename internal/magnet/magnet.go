// Package magnet provides support for parsing magnet links.
package magnet

import (
	"encoding/base32"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"

	"github.com/multiformats/go-multihash"
)

// Magnet link contains the information to identify a torrent on the daemon.
type Magnet struct {
	InfoHash [20]byte
	Name     string
	Trackers []string
}

// Is returns true if s looks like a magnet link.
func Is(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "magnet:")
}

// New parses the string and returns new Magnet.
func New(s string) (*Magnet, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "magnet" {
		return nil, errors.New("not a magnet link")
	}

	params := u.Query()

	xts, ok := params["xt"]
	if !ok {
		return nil, errors.New("missing xt param")
	}
	if len(xts) == 0 {
		return nil, errors.New("empty xt param")
	}

	var magnet Magnet
	magnet.InfoHash, err = infoHashString(xts[0])
	if err != nil {
		return nil, err
	}
	if names := params["dn"]; len(names) != 0 {
		magnet.Name = names[0]
	}
	magnet.Trackers = params["tr"]
	return &magnet, nil
}

// HashString returns the info hash in the form the daemon uses to identify torrents.
func (m *Magnet) HashString() string {
	return hex.EncodeToString(m.InfoHash[:])
}

// infoHashString returns a new info hash value from the xt param.
// Hash must be 40 (hex encoded) or 32 (base32 encoded) characters or a hex encoded SHA-1 multihash.
func infoHashString(xt string) ([20]byte, error) {
	var ih [20]byte
	var b []byte
	var err error
	switch {
	case strings.HasPrefix(xt, "urn:btih:"):
		xt = xt[9:]
		switch len(xt) {
		case 40:
			b, err = hex.DecodeString(xt)
		case 32:
			b, err = base32.StdEncoding.DecodeString(xt)
		default:
			return ih, errors.New("info hash must be 32 or 40 characters")
		}
		if err != nil {
			return ih, err
		}
	case strings.HasPrefix(xt, "urn:btmh:"):
		var mh multihash.Multihash
		mh, err = multihash.FromHexString(xt[9:])
		if err != nil {
			return ih, err
		}
		var dh *multihash.DecodedMultihash
		dh, err = multihash.Decode(mh)
		if err != nil {
			return ih, err
		}
		if dh.Length != 20 {
			return ih, errors.New("invalid multihash (len != 20)")
		}
		b = dh.Digest
	default:
		return ih, errors.New("invalid xt param: must start with \"urn:btih:\" or \"urn:btmh:\"")
	}
	copy(ih[:], b)
	return ih, nil
}
