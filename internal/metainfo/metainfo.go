// Package metainfo reads torrent files before they are sent to the daemon.
package metainfo

import (
	"bytes"
	"crypto/sha1" // nolint: gosec
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"os"

	"github.com/cenkalti/transmissionrpc/rpcargs"
	"github.com/zeebo/bencode"
)

// MaxSize is the largest torrent file that will be read.
const MaxSize = 10 << 20

// MetaInfo is a torrent file that has a valid info dictionary.
type MetaInfo struct {
	Name     string
	InfoHash [20]byte
	raw      []byte
}

// New reads a bencoded torrent file from r.
func New(r io.Reader) (*MetaInfo, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(b) > MaxSize {
		return nil, errors.New("torrent file is too large")
	}
	var t struct {
		Info bencode.RawMessage `bencode:"info"`
	}
	if err = bencode.NewDecoder(bytes.NewReader(b)).Decode(&t); err != nil {
		return nil, err
	}
	if len(t.Info) == 0 {
		return nil, errors.New("no info dict in torrent file")
	}
	var info struct {
		Name        string `bencode:"name"`
		PieceLength uint32 `bencode:"piece length"`
		Pieces      []byte `bencode:"pieces"`
	}
	if err = bencode.DecodeBytes(t.Info, &info); err != nil {
		return nil, err
	}
	if info.PieceLength == 0 {
		return nil, errors.New("invalid piece length")
	}
	if len(info.Pieces)%sha1.Size != 0 {
		return nil, errors.New("invalid piece data")
	}
	return &MetaInfo{
		Name:     info.Name,
		InfoHash: sha1.Sum(t.Info),
		raw:      b,
	}, nil
}

// Load reads the torrent file at path.
func Load(path string) (*MetaInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return New(f)
}

// HashString returns the info hash in the form the daemon uses to identify torrents.
func (m *MetaInfo) HashString() string {
	return hex.EncodeToString(m.InfoHash[:])
}

// Source returns the content of the torrent file as a source for torrent-add.
func (m *MetaInfo) Source() rpcargs.Source {
	return rpcargs.Metainfo(base64.StdEncoding.EncodeToString(m.raw))
}
