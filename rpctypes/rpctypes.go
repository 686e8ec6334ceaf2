// Package rpctypes contains the types of the arguments object in replies.
package rpctypes

// Torrent status values in Torrent.Status.
const (
	StatusStopped = iota
	StatusCheckWait
	StatusCheck
	StatusDownloadWait
	StatusDownload
	StatusSeedWait
	StatusSeed
)

// TorrentFields are the fields requested for Torrent by the command line client.
var TorrentFields = []string{
	"id", "name", "hashString", "status", "error", "errorString",
	"percentDone", "rateDownload", "rateUpload", "eta", "totalSize",
	"downloadDir", "peersConnected", "uploadRatio", "addedDate", "labels",
}

type Torrent struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	HashString     string   `json:"hashString"`
	Status         int      `json:"status"`
	Error          int      `json:"error"`
	ErrorString    string   `json:"errorString"`
	PercentDone    float64  `json:"percentDone"`
	RateDownload   int64    `json:"rateDownload"`
	RateUpload     int64    `json:"rateUpload"`
	ETA            int64    `json:"eta"`
	TotalSize      int64    `json:"totalSize"`
	DownloadDir    string   `json:"downloadDir"`
	PeersConnected int      `json:"peersConnected"`
	UploadRatio    float64  `json:"uploadRatio"`
	AddedDate      Time     `json:"addedDate"`
	Labels         []string `json:"labels"`
}

// StatusString returns the human readable status of the torrent.
func (t *Torrent) StatusString() string {
	switch t.Status {
	case StatusStopped:
		return "Stopped"
	case StatusCheckWait:
		return "Queued for verification"
	case StatusCheck:
		return "Verifying"
	case StatusDownloadWait:
		return "Queued for download"
	case StatusDownload:
		return "Downloading"
	case StatusSeedWait:
		return "Queued for seeding"
	case StatusSeed:
		return "Seeding"
	default:
		return "Unknown"
	}
}

type TorrentGetResponse struct {
	Torrents []Torrent `json:"torrents"`
	Removed  []int     `json:"removed,omitempty"`
}

// TorrentAdded identifies a torrent created by torrent-add.
type TorrentAdded struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	HashString string `json:"hashString"`
}

type TorrentAddResponse struct {
	Added     *TorrentAdded `json:"torrent-added,omitempty"`
	Duplicate *TorrentAdded `json:"torrent-duplicate,omitempty"`
}

// Torrent returns the added torrent or the existing one if it was a duplicate.
func (r *TorrentAddResponse) Torrent() *TorrentAdded {
	if r.Added != nil {
		return r.Added
	}
	return r.Duplicate
}

type Stats struct {
	UploadedBytes   int64 `json:"uploadedBytes"`
	DownloadedBytes int64 `json:"downloadedBytes"`
	FilesAdded      int64 `json:"filesAdded"`
	SessionCount    int64 `json:"sessionCount"`
	SecondsActive   int64 `json:"secondsActive"`
}

type SessionStats struct {
	ActiveTorrentCount int   `json:"activeTorrentCount"`
	DownloadSpeed      int64 `json:"downloadSpeed"`
	PausedTorrentCount int   `json:"pausedTorrentCount"`
	TorrentCount       int   `json:"torrentCount"`
	UploadSpeed        int64 `json:"uploadSpeed"`
	CumulativeStats    Stats `json:"cumulative-stats"`
	CurrentStats       Stats `json:"current-stats"`
}

type FreeSpace struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size-bytes"`
	TotalSize int64  `json:"total_size"`
}

type PortTest struct {
	PortIsOpen bool `json:"port-is-open"`
}

type BlocklistUpdate struct {
	BlocklistSize int `json:"blocklist-size"`
}

type RenamePath struct {
	ID   int    `json:"id"`
	Path string `json:"path"`
	Name string `json:"name"`
}
