package events

// Event types.
const (
	EventTransferQueued          = "transfer.queued"
	EventTransferCompleted       = "transfer.completed"
	EventTransferFailed          = "transfer.failed"
	EventJobCompleted            = "job.completed"
	EventMetadataScrapeRequested = "metadata.scrape_requested"
	EventTorrentTransferred      = "torrent.transferred"
	EventTorrentRemoved          = "torrent.removed"
)

// TransferQueued is emitted when a task enters the background queue.
type TransferQueued struct {
	BaseEvent
	Storage    string `json:"storage"`
	SourcePath string `json:"source_path"`
	Hash       string `json:"hash,omitempty"`
}

// TransferCompleted is emitted for every item placed into the library.
// Category tells media files from the subtitles and audio tracks that
// travel with them.
type TransferCompleted struct {
	BaseEvent
	Category   string `json:"category"`
	SourcePath string `json:"source_path"`
	TargetPath string `json:"target_path"`
	TargetDir  string `json:"target_dir"`
	Mode       string `json:"mode"`
	MediaType  string `json:"media_type"`
	TMDBID     int64  `json:"tmdb_id"`
	Title      string `json:"title"`
	Season     int    `json:"season,omitempty"`
	Episodes   []int  `json:"episodes,omitempty"`
	Size       int64  `json:"size"`
	Downloader string `json:"downloader,omitempty"`
	Hash       string `json:"hash,omitempty"`
}

// TransferFailed is emitted when an item could not be organized.
type TransferFailed struct {
	BaseEvent
	Category   string `json:"category"`
	SourcePath string `json:"source_path"`
	TMDBID     int64  `json:"tmdb_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Reason     string `json:"reason"`
	Downloader string `json:"downloader,omitempty"`
	Hash       string `json:"hash,omitempty"`
}

// JobCompleted is emitted once per media unit when its last task settles
// and at least one file made it into the library.
type JobCompleted struct {
	BaseEvent
	MediaType string `json:"media_type"`
	Title     string `json:"title"`
	Season    int    `json:"season,omitempty"`
	Episodes  []int  `json:"episodes,omitempty"`
	FileCount int    `json:"file_count"`
	TotalSize int64  `json:"total_size"`
	TargetDir string `json:"target_dir"`
}

// MetadataScrapeRequested asks metadata consumers (media servers,
// scrapers) to refresh a library directory.
type MetadataScrapeRequested struct {
	BaseEvent
	Storage   string   `json:"storage"`
	TargetDir string   `json:"target_dir"`
	Files     []string `json:"files,omitempty"`
	MediaType string   `json:"media_type"`
	Title     string   `json:"title"`
}

// TorrentTransferred is emitted when every task from a torrent finished and
// the downloader was told so.
type TorrentTransferred struct {
	BaseEvent
	Hash       string `json:"hash"`
	Downloader string `json:"downloader"`
}

// TorrentRemoved is emitted after a fully moved torrent was deleted from
// its downloader together with its remaining files.
type TorrentRemoved struct {
	BaseEvent
	Hash       string `json:"hash"`
	Downloader string `json:"downloader"`
}
