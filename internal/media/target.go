package media

import (
	"fmt"
	"strings"
)

// TransferMode is how a file is placed into the library.
type TransferMode string

const (
	ModeMove     TransferMode = "move"
	ModeCopy     TransferMode = "copy"
	ModeLink     TransferMode = "link"
	ModeSoftlink TransferMode = "softlink"
)

// ParseTransferMode validates a configured or requested mode.
func ParseTransferMode(s string) (TransferMode, error) {
	switch m := TransferMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeMove, ModeCopy, ModeLink, ModeSoftlink:
		return m, nil
	default:
		return "", fmt.Errorf("unknown transfer mode %q", s)
	}
}

// TargetDirectory is a library location files of one media type go to.
type TargetDirectory struct {
	Name    string       `json:"name"`
	Path    string       `json:"path"`
	Storage string       `json:"storage"`
	Type    Type         `json:"type,omitempty"`
	Mode    TransferMode `json:"mode,omitempty"`
	Scrape  bool         `json:"scrape"`
	Notify  bool         `json:"notify"`
}

// TransferResult is the outcome of placing one item into the library.
type TransferResult struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Source     FileItem     `json:"source"`
	TargetDir  FileItem     `json:"target_dir"`
	Target     FileItem     `json:"target"`
	NewFiles   []string     `json:"new_files,omitempty"`
	FileCount  int          `json:"file_count"`
	TotalSize  int64        `json:"total_size"`
	Mode       TransferMode `json:"mode"`
	NeedScrape bool         `json:"need_scrape"`
	NeedNotify bool         `json:"need_notify"`
}
