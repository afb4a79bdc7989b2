package download_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/sortarr/internal/download"
	"github.com/vmunix/sortarr/internal/media"
	"github.com/vmunix/sortarr/internal/transfer"
)

type submission struct {
	root media.FileItem
	opts transfer.BatchOptions
}

type fakeSubmitter struct {
	mu      sync.Mutex
	tracked map[string]bool
	got     []submission
	entered chan struct{} // closed on the first SubmitBatch, when set
	block   chan struct{} // when set, SubmitBatch waits on it
	once    sync.Once
}

func (f *fakeSubmitter) SubmitBatch(_ context.Context, root media.FileItem, opts transfer.BatchOptions) (bool, string) {
	if f.entered != nil {
		f.once.Do(func() { close(f.entered) })
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, submission{root: root, opts: opts})
	return true, ""
}

func (f *fakeSubmitter) Tracks(hash string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tracked[hash]
}

func TestPoller_Process(t *testing.T) {
	downloads := t.TempDir()
	elsewhere := t.TempDir()
	show := filepath.Join(downloads, "Show.S01")
	require.NoError(t, os.MkdirAll(show, 0o755))
	movie := filepath.Join(downloads, "Movie.2020.mkv")
	require.NoError(t, os.WriteFile(movie, []byte("data"), 0o644))
	outside := filepath.Join(elsewhere, "Other.mkv")
	require.NoError(t, os.WriteFile(outside, []byte("data"), 0o644))

	ctrl := gomock.NewController(t)
	qb := namedClient(ctrl, "qb")
	qb.EXPECT().ListCompleted(gomock.Any()).Return([]*download.Torrent{
		{Hash: "show", Name: "Show.S01", Downloader: "qb", ContentPath: show},
		{Hash: "movie", Name: "Movie.2020.mkv", Downloader: "qb", SavePath: downloads},
		{Hash: "done", Name: "Done", Downloader: "qb", ContentPath: show, Tags: []string{download.TransferredTag}},
		{Hash: "busy", Name: "Busy", Downloader: "qb", ContentPath: show},
		{Hash: "outside", Name: "Other.mkv", Downloader: "qb", ContentPath: outside},
		{Hash: "gone", Name: "Gone", Downloader: "qb", ContentPath: filepath.Join(downloads, "Gone")},
	}, nil)

	sub := &fakeSubmitter{tracked: map[string]bool{"busy": true}}
	lockPath := filepath.Join(t.TempDir(), "poll.lock")
	p := download.NewPoller(download.NewGateway([]download.Client{qb}, nil, testLogger()), sub,
		[]string{downloads}, lockPath, testLogger())

	require.True(t, p.Process(context.Background()))
	require.Len(t, sub.got, 2)

	assert.Equal(t, show, sub.got[0].root.Path)
	assert.Equal(t, media.ItemDir, sub.got[0].root.Type)
	assert.Equal(t, transfer.BatchOptions{Downloader: "qb", Hash: "show", Background: true}, sub.got[0].opts)

	assert.Equal(t, movie, sub.got[1].root.Path)
	assert.Equal(t, media.ItemFile, sub.got[1].root.Type)
	assert.Equal(t, ".mkv", sub.got[1].root.Extension)
	assert.Equal(t, int64(4), sub.got[1].root.Size)
}

type fakeRecorder struct {
	got []*media.DownloadRecord
}

func (f *fakeRecorder) Add(_ context.Context, r *media.DownloadRecord, _ []string) error {
	f.got = append(f.got, r)
	return nil
}

func TestPoller_RecordsDownloads(t *testing.T) {
	downloads := t.TempDir()
	movie := filepath.Join(downloads, "Movie.2020.mkv")
	require.NoError(t, os.WriteFile(movie, []byte("data"), 0o644))

	ctrl := gomock.NewController(t)
	qb := namedClient(ctrl, "qb")
	qb.EXPECT().ListCompleted(gomock.Any()).Return([]*download.Torrent{
		{Hash: "movie", Name: "Movie.2020.mkv", Downloader: "qb", ContentPath: movie},
		{Hash: "done", Name: "Done", Downloader: "qb", ContentPath: movie, Tags: []string{download.TransferredTag}},
	}, nil)

	rec := &fakeRecorder{}
	p := download.NewPoller(download.NewGateway([]download.Client{qb}, nil, testLogger()), &fakeSubmitter{},
		[]string{downloads}, "", testLogger())
	p.RecordTo(rec)

	require.True(t, p.Process(context.Background()))
	require.Len(t, rec.got, 1)
	assert.Equal(t, &media.DownloadRecord{Hash: "movie", Downloader: "qb", Path: movie}, rec.got[0])
}

func TestPoller_NoDirectories(t *testing.T) {
	ctrl := gomock.NewController(t)
	qb := namedClient(ctrl, "qb")
	sub := &fakeSubmitter{}
	p := download.NewPoller(download.NewGateway([]download.Client{qb}, nil, testLogger()), sub, nil, "", testLogger())

	assert.True(t, p.Process(context.Background()))
	assert.Empty(t, sub.got)
}

func TestPoller_SkipsWhileRunning(t *testing.T) {
	downloads := t.TempDir()
	movie := filepath.Join(downloads, "Movie.mkv")
	require.NoError(t, os.WriteFile(movie, nil, 0o644))

	ctrl := gomock.NewController(t)
	qb := namedClient(ctrl, "qb")
	qb.EXPECT().ListCompleted(gomock.Any()).Return([]*download.Torrent{
		{Hash: "m", Name: "Movie.mkv", Downloader: "qb", ContentPath: movie},
	}, nil).Times(1)

	sub := &fakeSubmitter{entered: make(chan struct{}), block: make(chan struct{})}
	p := download.NewPoller(download.NewGateway([]download.Client{qb}, nil, testLogger()), sub,
		[]string{downloads}, "", testLogger())

	done := make(chan bool)
	go func() { done <- p.Process(context.Background()) }()

	select {
	case <-sub.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first poll never reached the submitter")
	}
	assert.False(t, p.Process(context.Background()))
	close(sub.block)
	assert.True(t, <-done)
}

func TestPoller_RespectsLockFile(t *testing.T) {
	downloads := t.TempDir()
	lockPath := filepath.Join(t.TempDir(), "poll.lock")

	other := flock.New(lockPath)
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	t.Cleanup(func() { _ = other.Unlock() })

	ctrl := gomock.NewController(t)
	qb := namedClient(ctrl, "qb")
	p := download.NewPoller(download.NewGateway([]download.Client{qb}, nil, testLogger()), &fakeSubmitter{},
		[]string{downloads}, lockPath, testLogger())

	assert.False(t, p.Process(context.Background()))
}
