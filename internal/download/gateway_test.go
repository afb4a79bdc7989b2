package download_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/sortarr/internal/download"
	"github.com/vmunix/sortarr/internal/download/mocks"
	"github.com/vmunix/sortarr/internal/events"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func namedClient(ctrl *gomock.Controller, name string) *mocks.MockClient {
	c := mocks.NewMockClient(ctrl)
	c.EXPECT().Name().Return(name).AnyTimes()
	return c
}

func TestGateway_Completed(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := namedClient(ctrl, "a")
	b := namedClient(ctrl, "b")
	broken := namedClient(ctrl, "broken")

	a.EXPECT().ListCompleted(gomock.Any()).Return([]*download.Torrent{
		{Hash: "h1", Downloader: "a"},
		{Hash: "h2", Downloader: "a"},
	}, nil)
	b.EXPECT().ListCompleted(gomock.Any()).Return([]*download.Torrent{
		{Hash: "h2", Downloader: "b"},
		{Hash: "h3", Downloader: "b"},
	}, nil)
	broken.EXPECT().ListCompleted(gomock.Any()).Return(nil, download.ErrClientUnavailable)

	g := download.NewGateway([]download.Client{a, broken, b}, nil, testLogger())
	got := g.Completed(context.Background())

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[1].Downloader, "first client wins a shared hash")
	assert.Equal(t, "h3", got[2].Hash)
	assert.Equal(t, []string{"a", "broken", "b"}, g.Names())
}

func TestGateway_RemoveSeedAndFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	qb := namedClient(ctrl, "qb")
	qb.EXPECT().Remove(gomock.Any(), "abc", true).Return(nil)

	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { _ = bus.Close() })
	ch := bus.Subscribe(10, events.EventTorrentRemoved)

	g := download.NewGateway([]download.Client{qb}, bus, testLogger())
	assert.True(t, g.RemoveSeedAndFiles(context.Background(), "abc", "qb"))

	e := <-ch
	removed, ok := e.(*events.TorrentRemoved)
	require.True(t, ok)
	assert.Equal(t, "abc", removed.Hash)
	assert.Equal(t, "qb", removed.Downloader)
}

func TestGateway_RemoveFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	qb := namedClient(ctrl, "qb")
	other := namedClient(ctrl, "other")
	qb.EXPECT().Remove(gomock.Any(), "abc", true).Return(errors.New("boom"))

	g := download.NewGateway([]download.Client{qb, other}, nil, testLogger())
	assert.False(t, g.RemoveSeedAndFiles(context.Background(), "abc", "qb"))
	assert.False(t, g.RemoveSeedAndFiles(context.Background(), "abc", "missing"))
	assert.False(t, g.RemoveSeedAndFiles(context.Background(), "abc", ""), "ambiguous without a name")
}

func TestGateway_MarkTransferred(t *testing.T) {
	ctrl := gomock.NewController(t)
	qb := namedClient(ctrl, "qb")
	qb.EXPECT().AddTags(gomock.Any(), "abc", download.TransferredTag).Return(nil)

	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { _ = bus.Close() })
	ch := bus.Subscribe(10, events.EventTorrentTransferred)

	g := download.NewGateway([]download.Client{qb}, bus, testLogger())
	g.MarkTransferred(context.Background(), "abc", "")

	e := <-ch
	assert.Equal(t, events.EventTorrentTransferred, e.EventType())
}
