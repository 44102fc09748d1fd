package business

import (
	"context"
	"errors"
	"testing"

	channelentities "github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
	channelerrors "github.com/okdewit/ytdlp-docker/internal/domain/channel/errors"
	"github.com/okdewit/ytdlp-docker/internal/domain/video/entities"
	verrors "github.com/okdewit/ytdlp-docker/internal/domain/video/errors"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/metrics"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
	"github.com/rs/zerolog"
)

type mockVideoRepo struct {
	byVideoID map[string]*entities.Video
	nextID    uint
}

func newMockVideoRepo() *mockVideoRepo {
	return &mockVideoRepo{byVideoID: make(map[string]*entities.Video), nextID: 1}
}

func (m *mockVideoRepo) Create(_ context.Context, video *entities.Video) error {
	if _, ok := m.byVideoID[video.VideoID]; ok {
		return verrors.ErrVideoExists
	}
	video.ID = m.nextID
	m.nextID++
	stored := *video
	m.byVideoID[video.VideoID] = &stored
	return nil
}

func (m *mockVideoRepo) GetByVideoID(_ context.Context, videoID string) (*entities.Video, error) {
	video, ok := m.byVideoID[videoID]
	if !ok {
		return nil, verrors.ErrVideoNotFound
	}
	copied := *video
	return &copied, nil
}

func (m *mockVideoRepo) ListByChannel(_ context.Context, channelID uint) ([]entities.Video, error) {
	var videos []entities.Video
	for _, v := range m.byVideoID {
		if v.ChannelID != nil && *v.ChannelID == channelID {
			videos = append(videos, *v)
		}
	}
	return videos, nil
}

func (m *mockVideoRepo) ExistsByVideoID(_ context.Context, videoID string) (bool, error) {
	_, ok := m.byVideoID[videoID]
	return ok, nil
}

type mockChannels struct {
	channels map[string]*channelentities.Channel
}

func (m *mockChannels) Get(_ context.Context, channelID string) (*channelentities.Channel, error) {
	channel, ok := m.channels[channelID]
	if !ok {
		return nil, channelerrors.ErrChannelNotFound
	}
	return channel, nil
}

type mockScanner struct {
	downloaded map[string]string
}

func (m *mockScanner) FindByVideoID(videoID string) (string, bool) {
	path, ok := m.downloaded[videoID]
	return path, ok
}

func (m *mockScanner) IsDownloaded(videoID string) bool {
	_, ok := m.downloaded[videoID]
	return ok
}

type mockResolver struct {
	entries     []ytdlp.Entry
	listErr     error
	details     map[string]*ytdlp.Metadata
	detailCalls int
}

func (m *mockResolver) FetchVideo(_ context.Context, videoID string) (*ytdlp.Metadata, error) {
	m.detailCalls++
	if md, ok := m.details[videoID]; ok {
		return md, nil
	}
	return nil, ytdlp.ErrResolve
}

func (m *mockResolver) FetchChannelEntries(_ context.Context, _ string) ([]ytdlp.Entry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

type recordingSink struct {
	events []string
}

func (s *recordingSink) Emit(namespace, eventType string, _ map[string]string) {
	s.events = append(s.events, namespace+"/"+eventType)
}

var testMetrics = metrics.NewMetrics()

func newTestUseCase(repo *mockVideoRepo, channels *mockChannels, scanner *mockScanner, resolver *mockResolver, limit int) *UseCase {
	return NewUseCase(repo, channels, scanner, resolver, &recordingSink{}, testMetrics, limit, zerolog.Nop())
}

func int64ptr(n int64) *int64 { return &n }

func TestRegisterIsIdempotent(t *testing.T) {
	repo := newMockVideoRepo()
	uc := newTestUseCase(repo, &mockChannels{}, &mockScanner{}, &mockResolver{}, 50)

	first, err := uc.Register(context.Background(), "vid1", "Title", int64ptr(100), nil)
	if err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	second, err := uc.Register(context.Background(), "vid1", "Other Title", int64ptr(999), nil)
	if err != nil {
		t.Fatalf("second Register returned error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected same row, got IDs %d and %d", first.ID, second.ID)
	}
	if second.Title != "Title" {
		t.Errorf("expected original title kept, got %q", second.Title)
	}
}

func TestRegisterFallsBackToVideoIDTitle(t *testing.T) {
	uc := newTestUseCase(newMockVideoRepo(), &mockChannels{}, &mockScanner{}, &mockResolver{}, 50)

	video, err := uc.Register(context.Background(), "vid1", "", nil, nil)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if video.Title != "vid1" {
		t.Errorf("expected title fallback to video ID, got %q", video.Title)
	}
}

func TestStatsSkipUnknownFilesizes(t *testing.T) {
	repo := newMockVideoRepo()
	ref := uint(1)
	channels := &mockChannels{channels: map[string]*channelentities.Channel{
		"UC1": {ID: ref, ChannelID: "UC1", Name: "Chan"},
	}}
	scanner := &mockScanner{downloaded: map[string]string{
		"vid1": "/data/Chan/a [vid1].mp4",
		"vid3": "/data/Chan/c [vid3].mp4",
	}}
	uc := newTestUseCase(repo, channels, scanner, &mockResolver{}, 50)

	mustRegister := func(id string, size *int64) {
		t.Helper()
		if _, err := uc.Register(context.Background(), id, id, size, &ref); err != nil {
			t.Fatalf("Register(%s): %v", id, err)
		}
	}
	mustRegister("vid1", int64ptr(1000))
	mustRegister("vid2", int64ptr(500))
	mustRegister("vid3", nil) // downloaded, size unknown

	stats, err := uc.StatsForChannel(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("StatsForChannel returned error: %v", err)
	}

	if stats.Total != 3 || stats.Downloaded != 2 || stats.Pending != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.TotalBytes != 1500 {
		t.Errorf("expected total 1500 bytes, got %d", stats.TotalBytes)
	}
	if stats.DownloadedBytes != 1000 {
		t.Errorf("expected 1000 downloaded bytes, got %d", stats.DownloadedBytes)
	}
}

func TestStatsUnknownChannel(t *testing.T) {
	uc := newTestUseCase(newMockVideoRepo(), &mockChannels{}, &mockScanner{}, &mockResolver{}, 50)

	if _, err := uc.StatsForChannel(context.Background(), "UCmissing"); !errors.Is(err, verrors.ErrChannelNotFound) {
		t.Errorf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestDiscoverRegistersNewSkipsKnown(t *testing.T) {
	repo := newMockVideoRepo()
	ref := uint(1)
	channels := &mockChannels{channels: map[string]*channelentities.Channel{
		"UC1": {ID: ref, ChannelID: "UC1", Name: "Chan"},
	}}
	resolver := &mockResolver{
		entries: []ytdlp.Entry{
			{ID: "vid1", Title: "One"},
			{ID: "vid2", Title: "Two"},
			{ID: "vid3", Title: "Three"},
		},
		details: map[string]*ytdlp.Metadata{
			"vid2": {ID: "vid2", Title: "Two (full)", Filesize: int64ptr(2048)},
			"vid3": {ID: "vid3", Title: "Three (full)"},
		},
	}
	uc := newTestUseCase(repo, channels, &mockScanner{}, resolver, 50)

	// vid1 is already registered: no detail fetch for it.
	if _, err := uc.Register(context.Background(), "vid1", "One", nil, &ref); err != nil {
		t.Fatalf("seed Register: %v", err)
	}

	result, err := uc.Discover(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	if result.Registered != 2 || result.Skipped != 1 || result.Failed != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	if resolver.detailCalls != 2 {
		t.Errorf("expected 2 detail fetches, got %d", resolver.detailCalls)
	}

	vid2, err := repo.GetByVideoID(context.Background(), "vid2")
	if err != nil {
		t.Fatalf("vid2 not registered: %v", err)
	}
	if vid2.Title != "Two (full)" || vid2.Filesize == nil || *vid2.Filesize != 2048 {
		t.Errorf("expected detail metadata used, got %+v", vid2)
	}
}

func TestDiscoverDetailFailureFallsBackToFlatEntry(t *testing.T) {
	repo := newMockVideoRepo()
	ref := uint(1)
	channels := &mockChannels{channels: map[string]*channelentities.Channel{
		"UC1": {ID: ref, ChannelID: "UC1", Name: "Chan"},
	}}
	resolver := &mockResolver{
		entries: []ytdlp.Entry{{ID: "vid9", Title: "Flat Title"}},
	}
	uc := newTestUseCase(repo, channels, &mockScanner{}, resolver, 50)

	result, err := uc.Discover(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if result.Registered != 1 || result.Failed != 0 {
		t.Errorf("expected fallback registration, got %+v", result)
	}

	video, err := repo.GetByVideoID(context.Background(), "vid9")
	if err != nil {
		t.Fatalf("vid9 not registered: %v", err)
	}
	if video.Title != "Flat Title" || video.Filesize != nil {
		t.Errorf("expected flat entry data, got %+v", video)
	}
}

func TestDiscoverHonorsLimit(t *testing.T) {
	repo := newMockVideoRepo()
	ref := uint(1)
	channels := &mockChannels{channels: map[string]*channelentities.Channel{
		"UC1": {ID: ref, ChannelID: "UC1", Name: "Chan"},
	}}
	resolver := &mockResolver{
		entries: []ytdlp.Entry{
			{ID: "vid1", Title: "1"},
			{ID: "vid2", Title: "2"},
			{ID: "vid3", Title: "3"},
		},
	}
	uc := newTestUseCase(repo, channels, &mockScanner{}, resolver, 2)

	result, err := uc.Discover(context.Background(), "UC1")
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if result.Listed != 3 {
		t.Errorf("expected listed=3, got %d", result.Listed)
	}
	if result.Registered != 2 {
		t.Errorf("expected limit of 2 registrations, got %d", result.Registered)
	}
}

func TestDiscoverListingFailure(t *testing.T) {
	channels := &mockChannels{channels: map[string]*channelentities.Channel{
		"UC1": {ID: 1, ChannelID: "UC1", Name: "Chan"},
	}}
	resolver := &mockResolver{listErr: ytdlp.ErrResolve}
	uc := newTestUseCase(newMockVideoRepo(), channels, &mockScanner{}, resolver, 50)

	if _, err := uc.Discover(context.Background(), "UC1"); !errors.Is(err, verrors.ErrListingFailed) {
		t.Errorf("expected ErrListingFailed, got %v", err)
	}
}

func TestDiscoverUnknownChannel(t *testing.T) {
	uc := newTestUseCase(newMockVideoRepo(), &mockChannels{}, &mockScanner{}, &mockResolver{}, 50)

	if _, err := uc.Discover(context.Background(), "UCmissing"); !errors.Is(err, verrors.ErrChannelNotFound) {
		t.Errorf("expected ErrChannelNotFound, got %v", err)
	}
}
