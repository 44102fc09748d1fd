package business

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	channelentities "github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
	"github.com/okdewit/ytdlp-docker/internal/domain/subscription/entities"
	serrors "github.com/okdewit/ytdlp-docker/internal/domain/subscription/errors"
	videodto "github.com/okdewit/ytdlp-docker/internal/domain/video/dto"
	videoentities "github.com/okdewit/ytdlp-docker/internal/domain/video/entities"
	"github.com/okdewit/ytdlp-docker/internal/infrastructure/metrics"
	"github.com/okdewit/ytdlp-docker/internal/ytdlp"
	"github.com/rs/zerolog"
)

type mockSubRepo struct {
	byURL  map[string]*entities.Subscription
	nextID uint
}

func newMockSubRepo() *mockSubRepo {
	return &mockSubRepo{byURL: make(map[string]*entities.Subscription), nextID: 1}
}

func (m *mockSubRepo) Create(_ context.Context, sub *entities.Subscription) error {
	if _, ok := m.byURL[sub.URL]; ok {
		return serrors.ErrSubscriptionExists
	}
	sub.ID = m.nextID
	m.nextID++
	sub.CreatedAt = time.Now()
	stored := *sub
	m.byURL[sub.URL] = &stored
	return nil
}

func (m *mockSubRepo) GetByURL(_ context.Context, url string) (*entities.Subscription, error) {
	sub, ok := m.byURL[url]
	if !ok {
		return nil, serrors.ErrSubscriptionNotFound
	}
	copied := *sub
	return &copied, nil
}

func (m *mockSubRepo) List(_ context.Context) ([]entities.Subscription, error) {
	subs := make([]entities.Subscription, 0, len(m.byURL))
	for _, sub := range m.byURL {
		subs = append(subs, *sub)
	}
	return subs, nil
}

func (m *mockSubRepo) Delete(_ context.Context, url string) error {
	if _, ok := m.byURL[url]; !ok {
		return serrors.ErrSubscriptionNotFound
	}
	delete(m.byURL, url)
	return nil
}

func (m *mockSubRepo) UpdateTypeAndChannel(_ context.Context, url, subType string, channelRef *uint) error {
	sub, ok := m.byURL[url]
	if !ok {
		return serrors.ErrSubscriptionNotFound
	}
	sub.Type = subType
	sub.ChannelID = channelRef
	sub.UpdatedAt = time.Now()
	return nil
}

func (m *mockSubRepo) Count(_ context.Context) (int, error) {
	return len(m.byURL), nil
}

type mockChannelRegistry struct {
	byChannelID map[string]*channelentities.Channel
	nextID      uint
	avatarCalls int
}

func newMockChannelRegistry() *mockChannelRegistry {
	return &mockChannelRegistry{byChannelID: make(map[string]*channelentities.Channel), nextID: 1}
}

func (m *mockChannelRegistry) Upsert(_ context.Context, channelID, name string) (*channelentities.Channel, error) {
	if existing, ok := m.byChannelID[channelID]; ok {
		return existing, nil
	}
	channel := &channelentities.Channel{ID: m.nextID, ChannelID: channelID, Name: name}
	m.nextID++
	m.byChannelID[channelID] = channel
	return channel, nil
}

func (m *mockChannelRegistry) EnsureAvatar(_ context.Context, _, _ string) {
	m.avatarCalls++
}

type mockVideoRegistry struct {
	registered    map[string]*videoentities.Video
	discoverCalls []string
	discoverErr   error
}

func newMockVideoRegistry() *mockVideoRegistry {
	return &mockVideoRegistry{registered: make(map[string]*videoentities.Video)}
}

func (m *mockVideoRegistry) Register(_ context.Context, videoID, title string, filesize *int64, channelRef *uint) (*videoentities.Video, error) {
	if existing, ok := m.registered[videoID]; ok {
		return existing, nil
	}
	video := &videoentities.Video{VideoID: videoID, Title: title, Filesize: filesize, ChannelID: channelRef}
	m.registered[videoID] = video
	return video, nil
}

func (m *mockVideoRegistry) Discover(_ context.Context, channelID string) (*videodto.DiscoveryResult, error) {
	m.discoverCalls = append(m.discoverCalls, channelID)
	if m.discoverErr != nil {
		return nil, m.discoverErr
	}
	return &videodto.DiscoveryResult{ChannelID: channelID}, nil
}

func (m *mockVideoRegistry) StatsForChannel(_ context.Context, _ string) (*videodto.Stats, error) {
	return &videodto.Stats{}, nil
}

type mockMetadataResolver struct {
	byURL map[string]*ytdlp.Metadata
}

func (m *mockMetadataResolver) Fetch(_ context.Context, url string) (*ytdlp.Metadata, error) {
	md, ok := m.byURL[url]
	if !ok {
		return nil, ytdlp.ErrResolve
	}
	return md, nil
}

type mockDownloader struct {
	calls   []string
	failFor map[string]error
}

func (m *mockDownloader) Download(_ context.Context, _, url string) error {
	m.calls = append(m.calls, url)
	if err, ok := m.failFor[url]; ok {
		return err
	}
	return nil
}

type mockParams struct {
	value string
}

func (m *mockParams) Parameters(_ context.Context) (string, error) {
	return m.value, nil
}

type recordingSink struct {
	events []string
}

func (s *recordingSink) Emit(namespace, eventType string, _ map[string]string) {
	s.events = append(s.events, namespace+"/"+eventType)
}

var testMetrics = metrics.NewMetrics()

type fixture struct {
	repo       *mockSubRepo
	channels   *mockChannelRegistry
	videos     *mockVideoRegistry
	resolver   *mockMetadataResolver
	downloader *mockDownloader
	sink       *recordingSink
	uc         *UseCase
}

func newFixture(retryUnknown bool) *fixture {
	f := &fixture{
		repo:       newMockSubRepo(),
		channels:   newMockChannelRegistry(),
		videos:     newMockVideoRegistry(),
		resolver:   &mockMetadataResolver{byURL: make(map[string]*ytdlp.Metadata)},
		downloader: &mockDownloader{failFor: make(map[string]error)},
		sink:       &recordingSink{},
	}
	f.uc = NewUseCase(
		f.repo, f.channels, f.videos, f.resolver, f.downloader,
		&mockParams{value: "-f best"}, f.sink, testMetrics, retryUnknown, zerolog.Nop(),
	)
	return f
}

func int64ptr(n int64) *int64 { return &n }

func TestAddIsIdempotent(t *testing.T) {
	f := newFixture(false)

	first, err := f.uc.Add(context.Background(), "https://example.com/watch?v=abc")
	if err != nil {
		t.Fatalf("first Add returned error: %v", err)
	}
	if first.Existing {
		t.Error("first Add reported existing")
	}

	created := f.repo.byURL[first.URL].CreatedAt

	second, err := f.uc.Add(context.Background(), "https://example.com/watch?v=abc")
	if err != nil {
		t.Fatalf("second Add returned error: %v", err)
	}
	if !second.Existing {
		t.Error("second Add did not report existing")
	}
	if len(f.repo.byURL) != 1 {
		t.Errorf("expected 1 row, got %d", len(f.repo.byURL))
	}
	if !f.repo.byURL[first.URL].CreatedAt.Equal(created) {
		t.Error("created_at changed on duplicate add")
	}
}

func TestAddRejectsEmptyURL(t *testing.T) {
	f := newFixture(false)

	if _, err := f.uc.Add(context.Background(), "   "); !errors.Is(err, serrors.ErrInvalidURL) {
		t.Errorf("expected ErrInvalidURL, got %v", err)
	}
}

func TestEnrichSingleVideoEndToEnd(t *testing.T) {
	f := newFixture(false)
	url := "https://example.com/watch?v=abc123"
	f.resolver.byURL[url] = &ytdlp.Metadata{
		Type:      "video",
		Extractor: "youtube",
		ID:        "abc123",
		Title:     "A Video",
		Channel:   "Some Channel",
		ChannelID: "UCchan",
		Filesize:  int64ptr(4096),
	}

	// Add enriches inline because no enqueuer is attached.
	if _, err := f.uc.Add(context.Background(), url); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	sub, err := f.repo.GetByURL(context.Background(), url)
	if err != nil {
		t.Fatalf("subscription missing: %v", err)
	}
	if sub.Type != entities.TypeVideo {
		t.Errorf("expected type video, got %q", sub.Type)
	}
	if sub.ChannelID == nil {
		t.Error("expected channel reference to be set")
	}

	if len(f.channels.byChannelID) != 1 {
		t.Errorf("expected exactly one channel row, got %d", len(f.channels.byChannelID))
	}
	if len(f.videos.registered) != 1 {
		t.Errorf("expected exactly one video row, got %d", len(f.videos.registered))
	}
	if video := f.videos.registered["abc123"]; video == nil || video.Title != "A Video" {
		t.Errorf("unexpected video registration: %+v", video)
	}
	if f.channels.avatarCalls != 1 {
		t.Errorf("expected one avatar attempt, got %d", f.channels.avatarCalls)
	}

	last := f.sink.events[len(f.sink.events)-1]
	if last != "subscription_enrichment/complete" {
		t.Errorf("expected final complete event, got %q", last)
	}
}

func TestEnrichChannelRunsDiscovery(t *testing.T) {
	f := newFixture(false)
	url := "https://example.com/@somechannel"
	f.resolver.byURL[url] = &ytdlp.Metadata{
		Type:         "playlist",
		ExtractorKey: "YoutubeTab",
		Channel:      "Some Channel",
		ChannelID:    "UCchan",
	}

	if _, err := f.uc.Add(context.Background(), url); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	sub, _ := f.repo.GetByURL(context.Background(), url)
	if sub.Type != entities.TypeChannel {
		t.Errorf("expected type channel, got %q", sub.Type)
	}
	if len(f.videos.discoverCalls) != 1 || f.videos.discoverCalls[0] != "UCchan" {
		t.Errorf("expected one discovery run for UCchan, got %v", f.videos.discoverCalls)
	}
}

func TestEnrichPlaylistDefersPopulation(t *testing.T) {
	f := newFixture(false)
	url := "https://example.com/playlist?list=PL1"
	f.resolver.byURL[url] = &ytdlp.Metadata{
		Type:         "playlist",
		ExtractorKey: "YoutubePlaylist",
		Title:        "My List",
		UploaderID:   "UCowner",
		Uploader:     "Owner",
	}

	if _, err := f.uc.Add(context.Background(), url); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	sub, _ := f.repo.GetByURL(context.Background(), url)
	if sub.Type != entities.TypePlaylist {
		t.Errorf("expected type playlist, got %q", sub.Type)
	}
	if len(f.videos.discoverCalls) != 0 {
		t.Errorf("playlist enrichment must not run discovery, got %v", f.videos.discoverCalls)
	}
	if len(f.videos.registered) != 0 {
		t.Errorf("playlist enrichment must not register videos, got %d", len(f.videos.registered))
	}
}

func TestEnrichResolutionFailureParksUnknown(t *testing.T) {
	f := newFixture(false)
	url := "https://example.com/broken"

	if _, err := f.uc.Add(context.Background(), url); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	sub, _ := f.repo.GetByURL(context.Background(), url)
	if sub.Type != entities.TypeUnknown {
		t.Errorf("expected terminal unknown state, got %q", sub.Type)
	}

	last := f.sink.events[len(f.sink.events)-1]
	if last != "subscription_enrichment/failed" {
		t.Errorf("expected failed event, got %q", last)
	}
}

func TestEnrichUnclassifiableParksUnknown(t *testing.T) {
	f := newFixture(false)
	url := "https://example.com/odd"
	f.resolver.byURL[url] = &ytdlp.Metadata{Extractor: "generic"}

	if _, err := f.uc.Add(context.Background(), url); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	sub, _ := f.repo.GetByURL(context.Background(), url)
	if sub.Type != entities.TypeUnknown {
		t.Errorf("expected unknown, got %q", sub.Type)
	}
}

func TestSyncAllContinuesPastFailure(t *testing.T) {
	f := newFixture(false)
	seed := func(url, subType string) {
		f.repo.byURL[url] = &entities.Subscription{URL: url, Type: subType}
	}
	seed("https://example.com/a", entities.TypeChannel)
	seed("https://example.com/b", entities.TypeVideo)
	f.downloader.failFor["https://example.com/a"] = fmt.Errorf("%w: timeout after 1h0m0s", ytdlp.ErrSyncFailed)

	report, err := f.uc.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll returned error: %v", err)
	}

	if report.Attempted != 2 {
		t.Errorf("expected both subscriptions attempted, got %d", report.Attempted)
	}
	if report.Succeeded != 1 {
		t.Errorf("expected one success, got %d", report.Succeeded)
	}
	if _, ok := report.Failures["https://example.com/a"]; !ok {
		t.Error("expected failure recorded for timed-out subscription")
	}
	if len(f.downloader.calls) != 2 {
		t.Errorf("expected 2 download invocations, got %d", len(f.downloader.calls))
	}
}

func TestSyncAllSkipsUnclassifiedAndUnknown(t *testing.T) {
	f := newFixture(false)
	f.repo.byURL["a"] = &entities.Subscription{URL: "a", Type: entities.TypeUnclassified}
	f.repo.byURL["b"] = &entities.Subscription{URL: "b", Type: entities.TypeUnknown}
	f.repo.byURL["c"] = &entities.Subscription{URL: "c", Type: entities.TypeChannel}

	report, err := f.uc.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll returned error: %v", err)
	}

	if report.Attempted != 1 || report.Skipped != 2 {
		t.Errorf("expected 1 attempted / 2 skipped, got %+v", report)
	}
	if len(f.downloader.calls) != 1 || f.downloader.calls[0] != "c" {
		t.Errorf("expected only c downloaded, got %v", f.downloader.calls)
	}
}

func TestSyncAllRetryUnknownFlag(t *testing.T) {
	f := newFixture(true)
	f.repo.byURL["b"] = &entities.Subscription{URL: "b", Type: entities.TypeUnknown}

	report, err := f.uc.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll returned error: %v", err)
	}

	if report.Attempted != 1 {
		t.Errorf("expected unknown subscription attempted with retry flag, got %+v", report)
	}
}

func TestSyncRefusesUnclassified(t *testing.T) {
	f := newFixture(false)
	f.repo.byURL["a"] = &entities.Subscription{URL: "a", Type: entities.TypeUnclassified}

	if err := f.uc.Sync(context.Background(), "a"); !errors.Is(err, serrors.ErrNotSyncable) {
		t.Errorf("expected ErrNotSyncable, got %v", err)
	}
}

func TestSyncManualAllowsUnknown(t *testing.T) {
	f := newFixture(false)
	f.repo.byURL["b"] = &entities.Subscription{URL: "b", Type: entities.TypeUnknown}

	if err := f.uc.Sync(context.Background(), "b"); err != nil {
		t.Errorf("manual sync of unknown subscription should run, got %v", err)
	}
	if len(f.downloader.calls) != 1 {
		t.Errorf("expected one download, got %d", len(f.downloader.calls))
	}
}

func TestRemoveMissingSubscription(t *testing.T) {
	f := newFixture(false)

	if err := f.uc.Remove(context.Background(), "nope"); !errors.Is(err, serrors.ErrSubscriptionNotFound) {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
}
