package business

import (
	"context"
	"errors"
	"testing"

	"github.com/okdewit/ytdlp-docker/internal/domain/channel/entities"
	cherrors "github.com/okdewit/ytdlp-docker/internal/domain/channel/errors"
	"github.com/rs/zerolog"
)

type mockRepo struct {
	byChannelID map[string]*entities.Channel
	nextID      uint
	createErr   error
}

func newMockRepo() *mockRepo {
	return &mockRepo{byChannelID: make(map[string]*entities.Channel), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, channel *entities.Channel) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byChannelID[channel.ChannelID]; ok {
		return cherrors.ErrChannelAlreadyExists
	}
	channel.ID = m.nextID
	m.nextID++
	stored := *channel
	m.byChannelID[channel.ChannelID] = &stored
	return nil
}

func (m *mockRepo) GetByChannelID(_ context.Context, channelID string) (*entities.Channel, error) {
	channel, ok := m.byChannelID[channelID]
	if !ok {
		return nil, cherrors.ErrChannelNotFound
	}
	copied := *channel
	return &copied, nil
}

func (m *mockRepo) List(_ context.Context) ([]entities.Channel, error) {
	channels := make([]entities.Channel, 0, len(m.byChannelID))
	for _, c := range m.byChannelID {
		channels = append(channels, *c)
	}
	return channels, nil
}

type mockAvatars struct {
	calls int
	err   error
}

func (m *mockAvatars) Resolve(_ context.Context, _, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return "/data/Channel/poster.jpg", nil
}

func TestUpsertCreatesChannel(t *testing.T) {
	repo := newMockRepo()
	uc := NewUseCase(repo, &mockAvatars{}, zerolog.Nop())

	channel, err := uc.Upsert(context.Background(), "UC123", "Test Channel")
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if channel.ChannelID != "UC123" || channel.Name != "Test Channel" {
		t.Errorf("unexpected channel: %+v", channel)
	}
}

func TestUpsertFirstWriteWins(t *testing.T) {
	repo := newMockRepo()
	uc := NewUseCase(repo, &mockAvatars{}, zerolog.Nop())

	first, err := uc.Upsert(context.Background(), "UC123", "Original Name")
	if err != nil {
		t.Fatalf("first Upsert returned error: %v", err)
	}

	second, err := uc.Upsert(context.Background(), "UC123", "Renamed Channel")
	if err != nil {
		t.Fatalf("second Upsert returned error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected same row, got IDs %d and %d", first.ID, second.ID)
	}
	if second.Name != "Original Name" {
		t.Errorf("expected stored name to win, got %q", second.Name)
	}
}

func TestUpsertResolvesLostRace(t *testing.T) {
	repo := newMockRepo()
	uc := NewUseCase(repo, &mockAvatars{}, zerolog.Nop())

	// Simulate a concurrent insert landing between lookup and create.
	repo.createErr = cherrors.ErrChannelAlreadyExists
	repo.byChannelID["UC456"] = &entities.Channel{ID: 7, ChannelID: "UC456", Name: "Winner"}

	channel, err := uc.Upsert(context.Background(), "UC456", "Loser")
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if channel.ID != 7 || channel.Name != "Winner" {
		t.Errorf("expected winner's row, got %+v", channel)
	}
}

func TestUpsertRejectsEmptyChannelID(t *testing.T) {
	uc := NewUseCase(newMockRepo(), &mockAvatars{}, zerolog.Nop())

	if _, err := uc.Upsert(context.Background(), "", "Name"); !errors.Is(err, cherrors.ErrInvalidChannelID) {
		t.Errorf("expected ErrInvalidChannelID, got %v", err)
	}
}

func TestEnsureAvatarSwallowsFailure(t *testing.T) {
	avatars := &mockAvatars{err: errors.New("network down")}
	uc := NewUseCase(newMockRepo(), avatars, zerolog.Nop())

	uc.EnsureAvatar(context.Background(), "UC123", "Test Channel")

	if avatars.calls != 1 {
		t.Errorf("expected one resolve attempt, got %d", avatars.calls)
	}
}

func TestEnsureAvatarSkipsBlankIdentity(t *testing.T) {
	avatars := &mockAvatars{}
	uc := NewUseCase(newMockRepo(), avatars, zerolog.Nop())

	uc.EnsureAvatar(context.Background(), "", "Name")
	uc.EnsureAvatar(context.Background(), "UC123", "")

	if avatars.calls != 0 {
		t.Errorf("expected no resolve attempts, got %d", avatars.calls)
	}
}
