package bot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/bot/internal/catalog"
	"storefront/bot/internal/domain"
	"storefront/bot/internal/pages"
	"storefront/bot/internal/repository"
	"storefront/bot/internal/session"
	"storefront/bot/internal/telegram"
	"storefront/bot/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// opLog records the order of transport and session operations across the
// fakes, so tests can assert sequencing (album before ids before text).
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

func (l *opLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

type answer struct {
	id   string
	text string
}

type fakeClient struct {
	log *opLog

	albumIDs  []int // returned by SendAlbum
	albumErr  error
	deleteErr map[int]error

	texts   []string
	edits   []string
	albums  [][]string
	deleted []int
	answers []answer
}

func (f *fakeClient) GetUpdates(context.Context, int64, int) ([]telegram.Update, error) {
	return nil, nil
}

func (f *fakeClient) SendText(_ context.Context, _ int64, text string, _ *telegram.InlineKeyboardMarkup, _ string) (int, error) {
	f.log.add("sendText")
	f.texts = append(f.texts, text)
	return 900 + len(f.texts), nil
}

func (f *fakeClient) SendAlbum(_ context.Context, _ int64, photoURLs []string) ([]int, error) {
	f.log.add("sendAlbum")
	if f.albumErr != nil {
		return nil, f.albumErr
	}
	f.albums = append(f.albums, photoURLs)
	return f.albumIDs, nil
}

func (f *fakeClient) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.log.add("delete")
	f.deleted = append(f.deleted, messageID)
	return f.deleteErr[messageID]
}

func (f *fakeClient) EditMessageText(_ context.Context, _ int64, _ int, text string, _ *telegram.InlineKeyboardMarkup, _ string) error {
	f.log.add("edit")
	f.edits = append(f.edits, text)
	return nil
}

func (f *fakeClient) AnswerCallbackQuery(_ context.Context, callbackQueryID, text string) error {
	f.log.add("answer")
	f.answers = append(f.answers, answer{id: callbackQueryID, text: text})
	return nil
}

// recordingSessions mirrors store operations into the shared op log.
type recordingSessions struct {
	inner session.Store
	log   *opLog
}

func (r *recordingSessions) TakeLastAlbum(ctx context.Context, chatID int64) ([]int, error) {
	r.log.add("session.take")
	return r.inner.TakeLastAlbum(ctx, chatID)
}

func (r *recordingSessions) SetLastAlbum(ctx context.Context, chatID int64, ids []int) error {
	r.log.add("session.set")
	return r.inner.SetLastAlbum(ctx, chatID, ids)
}

// recordingJournal mirrors journal writes into the shared op log. Its log
// pointer is bound after fixture construction.
type recordingJournal struct {
	log *opLog
}

func (j *recordingJournal) RecordButton(context.Context, repository.ButtonEvent) error {
	j.log.add("journal.button")
	return nil
}

func (j *recordingJournal) RecordAlbum(context.Context, repository.AlbumEvent) error {
	j.log.add("journal.album")
	return nil
}

type fixture struct {
	controller *Controller
	client     *fakeClient
	sessions   session.Store
	log        *opLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithJournal(t, repository.NewNoopJournal())
}

func newFixtureWithJournal(t *testing.T, journal repository.EventJournal) *fixture {
	t.Helper()

	idx := catalog.NewIndex(
		[]domain.Category{{Key: "phones", Name: "📱 Phones"}},
		[]domain.Product{
			{ID: "p1", Name: "Widget", Price: "10", Category: "phones", Description: "desc"},
			{ID: "p2", Name: "Camera", Price: "20", Category: "phones", Description: "with photos", Photos: []string{"u1", "u2"}},
		},
	)

	log := &opLog{}
	client := &fakeClient{log: log, deleteErr: map[int]error{}}
	sessions := session.NewMemoryStore()
	renderer := view.NewRenderer(idx, pages.Load(t.TempDir()), "https://t.me/seller")
	controller := NewController(client, idx, renderer, &recordingSessions{inner: sessions, log: log}, journal)

	return &fixture{controller: controller, client: client, sessions: sessions, log: log}
}

func callback(token string) *telegram.CallbackQuery {
	return &telegram.CallbackQuery{
		ID:   "cb1",
		From: telegram.User{ID: 7, Username: "buyer", LanguageCode: "ru"},
		Message: &telegram.Message{
			MessageID: 55,
			Chat:      telegram.Chat{ID: 100},
		},
		Data: token,
	}
}

func TestHandleStart(t *testing.T) {
	f := newFixture(t)

	err := f.controller.HandleStart(context.Background(), &telegram.Message{
		MessageID: 1,
		From:      &telegram.User{ID: 7, Username: "buyer"},
		Chat:      telegram.Chat{ID: 100},
		Text:      "/start",
	})
	require.NoError(t, err)

	require.Len(t, f.client.texts, 1)
	assert.Equal(t, view.GreetingText, f.client.texts[0])
}

func TestNoOpAcknowledgesOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.sessions.SetLastAlbum(ctx, 100, []int{5}))

	require.NoError(t, f.controller.HandleCallback(ctx, callback("noop")))

	assert.Equal(t, []string{"answer"}, f.log.all())
	require.Len(t, f.client.answers, 1)
	assert.Equal(t, view.NoOpToast, f.client.answers[0].text)

	// The stored album survives a noop untouched.
	ids, err := f.sessions.TakeLastAlbum(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ids)
}

func TestUnknownTokenIsIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.sessions.SetLastAlbum(ctx, 100, []int{5}))

	require.NoError(t, f.controller.HandleCallback(ctx, callback("garbage")))

	// Acknowledged, then nothing: no render, no session mutation.
	assert.Equal(t, []string{"answer"}, f.log.all())

	ids, err := f.sessions.TakeLastAlbum(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ids)
}

func TestCategoryListEditsInPlace(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.controller.HandleCallback(context.Background(), callback("available")))

	assert.Equal(t, []string{"answer", "session.take", "edit"}, f.log.all())
	require.Len(t, f.client.edits, 1)
	assert.Equal(t, view.CategoriesText, f.client.edits[0])
}

func TestProductWithoutPhotos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.controller.HandleCallback(ctx, callback("p1")))

	// Description as a plain message, no album, trigger message removed.
	assert.Equal(t, []string{"answer", "session.take", "sendText", "delete"}, f.log.all())
	assert.Equal(t, []string{"desc"}, f.client.texts)
	assert.Empty(t, f.client.albums)
	assert.Equal(t, []int{55}, f.client.deleted)

	ids, err := f.sessions.TakeLastAlbum(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestProductWithPhotos(t *testing.T) {
	f := newFixture(t)
	f.client.albumIDs = []int{101, 102}
	ctx := context.Background()

	require.NoError(t, f.controller.HandleCallback(ctx, callback("p2")))

	// Album first, ids stored, then the description, then the trigger drop.
	assert.Equal(t, []string{"answer", "session.take", "sendAlbum", "session.set", "sendText", "delete"}, f.log.all())
	require.Len(t, f.client.albums, 1)
	assert.Equal(t, []string{"u1", "u2"}, f.client.albums[0])
	assert.Equal(t, []int{55}, f.client.deleted)

	ids, err := f.sessions.TakeLastAlbum(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{101, 102}, ids)
}

func TestSecondInteractionCleansPreviousAlbum(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.sessions.SetLastAlbum(ctx, 100, []int{101, 102}))
	f.client.deleteErr[101] = errors.New("message to delete not found")

	require.NoError(t, f.controller.HandleCallback(ctx, callback("home")))

	// Both deletes issued even though the first one failed.
	assert.Equal(t, []int{101, 102}, f.client.deleted)
	require.Len(t, f.client.edits, 1)
	assert.Equal(t, view.HomeAgainText, f.client.edits[0])

	ids, err := f.sessions.TakeLastAlbum(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFailedAlbumSendPropagates(t *testing.T) {
	f := newFixture(t)
	f.client.albumErr = errors.New("transport down")
	ctx := context.Background()

	err := f.controller.HandleCallback(ctx, callback("p2"))
	require.Error(t, err)

	// No description went out and nothing was stored for cleanup.
	assert.Empty(t, f.client.texts)
	ids, takeErr := f.sessions.TakeLastAlbum(ctx, 100)
	require.NoError(t, takeErr)
	assert.Empty(t, ids)
}

func TestAnswerPrecedesJournal(t *testing.T) {
	journal := &recordingJournal{}
	f := newFixtureWithJournal(t, journal)
	journal.log = f.log
	ctx := context.Background()

	// The journal write may hit a database; the callback must be answered
	// before it, on every path.
	require.NoError(t, f.controller.HandleCallback(ctx, callback("p1")))
	assert.Equal(t, []string{"answer", "journal.button", "session.take", "sendText", "delete"}, f.log.all())
}

func TestNoOpAnswerPrecedesJournal(t *testing.T) {
	journal := &recordingJournal{}
	f := newFixtureWithJournal(t, journal)
	journal.log = f.log

	require.NoError(t, f.controller.HandleCallback(context.Background(), callback("noop")))
	assert.Equal(t, []string{"answer", "journal.button"}, f.log.all())
}

func TestStaticPageCallback(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.controller.HandleCallback(context.Background(), callback("warranty")))

	assert.Equal(t, []string{"answer", "session.take", "edit"}, f.log.all())
}
