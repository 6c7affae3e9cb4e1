package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportmeet/server/internal/auth"
	"github.com/sportmeet/server/internal/domain/events"
	"github.com/sportmeet/server/internal/domain/users"
)

// In-memory repositories so handler tests exercise the full service path
// without a database.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byMail: map[string]*users.User{}}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byMail[email]
	if !ok {
		return nil, users.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Create(_ context.Context, params users.CreateParams) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byMail[params.Email]; ok {
		return nil, users.ErrEmailTaken
	}
	user := &users.User{
		ID:           f.nextID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.byMail[params.Email] = user
	copied := *user
	return &copied, nil
}

type membership struct {
	eventID int64
	userID  int64
}

type fakeEventRepo struct {
	mu      sync.Mutex
	nextID  int64
	events  map[int64]*events.Event
	members map[membership]time.Time
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		nextID:  1,
		events:  map[int64]*events.Event{},
		members: map[membership]time.Time{},
	}
}

func (f *fakeEventRepo) view(event *events.Event, viewerID *int64) events.View {
	var count int64
	joined := false
	for m := range f.members {
		if m.eventID != event.ID {
			continue
		}
		count++
		if viewerID != nil && m.userID == *viewerID {
			joined = true
		}
	}
	return events.View{
		ID:                  event.ID,
		Title:               event.Title,
		SportType:           event.SportType,
		Location:            event.Location,
		EventDate:           event.EventDate,
		MaxParticipants:     event.MaxParticipants,
		CurrentParticipants: count,
		SkillLevel:          event.SkillLevel,
		Description:         event.Description,
		CreatorName:         "creator",
		CreatedAt:           event.CreatedAt,
		IsJoined:            joined,
	}
}

func (f *fakeEventRepo) ListUpcoming(_ context.Context, viewerID *int64) ([]events.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []events.View
	for _, event := range f.events {
		if !event.IsActive || !event.EventDate.After(time.Now()) {
			continue
		}
		views = append(views, f.view(event, viewerID))
	}
	return views, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64, viewerID *int64) (*events.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	view := f.view(event, viewerID)
	return &view, nil
}

func (f *fakeEventRepo) ListForUser(_ context.Context, userID int64) ([]events.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []events.View
	for _, event := range f.events {
		if _, ok := f.members[membership{event.ID, userID}]; !ok {
			continue
		}
		views = append(views, f.view(event, &userID))
	}
	return views, nil
}

func (f *fakeEventRepo) Insert(_ context.Context, params events.CreateParams, creatorID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.events[id] = &events.Event{
		ID:              id,
		Title:           params.Title,
		SportType:       params.SportType,
		Location:        params.Location,
		EventDate:       params.EventDate,
		MaxParticipants: params.MaxParticipants,
		SkillLevel:      params.SkillLevel,
		Description:     params.Description,
		CreatorID:       creatorID,
		CreatedAt:       time.Now(),
		IsActive:        true,
	}
	return id, nil
}

func (f *fakeEventRepo) GetForUpdate(_ context.Context, id int64) (*events.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) CountParticipants(_ context.Context, eventID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for m := range f.members {
		if m.eventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventRepo) IsParticipant(_ context.Context, eventID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.members[membership{eventID, userID}]
	return ok, nil
}

func (f *fakeEventRepo) AddParticipant(_ context.Context, eventID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := membership{eventID, userID}
	if _, ok := f.members[key]; ok {
		return events.ErrAlreadyJoined
	}
	f.members[key] = time.Now()
	return nil
}

func (f *fakeEventRepo) RemoveParticipant(_ context.Context, eventID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := membership{eventID, userID}
	if _, ok := f.members[key]; !ok {
		return false, nil
	}
	delete(f.members, key)
	return true, nil
}

func (f *fakeEventRepo) WithTx(ctx context.Context, fn func(ctx context.Context, repo events.Repository) error) error {
	return fn(ctx, f)
}

var _ users.Repository = (*fakeUserRepo)(nil)
var _ events.Repository = (*fakeEventRepo)(nil)

func testTokens() *auth.JWTManager {
	return auth.NewJWTManager("handler-test-secret", time.Hour, "sportmeet-test")
}

func testAuthHandler() (*AuthHandler, *fakeUserRepo) {
	repo := newFakeUserRepo()
	service := users.NewService(repo, testTokens(), zerolog.Nop())
	return NewAuthHandler(service, "test"), repo
}

func testEventsHandler() (*EventsHandler, *fakeEventRepo) {
	repo := newFakeEventRepo()
	service := events.NewService(repo, zerolog.Nop())
	return NewEventsHandler(service, "test"), repo
}
