package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// newRequest builds a request with an optional JSON body, path values and caller.
func newRequest(t *testing.T, method, target string, body any, principal *domain.Principal, pathValues map[string]string) *http.Request {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if principal != nil {
		req = req.WithContext(middleware.SetPrincipal(req.Context(), *principal))
	}
	return req
}

// decodeEnvelope decodes the response envelope, unmarshalling data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dest != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user       *domain.User
	users      []*domain.User
	token      string
	taken      bool
	err        error
	lastSignUp domain.SignUpInput
	lastActor  domain.Principal
	lastID     int64
	lastUpdate domain.UserUpdate
	lastQuery  string
}

func (f *fakeUserService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.User, error) {
	f.lastSignUp = in
	return f.user, f.err
}

func (f *fakeUserService) VerifyAndGetUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeUserService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	f.lastQuery = identifier
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.lastID = id
	return f.user, f.err
}

func (f *fakeUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.lastQuery = username
	return f.user, f.err
}

func (f *fakeUserService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	return f.users, len(f.users), f.err
}

func (f *fakeUserService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	f.lastQuery = email
	return f.taken, f.err
}

func (f *fakeUserService) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	f.lastQuery = username
	return f.taken, f.err
}

func (f *fakeUserService) Update(ctx context.Context, actor domain.Principal, id int64, upd domain.UserUpdate) (*domain.User, error) {
	f.lastActor, f.lastID, f.lastUpdate = actor, id, upd
	return f.user, f.err
}

func (f *fakeUserService) Delete(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

// fakeVenueService implements domain.VenueService for handler tests.
type fakeVenueService struct {
	venue     *domain.Venue
	venues    []*domain.Venue
	taken     bool
	err       error
	lastID    int64
	lastInput domain.VenueInput
}

func (f *fakeVenueService) Create(ctx context.Context, in domain.VenueInput) (*domain.Venue, error) {
	f.lastInput = in
	return f.venue, f.err
}

func (f *fakeVenueService) Get(ctx context.Context, id int64) (*domain.Venue, error) {
	f.lastID = id
	return f.venue, f.err
}

func (f *fakeVenueService) List(ctx context.Context) ([]*domain.Venue, error) {
	return f.venues, f.err
}

func (f *fakeVenueService) Update(ctx context.Context, id int64, in domain.VenueInput) (*domain.Venue, error) {
	f.lastID, f.lastInput = id, in
	return f.venue, f.err
}

func (f *fakeVenueService) Delete(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeVenueService) IsNameTaken(ctx context.Context, name string) (bool, error) {
	return f.taken, f.err
}

// fakePerformerService implements domain.PerformerService for handler tests.
type fakePerformerService struct {
	performers []*domain.Performer
	err        error
	lastName   string
}

func (f *fakePerformerService) Get(ctx context.Context, id int64) (*domain.Performer, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.performers {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPerformerNotFound
}

func (f *fakePerformerService) List(ctx context.Context, nameContains string) ([]*domain.Performer, error) {
	f.lastName = nameContains
	return f.performers, f.err
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	event      *domain.Event
	events     []*domain.Event
	saved      bool
	err        error
	lastActor  domain.Principal
	lastInsert domain.EventInsert
	lastUpdate domain.EventUpdate
	lastFilter domain.EventFilter
	lastPage   domain.PaginationParams
	lastUserID int64
	lastID     int64
	calls      []string
}

func (f *fakeEventService) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeEventService) Create(ctx context.Context, actor domain.Principal, in domain.EventInsert) (*domain.Event, error) {
	f.record("Create")
	f.lastActor, f.lastInsert = actor, in
	return f.event, f.err
}

func (f *fakeEventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	f.record("Get")
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) List(ctx context.Context, flt domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	f.record("List")
	f.lastFilter, f.lastPage = flt, p
	return f.events, len(f.events), f.err
}

func (f *fakeEventService) Upcoming(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	f.record("Upcoming")
	f.lastPage = p
	return f.events, len(f.events), f.err
}

func (f *fakeEventService) Past(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	f.record("Past")
	f.lastPage = p
	return f.events, len(f.events), f.err
}

func (f *fakeEventService) ListByUser(ctx context.Context, userID int64, p domain.PaginationParams) ([]*domain.Event, int, error) {
	f.record("ListByUser")
	f.lastUserID, f.lastPage = userID, p
	return f.events, len(f.events), f.err
}

func (f *fakeEventService) Update(ctx context.Context, actor domain.Principal, id int64, upd domain.EventUpdate) (*domain.Event, error) {
	f.record("Update")
	f.lastActor, f.lastID, f.lastUpdate = actor, id, upd
	return f.event, f.err
}

func (f *fakeEventService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	f.record("Delete")
	f.lastActor, f.lastID = actor, id
	return f.err
}

func (f *fakeEventService) SaveEvent(ctx context.Context, userID, eventID int64) error {
	f.record("SaveEvent")
	f.lastUserID, f.lastID = userID, eventID
	return f.err
}

func (f *fakeEventService) UnsaveEvent(ctx context.Context, userID, eventID int64) error {
	f.record("UnsaveEvent")
	f.lastUserID, f.lastID = userID, eventID
	return f.err
}

func (f *fakeEventService) IsSaved(ctx context.Context, userID, eventID int64) (bool, error) {
	f.record("IsSaved")
	f.lastUserID, f.lastID = userID, eventID
	return f.saved, f.err
}

func (f *fakeEventService) ListSaved(ctx context.Context, userID int64, p domain.PaginationParams) ([]*domain.Event, int, error) {
	f.record("ListSaved")
	f.lastUserID, f.lastPage = userID, p
	return f.events, len(f.events), f.err
}

// fakeFilterService implements domain.FilterService for handler tests.
type fakeFilterService struct {
	options  []string
	err      error
	lastKind string
}

func (f *fakeFilterService) Options(ctx context.Context, kind string) ([]string, error) {
	f.lastKind = kind
	return f.options, f.err
}

// fakeImageStore implements domain.ImageStore and keeps the uploaded bytes.
type fakeImageStore struct {
	name string
	data []byte
	err  error
}

func (f *fakeImageStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.name = originalName
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.data = data
	return "/uploads/stored-" + originalName, nil
}
