package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contactbook/internal/common"
	"contactbook/internal/logging"
	"contactbook/internal/server/addresses"
	"contactbook/internal/server/auth"
	"contactbook/internal/server/contacts"
	"contactbook/internal/server/users"
)

const testSecret = "test-secret"

// ---- fakes ----

type fakeUsers struct {
	byUsername map[string]*users.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byUsername: map[string]*users.User{}}
}

func (f *fakeUsers) Register(ctx context.Context, username, name, password string) (*users.User, error) {
	if _, ok := f.byUsername[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := &users.User{Username: username, Name: name, Password: password}
	f.byUsername[username] = u
	return u, nil
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*users.User, error) {
	u, ok := f.byUsername[username]
	if !ok || u.Password != password {
		return nil, common.ErrorUnauthorized
	}
	token, err := auth.GenerateToken(username, []byte(testSecret), time.Hour)
	if err != nil {
		return nil, common.ErrorInternal
	}
	u.Token = &token
	return u, nil
}

func (f *fakeUsers) Update(ctx context.Context, user *users.User, name *string, password *string) (*users.User, error) {
	if name != nil {
		user.Name = *name
	}
	if password != nil {
		user.Password = *password
	}
	f.byUsername[user.Username] = user
	return user, nil
}

func (f *fakeUsers) Logout(ctx context.Context, user *users.User) error {
	user.Token = nil
	return nil
}

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeContacts struct {
	nextID int64
	byID   map[int64]*contacts.Contact

	lastFilter   contacts.SearchFilter
	searchResult []*contacts.Contact
	searchPaging *contacts.Paging
	searchErr    error
}

func newFakeContacts() *fakeContacts {
	return &fakeContacts{nextID: 1, byID: map[int64]*contacts.Contact{}}
}

func (f *fakeContacts) Create(ctx context.Context, username string, contact *contacts.Contact) (*contacts.Contact, error) {
	contact.ID = f.nextID
	f.nextID++
	contact.Username = username
	f.byID[contact.ID] = contact
	return contact, nil
}

func (f *fakeContacts) Get(ctx context.Context, username string, id int64) (*contacts.Contact, error) {
	c, ok := f.byID[id]
	if !ok || c.Username != username {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeContacts) Update(ctx context.Context, username string, contact *contacts.Contact) (*contacts.Contact, error) {
	existing, ok := f.byID[contact.ID]
	if !ok || existing.Username != username {
		return nil, common.ErrorNotFound
	}
	contact.Username = username
	f.byID[contact.ID] = contact
	return contact, nil
}

func (f *fakeContacts) Delete(ctx context.Context, username string, id int64) (*contacts.Contact, error) {
	c, ok := f.byID[id]
	if !ok || c.Username != username {
		return nil, common.ErrorNotFound
	}
	delete(f.byID, id)
	return c, nil
}

func (f *fakeContacts) Search(ctx context.Context, username string, filter contacts.SearchFilter) ([]*contacts.Contact, *contacts.Paging, error) {
	f.lastFilter = filter
	if f.searchErr != nil {
		return nil, nil, f.searchErr
	}
	if f.searchResult == nil {
		return []*contacts.Contact{}, &contacts.Paging{CurrentPage: filter.Page, Size: filter.Size}, nil
	}
	return f.searchResult, f.searchPaging, nil
}

type fakeAddresses struct {
	nextID int64
	byID   map[int64]*addresses.Address
	owners map[int64]string // contact id -> owner
}

func newFakeAddresses(owners map[int64]string) *fakeAddresses {
	return &fakeAddresses{nextID: 1, byID: map[int64]*addresses.Address{}, owners: owners}
}

func (f *fakeAddresses) ownedContact(username string, contactID int64) error {
	owner, ok := f.owners[contactID]
	if !ok || owner != username {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeAddresses) Create(ctx context.Context, username string, address *addresses.Address) (*addresses.Address, error) {
	if err := f.ownedContact(username, address.ContactID); err != nil {
		return nil, err
	}
	address.ID = f.nextID
	f.nextID++
	f.byID[address.ID] = address
	return address, nil
}

func (f *fakeAddresses) Get(ctx context.Context, username string, contactID, addressID int64) (*addresses.Address, error) {
	if err := f.ownedContact(username, contactID); err != nil {
		return nil, err
	}
	a, ok := f.byID[addressID]
	if !ok || a.ContactID != contactID {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeAddresses) Update(ctx context.Context, username string, address *addresses.Address) (*addresses.Address, error) {
	if err := f.ownedContact(username, address.ContactID); err != nil {
		return nil, err
	}
	existing, ok := f.byID[address.ID]
	if !ok || existing.ContactID != address.ContactID {
		return nil, common.ErrorNotFound
	}
	f.byID[address.ID] = address
	return address, nil
}

func (f *fakeAddresses) Delete(ctx context.Context, username string, contactID, addressID int64) (*addresses.Address, error) {
	a, err := f.Get(ctx, username, contactID, addressID)
	if err != nil {
		return nil, err
	}
	delete(f.byID, addressID)
	return a, nil
}

func (f *fakeAddresses) List(ctx context.Context, username string, contactID int64) ([]*addresses.Address, error) {
	if err := f.ownedContact(username, contactID); err != nil {
		return nil, err
	}
	result := []*addresses.Address{}
	for id := int64(1); id < f.nextID; id++ {
		if a, ok := f.byID[id]; ok && a.ContactID == contactID {
			result = append(result, a)
		}
	}
	return result, nil
}

// ---- harness ----

type env struct {
	server    *Server
	users     *fakeUsers
	contacts  *fakeContacts
	addresses *fakeAddresses
	router    http.Handler
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	fu := newFakeUsers()
	fc := newFakeContacts()
	fa := newFakeAddresses(map[int64]string{})

	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s, err := NewServer(":0", l, fu, fc, fa, testSecret)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	return &env{server: s, users: fu, contacts: fc, addresses: fa, router: s.Router()}
}

// registerAndLogin seeds a user and returns a live bearer token.
func (e *env) registerAndLogin(t *testing.T, username string) string {
	t.Helper()
	if _, err := e.users.Register(context.Background(), username, username, "rahasia"); err != nil {
		t.Fatalf("seed register error: %v", err)
	}
	u, err := e.users.Login(context.Background(), username, "rahasia")
	if err != nil {
		t.Fatalf("seed login error: %v", err)
	}
	return *u.Token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body error: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("authorization", token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type webResponse struct {
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	Errors string          `json:"errors"`
	Data   json.RawMessage `json:"data"`
	Paging *Paging         `json:"paging"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) *webResponse {
	t.Helper()
	resp := &webResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), resp); err != nil {
		t.Fatalf("decode response error: %v (body: %s)", err, w.Body.String())
	}
	return resp
}
