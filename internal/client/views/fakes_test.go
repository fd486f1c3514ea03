package views

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/dmitrijs2005/gophcards/internal/logging"
)

// fakeAPI is an in-memory backend. Hooks, when set, replace the default
// behaviour of a call.
type fakeAPI struct {
	mu       sync.Mutex
	nextID   int
	calls    []string
	datasets []models.Dataset
	cards    []models.VocabularyCard
	progress []models.ProgressEntry
	settings *models.Settings

	registerErr  error
	generated    *models.GeneratedFields
	generateErr  error
	listCardsErr error
	createErr    error
	settingsErr  error
	listProgress func(ctx context.Context) ([]models.ProgressEntry, error)
	listCards    func(ctx context.Context) ([]models.VocabularyCard, error)
}

func (f *fakeAPI) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) id(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeAPI) Register(ctx context.Context, req api.RegisterRequest) error {
	f.record("register %s %s", req.Username, req.Email)
	return f.registerErr
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*models.Session, error) {
	return nil, api.ErrAuthentication
}

func (f *fakeAPI) GetUser(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (f *fakeAPI) ListDatasets(ctx context.Context, userID string) ([]models.Dataset, error) {
	f.record("list datasets %s", userID)
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Dataset(nil), f.datasets...), nil
}

func (f *fakeAPI) CreateDataset(ctx context.Context, d models.Dataset) (models.Dataset, error) {
	f.record("create dataset %s", d.Name)
	if f.createErr != nil {
		return d, f.createErr
	}
	d.ID = f.id("d")
	f.mu.Lock()
	f.datasets = append(f.datasets, d)
	f.mu.Unlock()
	return d, nil
}

func (f *fakeAPI) UpdateDataset(ctx context.Context, id string, d models.Dataset) (models.Dataset, error) {
	f.record("update dataset %s %s", id, d.Name)
	return d, nil
}

func (f *fakeAPI) DeleteDataset(ctx context.Context, id string) error {
	f.record("delete dataset %s", id)
	return nil
}

func (f *fakeAPI) ListCards(ctx context.Context, datasetID string) ([]models.VocabularyCard, error) {
	f.record("list cards %s", datasetID)
	if f.listCards != nil {
		return f.listCards(ctx)
	}
	if f.listCardsErr != nil {
		return nil, f.listCardsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.VocabularyCard(nil), f.cards...), nil
}

func (f *fakeAPI) CreateCard(ctx context.Context, c models.VocabularyCard) (models.VocabularyCard, error) {
	f.record("create card %s", c.Word)
	if f.createErr != nil {
		return c, f.createErr
	}
	c.ID = f.id("c")
	f.mu.Lock()
	f.cards = append(f.cards, c)
	f.mu.Unlock()
	return c, nil
}

func (f *fakeAPI) UpdateCard(ctx context.Context, id string, c models.VocabularyCard) (models.VocabularyCard, error) {
	f.record("update card %s %s", id, c.Word)
	return c, nil
}

func (f *fakeAPI) DeleteCard(ctx context.Context, id string) error {
	f.record("delete card %s", id)
	return nil
}

func (f *fakeAPI) GenerateFields(ctx context.Context, word string) (*models.GeneratedFields, error) {
	f.record("generate %s", word)
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.generated, nil
}

func (f *fakeAPI) ListProgress(ctx context.Context, userID string) ([]models.ProgressEntry, error) {
	f.record("list progress %s", userID)
	if f.listProgress != nil {
		return f.listProgress(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ProgressEntry(nil), f.progress...), nil
}

func (f *fakeAPI) CreateProgress(ctx context.Context, p models.ProgressEntry) (models.ProgressEntry, error) {
	f.record("create progress %s", p.CardID)
	p.ID = f.id("p")
	return p, nil
}

func (f *fakeAPI) UpdateProgress(ctx context.Context, id string, p models.ProgressEntry) (models.ProgressEntry, error) {
	f.record("update progress %s reviewed=%t", id, p.Reviewed)
	return p, nil
}

func (f *fakeAPI) DeleteProgress(ctx context.Context, id string) error {
	f.record("delete progress %s", id)
	return nil
}

func (f *fakeAPI) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	f.record("get settings %s", userID)
	if f.settingsErr != nil {
		return nil, f.settingsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settings == nil {
		return nil, fmt.Errorf("GET /settings/%s: %w", userID, api.ErrNotFound)
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeAPI) CreateSettings(ctx context.Context, s models.Settings) (*models.Settings, error) {
	f.record("create settings %s", s.UserID)
	f.mu.Lock()
	f.settings = &s
	f.mu.Unlock()
	return &s, nil
}

func (f *fakeAPI) UpdateSettings(ctx context.Context, s models.Settings) (*models.Settings, error) {
	f.record("update settings %s", s.UserID)
	f.mu.Lock()
	f.settings = &s
	f.mu.Unlock()
	return &s, nil
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// scriptedPrompt answers Ask and Password from queues; an exhausted queue
// answers "" (keep current).
type scriptedPrompt struct {
	answers   []string
	passwords []string
	asked     []string
	invalid   []error
}

func (p *scriptedPrompt) Ask(label, current string) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.answers) == 0 {
		return "", nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompt) Password(label string) (string, error) {
	if len(p.passwords) == 0 {
		return "", nil
	}
	pw := p.passwords[0]
	p.passwords = p.passwords[1:]
	return pw, nil
}

func (p *scriptedPrompt) Invalid(err error) {
	p.invalid = append(p.invalid, err)
}

type fakeSession struct {
	user     *models.User
	loginErr error
	logins   []string
	last     string
}

func (s *fakeSession) Login(ctx context.Context, username, password string) (*models.Session, error) {
	s.logins = append(s.logins, username+":"+password)
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	s.user = &models.User{ID: "u1", Username: username}
	return &models.Session{Token: "t1", User: *s.user}, nil
}

func (s *fakeSession) CurrentUser() (*models.User, bool) {
	if s.user == nil {
		return nil, false
	}
	return s.user, true
}

func (s *fakeSession) LastUsername(ctx context.Context) string { return s.last }

type fakeReminders struct {
	scheduled []models.Settings
	err       error
}

func (r *fakeReminders) Schedule(userID string, st models.Settings) error {
	r.scheduled = append(r.scheduled, st)
	return r.err
}

type memMedia struct {
	saved map[string][]byte
}

func (m *memMedia) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[name] = data
	return "mem://" + name, nil
}

type harness struct {
	api      *fakeAPI
	prompt   *scriptedPrompt
	session  *fakeSession
	rem      *fakeReminders
	media    *memMedia
	out      *bytes.Buffer
	navigate []string
	env      *Env
}

func newHarness() *harness {
	h := &harness{
		api:     &fakeAPI{},
		prompt:  &scriptedPrompt{},
		session: &fakeSession{user: &models.User{ID: "u1", Username: "alice"}},
		rem:     &fakeReminders{},
		media:   &memMedia{},
		out:     &bytes.Buffer{},
	}
	h.env = &Env{
		API:       h.api,
		Session:   h.session,
		Media:     h.media,
		Reminders: h.rem,
		Prompt:    h.prompt,
		Out:       h.out,
		Log:       logging.Discard(),
		Navigate:  func(p string) { h.navigate = append(h.navigate, p) },
	}
	return h
}
