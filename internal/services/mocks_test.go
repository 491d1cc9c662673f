package services

import (
	"sync"

	"templhub_backend/internal/email"
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"

	"github.com/google/uuid"
)

// Моки репозиториев держат данные в памяти: сервисный слой
// тестируется без подключения к базе.

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // по ID
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) add(user *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) FindByID(id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(emailAddr string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == emailAddr {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *mockUserRepo) Create(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Update(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) UpdateToken(userID string, token *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Token = token
	return nil
}

func (m *mockUserRepo) UpdatePassword(userID string, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockUserRepo) UpdateEmail(userID string, emailAddr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Email == emailAddr && id != userID {
			return repositories.ErrUserAlreadyExists
		}
	}
	u, ok := m.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Email = emailAddr
	return nil
}

func (m *mockUserRepo) UpdateProfileImage(userID string, url *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.ProfileImg = url
	return nil
}

func (m *mockUserRepo) DecrementFreeDownloads(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.FreeDownloads <= 0 {
		return repositories.ErrUserNotFound
	}
	u.FreeDownloads--
	return nil
}

func (m *mockUserRepo) Delete(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

func (m *mockUserRepo) FindAll(limit, offset int) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) CountAll() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) CountByRole(role models.UserRole) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type mockCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*models.OneTimeCode // по email
}

func newMockCodeRepo() *mockCodeRepo {
	return &mockCodeRepo{codes: make(map[string]*models.OneTimeCode)}
}

func (m *mockCodeRepo) Upsert(code *models.OneTimeCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *code
	m.codes[code.Email] = &copied
	return nil
}

func (m *mockCodeRepo) FindByEmail(emailAddr string) (*models.OneTimeCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.codes[emailAddr]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, repositories.ErrCodeNotFound
}

func (m *mockCodeRepo) DeleteByEmail(emailAddr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, emailAddr)
	return nil
}

// code возвращает живой код для адреса, как он лежит в хранилище
func (m *mockCodeRepo) code(emailAddr string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.codes[emailAddr]; ok {
		return c.Code
	}
	return ""
}

// mockEmailProvider собирает отправленные письма. Отправка идет из
// горутин, поэтому доступ под мьютексом.
type mockEmailProvider struct {
	mu    sync.Mutex
	otps  map[string]string // адрес -> последний код
	links map[string]string // адрес -> последняя ссылка
	sent  int
}

func newMockEmailProvider() *mockEmailProvider {
	return &mockEmailProvider{
		otps:  make(map[string]string),
		links: make(map[string]string),
	}
}

func (m *mockEmailProvider) Send(msg *email.Email) error { return nil }

func (m *mockEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	return nil
}

func (m *mockEmailProvider) SendOTP(to string, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps[to] = code
	m.sent++
	return nil
}

func (m *mockEmailProvider) SendDownloadLink(to string, templateTitle string, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[to] = link
	m.sent++
	return nil
}

func (m *mockEmailProvider) Validate() error { return nil }
func (m *mockEmailProvider) Close() error    { return nil }

func (m *mockEmailProvider) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

func (m *mockEmailProvider) lastOTP(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.otps[to]
}

type mockTemplateRepo struct {
	mu        sync.Mutex
	templates map[string]*models.Template
	downloads map[string]int // ID -> счетчик скачиваний
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{
		templates: make(map[string]*models.Template),
		downloads: make(map[string]int),
	}
}

func (m *mockTemplateRepo) add(t *models.Template) *models.Template {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	m.templates[t.ID] = t
	return t
}

func (m *mockTemplateRepo) Create(t *models.Template) error {
	m.add(t)
	return nil
}

func (m *mockTemplateRepo) FindByID(id string) (*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.templates[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, repositories.ErrTemplateNotFound
}

func (m *mockTemplateRepo) Update(t *models.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[t.ID]; !ok {
		return repositories.ErrTemplateNotFound
	}
	m.templates[t.ID] = t
	return nil
}

func (m *mockTemplateRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return repositories.ErrTemplateNotFound
	}
	delete(m.templates, id)
	return nil
}

func (m *mockTemplateRepo) FindWithFilter(filter repositories.TemplateFilter) ([]models.Template, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Template, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (m *mockTemplateRepo) FindLatest(limit int) ([]models.Template, error)   { return m.all(limit) }
func (m *mockTemplateRepo) FindPopular(limit int) ([]models.Template, error)  { return m.all(limit) }
func (m *mockTemplateRepo) FindFeatured(limit int) ([]models.Template, error) { return m.all(limit) }

func (m *mockTemplateRepo) FindAll() ([]models.Template, error) { return m.all(0) }

func (m *mockTemplateRepo) all(limit int) ([]models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Template, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, *t)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockTemplateRepo) FindByUserID(userID string) ([]models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Template
	for _, t := range m.templates {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTemplateRepo) SearchByTitle(query string) ([]models.Template, error) {
	return m.all(0)
}

func (m *mockTemplateRepo) IncrementDownloads(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return repositories.ErrTemplateNotFound
	}
	t.Downloads++
	m.downloads[id]++
	return nil
}

func (m *mockTemplateRepo) ReplaceSourceFiles(templateID string, urls []string) error   { return nil }
func (m *mockTemplateRepo) ReplaceSliderImages(templateID string, urls []string) error  { return nil }
func (m *mockTemplateRepo) ReplacePreviewImages(templateID string, urls []string) error { return nil }
func (m *mockTemplateRepo) ReplacePreviewMobileImages(templateID string, urls []string) error {
	return nil
}

func (m *mockTemplateRepo) downloadCount(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.downloads[id]
}

type mockDownloadRepo struct {
	mu      sync.Mutex
	records []models.DownloadHistory
}

func newMockDownloadRepo() *mockDownloadRepo {
	return &mockDownloadRepo{}
}

func (m *mockDownloadRepo) Create(record *models.DownloadHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockDownloadRepo) CountByEmail(emailAddr string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.records {
		if r.Email == emailAddr {
			n++
		}
	}
	return n, nil
}

func (m *mockDownloadRepo) FindWithFilter(filter repositories.DownloadFilter) ([]models.DownloadHistory, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DownloadHistory
	for _, r := range m.records {
		if filter.UserID != "" && (r.UserID == nil || *r.UserID != filter.UserID) {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}
