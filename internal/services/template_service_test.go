package services

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"
	"templhub_backend/internal/services/dto"
	"templhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCreditRepo struct {
	credits map[string]*models.Credit
}

func newMockCreditRepo() *mockCreditRepo {
	return &mockCreditRepo{credits: make(map[string]*models.Credit)}
}

func (m *mockCreditRepo) Create(credit *models.Credit) error {
	m.credits[credit.ID] = credit
	return nil
}

func (m *mockCreditRepo) FindByID(id string) (*models.Credit, error) {
	if c, ok := m.credits[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrCreditNotFound
}

func (m *mockCreditRepo) FindByTemplateID(templateID string) ([]models.Credit, error) {
	var out []models.Credit
	for _, c := range m.credits {
		if c.TemplateID == templateID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCreditRepo) Update(credit *models.Credit) error {
	m.credits[credit.ID] = credit
	return nil
}

func (m *mockCreditRepo) Delete(id string) error {
	delete(m.credits, id)
	return nil
}

func newTestTemplateService(templateRepo *mockTemplateRepo) TemplateService {
	return NewTemplateService(templateRepo, newMockCreditRepo(), nil, UploadLimits{
		MaxSize:        5 << 20,
		MaxArchiveSize: 100 << 20,
		AllowedTypes:   []string{"image/jpeg", "image/png", "image/webp"},
	})
}

func imageHeader(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

// TestTemplateUpdate_OwnerOnly - чужой шаблон редактировать нельзя
func TestTemplateUpdate_OwnerOnly(t *testing.T) {
	t.Parallel()

	repo := newMockTemplateRepo()
	tpl := repo.add(&models.Template{Title: "Landing", UserID: "owner"})
	svc := newTestTemplateService(repo)

	_, err := svc.Update(context.Background(), "intruder", tpl.ID, &dto.UpdateTemplateRequest{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotTemplateOwner)

	err = svc.Delete(context.Background(), "intruder", tpl.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotTemplateOwner)
}

// TestTemplateUpdate_MergesOnlyProvidedFields - частичное обновление метаданных
func TestTemplateUpdate_MergesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	repo := newMockTemplateRepo()
	tpl := repo.add(&models.Template{
		Title:       "Landing",
		Description: "Original description",
		Price:       25,
		UserID:      "owner",
	})
	svc := newTestTemplateService(repo)

	newTitle := "Landing Pro"
	newPrice := 40.0
	updated, err := svc.Update(context.Background(), "owner", tpl.ID, &dto.UpdateTemplateRequest{
		Title: &newTitle,
		Price: &newPrice,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Landing Pro", updated.Title)
	assert.Equal(t, 40.0, updated.Price)
	assert.Equal(t, "Original description", updated.Description)
}

// TestTemplateDelete_RemovesRecord - владелец удаляет свой шаблон
func TestTemplateDelete_RemovesRecord(t *testing.T) {
	t.Parallel()

	repo := newMockTemplateRepo()
	tpl := repo.add(&models.Template{Title: "Landing", UserID: "owner"})
	svc := newTestTemplateService(repo)

	require.NoError(t, svc.Delete(context.Background(), "owner", tpl.ID))

	_, err := svc.GetByID(tpl.ID)
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)
}

// TestTemplateGetByID_Unknown - несуществующий идентификатор
func TestTemplateGetByID_Unknown(t *testing.T) {
	t.Parallel()

	svc := newTestTemplateService(newMockTemplateRepo())

	_, err := svc.GetByID("missing")
	assert.ErrorIs(t, err, apperrors.ErrTemplateNotFound)
}

// TestTemplateUpdate_FileValidation - лимит размера и список типов
func TestTemplateUpdate_FileValidation(t *testing.T) {
	t.Parallel()

	repo := newMockTemplateRepo()
	tpl := repo.add(&models.Template{Title: "Landing", UserID: "owner"})
	svc := newTestTemplateService(repo)

	// Слишком большая картинка
	_, err := svc.Update(context.Background(), "owner", tpl.ID, &dto.UpdateTemplateRequest{}, &dto.TemplateFiles{
		SliderImages: []*multipart.FileHeader{imageHeader("big.png", "image/png", 50<<20)},
	})
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	// Недопустимый тип
	_, err = svc.Update(context.Background(), "owner", tpl.ID, &dto.UpdateTemplateRequest{}, &dto.TemplateFiles{
		PreviewImages: []*multipart.FileHeader{imageHeader("page.html", "text/html", 1024)},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}
