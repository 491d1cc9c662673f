package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTemplateManager_Builtins - встроенные шаблоны зарегистрированы и рендерятся
func TestTemplateManager_Builtins(t *testing.T) {
	t.Parallel()

	tm := NewTemplateManager()
	assert.ElementsMatch(t, []string{"otp", "download_link"}, tm.TemplateNames())

	otp, err := tm.Render("otp", TemplateData{"Code": "482913", "TTLMinutes": 5})
	require.NoError(t, err)
	assert.Contains(t, otp, "482913")
	assert.Contains(t, otp, "5 minutes")

	link, err := tm.Render("download_link", TemplateData{
		"TemplateTitle": "Landing Kit",
		"Link":          "https://dl.test/templates/42",
	})
	require.NoError(t, err)
	assert.Contains(t, link, "Landing Kit")
	assert.Contains(t, link, "https://dl.test/templates/42")
}

// TestTemplateManager_UnknownTemplate - рендер незарегистрированного имени
func TestTemplateManager_UnknownTemplate(t *testing.T) {
	t.Parallel()

	tm := NewTemplateManager()
	_, err := tm.Render("missing", TemplateData{})
	assert.Error(t, err)
}

// TestTemplateManager_AddTemplate - пользовательский шаблон перекрывает встроенный
func TestTemplateManager_AddTemplate(t *testing.T) {
	t.Parallel()

	tm := NewTemplateManager()
	require.NoError(t, tm.AddTemplate("otp", `code: {{.Code}}`))

	out, err := tm.Render("otp", TemplateData{"Code": "000111"})
	require.NoError(t, err)
	assert.Equal(t, "code: 000111", out)
}
