package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Встроенные шаблоны используются, если директория с шаблонами не задана
const (
	otpTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a2e;">
  <h2>Your verification code</h2>
  <p>Use this code to continue. It expires in {{.TTLMinutes}} minutes.</p>
  <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">{{.Code}}</p>
  <p>If you did not request this code, you can ignore this email.</p>
</body>
</html>`

	downloadLinkTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a2e;">
  <h2>Your download is ready</h2>
  <p>Thanks for choosing <b>{{.TemplateTitle}}</b>.</p>
  <p><a href="{{.Link}}" style="display:inline-block;padding:12px 24px;background:#4F46E5;color:#fff;text-decoration:none;border-radius:6px;">Download template</a></p>
  <p>If the button does not work, copy this link into your browser:<br>{{.Link}}</p>
</body>
</html>`
)

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с уже зарегистрированными
// встроенными шаблонами otp и download_link
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Ошибки парсинга встроенных шаблонов невозможны при корректных константах
	_ = tm.AddTemplate("otp", otpTemplate)
	_ = tm.AddTemplate("download_link", downloadLinkTemplate)
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates загружает шаблоны из директории.
// Одноименные файлы переопределяют встроенные шаблоны.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

// TemplateNames возвращает список имен загруженных шаблонов
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}
