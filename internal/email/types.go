package email

// Attachment вложение в письмо
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email структура исходящего письма
type Email struct {
	From        string
	To          []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData данные для шаблонов писем
type TemplateData map[string]interface{}
