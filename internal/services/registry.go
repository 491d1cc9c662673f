package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService     AuthService
	OTPService      OTPService
	TemplateService TemplateService
	TaxonomyService TaxonomyService
	CreditService   CreditService
	DownloadService DownloadService
}
