package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	TemplateHandler *TemplateHandler
	TaxonomyHandler *TaxonomyHandler
	CreditHandler   *CreditHandler
	HealthHandler   *HealthHandler
}
