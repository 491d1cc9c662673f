package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок
маркетплейса шаблонов.
*/

// =========================================================================
// Фабричные функции (оборачивание ошибок нижних слоев)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Аутентификация
// =========================================================================

// ErrInvalidCredentials - единый ответ на неизвестный email и неверный пароль.
// Сообщение намеренно одинаковое, чтобы не раскрывать существование аккаунта.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusBadRequest,
)

// ErrInvalidToken - токен не прошел проверку подписи или истек
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusForbidden,
)

// ErrEmailAlreadyExists - email уже зарегистрирован.
// 400, а не 409: фронт показывает это как обычную ошибку формы.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already exists",
	http.StatusBadRequest,
)

// ErrUserNotFound - пользователь не найден
var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// ErrPasswordMismatch - пароль и подтверждение не совпадают
var ErrPasswordMismatch = New(
	CodeValidationFailed,
	"auth",
	"Passwords do not match",
	http.StatusBadRequest,
)

// =========================================================================
// Одноразовые коды
// =========================================================================

// ErrInvalidOTP - единый ответ на отсутствующий, истекший и неверный код.
// Клиент не должен отличать эти случаи (§ анти-перечисление).
var ErrInvalidOTP = New(
	CodeInvalidOTP,
	"otp",
	"Invalid or expired OTP",
	http.StatusBadRequest,
)

// =========================================================================
// Шаблоны и загрузки
// =========================================================================

// ErrTemplateNotFound - шаблон не найден
var ErrTemplateNotFound = New(
	CodeNotFound,
	"template",
	"Template not found",
	http.StatusNotFound,
)

// ErrNotTemplateOwner - попытка изменить чужой шаблон
var ErrNotTemplateOwner = New(
	CodeForbidden,
	"template",
	"You are not authorized to modify this template",
	http.StatusForbidden,
)

// ErrFileTooLarge - файл превышает максимальный размер
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME-тип файла не разрешен
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// ErrFreeDownloadsExhausted - лимит бесплатных скачиваний исчерпан
var ErrFreeDownloadsExhausted = New(
	CodeLimitExceeded,
	"download",
	"Free download limit exhausted",
	http.StatusForbidden,
)
