package core

// error_messages.go maps technical errors to user-facing messages.
//
// # Error Codes Reference
//
// Import errors (IMP001-IMP099), one per failure of the import pipeline:
//
//	IMP001 - Unsupported file type (ErrUnsupportedFileType)
//	IMP002 - File could not be parsed (ErrFileParse)
//	IMP003 - Text input is empty (ErrEmptyInput)
//	IMP004 - No valid tasks found (ErrNoValidRows)
//	IMP005 - Text could not be parsed (ErrTextParse)
//	IMP006 - Nothing to import (ErrNothingToCommit)
//
// File errors (FILE001-FILE099):
//
//	FILE001 - File exceeds the size limit (ErrFileTooLarge)
//	FILE004 - No file was selected (ErrNoFile)
//
// Request errors (UPL002-UPL005):
//
//	UPL002 - Too many imports in progress (ErrTooManyImports)
//	UPL004 - Request was cancelled (context.Canceled)
//	UPL005 - Request timed out (context.DeadlineExceeded)
//
// Task errors (TSK001-TSK099):
//
//	TSK001 - Task not found (ErrTaskNotFound)
//	TSK002 - Task is invalid (ValidationError)
//	TSK003 - Invalid progress date (ErrInvalidDate)
//
// Database errors (DB004-DB006) and rate limiting (RATE001) are matched by
// substring since they come from drivers and middleware.
//
// ERR000 is the fallback. When users report it, check application logs for
// the original technical error.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
	Key     string // Translation key used by clients
}

// sentinelMessages maps wrapped sentinel errors to messages. Checked with
// errors.Is before any substring pattern.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrUnsupportedFileType, UserMessage{
		Message: "Unsupported file type",
		Action:  "Please upload an Excel (.xlsx, .xls) or CSV (.csv) file",
		Code:    "IMP001",
		Key:     "import.unsupported_file_type",
	}},
	{ErrFileParse, UserMessage{
		Message: "The file could not be read",
		Action:  "Check the file is not corrupted and matches the template",
		Code:    "IMP002",
		Key:     "import.file_parse_error",
	}},
	{ErrEmptyInput, UserMessage{
		Message: "Please enter some tasks",
		Action:  "Add one task per line: title | category | start | end",
		Code:    "IMP003",
		Key:     "import.empty_text",
	}},
	{ErrNoValidRows, UserMessage{
		Message: "No valid tasks found",
		Action:  "Each task needs a title and a start and end time in HH:MM format",
		Code:    "IMP004",
		Key:     "import.no_valid_tasks",
	}},
	{ErrTextParse, UserMessage{
		Message: "The text could not be parsed",
		Action:  "Use one task per line separated by |",
		Code:    "IMP005",
		Key:     "import.text_parse_error",
	}},
	{ErrNothingToCommit, UserMessage{
		Message: "There are no tasks to import",
		Action:  "Upload a file or paste tasks first",
		Code:    "IMP006",
		Key:     "import.nothing_to_commit",
	}},
	{ErrFileTooLarge, UserMessage{
		Message: "File exceeds maximum size limit",
		Action:  "Split the file into smaller files",
		Code:    "FILE001",
		Key:     "import.file_too_large",
	}},
	{ErrNoFile, UserMessage{
		Message: "No file was selected",
		Action:  "Please select a file to upload",
		Code:    "FILE004",
		Key:     "import.no_file",
	}},
	{ErrTooManyImports, UserMessage{
		Message: "System is busy processing other imports",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
		Key:     "import.busy",
	}},
	{context.Canceled, UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
		Key:     "request.cancelled",
	}},
	{context.DeadlineExceeded, UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "UPL005",
		Key:     "request.timeout",
	}},
	{ErrTaskNotFound, UserMessage{
		Message: "Task not found",
		Action:  "The task may have been deleted. Refresh and try again",
		Code:    "TSK001",
		Key:     "tasks.not_found",
	}},
	{ErrInvalidDate, UserMessage{
		Message: "Invalid date",
		Action:  "Use YYYY-MM-DD",
		Code:    "TSK003",
		Key:     "progress.invalid_date",
	}},
}

var invalidTaskMessage = UserMessage{
	Message: "The task is invalid",
	Action:  "A task needs a title and an end time after its start time (HH:MM)",
	Code:    "TSK002",
	Key:     "tasks.invalid",
}

// errorPatterns maps technical error text (case-insensitive) to messages.
// The first matching pattern wins.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"connection refused", UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "DB004",
		Key:     "db.unavailable",
	}},
	{"connection reset", UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB005",
		Key:     "db.unavailable",
	}},
	{"database is locked", UserMessage{
		Message: "Database was busy with conflicting operations",
		Action:  "Please try again",
		Code:    "DB006",
		Key:     "db.busy",
	}},
	{"rate limit", UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
		Key:     "request.rate_limited",
	}},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
	Key:     "error.unknown",
}

// MapError converts a technical error to a user-friendly English message.
// Sentinel errors are matched with errors.Is; other errors by substring.
// Unknown errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	var ve ValidationError
	if errors.As(err, &ve) {
		return invalidTaskMessage
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError preserves a technical error for logging while exposing a clean
// message for users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

// =============================================================================
// Localization
// =============================================================================

// SupportedLanguages lists the languages messages are translated into.
// The first entry is the fallback.
var SupportedLanguages = []language.Tag{
	language.English,
	language.French,
	language.Arabic,
}

var languageMatcher = language.NewMatcher(SupportedLanguages)

// MatchLanguage picks the best supported language for the given preferences
// (Accept-Language headers, plain tags or POSIX locales such as
// fr_FR.UTF-8) and returns its base code, e.g. "fr".
func MatchLanguage(prefs ...string) string {
	tags := make([]string, len(prefs))
	for i, p := range prefs {
		tags[i] = posixLocale(p)
	}
	tag, _ := language.MatchStrings(languageMatcher, tags...)
	base, _ := tag.Base()
	return base.String()
}

// posixLocale rewrites a POSIX locale as a BCP 47 tag by dropping the
// codeset and modifier and mapping "_" to "-". Accept-Language lists are
// returned unchanged.
func posixLocale(s string) string {
	if strings.ContainsAny(s, ",;") {
		return s
	}
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

type translation struct {
	Message string
	Action  string
}

// translations holds non-English text by base language and code.
var translations = map[string]map[string]translation{
	"fr": {
		"IMP001":  {"Type de fichier non pris en charge", "Veuillez utiliser un fichier Excel (.xlsx, .xls) ou CSV (.csv)"},
		"IMP002":  {"Impossible de lire le fichier", "Vérifiez que le fichier n'est pas corrompu et suit le modèle"},
		"IMP003":  {"Veuillez saisir des tâches", "Une tâche par ligne : titre | catégorie | début | fin"},
		"IMP004":  {"Aucune tâche valide trouvée", "Chaque tâche doit avoir un titre et des heures au format HH:MM"},
		"IMP005":  {"Impossible d'analyser le texte", "Une tâche par ligne, séparée par |"},
		"IMP006":  {"Aucune tâche à importer", "Importez d'abord un fichier ou collez des tâches"},
		"FILE001": {"Le fichier dépasse la taille maximale", "Divisez le fichier en fichiers plus petits"},
		"FILE004": {"Aucun fichier sélectionné", "Veuillez sélectionner un fichier"},
		"UPL002":  {"Le système traite d'autres importations", "Veuillez patienter et réessayer"},
		"UPL004":  {"La requête a été annulée", "Veuillez réessayer"},
		"UPL005":  {"La requête a expiré", "Essayez un fichier plus petit ou vérifiez votre connexion"},
		"TSK001":  {"Tâche introuvable", "Actualisez la page et réessayez"},
		"TSK002":  {"La tâche n'est pas valide", "Une tâche doit avoir un titre et une fin après le début (HH:MM)"},
		"TSK003":  {"Date invalide", "Utilisez AAAA-MM-JJ"},
		"ERR000":  {"Une erreur inattendue s'est produite", "Veuillez réessayer ou contacter le support"},
	},
	"ar": {
		"IMP001":  {"نوع الملف غير مدعوم", "يرجى استخدام ملف Excel (.xlsx, .xls) أو CSV (.csv)"},
		"IMP002":  {"تعذرت قراءة الملف", "تأكد من أن الملف سليم ويتبع القالب"},
		"IMP003":  {"يرجى إدخال بعض المهام", "مهمة واحدة في كل سطر: العنوان | الفئة | البداية | النهاية"},
		"IMP004":  {"لم يتم العثور على مهام صالحة", "تحتاج كل مهمة إلى عنوان ووقتي بداية ونهاية بصيغة HH:MM"},
		"IMP005":  {"تعذر تحليل النص", "مهمة واحدة في كل سطر مفصولة بـ |"},
		"IMP006":  {"لا توجد مهام للاستيراد", "قم برفع ملف أو لصق المهام أولاً"},
		"FILE001": {"حجم الملف يتجاوز الحد الأقصى", "قسّم الملف إلى ملفات أصغر"},
		"FILE004": {"لم يتم اختيار أي ملف", "يرجى اختيار ملف"},
		"UPL002":  {"النظام مشغول بعمليات استيراد أخرى", "يرجى الانتظار ثم المحاولة مرة أخرى"},
		"UPL004":  {"تم إلغاء الطلب", "يرجى المحاولة مرة أخرى"},
		"UPL005":  {"انتهت مهلة الطلب", "جرّب ملفاً أصغر أو تحقق من اتصالك"},
		"TSK001":  {"المهمة غير موجودة", "حدّث الصفحة وحاول مرة أخرى"},
		"TSK002":  {"المهمة غير صالحة", "تحتاج المهمة إلى عنوان ووقت نهاية بعد وقت البداية (HH:MM)"},
		"TSK003":  {"تاريخ غير صالح", "استخدم YYYY-MM-DD"},
		"ERR000":  {"حدث خطأ غير متوقع", "يرجى المحاولة مرة أخرى أو التواصل مع الدعم"},
	},
}

// LocalizedMessage maps err like MapError and translates the message into
// lang (a base code such as "fr"). Untranslated codes keep the English text.
func LocalizedMessage(err error, lang string) UserMessage {
	msg := MapError(err)
	if msg.Code == "" {
		return msg
	}
	if tr, ok := translations[lang][msg.Code]; ok {
		msg.Message = tr.Message
		msg.Action = tr.Action
	}
	return msg
}
