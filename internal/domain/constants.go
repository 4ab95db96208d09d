package domain

// Default values
const (
	// DefaultDailyCapacity лимит масс, используемый когда лимит на сегодня
	// не удалось прочитать из БД. Отсутствие строки - это лимит 0,
	// фолбэк применяется только при ошибке чтения.
	DefaultDailyCapacity = 12
)

// Business validation constants
const (
	MaxItemQuantity    = 20
	MaxItemsPerOrder   = 10
	MaxNotesLength     = 500
	MaxNameLength      = 120
	MaxAddressLength   = 300
	MinCustomerNameLen = 2
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// WhatsAppNumber номер, на который ведут все CTA-ссылки
const WhatsAppNumber = "56975255704"
