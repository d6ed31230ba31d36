package constants

// Обменник событий сервиса
const (
	EventsExchange     = "discovery.events"
	EventsExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyFavoriteChanged = "favorites.changed"
)

// Метаданные событий в заголовках сообщения
const (
	HeaderEventType    = "event-type"
	HeaderEventVersion = "event-version"
	HeaderTraceID      = "x-trace-id"
)
