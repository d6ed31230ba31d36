package contextkeys

import (
	"context"

	"github.com/google/uuid"
)

// Ключи метаданных запроса. Логгер лежит отдельно, см. logger.go
type requestKeyType int

const (
	traceIDKey requestKeyType = iota
	callerKey
)

// CallerSource - откуда взят идентификатор пользователя
type CallerSource string

const (
	CallerFromGateway CallerSource = "gateway"
	CallerFromToken   CallerSource = "token"
)

// Caller - пользователь, от имени которого выполняется запрос к избранному
type Caller struct {
	UserID uuid.UUID
	Source CallerSource
}

// NewTraceID сохраняет trace_id от API Gateway, если это UUID, иначе выдает новый
func NewTraceID(incoming string) string {
	if _, err := uuid.Parse(incoming); err == nil {
		return incoming
	}
	return uuid.NewString()
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext возвращает пустую строку вне HTTP-запроса
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext не признает пользователя с нулевым UUID
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey).(Caller)
	if !ok || caller.UserID == uuid.Nil {
		return Caller{}, false
	}
	return caller, true
}
