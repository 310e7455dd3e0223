// Package sl содержит вспомогательные функции для работы с логгером slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Для nil-ошибки значение атрибута пустое.
//
// Пример:
//
//	log.Error("failed to publish snapshot", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Op возвращает атрибут с именем операции, по которому группируются записи лога.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}

// Panic возвращает атрибут для значения, перехваченного через recover.
func Panic(v any) slog.Attr {
	return slog.Any("panic", v)
}
