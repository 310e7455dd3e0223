// Package month содержит календарную арифметику сроков абонемента.
package month

import (
	"fmt"
	"time"
)

// AddMonths прибавляет к дате указанное количество календарных месяцев.
// В отличие от time.AddDate, день не переносится в следующий месяц:
// 31 января + 1 месяц = 29 февраля (или 28 в невисокосный год).
func AddMonths(start time.Time, months int) time.Time {
	y, m, d := start.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())

	if last := daysIn(firstOfTarget); d > last {
		d = last
	}
	return firstOfTarget.AddDate(0, 0, d-1)
}

// ExpiryDate вычисляет дату окончания абонемента по дате вступления в формате layout.
func ExpiryDate(joinDate, layout string, months int) (string, error) {
	const op = "month.ExpiryDate"
	start, err := time.Parse(layout, joinDate)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return AddMonths(start, months).Format(layout), nil
}

func daysIn(t time.Time) int {
	// нулевой день следующего месяца равен последнему дню текущего
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
