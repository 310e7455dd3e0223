// Package models содержит доменные структуры учёта участников спортзала:
// участника, каталог тарифов, запрос на регистрацию и агрегированную статистику.
package models

import "time"

// DateLayout — формат дат вступления и окончания абонемента (dd/MM/yyyy).
// Сами даты хранятся строками и не интерпретируются хранилищем.
const DateLayout = "02/01/2006"

// Member представляет клиента спортзала.
type Member struct {
	ID               string         `json:"id"`                          // Уникальный идентификатор, не меняется после создания
	Name             string         `json:"name"`                        // Имя участника
	Email            string         `json:"email"`                       // Электронная почта
	PhoneNumber      string         `json:"phone_number"`                // Номер телефона
	Plan             MembershipPlan `json:"plan"`                        // Тариф абонемента
	JoinDate         string         `json:"join_date"`                   // Дата вступления
	ExpiryDate       string         `json:"expiry_date"`                 // Дата окончания абонемента
	IsActive         bool           `json:"is_active"`                   // Активен ли абонемент
	ProfileImageURL  *string        `json:"profile_image_url,omitempty"` // Ссылка на фото (опционально)
	EmergencyContact string         `json:"emergency_contact"`           // Экстренный контакт
	Address          string         `json:"address"`                     // Адрес
}

// Clone возвращает копию участника, не разделяющую с оригиналом ProfileImageURL.
func (m Member) Clone() Member {
	if m.ProfileImageURL != nil {
		url := *m.ProfileImageURL
		m.ProfileImageURL = &url
	}
	return m
}

// CloneMembers копирует список участников вместе с указателями внутри записей.
// Для nil возвращается nil.
func CloneMembers(members []Member) []Member {
	if members == nil {
		return nil
	}
	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = m.Clone()
	}
	return out
}

// RegisterRequest используется для приёма данных нового участника.
// Проверка на пустые значения выполняется сервисом, теги validate
// используются HTTP-слоем для первичной проверки JSON.
type RegisterRequest struct {
	Name             string         `json:"name" validate:"required"`
	Email            string         `json:"email" validate:"required"`
	PhoneNumber      string         `json:"phone_number" validate:"required"`
	Plan             MembershipPlan `json:"plan"`
	JoinDate         string         `json:"join_date,omitempty"`
	ExpiryDate       string         `json:"expiry_date,omitempty"`
	EmergencyContact string         `json:"emergency_contact,omitempty"`
	Address          string         `json:"address,omitempty"`
	ProfileImageURL  *string        `json:"profile_image_url,omitempty"`
}

// Ключи статистики, не зависящие от тарифа.
const (
	StatTotal    = "total"
	StatActive   = "active"
	StatInactive = "inactive"
)

// Statistics — количество участников по категориям: total, active, inactive
// и по одному ключу на каждый тариф каталога.
type Statistics map[string]int

// SnapshotEvent — сообщение о новом снимке списка участников для внешних подписчиков.
type SnapshotEvent struct {
	Total       int       `json:"total"`
	Active      int       `json:"active"`
	Inactive    int       `json:"inactive"`
	Members     []Member  `json:"members"`
	PublishedAt time.Time `json:"published_at"`
}

// SampleMembers возвращает демонстрационный набор участников для начального заполнения.
func SampleMembers() []Member {
	return []Member{
		{
			ID: "1", Name: "John Doe", Email: "john@email.com", PhoneNumber: "081234567890",
			Plan: PlanPremium, JoinDate: "01/01/2024", ExpiryDate: "01/02/2024", IsActive: true,
		},
		{
			ID: "2", Name: "Jane Smith", Email: "jane@email.com", PhoneNumber: "081234567891",
			Plan: PlanVIP, JoinDate: "15/01/2024", ExpiryDate: "15/02/2024", IsActive: true,
		},
		{
			ID: "3", Name: "Bob Wilson", Email: "bob@email.com", PhoneNumber: "081234567892",
			Plan: PlanBasic, JoinDate: "20/01/2024", ExpiryDate: "20/02/2024", IsActive: false,
		},
	}
}
