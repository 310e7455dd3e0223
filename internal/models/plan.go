package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlan возвращается при попытке получить тариф по неизвестному ключу.
var ErrUnknownPlan = errors.New("unknown membership plan")

// MembershipPlan — тариф абонемента из фиксированного каталога.
// Поле ключа неэкспортируемое, поэтому за пределами пакета значение можно получить
// только из предопределённых переменных или через ParsePlan.
// Нулевое значение не является допустимым тарифом (см. IsValid).
type MembershipPlan struct {
	key string
}

type planInfo struct {
	displayName string
	price       int64
	duration    string
	months      int
	color       string
	benefits    []string
}

// Тарифы каталога.
var (
	PlanBasic      = MembershipPlan{key: "basic"}
	PlanPremium    = MembershipPlan{key: "premium"}
	PlanVIP        = MembershipPlan{key: "vip"}
	PlanQuarterly  = MembershipPlan{key: "quarterly"}
	PlanSemiAnnual = MembershipPlan{key: "semiannual"}
	PlanAnnual     = MembershipPlan{key: "annual"}
)

var planOrder = []string{"basic", "premium", "vip", "quarterly", "semiannual", "annual"}

var catalog = map[string]planInfo{
	"basic": {
		displayName: "Basic",
		price:       250000,
		duration:    "1 month",
		months:      1,
		color:       "#4CAF50",
		benefits:    []string{"Gym access", "Locker", "1 consultation session"},
	},
	"premium": {
		displayName: "Premium",
		price:       450000,
		duration:    "1 month",
		months:      1,
		color:       "#2196F3",
		benefits:    []string{"Gym access", "Locker", "Personal trainer 2x", "Group classes"},
	},
	"vip": {
		displayName: "VIP",
		price:       800000,
		duration:    "1 month",
		months:      1,
		color:       "#FF9800",
		benefits:    []string{"24/7 access", "Unlimited personal trainer", "Spa access", "Nutrition consultation"},
	},
	"quarterly": {
		displayName: "Quarterly",
		price:       1200000,
		duration:    "3 months",
		months:      3,
		color:       "#9C27B0",
		benefits:    []string{"Gym access", "Locker", "Group classes", "3 consultation sessions"},
	},
	"semiannual": {
		displayName: "Semi-Annual",
		price:       2250000,
		duration:    "6 months",
		months:      6,
		color:       "#3F51B5",
		benefits:    []string{"Gym access", "Locker", "Personal trainer 6x", "Group classes"},
	},
	"annual": {
		displayName: "Annual",
		price:       4000000,
		duration:    "1 year",
		months:      12,
		color:       "#F44336",
		benefits:    []string{"24/7 access", "Locker", "Personal trainer 12x", "Group classes", "Spa access"},
	},
}

// Plans возвращает весь каталог тарифов в фиксированном порядке.
func Plans() []MembershipPlan {
	plans := make([]MembershipPlan, 0, len(planOrder))
	for _, key := range planOrder {
		plans = append(plans, MembershipPlan{key: key})
	}
	return plans
}

// ParsePlan ищет тариф по ключу без учёта регистра.
func ParsePlan(key string) (MembershipPlan, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if _, ok := catalog[normalized]; !ok {
		return MembershipPlan{}, fmt.Errorf("%w: %q", ErrUnknownPlan, key)
	}
	return MembershipPlan{key: normalized}, nil
}

// IsValid сообщает, принадлежит ли значение каталогу.
func (p MembershipPlan) IsValid() bool {
	_, ok := catalog[p.key]
	return ok
}

// Key возвращает машинный ключ тарифа, он же ключ в статистике.
func (p MembershipPlan) Key() string { return p.key }

// DisplayName возвращает название тарифа для отображения.
func (p MembershipPlan) DisplayName() string { return catalog[p.key].displayName }

// Price возвращает стоимость тарифа в рупиях (IDR), целым числом.
func (p MembershipPlan) Price() int64 { return catalog[p.key].price }

// Duration возвращает текстовое описание срока действия ("1 month", "1 year").
func (p MembershipPlan) Duration() string { return catalog[p.key].duration }

// Months возвращает срок действия тарифа в календарных месяцах.
func (p MembershipPlan) Months() int { return catalog[p.key].months }

// Color возвращает цветовую метку тарифа в формате #RRGGBB.
func (p MembershipPlan) Color() string { return catalog[p.key].color }

// Benefits возвращает копию списка преимуществ тарифа.
func (p MembershipPlan) Benefits() []string {
	benefits := catalog[p.key].benefits
	out := make([]string, len(benefits))
	copy(out, benefits)
	return out
}

func (p MembershipPlan) String() string {
	if !p.IsValid() {
		return "unknown"
	}
	return p.key
}

// MarshalText сериализует тариф в его ключ.
func (p MembershipPlan) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, ErrUnknownPlan
	}
	return []byte(p.key), nil
}

// UnmarshalText разбирает ключ тарифа, неизвестные ключи отклоняются.
func (p *MembershipPlan) UnmarshalText(text []byte) error {
	plan, err := ParsePlan(string(text))
	if err != nil {
		return err
	}
	*p = plan
	return nil
}

// PlanView — представление тарифа для отдачи клиенту.
type PlanView struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"display_name"`
	Price       int64    `json:"price"`
	Duration    string   `json:"duration"`
	Months      int      `json:"months"`
	Color       string   `json:"color"`
	Benefits    []string `json:"benefits"`
}

// View собирает PlanView для тарифа.
func (p MembershipPlan) View() PlanView {
	return PlanView{
		Key:         p.Key(),
		DisplayName: p.DisplayName(),
		Price:       p.Price(),
		Duration:    p.Duration(),
		Months:      p.Months(),
		Color:       p.Color(),
		Benefits:    p.Benefits(),
	}
}
