// Package services содержит бизнес-логику учёта участников спортзала:
// проверку входных данных, генерацию идентификаторов, запросы и статистику.
package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-membership/internal/lib/month"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
	"github.com/magabrotheeeer/gym-membership/internal/storage/memory"
)

// ErrValidation возвращается, если данные для регистрации не прошли проверку.
var ErrValidation = errors.New("validation failed")

// MemberRepository определяет методы хранилища участников.
type MemberRepository interface {
	// Add добавляет участника.
	Add(member models.Member)
	// GetAll возвращает всех участников.
	GetAll() []models.Member
	// GetByID возвращает участника по ID.
	GetByID(id string) (models.Member, bool)
	// Update заменяет участника с тем же ID.
	Update(member models.Member) bool
	// Delete удаляет участника по ID.
	Delete(id string) bool
	// Search ищет участников по подстроке.
	Search(query string) []models.Member
	// Subscribe подписывает на снимки списка участников.
	Subscribe(sub memory.Subscriber) func()
}

// RegistrationRecorder учитывает результаты регистрации (например, в метриках).
type RegistrationRecorder interface {
	ObserveRegistration(success bool)
}

// Option настраивает MemberService.
type Option func(*MemberService)

// WithIDGenerator задаёт генератор идентификаторов участников.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemberService) { s.newID = gen }
}

// WithClock задаёт источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *MemberService) { s.now = now }
}

// WithRecorder подключает учёт результатов регистрации.
func WithRecorder(r RegistrationRecorder) Option {
	return func(s *MemberService) { s.recorder = r }
}

// MemberService реализует операции над участниками поверх хранилища.
type MemberService struct {
	repo     MemberRepository
	log      *slog.Logger
	newID    func() string
	now      func() time.Time
	recorder RegistrationRecorder
}

// NewMemberService создает новый экземпляр MemberService.
func NewMemberService(repo MemberRepository, log *slog.Logger, opts ...Option) *MemberService {
	s := &MemberService{
		repo:  repo,
		log:   log,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register проверяет данные, создаёт активного участника с новым ID и сохраняет его.
// Даты сохраняются без окружающих пробелов. Пустая дата вступления заменяется
// сегодняшней, пустая дата окончания вычисляется из даты вступления и срока тарифа.
func (s *MemberService) Register(req models.RegisterRequest) (models.Member, error) {
	const op = "services.member.Register"
	log := s.log.With(sl.Op(op))

	member, err := s.build(req)
	if err != nil {
		s.observe(false)
		log.Warn("registration rejected", sl.Err(err))
		return models.Member{}, err
	}

	s.repo.Add(member)
	s.observe(true)
	log.Info("registered new member", slog.String("id", member.ID), slog.String("plan", member.Plan.Key()))

	return member, nil
}

func (s *MemberService) build(req models.RegisterRequest) (models.Member, error) {
	var blank []string
	if isBlank(req.Name) {
		blank = append(blank, "name")
	}
	if isBlank(req.Email) {
		blank = append(blank, "email")
	}
	if isBlank(req.PhoneNumber) {
		blank = append(blank, "phone number")
	}
	if len(blank) > 0 {
		return models.Member{}, fmt.Errorf("%w: %s must not be blank", ErrValidation, strings.Join(blank, ", "))
	}
	if !req.Plan.IsValid() {
		return models.Member{}, fmt.Errorf("%w: membership plan is required", ErrValidation)
	}

	joinDate := strings.TrimSpace(req.JoinDate)
	if joinDate == "" {
		joinDate = s.now().Format(models.DateLayout)
	}

	expiryDate := strings.TrimSpace(req.ExpiryDate)
	if expiryDate == "" {
		derived, err := month.ExpiryDate(joinDate, models.DateLayout, req.Plan.Months())
		if err != nil {
			return models.Member{}, fmt.Errorf("%w: expiry date is required", ErrValidation)
		}
		expiryDate = derived
	}

	member := models.Member{
		ID:               s.newID(),
		Name:             req.Name,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Plan:             req.Plan,
		JoinDate:         joinDate,
		ExpiryDate:       expiryDate,
		IsActive:         true,
		ProfileImageURL:  req.ProfileImageURL,
		EmergencyContact: req.EmergencyContact,
		Address:          req.Address,
	}
	return member.Clone(), nil
}

// GetAll возвращает всех участников.
func (s *MemberService) GetAll() []models.Member {
	return s.repo.GetAll()
}

// GetByID возвращает участника по ID.
func (s *MemberService) GetByID(id string) (models.Member, bool) {
	return s.repo.GetByID(id)
}

// Search ищет участников по имени, email или телефону. Пустой запрос возвращает всех.
func (s *MemberService) Search(query string) []models.Member {
	return s.repo.Search(query)
}

// ToggleStatus переключает признак активности участника.
// Возвращает false, если участник не найден.
func (s *MemberService) ToggleStatus(id string) bool {
	const op = "services.member.ToggleStatus"

	member, ok := s.repo.GetByID(id)
	if !ok {
		s.log.Debug("member not found", sl.Op(op), slog.String("id", id))
		return false
	}
	member.IsActive = !member.IsActive
	if !s.repo.Update(member) {
		return false
	}

	s.log.Info("member status toggled", sl.Op(op), slog.String("id", id), slog.Bool("is_active", member.IsActive))
	return true
}

// Delete удаляет участника. Возвращает false, если участника не было
// или удаление завершилось непредвиденной ошибкой.
func (s *MemberService) Delete(id string) (deleted bool) {
	const op = "services.member.Delete"
	log := s.log.With(sl.Op(op), slog.String("id", id))

	defer func() {
		if r := recover(); r != nil {
			log.Error("failed to delete member", sl.Panic(r))
			deleted = false
		}
	}()

	deleted = s.repo.Delete(id)
	if deleted {
		log.Info("member deleted")
	} else {
		log.Debug("member not found")
	}
	return deleted
}

// Statistics пересчитывает статистику по текущему списку участников при каждом вызове.
func (s *MemberService) Statistics() models.Statistics {
	return CountStatistics(s.repo.GetAll())
}

// CountStatistics считает total, active, inactive и количество участников по каждому тарифу.
// Все ключи присутствуют в результате, в том числе с нулевыми значениями.
func CountStatistics(members []models.Member) models.Statistics {
	stats := models.Statistics{
		models.StatTotal:    len(members),
		models.StatActive:   0,
		models.StatInactive: 0,
	}
	for _, p := range models.Plans() {
		stats[p.Key()] = 0
	}

	for _, m := range members {
		if m.IsActive {
			stats[models.StatActive]++
		} else {
			stats[models.StatInactive]++
		}
		if m.Plan.IsValid() {
			stats[m.Plan.Key()]++
		}
	}
	return stats
}

// Subscribe подписывает на снимки списка участников.
func (s *MemberService) Subscribe(sub memory.Subscriber) func() {
	return s.repo.Subscribe(sub)
}

// Plans возвращает каталог тарифов.
func (s *MemberService) Plans() []models.MembershipPlan {
	return models.Plans()
}

func (s *MemberService) observe(success bool) {
	if s.recorder != nil {
		s.recorder.ObserveRegistration(success)
	}
}

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
