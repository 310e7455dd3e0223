// Package memory реализует хранилище участников в памяти процесса.
// Хранилище владеет списком участников и после каждого изменения публикует
// новый снимок списка всем подписчикам. Данные не сохраняются между перезапусками.
package memory

import (
	"slices"
	"strings"
	"sync"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// Subscriber получает снимок списка участников после каждого изменения.
// Вызовы OnSnapshot одного хранилища не пересекаются и идут в порядке изменений.
// Изменять хранилище из OnSnapshot нельзя: публикация следующего снимка ждёт
// завершения текущей.
type Subscriber interface {
	OnSnapshot(members []models.Member)
}

// SubscriberFunc позволяет использовать обычную функцию как Subscriber.
type SubscriberFunc func(members []models.Member)

// OnSnapshot вызывает f(members).
func (f SubscriberFunc) OnSnapshot(members []models.Member) { f(members) }

type subscription struct {
	id  uint64
	sub Subscriber
}

// Storage хранит канонический список участников и последний опубликованный снимок.
type Storage struct {
	mu       sync.RWMutex
	members  []models.Member
	snapshot []models.Member
	seq      uint64

	// pubMu упорядочивает рассылку снимков подписчикам.
	pubMu        sync.Mutex
	published    []models.Member
	publishedSeq uint64

	subMu  sync.Mutex
	subs   []subscription
	nextID uint64
}

// New создаёт хранилище, заполненное переданными участниками (список может быть пустым).
func New(initial ...models.Member) *Storage {
	s := &Storage{
		members: make([]models.Member, 0, len(initial)),
	}
	for _, m := range initial {
		s.members = append(s.members, m.Clone())
	}
	s.snapshot = models.CloneMembers(s.members)
	s.published = s.snapshot
	return s
}

// Add добавляет участника в конец списка и публикует снимок.
// Уникальность ID не проверяется, её гарантирует вызывающая сторона.
func (s *Storage) Add(member models.Member) {
	s.mu.Lock()
	s.members = append(s.members, member.Clone())
	snap, seq := s.republishLocked()
	s.mu.Unlock()

	s.publish(snap, seq)
}

// GetAll возвращает копию текущего списка участников.
func (s *Storage) GetAll() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneMembers(s.members)
}

// GetByID возвращает участника по ID; второй результат false, если участник не найден.
func (s *Storage) GetByID(id string) (models.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx == -1 {
		return models.Member{}, false
	}
	return s.members[idx].Clone(), true
}

// Update заменяет запись с тем же ID. Если записи нет, ничего не происходит
// и снимок не публикуется.
func (s *Storage) Update(member models.Member) bool {
	s.mu.Lock()
	idx := s.indexLocked(member.ID)
	if idx == -1 {
		s.mu.Unlock()
		return false
	}
	s.members[idx] = member.Clone()
	snap, seq := s.republishLocked()
	s.mu.Unlock()

	s.publish(snap, seq)
	return true
}

// Delete удаляет запись с указанным ID и публикует снимок в любом случае.
// Возвращает true, если запись была удалена.
func (s *Storage) Delete(id string) bool {
	s.mu.Lock()
	before := len(s.members)
	s.members = slices.DeleteFunc(s.members, func(m models.Member) bool {
		return m.ID == id
	})
	removed := len(s.members) < before
	snap, seq := s.republishLocked()
	s.mu.Unlock()

	s.publish(snap, seq)
	return removed
}

// Search ищет участников по подстроке в имени, email или телефоне без учёта регистра.
// Пустой запрос совпадает со всеми участниками.
func (s *Storage) Search(query string) []models.Member {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Member, 0)
	for _, m := range s.members {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Email), q) ||
			strings.Contains(strings.ToLower(m.PhoneNumber), q) {
			result = append(result, m.Clone())
		}
	}
	return result
}

// Len возвращает количество участников.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// Snapshot возвращает копию последнего снимка.
func (s *Storage) Snapshot() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneMembers(s.snapshot)
}

// Subscribe регистрирует подписчика. Подписчик сразу получает последний
// разосланный снимок, затем каждый новый. Возвращённая функция отменяет подписку.
func (s *Storage) Subscribe(sub Subscriber) (unsubscribe func()) {
	s.pubMu.Lock()
	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, sub: sub})
	s.subMu.Unlock()

	sub.OnSnapshot(models.CloneMembers(s.published))
	s.pubMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(e subscription) bool {
				return e.id == id
			})
		})
	}
}

// republishLocked обновляет снимок и его номер; вызывается под s.mu.
func (s *Storage) republishLocked() ([]models.Member, uint64) {
	s.seq++
	s.snapshot = models.CloneMembers(s.members)
	return s.snapshot, s.seq
}

// publish рассылает снимок подписчикам вне блокировки списка.
// Снимок, устаревший к моменту рассылки, пропускается: подписчики
// уже получили более новый.
func (s *Storage) publish(snap []models.Member, seq uint64) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	if seq <= s.publishedSeq {
		return
	}
	s.published = snap
	s.publishedSeq = seq

	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()

	for _, e := range subs {
		e.sub.OnSnapshot(models.CloneMembers(snap))
	}
}

func (s *Storage) indexLocked(id string) int {
	return slices.IndexFunc(s.members, func(m models.Member) bool {
		return m.ID == id
	})
}
