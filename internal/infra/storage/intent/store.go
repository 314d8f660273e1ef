package intent

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// entry состояние одного бронирования: у каждого свой мьютекс, общих изменяемых данных между бронированиями нет
type entry struct {
	mu       sync.Mutex
	inFlight bool
	intent   *domain.BookingIntent
}

// Store хранилище незавершенных бронирований в памяти
// Ограничено по размеру и по времени жизни записи; в БД не сохраняется
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *entry]
}

// NewStore создает хранилище на size записей с временем жизни ttl
func NewStore(size int, ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, *entry](size, nil, ttl),
	}
}

// Create сохраняет новое бронирование
func (s *Store) Create(intent *domain.BookingIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache.Contains(intent.ID) {
		return ErrIntentExists
	}
	s.cache.Add(intent.ID, &entry{intent: intent.Clone()})
	return nil
}

// Get возвращает копию бронирования
func (s *Store) Get(id string) (*domain.BookingIntent, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.intent.Clone(), nil
}

// Acquire помечает бронирование как выполняющее шаг и возвращает его копию
// Одновременно может выполняться не больше одного шага на бронирование
func (s *Store) Acquire(id string) (*domain.BookingIntent, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight {
		return nil, ErrStepInProgress
	}
	e.inFlight = true
	return e.intent.Clone(), nil
}

// Release применяет результат шага и снимает отметку выполнения
// apply вызывается под блокировкой записи с актуальным состоянием (оно могло измениться, например при отмене)
func (s *Store) Release(id string, apply func(current *domain.BookingIntent)) (*domain.BookingIntent, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.inFlight = false
	if apply != nil {
		apply(e.intent)
	}
	s.touch(id, e)
	return e.intent.Clone(), nil
}

// Update изменяет бронирование под блокировкой записи; выполняющийся шаг не блокирует Update
// inFlight передается в fn, чтобы вызывающий мог учесть незавершенный шаг
func (s *Store) Update(id string, fn func(current *domain.BookingIntent, inFlight bool) error) (*domain.BookingIntent, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.intent, e.inFlight); err != nil {
		return nil, err
	}
	s.touch(id, e)
	return e.intent.Clone(), nil
}

// Len количество живых записей
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) lookup(id string) (*entry, error) {
	e, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrIntentNotFound
	}
	return e, nil
}

// touch продлевает срок жизни записи после изменения
func (s *Store) touch(id string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.cache.Peek(id); ok && current == e {
		s.cache.Add(id, e)
	}
}
