package wizardsessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pethotel/PHM-BookingWorkflow/internal/workflow/wizard"
)

// Service реестр живых сессий мастера бронирования
// Одна сессия - один экземпляр мастера; состояние живет в памяти сервиса
// и умирает вместе с сессией (коммит переводит результат в хранилище)
type Service struct {
	resolver    OptionsResolver
	roomClient  RoomInventoryClient
	debounce    time.Duration
	transferCap int
	sessionTTL  time.Duration
	logger      Logger
	metrics     SearchMetrics

	mu       sync.RWMutex
	sessions map[string]*wizard.Wizard
}

// NewService создает реестр сессий
func NewService(
	resolver OptionsResolver,
	roomClient RoomInventoryClient,
	debounce time.Duration,
	transferCap int,
	sessionTTL time.Duration,
	logger Logger,
	metrics SearchMetrics,
) *Service {
	return &Service{
		resolver:    resolver,
		roomClient:  roomClient,
		debounce:    debounce,
		transferCap: transferCap,
		sessionTTL:  sessionTTL,
		logger:      logger,
		metrics:     metrics,
		sessions:    make(map[string]*wizard.Wizard),
	}
}

// Create создает новую сессию мастера и возвращает ее идентификатор
func (s *Service) Create() (string, *wizard.Wizard) {
	id := uuid.NewString()
	w := wizard.New(s.resolver, s.roomClient, s.debounce, s.transferCap, s.logger, s.metrics)

	s.mu.Lock()
	s.sessions[id] = w
	s.mu.Unlock()

	s.logger.Info("WizardSessions: created session id=%s", id)
	return id, w
}

// Get возвращает мастер по идентификатору сессии
func (s *Service) Get(id string) (*wizard.Wizard, error) {
	s.mu.RLock()
	w, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return w, nil
}

// Delete закрывает и удаляет сессию
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	w, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	w.Close()
	s.logger.Info("WizardSessions: deleted session id=%s", id)
	return nil
}

// Count возвращает количество живых сессий
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// RunSweeper периодически удаляет сессии, неактивные дольше TTL
// Останавливается закрытием stopCh; запускается из main отдельной горутиной
func (s *Service) RunSweeper(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-stopCh:
			return
		}
	}
}

func (s *Service) sweep() {
	deadline := time.Now().Add(-s.sessionTTL)

	s.mu.Lock()
	var expired []string
	var wizards []*wizard.Wizard
	for id, w := range s.sessions {
		if w.LastActive().Before(deadline) {
			expired = append(expired, id)
			wizards = append(wizards, w)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for i, id := range expired {
		wizards[i].Close()
		s.logger.Info("WizardSessions: expired idle session id=%s", id)
	}
}
