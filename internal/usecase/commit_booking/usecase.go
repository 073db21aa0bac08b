package commit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/pethotel/PHM-BookingWorkflow/internal/domain"
	"github.com/pethotel/PHM-BookingWorkflow/internal/infra/storage/reservation"
	clientDir "github.com/pethotel/PHM-BookingWorkflow/internal/integrations/clientdirectory"
	"github.com/pethotel/PHM-BookingWorkflow/internal/service/wizardsessions"
)

// UseCase use case коммита составленного бронирования
//
// Коммит: снимок состояния мастера → нормализованный payload (простая или
// составная форма) → проверка клиента и владения питомцами → сохранение в
// сериализуемой транзакции. При успехе состояние мастера полностью
// сбрасывается; при ошибке остается нетронутым, чтобы оператор мог
// повторить попытку без повторного ввода
type UseCase struct {
	sessions   SessionRegistry
	reservRepo ReservationRepository
	clients    ClientDirectoryClient
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionRegistry,
	reservRepo ReservationRepository,
	clients ClientDirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:   sessions,
		reservRepo: reservRepo,
		clients:    clients,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute выполняет коммит бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitBooking: session=%s, operator=%d", req.SessionID, req.OperatorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сессию мастера
	wz, err := uc.sessions.Get(req.SessionID)
	if err != nil {
		if errors.Is(err, wizardsessions.ErrSessionNotFound) {
			uc.logger.Warn("CommitBooking: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("CommitBooking: failed to get session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	// 3. Снимок состояния и построение payload
	// Payload строится по снимку: мастер не мутируется до успешного сохранения
	snapshot := wz.Snapshot()
	payload, err := buildPayload(snapshot)
	if err != nil {
		uc.logger.Warn("CommitBooking: payload build failed for session=%s: %v", req.SessionID, err)
		return nil, err
	}

	// 4. Проверяем клиента и владение питомцами
	client, err := uc.clients.GetClient(ctx, payload.PayloadClientID())
	if err != nil {
		if errors.Is(err, clientDir.ErrClientNotFound) {
			uc.logger.Warn("CommitBooking: client id=%d not found", payload.PayloadClientID())
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CommitBooking: failed to get client id=%d: %v", payload.PayloadClientID(), err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	if !client.OwnsPets(snapshot.PetIDs) {
		uc.logger.Warn("CommitBooking: pets %v do not all belong to client id=%d", snapshot.PetIDs, client.ID)
		return nil, ErrPetNotOwned
	}

	// 5. Сохраняем бронирование в сериализуемой транзакции
	var created *domain.Reservation
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservRepo.Create(txCtx, payload)
		if err != nil {
			return err
		}
		created = reservation
		return nil
	})
	if err != nil {
		// Состояние мастера не тронуто: оператор повторяет коммит или меняет вариант
		if errors.Is(err, reservation.ErrRoomConflict) {
			uc.logger.Warn("CommitBooking: room conflict for session=%s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: %v", ErrRoomConflict, err)
		}
		uc.logger.Error("CommitBooking: commit failed for session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	// 6. Полный сброс мастера после успешного коммита
	wz.Reset()

	_, composite := payload.(domain.CompositeBookingPayload)
	uc.logger.Info("CommitBooking: successfully created booking id=%d (composite=%t), session=%s reset",
		created.ID, composite, req.SessionID)

	return &Response{
		BookingID: created.ID,
		ClientID:  created.ClientID,
		Status:    string(created.Status),
		Composite: composite,
		CreatedAt: created.CreatedAt,
	}, nil
}
