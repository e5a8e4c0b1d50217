package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/order-backoffice/internal/usecase"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/jitter"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"
)

const (
	outboxChannel      = "outbox_pending"
	notifyWaitTimeout  = 30 * time.Second
	pollInterval       = 30 * time.Second
	reconnectBaseDelay = 500 * time.Millisecond
	reconnectMaxDelay  = 30 * time.Second
	defaultBatchSize   = 10
)

// OutboxWorker переносит события заказов из таблицы outbox в Kafka.
// Пачки забираются при старте, по NOTIFY и периодически.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	dbConnStr string
	batchSize int
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	batchSize int,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		cancel:    func() {},
		dbConnStr: dbConnStr,
		batchSize: batchSize,
	}
}

// Start запускает воркер. Stop отменяет ctx, переданный горутинам.
func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	// Запускаем слушатель уведомлений
	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

// Stop останавливает воркер и ждёт завершения горутин. Сигнатура совместима с closer.Func.
func (w *OutboxWorker) Stop(ctx context.Context) error {
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return e.Wrap("OutboxWorker.Stop", ctx.Err())
	}
}

func (w *OutboxWorker) run(ctx context.Context) {
	// Обрабатываем "остатки" при старте
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Worker stopped by context cancellation")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	backoff := jitter.NewBackoff(reconnectBaseDelay, reconnectMaxDelay)

	for {
		conn, err := w.connect(ctx)
		if err != nil {
			delay := backoff.Next()
			w.logger.Warnf("LISTEN connect failed (attempt %d), retry in %s: %v", backoff.Attempt(), delay, err)
			if !w.sleep(ctx, delay) {
				return
			}
			continue
		}
		backoff.Reset()

		err = w.waitNotifications(ctx, conn)
		_ = conn.Close(context.Background())
		if err == nil {
			return
		}

		delay := backoff.Next()
		w.logger.Warnf("Connection lost: %v. Reconnecting in %s...", err, delay)
		if !w.sleep(ctx, delay) {
			return
		}
	}
}

func (w *OutboxWorker) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, w.dbConnStr)
	if err != nil {
		return nil, e.Wrap("failed to connect for LISTEN", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
		_ = conn.Close(ctx)
		return nil, e.Wrap("failed to LISTEN", err)
	}

	w.logger.Infof("Subscribed to '%s' channel", outboxChannel)
	return conn, nil
}

// waitNotifications возвращает nil при остановке воркера и ошибку при потере соединения.
func (w *OutboxWorker) waitNotifications(ctx context.Context, conn *pgx.Conn) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, notifyWaitTimeout)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			return err
		}

		if notif != nil && notif.Channel == outboxChannel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

// sleep ждёт d и возвращает false, если воркер остановлен раньше.
func (w *OutboxWorker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

// processBatch отправляет одну пачку событий. hasMore == false, если очередь пуста
// или Kafka недоступна: неотправленные события ждут следующего прохода.
// Окончательно отклонённые события помечаются failed и больше не забираются.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for i, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			if isRetryableError(err) {
				w.logger.Warnf("event %s for order %d not sent: %v", event.EventID, event.OrderID, err)
				// Kafka недоступна: возвращаем в очередь всю оставшуюся пачку
				w.release(ctx, events[i:])
				return false, nil
			}
			w.logger.Errorf(err, "event %s for order %d rejected by kafka", event.EventID, event.OrderID)
			if err := w.repo.MarkAsFailed(ctx, event.ID, err.Error()); err != nil {
				w.logger.Warnf("cannot mark event %d as failed: %v", event.ID, err)
			}
			continue
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return len(events) == w.batchSize, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	if err := w.SendBytes(ctx, event.OrderID, event.Payload); err != nil {
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Permanent Kafka failure", err)
	}
	return nil
}

// release возвращает неотправленные события в статус pending.
func (w *OutboxWorker) release(ctx context.Context, events []*usecase.OutboxEvent) {
	for _, event := range events {
		if err := w.repo.MarkAsPending(ctx, event.ID); err != nil {
			w.logger.Warnf("release event %d failed: %v", event.ID, err)
		}
	}
}

func (w *OutboxWorker) SendBytes(ctx context.Context, orderID int64, payload []byte) error {
	return w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(orderID, payload))
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var kErr kafka.Error
	if errors.As(err, &kErr) {
		return kErr.Temporary()
	}

	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
		"context deadline exceeded",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
