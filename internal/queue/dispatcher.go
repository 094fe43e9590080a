package queue

import (
	"sync"

	"circleapp/internal/models"
)

// Result - итог обработки сообщения консьюмером
type Result struct {
	Thread *models.Thread
	Err    error
}

// Dispatcher связывает ждущий HTTP-запрос и консьюмер очереди по correlation id.
// Продюсер регистрируется до отправки сообщения, консьюмер после персистенции
// резолвит канал. Если запрос уже отвалился по таймауту, результат отбрасывается.
type Dispatcher struct {
	mu      sync.Mutex
	waiters map[string]chan Result
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		waiters: make(map[string]chan Result),
	}
}

func (d *Dispatcher) Register(correlationID string) <-chan Result {
	ch := make(chan Result, 1)

	d.mu.Lock()
	d.waiters[correlationID] = ch
	d.mu.Unlock()

	return ch
}

func (d *Dispatcher) Cancel(correlationID string) {
	d.mu.Lock()
	delete(d.waiters, correlationID)
	d.mu.Unlock()
}

func (d *Dispatcher) Resolve(correlationID string, result Result) {
	d.mu.Lock()
	ch, ok := d.waiters[correlationID]
	if ok {
		delete(d.waiters, correlationID)
	}
	d.mu.Unlock()

	if ok {
		ch <- result
	}
}
