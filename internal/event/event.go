// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data interface{} // Данные события, если нужны
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher — диспетчер событий
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe — подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe — отписка от события
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch — отправка события всем подписчикам
func (d *Dispatcher) Dispatch(event Event) {
	if listeners, exists := d.listeners[event.Type]; exists {
		for _, listener := range listeners {
			listener.OnEvent(event)
		}
	}
}

// Queue — очередь событий одного тика. Системы кладут события во время
// обновления, игровой цикл раздаёт их подписчикам в конце тика.
// Однопоточная: все вызовы идут из игрового цикла.
type Queue struct {
	events []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push добавляет событие в конец очереди
func (q *Queue) Push(event Event) {
	q.events = append(q.events, event)
}

// Len — количество ожидающих событий
func (q *Queue) Len() int {
	return len(q.events)
}

// Clear выбрасывает ожидающие события (перезапуск уровня)
func (q *Queue) Clear() {
	q.events = q.events[:0]
}

// Drain раздаёт события в порядке FIFO, включая те, что подписчики
// добавили во время раздачи. Возвращает число доставленных событий.
func (q *Queue) Drain(d *Dispatcher) int {
	delivered := 0
	for len(q.events) > 0 {
		next := q.events[0]
		q.events = q.events[1:]
		d.Dispatch(next)
		delivered++
	}
	q.events = q.events[:0]
	return delivered
}
