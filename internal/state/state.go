package state

import (
	"sort"
	"sync"

	"easygo/internal/entities"
)

// Container — разделяемое состояние процесса: Order Store и Courier Registry.
// Единственный источник правды для диспетчеризации; долговременное хранилище
// лишь зеркалирует его (write-through) и поднимает снимок на холодном старте.
//
// Все мутации проходят через Mutate под одной грубой блокировкой. Чтения
// допускают кратковременную рассинхронизацию и берут read-lock, но любая
// последовательность "прочитал-решил-записал" обязана целиком жить внутри
// Mutate.
type Container struct {
	mu       sync.RWMutex
	orders   map[string]entities.Order
	couriers map[int64]entities.CourierProfile

	// Заказы, для которых write-through не прошел: in-memory и долговременное
	// состояние разошлись, фоновая задача дописывает их повторно.
	dirtyOrders map[string]struct{}

	// Курьеры, уже получившие разовое предупреждение "проверьте маршрут".
	advisorySent map[int64]struct{}
}

func NewContainer() *Container {
	return &Container{
		orders:       make(map[string]entities.Order),
		couriers:     make(map[int64]entities.CourierProfile),
		dirtyOrders:  make(map[string]struct{}),
		advisorySent: make(map[int64]struct{}),
	}
}

// Hydrate загружает снимок долговременного хранилища. Вызывается один раз
// на старте, до запуска обработчиков.
func (c *Container) Hydrate(orders []entities.Order, couriers []entities.CourierProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range orders {
		c.orders[o.ID] = o
	}
	for _, p := range couriers {
		c.couriers[p.ID] = p
	}
}

// Mutate выполняет fn под эксклюзивной блокировкой.
func (c *Container) Mutate(fn func(s *Stores) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fn(&Stores{c: c})
}

// Read выполняет fn под read-lock.
func (c *Container) Read(fn func(s *Stores)) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fn(&Stores{c: c})
}

// Stores — доступ к хранилищам внутри секции Mutate/Read. Значение валидно
// только в пределах колбэка.
type Stores struct {
	c *Container
}

func (s *Stores) Order(id string) (entities.Order, bool) {
	o, ok := s.c.orders[id]
	return o, ok
}

func (s *Stores) SetOrder(o entities.Order) {
	s.c.orders[o.ID] = o
}

func (s *Stores) Courier(id int64) (entities.CourierProfile, bool) {
	p, ok := s.c.couriers[id]
	return p, ok
}

func (s *Stores) SetCourier(p entities.CourierProfile) {
	s.c.couriers[p.ID] = p
}

// ActiveOrderFor возвращает активный заказ курьера, если он есть.
// У курьера не может быть больше одного активного заказа.
func (s *Stores) ActiveOrderFor(courierID int64) (entities.Order, bool) {
	for _, o := range s.c.orders {
		if o.CourierID == courierID && o.Status.Active() {
			return o, true
		}
	}
	return entities.Order{}, false
}

// Orders возвращает копии заказов, прошедшие фильтр, отсортированные по
// убыванию времени создания.
func (s *Stores) Orders(filter func(entities.Order) bool) []entities.Order {
	out := make([]entities.Order, 0, 8)
	for _, o := range s.c.orders {
		if filter == nil || filter(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Couriers возвращает копии профилей, прошедшие фильтр, отсортированные по ID.
func (s *Stores) Couriers(filter func(entities.CourierProfile) bool) []entities.CourierProfile {
	out := make([]entities.CourierProfile, 0, 8)
	for _, p := range s.c.couriers {
		if filter == nil || filter(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Stores) MarkDirty(orderID string) {
	s.c.dirtyOrders[orderID] = struct{}{}
}

func (s *Stores) ClearDirty(orderID string) {
	delete(s.c.dirtyOrders, orderID)
}

func (s *Stores) DirtyOrders() []string {
	out := make([]string, 0, len(s.c.dirtyOrders))
	for id := range s.c.dirtyOrders {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarkAdvisorySent отмечает, что курьер получил разовое предупреждение.
// Возвращает true, если отметка поставлена впервые.
func (c *Container) MarkAdvisorySent(courierID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.advisorySent[courierID]; ok {
		return false
	}
	c.advisorySent[courierID] = struct{}{}
	return true
}
