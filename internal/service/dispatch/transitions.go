package dispatch

import "easygo/internal/entities"

type TransitionEventType string

const (
	EventClaim         TransitionEventType = "claim"
	EventBadAddress    TransitionEventType = "bad_address"
	EventDepart        TransitionEventType = "depart"
	EventPickup        TransitionEventType = "pickup"
	EventDone          TransitionEventType = "done"
	EventProof         TransitionEventType = "proof"
	EventCancel        TransitionEventType = "cancel"
	EventDeleteProblem TransitionEventType = "delete_problem"
)

// allowedFrom — единственный источник правды о переходах статусов.
// Проверки в обработчиках не дублируют таблицу, а обращаются к ней.
var allowedFrom = map[TransitionEventType][]entities.OrderStatusType{
	EventClaim:      {entities.OrderNew},
	EventBadAddress: {entities.OrderNew},
	EventCancel:     {entities.OrderNew},
	EventDepart:     {entities.OrderTaken},
	EventPickup:     {entities.OrderEnRoute},
	EventDone:       {entities.OrderPickedUp},
	EventProof:      {entities.OrderDonePending},
	// удаление доступно и для еще не разобранного заказа, не только
	// для помеченного проблемным
	EventDeleteProblem: {entities.OrderNew, entities.OrderProblem},
}

func checkTransition(event TransitionEventType, current entities.OrderStatusType) error {
	for _, from := range allowedFrom[event] {
		if current == from {
			return nil
		}
	}
	return &StateConflictError{Event: event, Current: current.String()}
}
