package entities

import "time"

// TransitionKind — вид совершившегося перехода, определяет набор получателей
// уведомлений на этапе fan-out.
type TransitionKind string

const (
	TransitionCreated    TransitionKind = "order.created"
	TransitionClaimed    TransitionKind = "order.claimed"
	TransitionBadAddress TransitionKind = "order.bad_address"
	TransitionDeparted   TransitionKind = "order.departed"
	TransitionCompleted  TransitionKind = "order.completed"
	TransitionCanceled   TransitionKind = "order.canceled"
)

func (k TransitionKind) String() string {
	return string(k)
}

// TransitionEvent — факт совершенного перехода. Движок кладет событие в
// очередь уже после освобождения блокировки; fan-out к состоянию заказа
// больше не обращается, работает со снимком.
type TransitionEvent struct {
	Kind  TransitionKind
	Order Order
	At    time.Time
}

type RecipientRole string

const (
	RoleClient   RecipientRole = "client"
	RoleCourier  RecipientRole = "courier"
	RoleOperator RecipientRole = "operator"
)

func (r RecipientRole) String() string {
	return string(r)
}

// NotificationAction — действие, которое транспорт может предложить
// получателю вместе с текстом.
type NotificationAction string

const (
	ActionClaim         NotificationAction = "claim"
	ActionDeleteProblem NotificationAction = "delete_problem"
)

// Notification — одно сообщение одному получателю. Доставка best-effort:
// сбой по одному получателю не трогает остальных.
type Notification struct {
	RecipientID int64
	Role        RecipientRole
	Kind        TransitionKind
	OrderID     string
	Text        string
	ProofRef    string
	Action      NotificationAction
}
