package entities

// BotCommandType — команды, которые диалоговый бот публикует в топик команд.
type BotCommandType string

const (
	CommandTake          BotCommandType = "take"
	CommandBadAddress    BotCommandType = "bad_address"
	CommandDepart        BotCommandType = "depart"
	CommandPickup        BotCommandType = "pickup"
	CommandDone          BotCommandType = "done"
	CommandProof         BotCommandType = "proof"
	CommandCancel        BotCommandType = "cancel"
	CommandDeleteProblem BotCommandType = "delete_problem"
	CommandApply         BotCommandType = "apply"
	CommandApprove       BotCommandType = "approve"
	CommandReject        BotCommandType = "reject"
)

func (t BotCommandType) String() string {
	return string(t)
}

// BotCommand — одна команда участника, снятая с Kafka. Полезная нагрузка
// зависит от типа: ProofRef для proof, Name/Phone/Transport для apply,
// TargetID для решений оператора. JSON-теги фиксируют формат топика.
type BotCommand struct {
	Type      BotCommandType `json:"type"`
	ActorID   int64          `json:"actor_id"`
	OrderID   string         `json:"order_id,omitempty"`
	ProofRef  string         `json:"proof_ref,omitempty"`
	Name      string         `json:"name,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Transport string         `json:"transport,omitempty"`
	TargetID  int64          `json:"target_id,omitempty"`
}
