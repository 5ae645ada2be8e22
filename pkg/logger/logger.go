package logger

// Field — одна пара ключ/значение структурированного лога.
type Field struct {
	Key   string
	Value any
}

func NewField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger — контракт логгера приложения. Конкретная реализация
// подключается адаптером (см. zap_adapter).
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Nop — логгер-заглушка для тестов.
type Nop struct{}

func NewNop() *Nop { return &Nop{} }

func (n *Nop) Debug(string, ...Field) {}
func (n *Nop) Info(string, ...Field)  {}
func (n *Nop) Warn(string, ...Field)  {}
func (n *Nop) Error(string, ...Field) {}
func (n *Nop) With(...Field) Logger   { return n }
