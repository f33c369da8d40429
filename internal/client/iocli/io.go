package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует вывод CLI, чтобы команды можно было тестировать без терминала
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	Write(p []byte) (n int, err error)
	// IsTerminal сообщает, подключен ли вывод к терминалу
	IsTerminal() bool
}
