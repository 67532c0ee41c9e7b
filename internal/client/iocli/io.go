package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует ввод и вывод командной строки
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput читает строку целиком (тексты заметок, подтверждения)
	ReadInput(prompt string) (string, error)
	// ReadSecret читает credential без эха на терминале
	ReadSecret(prompt string) (string, error)
	// Write нужен для вывода шаблонов
	Write(p []byte) (n int, err error)
}
