package domain

// Permission — поставщик разрешения на доступ к геолокации.
// Запрашивается при старте процесса и перед началом отслеживания;
// отказ блокирует переход в состояние отслеживания.
type Permission interface {
	Request() (bool, error)
}

// StaticPermission — разрешение, заданное конфигурацией процесса.
type StaticPermission struct {
	Granted bool
}

func (p StaticPermission) Request() (bool, error) {
	return p.Granted, nil
}
