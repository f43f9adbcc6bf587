package configs

import _ "embed"

// Default конфигурация игры по умолчанию
//
//go:embed game.yaml
var Default []byte
