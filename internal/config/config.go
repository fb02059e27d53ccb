// Package config carrega a configuração da aplicação a partir do ambiente.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config concentra tudo que vem de variáveis de ambiente.
type Config struct {
	Porta      string
	DBHost     string
	DBPorta    string
	DBUsuario  string
	DBSenha    string
	DBNome     string
	DBSSLMode  string
	JWTSecret  string
	StorageDir string
	LogLevel   string

	// EspelhoUnico liga a trava de deduplicação do espelhamento de contas
	// pagas: com a trava, alternar pago/pendente/pago não gera uma segunda
	// transação espelhada. Desligada por padrão para manter o comportamento
	// histórico do sistema.
	EspelhoUnico bool

	AdminEmail string
	AdminSenha string
}

// Load lê o .env (se existir) e monta a configuração com defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Porta:      getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPorta:    getenv("DB_PORT", "5432"),
		DBUsuario:  getenv("DB_USER", "postgres"),
		DBSenha:    getenv("DB_PASSWORD", "postgres"),
		DBNome:     getenv("DB_NAME", "vidracaria"),
		DBSSLMode:  getenv("DB_SSL_MODE", "disable"),
		JWTSecret:  getenv("JWT_SECRET", ""),
		StorageDir: getenv("STORAGE_DIR", "./storage"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),
		AdminSenha: os.Getenv("ADMIN_SENHA"),
	}
	cfg.EspelhoUnico = os.Getenv("ESPELHO_UNICO") == "true"
	return cfg
}

func getenv(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}
