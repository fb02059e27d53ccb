package db

import (
	"fmt"

	"github.com/CristalRio/api-vidracaria/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Conectar abre a conexão com o Postgres usando a configuração do ambiente.
func Conectar(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUsuario, cfg.DBSenha, cfg.DBNome, cfg.DBPorta, cfg.DBSSLMode,
	)
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar no banco: %w", err)
	}
	return database, nil
}
