package main

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/jhoicas/parts-catalog/internal/infrastructure/storage"
	"github.com/jhoicas/parts-catalog/pkg/config"
	"github.com/jhoicas/parts-catalog/pkg/logger"
)

type commandContext struct {
	sqliteFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	log        *logger.Logger
	configErr  error

	backend *storage.Backend
}

func newCommandContext(sqliteFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		sqliteFlag:   sqliteFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig carga la configuración una sola vez y aplica los flags globales.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.configErr = err
			return
		}
		if path := strings.TrimSpace(*c.sqliteFlag); path != "" {
			cfg.DB.Driver = config.DriverSQLite
			cfg.DB.SQLitePath = path
		}
		level := cfg.App.LogLevel
		if l := strings.TrimSpace(*c.logLevelFlag); l != "" {
			level = l
		}
		c.config = cfg
		c.log = logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})
	})
	return c.config, c.configErr
}

// openBackend abre (y migra si DB_AUTO_MIGRATE) el store; se cierra en PersistentPostRunE.
func (c *commandContext) openBackend(ctx context.Context) (*storage.Backend, error) {
	if c.backend != nil {
		return c.backend, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	backend, err := storage.Open(ctx, cfg.DB, c.log)
	if err != nil {
		return nil, err
	}
	c.backend = backend
	return backend, nil
}

func (c *commandContext) close() error {
	if c.backend == nil {
		return nil
	}
	err := c.backend.Close()
	c.backend = nil
	return err
}
