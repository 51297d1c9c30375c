package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"todovault/account"
	"todovault/config"
	"todovault/logger"
	"todovault/store"
	"todovault/tui"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err.Error())
	}

	log := logger.New(cfg.LogLevel)

	var kv store.KV
	switch cfg.Backend {
	case config.BackendSQLite:
		sqlKV, err := store.NewSQLiteKV(cfg.StatePath)
		if err != nil {
			log.Fatal("failed to open sqlite store", "path", cfg.StatePath, "error", err.Error())
		}
		defer func() {
			_ = sqlKV.Close()
		}()
		kv = sqlKV
	case config.BackendMemory:
		kv = store.NewMemKV()
	default:
		kv = store.NewFileKV(cfg.StatePath)
	}

	bridge := store.NewBridge(kv, log)
	acct := account.NewManager(bridge, log)

	program := tea.NewProgram(tui.NewModel(acct, bridge), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatal("program failed", "error", err.Error())
	}
}
