// Command migrate aplica o revierte las migraciones SQL embebidas.
//
//	migrate up       aplica las migraciones pendientes
//	migrate down     revierte la última migración
//	migrate version  muestra la versión actual
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/temucosoft-retail/internal/infrastructure/postgres"
	"github.com/jhoicas/temucosoft-retail/pkg/config"
	"github.com/jhoicas/temucosoft-retail/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down|version")
		os.Exit(2)
	}

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q (up|down|version)\n", os.Args[1])
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", os.Args[1]).Msg("migración fallida")
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Str("cmd", os.Args[1]).Uint("version", version).Bool("dirty", dirty).Msg("migraciones")
}
