// Command seed carga empresas de demostración desde un archivo YAML.
//
//	seed [archivo.yaml]
//
// Sin argumento usa SEED_FILE (por defecto seed.yaml).
package main

import (
	"context"
	"os"

	"github.com/jhoicas/temucosoft-retail/internal/application/ports"
	"github.com/jhoicas/temucosoft-retail/internal/bootstrap"
	"github.com/jhoicas/temucosoft-retail/internal/seed"
	"github.com/jhoicas/temucosoft-retail/pkg/config"
	"github.com/jhoicas/temucosoft-retail/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	path := cfg.Seed.File
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	file, err := seed.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("archivo de semillas")
	}

	ctx := context.Background()
	storage, err := bootstrap.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer storage.Close()

	// Los eventos de la carga inicial no se publican.
	uc := bootstrap.NewUseCases(storage, cfg.JWT, ports.NopPublisher{}, log)

	sum, err := seed.New(uc, storage.Repos, logger.Component(log, "seed")).Run(ctx, file)
	if err != nil {
		log.Error().Err(err).Msg("carga incompleta")
		storage.Close()
		os.Exit(1)
	}
	log.Info().
		Str("file", path).
		Int("tenants", sum.Tenants).
		Int("skipped", sum.Skipped).
		Int("branches", sum.Branches).
		Int("products", sum.Products).
		Int("suppliers", sum.Suppliers).
		Int("users", sum.Users).
		Int("purchases", sum.Purchases).
		Msg("semillas cargadas")
}
