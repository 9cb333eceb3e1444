package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/bikarpharma/suivi-stock/pkg/config"
	"github.com/bikarpharma/suivi-stock/pkg/logger"
)

// Outil de migration du schéma. Commandes: up, down, step <n>, version.
func main() {
	var migrationsPath string
	flag.StringVar(&migrationsPath, "path", "migrations", "répertoire des migrations")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("chemin des migrations")
	}

	m, err := migrate.New("file://"+absPath, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("initialisation de migrate")
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migration up")
		}
		log.Info().Msg("schéma à jour")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migration down")
		}
		log.Info().Msg("migrations annulées")
	case "step":
		if len(args) < 2 {
			log.Fatal().Msg("usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal().Str("valeur", args[1]).Msg("nombre de pas invalide")
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migration step")
		}
		log.Info().Int("pas", n).Msg("migrations appliquées")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info().Msg("aucune migration appliquée")
				return
			}
			log.Fatal().Err(err).Msg("lecture de la version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("version courante")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Outil de migration suivi-stock

Usage:
  migrate [-path <répertoire>] <commande>

Commandes:
  up         applique toutes les migrations en attente
  down       annule toutes les migrations
  step <n>   applique n migrations (négatif = retour arrière)
  version    affiche la version courante du schéma`)
}
