package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/prefabs"
	"github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "draw collision shapes and the player's motion state")
	levelName := flag.String("level", "level.yaml", "level prefab to load")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory checked for prefab overrides and watched for edits")
	watch := flag.Bool("watch", true, "reload player tuning when prefab files change")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Fatal("parse log level")
	}
	log.SetLevel(level)

	prefabs.Dir = *prefabDir

	game, err := NewGame(Config{
		Level: *levelName,
		Debug: *debug,
		Watch: *watch,
		Log:   logrus.NewEntry(log),
	})
	if err != nil {
		log.WithError(err).Fatal("start game")
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platformer")

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("run game")
	}
}
