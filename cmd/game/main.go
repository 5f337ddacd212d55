package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Scrap-Arena/internal/config"
	"github.com/Garsondee/Scrap-Arena/internal/game"
	"github.com/Garsondee/Scrap-Arena/internal/platform"
)

func main() {
	env, err := config.LoadEnv(".env", config.Env{Mode: "survival", Seed: 1})
	if err != nil {
		log.Fatal(err)
	}

	var modeName, tuningPath string
	var width, height, tps int
	var seed uint
	var verbose, dumpTuning bool

	flag.StringVar(&modeName, "mode", env.Mode, "game variant: survival or looter")
	flag.StringVar(&tuningPath, "tuning", env.Tuning, "JSON file overriding default tuning")
	flag.IntVar(&width, "width", 960, "window width in pixels")
	flag.IntVar(&height, "height", 960, "window height in pixels")
	flag.IntVar(&tps, "tps", ebiten.DefaultTPS, "simulation ticks per second")
	flag.UintVar(&seed, "seed", uint(env.Seed), "base random seed")
	flag.BoolVar(&verbose, "verbose", false, "log per-entity events")
	flag.BoolVar(&dumpTuning, "dump-tuning", false, "print the default tuning as JSON and exit")
	flag.Parse()

	if dumpTuning {
		if err := config.WriteDefaults(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	mode, err := game.ParseMode(modeName)
	if err != nil {
		log.Fatal(err)
	}
	tuning, err := config.LoadTuning(tuningPath)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Scrap Arena - " + mode.String())
	ebiten.SetWindowSize(width, height)
	ebiten.SetTPS(tps)
	g := platform.New(platform.Config{
		Mode:    mode,
		Tuning:  tuning,
		Width:   width,
		Height:  height,
		Seed:    uint32(seed),
		TPS:     tps,
		Verbose: verbose,
	})
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
