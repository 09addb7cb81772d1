package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"
)

func main() {
	// One optional positional argument, no flags
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [image|directory|archive]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	config, warnings := validateConfig(DefaultConfig())
	for _, warning := range warnings {
		log.Printf("Config warning: %s", warning)
	}

	if err := InitGraphics(); err != nil {
		log.Fatal(err)
	}

	g := NewGame(config, afero.NewOsFs())
	defer g.Close()

	ebiten.SetWindowTitle("picview")
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if len(os.Args) == 2 {
		g.OpenPath(os.Args[1])
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
