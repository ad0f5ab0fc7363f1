package main

import (
	"flag"
	"log"

	"island-discovery/internal/client"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	profile := flag.String("profile", "", "Profile name for separate config (e.g., viewer1, viewer2)")
	offline := flag.Bool("offline", false, "Run discovery locally without a server")
	serverAddr := flag.String("server", "", "Server address (host:port or ws:// URL); defaults to the last one used")
	flag.Parse()

	client.SetProfile(*profile)

	game, err := client.NewGame(*offline, *serverAddr)
	if err != nil {
		log.Fatalf("Failed to create viewer: %v", err)
	}

	ebiten.SetWindowSize(game.WindowSize())
	ebiten.SetWindowTitle("Island Discovery")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
