package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-recursive-raytracer/pkg/scene"
	"github.com/df07/go-recursive-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "", "Directory of JSON scene files (default: scenes or ../scenes)")
	staticDir := flag.String("static", "static", "Directory served at / (empty disables it)")
	flag.Parse()

	if *scenesDir == "" {
		*scenesDir = scene.FindScenesDir()
	}

	webServer := server.NewServer(*port, *scenesDir, *staticDir)

	log.Printf("Recursive Raytracer Web Server")
	if *scenesDir != "" {
		log.Printf("Loading scene files from %s", *scenesDir)
	}
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
