// Command synthserver serves generated datasets over HTTP.
package main

import (
	"github.com/CvitoyBamp/panelsynth/internal/config"
	"github.com/CvitoyBamp/panelsynth/internal/server"
	"log"
	"os"
)

func main() {
	cfg, err := config.Load("synthserver", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	server.StartService(cfg)
}
