package main

import (
	"log"

	"github.com/Synapsr/Louez-sub011/internal/api"
)

func main() {
	log.Println("App start")
	api.StartServer()
	log.Println("App terminated")
}
