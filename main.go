package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/gaurav-singhh/LocaLinkBackend/api/handlers"
	"github.com/gaurav-singhh/LocaLinkBackend/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil { //initialize database and router
		log.Fatal(err)
	}

	port := a.Config.Port
	if port == "" {
		port = "5000"
	}
	zap.S().Infow("localink-api is up and running",
		"port", port,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
