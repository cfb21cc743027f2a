package main

import (
	"marketplace_service/startup"
	"marketplace_service/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
