package main

import (
	"github.com/ngocdai99/furniture-backend/internal/app"
	"github.com/ngocdai99/furniture-backend/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
