package main

import (
	"github.com/okdewit/ytdlp-docker/internal/app"
	"go.uber.org/fx"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
