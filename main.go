package main

import (
	"log"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	level "github.com/labstack/gommon/log"

	"github.com/ellypaws/controlnet-api/pkg/api"
	"github.com/ellypaws/controlnet-api/pkg/db"
	"github.com/ellypaws/controlnet-api/pkg/models"
	"github.com/ellypaws/controlnet-api/pkg/sd"
)

var (
	database *db.Sqlite
	sdHost   = sd.DefaultHost
	registry *models.Registry
	port     uint = 7865
)

func main() {
	api.Run(api.RunConfig{
		Database: database,
		SDHost:   sdHost,
		Models:   registry,
		Port:     port,
		LogLevel: level.INFO,
	})
}

func init() {
	_ = godotenv.Load()

	if p := os.Getenv("PORT"); p != "" {
		i, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			log.Fatal(err)
		}
		port = uint(i)
	}

	if h := os.Getenv("SD_HOST"); h != "" {
		u, err := url.Parse(h)
		if err != nil {
			log.Fatal(err)
		}
		sdHost = (*sd.Host)(u)
	} else {
		log.Println("warning: SD_HOST not set, using default localhost:7860")
	}

	if dirs := os.Getenv("CN_MODELS_DIR"); dirs != "" {
		registry = models.FromEnv(dirs)
	}

	if sdHost == nil || !sdHost.Alive() {
		log.Println("warning: host is not alive")
	}

	var err error
	database, err = db.New(nil)
	if err != nil {
		log.Fatal(err)
	}
}
