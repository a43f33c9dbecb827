package main

import (
	"fmt"
	"net/http"

	"github.com/Luismorlan/instamini/app_config"
	"github.com/Luismorlan/instamini/feed"
	"github.com/Luismorlan/instamini/media"
	"github.com/Luismorlan/instamini/server"
	"github.com/Luismorlan/instamini/server/middlewares"
	"github.com/Luismorlan/instamini/social"
	"github.com/Luismorlan/instamini/utils"
	"github.com/Luismorlan/instamini/utils/dotenv"
	Flag "github.com/Luismorlan/instamini/utils/flag"
	Logger "github.com/Luismorlan/instamini/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func main() {
	Flag.ParseFlags()
	Logger.InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	cfg, err := app_config.Load()
	if err != nil {
		Logger.Log.Fatal("invalid configuration: ", err)
	}

	utils.InitTracer()
	utils.InitProfiler()
	defer cleanup()

	db, err := utils.GetDBConnection(cfg)
	if err != nil {
		Logger.Log.Fatal("cannot connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	var cache *feed.Cache
	if cfg.RedisHost != "" {
		cache = feed.NewCache(fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort), cfg.RedisPassword)
	}

	api := &server.API{
		Feed:   feed.NewService(db, cache),
		Social: social.NewService(db),
		Media:  media.NewResolver(db),
		Files:  media.NewBotFileClient(cfg.BotAPIBase, cfg.BotToken),
	}

	if !Flag.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(Flag.ServiceName))
	router.Use(middlewares.RequestID())
	router.Use(middlewares.AccessLog())

	api.RegisterRoutes(router)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	Logger.Log.Info("api server starts up")
	router.Run(":8080")
}
