package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"quiz_web/internal/api"
	"quiz_web/internal/models"
	"quiz_web/internal/repository"
	"quiz_web/internal/service"
	"quiz_web/internal/storage"
	"quiz_web/internal/utils"
	"quiz_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化 JWT 簽名密鑰
	utils.Init(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// 初始化資料庫連接
	// 使用配置中的信息建立到 PostgreSQL 數據庫的連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 根據定義的模型自動創建或更新數據庫表結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Question{},
		&models.GameSession{},
		&models.ChatMessage{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 repositories
	repos := repository.NewRepositories(db)

	// 初始化 services
	services := service.NewServices(repos)

	// 設置 Gin 路由
	// 創建一個默認的 Gin 路由器並設置路由
	r := gin.Default()
	api.SetupRoutes(r, services, repos)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
