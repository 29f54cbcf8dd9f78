// 手动创建管理员账号脚本
//
// 首次部署后运行一次，生成可登录后台的管理员用户。
//
// 用法: go run scripts/create_admin.go -name Admin -email admin@example.com -password secret123
package main

import (
	"flag"
	"log"

	"refcheck_backend/internal/config"
	"refcheck_backend/internal/model"
	"refcheck_backend/internal/repository"
	"refcheck_backend/internal/service"
	"refcheck_backend/pkg/database"
	"refcheck_backend/pkg/logger"
)

func main() {
	name := flag.String("name", "Admin", "管理员姓名")
	email := flag.String("email", "", "管理员邮箱")
	password := flag.String("password", "", "登录密码，至少8位")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("用法: go run scripts/create_admin.go -email admin@example.com -password <至少8位>")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	authService := service.NewAuthService(repository.NewUserRepository(db), cfg)

	user := &model.User{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     model.Admin,
	}
	if err := authService.Register(user); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	log.Printf("管理员创建成功, id=%d email=%s", user.ID, user.Email)
}
