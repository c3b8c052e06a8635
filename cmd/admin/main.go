// cmd/admin/main.go
package main

import (
	"log"
	"log/slog"
	"os"

	"course_portal/internal/config"
	"course_portal/internal/course"
	"course_portal/internal/repository"
	"course_portal/internal/service"
	"course_portal/internal/sse"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	errAndDie(config.LoadConfig("configs"))
	cfg := &config.Cfg

	appLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(appLogger)

	// set up DB
	db, err := repository.NewDB(cfg.Database.URL, appLogger)
	errAndDie(err)
	sqlDB, err := db.DB()
	errAndDie(err)
	defer sqlDB.Close()
	errAndDie(repository.Migrate(db))

	catalog, err := course.LoadDefault()
	errAndDie(err)
	mailer, err := service.NewMailer(cfg)
	errAndDie(err)

	// CLI からの付与は別プロセスなので SSE の購読者はいない。Hub は配信先なしで動く
	svc := service.NewAdminService(db, repository.NewGormAccountRepository(), catalog, mailer, sse.NewHub(appLogger), cfg)

	cli := commandLine{svc: svc, out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		sqlDB.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
