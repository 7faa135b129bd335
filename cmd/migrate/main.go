package main

import (
	"flag"
	"fmt"
	"os"

	"go-task-board/pkg/config"
	"go-task-board/pkg/db"

	"github.com/joho/godotenv"
)

// 独立运行表结构迁移, 不启动HTTP服务
func main() {
	driver := flag.String("driver", "", "Override database driver: 'mysql', 'postgres' or 'sqlite'")
	dsn := flag.String("dsn", "", "Override database DSN")
	dryRun := flag.Bool("dry-run", false, "Only check the connection, do not migrate")
	flag.Parse()

	_ = godotenv.Load()
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg := config.GlobalConfig.Database
	if *driver != "" {
		cfg.Driver = *driver
	}
	if *dsn != "" {
		cfg.DSN = *dsn
	}

	conn, err := db.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting: %v\n", err)
		os.Exit(1)
	}
	sqlDB, err := conn.DB()
	if err == nil {
		defer sqlDB.Close()
		err = sqlDB.Ping()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pinging database: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("Connection to %s OK\n", cfg.Driver)
		return
	}

	if err := db.Migrate(conn); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Migrated %s schema\n", cfg.Driver)
}
