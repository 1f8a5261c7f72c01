package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net"
	"strconv"

	"phone-book/config"

	"github.com/go-sql-driver/mysql"
)

// 子表在前，按外键依赖顺序清理
var tables = []string{"message", "contact", "user"}

func main() {
	yes := flag.Bool("yes", false, "skip confirmation prompt")
	flag.Parse()

	// Load configuration (.env + config/config.yaml + env vars)
	cfg := config.LoadConfig().Database
	if cfg.Driver != "" && cfg.Driver != "mysql" {
		log.Fatalf("reset_db only supports mysql, got driver %q", cfg.Driver)
	}

	// Connect DB
	db, err := sql.Open("mysql", dsn(cfg))
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Database connection test failed: %v", err)
	}

	fmt.Println("Database connected successfully")
	fmt.Printf("Database: %s\n", cfg.Database)

	// Confirm
	if !*yes {
		fmt.Printf("\nWARNING: This operation will CLEAR ALL DATA in tables %v!\n", tables)
		fmt.Print("Type 'YES' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "YES" {
			fmt.Println("Operation cancelled")
			return
		}
	}

	// Disable FK checks to avoid constraint issues
	_, _ = db.Exec("SET FOREIGN_KEY_CHECKS=0")
	defer db.Exec("SET FOREIGN_KEY_CHECKS=1")

	for _, table := range tables {
		fmt.Printf("Clearing table %s... ", table)
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM `%s`", table)); err != nil {
			fmt.Printf("Failed: %v\n", err)
			continue
		}
		if _, err := db.Exec(fmt.Sprintf("ALTER TABLE `%s` AUTO_INCREMENT = 1", table)); err != nil {
			fmt.Printf("Failed to reset auto-increment: %v\n", err)
			continue
		}
		fmt.Println("Success")
	}

	fmt.Println("\nDatabase reset completed!")
	fmt.Println("All table data cleared, table structure preserved")
}

func dsn(cfg config.DatabaseConfig) string {
	c := mysql.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.ParseTime = true
	if cfg.Charset != "" {
		c.Params = map[string]string{"charset": cfg.Charset}
	}
	return c.FormatDSN()
}
