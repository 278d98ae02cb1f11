package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kfglabs/directory/internal/config"
)

// Restores the directory database from a backup file, replacing the current
// database. Stop the server before running this.
func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	var from = flag.String("from", "", "Backup to restore (default <database>.bak)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	src := *from
	if src == "" {
		src = cfg.DatabasePath + ".bak"
	}
	dst := cfg.DatabasePath

	if err := copyFile(src, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Directory database restored from %s.\n", src)
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
