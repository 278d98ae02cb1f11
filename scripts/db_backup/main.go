package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kfglabs/directory/internal/config"
)

// Copies the directory database to a backup file. The server should be
// stopped first; a copy taken mid-write may be inconsistent.
func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	var out = flag.String("out", "", "Backup destination (default <database>.bak)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	src := cfg.DatabasePath
	dst := *out
	if dst == "" {
		dst = src + ".bak"
	}

	if err := copyFile(src, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Directory database backed up to %s.\n", dst)
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
