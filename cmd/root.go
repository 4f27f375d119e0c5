package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn     string
	cfgFile string
)

var RootCmd = &cobra.Command{
	Use:   "sheet-pump",
	Short: "Load Excel workbooks into relational databases",
	Long: `
  ____  _   _ _____ _____ _____   ____  _   _ __  __ ____
 / ___|| | | | ____| ____|_   _| |  _ \| | | |  \/  |  _ \
 \___ \| |_| |  _| |  _|   | |   | |_) | | | | |\/| | |_) |
  ___) |  _  | |___| |___  | |   |  __/| |_| | |  | |  __/
 |____/|_| |_|_____|_____| |_|   |_|    \___/|_|  |_|_|

SHEET PUMP 📗 - Excel Workbook to Database Migrator
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sheet-pump.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")

	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
}

// detectDriver picks the SQL driver from the explicit config value, falling
// back to DSN sniffing.
func detectDriver(connStr string) string {
	if d := viper.GetString("database.driver"); d != "" {
		return d
	}
	switch {
	case strings.HasPrefix(connStr, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(connStr, "oracle://"):
		return "oracle"
	case strings.Contains(connStr, "postgres") || strings.Contains(connStr, "sslmode"):
		return "postgres"
	default:
		return "mysql"
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("sheet-pump")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
