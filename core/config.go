package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", true)
	Conf.SetDefault("appName", "Asistencia UNICEN")
	Conf.SetDefault("storePath", defaultStorePath())
	Conf.SetDefault("logLevel", "info")
	Conf.SetDefault("institution", "UNIVERSIDAD CENTRAL (UNICEN)")
	Conf.SetDefault("faculty", "Facultad de Ciencias Empresariales")
	Conf.SetDefault("periods", "") // comma-separated; empty: any period label is accepted
	Conf.SetDefault("serverAddress", "127.0.0.1:8000")
	Conf.SetDefault("hashPasswords", false)

	env := os.Getenv("ENV") // DEV (local; default), TEST, PROD
	switch strings.ToUpper(env) {
	case "":
		env = "DEV"
	case "TEST":
		Conf.SetDefault("testMode", true)
	}
	Conf.Set("env", strings.ToUpper(env))
	Conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()
}

// Periods returns the configured period labels. Labels are comma-separated
// so that they may contain spaces ("Primer Parcial,Segundo Parcial").
func Periods() []string {
	return splitPeriods(Conf.GetString("periods"))
}

func splitPeriods(s string) []string {
	var periods []string
	for _, p := range strings.Split(s, ",") {
		if p = CleanString(p); p != "" {
			periods = append(periods, p)
		}
	}
	return periods
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "asistencia", "asistencia_unicen_v3.json")
}

// Getwd walks up from the working directory to the module root (the directory holding go.mod).
// go test runs from the package directory, so config lookups need the root.
// Falls back to the working directory when no go.mod is found (installed binaries).
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
