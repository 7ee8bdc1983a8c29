// @title Animal Rescue API
// @version 1.0
// @description Backend de adopción de mascotas: animales, solicitudes de adopción y descriptor de rutas del gateway.
// @BasePath /
package main

import (
	"os"

	"animal-rescue/internal/platform/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.NewFromEnv().Error("command failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
