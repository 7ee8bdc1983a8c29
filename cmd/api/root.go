package main

import (
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "animal-rescue",
	Short: "Animal Rescue adoption backend",
	Long: `Animal Rescue sirve el catálogo de animales y las solicitudes de adopción.

Sin subcomando arranca el servidor HTTP (igual que "serve").

Ejemplos:
  animal-rescue
  animal-rescue serve --env-file .env.local
  animal-rescue routes validate deploy/api-config.yaml
  animal-rescue routes list`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Archivo .env opcional (no pisa variables ya definidas)")
}
