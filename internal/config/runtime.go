package config

import "os"

// GetRuntimePath resolves the runtime directory before the full config is
// parsed, so the .env file under it can seed the rest of the environment.
func GetRuntimePath() string {
	if path := os.Getenv("RUNTIME_PATH"); path != "" {
		return path
	}
	return ".contactchat"
}
