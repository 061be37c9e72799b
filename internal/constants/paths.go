package constants

// DefaultEnvPath is the default path to the .env file
const DefaultEnvPath = "./.env"

// DefaultConfigPath is the default path to the cronlens.toml file
const DefaultConfigPath = "./cronlens.toml"

// EnvConfigPath names the environment variable that overrides DefaultConfigPath
const EnvConfigPath = "CRONLENS_CONFIG"
