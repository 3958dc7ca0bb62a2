package config

const EnvPrefix = "CUSTODIA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CUSTODIA_DB_DSN"
	EnvDBHost = "CUSTODIA_DB_HOST"
	EnvDBUser = "CUSTODIA_DB_USER"
	EnvDBName = "CUSTODIA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
