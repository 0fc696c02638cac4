package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyRelayDBType         string = "RELAY_DB_TYPE"
	EnvKeyRelayDbPath         string = "RELAY_DB_PATH"
	EnvKeyRelayRecordsBackend string = "RELAY_RECORDS_BACKEND"
	EnvKeyRelayRedisAddr      string = "RELAY_REDIS_ADDR"

	EnvKeyRelayHttpHostPort string = "RELAY_HTTP_HOST_PORT"

	EnvKeyRelayDefaultRate  string = "RELAY_DEFAULT_RATE"
	EnvKeyRelayDefaultBurst string = "RELAY_DEFAULT_BURST"

	EnvKeyRelayLivenessWindowSeconds string = "RELAY_LIVENESS_WINDOW_SECONDS"
	EnvKeyRelayAppendCap             string = "RELAY_APPEND_CAP"
	EnvKeyRelayChatLogCap            string = "RELAY_CHAT_LOG_CAP"

	// Defaults for the tunables above. The liveness window and the append
	// caps are configuration, not literals inside the merge strategies.
	DefaultLivenessWindowSeconds int = 60
	DefaultAppendCap             int = 2000
	DefaultChatLogCap            int = 5000

	CommandNone string = "none"

	LoggerNameHubCore       string = "hub_core"
	LoggerNameRelay         string = "relay"
	LoggerNameRestfulServer string = "restful_server"
	LoggerFieldHubCategory  string = "category"
	LoggerCategoryRegistry  string = "registry"
	LoggerCategoryIngest    string = "ingest"
	LoggerCategoryRecords   string = "records"
)
