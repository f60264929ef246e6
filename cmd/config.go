package cmd

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	RedisAddr         string
	RedisPassword     string
	WhatsAppBaseURL   string
	WhatsAppInstance  string
	WhatsAppAPIKey    string
	DefaultShift      string
	AutoAdvanceDelay  string
	HeadsUpDelay      string
	OvertimeThreshold string
	PollInterval      string
	CacheTTL          string
}
