package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env" env:"ENV,default=local"`

	Database     DatabaseConfigs     `toml:"database" env:",prefix=DB_"`
	ApiServer    APIServerConfigs    `toml:"api_server" env:",prefix=API_"`
	Auth         AuthConfigs         `toml:"auth" env:",prefix=AUTH_"`
	Storage      S3Configs           `toml:"storage" env:",prefix=STORAGE_"`
	File         FileConfigs         `toml:"file" env:",prefix=FILE_"`
	Redis        RedisConfigs        `toml:"redis" env:",prefix=REDIS_"`
	Kafka        KafkaConfigs        `toml:"kafka" env:",prefix=KAFKA_"`
	Mongo        MongoConfigs        `toml:"mongo" env:",prefix=MONGO_"`
	RateLimit    RateLimitConfigs    `toml:"rate_limit" env:",prefix=RATE_LIMIT_"`
	Reward       RewardConfigs       `toml:"reward" env:",prefix=REWARD_"`
	Invitation   InvitationConfigs   `toml:"invitation" env:",prefix=INVITATION_"`
	Notification NotificationConfigs `toml:"notification" env:",prefix=NOTIFICATION_"`
	Cron         CronConfigs         `toml:"cron" env:",prefix=CRON_"`
	LogLevel     string              `toml:"log_level" env:"LOG_LEVEL,default=info"`
}

func (c Configs) IsProduction() bool {
	return c.Env == "production"
}

type DatabaseConfigs struct {
	Host     string `toml:"host" env:"HOST,default=localhost"`
	Port     string `toml:"port" env:"PORT,default=3306"`
	Database string `toml:"database" env:"DATABASE,default=alumnet"`
	User     string `toml:"user" env:"USER,default=mysql"`
	Password string `toml:"password" env:"PASSWORD,default=mysql"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL,default=error"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host" env:"HOST,default=0.0.0.0"`
	Port string `toml:"port" env:"PORT,default=8080"`
	Cert string `toml:"cert" env:"CERT"`
	Key  string `toml:"key" env:"KEY"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs
	MaxLimit       int      `toml:"max_limit" env:"MAX_LIMIT,default=50"`
	DefaultLimit   int      `toml:"default_limit" env:"DEFAULT_LIMIT,default=10"`
	AllowedOrigins []string `toml:"allowed_origins" env:"ALLOWED_ORIGINS,default=*"`
	FrontendURL    string   `toml:"frontend_url" env:"FRONTEND_URL,default=http://localhost:3000"`

	// TrustedProxies lists the ips or CIDRs of reverse proxies whose
	// forwarding headers are honoured. Empty means the peer is the client.
	TrustedProxies []string `toml:"trusted_proxies" env:"TRUSTED_PROXIES"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret" env:"TOKEN_SECRET,default=local-secret"`
	AccessToken TokenConfigs `toml:"access_token" env:",prefix=ACCESS_TOKEN_"`
}

type TokenConfigs struct {
	Name       string        `toml:"name" env:"NAME,default=access_token"`
	Expiration time.Duration `toml:"expiration" env:"EXPIRATION,default=24h"`
}

type S3Configs struct {
	Region         string `toml:"region" env:"REGION,default=auto"`
	Endpoint       string `toml:"endpoint" env:"ENDPOINT"`
	PublicEndpoint string `toml:"public_endpoint" env:"PUBLIC_ENDPOINT"`
	AccessKey      string `toml:"access_key" env:"ACCESS_KEY"`
	SecretKey      string `toml:"secret_key" env:"SECRET_KEY"`
	SSLDisabled    bool   `toml:"ssl_disabled" env:"SSL_DISABLED,default=false"`
	Bucket         string `toml:"bucket" env:"BUCKET,default=alumnet"`
}

type FileConfigs struct {
	MaxSize       int `toml:"max_size" env:"MAX_SIZE,default=5242880"`
	IconSizePixel int `toml:"icon_size_pixel" env:"ICON_SIZE_PIXEL,default=256"`
}

type RedisConfigs struct {
	Addr     string `toml:"addr" env:"ADDR,default=localhost:6379"`
	Password string `toml:"password" env:"PASSWORD"`
	DB       int    `toml:"db" env:"DB,default=0"`
	PoolSize int    `toml:"pool_size" env:"POOL_SIZE,default=5"`
}

type KafkaConfigs struct {
	Addr     string `toml:"addr" env:"ADDR,default=localhost:9092"`
	ClientID string `toml:"client_id" env:"CLIENT_ID,default=alumnet-api"`
}

type MongoConfigs struct {
	URI      string `toml:"uri" env:"URI,default=mongodb://localhost:27017"`
	Database string `toml:"database" env:"DATABASE,default=alumnet"`
}

type RateLimitConfigs struct {
	Enable    bool    `toml:"enable" env:"ENABLE,default=true"`
	Rate      float64 `toml:"rate" env:"RATE,default=20"`
	Burst     int     `toml:"burst" env:"BURST,default=40"`
	CacheSize int     `toml:"cache_size" env:"CACHE_SIZE,default=10000"`
}

type RewardConfigs struct {
	BlockedRoles []string     `toml:"blocked_roles" env:"BLOCKED_ROLES,default=student"`
	Tiers        []TierConfig `toml:"tiers"`
}

// TierConfig is a named lower bound of lifetime earned points.
type TierConfig struct {
	Name      string `toml:"name"`
	MinPoints uint64 `toml:"min_points"`
}

var DefaultTiers = []TierConfig{
	{Name: "bronze", MinPoints: 0},
	{Name: "silver", MinPoints: 500},
	{Name: "gold", MinPoints: 1500},
	{Name: "platinum", MinPoints: 5000},
}

type InvitationConfigs struct {
	TTL   time.Duration `toml:"ttl" env:"TTL,default=168h"`
	Topic string        `toml:"topic" env:"TOPIC,default=invitation"`
}

type NotificationConfigs struct {
	Topic string `toml:"topic" env:"TOPIC,default=notification"`
}

type CronConfigs struct {
	InvitationExpiryInterval time.Duration `toml:"invitation_expiry_interval" env:"INVITATION_EXPIRY_INTERVAL,default=10m"`
	FundRecomputeInterval    time.Duration `toml:"fund_recompute_interval" env:"FUND_RECOMPUTE_INTERVAL,default=1h"`
}
