package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port            int                   `yaml:"port"`
	Env             string                `yaml:"env"` // "development" | "production"
	Database        DatabaseRuntimeConfig `yaml:"database"`
	Redis           RedisRuntimeConfig    `yaml:"redis"`
	Paths           RuntimePathsConfig    `yaml:"paths"`
	Storage         StorageRuntimeConfig  `yaml:"storage"`
	AllowedOrigins  []string              `yaml:"allowed_origins"`
	JWTSecret       string                `yaml:"jwt_secret"`
	SessionTTLHours int                   `yaml:"session_ttl_hours"`
	Timezone        string                `yaml:"timezone"`
	// RateLimit caps anonymous write requests per IP per second. Zero disables it.
	RateLimit int `yaml:"rate_limit"`
	// SecureCookies marks the session cookie Secure; enable behind HTTPS.
	SecureCookies bool `yaml:"secure_cookies"`
	// AutoMigrate creates or updates tables when the server starts.
	AutoMigrate bool `yaml:"auto_migrate"`

	// Resolved after load.
	DSN      string `yaml:"-"`
	RedisURL string `yaml:"-"`

	baseDir string
}

type DatabaseRuntimeConfig struct {
	DSN       string            `yaml:"dsn"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	Disable  bool              `yaml:"disable"`
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       int               `yaml:"db"`
	TLS      bool              `yaml:"tls"`
	Params   map[string]string `yaml:"params"`
}

type RuntimePathsConfig struct {
	Logs  string `yaml:"logs"`
	Media string `yaml:"media"`
}

// StorageRuntimeConfig selects where uploaded post images are kept.
type StorageRuntimeConfig struct {
	Driver string          `yaml:"driver"` // "local" | "s3"
	S3     S3RuntimeConfig `yaml:"s3"`
}

type S3RuntimeConfig struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
	PublicURL       string `yaml:"public_url"`
	Prefix          string `yaml:"prefix"`
}
