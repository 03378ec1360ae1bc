package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Log      LogConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Redis    RedisConfig
	AGT      AGTConfig
	Currency CurrencyConfig
	Tax      TaxConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger.
type LogConfig struct {
	Level string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int  // 0 = valor por defecto de pgxpool
	ForceIPv4   bool // dial tcp4 (contenedores sin IPv6)
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig validación de los tokens emitidos por el proveedor de identidad.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché de relatórios. URL vacía = sin caché.
type RedisConfig struct {
	URL        string
	TTLSeconds int
}

// AGTConfig certificado del software y datos del encabezado SAF-T.
type AGTConfig struct {
	CertPath                  string // .pem (llave privada) o .p12; vacío = firma de desarrollo
	CertKeyPath               string // llave privada .pem si CertPath es sólo el certificado
	CertPassword              string // contraseña del .p12
	SoftwareCertificateNumber string
	ProductID                 string
	ProductVersion            string
}

// CurrencyConfig tabla de câmbio (política de la empresa).
type CurrencyConfig struct {
	Rates map[string]decimal.Decimal
}

// TaxConfig parámetros de declaraciones que requieren confirmación de negocio.
type TaxConfig struct {
	// SimplifiedExemptRate taxa aplicada al volumen isento en el régimen simplificado.
	SimplifiedExemptRate decimal.Decimal
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, CURRENCY_RATE_USD, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	rates, err := loadRates(v)
	if err != nil {
		return nil, err
	}
	exemptRate, err := getDecimal(v, "TAX_SIMPLIFIED_EXEMPT_RATE", decimal.NewFromInt(7))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "faturacao-api"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "faturacao"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			ForceIPv4:   getBool(v, "DB_FORCE_IPV4", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "faturacao-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			URL:        getString(v, "REDIS_URL", ""),
			TTLSeconds: getInt(v, "REDIS_REPORT_TTL_SECONDS", 300),
		},
		AGT: AGTConfig{
			CertPath:                  getString(v, "AGT_CERT_PATH", ""),
			CertKeyPath:               getString(v, "AGT_CERT_KEY_PATH", ""),
			CertPassword:              getString(v, "AGT_CERT_PASSWORD", ""),
			SoftwareCertificateNumber: getString(v, "AGT_SOFTWARE_CERTIFICATE", "0"),
			ProductID:                 getString(v, "AGT_PRODUCT_ID", "Faturacao/Faturacao-api"),
			ProductVersion:            getString(v, "AGT_PRODUCT_VERSION", "1.0.0"),
		},
		Currency: CurrencyConfig{Rates: rates},
		Tax:      TaxConfig{SimplifiedExemptRate: exemptRate},
	}

	return cfg, nil
}

// defaultRates câmbios históricos del sistema; CURRENCY_RATE_<CODE> los sobrescribe
// y CURRENCY_CODES añade monedas (ej. "GBP,ZAR").
var defaultRates = map[string]string{"AOA": "1", "USD": "850", "EUR": "920"}

func loadRates(v *viper.Viper) (map[string]decimal.Decimal, error) {
	codes := make(map[string]bool, len(defaultRates))
	for c := range defaultRates {
		codes[c] = true
	}
	for _, c := range strings.Split(getString(v, "CURRENCY_CODES", ""), ",") {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			codes[c] = true
		}
	}
	rates := make(map[string]decimal.Decimal, len(codes))
	for c := range codes {
		def := decimal.Zero
		if s, ok := defaultRates[c]; ok {
			def = decimal.RequireFromString(s)
		}
		r, err := getDecimal(v, "CURRENCY_RATE_"+c, def)
		if err != nil {
			return nil, err
		}
		if !r.IsPositive() {
			return nil, fmt.Errorf("config: CURRENCY_RATE_%s debe ser positivo", c)
		}
		rates[c] = r
	}
	return rates, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

func getDecimal(v *viper.Viper, key string, def decimal.Decimal) (decimal.Decimal, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s inválido: %w", key, err)
	}
	return d, nil
}
