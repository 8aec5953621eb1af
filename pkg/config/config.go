package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr     string        `json:"listen_addr"`     // HTTP 监听地址
	DataDir        string        `json:"data_dir"`        // SQLite数据库文件存放目录
	DBFileName     string        `json:"db_file_name"`    // SQLite数据库文件名
	DBPath         string        `json:"-"`               // 完整的数据库文件路径
	TranscriberURL string        `json:"transcriber_url"` // 远程拼音服务地址，为空时使用本地字典
	HTTPTimeout    time.Duration `json:"http_timeout"`    // 远程拼音服务请求超时
	ReloadDebounce time.Duration `json:"reload_debounce"` // 词库变化后延迟多久重新加载
	TradToSimp     bool          `json:"trad_to_simp"`    // 转换前是否先做繁简转换
	KeypadDefault  bool          `json:"keypad_default"`  // 未指定时是否输出按键数字
}

const (
	listenAddr = ":8000"
	dataDir    = "/app/data"
	dbFileName = "abbr.db"

	httpTimeout    = 10 * time.Second
	reloadDebounce = 2 * time.Second
	tradToSimp     = true
	keypadDefault  = false
)

// LoadConfig 从环境变量或默认值加载配置
func LoadConfig() (*Config, error) {
	// 尝试加载 .env 文件
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
		DataDir:        os.Getenv("DATA_DIR"),
		DBFileName:     os.Getenv("DB_FILE_NAME"),
		TranscriberURL: os.Getenv("TRANSCRIBER_URL"),
		HTTPTimeout:    parseDurationOrDefault(os.Getenv("HTTP_TIMEOUT"), httpTimeout),
		ReloadDebounce: parseDurationOrDefault(os.Getenv("RELOAD_DEBOUNCE"), reloadDebounce),
		TradToSimp:     parseBoolOrDefault(os.Getenv("TRAD_TO_SIMP"), tradToSimp),
		KeypadDefault:  parseBoolOrDefault(os.Getenv("KEYPAD_DEFAULT"), keypadDefault),
	}

	// 设置默认值
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = listenAddr
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.DBFileName == "" {
		cfg.DBFileName = dbFileName
	}
	cfg.DBPath = filepath.Join(cfg.DataDir, cfg.DBFileName)
	// 确认目录存在
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create data directory %s", cfg.DataDir)
	}
	return cfg, nil
}

func parseDurationOrDefault(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Warning: Could not parse duration '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return d
}

func parseBoolOrDefault(s string, defaultValue bool) bool {
	if s == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("Warning: Could not parse bool '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return b
}
