package config

import "time"

// StoreConfig 存储配置
type StoreConfig struct {
	// Path SQLite 数据库文件路径
	// 默认: "ragcontext.db"
	Path string `koanf:"path"`
	// BusyTimeout SQLite busy_timeout
	// 默认: 5s
	BusyTimeout time.Duration `koanf:"busy_timeout"`
}

// WithDefaults 返回带默认值的配置
func (c StoreConfig) WithDefaults() StoreConfig {
	if c.Path == "" {
		c.Path = "ragcontext.db"
	}
	if c.BusyTimeout == 0 {
		c.BusyTimeout = 5 * time.Second
	}
	return c
}
