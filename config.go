package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/suapapa/lotto645_recommender/kv"
	"github.com/suapapa/lotto645_recommender/lotto"
)

type Prompt struct {
	System string `yaml:"system"`
	User   string `yaml:"user_fmt"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Pretty bool   `yaml:"pretty" env:"PRETTY"`
	File   string `yaml:"file" env:"FILE"`
}

type AIConfig struct {
	Enabled    bool   `yaml:"enabled" env:"ENABLED"`
	Model      string `yaml:"model" env:"MODEL"`
	WinningCSV string `yaml:"winning_csv" env:"WINNING_CSV"`
	RecentDocs int    `yaml:"recent_docs" env:"RECENT_DOCS"`
	PromptFile string `yaml:"prompt_file" env:"PROMPT_FILE"`
	Prompt     Prompt `yaml:"-"`
}

type Config struct {
	Store    StoreConfig `yaml:"store" envPrefix:"LOTTO_STORE_"`
	SetCount int         `yaml:"set_count" env:"LOTTO_SET_COUNT"`
	Log      LogConfig   `yaml:"log" envPrefix:"LOTTO_LOG_"`
	AI       AIConfig    `yaml:"ai" envPrefix:"LOTTO_AI_"`

	TelegramAPIToken string  `yaml:"tg_api_token" env:"TG_API_TOKEN"`
	ChatIDs          []int64 `yaml:"tg_chat_ids" env:"TG_CHAT_IDS"`
}

const (
	defaultAIModel    = "googleai/gemini-2.0-flash"
	defaultRecentDocs = 100
)

var defaultPrompt = Prompt{
	System: `너는 한국 로또 6/45 번호를 추천하는 도우미야.
- 번호는 1부터 45 사이의 정수만 사용한다.
- 한 조합은 서로 다른 7개의 번호로 이루어지며 앞의 6개는 본번호, 마지막 1개는 보너스 번호다.
- 참고 문서로 주어진 과거 당첨 번호를 분석해서 조합을 고른다.
- picks 필드에 조합 배열만 출력하고 다른 설명은 붙이지 않는다.`,
	User: "로또 번호 조합 %d 개를 추천해줘.",
}

// loadConfig reads the yaml config at fp, then applies .env and environment
// overrides. A missing config file is not an error; every field has a
// usable default except the Telegram credentials.
func loadConfig(fp string) (*Config, error) {
	c := &Config{}
	f, err := os.Open(fp)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(c); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := c.setDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefaults() error {
	c.Store.Driver = cmp.Or(c.Store.Driver, kv.DriverFile)
	if c.Store.Path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to find config dir: %w", err)
		}
		c.Store.Path = defaultStorePath(c.Store.Driver, filepath.Join(dir, "lotto645"))
	}
	if c.SetCount == 0 {
		c.SetCount = lotto.DefaultSetCount
	}
	c.SetCount = lotto.ClampCount(c.SetCount)
	c.Log.Level = cmp.Or(c.Log.Level, "info")
	c.AI.Model = cmp.Or(c.AI.Model, defaultAIModel)
	c.AI.RecentDocs = cmp.Or(c.AI.RecentDocs, defaultRecentDocs)
	return nil
}

func defaultStorePath(driver, dir string) string {
	if driver == kv.DriverSQLite {
		return filepath.Join(dir, "lotto645.db")
	}
	return dir
}

// validateTelegram checks what the bot needs before it connects.
func (c *Config) validateTelegram() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("missing Telegram API token")
	}
	if len(c.ChatIDs) == 0 {
		return fmt.Errorf("missing Telegram chat IDs")
	}
	return nil
}

// loadPrompt fills c.AI.Prompt from the prompt file, falling back to the
// built-in prompt when no file is configured.
func (c *Config) loadPrompt() error {
	pt := defaultPrompt
	if c.AI.PromptFile != "" {
		p, err := os.Open(c.AI.PromptFile)
		if err != nil {
			return fmt.Errorf("failed to open prompt file: %w", err)
		}
		defer p.Close()

		if err := yaml.NewDecoder(p).Decode(&pt); err != nil {
			return fmt.Errorf("failed to decode prompt file: %w", err)
		}
	}
	if pt.System == "" || pt.User == "" {
		return fmt.Errorf("prompt needs both system and user_fmt")
	}
	c.AI.Prompt = pt
	return nil
}
