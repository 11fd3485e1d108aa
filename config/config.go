package config

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port                                     int
	RoundRobinTimeQuantum                    int
	MultilevelFeedbackQueueLevelsTimeQuantum []int
	Playback                                 PlaybackConfig
	Cache                                    CacheConfig
	LogLevel                                 string
}

// PlaybackConfig bounds how fast a computed timeline is replayed.
type PlaybackConfig struct {
	StepDuration time.Duration
	MinStep      time.Duration
	MaxStep      time.Duration
}

type CacheConfig struct {
	TTL      time.Duration
	Capacity int
}

var once sync.Once
var config *SchedulerConfig
var configErr error

// GetSchedulerConfig loads config.yaml from the working directory once.
func GetSchedulerConfig() (*SchedulerConfig, error) {
	once.Do(func() {
		config, configErr = LoadSchedulerConfig("")
	})
	return config, configErr
}

// LoadSchedulerConfig reads the given file, or config.yaml from the working
// directory when path is empty. A missing default file is not an error;
// environment variables prefixed with SCHEDULER_ override file values.
func LoadSchedulerConfig(path string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SCHEDULER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read scheduler config")
		}
	}

	cfg := &SchedulerConfig{
		Port:                                     v.GetInt("port"),
		RoundRobinTimeQuantum:                    v.GetInt("scheduler.round_robin.time_quantum"),
		MultilevelFeedbackQueueLevelsTimeQuantum: v.GetIntSlice("scheduler.multilevel_feedback_queue.levels_time_quantum"),
		Playback: PlaybackConfig{
			StepDuration: v.GetDuration("playback.step_duration"),
			MinStep:      v.GetDuration("playback.min_step"),
			MaxStep:      v.GetDuration("playback.max_step"),
		},
		Cache: CacheConfig{
			TTL:      v.GetDuration("cache.ttl"),
			Capacity: v.GetInt("cache.capacity"),
		},
		LogLevel: v.GetString("logging.level"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("scheduler.multilevel_feedback_queue.levels_time_quantum", []int{2, 4})
	v.SetDefault("playback.step_duration", 80*time.Millisecond)
	v.SetDefault("playback.min_step", 20*time.Millisecond)
	v.SetDefault("playback.max_step", 200*time.Millisecond)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.capacity", 256)
	v.SetDefault("logging.level", "info")
}

func (c *SchedulerConfig) validate() error {
	if c.RoundRobinTimeQuantum <= 0 {
		return errors.Errorf("scheduler.round_robin.time_quantum must be positive, got %d", c.RoundRobinTimeQuantum)
	}
	for i, quantum := range c.MultilevelFeedbackQueueLevelsTimeQuantum {
		if quantum <= 0 {
			return errors.Errorf("scheduler.multilevel_feedback_queue.levels_time_quantum[%d] must be positive, got %d", i, quantum)
		}
	}
	if c.Playback.MinStep <= 0 || c.Playback.MaxStep < c.Playback.MinStep {
		return errors.Errorf("playback step bounds [%s, %s] are invalid", c.Playback.MinStep, c.Playback.MaxStep)
	}
	if c.Cache.Capacity <= 0 {
		return errors.Errorf("cache.capacity must be positive, got %d", c.Cache.Capacity)
	}
	return nil
}
