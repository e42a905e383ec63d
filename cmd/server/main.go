package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/reelhost/timeline-engine/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	secret = configVar[string]{
		envKey:       "SERVER_SECRET",
		flagKey:      "secret",
		defaultValue: "",
	}
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 80,
	}
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
	snapThresholdPx = configVar[float64]{
		envKey:       "ENGINE_SNAP_THRESHOLD_PX",
		flagKey:      "snap-threshold-px",
		defaultValue: 10,
	}
	minTimelineLen = configVar[float64]{
		envKey:       "ENGINE_MIN_TIMELINE_LEN",
		flagKey:      "min-timeline-len",
		defaultValue: 300,
	}
	minTimelinePad = configVar[float64]{
		envKey:       "ENGINE_MIN_TIMELINE_PAD",
		flagKey:      "min-timeline-pad",
		defaultValue: 10,
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(secret.flagKey, secret.defaultValue, "Server secret")
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Float64(snapThresholdPx.flagKey, snapThresholdPx.defaultValue, "Snap threshold in pixels")
	pflag.Float64(minTimelineLen.flagKey, minTimelineLen.defaultValue, "Minimum timeline length in seconds")
	pflag.Float64(minTimelinePad.flagKey, minTimelinePad.defaultValue, "Minimum timeline trailing padding in seconds")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(secret.flagKey, secret.envKey)
	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)
	viper.BindEnv(snapThresholdPx.flagKey, snapThresholdPx.envKey)
	viper.BindEnv(minTimelineLen.flagKey, minTimelineLen.envKey)
	viper.BindEnv(minTimelinePad.flagKey, minTimelinePad.envKey)

	viper.SetDefault(secret.flagKey, secret.defaultValue)
	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)
	viper.SetDefault(snapThresholdPx.flagKey, snapThresholdPx.defaultValue)
	viper.SetDefault(minTimelineLen.flagKey, minTimelineLen.defaultValue)
	viper.SetDefault(minTimelinePad.flagKey, minTimelinePad.defaultValue)

	config := &app.AppConfig{
		Secret:          viper.GetString(secret.flagKey),
		Host:            viper.GetString(host.flagKey),
		Port:            viper.GetInt(port.flagKey),
		LogLevel:        viper.GetString(logLevel.flagKey),
		RedisPort:       viper.GetInt(redisPort.flagKey),
		RedisHost:       viper.GetString(redisHost.flagKey),
		RedisPassword:   viper.GetString(redisPassword.flagKey),
		SnapThresholdPx: viper.GetFloat64(snapThresholdPx.flagKey),
		MinTimelineLen:  viper.GetFloat64(minTimelineLen.flagKey),
		MinTimelinePad:  viper.GetFloat64(minTimelinePad.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	if err := appConfig.Validate(); err != nil {
		log.Fatal(err)
	}

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
