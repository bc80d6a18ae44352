package scheduler

import (
	"crypto/tls"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"kurscrm_backend/platform/config"
)

// RedisConnOpt builds the asynq Redis connection options from configuration.
// redis.ParseURL understands rediss:// URLs, so TLS settings carry over.
func RedisConnOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if cfg.GetRedisTLSInsecure() {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if cfg.GetRedisTLSInsecure() {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
