package logging

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"

	"github.com/pageza/vitality/web/config"
)

const serviceName = "vitality-web"

// New builds the process logger from configuration. Remote sinks that
// cannot be reached are reported on the logger and skipped.
func New(cfg *config.Config) *logrus.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *config.Config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.Out = out

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(cfg.LogFormat, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if cfg.ElasticURL != "" {
		if hook, err := elasticHook(cfg, level); err != nil {
			logger.WithError(err).Warn("elasticsearch log hook disabled")
		} else {
			logger.AddHook(hook)
		}
	}

	if cfg.LogstashURL != "" {
		if hook, err := logstashHook(cfg.LogstashURL); err != nil {
			logger.WithError(err).Warn("logstash log hook disabled")
		} else {
			logger.AddHook(hook)
		}
	}

	return logger
}

func elasticHook(cfg *config.Config, level logrus.Level) (logrus.Hook, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	hook, err := elogrus.NewAsyncElasticHook(client, serviceName, level, cfg.ElasticIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch hook: %w", err)
	}
	return hook, nil
}

// logstashHook dials addr, "udp://host:port" or "tcp://host:port". A bare
// host:port is UDP.
func logstashHook(addr string) (logrus.Hook, error) {
	network := "udp"
	if scheme, rest, ok := strings.Cut(addr, "://"); ok {
		network, addr = strings.ToLower(scheme), rest
	}
	conn, err := net.DialTimeout(network, addr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to dial logstash: %w", err)
	}
	return logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": serviceName})), nil
}

// Middleware logs one entry per request
func Middleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      path,
			"status":    status,
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}
