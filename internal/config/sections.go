package config

import (
	"github.com/spf13/viper"

	"github.com/jobtrack/jobtrack/pkg/email"
	"github.com/jobtrack/jobtrack/pkg/logger"
)

func getLoggerConfig(v *viper.Viper) *logger.Config {
	return &logger.Config{
		Level:      v.GetInt("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}

func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		MongoURI: v.GetString("data.mongo_uri"),
		Database: v.GetString("data.database"),
	}
}

func getAuthConfig(v *viper.Viper) *Auth {
	return &Auth{
		JWTSecret:   v.GetString("auth.jwt_secret"),
		TokenExpiry: v.GetDuration("auth.token_expiry"),
	}
}

func getEmailConfig(v *viper.Viper) *email.Config {
	return &email.Config{
		Provider: v.GetString("email.provider"),
		SMTP: &email.SMTPConfig{
			Host:     v.GetString("email.smtp.host"),
			Port:     v.GetString("email.smtp.port"),
			Username: v.GetString("email.smtp.username"),
			Password: v.GetString("email.smtp.password"),
			From:     v.GetString("email.smtp.from"),
		},
		SendGrid: &email.SendGridConfig{
			Key:      v.GetString("email.sendgrid.key"),
			From:     v.GetString("email.sendgrid.from"),
			FromName: v.GetString("email.sendgrid.from_name"),
		},
		Mailgun: &email.MailgunConfig{
			Key:    v.GetString("email.mailgun.key"),
			Domain: v.GetString("email.mailgun.domain"),
			From:   v.GetString("email.mailgun.from"),
		},
	}
}

func getNotifyConfig(v *viper.Viper) *Notify {
	return &Notify{
		Workers:   v.GetInt("notify.workers"),
		QueueSize: v.GetInt("notify.queue_size"),
	}
}
