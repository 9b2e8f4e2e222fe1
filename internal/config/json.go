// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are written as strings ("24h", "30s").
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey       string   `json:"token_sign_key"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		BcryptCost         int      `json:"bcrypt_cost"`
		MaxSessionsPerUser int      `json:"max_sessions_per_user"`
		ResetTokenTTL      Duration `json:"reset_token_ttl"`
		BaseURL            string   `json:"base_url"`
		Production         bool     `json:"production"`
		Version            string   `json:"version"`
		LogLevel           string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		S3 struct {
			Bucket    string `json:"bucket"`
			Region    string `json:"region"`
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			PublicURL string `json:"public_url"`
		} `json:"s3,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	OAuth struct {
		Google struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
			RedirectURL  string `json:"redirect_url"`
			IssuerURL    string `json:"issuer_url"`
		} `json:"google,omitempty"`
	} `json:"oauth,omitempty"`

	Mail struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"mail,omitempty"`

	Limiter struct {
		RedisAddress  string   `json:"redis_address"`
		RedisPassword string   `json:"redis_password"`
		MaxAttempts   int      `json:"max_attempts"`
		Window        Duration `json:"window"`
	} `json:"limiter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:       j.App.TokenSignKey,
			TokenIssuer:        j.App.TokenIssuer,
			TokenDuration:      time.Duration(j.App.TokenDuration),
			BcryptCost:         j.App.BcryptCost,
			MaxSessionsPerUser: j.App.MaxSessionsPerUser,
			ResetTokenTTL:      time.Duration(j.App.ResetTokenTTL),
			BaseURL:            j.App.BaseURL,
			Production:         j.App.Production,
			Version:            j.App.Version,
			LogLevel:           j.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
			S3: S3{
				Bucket:    j.Storage.S3.Bucket,
				Region:    j.Storage.S3.Region,
				Endpoint:  j.Storage.S3.Endpoint,
				AccessKey: j.Storage.S3.AccessKey,
				SecretKey: j.Storage.S3.SecretKey,
				PublicURL: j.Storage.S3.PublicURL,
			},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		OAuth: OAuth{
			Google: Google{
				ClientID:     j.OAuth.Google.ClientID,
				ClientSecret: j.OAuth.Google.ClientSecret,
				RedirectURL:  j.OAuth.Google.RedirectURL,
				IssuerURL:    j.OAuth.Google.IssuerURL,
			},
		},
		Mail: Mail{
			Host:     j.Mail.Host,
			Port:     j.Mail.Port,
			Username: j.Mail.Username,
			Password: j.Mail.Password,
			From:     j.Mail.From,
		},
		Limiter: Limiter{
			RedisAddress:  j.Limiter.RedisAddress,
			RedisPassword: j.Limiter.RedisPassword,
			MaxAttempts:   j.Limiter.MaxAttempts,
			Window:        time.Duration(j.Limiter.Window),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
