package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"course-catalog/config"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

// Authenticator 管理端凭据校验接口
// 成功时返回调用方身份（用户名）；真实的凭据来源通过实现该接口注入
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}

type staticAuthenticator struct {
	username     string
	passwordHash []byte
	logger       *zap.Logger
}

// NewStaticAuthenticator 基于配置中的单个管理员账号创建 Authenticator
// 优先使用 AdminPasswordHash；未配置时对 AdminPassword 做一次 bcrypt 哈希，内存中不保留明文
func NewStaticAuthenticator(cfg *config.AuthConfig, logger *zap.Logger) (Authenticator, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		if cfg.AdminPassword == "" {
			return nil, fmt.Errorf("未配置管理员密码")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("生成管理员密码哈希失败: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("auth.admin_password_hash 不是有效的 bcrypt 哈希: %w", err)
	}

	return &staticAuthenticator{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		logger:       logger,
	}, nil
}

func (a *staticAuthenticator) Authenticate(_ context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// 用户名错误时也执行 bcrypt 比较，保持响应时间一致
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		a.logger.Warn("管理员认证失败", zap.String("username", username))
		return "", ErrInvalidCredentials
	}
	return a.username, nil
}
