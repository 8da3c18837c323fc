package logger

import "go.uber.org/zap"

// devなら読みやすい開発用ロガー、それ以外は本番用（JSON）
func New(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
