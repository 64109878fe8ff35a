package entrypoint

import (
	"github.com/CODEX19/FarmLink-Africa/advisor"
	"go.uber.org/zap"
)

const degradedMessage = "AI service degraded, please try again later."

type webService struct {
	logger  *zap.Logger
	advisor advisor.Advisor
}
