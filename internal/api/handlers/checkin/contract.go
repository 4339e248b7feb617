package checkin

import (
	"context"

	"github.com/glossup/GLS-SchedulingService/internal/usecase/issue_checkin_code"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/verify_checkin"
)

// IssueUseCase интерфейс usecase выдачи кода чекина
type IssueUseCase interface {
	Execute(ctx context.Context, in issue_checkin_code.Request) (*issue_checkin_code.Response, error)
}

// VerifyUseCase интерфейс usecase проверки кода чекина
type VerifyUseCase interface {
	Preview(ctx context.Context, in verify_checkin.Request) (*verify_checkin.PreviewResponse, error)
	Confirm(ctx context.Context, in verify_checkin.Request) (*verify_checkin.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(msg string, args ...any)
}
